package configs

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBDriver string
	DBSource string
	Port     string

	JWTSecret string
	JWTTTL    time.Duration

	CacheTTL time.Duration

	// Object storage for vehicle and service-order photos.
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioPublicURL string
	MinioUseSSL    bool

	// External Oficina Pro service-order system.
	OficinaProURL     string
	OficinaProAPIKey  string
	OficinaProVariant string

	// Inbound service-request extraction gateway.
	ExtractorURL    string
	ExtractorAPIKey string

	// First-boot admin.
	AdminEmail    string
	AdminPassword string
	AdminUsername string
	AdminFullName string
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using environment")
	}

	return &Config{
		DBDriver: getEnv("DB_DRIVER", "sqlite"),
		DBSource: getEnv("DB_SOURCE", "locadora.db"),
		Port:     getEnv("PORT", "8000"),

		JWTSecret: getEnv("JWT_SECRET", "changeme"),
		JWTTTL:    24 * time.Hour,

		CacheTTL: 5 * time.Minute,

		MinioEndpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
		MinioAccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
		MinioSecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
		MinioBucket:    getEnv("MINIO_BUCKET", "vehicle-photos"),
		MinioPublicURL: getEnv("MINIO_PUBLIC_URL", "http://localhost:9000"),
		MinioUseSSL:    getEnv("MINIO_USE_SSL", "false") == "true",

		OficinaProURL:     os.Getenv("OFICINA_PRO_URL"),
		OficinaProAPIKey:  os.Getenv("OFICINA_PRO_ANON_KEY"),
		OficinaProVariant: getEnv("OFICINA_PRO_VARIANT", "four_state"),

		ExtractorURL:    os.Getenv("EXTRACTOR_URL"),
		ExtractorAPIKey: os.Getenv("EXTRACTOR_API_KEY"),

		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		AdminUsername: getEnv("ADMIN_USERNAME", "admin"),
		AdminFullName: getEnv("ADMIN_FULL_NAME", "Administrador"),
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}
