package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"

	"github.com/ismaeltironi-cloud/locadora-pro/configs"
	"github.com/ismaeltironi-cloud/locadora-pro/pkg/storage"
	"github.com/ismaeltironi-cloud/locadora-pro/routes"
	"github.com/ismaeltironi-cloud/locadora-pro/ws"
)

func main() {
	cfg := configs.LoadConfig()

	// DB
	if err := configs.ConnectionDB(cfg); err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	db := configs.DB()

	// migrate
	if err := configs.SetupDatabase(); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	if err := configs.SeedAdmin(db, cfg); err != nil {
		log.Fatalf("seed admin failed: %v", err)
	}

	// Photo object storage
	store, err := storage.NewMinioStore(cfg.MinioEndpoint, cfg.MinioAccessKey,
		cfg.MinioSecretKey, cfg.MinioBucket, cfg.MinioPublicURL, cfg.MinioUseSSL)
	if err != nil {
		log.Fatalf("object storage setup failed: %v", err)
	}

	// Change feed
	hub := ws.NewChangeHub()
	go hub.Run()

	// HTTP
	r := gin.Default()
	routes.RegisterRoutes(r, db, cfg, store, hub)

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Println("server running at", addr)
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}
