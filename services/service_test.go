package services

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ismaeltironi-cloud/locadora-pro/entity"
	"github.com/ismaeltironi-cloud/locadora-pro/pkg/cache"
	"github.com/ismaeltironi-cloud/locadora-pro/pkg/storage"
	"github.com/ismaeltironi-cloud/locadora-pro/repository"
	"github.com/ismaeltironi-cloud/locadora-pro/ws"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&entity.Profile{},
		&entity.UserRole{},
		&entity.Client{},
		&entity.Vehicle{},
		&entity.VehiclePhoto{},
	))
	return db
}

type testEnv struct {
	db    *gorm.DB
	store *storage.MemoryStore

	auth     *AuthService
	clients  *ClientService
	vehicles *VehicleService
	users    *UserService
	reports  *ReportService

	clientRepo  *repository.ClientRepository
	vehicleRepo *repository.VehicleRepository

	adminID    string
	operatorID string
	viewerID   string

	client entity.Client
}

// newTestEnv seeds three users: an admin, an operator with every
// capability flag, and a flagless viewer, plus one client.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := newTestDB(t)
	c := cache.New(time.Minute)
	feed := ws.NopPublisher{}
	store := storage.NewMemoryStore()

	userRepo := repository.NewUserRepository(db, c, feed)
	clientRepo := repository.NewClientRepository(db, c, feed)
	vehicleRepo := repository.NewVehicleRepository(db, c, feed)
	photoRepo := repository.NewPhotoRepository(db, c, feed)

	auth := NewAuthService(userRepo, "test-secret", time.Hour)

	env := &testEnv{
		db:          db,
		store:       store,
		auth:        auth,
		clients:     NewClientService(clientRepo, auth),
		vehicles:    NewVehicleService(db, vehicleRepo, photoRepo, auth, store),
		users:       NewUserService(userRepo, auth),
		reports:     NewReportService(vehicleRepo, userRepo),
		clientRepo:  clientRepo,
		vehicleRepo: vehicleRepo,
	}

	env.adminID = env.seedUser(t, "admin@test.local", "admin", entity.RoleAdmin, entity.UserRole{})
	env.operatorID = env.seedUser(t, "operator@test.local", "operator", entity.RoleManager, entity.UserRole{
		CanView: true, CanEdit: true, CanCheckin: true, CanCheckout: true,
	})
	env.viewerID = env.seedUser(t, "viewer@test.local", "viewer", entity.RoleViewer, entity.UserRole{CanView: true})

	env.client = entity.Client{Name: "Transportes Ipiranga", CNPJ: "12.345.678/0001-95"}
	require.NoError(t, db.Create(&env.client).Error)

	return env
}

func (env *testEnv) seedUser(t *testing.T, email, username string, role entity.AppRole, flags entity.UserRole) string {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	require.NoError(t, err)

	profile := entity.Profile{Email: email, Username: username, FullName: username, Password: string(hash)}
	require.NoError(t, env.db.Create(&profile).Error)

	flags.UserID = profile.ID
	flags.Role = role
	require.NoError(t, env.db.Create(&flags).Error)

	return profile.ID
}

func (env *testEnv) seedVehicle(t *testing.T, plate string, status entity.VehicleStatus) *entity.Vehicle {
	t.Helper()

	v := entity.Vehicle{
		ClientID:  env.client.ID,
		Plate:     plate,
		Model:     "Sprinter",
		Status:    status,
		CreatedBy: env.operatorID,
	}
	require.NoError(t, env.db.Create(&v).Error)
	return &v
}

func testPhoto() *PhotoInput {
	return &PhotoInput{
		Base64:      base64.StdEncoding.EncodeToString([]byte("fake jpeg bytes")),
		ContentType: "image/jpeg",
	}
}
