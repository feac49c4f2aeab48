package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ismaeltironi-cloud/locadora-pro/entity"
	"github.com/ismaeltironi-cloud/locadora-pro/pkg/cache"
	"github.com/ismaeltironi-cloud/locadora-pro/ws"
)

func newRepoTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&entity.Client{}, &entity.Vehicle{}, &entity.VehiclePhoto{}))
	return db
}

func seedClient(t *testing.T, db *gorm.DB) *entity.Client {
	t.Helper()
	c := entity.Client{Name: "Cliente Teste", CNPJ: "12.345.678/0001-95"}
	require.NoError(t, db.Create(&c).Error)
	return &c
}

func TestVehicleListCacheInvalidatedOnWrite(t *testing.T) {
	db := newRepoTestDB(t)
	store := cache.New(time.Minute)
	repo := NewVehicleRepository(db, store, ws.NopPublisher{})
	client := seedClient(t, db)

	first, err := repo.List("")
	require.NoError(t, err)
	assert.Empty(t, first)

	// The empty result is now cached; a create must evict it.
	v := entity.Vehicle{ClientID: client.ID, Plate: "ABC1234", Status: entity.StatusAwaitingDropoff}
	require.NoError(t, repo.Create(&v))

	second, err := repo.List("")
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, v.ID, second[0].ID)
}

func TestVehicleStatusWriteEvictsFilteredLists(t *testing.T) {
	db := newRepoTestDB(t)
	store := cache.New(time.Minute)
	repo := NewVehicleRepository(db, store, ws.NopPublisher{})
	client := seedClient(t, db)

	v := entity.Vehicle{ClientID: client.ID, Plate: "DEF5678", Status: entity.StatusAwaitingDropoff}
	require.NoError(t, repo.Create(&v))

	// Warm both the filtered list and the detail entry.
	byClient, err := repo.List(client.ID)
	require.NoError(t, err)
	require.Len(t, byClient, 1)
	detail, err := repo.FindByID(v.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusAwaitingDropoff, detail.Status)

	now := time.Now().UTC()
	ok, err := repo.UpdateStatusGuard(db, v.ID, entity.StatusAwaitingDropoff, entity.StatusCheckedIn, &now)
	require.NoError(t, err)
	require.True(t, ok)

	detail, err = repo.FindByID(v.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusCheckedIn, detail.Status)
	require.NotNil(t, detail.CheckinAt)

	byClient, err = repo.List(client.ID)
	require.NoError(t, err)
	require.Len(t, byClient, 1)
	assert.Equal(t, entity.StatusCheckedIn, byClient[0].Status)
}

func TestUpdateStatusGuardRefusesStaleState(t *testing.T) {
	db := newRepoTestDB(t)
	store := cache.New(time.Minute)
	repo := NewVehicleRepository(db, store, ws.NopPublisher{})
	client := seedClient(t, db)

	v := entity.Vehicle{ClientID: client.ID, Plate: "GHI9012", Status: entity.StatusCheckedOut}
	require.NoError(t, repo.Create(&v))

	now := time.Now().UTC()
	ok, err := repo.UpdateStatusGuard(db, v.ID, entity.StatusCheckedIn, entity.StatusCheckedOut, &now)
	require.NoError(t, err)
	assert.False(t, ok)

	var after entity.Vehicle
	require.NoError(t, db.First(&after, "id = ?", v.ID).Error)
	assert.Equal(t, entity.StatusCheckedOut, after.Status)
	assert.Nil(t, after.CheckoutAt)
}

func TestLatestByPlateReturnsNewest(t *testing.T) {
	db := newRepoTestDB(t)
	store := cache.New(time.Minute)
	repo := NewVehicleRepository(db, store, ws.NopPublisher{})
	client := seedClient(t, db)

	old := entity.Vehicle{ClientID: client.ID, Plate: "JKL3456", Model: "Sprinter", Status: entity.StatusCheckedOut}
	require.NoError(t, db.Create(&old).Error)
	require.NoError(t, db.Model(&old).Update("created_at", time.Now().Add(-48*time.Hour)).Error)

	recent := entity.Vehicle{ClientID: client.ID, Plate: "JKL3456", Model: "Ducato", Status: entity.StatusAwaitingDropoff}
	require.NoError(t, db.Create(&recent).Error)

	hit, err := repo.LatestByPlate("JKL3456")
	require.NoError(t, err)
	assert.Equal(t, "Ducato", hit.Model)
}
