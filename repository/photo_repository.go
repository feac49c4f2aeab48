package repository

import (
	"gorm.io/gorm"

	"github.com/ismaeltironi-cloud/locadora-pro/entity"
	"github.com/ismaeltironi-cloud/locadora-pro/pkg/cache"
	"github.com/ismaeltironi-cloud/locadora-pro/ws"
)

// PhotoRepository is append-only: photos are never updated or deleted.
type PhotoRepository struct {
	DB    *gorm.DB
	Cache *cache.Store
	Feed  ws.Publisher
}

func NewPhotoRepository(db *gorm.DB, c *cache.Store, feed ws.Publisher) *PhotoRepository {
	return &PhotoRepository{DB: db, Cache: c, Feed: feed}
}

func (r *PhotoRepository) ListForVehicle(vehicleID string) ([]entity.VehiclePhoto, error) {
	key := cache.ListKey("vehicle_photos", "vehicle="+vehicleID)
	if v, ok := r.Cache.Get(key); ok {
		return v.([]entity.VehiclePhoto), nil
	}

	var photos []entity.VehiclePhoto
	err := r.DB.Where("vehicle_id = ?", vehicleID).
		Order("taken_at DESC").
		Find(&photos).Error
	if err != nil {
		return nil, err
	}

	r.Cache.Set(key, photos)
	return photos, nil
}

func (r *PhotoRepository) Add(tx *gorm.DB, p *entity.VehiclePhoto) error {
	if err := tx.Create(p).Error; err != nil {
		return err
	}
	r.Cache.InvalidateEntity("vehicle_photos", p.ID)
	r.Feed.Publish("vehicle_photos", p.ID, "insert")
	return nil
}
