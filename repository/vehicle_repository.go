package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/ismaeltironi-cloud/locadora-pro/entity"
	"github.com/ismaeltironi-cloud/locadora-pro/pkg/cache"
	"github.com/ismaeltironi-cloud/locadora-pro/ws"
)

type VehicleRepository struct {
	DB    *gorm.DB
	Cache *cache.Store
	Feed  ws.Publisher
}

func NewVehicleRepository(db *gorm.DB, c *cache.Store, feed ws.Publisher) *VehicleRepository {
	return &VehicleRepository{DB: db, Cache: c, Feed: feed}
}

// List returns vehicles newest first, each with its client preloaded.
func (r *VehicleRepository) List(clientID string) ([]entity.Vehicle, error) {
	filter := ""
	if clientID != "" {
		filter = "client=" + clientID
	}
	key := cache.ListKey("vehicles", filter)
	if v, ok := r.Cache.Get(key); ok {
		return v.([]entity.Vehicle), nil
	}

	var vehicles []entity.Vehicle
	q := r.DB.Preload("Client").Order("created_at DESC")
	if clientID != "" {
		q = q.Where("client_id = ?", clientID)
	}
	if err := q.Find(&vehicles).Error; err != nil {
		return nil, err
	}

	r.Cache.Set(key, vehicles)
	return vehicles, nil
}

func (r *VehicleRepository) FindByID(id string) (*entity.Vehicle, error) {
	key := cache.DetailKey("vehicles", id)
	if v, ok := r.Cache.Get(key); ok {
		veh := v.(entity.Vehicle)
		return &veh, nil
	}

	var v entity.Vehicle
	if err := r.DB.Preload("Client").First(&v, "id = ?", id).Error; err != nil {
		return nil, err
	}
	r.Cache.Set(key, v)
	return &v, nil
}

// LatestByPlate returns the most recently created vehicle with the
// given normalized plate, any status. Used for the duplicate-plate
// prefill; plates are not unique across visits.
func (r *VehicleRepository) LatestByPlate(plate string) (*entity.Vehicle, error) {
	var v entity.Vehicle
	err := r.DB.Where("plate = ?", plate).Order("created_at DESC").First(&v).Error
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *VehicleRepository) Create(v *entity.Vehicle) error {
	if err := r.DB.Create(v).Error; err != nil {
		return err
	}
	r.Cache.InvalidateEntity("vehicles", v.ID)
	r.Feed.Publish("vehicles", v.ID, "insert")
	return nil
}

// UpdateContent writes non-status fields. The terminal lock is checked
// by the service before calling here.
func (r *VehicleRepository) UpdateContent(id string, updates map[string]any) (*entity.Vehicle, error) {
	res := r.DB.Model(&entity.Vehicle{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	r.Cache.InvalidateEntity("vehicles", id)
	r.Feed.Publish("vehicles", id, "update")

	var v entity.Vehicle
	if err := r.DB.Preload("Client").First(&v, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

// UpdateStatusGuard flips the status with a conditional update on the
// expected prior status. Zero rows affected means the vehicle was not
// in the expected state anymore; the caller maps that to a conflict,
// never a silent no-op.
func (r *VehicleRepository) UpdateStatusGuard(tx *gorm.DB, id string, from, to entity.VehicleStatus, stampedAt *time.Time) (bool, error) {
	updates := map[string]any{"status": to}
	switch to {
	case entity.StatusCheckedIn:
		updates["checkin_at"] = stampedAt
	case entity.StatusCheckedOut:
		updates["checkout_at"] = stampedAt
	}

	res := tx.Model(&entity.Vehicle{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, nil
	}

	r.Cache.InvalidateEntity("vehicles", id)
	r.Feed.Publish("vehicles", id, "update")
	return true, nil
}

// ForReport fetches the vehicle set for the report aggregation,
// optionally filtered by client and/or creating user.
func (r *VehicleRepository) ForReport(clientID, createdBy string) ([]entity.Vehicle, error) {
	var vehicles []entity.Vehicle
	q := r.DB.Preload("Client").Order("created_at DESC")
	if clientID != "" {
		q = q.Where("client_id = ?", clientID)
	}
	if createdBy != "" {
		q = q.Where("created_by = ?", createdBy)
	}
	if err := q.Find(&vehicles).Error; err != nil {
		return nil, err
	}
	return vehicles, nil
}

// CountByStatus powers the dashboard.
func (r *VehicleRepository) CountByStatus() (map[entity.VehicleStatus]int64, error) {
	var rows []struct {
		Status entity.VehicleStatus
		N      int64
	}
	err := r.DB.Model(&entity.Vehicle{}).
		Select("status, COUNT(*) AS n").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make(map[entity.VehicleStatus]int64, len(rows))
	for _, row := range rows {
		out[row.Status] = row.N
	}
	return out, nil
}
