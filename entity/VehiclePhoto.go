package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PhotoType string

const (
	PhotoTypeCheckin  PhotoType = "checkin"
	PhotoTypeCheckout PhotoType = "checkout"
)

// VehiclePhoto rows are append-only; the application never updates or
// deletes them. Multiple photos per vehicle per type are allowed.
type VehiclePhoto struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	VehicleID string    `gorm:"not null;index" json:"vehicleId"`
	PhotoURL  string    `gorm:"not null" json:"photoUrl"`
	PhotoType PhotoType `gorm:"not null" json:"photoType"`
	TakenBy   string    `json:"takenBy"`
	TakenAt   time.Time `json:"takenAt"`
	CreatedAt time.Time `json:"createdAt"`
}

func (p *VehiclePhoto) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
