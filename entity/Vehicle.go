package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Vehicle struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	ClientID string `gorm:"not null;index" json:"clientId"`
	Client   Client `json:"client"`

	Plate   string `gorm:"not null;index" json:"plate"` // normalized: uppercase, alphanumeric only
	Brand   string `json:"brand"`
	Model   string `json:"model"`
	Year    int    `json:"year"`
	Color   string `json:"color"`
	Chassis string `json:"chassis"`
	KM      *int   `json:"km"`

	Status            VehicleStatus `gorm:"not null;default:awaiting_dropoff;index" json:"status"`
	DefectDescription string        `json:"defectDescription"`
	NeedsTow          bool          `json:"needsTow"`

	// Stamped only by the status transitions, never by content edits.
	CheckinAt  *time.Time `json:"checkinAt"`
	CheckoutAt *time.Time `json:"checkoutAt"`

	CreatedBy string `gorm:"index" json:"createdBy"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Photos []VehiclePhoto `json:"-"`
}

func (v *Vehicle) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	return nil
}

// Locked reports whether the record rejects further mutation.
func (v *Vehicle) Locked() bool {
	return v.Status.Terminal()
}
