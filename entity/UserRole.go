package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppRole string

const (
	RoleAdmin   AppRole = "admin"
	RoleManager AppRole = "manager"
	RoleViewer  AppRole = "viewer"
)

func (r AppRole) Valid() bool {
	return r == RoleAdmin || r == RoleManager || r == RoleViewer
}

type UserRole struct {
	ID     string  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID string  `gorm:"uniqueIndex;not null" json:"userId"`
	Role   AppRole `gorm:"not null;default:viewer" json:"role"`

	CanView     bool `json:"canView"`
	CanEdit     bool `json:"canEdit"`
	CanCheckin  bool `json:"canCheckin"`
	CanCheckout bool `json:"canCheckout"`

	CreatedAt time.Time `json:"createdAt"`
}

func (r *UserRole) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// Permissions are the effective capabilities after folding the admin
// override into the stored flags.
type Permissions struct {
	IsAdmin     bool
	CanEdit     bool
	CanCheckin  bool
	CanCheckout bool
}

// Effective derives the capabilities that gate actions. Admin implies
// everything regardless of the stored flags. A nil role (user without a
// user_roles row) yields the least-privileged result.
func (r *UserRole) Effective() Permissions {
	if r == nil {
		return Permissions{}
	}
	admin := r.Role == RoleAdmin
	return Permissions{
		IsAdmin:     admin,
		CanEdit:     admin || r.CanEdit,
		CanCheckin:  admin || r.CanCheckin,
		CanCheckout: admin || r.CanCheckout,
	}
}
