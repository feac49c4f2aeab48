package configs

import (
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/ismaeltironi-cloud/locadora-pro/entity"
)

// SeedAdmin creates the first admin account when no profiles exist yet.
// Second boot is a no-op.
func SeedAdmin(db *gorm.DB, cfg *Config) error {
	var count int64
	if err := db.Model(&entity.Profile{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		log.Println("skip seeding admin: missing ADMIN_EMAIL/ADMIN_PASSWORD")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		admin := entity.Profile{
			Email:    cfg.AdminEmail,
			Username: cfg.AdminUsername,
			FullName: cfg.AdminFullName,
			Password: string(hash),
		}
		if err := tx.Create(&admin).Error; err != nil {
			return err
		}
		role := entity.UserRole{
			UserID:      admin.ID,
			Role:        entity.RoleAdmin,
			CanView:     true,
			CanEdit:     true,
			CanCheckin:  true,
			CanCheckout: true,
		}
		return tx.Create(&role).Error
	})
}
