package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/ismaeltironi-cloud/locadora-pro/entity"
	"github.com/ismaeltironi-cloud/locadora-pro/pkg/cache"
	"github.com/ismaeltironi-cloud/locadora-pro/ws"
)

type UserRepository struct {
	DB    *gorm.DB
	Cache *cache.Store
	Feed  ws.Publisher
}

func NewUserRepository(db *gorm.DB, c *cache.Store, feed ws.Publisher) *UserRepository {
	return &UserRepository{DB: db, Cache: c, Feed: feed}
}

// ListWithRoles returns all profiles with their role rows preloaded,
// ordered by full name.
func (r *UserRepository) ListWithRoles() ([]entity.Profile, error) {
	key := cache.ListKey("users", "")
	if v, ok := r.Cache.Get(key); ok {
		return v.([]entity.Profile), nil
	}

	var profiles []entity.Profile
	if err := r.DB.Preload("UserRole").Order("full_name").Find(&profiles).Error; err != nil {
		return nil, err
	}

	r.Cache.Set(key, profiles)
	return profiles, nil
}

func (r *UserRepository) FindProfileByID(id string) (*entity.Profile, error) {
	var p entity.Profile
	if err := r.DB.First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// EmailForUsername is the login lookup: the UI collects a username, the
// credential check needs the email.
func (r *UserRepository) EmailForUsername(username string) (string, error) {
	var p entity.Profile
	if err := r.DB.Select("email").First(&p, "username = ?", username).Error; err != nil {
		return "", err
	}
	return p.Email, nil
}

func (r *UserRepository) FindProfileByEmail(email string) (*entity.Profile, error) {
	var p entity.Profile
	if err := r.DB.First(&p, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// RoleForUser returns nil without error when the user has no role row;
// the permission derivation treats that as least-privileged.
func (r *UserRepository) RoleForUser(userID string) (*entity.UserRole, error) {
	var role entity.UserRole
	err := r.DB.First(&role, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &role, nil
}

// CreateProfileWithRole creates both rows in one transaction so a
// failed role insert never leaves an orphaned profile.
func (r *UserRepository) CreateProfileWithRole(p *entity.Profile, role *entity.UserRole) error {
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(p).Error; err != nil {
			return err
		}
		role.UserID = p.ID
		return tx.Create(role).Error
	})
	if err != nil {
		return err
	}
	r.Cache.InvalidateEntity("profiles", p.ID)
	r.Feed.Publish("profiles", p.ID, "insert")
	return nil
}

func (r *UserRepository) UpdateProfile(id string, updates map[string]any) (*entity.Profile, error) {
	res := r.DB.Model(&entity.Profile{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	r.Cache.InvalidateEntity("profiles", id)
	r.Feed.Publish("profiles", id, "update")
	return r.FindProfileByID(id)
}

// UpsertRole updates the user's role row, creating it when absent.
func (r *UserRepository) UpsertRole(userID string, role entity.AppRole, canView, canEdit, canCheckin, canCheckout bool) (*entity.UserRole, error) {
	var existing entity.UserRole
	err := r.DB.First(&existing, "user_id = ?", userID).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		existing = entity.UserRole{
			UserID: userID, Role: role,
			CanView: canView, CanEdit: canEdit,
			CanCheckin: canCheckin, CanCheckout: canCheckout,
		}
		if err := r.DB.Create(&existing).Error; err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		updates := map[string]any{
			"role":         role,
			"can_view":     canView,
			"can_edit":     canEdit,
			"can_checkin":  canCheckin,
			"can_checkout": canCheckout,
		}
		if err := r.DB.Model(&existing).Updates(updates).Error; err != nil {
			return nil, err
		}
		if err := r.DB.First(&existing, "user_id = ?", userID).Error; err != nil {
			return nil, err
		}
	}

	r.Cache.InvalidateEntity("user_roles", existing.ID)
	r.Feed.Publish("user_roles", existing.ID, "update")
	return &existing, nil
}
