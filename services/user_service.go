package services

import (
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/ismaeltironi-cloud/locadora-pro/entity"
	"github.com/ismaeltironi-cloud/locadora-pro/repository"
)

type UserService struct {
	repo *repository.UserRepository
	auth *AuthService
}

func NewUserService(repo *repository.UserRepository, auth *AuthService) *UserService {
	return &UserService{repo: repo, auth: auth}
}

func (s *UserService) List(callerID string) ([]entity.Profile, error) {
	if err := s.requireAdmin(callerID); err != nil {
		return nil, err
	}
	return s.repo.ListWithRoles()
}

type CreateUserInput struct {
	Email    string
	Password string
	Username string
	FullName string

	Role        entity.AppRole
	CanView     bool
	CanEdit     bool
	CanCheckin  bool
	CanCheckout bool
}

// Create makes the profile and its role row in one transaction. Only
// admins may create users.
func (s *UserService) Create(callerID string, in CreateUserInput) (*entity.Profile, error) {
	if err := s.requireAdmin(callerID); err != nil {
		return nil, err
	}

	if in.Role == "" {
		in.Role = entity.RoleViewer
	}
	if !in.Role.Valid() {
		in.Role = entity.RoleViewer
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	profile := &entity.Profile{
		Email:    strings.ToLower(strings.TrimSpace(in.Email)),
		Username: strings.ToLower(strings.TrimSpace(in.Username)),
		FullName: strings.TrimSpace(in.FullName),
		Password: string(hash),
	}
	role := &entity.UserRole{
		Role:        in.Role,
		CanView:     in.CanView,
		CanEdit:     in.CanEdit,
		CanCheckin:  in.CanCheckin,
		CanCheckout: in.CanCheckout,
	}

	if err := s.repo.CreateProfileWithRole(profile, role); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}
	return profile, nil
}

// UpdateRole upserts a user's role and capability flags.
func (s *UserService) UpdateRole(callerID, userID string, role entity.AppRole, canView, canEdit, canCheckin, canCheckout bool) (*entity.UserRole, error) {
	if err := s.requireAdmin(callerID); err != nil {
		return nil, err
	}
	if !role.Valid() {
		role = entity.RoleViewer
	}
	if _, err := s.repo.FindProfileByID(userID); err != nil {
		return nil, err
	}
	return s.repo.UpsertRole(userID, role, canView, canEdit, canCheckin, canCheckout)
}

func (s *UserService) requireAdmin(callerID string) error {
	perms, err := s.auth.Permissions(callerID)
	if err != nil {
		return err
	}
	if !perms.IsAdmin {
		return ErrForbidden
	}
	return nil
}
