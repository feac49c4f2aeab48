package services

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/ismaeltironi-cloud/locadora-pro/entity"
	"github.com/ismaeltironi-cloud/locadora-pro/repository"
	"github.com/ismaeltironi-cloud/locadora-pro/utils"
)

type AuthService struct {
	userRepo  *repository.UserRepository
	jwtSecret string
	jwtTTL    time.Duration
}

func NewAuthService(repo *repository.UserRepository, secret string, ttl time.Duration) *AuthService {
	return &AuthService{userRepo: repo, jwtSecret: secret, jwtTTL: ttl}
}

// Login resolves the username to its login email, checks the password
// and issues a JWT. All failures collapse into invalid credentials so
// the response never reveals whether the username exists.
func (s *AuthService) Login(username, password string) (string, *entity.Profile, *entity.UserRole, error) {
	username = strings.ToLower(strings.TrimSpace(username))

	email, err := s.userRepo.EmailForUsername(username)
	if err != nil {
		return "", nil, nil, ErrInvalidCredentials
	}

	profile, err := s.userRepo.FindProfileByEmail(email)
	if err != nil {
		return "", nil, nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(profile.Password), []byte(password)); err != nil {
		return "", nil, nil, ErrInvalidCredentials
	}

	role, err := s.userRepo.RoleForUser(profile.ID)
	if err != nil {
		return "", nil, nil, err
	}

	roleName := string(entity.RoleViewer)
	if role != nil {
		roleName = string(role.Role)
	}
	token, err := utils.GenerateToken(profile.ID, roleName, s.jwtSecret, s.jwtTTL)
	if err != nil {
		return "", nil, nil, errors.New("cannot generate token")
	}

	return token, profile, role, nil
}

// GetProfile loads the profile/role pair for the session user.
func (s *AuthService) GetProfile(userID string) (*entity.Profile, *entity.UserRole, error) {
	profile, err := s.userRepo.FindProfileByID(userID)
	if err != nil {
		return nil, nil, err
	}
	role, err := s.userRepo.RoleForUser(userID)
	if err != nil {
		return nil, nil, err
	}
	return profile, role, nil
}

func (s *AuthService) UpdateProfile(userID string, fullName, username string) (*entity.Profile, error) {
	updates := map[string]any{}
	if fullName != "" {
		updates["full_name"] = strings.TrimSpace(fullName)
	}
	if username != "" {
		updates["username"] = strings.ToLower(strings.TrimSpace(username))
	}
	if len(updates) == 0 {
		return s.userRepo.FindProfileByID(userID)
	}

	profile, err := s.userRepo.UpdateProfile(userID, updates)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateUsername
		}
		return nil, err
	}
	return profile, nil
}

// Permissions derives the caller's effective capabilities from its role
// row. Every gated service path goes through here rather than trusting
// the token's role claim.
func (s *AuthService) Permissions(userID string) (entity.Permissions, error) {
	role, err := s.userRepo.RoleForUser(userID)
	if err != nil {
		return entity.Permissions{}, err
	}
	return role.Effective(), nil
}

// isUniqueViolation recognizes unique-index failures across the
// supported drivers.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}
