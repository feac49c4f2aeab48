package services

import (
	"strings"

	"github.com/ismaeltironi-cloud/locadora-pro/entity"
	"github.com/ismaeltironi-cloud/locadora-pro/repository"
)

type ClientService struct {
	repo *repository.ClientRepository
	auth *AuthService
}

func NewClientService(repo *repository.ClientRepository, auth *AuthService) *ClientService {
	return &ClientService{repo: repo, auth: auth}
}

func (s *ClientService) List(search string) ([]entity.Client, error) {
	return s.repo.List(strings.TrimSpace(search))
}

func (s *ClientService) Get(id string) (*entity.Client, error) {
	return s.repo.FindByID(id)
}

func (s *ClientService) Create(userID string, c *entity.Client) error {
	perms, err := s.auth.Permissions(userID)
	if err != nil {
		return err
	}
	if !perms.CanEdit {
		return ErrForbidden
	}

	c.Name = strings.TrimSpace(c.Name)
	c.CNPJ = strings.TrimSpace(c.CNPJ)

	if err := s.repo.Create(c); err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateCNPJ
		}
		return err
	}
	return nil
}

// editableClientColumns: anything not listed never reaches the
// database, regardless of how the key is spelled.
var editableClientColumns = map[string]string{
	"name":    "name",
	"cnpj":    "cnpj",
	"address": "address",
	"phone":   "phone",
	"email":   "email",
}

func (s *ClientService) Update(userID, id string, updates map[string]any) (*entity.Client, error) {
	perms, err := s.auth.Permissions(userID)
	if err != nil {
		return nil, err
	}
	if !perms.CanEdit {
		return nil, ErrForbidden
	}

	filtered := make(map[string]any, len(updates))
	for key, col := range editableClientColumns {
		if v, ok := updates[key]; ok {
			filtered[col] = v
		}
	}
	if len(filtered) == 0 {
		return s.repo.FindByID(id)
	}

	client, err := s.repo.Update(id, filtered)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateCNPJ
		}
		return nil, err
	}
	return client, nil
}

func (s *ClientService) Delete(userID, id string) error {
	perms, err := s.auth.Permissions(userID)
	if err != nil {
		return err
	}
	if !perms.IsAdmin {
		return ErrForbidden
	}
	return s.repo.Delete(id)
}
