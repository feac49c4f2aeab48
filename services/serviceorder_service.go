package services

import (
	"context"

	"github.com/ismaeltironi-cloud/locadora-pro/entity"
	"github.com/ismaeltironi-cloud/locadora-pro/pkg/oficina"
	"github.com/ismaeltironi-cloud/locadora-pro/utils"
)

// ServiceOrderService layers the local permission model on top of the
// external Oficina Pro mirror. Reads are open to any authenticated
// user; every write is gated by the same capabilities that gate the
// local lifecycle.
type ServiceOrderService struct {
	client *oficina.Client
	auth   *AuthService
}

func NewServiceOrderService(client *oficina.Client, auth *AuthService) *ServiceOrderService {
	return &ServiceOrderService{client: client, auth: auth}
}

func (s *ServiceOrderService) Fetch(ctx context.Context, q oficina.Query) ([]oficina.Order, error) {
	return s.client.Fetch(ctx, q)
}

func (s *ServiceOrderService) Get(ctx context.Context, id string) (*oficina.Order, error) {
	return s.client.FetchByID(ctx, id)
}

func (s *ServiceOrderService) UpdateStatus(ctx context.Context, userID, id string, to entity.VehicleStatus) (*oficina.Order, error) {
	perms, err := s.auth.Permissions(userID)
	if err != nil {
		return nil, err
	}
	if !perms.CanEdit {
		return nil, ErrForbidden
	}
	if !to.Valid() {
		return nil, ErrWrongState
	}
	return s.client.UpdateStatus(ctx, id, to)
}

// AttachPhoto runs the photo-backed check-in/check-out against the
// external order. The capability requirement follows the phase.
func (s *ServiceOrderService) AttachPhoto(ctx context.Context, userID, id string, phase entity.PhotoType, photoBase64, contentType string) (*oficina.Order, string, error) {
	perms, err := s.auth.Permissions(userID)
	if err != nil {
		return nil, "", err
	}
	switch phase {
	case entity.PhotoTypeCheckin:
		if !perms.CanCheckin {
			return nil, "", ErrForbidden
		}
	case entity.PhotoTypeCheckout:
		if !perms.CanCheckout {
			return nil, "", ErrForbidden
		}
	default:
		return nil, "", ErrWrongState
	}

	data, ct, err := utils.DecodeBase64Image(photoBase64, contentType)
	if err != nil {
		return nil, "", err
	}
	return s.client.AttachPhoto(ctx, id, phase, data, ct)
}

func (s *ServiceOrderService) ListStatuses(ctx context.Context) ([]string, error) {
	return s.client.ListStatuses(ctx)
}
