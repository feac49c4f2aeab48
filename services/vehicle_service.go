package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/ismaeltironi-cloud/locadora-pro/entity"
	"github.com/ismaeltironi-cloud/locadora-pro/pkg/storage"
	"github.com/ismaeltironi-cloud/locadora-pro/repository"
	"github.com/ismaeltironi-cloud/locadora-pro/utils"
)

type VehicleService struct {
	DB        *gorm.DB
	repo      *repository.VehicleRepository
	photoRepo *repository.PhotoRepository
	auth      *AuthService
	store     storage.ObjectStore
	guard     *inflightGuard
}

func NewVehicleService(db *gorm.DB, repo *repository.VehicleRepository, photoRepo *repository.PhotoRepository, auth *AuthService, store storage.ObjectStore) *VehicleService {
	return &VehicleService{
		DB:        db,
		repo:      repo,
		photoRepo: photoRepo,
		auth:      auth,
		store:     store,
		guard:     newInflightGuard(),
	}
}

func (s *VehicleService) List(clientID string) ([]entity.Vehicle, error) {
	return s.repo.List(clientID)
}

func (s *VehicleService) Get(id string) (*entity.Vehicle, error) {
	return s.repo.FindByID(id)
}

// PrefillByPlate looks up the most recent vehicle with the same plate
// so the form can prefill brand/model/year/color/chassis/km. It is a
// convenience lookup: plates are not unique across visits, and a miss
// is not an error.
func (s *VehicleService) PrefillByPlate(plate string) (*entity.Vehicle, error) {
	normalized := utils.NormalizePlate(plate)
	if len(normalized) < 7 {
		return nil, nil
	}
	v, err := s.repo.LatestByPlate(normalized)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Create registers a vehicle in awaiting_dropoff. The status cannot be
// chosen by the caller; only the transitions move it.
func (s *VehicleService) Create(userID string, v *entity.Vehicle) error {
	perms, err := s.auth.Permissions(userID)
	if err != nil {
		return err
	}
	if !perms.CanEdit {
		return ErrForbidden
	}

	v.Plate = utils.NormalizePlate(v.Plate)
	if !utils.ValidPlate(v.Plate) {
		return ErrInvalidPlate
	}
	if strings.TrimSpace(v.ClientID) == "" {
		return errors.New("client is required")
	}

	v.Status = entity.StatusAwaitingDropoff
	v.CheckinAt = nil
	v.CheckoutAt = nil
	v.CreatedBy = userID
	return s.repo.Create(v)
}

// editableVehicleColumns maps accepted input keys (JSON names and raw
// column names) to the columns a content edit may touch. Status, its
// timestamps, ownership and audit fields are absent on purpose: they
// belong to the transitions and the create path alone, and anything not
// listed here never reaches the database no matter how it is spelled.
var editableVehicleColumns = map[string]string{
	"plate":             "plate",
	"brand":             "brand",
	"model":             "model",
	"year":              "year",
	"color":             "color",
	"chassis":           "chassis",
	"km":                "km",
	"defectDescription": "defect_description",
	"defect_description": "defect_description",
	"needsTow":          "needs_tow",
	"needs_tow":         "needs_tow",
}

// UpdateContent edits non-status fields. Locked records reject all
// content mutation regardless of capability.
func (s *VehicleService) UpdateContent(userID, id string, updates map[string]any) (*entity.Vehicle, error) {
	perms, err := s.auth.Permissions(userID)
	if err != nil {
		return nil, err
	}
	if !perms.CanEdit {
		return nil, ErrForbidden
	}

	current, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if current.Locked() {
		return nil, ErrLocked
	}

	filtered := make(map[string]any, len(updates))
	for key, col := range editableVehicleColumns {
		if v, ok := updates[key]; ok {
			filtered[col] = v
		}
	}
	if len(filtered) == 0 {
		return current, nil
	}

	if raw, ok := filtered["plate"]; ok {
		plate, _ := raw.(string)
		plate = utils.NormalizePlate(plate)
		if !utils.ValidPlate(plate) {
			return nil, ErrInvalidPlate
		}
		filtered["plate"] = plate
	}

	return s.repo.UpdateContent(id, filtered)
}

func (s *VehicleService) ListPhotos(vehicleID string) ([]entity.VehiclePhoto, error) {
	return s.photoRepo.ListForVehicle(vehicleID)
}

// PhotoInput is base64 image data as submitted by the UI.
type PhotoInput struct {
	Base64      string
	ContentType string
}

// storePhoto uploads the image under the vehicle's deterministic key
// and returns the public URL.
func (s *VehicleService) storePhoto(ctx context.Context, vehicleID string, phase entity.PhotoType, photo *PhotoInput) (string, error) {
	data, contentType, err := utils.DecodeBase64Image(photo.Base64, photo.ContentType)
	if err != nil {
		return "", err
	}
	key := fmt.Sprintf("%s/%s_%d.%s", vehicleID, phase, time.Now().Unix(), utils.ImageExt(contentType))
	return s.store.PutPublic(ctx, key, data, contentType)
}
