package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/ismaeltironi-cloud/locadora-pro/entity"
)

// The three lifecycle transitions. Each one re-derives the caller's
// capabilities at the data boundary, holds the per-vehicle in-flight
// guard so a duplicate submission is rejected rather than queued, and
// flips the status with a conditional update on the expected prior
// status so a lost race surfaces as a conflict instead of a double
// transition.

// CheckIn moves awaiting_dropoff -> checked_in and stamps checkin_at.
// A photo is required unless the caller is an admin using the manual
// path.
func (s *VehicleService) CheckIn(ctx context.Context, userID, vehicleID string, photo *PhotoInput) (*entity.Vehicle, error) {
	return s.transition(ctx, userID, vehicleID, photo, transitionRule{
		from:       entity.StatusAwaitingDropoff,
		to:         entity.StatusCheckedIn,
		photoPhase: entity.PhotoTypeCheckin,
		allowed:    func(p entity.Permissions) bool { return p.CanCheckin },
	})
}

// CheckOut moves checked_in -> checked_out and stamps checkout_at.
func (s *VehicleService) CheckOut(ctx context.Context, userID, vehicleID string, photo *PhotoInput) (*entity.Vehicle, error) {
	return s.transition(ctx, userID, vehicleID, photo, transitionRule{
		from:       entity.StatusCheckedIn,
		to:         entity.StatusCheckedOut,
		photoPhase: entity.PhotoTypeCheckout,
		allowed:    func(p entity.Permissions) bool { return p.CanCheckout },
	})
}

// Cancel side-exits from any non-terminal state. It never stamps the
// check-in/check-out timestamps.
func (s *VehicleService) Cancel(ctx context.Context, userID, vehicleID string) (*entity.Vehicle, error) {
	if !s.guard.begin(vehicleID) {
		return nil, ErrMutationInFlight
	}
	defer s.guard.end(vehicleID)

	perms, err := s.auth.Permissions(userID)
	if err != nil {
		return nil, err
	}
	if !perms.IsAdmin && !perms.CanEdit {
		return nil, ErrForbidden
	}

	current, err := s.repo.FindByID(vehicleID)
	if err != nil {
		return nil, err
	}
	if !entity.CanTransition(current.Status, entity.StatusCancelled) {
		return nil, ErrLocked
	}

	ok, err := s.repo.UpdateStatusGuard(s.DB, vehicleID, current.Status, entity.StatusCancelled, nil)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrWrongState
	}
	return s.repo.FindByID(vehicleID)
}

type transitionRule struct {
	from       entity.VehicleStatus
	to         entity.VehicleStatus
	photoPhase entity.PhotoType
	allowed    func(entity.Permissions) bool
}

func (s *VehicleService) transition(ctx context.Context, userID, vehicleID string, photo *PhotoInput, rule transitionRule) (*entity.Vehicle, error) {
	if !s.guard.begin(vehicleID) {
		return nil, ErrMutationInFlight
	}
	defer s.guard.end(vehicleID)

	perms, err := s.auth.Permissions(userID)
	if err != nil {
		return nil, err
	}
	if !rule.allowed(perms) {
		return nil, ErrForbidden
	}

	current, err := s.repo.FindByID(vehicleID)
	if err != nil {
		return nil, err
	}
	if current.Locked() {
		return nil, ErrLocked
	}
	if current.Status != rule.from {
		return nil, ErrWrongState
	}

	// Photo-backed transition unless an admin takes the manual path.
	if photo == nil && !perms.IsAdmin {
		return nil, ErrPhotoRequired
	}

	var photoURL string
	if photo != nil {
		photoURL, err = s.storePhoto(ctx, vehicleID, rule.photoPhase, photo)
		if err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		ok, err := s.repo.UpdateStatusGuard(tx, vehicleID, rule.from, rule.to, &now)
		if err != nil {
			return err
		}
		if !ok {
			return ErrWrongState
		}
		if photoURL != "" {
			return s.photoRepo.Add(tx, &entity.VehiclePhoto{
				VehicleID: vehicleID,
				PhotoURL:  photoURL,
				PhotoType: rule.photoPhase,
				TakenBy:   userID,
				TakenAt:   now,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.repo.FindByID(vehicleID)
}
