package oficina

import (
	"errors"
	"fmt"
)

var (
	// ErrNoSelector is returned when a query names neither plates,
	// status, nor id.
	ErrNoSelector = errors.New("query requires plates, status or id")

	ErrNotFound = errors.New("service order not found")
)

// APIError is a non-2xx reply from the external system.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("oficina pro replied %d: %s", e.StatusCode, e.Body)
}

// EnumRejectedError means the external store rejected a status value.
// Valid carries the probed set of currently accepted values; it is
// diagnostic and may be empty when the probe itself failed.
type EnumRejectedError struct {
	Attempted string
	Valid     []string
	Cause     error
}

func (e *EnumRejectedError) Error() string {
	if len(e.Valid) > 0 {
		return fmt.Sprintf("status %q rejected by external store; valid values: %v", e.Attempted, e.Valid)
	}
	return fmt.Sprintf("status %q rejected by external store", e.Attempted)
}

func (e *EnumRejectedError) Unwrap() error { return e.Cause }

// PhotoOrphanedError means the photo upload succeeded but the row
// update afterwards failed. The object stays in place under PhotoURL so
// an operator can reconcile instead of losing the evidence.
type PhotoOrphanedError struct {
	PhotoURL string
	Cause    error
}

func (e *PhotoOrphanedError) Error() string {
	return fmt.Sprintf("photo stored at %s but order update failed: %v", e.PhotoURL, e.Cause)
}

func (e *PhotoOrphanedError) Unwrap() error { return e.Cause }
