package services

import "errors"

// One sentinel per user-visible failure class; controllers map these to
// HTTP statuses without rewording them per call site.
var (
	ErrForbidden          = errors.New("forbidden")
	ErrLocked             = errors.New("record is locked")
	ErrWrongState         = errors.New("vehicle is not in the required status")
	ErrMutationInFlight   = errors.New("a mutation for this vehicle is already in flight")
	ErrPhotoRequired      = errors.New("photo evidence required for this transition")
	ErrDuplicateCNPJ      = errors.New("a client with this cnpj already exists")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrDuplicateUsername  = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrClientNotFound     = errors.New("client not found")
	ErrInvalidPlate       = errors.New("plate must be 7 alphanumeric characters")
)
