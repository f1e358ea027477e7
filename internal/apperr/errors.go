package apperr

import "errors"

// ErrInvalid is returned when the input fails domain validation.
var ErrInvalid = errors.New("invalid input")

// ErrUnauthorized is returned when the deliverer lacks a license class
// permitting motorcycle rental.
var ErrUnauthorized = errors.New("deliverer not authorized")

// ErrInvalidDateRange is returned when the requested rental window does not
// start strictly after today in the reference timezone.
var ErrInvalidDateRange = errors.New("invalid date range")

// ErrNoPlanAvailable is returned when the requested duration exceeds every
// catalog tier.
var ErrNoPlanAvailable = errors.New("no rental plan available")

// ErrNotFound indicates that the requested resource does not exist or is not
// in the expected state.
var ErrNotFound = errors.New("not found")

// ErrConflict indicates a uniqueness or state conflict.
var ErrConflict = errors.New("conflict")

// ErrResourceUnavailable signals that no motorcycle could be claimed. It is
// internal to the resolution path and drives the REJECTED transition; it is
// never surfaced to API callers.
var ErrResourceUnavailable = errors.New("no motorcycle available")
