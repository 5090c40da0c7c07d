package booking

import (
	"errors"
	"fmt"
)

// ErrSlotHeld is returned when another customer is mid-confirmation on the
// same start time. The hold expires on its own; the caller should retry or
// pick another slot.
var ErrSlotHeld = errors.New("slot is being confirmed by another customer")

// ErrUnknownService is returned when the requested service does not exist
// on the salon profile.
var ErrUnknownService = errors.New("unknown service")

// ErrUnknownProfessional is returned when the requested professional does
// not belong to the salon.
var ErrUnknownProfessional = errors.New("unknown professional")

// ErrNotFound is returned when the referenced appointment does not exist.
var ErrNotFound = errors.New("appointment not found")

// ConflictError wraps the availability rejection that stopped a booking,
// preserving the reason for the API response.
type ConflictError struct {
	Reason error
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("slot unavailable: %v", e.Reason)
}

func (e *ConflictError) Unwrap() error { return e.Reason }
