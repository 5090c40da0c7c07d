package calendar

import (
	"errors"
	"fmt"
)

// ConfigError marks a salon schedule configuration problem (malformed
// open/close or lunch strings, a wall-clock time that does not exist on the
// target date). It aborts the computation for that date and is reported as
// an empty result at the boundary, never as a raised failure.
type ConfigError struct {
	Field string
	Value string
	Err   error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid schedule configuration: %s=%q: %v", e.Field, e.Value, e.Err)
	}
	return fmt.Sprintf("invalid schedule configuration: %s=%q", e.Field, e.Value)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// Conflict reasons returned by IsSlotAvailable. They let the booking flow
// reject a proposal explicitly instead of reporting a generic failure.
var (
	ErrDayClosed           = errors.New("salon is closed on the requested day")
	ErrOutsideWorkingHours = errors.New("proposed time falls outside working hours")
	ErrLunchConflict       = errors.New("proposed time overlaps the lunch break")
	ErrBookingConflict     = errors.New("proposed time overlaps an existing booking")
	ErrExternalConflict    = errors.New("proposed time overlaps an external calendar event")
)

// IsConflict reports whether err is a definite conflict rejection rather
// than an upstream failure. Upstream failures on the check path still mean
// "not available", but callers may want to present them differently.
func IsConflict(err error) bool {
	return errors.Is(err, ErrDayClosed) ||
		errors.Is(err, ErrOutsideWorkingHours) ||
		errors.Is(err, ErrLunchConflict) ||
		errors.Is(err, ErrBookingConflict) ||
		errors.Is(err, ErrExternalConflict)
}
