package appointmentRepo

import (
	"errors"
	"time"

	"salonbook/models"
)

// ErrSlotTaken is returned by InsertIfFree when a conflicting appointment
// was found in the store at write time.
var ErrSlotTaken = errors.New("slot already taken by a conflicting appointment")

// AppointmentRepository defines persistence operations on appointment records.
type AppointmentRepository interface {
	// QueryByTimeRange returns all appointments for the salon whose start
	// falls within [from, to]. A non-empty professionalID narrows the
	// result to that professional's bookings; empty returns everything.
	// No status filtering happens here; callers decide which statuses
	// block.
	QueryByTimeRange(salonID, professionalID string, from, to time.Time) ([]models.Appointment, error)

	GetByID(salonID, id string) (*models.Appointment, error)

	// InsertIfFree inserts the appointment only if no non-canceled
	// appointment overlapping [StartTime, EndTime) exists for the salon.
	// Returns ErrSlotTaken when the precondition fails. The check and the
	// insert are two store operations, not a transaction; this narrows the
	// check-then-commit window to a single round trip but does not close it.
	InsertIfFree(appt *models.Appointment) error

	UpdateStatus(salonID, id, status string) error

	// UpdateTimes moves an appointment (reschedule) and records the
	// replacement Google event, if any.
	UpdateTimes(salonID, id string, start, end time.Time, googleEventID string) error

	// FindDueReminders returns confirmed appointments starting within
	// [from, to) whose reminder has not been sent yet.
	FindDueReminders(from, to time.Time) ([]models.Appointment, error)

	MarkReminderSent(salonID, id string) error
}
