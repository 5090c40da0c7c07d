package models

import "time"

// Appointment statuses. Canceled and rejected appointments never block a
// time slot; everything else does.
const (
	StatusConfirmed      = "confirmed"
	StatusPendingPayment = "pendingPayment"
	StatusManual         = "manual"
	StatusCanceled       = "canceled"
	StatusRejected       = "rejected"
)

// Appointment represents a stored booking record. Start and end times are
// absolute instants persisted in UTC.
type Appointment struct {
	ID               string    `bson:"id" json:"id"`
	SalonID          string    `bson:"salonId" json:"salonId"`
	ServiceID        string    `bson:"serviceId" json:"serviceId"`
	ServiceName      string    `bson:"serviceName" json:"serviceName"`
	ProfessionalID   string    `bson:"professionalId,omitempty" json:"professionalId,omitempty"`
	ProfessionalName string    `bson:"professionalName,omitempty" json:"professionalName,omitempty"`
	DurationMinutes  int       `bson:"durationMinutes" json:"durationMinutes"`
	StartTime        time.Time `bson:"startTime" json:"startTime"`
	EndTime          time.Time `bson:"endTime" json:"endTime"`
	CustomerName     string    `bson:"customerName" json:"customerName"`
	CustomerPhone    string    `bson:"customerPhone" json:"customerPhone"`
	CustomerEmail    string    `bson:"customerEmail,omitempty" json:"customerEmail,omitempty"`
	Status           string    `bson:"status" json:"status"`
	GoogleEventID    string    `bson:"googleEventId,omitempty" json:"googleEventId,omitempty"`
	ReminderSent     bool      `bson:"reminderSent" json:"reminderSent"`
	CreatedAt        time.Time `bson:"createdAt" json:"createdAt"`
}

// Blocks reports whether this appointment occupies its time span.
func (a *Appointment) Blocks() bool {
	return a.Status != StatusCanceled && a.Status != StatusRejected
}
