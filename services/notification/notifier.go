package notification

import (
	"salonbook/models"
	"salonbook/utils"

	"go.uber.org/zap"
)

// Notifier delivers customer-facing messages about bookings. Delivery
// channels (email, WhatsApp) plug in behind this interface.
type Notifier interface {
	SendBookingConfirmation(appt *models.Appointment, salonName string) error
	SendReminder(appt *models.Appointment, salonName string) error
}

// LogNotifier records notifications in the application log. It stands in
// until a real delivery channel is configured.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (n *LogNotifier) SendBookingConfirmation(appt *models.Appointment, salonName string) error {
	utils.GetLogger().Info("booking confirmation",
		zap.String("salonName", salonName),
		zap.String("appointmentID", appt.ID),
		zap.String("customer", appt.CustomerName),
		zap.Time("startTime", appt.StartTime),
		zap.String("service", appt.ServiceName),
	)
	return nil
}

func (n *LogNotifier) SendReminder(appt *models.Appointment, salonName string) error {
	utils.GetLogger().Info("booking reminder",
		zap.String("salonName", salonName),
		zap.String("appointmentID", appt.ID),
		zap.String("customer", appt.CustomerName),
		zap.Time("startTime", appt.StartTime),
	)
	return nil
}
