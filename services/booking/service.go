package booking

import (
	"context"
	"fmt"
	"time"

	"salonbook/config"
	appointmentRepo "salonbook/database/repository/appointment"
	professionalRepo "salonbook/database/repository/professional"
	salonRepo "salonbook/database/repository/salon"
	"salonbook/models"
	"salonbook/services/calendar"
	"salonbook/services/gcal"
	"salonbook/services/notification"
	"salonbook/utils"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// holdTTL bounds how long a slot stays reserved while a customer finishes
// confirmation. Expiry is Redis-side; an abandoned confirmation frees the
// slot without cleanup.
const holdTTL = 30 * time.Second

// CreateBookingRequest carries everything needed to book a slot. A
// professional is optional; when set the booking occupies only that
// professional's agenda.
type CreateBookingRequest struct {
	SalonID        string    `json:"salonId" binding:"required"`
	ServiceID      string    `json:"serviceId" binding:"required"`
	ProfessionalID string    `json:"professionalId"`
	StartTime      time.Time `json:"startTime" binding:"required"`
	CustomerName   string    `json:"customerName" binding:"required"`
	CustomerPhone  string    `json:"customerPhone" binding:"required"`
	CustomerEmail  string    `json:"customerEmail"`
}

// BookingService drives the booking lifecycle: create, cancel, reschedule.
type BookingService interface {
	CreateBooking(req CreateBookingRequest) (*models.Appointment, error)
	CancelBooking(salonID, appointmentID string) error
	RescheduleBooking(salonID, appointmentID string, newStart time.Time) (*models.Appointment, error)
}

// DefaultBookingService is the production implementation.
type DefaultBookingService struct {
	Salons        salonRepo.SalonRepository
	Appointments  appointmentRepo.AppointmentRepository
	Professionals professionalRepo.ProfessionalRepository
	Availability  calendar.CalendarService
	Calendar      gcal.Factory
	EventRetry    gcal.RetryPolicy
	Notifier      notification.Notifier
	Cache         *redis.Client // nil disables slot holds and cache invalidation
	Now           func() time.Time
}

func NewDefaultBookingService(
	salons salonRepo.SalonRepository,
	appointments appointmentRepo.AppointmentRepository,
	pros professionalRepo.ProfessionalRepository,
	availability calendar.CalendarService,
	notifier notification.Notifier,
	cache *redis.Client,
) *DefaultBookingService {
	return &DefaultBookingService{
		Salons:        salons,
		Appointments:  appointments,
		Professionals: pros,
		Availability:  availability,
		Calendar:      gcal.NewGoogleClient,
		EventRetry:    gcal.RetryPolicy{MaxAttempts: config.AppConfig.CalendarCheckRetries, Backoff: 2 * time.Second},
		Notifier:      notifier,
		Cache:         cache,
	}
}

func (s *DefaultBookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// CreateBooking validates availability and persists a confirmed appointment.
// The Google event is written best-effort after the store commit; a calendar
// outage never loses a booking.
func (s *DefaultBookingService) CreateBooking(req CreateBookingRequest) (*models.Appointment, error) {
	logger := utils.GetLogger()

	salon, err := s.Salons.GetByID(req.SalonID)
	if err != nil {
		return nil, err
	}
	svc, ok := salon.ServiceByID(req.ServiceID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownService, req.ServiceID)
	}

	professionalName := ""
	if req.ProfessionalID != "" {
		pro, err := s.Professionals.GetByID(salon.ID, req.ProfessionalID)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrUnknownProfessional, req.ProfessionalID)
		}
		professionalName = pro.Name
	}

	release, err := s.holdSlot(salon.ID, req.StartTime)
	if err != nil {
		return nil, err
	}
	defer release()

	available, err := s.Availability.IsSlotAvailable(salon, req.StartTime, svc.DurationMinutes,
		calendar.CheckOptions{ProfessionalID: req.ProfessionalID})
	if err != nil {
		if calendar.IsConflict(err) {
			return nil, &ConflictError{Reason: err}
		}
		return nil, err
	}
	if !available {
		return nil, &ConflictError{Reason: calendar.ErrBookingConflict}
	}

	appt := &models.Appointment{
		ID:               uuid.NewString(),
		SalonID:          salon.ID,
		ServiceID:        svc.ID,
		ServiceName:      svc.Name,
		ProfessionalID:   req.ProfessionalID,
		ProfessionalName: professionalName,
		DurationMinutes:  svc.DurationMinutes,
		StartTime:        req.StartTime.UTC(),
		EndTime:          req.StartTime.Add(time.Duration(svc.DurationMinutes) * time.Minute).UTC(),
		CustomerName:     req.CustomerName,
		CustomerPhone:    req.CustomerPhone,
		CustomerEmail:    req.CustomerEmail,
		Status:           models.StatusConfirmed,
		CreatedAt:        s.now().UTC(),
	}
	if err := s.Appointments.InsertIfFree(appt); err != nil {
		if err == appointmentRepo.ErrSlotTaken {
			return nil, &ConflictError{Reason: calendar.ErrBookingConflict}
		}
		return nil, err
	}

	if eventID := s.insertCalendarEvent(salon, appt); eventID != "" {
		appt.GoogleEventID = eventID
		if err := s.Appointments.UpdateTimes(salon.ID, appt.ID, appt.StartTime, appt.EndTime, eventID); err != nil {
			logger.Warn("failed to record google event on appointment",
				zap.String("appointmentID", appt.ID), zap.Error(err))
		}
	}

	if err := s.Notifier.SendBookingConfirmation(appt, salon.Name); err != nil {
		logger.Warn("confirmation notification failed",
			zap.String("appointmentID", appt.ID), zap.Error(err))
	}

	s.invalidateSlotCache(salon, appt.StartTime)
	logger.Info("booking created",
		zap.String("salonID", salon.ID),
		zap.String("appointmentID", appt.ID),
		zap.Time("startTime", appt.StartTime),
	)
	return appt, nil
}

// CancelBooking marks an appointment canceled and removes its calendar event.
func (s *DefaultBookingService) CancelBooking(salonID, appointmentID string) error {
	appt, err := s.Appointments.GetByID(salonID, appointmentID)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrNotFound, appointmentID)
	}
	if err := s.Appointments.UpdateStatus(salonID, appointmentID, models.StatusCanceled); err != nil {
		return err
	}

	if salon, err := s.Salons.GetByID(salonID); err == nil {
		if appt.GoogleEventID != "" && salon.GoogleSyncEnabled && salon.GoogleRefreshToken != "" {
			s.deleteCalendarEvent(salon, appt.GoogleEventID)
		}
		s.invalidateSlotCache(salon, appt.StartTime)
	}
	utils.GetLogger().Info("booking canceled",
		zap.String("salonID", salonID),
		zap.String("appointmentID", appointmentID),
	)
	return nil
}

// RescheduleBooking moves an appointment to a new start, keeping its
// duration. The old calendar event is swapped for a new one best-effort.
func (s *DefaultBookingService) RescheduleBooking(salonID, appointmentID string, newStart time.Time) (*models.Appointment, error) {
	logger := utils.GetLogger()

	salon, err := s.Salons.GetByID(salonID)
	if err != nil {
		return nil, err
	}
	appt, err := s.Appointments.GetByID(salonID, appointmentID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, appointmentID)
	}

	release, err := s.holdSlot(salonID, newStart)
	if err != nil {
		return nil, err
	}
	defer release()

	// The appointment's own record and event must not count against the
	// new time; the professional assignment carries over.
	opts := calendar.CheckOptions{
		IgnoreBookingID: appt.ID,
		IgnoreEventID:   appt.GoogleEventID,
		ProfessionalID:  appt.ProfessionalID,
	}
	available, err := s.Availability.IsSlotAvailable(salon, newStart, appt.DurationMinutes, opts)
	if err != nil {
		if calendar.IsConflict(err) {
			return nil, &ConflictError{Reason: err}
		}
		return nil, err
	}
	if !available {
		return nil, &ConflictError{Reason: calendar.ErrBookingConflict}
	}

	oldStart := appt.StartTime
	oldEventID := appt.GoogleEventID

	appt.StartTime = newStart.UTC()
	appt.EndTime = newStart.Add(time.Duration(appt.DurationMinutes) * time.Minute).UTC()
	appt.GoogleEventID = ""

	if salon.GoogleSyncEnabled && salon.GoogleRefreshToken != "" {
		if oldEventID != "" {
			s.deleteCalendarEvent(salon, oldEventID)
		}
		appt.GoogleEventID = s.insertCalendarEvent(salon, appt)
	}

	if err := s.Appointments.UpdateTimes(salonID, appt.ID, appt.StartTime, appt.EndTime, appt.GoogleEventID); err != nil {
		return nil, err
	}

	s.invalidateSlotCache(salon, oldStart)
	s.invalidateSlotCache(salon, appt.StartTime)
	logger.Info("booking rescheduled",
		zap.String("salonID", salonID),
		zap.String("appointmentID", appointmentID),
		zap.Time("newStart", appt.StartTime),
	)
	return appt, nil
}

// holdSlot takes a short-lived exclusive hold on the start time so two
// customers cannot race through confirmation together. Returns the release
// function; a nil cache degrades to no hold.
func (s *DefaultBookingService) holdSlot(salonID string, start time.Time) (func(), error) {
	if s.Cache == nil {
		return func() {}, nil
	}
	key := utils.SlotHoldKey(salonID, start)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	ok, err := s.Cache.SetNX(ctx, key, "1", holdTTL).Result()
	if err != nil {
		// A cache outage must not stop bookings; the store precondition
		// still guards against double writes.
		utils.GetLogger().Debug("slot hold failed", zap.String("key", key), zap.Error(err))
		return func() {}, nil
	}
	if !ok {
		return nil, ErrSlotHeld
	}
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		s.Cache.Del(ctx, key)
	}, nil
}

func (s *DefaultBookingService) insertCalendarEvent(salon *models.Salon, appt *models.Appointment) string {
	if !salon.GoogleSyncEnabled || salon.GoogleRefreshToken == "" {
		return ""
	}
	src := s.Calendar(salon.GoogleRefreshToken, s.EventRetry)
	eventID, err := src.InsertEvent(gcal.EventInput{
		Summary:     fmt.Sprintf("%s - %s", appt.ServiceName, appt.CustomerName),
		Description: fmt.Sprintf("Booked via %s. Phone: %s", salon.Name, appt.CustomerPhone),
		Start:       appt.StartTime,
		End:         appt.EndTime,
	})
	if err != nil {
		s.handleCalendarError(salon, err)
		return ""
	}
	return eventID
}

func (s *DefaultBookingService) deleteCalendarEvent(salon *models.Salon, eventID string) {
	src := s.Calendar(salon.GoogleRefreshToken, s.EventRetry)
	if err := src.DeleteEvent(eventID); err != nil {
		s.handleCalendarError(salon, err)
	}
}

// handleCalendarError logs the failure and, on a revoked credential, turns
// sync off so later bookings stop retrying a dead token.
func (s *DefaultBookingService) handleCalendarError(salon *models.Salon, err error) {
	logger := utils.GetLogger()
	if gcal.IsCredentialRevoked(err) {
		logger.Warn("google credential revoked, disabling sync",
			zap.String("salonID", salon.ID))
		if derr := s.Salons.DisableGoogleSync(salon.ID); derr != nil {
			logger.Error("failed to disable google sync",
				zap.String("salonID", salon.ID), zap.Error(derr))
		}
		return
	}
	logger.Warn("google calendar write failed",
		zap.String("salonID", salon.ID), zap.Error(err))
}

// invalidateSlotCache drops every cached slot list for the salon on the
// booking's local date.
func (s *DefaultBookingService) invalidateSlotCache(salon *models.Salon, start time.Time) {
	if s.Cache == nil {
		return
	}
	loc, err := config.Location()
	if err != nil {
		return
	}
	if salon.Timezone != "" {
		if override, err := time.LoadLocation(salon.Timezone); err == nil {
			loc = override
		}
	}
	date := start.In(loc).Format("2006-01-02")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	keys, err := s.Cache.Keys(ctx, utils.SlotCachePattern(salon.ID, date)).Result()
	if err != nil || len(keys) == 0 {
		return
	}
	if err := s.Cache.Del(ctx, keys...).Err(); err != nil {
		utils.GetLogger().Debug("slot cache invalidation failed",
			zap.String("salonID", salon.ID), zap.Error(err))
	}
}
