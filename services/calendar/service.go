package calendar

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"salonbook/config"
	appointmentRepo "salonbook/database/repository/appointment"
	professionalRepo "salonbook/database/repository/professional"
	"salonbook/models"
	"salonbook/services/gcal"
	"salonbook/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// CheckOptions carries the optional parameters of IsSlotAvailable. The
// ignore IDs exist for rescheduling, where a booking's own record and
// calendar event must not count as conflicts; ProfessionalID narrows the
// check to one professional's agenda.
type CheckOptions struct {
	IgnoreBookingID string
	IgnoreEventID   string
	ProfessionalID  string
}

// CalendarService computes bookable slots and answers point-in-time
// availability checks for a salon. An empty professionalID means the
// salon-wide agenda; a specific one intersects the professional's schedule
// with the salon's and only that professional's bookings block.
type CalendarService interface {
	FindAvailableSlots(salon *models.Salon, professionalID string, serviceDurationMinutes int, dateStr string) ([]string, error)
	IsSlotAvailable(salon *models.Salon, proposedStart time.Time, durationMinutes int, opts CheckOptions) (bool, error)
}

// DefaultCalendarService is the production implementation.
type DefaultCalendarService struct {
	Appointments  appointmentRepo.AppointmentRepository
	Professionals professionalRepo.ProfessionalRepository
	Calendar      gcal.Factory
	Location      *time.Location // default business zone; a salon profile may override it
	GridStep      time.Duration
	ListRetry     gcal.RetryPolicy // enumeration path (fail-open)
	CheckRetry    gcal.RetryPolicy // availability-check path (fail-closed)
	Cache         *redis.Client    // nil disables slot caching
	Now           func() time.Time // injectable for tests; defaults to time.Now
}

// NewDefaultCalendarService wires the service from the app configuration.
func NewDefaultCalendarService(repo appointmentRepo.AppointmentRepository, pros professionalRepo.ProfessionalRepository, cache *redis.Client) (*DefaultCalendarService, error) {
	loc, err := config.Location()
	if err != nil {
		return nil, err
	}
	return &DefaultCalendarService{
		Appointments:  repo,
		Professionals: pros,
		Calendar:      gcal.NewGoogleClient,
		Location:      loc,
		GridStep:      time.Duration(config.AppConfig.SlotIntervalMinutes) * time.Minute,
		ListRetry:     gcal.RetryPolicy{MaxAttempts: config.AppConfig.CalendarListRetries, Backoff: 2 * time.Second},
		CheckRetry:    gcal.RetryPolicy{MaxAttempts: config.AppConfig.CalendarCheckRetries, Backoff: 2 * time.Second},
		Cache:         cache,
	}, nil
}

// professional resolves an optional professional ID against the salon.
func (s *DefaultCalendarService) professional(salonID, id string) (*models.Professional, error) {
	if id == "" {
		return nil, nil
	}
	if s.Professionals == nil {
		return nil, fmt.Errorf("professional %s requested but no professional repository is wired", id)
	}
	return s.Professionals.GetByID(salonID, id)
}

func (s *DefaultCalendarService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultCalendarService) gridStep() time.Duration {
	if s.GridStep <= 0 {
		return 30 * time.Minute
	}
	return s.GridStep
}

// location resolves the zone a salon's wall-clock configuration lives in.
func (s *DefaultCalendarService) location(salon *models.Salon) (*time.Location, error) {
	if salon.Timezone == "" {
		return s.Location, nil
	}
	loc, err := time.LoadLocation(salon.Timezone)
	if err != nil {
		return nil, &ConfigError{Field: "timezone", Value: salon.Timezone, Err: err}
	}
	return loc, nil
}

// FindAvailableSlots returns the ordered bookable start times for the salon
// on the given date, as ISO-8601 timestamps carrying the local offset. A
// non-empty professionalID restricts the search to that professional's
// effective schedule and bookings. Any configuration problem yields an
// empty list and a contextual log entry; errors never propagate past this
// boundary.
func (s *DefaultCalendarService) FindAvailableSlots(salon *models.Salon, professionalID string, serviceDurationMinutes int, dateStr string) ([]string, error) {
	logger := utils.GetLogger()
	salonDate := []zap.Field{zap.String("salonID", salon.ID), zap.String("date", dateStr)}

	loc, err := s.location(salon)
	if err != nil {
		logger.Warn("slot search: bad timezone configuration", append(salonDate, zap.Error(err))...)
		return []string{}, nil
	}

	date, err := time.ParseInLocation("2006-01-02", dateStr, loc)
	if err != nil {
		logger.Warn("slot search: invalid date", append(salonDate, zap.Error(err))...)
		return []string{}, nil
	}

	pro, err := s.professional(salon.ID, professionalID)
	if err != nil {
		// Degrade to the salon-wide schedule rather than answering
		// nothing for a transient lookup failure.
		logger.Warn("slot search: professional lookup failed, using salon schedule",
			append(salonDate, zap.String("professionalID", professionalID), zap.Error(err))...)
		pro = nil
		professionalID = ""
	}

	day, open := effectiveDayConfig(salon.Week, pro, date)
	if !open {
		logger.Debug("slot search: closed on requested day", salonDate...)
		return []string{}, nil
	}
	if day.OpenTime == "" || day.CloseTime == "" {
		logger.Warn("slot search: open/close times missing for an open day", salonDate...)
		return []string{}, nil
	}

	dayStart, err := LocalizeTime(date, day.OpenTime, loc)
	if err != nil {
		logger.Warn("slot search: bad open time", append(salonDate, zap.Error(err))...)
		return []string{}, nil
	}
	dayEnd, err := LocalizeTime(date, day.CloseTime, loc)
	if err != nil {
		logger.Warn("slot search: bad close time", append(salonDate, zap.Error(err))...)
		return []string{}, nil
	}
	if !dayStart.Before(dayEnd) {
		logger.Warn("slot search: open time is not before close time", salonDate...)
		return []string{}, nil
	}

	// For today, never offer slots in the past: start from now rounded up
	// to the next grid boundary (an exact boundary stands).
	searchFrom := dayStart
	now := s.now().In(loc)
	if sameDate(now, date, loc) {
		if fromNow := roundUpToGrid(now, s.gridStep()); fromNow.After(searchFrom) {
			searchFrom = fromNow
		}
	}
	if !searchFrom.Before(dayEnd) {
		return []string{}, nil
	}

	var cacheKey string
	if cacheableSlotSearch(now, date, loc) {
		cacheKey = utils.SlotCacheKey(salon.ID, dateStr, professionalID, serviceDurationMinutes)
		if cached, ok := s.cachedSlots(cacheKey); ok {
			return cached, nil
		}
	}

	busy, err := s.collectBusyIntervals(salon, professionalID, date, day, dayStart, dayEnd, loc)
	if err != nil {
		logger.Warn("slot search: configuration error while collecting busy intervals",
			append(salonDate, zap.Error(err))...)
		return []string{}, nil
	}

	duration := time.Duration(serviceDurationMinutes) * time.Minute
	slots := enumerateSlots(searchFrom, dayEnd, duration, s.gridStep(), busy)

	out := make([]string, 0, len(slots))
	for _, t := range slots {
		out = append(out, t.Format(time.RFC3339))
	}
	if cacheKey != "" {
		s.storeSlots(cacheKey, out)
	}
	return out, nil
}

// cacheableSlotSearch reports whether a computed slot list for the date may
// be cached and served from cache. Today's list shifts as the clock moves
// (the search start follows now), so a cached copy could offer start times
// already in the past; only future dates are cached.
func cacheableSlotSearch(now, date time.Time, loc *time.Location) bool {
	return !sameDate(now, date, loc)
}

func (s *DefaultCalendarService) cachedSlots(key string) ([]string, bool) {
	if s.Cache == nil {
		return nil, false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	raw, err := s.Cache.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			utils.GetLogger().Debug("slot cache read failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	var slots []string
	if err := json.Unmarshal([]byte(raw), &slots); err != nil {
		return nil, false
	}
	return slots, true
}

func (s *DefaultCalendarService) storeSlots(key string, slots []string) {
	if s.Cache == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	raw, err := json.Marshal(slots)
	if err != nil {
		return
	}
	ttl := time.Duration(config.AppConfig.SlotCacheTTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = time.Minute
	}
	if err := s.Cache.Set(ctx, key, raw, ttl).Err(); err != nil {
		utils.GetLogger().Debug("slot cache write failed", zap.String("key", key), zap.Error(err))
	}
}
