package calendar

import (
	"fmt"
	"time"

	"salonbook/models"
)

// IsSlotAvailable verifies that a proposed appointment fits entirely inside
// the effective working hours and collides with nothing. When a
// professional is named in opts, their schedule intersects the salon's and
// only their bookings count. Unlike enumeration, any failure to consult a
// source rejects the slot: a booking must never be confirmed on incomplete
// information.
func (s *DefaultCalendarService) IsSlotAvailable(salon *models.Salon, proposedStart time.Time, durationMinutes int, opts CheckOptions) (bool, error) {
	loc, err := s.location(salon)
	if err != nil {
		return false, err
	}

	pro, err := s.professional(salon.ID, opts.ProfessionalID)
	if err != nil {
		return false, fmt.Errorf("resolving professional: %w", err)
	}

	start := proposedStart.In(loc)
	end := start.Add(time.Duration(durationMinutes) * time.Minute)
	date := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, loc)

	day, open := effectiveDayConfig(salon.Week, pro, date)
	if !open {
		return false, ErrDayClosed
	}

	// 1. Lunch break.
	if day.HasLunch && day.LunchStart != "" && day.LunchEnd != "" {
		lunchStart, err := LocalizeTime(date, day.LunchStart, loc)
		if err != nil {
			return false, err
		}
		lunchEnd, err := LocalizeTime(date, day.LunchEnd, loc)
		if err != nil {
			return false, err
		}
		if start.Before(lunchEnd) && end.After(lunchStart) {
			return false, ErrLunchConflict
		}
	}

	// 2. Working-hour bounds.
	if day.OpenTime == "" || day.CloseTime == "" {
		return false, &ConfigError{Field: "workSchedule", Value: weekdayName(date), Err: fmt.Errorf("open/close times missing")}
	}
	openAt, err := LocalizeTime(date, day.OpenTime, loc)
	if err != nil {
		return false, err
	}
	closeAt, err := LocalizeTime(date, day.CloseTime, loc)
	if err != nil {
		return false, err
	}
	if start.Before(openAt) || end.After(closeAt) {
		return false, ErrOutsideWorkingHours
	}

	// 3. Stored bookings.
	dayEnd := date.AddDate(0, 0, 1)
	appts, err := s.Appointments.QueryByTimeRange(salon.ID, opts.ProfessionalID, date.UTC(), dayEnd.UTC())
	if err != nil {
		return false, fmt.Errorf("querying stored bookings: %w", err)
	}
	for _, a := range appts {
		if opts.IgnoreBookingID != "" && a.ID == opts.IgnoreBookingID {
			continue
		}
		if !a.Blocks() {
			continue
		}
		if start.Before(a.EndTime.In(loc)) && end.After(a.StartTime.In(loc)) {
			return false, ErrBookingConflict
		}
	}

	// 4. External calendar.
	if salon.GoogleSyncEnabled && salon.GoogleRefreshToken != "" {
		events, err := s.Calendar(salon.GoogleRefreshToken, s.CheckRetry).ListEvents(date, dayEnd, loc)
		if err != nil {
			return false, fmt.Errorf("querying external calendar: %w", err)
		}
		for _, ev := range events {
			if opts.IgnoreEventID != "" && ev.ID == opts.IgnoreEventID {
				continue
			}
			if start.Before(ev.End) && end.After(ev.Start) {
				return false, ErrExternalConflict
			}
		}
	}

	return true, nil
}
