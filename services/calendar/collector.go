package calendar

import (
	"errors"
	"time"

	"salonbook/models"
	"salonbook/services/gcal"
	"salonbook/utils"

	"go.uber.org/zap"
)

// storeQueryMargin widens the upper bound of the appointment range query.
// Manually created appointments can start after closing time and still
// collide with late slots.
const storeQueryMargin = 3 * time.Hour

// collectBusyIntervals gathers every interval during which the salon cannot
// take a booking on the target date: stored appointments, external calendar
// events and the lunch break. A non-empty professionalID narrows the
// appointment query to that professional; external calendar events block
// regardless, as the synced calendar belongs to the salon owner. Source
// failures degrade that source to empty (fail-open); only a configuration
// error aborts.
func (s *DefaultCalendarService) collectBusyIntervals(
	salon *models.Salon,
	professionalID string,
	date time.Time,
	day models.WorkDayConfig,
	dayStart, dayEnd time.Time,
	loc *time.Location,
) ([]models.BusyInterval, error) {
	logger := utils.GetLogger()
	var busy []models.BusyInterval

	appts, err := s.Appointments.QueryByTimeRange(salon.ID, professionalID, dayStart.UTC(), dayEnd.UTC().Add(storeQueryMargin))
	if err != nil {
		// Degrade to availability computed from the remaining sources
		// rather than failing the whole request.
		logger.Error("busy collection: appointment store query failed, continuing without booking intervals",
			zap.String("salonID", salon.ID),
			zap.String("date", date.Format("2006-01-02")),
			zap.String("source", string(models.SourceBooking)),
			zap.Error(err))
	} else {
		for _, a := range appts {
			if !a.Blocks() {
				continue
			}
			busy = append(busy, models.BusyInterval{
				Start:  a.StartTime.In(loc),
				End:    a.EndTime.In(loc),
				Source: models.SourceBooking,
			})
		}
	}

	if salon.GoogleSyncEnabled && salon.GoogleRefreshToken != "" {
		source := s.Calendar(salon.GoogleRefreshToken, s.ListRetry)
		events, err := source.ListEvents(dayStart, dayEnd, loc)
		if err != nil {
			if errors.Is(err, gcal.ErrCredentialRevoked) {
				// Distinct from a transient failure: an operator should
				// eventually disable sync for this salon.
				logger.Warn("busy collection: calendar credential revoked, continuing without external intervals",
					zap.String("salonID", salon.ID),
					zap.String("source", string(models.SourceExternalCalendar)),
					zap.Bool("credentialRevoked", true),
					zap.Error(err))
			} else {
				logger.Error("busy collection: external calendar query failed, continuing without external intervals",
					zap.String("salonID", salon.ID),
					zap.String("source", string(models.SourceExternalCalendar)),
					zap.Error(err))
			}
		} else {
			for _, ev := range events {
				busy = append(busy, models.BusyInterval{
					Start:  ev.Start,
					End:    ev.End,
					Source: models.SourceExternalCalendar,
				})
			}
		}
	}

	if day.HasLunch {
		if day.LunchStart == "" || day.LunchEnd == "" {
			return nil, &ConfigError{Field: "lunch", Value: day.LunchStart + "-" + day.LunchEnd,
				Err: errors.New("hasLunch set but lunch times missing")}
		}
		lunchStart, err := LocalizeTime(date, day.LunchStart, loc)
		if err != nil {
			return nil, err
		}
		lunchEnd, err := LocalizeTime(date, day.LunchEnd, loc)
		if err != nil {
			return nil, err
		}
		busy = append(busy, models.BusyInterval{Start: lunchStart, End: lunchEnd, Source: models.SourceLunch})
	}

	return busy, nil
}
