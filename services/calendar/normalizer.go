package calendar

import (
	"fmt"
	"strings"
	"time"

	"salonbook/models"
)

// LocalizeTime combines a calendar date with a "HH:MM" wall-clock string in
// the given zone and returns the absolute instant. A wall-clock time that
// does not exist on that date (DST gap) is a ConfigError; it is never
// silently shifted.
func LocalizeTime(date time.Time, hhmm string, loc *time.Location) (time.Time, error) {
	parsed, err := time.Parse("15:04", strings.TrimSpace(hhmm))
	if err != nil {
		return time.Time{}, &ConfigError{Field: "time", Value: hhmm, Err: err}
	}
	t := time.Date(date.Year(), date.Month(), date.Day(), parsed.Hour(), parsed.Minute(), 0, 0, loc)
	// time.Date normalizes nonexistent local times; a changed wall clock
	// after construction means the configured time fell into a DST gap.
	if t.Hour() != parsed.Hour() || t.Minute() != parsed.Minute() {
		return time.Time{}, &ConfigError{
			Field: "time",
			Value: hhmm,
			Err:   fmt.Errorf("wall-clock time does not exist on %s in %s", date.Format("2006-01-02"), loc),
		}
	}
	return t, nil
}

// weekdayName returns the lowercase English weekday name used as the key in
// stored week schedules.
func weekdayName(date time.Time) string {
	return strings.ToLower(date.Weekday().String())
}

// dayConfigFor looks up the working-hours configuration for the date's weekday.
func dayConfigFor(week models.WeekSchedule, date time.Time) (models.WorkDayConfig, bool) {
	day, ok := week[weekdayName(date)]
	return day, ok
}

// effectiveDayConfig merges the salon's working hours for the date with a
// professional's own schedule. The later open and the earlier close win; a
// day off for either side closes the day. A professional without an entry
// for the weekday works the salon's hours, and a professional entry with
// its own lunch replaces the salon's lunch entirely. The second return is
// false when the effective day is closed.
//
// HH:MM strings are zero padded, so plain string comparison orders them.
func effectiveDayConfig(week models.WeekSchedule, pro *models.Professional, date time.Time) (models.WorkDayConfig, bool) {
	day, ok := dayConfigFor(week, date)
	if !ok || !day.IsOpen {
		return day, false
	}
	if pro == nil {
		return day, true
	}
	proDay, ok := dayConfigFor(pro.Week, date)
	if !ok {
		return day, true
	}
	if !proDay.IsOpen {
		return proDay, false
	}
	if proDay.OpenTime != "" && proDay.OpenTime > day.OpenTime {
		day.OpenTime = proDay.OpenTime
	}
	if proDay.CloseTime != "" && proDay.CloseTime < day.CloseTime {
		day.CloseTime = proDay.CloseTime
	}
	if day.OpenTime != "" && day.CloseTime != "" && day.OpenTime >= day.CloseTime {
		return day, false
	}
	day.HasLunch = proDay.HasLunch
	if proDay.HasLunch {
		if proDay.LunchStart != "" {
			day.LunchStart = proDay.LunchStart
		}
		if proDay.LunchEnd != "" {
			day.LunchEnd = proDay.LunchEnd
		}
	}
	return day, true
}

// sameDate reports whether two instants fall on the same calendar date when
// viewed in loc. Both sides must be compared in the business zone; mixing
// frames here is exactly the bug class this package exists to avoid.
func sameDate(a, b time.Time, loc *time.Location) bool {
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}
