package models

import "time"

// IntervalSource identifies where a busy interval came from.
type IntervalSource string

const (
	SourceBooking          IntervalSource = "booking"
	SourceExternalCalendar IntervalSource = "externalCalendar"
	SourceLunch            IntervalSource = "lunch"
)

// BusyInterval is a [Start, End) span during which the salon cannot accept
// a new booking. Intervals are built fresh per computation and never stored.
type BusyInterval struct {
	Start  time.Time
	End    time.Time
	Source IntervalSource
}

// Overlaps reports whether the candidate span [start, end) collides with
// this interval. Touching endpoints do not overlap: a slot may end exactly
// when a busy interval begins.
func (b BusyInterval) Overlaps(start, end time.Time) bool {
	return start.Before(b.End) && end.After(b.Start)
}
