package models

import (
	"testing"
	"time"
)

func TestBusyIntervalOverlaps(t *testing.T) {
	base := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	b := BusyInterval{Start: base, End: base.Add(time.Hour), Source: SourceBooking}

	cases := []struct {
		name       string
		start, end time.Time
		want       bool
	}{
		{"inside", base.Add(15 * time.Minute), base.Add(45 * time.Minute), true},
		{"covers", base.Add(-time.Hour), base.Add(2 * time.Hour), true},
		{"head overlap", base.Add(-15 * time.Minute), base.Add(15 * time.Minute), true},
		{"tail overlap", base.Add(45 * time.Minute), base.Add(90 * time.Minute), true},
		{"touching before", base.Add(-time.Hour), base, false},
		{"touching after", base.Add(time.Hour), base.Add(2 * time.Hour), false},
		{"clear before", base.Add(-2 * time.Hour), base.Add(-time.Hour), false},
	}
	for _, c := range cases {
		if got := b.Overlaps(c.start, c.end); got != c.want {
			t.Errorf("%s: got %v, want %v", c.name, got, c.want)
		}
	}
}

func TestAppointmentBlocks(t *testing.T) {
	for status, want := range map[string]bool{
		StatusConfirmed:      true,
		StatusPendingPayment: true,
		StatusManual:         true,
		StatusCanceled:       false,
		StatusRejected:       false,
	} {
		a := Appointment{Status: status}
		if got := a.Blocks(); got != want {
			t.Errorf("status %s: Blocks() = %v, want %v", status, got, want)
		}
	}
}
