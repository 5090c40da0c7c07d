package calendar

import (
	"testing"
	"time"

	"salonbook/models"
)

var testZone = time.FixedZone("BRT", -3*60*60)

// at builds a time on the fixture date (a Tuesday) in the test zone.
func at(hour, min int) time.Time {
	return time.Date(2026, 9, 1, hour, min, 0, 0, testZone)
}

func containsTime(ts []time.Time, want time.Time) bool {
	for _, t := range ts {
		if t.Equal(want) {
			return true
		}
	}
	return false
}

func TestRoundUpToGrid(t *testing.T) {
	step := 30 * time.Minute
	cases := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{"exact boundary unchanged", at(10, 0), at(10, 0)},
		{"half boundary unchanged", at(10, 30), at(10, 30)},
		{"one past boundary", at(10, 1), at(10, 30)},
		{"just before boundary", at(10, 29), at(10, 30)},
		{"seconds push past boundary", at(10, 0).Add(5 * time.Second), at(10, 30)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := roundUpToGrid(tc.in, step); !got.Equal(tc.want) {
				t.Errorf("roundUpToGrid(%v) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestRoundUpToGrid_FifteenMinutes(t *testing.T) {
	if got := roundUpToGrid(at(10, 16), 15*time.Minute); !got.Equal(at(10, 30)) {
		t.Errorf("got %v, want %v", got, at(10, 30))
	}
	if got := roundUpToGrid(at(10, 45), 15*time.Minute); !got.Equal(at(10, 45)) {
		t.Errorf("exact boundary moved: got %v", got)
	}
}

func TestEnumerateSlots_EmptyDay(t *testing.T) {
	slots := enumerateSlots(at(9, 0), at(18, 0), 30*time.Minute, 30*time.Minute, nil)
	if len(slots) != 18 {
		t.Fatalf("expected 18 slots, got %d: %v", len(slots), slots)
	}
	if !slots[0].Equal(at(9, 0)) {
		t.Errorf("first slot = %v, want %v", slots[0], at(9, 0))
	}
	if !slots[len(slots)-1].Equal(at(17, 30)) {
		t.Errorf("last slot = %v, want %v", slots[len(slots)-1], at(17, 30))
	}
}

func TestEnumerateSlots_ServiceLongerThanRemainingDay(t *testing.T) {
	slots := enumerateSlots(at(17, 0), at(18, 0), 90*time.Minute, 30*time.Minute, nil)
	if len(slots) != 0 {
		t.Fatalf("expected no slots, got %v", slots)
	}
}

func TestEnumerateSlots_SkipsBusyInterval(t *testing.T) {
	busy := []models.BusyInterval{
		{Start: at(10, 0), End: at(11, 0), Source: models.SourceBooking},
	}
	slots := enumerateSlots(at(9, 0), at(18, 0), 30*time.Minute, 30*time.Minute, busy)
	if containsTime(slots, at(10, 0)) || containsTime(slots, at(10, 30)) {
		t.Errorf("busy window offered: %v", slots)
	}
	if !containsTime(slots, at(9, 30)) {
		t.Errorf("slot ending at busy start should be offered")
	}
	if !containsTime(slots, at(11, 0)) {
		t.Errorf("slot starting at busy end should be offered")
	}
}

func TestEnumerateSlots_UnalignedIntervalEndRoundsUp(t *testing.T) {
	busy := []models.BusyInterval{
		{Start: at(10, 0), End: at(10, 40), Source: models.SourceBooking},
	}
	slots := enumerateSlots(at(9, 0), at(18, 0), 30*time.Minute, 30*time.Minute, busy)
	if containsTime(slots, at(10, 30)) {
		t.Errorf("10:30 overlaps a booking ending 10:40 yet was offered")
	}
	if containsTime(slots, at(10, 40)) {
		t.Errorf("off-grid start 10:40 was offered")
	}
	if !containsTime(slots, at(11, 0)) {
		t.Errorf("expected 11:00 after rounding 10:40 up to the grid")
	}
}

func TestEnumerateSlots_ChainedConflicts(t *testing.T) {
	// Jumping past the first conflict lands inside the second; the scan
	// must re-check every interval from the new candidate.
	busy := []models.BusyInterval{
		{Start: at(10, 40), End: at(11, 20), Source: models.SourceExternalCalendar},
		{Start: at(10, 0), End: at(10, 45), Source: models.SourceBooking},
	}
	slots := enumerateSlots(at(9, 0), at(18, 0), 30*time.Minute, 30*time.Minute, busy)
	if containsTime(slots, at(11, 0)) {
		t.Errorf("11:00 overlaps the second interval yet was offered")
	}
	if !containsTime(slots, at(11, 30)) {
		t.Errorf("expected 11:30 once both intervals are cleared")
	}
}

func TestEnumerateSlots_TouchingIntervalDoesNotBlock(t *testing.T) {
	busy := []models.BusyInterval{
		{Start: at(12, 0), End: at(13, 0), Source: models.SourceLunch},
	}
	slots := enumerateSlots(at(9, 0), at(18, 0), 30*time.Minute, 30*time.Minute, busy)
	if !containsTime(slots, at(11, 30)) {
		t.Errorf("11:30 ends exactly at lunch start and must be offered")
	}
	if !containsTime(slots, at(13, 0)) {
		t.Errorf("13:00 starts exactly at lunch end and must be offered")
	}
	if containsTime(slots, at(12, 0)) || containsTime(slots, at(12, 30)) {
		t.Errorf("lunch window offered: %v", slots)
	}
}

func TestEnumerateSlots_GridSpacingAndOrder(t *testing.T) {
	slots := enumerateSlots(at(9, 0), at(12, 0), 45*time.Minute, 30*time.Minute, nil)
	for i := 1; i < len(slots); i++ {
		if !slots[i].After(slots[i-1]) {
			t.Fatalf("slots out of order at %d: %v", i, slots)
		}
		if slots[i].Sub(slots[i-1])%(30*time.Minute) != 0 {
			t.Errorf("slot %v not on the grid relative to %v", slots[i], slots[i-1])
		}
	}
}
