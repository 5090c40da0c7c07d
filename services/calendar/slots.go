package calendar

import (
	"sort"
	"time"

	"salonbook/models"
)

// roundUpToGrid advances t to the next grid boundary within the hour. An
// instant already on a boundary is returned unchanged (seconds stripped).
func roundUpToGrid(t time.Time, gridStep time.Duration) time.Time {
	stepMinutes := int(gridStep / time.Minute)
	rounded := t.Truncate(time.Minute)
	if rounded.Before(t) {
		rounded = rounded.Add(time.Minute)
	}
	if off := rounded.Minute() % stepMinutes; off != 0 {
		rounded = rounded.Add(time.Duration(stepMinutes-off) * time.Minute)
	}
	return rounded
}

// enumerateSlots walks the work day in grid steps and returns every start
// time whose [start, start+duration) span is free of all busy intervals.
// Pure function of its inputs; restartable.
//
// On a conflict the candidate jumps to the end of the conflicting interval,
// rounds up to the grid, and the whole interval list is checked again at
// the new position. Conflicts can chain across intervals, so a single jump
// past the first hit is never trusted.
func enumerateSlots(searchFrom, dayEnd time.Time, duration, gridStep time.Duration, busy []models.BusyInterval) []time.Time {
	sorted := make([]models.BusyInterval, len(busy))
	copy(sorted, busy)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start.Before(sorted[j].Start) })

	var slots []time.Time
	s := searchFrom
	for {
		end := s.Add(duration)
		if end.After(dayEnd) {
			break
		}

		conflicted := false
		for _, b := range sorted {
			if b.Overlaps(s, end) {
				conflicted = true
				next := roundUpToGrid(b.End, gridStep)
				if next.After(s) {
					s = next
				} else {
					s = s.Add(gridStep)
				}
				break
			}
		}
		if conflicted {
			continue
		}

		slots = append(slots, s)
		// Advance by one grid step, not by the service duration: adjacent
		// grid-aligned slots are always offered even when booking one would
		// rule out its neighbors.
		s = s.Add(gridStep)
	}

	// Grid stepping alone cannot produce duplicates, but corrections from
	// overlapping sources historically could; keep the output canonical.
	sort.Slice(slots, func(i, j int) bool { return slots[i].Before(slots[j]) })
	deduped := slots[:0]
	for i, t := range slots {
		if i == 0 || !t.Equal(slots[i-1]) {
			deduped = append(deduped, t)
		}
	}
	return deduped
}
