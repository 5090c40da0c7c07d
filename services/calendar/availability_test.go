package calendar

import (
	"errors"
	"testing"
	"time"

	"salonbook/models"
	"salonbook/services/gcal"
)

func workDay() models.WeekSchedule {
	week := models.WeekSchedule{}
	for _, d := range []string{"monday", "tuesday", "wednesday", "thursday", "friday"} {
		week[d] = models.WorkDayConfig{
			IsOpen:     true,
			OpenTime:   "09:00",
			CloseTime:  "18:00",
			HasLunch:   true,
			LunchStart: "12:00",
			LunchEnd:   "13:00",
		}
	}
	return week
}

func TestIsSlotAvailable_FreeSlot(t *testing.T) {
	svc := newTestService(&fakeRepo{}, &fakeEvents{})
	ok, err := svc.IsSlotAvailable(testSalon(workDay()), at(10, 0), 30, CheckOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Error("free slot reported unavailable")
	}
}

func TestIsSlotAvailable_LunchConflict(t *testing.T) {
	svc := newTestService(&fakeRepo{}, &fakeEvents{})
	salon := testSalon(workDay())

	ok, err := svc.IsSlotAvailable(salon, at(11, 45), 30, CheckOptions{})
	if ok || !errors.Is(err, ErrLunchConflict) {
		t.Errorf("slot crossing into lunch: ok=%v err=%v", ok, err)
	}

	ok, err = svc.IsSlotAvailable(salon, at(11, 30), 30, CheckOptions{})
	if err != nil || !ok {
		t.Errorf("slot ending at lunch start should pass: ok=%v err=%v", ok, err)
	}
}

func TestIsSlotAvailable_ClosedDayAndBounds(t *testing.T) {
	svc := newTestService(&fakeRepo{}, &fakeEvents{})
	salon := testSalon(workDay())

	// 2026-09-06 is a Sunday, absent from the schedule.
	sunday := time.Date(2026, 9, 6, 10, 0, 0, 0, testZone)
	ok, err := svc.IsSlotAvailable(salon, sunday, 30, CheckOptions{})
	if ok || !errors.Is(err, ErrDayClosed) {
		t.Errorf("closed day: ok=%v err=%v", ok, err)
	}

	ok, err = svc.IsSlotAvailable(salon, at(8, 30), 30, CheckOptions{})
	if ok || !errors.Is(err, ErrOutsideWorkingHours) {
		t.Errorf("before opening: ok=%v err=%v", ok, err)
	}

	ok, err = svc.IsSlotAvailable(salon, at(17, 45), 30, CheckOptions{})
	if ok || !errors.Is(err, ErrOutsideWorkingHours) {
		t.Errorf("past closing: ok=%v err=%v", ok, err)
	}

	ok, err = svc.IsSlotAvailable(salon, at(17, 30), 30, CheckOptions{})
	if err != nil || !ok {
		t.Errorf("slot ending exactly at close should pass: ok=%v err=%v", ok, err)
	}
}

func TestIsSlotAvailable_BookingConflictAndIgnore(t *testing.T) {
	repo := &fakeRepo{appts: []models.Appointment{{
		ID: "a1", SalonID: "salon-1", Status: models.StatusConfirmed,
		StartTime: utc(10, 0), EndTime: utc(11, 0),
	}}}
	svc := newTestService(repo, &fakeEvents{})
	salon := testSalon(workDay())

	ok, err := svc.IsSlotAvailable(salon, at(10, 30), 30, CheckOptions{})
	if ok || !errors.Is(err, ErrBookingConflict) {
		t.Errorf("overlapping booking: ok=%v err=%v", ok, err)
	}

	ok, err = svc.IsSlotAvailable(salon, at(10, 30), 30, CheckOptions{IgnoreBookingID: "a1"})
	if err != nil || !ok {
		t.Errorf("ignored booking should not conflict: ok=%v err=%v", ok, err)
	}
}

func TestIsSlotAvailable_CanceledBookingNeverBlocks(t *testing.T) {
	repo := &fakeRepo{appts: []models.Appointment{{
		ID: "a1", SalonID: "salon-1", Status: models.StatusRejected,
		StartTime: utc(10, 0), EndTime: utc(11, 0),
	}}}
	svc := newTestService(repo, &fakeEvents{})
	ok, err := svc.IsSlotAvailable(testSalon(workDay()), at(10, 0), 30, CheckOptions{})
	if err != nil || !ok {
		t.Errorf("rejected booking blocked a slot: ok=%v err=%v", ok, err)
	}
}

func TestIsSlotAvailable_StoreFailureFailsClosed(t *testing.T) {
	repo := &fakeRepo{queryErr: errors.New("primary unreachable")}
	svc := newTestService(repo, &fakeEvents{})
	ok, err := svc.IsSlotAvailable(testSalon(workDay()), at(10, 0), 30, CheckOptions{})
	if ok {
		t.Error("store outage must reject the slot")
	}
	if err == nil || IsConflict(err) {
		t.Errorf("store outage should surface a non-conflict error, got %v", err)
	}
}

func TestIsSlotAvailable_ExternalConflictAndIgnore(t *testing.T) {
	salon := testSalon(workDay())
	salon.GoogleSyncEnabled = true
	salon.GoogleRefreshToken = "tok"
	src := &fakeEvents{events: []gcal.Event{{ID: "ev1", Start: at(15, 0), End: at(16, 0)}}}
	svc := newTestService(&fakeRepo{}, src)

	ok, err := svc.IsSlotAvailable(salon, at(15, 30), 30, CheckOptions{})
	if ok || !errors.Is(err, ErrExternalConflict) {
		t.Errorf("external event: ok=%v err=%v", ok, err)
	}

	ok, err = svc.IsSlotAvailable(salon, at(15, 30), 30, CheckOptions{IgnoreEventID: "ev1"})
	if err != nil || !ok {
		t.Errorf("ignored event should not conflict: ok=%v err=%v", ok, err)
	}
}

func TestIsSlotAvailable_CalendarFailureFailsClosed(t *testing.T) {
	salon := testSalon(workDay())
	salon.GoogleSyncEnabled = true
	salon.GoogleRefreshToken = "tok"
	svc := newTestService(&fakeRepo{}, &fakeEvents{listErr: errors.New("network down")})

	ok, err := svc.IsSlotAvailable(salon, at(10, 0), 30, CheckOptions{})
	if ok {
		t.Error("calendar outage must reject the slot")
	}
	if err == nil || IsConflict(err) {
		t.Errorf("calendar outage should surface a non-conflict error, got %v", err)
	}
}

func TestIsSlotAvailable_SyncDisabledSkipsCalendar(t *testing.T) {
	// Sync is off, so a broken calendar source must never be consulted.
	svc := newTestService(&fakeRepo{}, &fakeEvents{listErr: errors.New("network down")})
	ok, err := svc.IsSlotAvailable(testSalon(workDay()), at(10, 0), 30, CheckOptions{})
	if err != nil || !ok {
		t.Errorf("sync disabled: ok=%v err=%v", ok, err)
	}
}

func TestIsSlotAvailable_UTCInputNormalized(t *testing.T) {
	svc := newTestService(&fakeRepo{}, &fakeEvents{})
	// 12:00 UTC is 09:00 in BRT, exactly at opening.
	start := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	ok, err := svc.IsSlotAvailable(testSalon(workDay()), start, 30, CheckOptions{})
	if err != nil || !ok {
		t.Errorf("UTC instant at opening should pass: ok=%v err=%v", ok, err)
	}
}

func TestIsSlotAvailable_ProfessionalSchedule(t *testing.T) {
	svc := newTestService(&fakeRepo{}, &fakeEvents{})
	svc.Professionals = &fakePros{pros: []models.Professional{{
		ID: "pro-1", SalonID: "salon-1", Name: "Bia",
		Week: models.WeekSchedule{"tuesday": {IsOpen: true, OpenTime: "10:00", CloseTime: "16:00"}},
	}}}
	salon := testSalon(workDay())

	// 09:00 is inside salon hours but before the professional opens.
	ok, err := svc.IsSlotAvailable(salon, at(9, 0), 30, CheckOptions{ProfessionalID: "pro-1"})
	if ok || !errors.Is(err, ErrOutsideWorkingHours) {
		t.Errorf("before professional opening: ok=%v err=%v", ok, err)
	}

	ok, err = svc.IsSlotAvailable(salon, at(10, 0), 30, CheckOptions{ProfessionalID: "pro-1"})
	if err != nil || !ok {
		t.Errorf("inside intersection: ok=%v err=%v", ok, err)
	}
}

func TestIsSlotAvailable_ProfessionalClosedDay(t *testing.T) {
	svc := newTestService(&fakeRepo{}, &fakeEvents{})
	svc.Professionals = &fakePros{pros: []models.Professional{{
		ID: "pro-1", SalonID: "salon-1", Name: "Bia",
		Week: models.WeekSchedule{"tuesday": {IsOpen: false}},
	}}}

	ok, err := svc.IsSlotAvailable(testSalon(workDay()), at(10, 0), 30, CheckOptions{ProfessionalID: "pro-1"})
	if ok || !errors.Is(err, ErrDayClosed) {
		t.Errorf("closed professional day: ok=%v err=%v", ok, err)
	}
}

func TestIsSlotAvailable_ProfessionalBookingFilter(t *testing.T) {
	repo := &fakeRepo{appts: []models.Appointment{{
		ID: "a1", SalonID: "salon-1", ProfessionalID: "pro-2",
		Status:    models.StatusConfirmed,
		StartTime: utc(10, 0), EndTime: utc(11, 0),
	}}}
	svc := newTestService(repo, &fakeEvents{})
	svc.Professionals = &fakePros{pros: []models.Professional{
		{ID: "pro-1", SalonID: "salon-1", Name: "Bia"},
	}}
	salon := testSalon(workDay())

	// Another professional's booking does not occupy pro-1's agenda.
	ok, err := svc.IsSlotAvailable(salon, at(10, 0), 30, CheckOptions{ProfessionalID: "pro-1"})
	if err != nil || !ok {
		t.Errorf("other professional's booking blocked the slot: ok=%v err=%v", ok, err)
	}

	// A salon-wide check still collides with it.
	ok, err = svc.IsSlotAvailable(salon, at(10, 0), 30, CheckOptions{})
	if ok || !errors.Is(err, ErrBookingConflict) {
		t.Errorf("salon-wide check missed the booking: ok=%v err=%v", ok, err)
	}
}

func TestIsSlotAvailable_ProfessionalLookupFailsClosed(t *testing.T) {
	svc := newTestService(&fakeRepo{}, &fakeEvents{})
	svc.Professionals = &fakePros{lookupErr: errors.New("store unreachable")}

	ok, err := svc.IsSlotAvailable(testSalon(workDay()), at(10, 0), 30, CheckOptions{ProfessionalID: "pro-1"})
	if ok || err == nil {
		t.Errorf("lookup failure must reject the slot: ok=%v err=%v", ok, err)
	}
}
