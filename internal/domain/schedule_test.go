package domain

import (
	"errors"
	"testing"
	"time"
)

func scheduleSlot(t *testing.T, h, m, endH, endM int) TimeSlot {
	t.Helper()
	s, err := NewTimeSlot(
		time.Date(2024, 6, 1, h, m, 0, 0, time.Local),
		time.Date(2024, 6, 1, endH, endM, 0, 0, time.Local),
	)
	if err != nil {
		t.Fatalf("NewTimeSlot error: %v", err)
	}
	return s
}

func TestSetAvailability_RejectsOverlap(t *testing.T) {
	sched := NewSchedule("D1")
	date := time.Date(2024, 6, 1, 0, 0, 0, 0, time.Local)

	err := sched.SetAvailability(date, []TimeSlot{
		scheduleSlot(t, 9, 0, 10, 0),
		scheduleSlot(t, 9, 30, 10, 30),
	})
	if !errors.Is(err, ErrOverlappingSlots) {
		t.Fatalf("err = %v, want ErrOverlappingSlots", err)
	}
	if _, ok := sched.SlotsFor(date); ok {
		t.Fatalf("rejected availability must not be stored")
	}
}

func TestSetAvailability_RejectsInvalidInterval(t *testing.T) {
	sched := NewSchedule("D1")
	date := time.Date(2024, 6, 1, 0, 0, 0, 0, time.Local)
	at := time.Date(2024, 6, 1, 9, 0, 0, 0, time.Local)

	err := sched.SetAvailability(date, []TimeSlot{{Start: at, End: at}})
	if !errors.Is(err, ErrInvalidInterval) {
		t.Fatalf("err = %v, want ErrInvalidInterval", err)
	}
}

func TestSetAvailability_SortsAndReplacesWholesale(t *testing.T) {
	sched := NewSchedule("D1")
	date := time.Date(2024, 6, 1, 0, 0, 0, 0, time.Local)

	first := []TimeSlot{scheduleSlot(t, 9, 0, 9, 30)}
	if err := sched.SetAvailability(date, first); err != nil {
		t.Fatalf("SetAvailability error: %v", err)
	}

	// Supplied out of order; stored chronologically, first entry gone.
	second := []TimeSlot{
		scheduleSlot(t, 14, 0, 14, 30),
		scheduleSlot(t, 10, 0, 10, 30),
	}
	if err := sched.SetAvailability(date, second); err != nil {
		t.Fatalf("SetAvailability error: %v", err)
	}

	got, ok := sched.SlotsFor(date)
	if !ok {
		t.Fatalf("expected an entry for the date")
	}
	if len(got) != 2 {
		t.Fatalf("len(slots) = %d, want 2", len(got))
	}
	if !got[0].Start.Before(got[1].Start) {
		t.Fatalf("slots not in chronological order: %v", got)
	}
	if got[0].Start.Hour() != 10 {
		t.Fatalf("earlier override slot survived the replacement: %v", got)
	}
}

func TestSlotsFor_UnsetDateIsEmpty(t *testing.T) {
	sched := NewSchedule("D1")

	slots, ok := sched.SlotsFor(time.Date(2024, 6, 2, 0, 0, 0, 0, time.Local))
	if ok {
		t.Fatalf("unset date reported as overridden")
	}
	if len(slots) != 0 {
		t.Fatalf("len(slots) = %d, want 0", len(slots))
	}
}

func TestSlotsFor_ReturnsACopy(t *testing.T) {
	sched := NewSchedule("D1")
	date := time.Date(2024, 6, 1, 0, 0, 0, 0, time.Local)
	if err := sched.SetAvailability(date, []TimeSlot{scheduleSlot(t, 9, 0, 9, 30)}); err != nil {
		t.Fatalf("SetAvailability error: %v", err)
	}

	got, _ := sched.SlotsFor(date)
	got[0].Reserve()

	again, _ := sched.SlotsFor(date)
	if !again[0].Available {
		t.Fatalf("mutating the returned slice leaked into the schedule")
	}
}
