package domain

import (
	"reflect"
	"testing"
	"time"
)

func TestGenerateWorkingDay_CanonicalDay(t *testing.T) {
	date := time.Date(2024, 6, 1, 0, 0, 0, 0, time.Local)

	slots, err := GenerateWorkingDay(date, 9*time.Hour, 17*time.Hour, 30*time.Minute)
	if err != nil {
		t.Fatalf("GenerateWorkingDay error: %v", err)
	}
	if len(slots) != 16 {
		t.Fatalf("len(slots) = %d, want 16", len(slots))
	}

	first := slots[0]
	if got, want := first.Start.Format(TimeLayout), "2024-06-01T09:00"; got != want {
		t.Fatalf("first start = %q, want %q", got, want)
	}
	last := slots[len(slots)-1]
	if got, want := last.End.Format(TimeLayout), "2024-06-01T17:00"; got != want {
		t.Fatalf("last end = %q, want %q", got, want)
	}

	for i, s := range slots {
		if !s.End.After(s.Start) {
			t.Fatalf("slot %d has end %v not after start %v", i, s.End, s.Start)
		}
		if !s.Available {
			t.Fatalf("slot %d not available in a fresh grid", i)
		}
		if i > 0 {
			if slots[i-1].Overlaps(s) {
				t.Fatalf("slots %d and %d overlap", i-1, i)
			}
			if !slots[i-1].End.Equal(s.Start) {
				t.Fatalf("slots %d and %d are not consecutive", i-1, i)
			}
		}
	}
}

func TestGenerateWorkingDay_Deterministic(t *testing.T) {
	date := time.Date(2024, 6, 1, 0, 0, 0, 0, time.Local)

	a, err := GenerateWorkingDay(date, 9*time.Hour, 17*time.Hour, 30*time.Minute)
	if err != nil {
		t.Fatalf("GenerateWorkingDay error: %v", err)
	}
	b, err := GenerateWorkingDay(date, 9*time.Hour, 17*time.Hour, 30*time.Minute)
	if err != nil {
		t.Fatalf("GenerateWorkingDay error: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("two generations differ:\n%v\n%v", a, b)
	}
}

func TestGenerateWorkingDay_ExcludesPartialTrailingSlot(t *testing.T) {
	date := time.Date(2024, 6, 1, 0, 0, 0, 0, time.Local)

	slots, err := GenerateWorkingDay(date, 9*time.Hour, 10*time.Hour+15*time.Minute, 30*time.Minute)
	if err != nil {
		t.Fatalf("GenerateWorkingDay error: %v", err)
	}
	if len(slots) != 2 {
		t.Fatalf("len(slots) = %d, want 2", len(slots))
	}
	if got, want := slots[1].End.Format(TimeLayout), "2024-06-01T10:00"; got != want {
		t.Fatalf("last end = %q, want %q", got, want)
	}
}

func TestGenerateWorkingDay_RejectsBadPolicy(t *testing.T) {
	date := time.Date(2024, 6, 1, 0, 0, 0, 0, time.Local)

	if _, err := GenerateWorkingDay(date, 9*time.Hour, 17*time.Hour, 0); err == nil {
		t.Fatalf("expected error for zero slot duration")
	}
	if _, err := GenerateWorkingDay(date, 17*time.Hour, 9*time.Hour, 30*time.Minute); err == nil {
		t.Fatalf("expected error for close before open")
	}
}

func TestNewTimeSlot_RejectsInvertedInterval(t *testing.T) {
	at := time.Date(2024, 6, 1, 9, 0, 0, 0, time.Local)

	if _, err := NewTimeSlot(at, at); err == nil {
		t.Fatalf("expected error for empty interval")
	}
	if _, err := NewTimeSlot(at.Add(time.Hour), at); err == nil {
		t.Fatalf("expected error for inverted interval")
	}
}

func TestTimeSlot_EqualIgnoresAvailability(t *testing.T) {
	start := time.Date(2024, 6, 1, 9, 0, 0, 0, time.Local)
	a := TimeSlot{Start: start, End: start.Add(30 * time.Minute), Available: true}
	b := TimeSlot{Start: start, End: start.Add(30 * time.Minute), Available: false}

	if !a.Equal(b) {
		t.Fatalf("slots with the same interval must be equal regardless of availability")
	}
	if a.Equal(TimeSlot{Start: start, End: start.Add(time.Hour)}) {
		t.Fatalf("slots with different ends must not be equal")
	}
}

func TestTimeSlot_ReserveAndReleaseAreIdempotent(t *testing.T) {
	start := time.Date(2024, 6, 1, 9, 0, 0, 0, time.Local)
	s, err := NewTimeSlot(start, start.Add(30*time.Minute))
	if err != nil {
		t.Fatalf("NewTimeSlot error: %v", err)
	}

	if !s.Reserve() {
		t.Fatalf("first Reserve should change the flag")
	}
	if s.Reserve() {
		t.Fatalf("second Reserve should be a no-op")
	}
	if !s.Release() {
		t.Fatalf("first Release should change the flag")
	}
	if s.Release() {
		t.Fatalf("second Release should be a no-op")
	}
}

func TestTimeSlot_Overlaps(t *testing.T) {
	at := func(h, m int) time.Time {
		return time.Date(2024, 6, 1, h, m, 0, 0, time.Local)
	}
	slot := TimeSlot{Start: at(9, 0), End: at(9, 30)}

	cases := []struct {
		name  string
		other TimeSlot
		want  bool
	}{
		{"identical", TimeSlot{Start: at(9, 0), End: at(9, 30)}, true},
		{"contained", TimeSlot{Start: at(9, 10), End: at(9, 20)}, true},
		{"straddles start", TimeSlot{Start: at(8, 45), End: at(9, 15)}, true},
		{"adjacent after", TimeSlot{Start: at(9, 30), End: at(10, 0)}, false},
		{"adjacent before", TimeSlot{Start: at(8, 30), End: at(9, 0)}, false},
		{"disjoint", TimeSlot{Start: at(11, 0), End: at(11, 30)}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := slot.Overlaps(tc.other); got != tc.want {
				t.Fatalf("Overlaps = %v, want %v", got, tc.want)
			}
		})
	}
}
