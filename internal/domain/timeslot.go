package domain

import (
	"errors"
	"fmt"
	"time"
)

const (
	// DateLayout is the naive calendar-date form used across all records.
	DateLayout = "2006-01-02"
	// TimeLayout is the minute-precision timestamp form used for slots.
	TimeLayout = "2006-01-02T15:04"
)

var ErrInvalidInterval = errors.New("slot end must be after slot start")

// TimeSlot is a half-open interval of bookable time. Two slots are the
// same slot when their intervals match; Available is mutable state, not
// identity.
type TimeSlot struct {
	Start     time.Time
	End       time.Time
	Available bool
}

func NewTimeSlot(start, end time.Time) (TimeSlot, error) {
	if !end.After(start) {
		return TimeSlot{}, ErrInvalidInterval
	}
	return TimeSlot{Start: start, End: end, Available: true}, nil
}

func (s TimeSlot) Equal(o TimeSlot) bool {
	return s.Start.Equal(o.Start) && s.End.Equal(o.End)
}

func (s TimeSlot) Overlaps(o TimeSlot) bool {
	return s.Start.Before(o.End) && o.Start.Before(s.End)
}

// Reserve marks the slot taken. It reports whether the flag changed;
// reserving an already-reserved slot is a no-op.
func (s *TimeSlot) Reserve() bool {
	if !s.Available {
		return false
	}
	s.Available = false
	return true
}

// Release marks the slot open again. It reports whether the flag changed.
func (s *TimeSlot) Release() bool {
	if s.Available {
		return false
	}
	s.Available = true
	return true
}

func (s TimeSlot) String() string {
	return fmt.Sprintf("%s-%s", s.Start.Format(TimeLayout), s.End.Format(TimeLayout))
}

// GenerateWorkingDay produces the canonical slot grid for one calendar day:
// consecutive slots of fixed duration from open to close, both expressed as
// offsets from midnight. A slot whose end would pass close is excluded.
// The result depends only on the arguments.
func GenerateWorkingDay(date time.Time, open, close, slotDuration time.Duration) ([]TimeSlot, error) {
	if slotDuration <= 0 {
		return nil, errors.New("slot duration must be positive")
	}
	if close <= open {
		return nil, errors.New("closing time must be after opening time")
	}

	midnight := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	closeAt := midnight.Add(close)

	var slots []TimeSlot
	for start := midnight.Add(open); !start.Add(slotDuration).After(closeAt); start = start.Add(slotDuration) {
		slots = append(slots, TimeSlot{Start: start, End: start.Add(slotDuration), Available: true})
	}
	return slots, nil
}
