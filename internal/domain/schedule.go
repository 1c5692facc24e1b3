package domain

import (
	"errors"
	"sort"
	"time"
)

var ErrOverlappingSlots = errors.New("slots overlap")

// Schedule is one doctor's declared availability, keyed by calendar date.
// A date with no entry falls back to the clinic's canonical working-day
// grid; a date with an entry replaces that grid entirely.
type Schedule struct {
	DoctorID string

	days map[string][]TimeSlot
}

func NewSchedule(doctorID string) *Schedule {
	return &Schedule{
		DoctorID: doctorID,
		days:     make(map[string][]TimeSlot),
	}
}

// SetAvailability replaces the date's slot sequence wholesale. The supplied
// slots are validated: every interval must be well-formed and no two may
// overlap. The stored sequence is kept in chronological order.
func (s *Schedule) SetAvailability(date time.Time, slots []TimeSlot) error {
	ordered := make([]TimeSlot, len(slots))
	copy(ordered, slots)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Start.Before(ordered[j].Start) })

	for i, slot := range ordered {
		if !slot.End.After(slot.Start) {
			return ErrInvalidInterval
		}
		if i > 0 && ordered[i-1].Overlaps(slot) {
			return ErrOverlappingSlots
		}
	}

	s.days[date.Format(DateLayout)] = ordered
	return nil
}

// SlotsFor returns a copy of the date's declared slots and whether the date
// has an explicit entry at all.
func (s *Schedule) SlotsFor(date time.Time) ([]TimeSlot, bool) {
	stored, ok := s.days[date.Format(DateLayout)]
	if !ok {
		return nil, false
	}
	out := make([]TimeSlot, len(stored))
	copy(out, stored)
	return out, true
}
