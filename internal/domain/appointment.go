package domain

import "fmt"

type AppointmentStatus string

const (
	StatusScheduled   AppointmentStatus = "scheduled"
	StatusRescheduled AppointmentStatus = "rescheduled"
	StatusCancelled   AppointmentStatus = "cancelled"
	StatusCompleted   AppointmentStatus = "completed"
)

func ParseAppointmentStatus(s string) (AppointmentStatus, error) {
	switch AppointmentStatus(s) {
	case StatusScheduled, StatusRescheduled, StatusCancelled, StatusCompleted:
		return AppointmentStatus(s), nil
	}
	return "", fmt.Errorf("unknown appointment status %q", s)
}

// CanTransitionTo implements the booking state machine: an active
// appointment may be rescheduled, cancelled or completed; cancelled and
// completed are terminal.
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	switch s {
	case StatusScheduled, StatusRescheduled:
		return next == StatusRescheduled || next == StatusCancelled || next == StatusCompleted
	case StatusCancelled, StatusCompleted:
		return false
	}
	return false
}

// Appointment binds a patient, a doctor and one time slot. IDs are small
// integers assigned by the store, unique within the collection.
type Appointment struct {
	ID        int
	PatientID string
	DoctorID  string
	Slot      TimeSlot
	Status    AppointmentStatus
	Outcome   string
}

// HoldsSlot reports whether the appointment still blocks its slot on the
// doctor's calendar. Cancellation is the only transition that frees a
// slot; a completed visit keeps its interval.
func (a Appointment) HoldsSlot() bool {
	return a.Status != StatusCancelled
}
