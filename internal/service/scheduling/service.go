package scheduling

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"clinicops/internal/domain"
	"clinicops/internal/store"
)

type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

func validationError(msg string) error {
	return &ValidationError{msg: msg}
}

// Hours is the clinic's canonical working day, used for every date a
// doctor has not overridden: offsets from midnight plus the slot length.
type Hours struct {
	Open         time.Duration
	Close        time.Duration
	SlotDuration time.Duration
}

// DefaultHours is the 09:00-17:00, 30-minute-slot policy.
var DefaultHours = Hours{
	Open:         9 * time.Hour,
	Close:        17 * time.Hour,
	SlotDuration: 30 * time.Minute,
}

// Service owns the booking lifecycle and the slot allocator. Doctor
// schedule overrides live here for the duration of the session; the
// backing files carry no schedule records.
type Service struct {
	users store.UserRepository
	appts store.AppointmentRepository
	hours Hours
	log   *slog.Logger

	schedules map[string]*domain.Schedule
}

func NewService(users store.UserRepository, appts store.AppointmentRepository, hours Hours, log *slog.Logger) *Service {
	if hours.SlotDuration <= 0 {
		hours = DefaultHours
	}
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		users:     users,
		appts:     appts,
		hours:     hours,
		log:       log.With(slog.String("component", "service.scheduling")),
		schedules: make(map[string]*domain.Schedule),
	}
}

func (s *Service) scheduleFor(doctorID string) *domain.Schedule {
	sched, ok := s.schedules[doctorID]
	if !ok {
		sched = domain.NewSchedule(doctorID)
		s.schedules[doctorID] = sched
	}
	return sched
}

func (s *Service) doctor(ctx context.Context, hospitalID string) (domain.User, error) {
	u, err := s.users.UserByID(ctx, hospitalID)
	if err != nil {
		return domain.User{}, err
	}
	switch u.Role {
	case domain.RoleDoctor:
		return u, nil
	case domain.RoleAdministrator, domain.RolePharmacist, domain.RolePatient:
		return domain.User{}, validationError("user " + hospitalID + " is not a doctor")
	}
	return domain.User{}, domain.ErrUnknownRole
}

func (s *Service) patient(ctx context.Context, hospitalID string) (domain.User, error) {
	u, err := s.users.UserByID(ctx, hospitalID)
	if err != nil {
		return domain.User{}, err
	}
	switch u.Role {
	case domain.RolePatient:
		return u, nil
	case domain.RoleAdministrator, domain.RoleDoctor, domain.RolePharmacist:
		return domain.User{}, validationError("user " + hospitalID + " is not a patient")
	}
	return domain.User{}, domain.ErrUnknownRole
}

// AvailableSlots returns the doctor's bookable slots for one date, in
// chronological order: the canonical working-day grid (or the doctor's
// override for that date, which replaces the grid entirely) minus every
// slot held by a non-cancelled appointment. Completed appointments keep
// their slots; only cancellation reopens one.
func (s *Service) AvailableSlots(ctx context.Context, date time.Time, doctorID string) ([]domain.TimeSlot, error) {
	if _, err := s.doctor(ctx, doctorID); err != nil {
		return nil, err
	}

	grid, overridden := s.scheduleFor(doctorID).SlotsFor(date)
	if !overridden {
		var err error
		grid, err = domain.GenerateWorkingDay(date, s.hours.Open, s.hours.Close, s.hours.SlotDuration)
		if err != nil {
			return nil, err
		}
	}

	booked, err := s.appts.AppointmentsForDoctor(ctx, doctorID, date)
	if err != nil {
		return nil, err
	}

	out := make([]domain.TimeSlot, 0, len(grid))
	for _, slot := range grid {
		taken := false
		for _, appt := range booked {
			if appt.HoldsSlot() && appt.Slot.Equal(slot) {
				taken = true
				break
			}
		}
		if !taken {
			slot.Available = true
			out = append(out, slot)
		}
	}
	return out, nil
}

type BookInput struct {
	PatientID string
	DoctorID  string
	Date      time.Time
	Start     time.Time
}

// Book places a new appointment in the matching open slot. The
// availability check and the append run back to back in the same
// synchronous call, so no second booking can slip between them.
func (s *Service) Book(ctx context.Context, in BookInput) (domain.Appointment, error) {
	if _, err := s.patient(ctx, in.PatientID); err != nil {
		return domain.Appointment{}, err
	}

	slot, err := s.openSlot(ctx, in.Date, in.DoctorID, in.Start)
	if err != nil {
		return domain.Appointment{}, err
	}
	slot.Reserve()

	created, err := s.appts.CreateAppointment(ctx, domain.Appointment{
		PatientID: in.PatientID,
		DoctorID:  in.DoctorID,
		Slot:      slot,
		Status:    domain.StatusScheduled,
	})
	if err != nil {
		return domain.Appointment{}, err
	}

	s.log.Info("appointment booked",
		slog.Int("appointment_id", created.ID),
		slog.String("patient_id", created.PatientID),
		slog.String("doctor_id", created.DoctorID),
		slog.Time("start", created.Slot.Start),
	)
	return created, nil
}

// openSlot re-derives the available set and picks the slot starting at
// start, or fails with ErrSlotUnavailable.
func (s *Service) openSlot(ctx context.Context, date time.Time, doctorID string, start time.Time) (domain.TimeSlot, error) {
	avail, err := s.AvailableSlots(ctx, date, doctorID)
	if err != nil {
		return domain.TimeSlot{}, err
	}
	for _, slot := range avail {
		if slot.Start.Equal(start) {
			return slot, nil
		}
	}
	return domain.TimeSlot{}, store.ErrSlotUnavailable
}

type RescheduleInput struct {
	PatientID     string
	AppointmentID int
	DoctorID      string
	Date          time.Time
	Start         time.Time
}

// Reschedule moves an appointment to a new doctor, date and slot. The old
// slot is freed implicitly: once the record no longer references it, the
// allocator stops subtracting it.
func (s *Service) Reschedule(ctx context.Context, in RescheduleInput) (domain.Appointment, error) {
	appt, err := s.appts.AppointmentByID(ctx, in.AppointmentID)
	if err != nil {
		return domain.Appointment{}, err
	}
	if appt.PatientID != in.PatientID {
		return domain.Appointment{}, validationError("appointment does not belong to this patient")
	}
	if !appt.Status.CanTransitionTo(domain.StatusRescheduled) {
		return domain.Appointment{}, validationError("appointment can no longer be rescheduled")
	}

	slot, err := s.openSlot(ctx, in.Date, in.DoctorID, in.Start)
	if err != nil {
		return domain.Appointment{}, err
	}
	slot.Reserve()

	appt.DoctorID = in.DoctorID
	appt.Slot = slot
	appt.Status = domain.StatusRescheduled
	if err := s.appts.UpdateAppointment(ctx, appt); err != nil {
		return domain.Appointment{}, err
	}

	s.log.Info("appointment rescheduled",
		slog.Int("appointment_id", appt.ID),
		slog.String("doctor_id", appt.DoctorID),
		slog.Time("start", appt.Slot.Start),
	)
	return appt, nil
}

// Cancel marks the appointment cancelled. The record stays in the
// collection for audit; its slot becomes bookable again because the
// allocator only subtracts appointments that still hold their slots.
func (s *Service) Cancel(ctx context.Context, patientID string, appointmentID int) error {
	appt, err := s.appts.AppointmentByID(ctx, appointmentID)
	if err != nil {
		return err
	}
	if appt.PatientID != patientID {
		return validationError("appointment does not belong to this patient")
	}
	if !appt.Status.CanTransitionTo(domain.StatusCancelled) {
		return validationError("appointment can no longer be cancelled")
	}

	appt.Status = domain.StatusCancelled
	appt.Slot.Release()
	if err := s.appts.UpdateAppointment(ctx, appt); err != nil {
		return err
	}

	s.log.Info("appointment cancelled",
		slog.Int("appointment_id", appt.ID),
		slog.String("patient_id", appt.PatientID),
	)
	return nil
}

// Complete records the visit outcome and closes the appointment. Only the
// assigned doctor may complete it.
func (s *Service) Complete(ctx context.Context, doctorID string, appointmentID int, outcome string) (domain.Appointment, error) {
	outcome = strings.TrimSpace(outcome)
	if outcome == "" {
		return domain.Appointment{}, validationError("outcome is required")
	}

	appt, err := s.appts.AppointmentByID(ctx, appointmentID)
	if err != nil {
		return domain.Appointment{}, err
	}
	if appt.DoctorID != doctorID {
		return domain.Appointment{}, validationError("appointment is not assigned to this doctor")
	}
	if !appt.Status.CanTransitionTo(domain.StatusCompleted) {
		return domain.Appointment{}, validationError("appointment can no longer be completed")
	}

	appt.Status = domain.StatusCompleted
	appt.Outcome = outcome
	if err := s.appts.UpdateAppointment(ctx, appt); err != nil {
		return domain.Appointment{}, err
	}

	s.log.Info("appointment completed", slog.Int("appointment_id", appt.ID))
	return appt, nil
}

// SetAvailability replaces the doctor's declared slots for one date. An
// empty slot list is a valid override: it blocks the whole day.
func (s *Service) SetAvailability(ctx context.Context, doctorID string, date time.Time, slots []domain.TimeSlot) error {
	if _, err := s.doctor(ctx, doctorID); err != nil {
		return err
	}
	if err := s.scheduleFor(doctorID).SetAvailability(date, slots); err != nil {
		if errors.Is(err, domain.ErrOverlappingSlots) || errors.Is(err, domain.ErrInvalidInterval) {
			return validationError(err.Error())
		}
		return err
	}
	s.log.Info("availability set",
		slog.String("doctor_id", doctorID),
		slog.String("date", date.Format(domain.DateLayout)),
		slog.Int("slots", len(slots)),
	)
	return nil
}

// AppointmentsFor lists a patient's appointments, soonest first.
func (s *Service) AppointmentsFor(ctx context.Context, patientID string) ([]domain.Appointment, error) {
	if _, err := s.patient(ctx, patientID); err != nil {
		return nil, err
	}
	return s.appts.AppointmentsForPatient(ctx, patientID)
}

func (s *Service) Appointment(ctx context.Context, id int) (domain.Appointment, error) {
	return s.appts.AppointmentByID(ctx, id)
}
