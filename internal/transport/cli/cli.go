package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"clinicops/internal/domain"
	"clinicops/internal/service/directory"
	"clinicops/internal/service/scheduling"
	"clinicops/internal/store"
)

// The command layer talks to the services through narrow interfaces so
// tests can substitute fakes.

type schedulingService interface {
	AvailableSlots(ctx context.Context, date time.Time, doctorID string) ([]domain.TimeSlot, error)
	Book(ctx context.Context, in scheduling.BookInput) (domain.Appointment, error)
	Reschedule(ctx context.Context, in scheduling.RescheduleInput) (domain.Appointment, error)
	Cancel(ctx context.Context, patientID string, appointmentID int) error
	Complete(ctx context.Context, doctorID string, appointmentID int, outcome string) (domain.Appointment, error)
	SetAvailability(ctx context.Context, doctorID string, date time.Time, slots []domain.TimeSlot) error
	AppointmentsFor(ctx context.Context, patientID string) ([]domain.Appointment, error)
}

type directoryService interface {
	Register(ctx context.Context, in directory.RegisterInput) (domain.User, error)
	Get(ctx context.Context, hospitalID string) (domain.User, error)
	List(ctx context.Context, role domain.Role) ([]domain.User, error)
}

type inventoryService interface {
	Medications(ctx context.Context) ([]domain.Medication, error)
	Replenishments(ctx context.Context) ([]domain.ReplenishmentRequest, error)
	AddMedication(ctx context.Context, name string, quantity int, supplier string) (domain.Medication, error)
	SubmitReplenishment(ctx context.Context, medicationName string, quantity int, requestedBy string) (domain.ReplenishmentRequest, error)
	ApproveReplenishment(ctx context.Context, medicationName string) (domain.Medication, error)
	RejectReplenishment(ctx context.Context, medicationName string) error
}

type Deps struct {
	Log        *slog.Logger
	Scheduling schedulingService
	Directory  directoryService
	Inventory  inventoryService
}

// New assembles the root command. Every subcommand receives validated
// primitive inputs from flags and hands them straight to a service.
func New(deps Deps) *cobra.Command {
	if deps.Log == nil {
		deps.Log = slog.Default()
	}

	root := &cobra.Command{
		Use:           "clinicops",
		Short:         "Clinic scheduling and records over flat-file storage",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		slotsCmd(deps),
		bookCmd(deps),
		rescheduleCmd(deps),
		cancelCmd(deps),
		completeCmd(deps),
		availabilityCmd(deps),
		appointmentsCmd(deps),
		usersCmd(deps),
		medicationsCmd(deps),
		replenishmentCmd(deps),
		seedCmd(deps),
	)
	return root
}

// friendly rewrites store sentinels into messages a clinic user can act
// on; validation errors already read well and pass through.
func friendly(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrSlotUnavailable):
		return errors.New("that slot is not available, pick another")
	case errors.Is(err, store.ErrNotFound):
		return errors.New("no matching record found")
	case errors.Is(err, store.ErrConflict):
		return errors.New("a record with that key already exists")
	}
	return err
}

func parseDate(s string) (time.Time, error) {
	d, err := time.ParseInLocation(domain.DateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("date must look like 2024-06-01: %w", err)
	}
	return d, nil
}

// parseClockOn anchors an "HH:MM" value on the given date.
func parseClockOn(date time.Time, s string) (time.Time, error) {
	c, err := time.Parse("15:04", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("time must look like 09:30: %w", err)
	}
	return time.Date(date.Year(), date.Month(), date.Day(), c.Hour(), c.Minute(), 0, 0, time.Local), nil
}

// parseSlotOn turns "09:00-09:30" into a slot on the given date.
func parseSlotOn(date time.Time, s string) (domain.TimeSlot, error) {
	const form = "15:04-15:04"
	if len(s) != len(form) {
		return domain.TimeSlot{}, fmt.Errorf("slot must look like 09:00-09:30, got %q", s)
	}
	start, err := parseClockOn(date, s[:5])
	if err != nil {
		return domain.TimeSlot{}, err
	}
	end, err := parseClockOn(date, s[6:])
	if err != nil {
		return domain.TimeSlot{}, err
	}
	return domain.NewTimeSlot(start, end)
}

func formatSlot(s domain.TimeSlot) string {
	return s.Start.Format("15:04") + "-" + s.End.Format("15:04")
}

func formatAppointment(a domain.Appointment) string {
	out := fmt.Sprintf("#%d  %s  doctor=%s patient=%s  %s",
		a.ID,
		a.Slot.Start.Format(domain.TimeLayout),
		a.DoctorID,
		a.PatientID,
		a.Status,
	)
	if a.Outcome != "" {
		out += "  outcome=" + a.Outcome
	}
	return out
}
