package store

import (
	"context"
	"time"

	"clinicops/internal/domain"
)

type AppointmentRepository interface {
	AppointmentByID(ctx context.Context, id int) (domain.Appointment, error)
	AppointmentsForPatient(ctx context.Context, patientID string) ([]domain.Appointment, error)
	// AppointmentsForDoctor returns every appointment, whatever its status,
	// whose slot falls on the given calendar date.
	AppointmentsForDoctor(ctx context.Context, doctorID string, date time.Time) ([]domain.Appointment, error)
	// CreateAppointment assigns the next free integer ID and persists.
	CreateAppointment(ctx context.Context, appt domain.Appointment) (domain.Appointment, error)
	// UpdateAppointment replaces the stored record with the same ID.
	UpdateAppointment(ctx context.Context, appt domain.Appointment) error
}
