package flatfile

import (
	"context"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"clinicops/internal/domain"
	"clinicops/internal/store"
)

// Config names the backing files inside one data directory.
type Config struct {
	Dir                string
	UsersFile          string
	AppointmentsFile   string
	MedicationsFile    string
	ReplenishmentsFile string
}

func (c Config) withDefaults() Config {
	if c.Dir == "" {
		c.Dir = "data"
	}
	if c.UsersFile == "" {
		c.UsersFile = "users.txt"
	}
	if c.AppointmentsFile == "" {
		c.AppointmentsFile = "appointments.txt"
	}
	if c.MedicationsFile == "" {
		c.MedicationsFile = "medications.txt"
	}
	if c.ReplenishmentsFile == "" {
		c.ReplenishmentsFile = "replenishment_requests.txt"
	}
	return c
}

// Store holds the authoritative in-memory collection for every entity kind
// and writes each collection back to its file after every mutation. It is
// built for a single process: the mutex serializes in-process callers, but
// nothing guards the files against a second process.
type Store struct {
	log *slog.Logger

	usersPath          string
	appointmentsPath   string
	medicationsPath    string
	replenishmentsPath string

	mu             sync.Mutex
	users          []domain.User
	appointments   []domain.Appointment
	medications    []domain.Medication
	replenishments []domain.ReplenishmentRequest
}

func New(cfg Config, log *slog.Logger) *Store {
	cfg = cfg.withDefaults()
	if log == nil {
		log = slog.Default()
	}
	return &Store{
		log:                log.With(slog.String("component", "store.flatfile")),
		usersPath:          filepath.Join(cfg.Dir, cfg.UsersFile),
		appointmentsPath:   filepath.Join(cfg.Dir, cfg.AppointmentsFile),
		medicationsPath:    filepath.Join(cfg.Dir, cfg.MedicationsFile),
		replenishmentsPath: filepath.Join(cfg.Dir, cfg.ReplenishmentsFile),
	}
}

// Load reads every backing file and replaces the in-memory collections
// wholesale. Any unreadable file or undecodable line fails the whole load;
// a missing file counts as an empty collection so a fresh data directory
// bootstraps cleanly.
func (s *Store) Load(ctx context.Context) error {
	users, err := readRecords(s.usersPath, decodeUser)
	if err != nil {
		return err
	}
	appointments, err := readRecords(s.appointmentsPath, decodeAppointment)
	if err != nil {
		return err
	}
	medications, err := readRecords(s.medicationsPath, decodeMedication)
	if err != nil {
		return err
	}
	replenishments, err := readRecords(s.replenishmentsPath, decodeReplenishment)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.users = users
	s.appointments = appointments
	s.medications = medications
	s.replenishments = replenishments
	s.mu.Unlock()

	s.log.Info("store loaded",
		slog.Int("users", len(users)),
		slog.Int("appointments", len(appointments)),
		slog.Int("medications", len(medications)),
		slog.Int("replenishments", len(replenishments)),
	)
	return nil
}

func (s *Store) UserByID(ctx context.Context, hospitalID string) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.HospitalID == hospitalID {
			return u, nil
		}
	}
	return domain.User{}, store.ErrNotFound
}

func (s *Store) Users(ctx context.Context, role domain.Role) ([]domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.User, 0, len(s.users))
	for _, u := range s.users {
		if role == "" || u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

func (s *Store) CreateUser(ctx context.Context, u domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.HospitalID == u.HospitalID {
			return store.ErrConflict
		}
	}
	s.users = append(s.users, u)
	return writeRecords(s.usersPath, s.users, encodeUser)
}

func (s *Store) AppointmentByID(ctx context.Context, id int) (domain.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.appointments {
		if a.ID == id {
			return a, nil
		}
	}
	return domain.Appointment{}, store.ErrNotFound
}

func (s *Store) AppointmentsForPatient(ctx context.Context, patientID string) ([]domain.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Appointment
	for _, a := range s.appointments {
		if a.PatientID == patientID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slot.Start.Before(out[j].Slot.Start) })
	return out, nil
}

func (s *Store) AppointmentsForDoctor(ctx context.Context, doctorID string, date time.Time) ([]domain.Appointment, error) {
	day := date.Format(domain.DateLayout)
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Appointment
	for _, a := range s.appointments {
		if a.DoctorID == doctorID && a.Slot.Start.Format(domain.DateLayout) == day {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slot.Start.Before(out[j].Slot.Start) })
	return out, nil
}

func (s *Store) CreateAppointment(ctx context.Context, appt domain.Appointment) (domain.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := 1
	for _, a := range s.appointments {
		if a.ID >= next {
			next = a.ID + 1
		}
	}
	appt.ID = next
	s.appointments = append(s.appointments, appt)
	if err := writeRecords(s.appointmentsPath, s.appointments, encodeAppointment); err != nil {
		return domain.Appointment{}, err
	}
	return appt, nil
}

func (s *Store) UpdateAppointment(ctx context.Context, appt domain.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, a := range s.appointments {
		if a.ID == appt.ID {
			s.appointments[i] = appt
			return writeRecords(s.appointmentsPath, s.appointments, encodeAppointment)
		}
	}
	return store.ErrNotFound
}

func (s *Store) Medications(ctx context.Context) ([]domain.Medication, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Medication, len(s.medications))
	copy(out, s.medications)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) MedicationByName(ctx context.Context, name string) (domain.Medication, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.medications {
		if strings.EqualFold(m.Name, name) {
			return m, nil
		}
	}
	return domain.Medication{}, store.ErrNotFound
}

func (s *Store) SaveMedication(ctx context.Context, m domain.Medication) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	replaced := false
	for i, existing := range s.medications {
		if strings.EqualFold(existing.Name, m.Name) {
			s.medications[i] = m
			replaced = true
			break
		}
	}
	if !replaced {
		s.medications = append(s.medications, m)
	}
	return writeRecords(s.medicationsPath, s.medications, encodeMedication)
}

func (s *Store) Replenishments(ctx context.Context) ([]domain.ReplenishmentRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.ReplenishmentRequest, len(s.replenishments))
	copy(out, s.replenishments)
	return out, nil
}

func (s *Store) CreateReplenishment(ctx context.Context, r domain.ReplenishmentRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.replenishments {
		if strings.EqualFold(existing.MedicationName, r.MedicationName) {
			return store.ErrConflict
		}
	}
	s.replenishments = append(s.replenishments, r)
	return writeRecords(s.replenishmentsPath, s.replenishments, encodeReplenishment)
}

func (s *Store) DeleteReplenishment(ctx context.Context, medicationName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, r := range s.replenishments {
		if strings.EqualFold(r.MedicationName, medicationName) {
			s.replenishments = append(s.replenishments[:i], s.replenishments[i+1:]...)
			return writeRecords(s.replenishmentsPath, s.replenishments, encodeReplenishment)
		}
	}
	return store.ErrNotFound
}
