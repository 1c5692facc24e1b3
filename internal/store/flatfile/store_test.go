package flatfile

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"clinicops/internal/domain"
	"clinicops/internal/store"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	return New(Config{Dir: dir}, nil), dir
}

func testSlot(t *testing.T, day, hour, min int) domain.TimeSlot {
	t.Helper()
	start := time.Date(2024, 6, day, hour, min, 0, 0, time.Local)
	return domain.TimeSlot{Start: start, End: start.Add(30 * time.Minute)}
}

func TestLoad_MissingFilesStartEmpty(t *testing.T) {
	s, _ := newTestStore(t)

	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("Load error: %v", err)
	}
	users, err := s.Users(context.Background(), "")
	if err != nil {
		t.Fatalf("Users error: %v", err)
	}
	if len(users) != 0 {
		t.Fatalf("len(users) = %d, want 0", len(users))
	}
}

func TestLoad_FailsOnMalformedLine(t *testing.T) {
	s, dir := newTestStore(t)

	good := "P1|pw|Pat One|1990-01-02|male|0700|p1@example.com|patient"
	bad := "P2|pw|missing fields"
	path := filepath.Join(dir, "users.txt")
	if err := os.WriteFile(path, []byte(good+"\n"+bad+"\n"), 0o644); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}

	err := s.Load(context.Background())
	if err == nil {
		t.Fatalf("expected load to fail on the malformed line")
	}
	var recErr *RecordError
	if !errors.As(err, &recErr) {
		t.Fatalf("error type = %T, want *RecordError", err)
	}
	if recErr.Line != 2 {
		t.Fatalf("RecordError.Line = %d, want 2", recErr.Line)
	}

	// Fail-fast: the partially good file must not populate the collection.
	users, _ := s.Users(context.Background(), "")
	if len(users) != 0 {
		t.Fatalf("len(users) = %d after failed load, want 0", len(users))
	}
}

func TestLoad_FailsOnUnknownRole(t *testing.T) {
	s, dir := newTestStore(t)

	line := "X1|pw|Someone|1990-01-02|male|0700|x@example.com|janitor"
	if err := os.WriteFile(filepath.Join(dir, "users.txt"), []byte(line+"\n"), 0o644); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}

	err := s.Load(context.Background())
	if !errors.Is(err, domain.ErrUnknownRole) {
		t.Fatalf("err = %v, want ErrUnknownRole", err)
	}
}

func TestCreateAppointment_AssignsSequentialIDs(t *testing.T) {
	s, dir := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		appt, err := s.CreateAppointment(ctx, domain.Appointment{
			PatientID: "P1",
			DoctorID:  "D1",
			Slot:      testSlot(t, 1, 9+i, 0),
			Status:    domain.StatusScheduled,
		})
		if err != nil {
			t.Fatalf("CreateAppointment error: %v", err)
		}
		if appt.ID != i+1 {
			t.Fatalf("ID = %d, want %d", appt.ID, i+1)
		}
	}

	// The backing file reflects every mutation: a fresh store sees the
	// same records and continues the sequence.
	reloaded := New(Config{Dir: dir}, nil)
	if err := reloaded.Load(ctx); err != nil {
		t.Fatalf("reload error: %v", err)
	}
	appt, err := reloaded.CreateAppointment(ctx, domain.Appointment{
		PatientID: "P1",
		DoctorID:  "D1",
		Slot:      testSlot(t, 1, 14, 0),
		Status:    domain.StatusScheduled,
	})
	if err != nil {
		t.Fatalf("CreateAppointment error: %v", err)
	}
	if appt.ID != 4 {
		t.Fatalf("ID after reload = %d, want 4", appt.ID)
	}
}

func TestCreateAppointment_WriteThroughLeavesNoTempFiles(t *testing.T) {
	s, dir := newTestStore(t)

	if _, err := s.CreateAppointment(context.Background(), domain.Appointment{
		PatientID: "P1", DoctorID: "D1", Slot: testSlot(t, 1, 9, 0), Status: domain.StatusScheduled,
	}); err != nil {
		t.Fatalf("CreateAppointment error: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir error: %v", err)
	}
	for _, e := range entries {
		if strings.Contains(e.Name(), ".tmp-") {
			t.Fatalf("temp file left behind: %s", e.Name())
		}
	}

	data, err := os.ReadFile(filepath.Join(dir, "appointments.txt"))
	if err != nil {
		t.Fatalf("ReadFile error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 1 {
		t.Fatalf("file has %d lines, want 1", len(lines))
	}
	if !strings.HasPrefix(lines[0], "1|P1|D1|2024-06-01T09:00-2024-06-01T09:30|scheduled|") {
		t.Fatalf("unexpected line %q", lines[0])
	}
}

func TestUpdateAppointment_NotFound(t *testing.T) {
	s, _ := newTestStore(t)

	err := s.UpdateAppointment(context.Background(), domain.Appointment{ID: 42})
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestUserByID(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	u := domain.User{HospitalID: "P1", Password: "pw", Name: "Pat", Role: domain.RolePatient}
	if err := s.CreateUser(ctx, u); err != nil {
		t.Fatalf("CreateUser error: %v", err)
	}

	got, err := s.UserByID(ctx, "P1")
	if err != nil {
		t.Fatalf("UserByID error: %v", err)
	}
	if got.Name != "Pat" {
		t.Fatalf("Name = %q, want %q", got.Name, "Pat")
	}

	if _, err := s.UserByID(ctx, "P2"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestCreateUser_DuplicateID(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	u := domain.User{HospitalID: "P1", Password: "pw", Name: "Pat", Role: domain.RolePatient}
	if err := s.CreateUser(ctx, u); err != nil {
		t.Fatalf("CreateUser error: %v", err)
	}
	if err := s.CreateUser(ctx, u); !errors.Is(err, store.ErrConflict) {
		t.Fatalf("err = %v, want ErrConflict", err)
	}
}

func TestAppointmentsForDoctor_FiltersByDate(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	for _, spec := range []struct {
		doctor string
		day    int
	}{
		{"D1", 1}, {"D1", 1}, {"D1", 2}, {"D2", 1},
	} {
		if _, err := s.CreateAppointment(ctx, domain.Appointment{
			PatientID: "P1",
			DoctorID:  spec.doctor,
			Slot:      testSlot(t, spec.day, 9, 0),
			Status:    domain.StatusScheduled,
		}); err != nil {
			t.Fatalf("CreateAppointment error: %v", err)
		}
	}

	got, err := s.AppointmentsForDoctor(ctx, "D1", time.Date(2024, 6, 1, 0, 0, 0, 0, time.Local))
	if err != nil {
		t.Fatalf("AppointmentsForDoctor error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
}

func TestMedications_UpsertAndLookup(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	if err := s.SaveMedication(ctx, domain.Medication{Name: "Ibuprofen", Quantity: 10}); err != nil {
		t.Fatalf("SaveMedication error: %v", err)
	}
	if err := s.SaveMedication(ctx, domain.Medication{Name: "ibuprofen", Quantity: 25}); err != nil {
		t.Fatalf("SaveMedication error: %v", err)
	}

	meds, err := s.Medications(ctx)
	if err != nil {
		t.Fatalf("Medications error: %v", err)
	}
	if len(meds) != 1 {
		t.Fatalf("len(meds) = %d, want 1 (upsert by name)", len(meds))
	}
	if meds[0].Quantity != 25 {
		t.Fatalf("Quantity = %d, want 25", meds[0].Quantity)
	}
}

func TestReplenishments_ConflictAndDelete(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	r := domain.ReplenishmentRequest{MedicationName: "Ibuprofen", Quantity: 5, RequestedBy: "PH1"}
	if err := s.CreateReplenishment(ctx, r); err != nil {
		t.Fatalf("CreateReplenishment error: %v", err)
	}
	if err := s.CreateReplenishment(ctx, r); !errors.Is(err, store.ErrConflict) {
		t.Fatalf("err = %v, want ErrConflict", err)
	}
	if err := s.DeleteReplenishment(ctx, "ibuprofen"); err != nil {
		t.Fatalf("DeleteReplenishment error: %v", err)
	}
	if err := s.DeleteReplenishment(ctx, "ibuprofen"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
