package flatfile

// One delimited text line per record, no header, no escaping: a field must
// not contain its delimiter. Decoders are strict about field counts so a
// truncated or shifted line fails the load instead of producing a mangled
// record.

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"clinicops/internal/domain"
)

const nullField = "NULL"

func orNull(s string) string {
	if s == "" {
		return nullField
	}
	return s
}

func fromNull(s string) string {
	if s == nullField {
		return ""
	}
	return s
}

// hospitalID|password|name|dateOfBirth|gender|phone|email|role
func encodeUser(u domain.User) string {
	return strings.Join([]string{
		u.HospitalID,
		u.Password,
		u.Name,
		u.DateOfBirth.Format(domain.DateLayout),
		u.Gender,
		u.Phone,
		u.Email,
		string(u.Role),
	}, "|")
}

func decodeUser(line string) (domain.User, error) {
	fields := strings.Split(line, "|")
	if len(fields) != 8 {
		return domain.User{}, fmt.Errorf("user record: want 8 fields, got %d", len(fields))
	}
	dob, err := time.ParseInLocation(domain.DateLayout, fields[3], time.Local)
	if err != nil {
		return domain.User{}, fmt.Errorf("user record: date of birth: %w", err)
	}
	role, err := domain.ParseRole(fields[7])
	if err != nil {
		return domain.User{}, fmt.Errorf("user record: %w", err)
	}
	return domain.User{
		HospitalID:  fields[0],
		Password:    fields[1],
		Name:        fields[2],
		DateOfBirth: dob,
		Gender:      fields[4],
		Phone:       fields[5],
		Email:       fields[6],
		Role:        role,
	}, nil
}

// id|patientId|doctorId|start-end|status|outcomeRecord
func encodeAppointment(a domain.Appointment) string {
	return strings.Join([]string{
		strconv.Itoa(a.ID),
		a.PatientID,
		a.DoctorID,
		a.Slot.String(),
		string(a.Status),
		a.Outcome,
	}, "|")
}

func decodeAppointment(line string) (domain.Appointment, error) {
	fields := strings.Split(line, "|")
	if len(fields) != 6 {
		return domain.Appointment{}, fmt.Errorf("appointment record: want 6 fields, got %d", len(fields))
	}
	id, err := strconv.Atoi(fields[0])
	if err != nil {
		return domain.Appointment{}, fmt.Errorf("appointment record: id: %w", err)
	}
	slot, err := decodeSlot(fields[3])
	if err != nil {
		return domain.Appointment{}, fmt.Errorf("appointment record: %w", err)
	}
	status, err := domain.ParseAppointmentStatus(fields[4])
	if err != nil {
		return domain.Appointment{}, fmt.Errorf("appointment record: %w", err)
	}
	return domain.Appointment{
		ID:        id,
		PatientID: fields[1],
		DoctorID:  fields[2],
		Slot:      slot,
		Status:    status,
		Outcome:   fields[5],
	}, nil
}

// decodeSlot splits the fixed-width "start-end" timestamp pair. The
// timestamps themselves contain hyphens, so the separator position is
// derived from the layout width rather than searched for.
func decodeSlot(s string) (domain.TimeSlot, error) {
	const width = len(domain.TimeLayout)
	if len(s) != 2*width+1 || s[width] != '-' {
		return domain.TimeSlot{}, fmt.Errorf("time slot: malformed interval %q", s)
	}
	start, err := time.ParseInLocation(domain.TimeLayout, s[:width], time.Local)
	if err != nil {
		return domain.TimeSlot{}, fmt.Errorf("time slot: start: %w", err)
	}
	end, err := time.ParseInLocation(domain.TimeLayout, s[width+1:], time.Local)
	if err != nil {
		return domain.TimeSlot{}, fmt.Errorf("time slot: end: %w", err)
	}
	if !end.After(start) {
		return domain.TimeSlot{}, domain.ErrInvalidInterval
	}
	// A persisted appointment holds its slot.
	return domain.TimeSlot{Start: start, End: end, Available: false}, nil
}

// name|quantity|supplier-or-NULL
func encodeMedication(m domain.Medication) string {
	return strings.Join([]string{m.Name, strconv.Itoa(m.Quantity), orNull(m.Supplier)}, "|")
}

func decodeMedication(line string) (domain.Medication, error) {
	fields := strings.Split(line, "|")
	if len(fields) != 3 {
		return domain.Medication{}, fmt.Errorf("medication record: want 3 fields, got %d", len(fields))
	}
	qty, err := strconv.Atoi(fields[1])
	if err != nil {
		return domain.Medication{}, fmt.Errorf("medication record: quantity: %w", err)
	}
	return domain.Medication{
		Name:     fields[0],
		Quantity: qty,
		Supplier: fromNull(fields[2]),
	}, nil
}

// medicationName-or-NULL;quantity;requestedBy-or-NULL;requestDate-or-NULL
func encodeReplenishment(r domain.ReplenishmentRequest) string {
	date := nullField
	if !r.RequestDate.IsZero() {
		date = r.RequestDate.Format(domain.DateLayout)
	}
	return strings.Join([]string{
		orNull(r.MedicationName),
		strconv.Itoa(r.Quantity),
		orNull(r.RequestedBy),
		date,
	}, ";")
}

func decodeReplenishment(line string) (domain.ReplenishmentRequest, error) {
	fields := strings.Split(line, ";")
	if len(fields) != 4 {
		return domain.ReplenishmentRequest{}, fmt.Errorf("replenishment record: want 4 fields, got %d", len(fields))
	}
	qty, err := strconv.Atoi(fields[1])
	if err != nil {
		return domain.ReplenishmentRequest{}, fmt.Errorf("replenishment record: quantity: %w", err)
	}
	var date time.Time
	if fields[3] != nullField {
		date, err = time.ParseInLocation(domain.DateLayout, fields[3], time.Local)
		if err != nil {
			return domain.ReplenishmentRequest{}, fmt.Errorf("replenishment record: request date: %w", err)
		}
	}
	return domain.ReplenishmentRequest{
		MedicationName: fromNull(fields[0]),
		Quantity:       qty,
		RequestedBy:    fromNull(fields[2]),
		RequestDate:    date,
	}, nil
}
