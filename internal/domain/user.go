package domain

import (
	"errors"
	"fmt"
	"time"
)

var ErrUnknownRole = errors.New("unknown role")

// Role tags a User record. Every dispatch site switches exhaustively over
// the four values; an unrecognized tag never makes it past decoding.
type Role string

const (
	RoleAdministrator Role = "administrator"
	RoleDoctor        Role = "doctor"
	RolePharmacist    Role = "pharmacist"
	RolePatient       Role = "patient"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdministrator, RoleDoctor, RolePharmacist, RolePatient:
		return Role(s), nil
	}
	return "", fmt.Errorf("%w %q", ErrUnknownRole, s)
}

// User is any account in the clinic directory. All roles share the same
// field set; the role tag decides which workflows the account may drive.
type User struct {
	HospitalID  string
	Password    string
	Name        string
	DateOfBirth time.Time
	Gender      string
	Phone       string
	Email       string
	Role        Role
}
