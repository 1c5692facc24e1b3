package directory

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

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

// Service manages the user directory: registration and lookups. It does
// not authenticate anyone; the password is stored as the opaque field the
// record format defines.
type Service struct {
	users store.UserRepository
	log   *slog.Logger
}

func NewService(users store.UserRepository, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		users: users,
		log:   log.With(slog.String("component", "service.directory")),
	}
}

type RegisterInput struct {
	HospitalID  string
	Password    string
	Name        string
	DateOfBirth time.Time
	Gender      string
	Phone       string
	Email       string
	Role        domain.Role
}

// Register creates a user. A blank hospital ID is minted from the role
// prefix and a random token; a supplied one must be unique.
func (s *Service) Register(ctx context.Context, in RegisterInput) (domain.User, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return domain.User{}, validationError("name is required")
	}
	if in.Password == "" {
		return domain.User{}, validationError("password is required")
	}
	if _, err := domain.ParseRole(string(in.Role)); err != nil {
		return domain.User{}, validationError("role must be one of administrator, doctor, pharmacist, patient")
	}

	hospitalID := strings.TrimSpace(in.HospitalID)
	if hospitalID == "" {
		hospitalID = mintHospitalID(in.Role)
	}

	u := domain.User{
		HospitalID:  hospitalID,
		Password:    in.Password,
		Name:        name,
		DateOfBirth: in.DateOfBirth,
		Gender:      in.Gender,
		Phone:       in.Phone,
		Email:       in.Email,
		Role:        in.Role,
	}
	if err := s.users.CreateUser(ctx, u); err != nil {
		return domain.User{}, err
	}

	s.log.Info("user registered",
		slog.String("hospital_id", u.HospitalID),
		slog.String("role", string(u.Role)),
	)
	return u, nil
}

func mintHospitalID(role domain.Role) string {
	var prefix string
	switch role {
	case domain.RoleAdministrator:
		prefix = "A"
	case domain.RoleDoctor:
		prefix = "D"
	case domain.RolePharmacist:
		prefix = "PH"
	case domain.RolePatient:
		prefix = "P"
	}
	token := strings.SplitN(uuid.NewString(), "-", 2)[0]
	return prefix + strings.ToUpper(token)
}

func (s *Service) Get(ctx context.Context, hospitalID string) (domain.User, error) {
	return s.users.UserByID(ctx, hospitalID)
}

func (s *Service) List(ctx context.Context, role domain.Role) ([]domain.User, error) {
	if role != "" {
		if _, err := domain.ParseRole(string(role)); err != nil {
			return nil, validationError("role must be one of administrator, doctor, pharmacist, patient")
		}
	}
	return s.users.Users(ctx, role)
}
