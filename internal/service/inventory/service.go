package inventory

import (
	"context"
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

// Service covers the pharmacy side: stock lines and replenishment
// requests. It carries no scheduling logic; it shares the flat-file
// persistence with everything else.
type Service struct {
	inv   store.InventoryRepository
	users store.UserRepository
	log   *slog.Logger
	now   func() time.Time
}

func NewService(inv store.InventoryRepository, users store.UserRepository, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		inv:   inv,
		users: users,
		log:   log.With(slog.String("component", "service.inventory")),
		now:   time.Now,
	}
}

func (s *Service) Medications(ctx context.Context) ([]domain.Medication, error) {
	return s.inv.Medications(ctx)
}

func (s *Service) Replenishments(ctx context.Context) ([]domain.ReplenishmentRequest, error) {
	return s.inv.Replenishments(ctx)
}

// AddMedication creates or replaces one stock line.
func (s *Service) AddMedication(ctx context.Context, name string, quantity int, supplier string) (domain.Medication, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Medication{}, validationError("medication name is required")
	}
	if quantity < 0 {
		return domain.Medication{}, validationError("quantity must not be negative")
	}
	m := domain.Medication{Name: name, Quantity: quantity, Supplier: strings.TrimSpace(supplier)}
	if err := s.inv.SaveMedication(ctx, m); err != nil {
		return domain.Medication{}, err
	}
	s.log.Info("medication saved", slog.String("name", m.Name), slog.Int("quantity", m.Quantity))
	return m, nil
}

// SubmitReplenishment opens a request for more stock of an existing
// medication. The requester must be a pharmacist.
func (s *Service) SubmitReplenishment(ctx context.Context, medicationName string, quantity int, requestedBy string) (domain.ReplenishmentRequest, error) {
	if quantity <= 0 {
		return domain.ReplenishmentRequest{}, validationError("quantity must be positive")
	}

	requester, err := s.users.UserByID(ctx, requestedBy)
	if err != nil {
		return domain.ReplenishmentRequest{}, err
	}
	switch requester.Role {
	case domain.RolePharmacist:
	case domain.RoleAdministrator, domain.RoleDoctor, domain.RolePatient:
		return domain.ReplenishmentRequest{}, validationError("only a pharmacist may request replenishment")
	default:
		return domain.ReplenishmentRequest{}, domain.ErrUnknownRole
	}

	med, err := s.inv.MedicationByName(ctx, medicationName)
	if err != nil {
		return domain.ReplenishmentRequest{}, err
	}

	// The record format keeps dates only, so the stored value is truncated
	// to midnight up front: what is in memory is what a reload would see.
	now := s.now()
	r := domain.ReplenishmentRequest{
		MedicationName: med.Name,
		Quantity:       quantity,
		RequestedBy:    requester.HospitalID,
		RequestDate:    time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()),
	}
	if err := s.inv.CreateReplenishment(ctx, r); err != nil {
		return domain.ReplenishmentRequest{}, err
	}

	s.log.Info("replenishment requested",
		slog.String("medication", r.MedicationName),
		slog.Int("quantity", r.Quantity),
		slog.String("requested_by", r.RequestedBy),
	)
	return r, nil
}

// ApproveReplenishment adds the requested quantity to stock and closes
// the request.
func (s *Service) ApproveReplenishment(ctx context.Context, medicationName string) (domain.Medication, error) {
	req, err := s.findRequest(ctx, medicationName)
	if err != nil {
		return domain.Medication{}, err
	}
	med, err := s.inv.MedicationByName(ctx, req.MedicationName)
	if err != nil {
		return domain.Medication{}, err
	}

	med.Quantity += req.Quantity
	if err := s.inv.SaveMedication(ctx, med); err != nil {
		return domain.Medication{}, err
	}
	if err := s.inv.DeleteReplenishment(ctx, req.MedicationName); err != nil {
		return domain.Medication{}, err
	}

	s.log.Info("replenishment approved",
		slog.String("medication", med.Name),
		slog.Int("new_quantity", med.Quantity),
	)
	return med, nil
}

// RejectReplenishment discards the request without touching stock.
func (s *Service) RejectReplenishment(ctx context.Context, medicationName string) error {
	req, err := s.findRequest(ctx, medicationName)
	if err != nil {
		return err
	}
	if err := s.inv.DeleteReplenishment(ctx, req.MedicationName); err != nil {
		return err
	}
	s.log.Info("replenishment rejected", slog.String("medication", req.MedicationName))
	return nil
}

func (s *Service) findRequest(ctx context.Context, medicationName string) (domain.ReplenishmentRequest, error) {
	reqs, err := s.inv.Replenishments(ctx)
	if err != nil {
		return domain.ReplenishmentRequest{}, err
	}
	for _, r := range reqs {
		if strings.EqualFold(r.MedicationName, medicationName) {
			return r, nil
		}
	}
	return domain.ReplenishmentRequest{}, store.ErrNotFound
}
