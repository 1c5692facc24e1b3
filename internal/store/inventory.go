package store

import (
	"context"

	"clinicops/internal/domain"
)

type InventoryRepository interface {
	Medications(ctx context.Context) ([]domain.Medication, error)
	MedicationByName(ctx context.Context, name string) (domain.Medication, error)
	// SaveMedication inserts or replaces the stock line with the same name.
	SaveMedication(ctx context.Context, m domain.Medication) error

	Replenishments(ctx context.Context) ([]domain.ReplenishmentRequest, error)
	// CreateReplenishment returns ErrConflict when the medication already
	// has an open request.
	CreateReplenishment(ctx context.Context, r domain.ReplenishmentRequest) error
	DeleteReplenishment(ctx context.Context, medicationName string) error
}
