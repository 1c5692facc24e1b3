package store

import (
	"context"

	"clinicops/internal/domain"
)

type UserRepository interface {
	// UserByID returns ErrNotFound when no user carries the hospital ID.
	UserByID(ctx context.Context, hospitalID string) (domain.User, error)
	// Users lists users of one role; the empty role lists everyone.
	Users(ctx context.Context, role domain.Role) ([]domain.User, error)
	// CreateUser returns ErrConflict when the hospital ID is already taken.
	CreateUser(ctx context.Context, u domain.User) error
}
