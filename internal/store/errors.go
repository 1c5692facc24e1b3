package store

import "errors"

var (
	ErrConflict        = errors.New("conflict")
	ErrNotFound        = errors.New("not found")
	ErrSlotUnavailable = errors.New("slot unavailable")
)
