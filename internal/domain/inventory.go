package domain

import "time"

// Medication is one pharmacy stock line, keyed by name.
type Medication struct {
	Name     string
	Quantity int
	Supplier string
}

// ReplenishmentRequest is a pharmacist's pending ask for more stock of one
// medication. At most one open request exists per medication name.
type ReplenishmentRequest struct {
	MedicationName string
	Quantity       int
	RequestedBy    string
	RequestDate    time.Time
}
