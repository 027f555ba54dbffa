package entity

import "time"

// Vendor representa un proveedor (lado compras).
type Vendor struct {
	ID           string
	UserID       string
	Name         string
	Email        string // único
	TaxID        string
	PaymentTerms string
	Notes        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
