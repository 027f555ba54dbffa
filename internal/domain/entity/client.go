package entity

import "time"

// Client representa un cliente (lado ventas).
type Client struct {
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
