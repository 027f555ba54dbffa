package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de transacción del flujo de caja.
const (
	TransactionTypeIncome   = "INCOME"
	TransactionTypeExpense  = "EXPENSE"
	TransactionTypeTransfer = "TRANSFER"
)

// Estados de una transacción.
const (
	TransactionStatusPending   = "PENDING"
	TransactionStatusConfirmed = "CONFIRMED"
	TransactionStatusCancelled = "CANCELLED"
)

// Transaction es un asiento del libro de caja. Los motores de facturación
// y compras lo escriben como sumidero (append-only desde su perspectiva);
// SourceModule/SourceID referencian el documento que lo originó.
type Transaction struct {
	ID           string
	UserID       string
	Type         string
	SourceModule string // "bill", "purchase_invoice", "manual", ...
	SourceID     string
	Amount       decimal.Decimal
	Currency     string // ISO 4217
	ExchangeRate *decimal.Decimal
	Date         time.Time
	Description  string
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
