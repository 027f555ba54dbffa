package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de stock.
const (
	MovementTypeSale       = "sale"       // venta (delta negativo)
	MovementTypePurchase   = "purchase"   // compra (delta positivo)
	MovementTypeAdjustment = "adjustment" // ajuste manual (cualquier signo)
	MovementTypeReturn     = "return"     // reversa de venta (delta positivo)
)

// Tipos de origen del movimiento.
const (
	SourceTypeBill                    = "bill"
	SourceTypePurchaseInvoice         = "purchase_invoice"
	SourceTypePurchaseInvoiceDeletion = "purchase_invoice_deletion"
	SourceTypeAdjustment              = "adjustment"
)

// StockMovement es un registro inmutable del libro de stock: nunca se
// actualiza ni se borra; revertir una venta crea un movimiento nuevo con
// el signo opuesto, no borra el original.
type StockMovement struct {
	ID         string
	ProductID  string
	Quantity   decimal.Decimal // delta con signo
	Type       string
	SourceType string
	SourceID   string
	Notes      string
	CreatedAt  time.Time
	CreatedBy  string
}
