package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una factura de compra.
const (
	PurchaseStatusUnpaid  = "unpaid"
	PurchaseStatusPartial = "partial"
	PurchaseStatusPaid    = "paid"
)

// PurchaseInvoice representa una factura de compra recibida de un proveedor.
// AttachedFile es solo una referencia (ruta/URL) al archivo PDF/XML; el
// contenido nunca se interpreta aquí.
type PurchaseInvoice struct {
	ID            string
	UserID        string
	VendorID      string
	InvoiceNumber string
	Currency      string
	Status        string
	Total         decimal.Decimal
	PaidAmount    decimal.Decimal
	Date          time.Time
	DueDate       *time.Time
	Notes         string
	AttachedFile  string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// BalanceDue devuelve el saldo pendiente de la factura de compra.
func (p *PurchaseInvoice) BalanceDue() decimal.Decimal {
	return p.Total.Sub(p.PaidAmount)
}

// PurchaseStatusFor deriva el estado a partir de lo pagado y el total.
func PurchaseStatusFor(paid, total decimal.Decimal) string {
	switch {
	case paid.IsZero():
		return PurchaseStatusUnpaid
	case paid.LessThan(total):
		return PurchaseStatusPartial
	default:
		return PurchaseStatusPaid
	}
}

// PurchaseInvoiceItem representa una línea de una factura de compra.
// ProductID es opcional: solo las líneas ligadas a un producto mueven stock.
type PurchaseInvoiceItem struct {
	ID          string
	InvoiceID   string
	ProductID   string // vacío si la línea no referencia un producto
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	TaxRate     decimal.Decimal // porcentaje
	Total       decimal.Decimal // Quantity * UnitPrice * (1 + TaxRate/100)
}
