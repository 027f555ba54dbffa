package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentTargetKind discrimina el padre de un pago.
type PaymentTargetKind string

const (
	TargetBill            PaymentTargetKind = "bill"
	TargetPurchaseInvoice PaymentTargetKind = "purchase_invoice"
)

// PaymentTarget identifica el documento al que pertenece un pago:
// exactamente una factura de venta o una factura de compra
// (la invariante "exactamente uno" queda en el tipo, no en dos FKs nulas).
type PaymentTarget struct {
	Kind PaymentTargetKind
	ID   string
}

// BillTarget construye el target hacia una factura de venta.
func BillTarget(billID string) PaymentTarget {
	return PaymentTarget{Kind: TargetBill, ID: billID}
}

// PurchaseInvoiceTarget construye el target hacia una factura de compra.
func PurchaseInvoiceTarget(invoiceID string) PaymentTarget {
	return PaymentTarget{Kind: TargetPurchaseInvoice, ID: invoiceID}
}

// Payment representa un pago aplicado a una factura. Inmutable una vez
// creado (salvo Notes administrativas); una corrección es un pago nuevo,
// nunca una edición del historial.
// Amount está en la moneda del documento; si el pagador usó otra moneda,
// OriginalAmount/OriginalCurrency conservan el valor original para auditoría.
type Payment struct {
	ID               string
	Target           PaymentTarget
	Amount           decimal.Decimal
	Currency         string
	OriginalAmount   *decimal.Decimal
	OriginalCurrency string
	PaymentDate      time.Time
	Method           string
	Notes            string
	CreatedAt        time.Time
	CreatedBy        string
}
