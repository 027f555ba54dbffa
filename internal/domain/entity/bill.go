package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una factura de venta. El estado es función pura de
// paid_amount vs total_amount; nunca retrocede a un estado menos pagado.
const (
	BillStatusUnpaid        = "Unpaid"
	BillStatusPartiallyPaid = "Partially Paid"
	BillStatusPaid          = "Paid"
)

// Bill representa una factura de venta a un cliente.
// NumberSeq es el consecutivo global; Number es el número visible ("INV-12").
type Bill struct {
	ID          string
	UserID      string
	ClientID    string
	Number      string
	NumberSeq   int64
	Currency    string
	Status      string
	TotalAmount decimal.Decimal
	PaidAmount  decimal.Decimal
	IssueDate   time.Time
	DueDate     time.Time
	PaidDate    *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// BalanceDue devuelve el saldo pendiente (total - pagado).
func (b *Bill) BalanceDue() decimal.Decimal {
	return b.TotalAmount.Sub(b.PaidAmount)
}

// BillStatusFor deriva el estado a partir de lo pagado y el total.
func BillStatusFor(paid, total decimal.Decimal) string {
	switch {
	case paid.IsZero():
		return BillStatusUnpaid
	case paid.LessThan(total):
		return BillStatusPartiallyPaid
	default:
		return BillStatusPaid
	}
}
