package dto

import (
	"github.com/shopspring/decimal"
)

// BillItemRequest línea de factura de venta. Price y TaxRate quedan
// capturados en la línea al momento de crear la factura.
type BillItemRequest struct {
	ProductID string          `json:"product_id" validate:"required,uuid4"`
	Quantity  decimal.Decimal `json:"quantity" validate:"required"`
	Price     decimal.Decimal `json:"price"`
	TaxRate   decimal.Decimal `json:"tax_rate"`
}

// CreateBillRequest body para POST /api/bills.
type CreateBillRequest struct {
	ClientID  string            `json:"client_id" validate:"required,uuid4"`
	Currency  string            `json:"currency" validate:"omitempty,len=3"`
	IssueDate string            `json:"issue_date" validate:"required,datetime=2006-01-02"`
	DueDate   string            `json:"due_date" validate:"required,datetime=2006-01-02"`
	Items     []BillItemRequest `json:"items" validate:"required,min=1,dive"`
}

// ApplyPaymentRequest body para POST /api/bills/:id/payments (y el
// equivalente de compras). Currency puede diferir de la del documento;
// en ese caso el monto se convierte antes de validar el saldo.
type ApplyPaymentRequest struct {
	Amount   decimal.Decimal `json:"amount" validate:"required"`
	Currency string          `json:"currency" validate:"required,len=3"`
	Method   string          `json:"method" validate:"omitempty,max=50"`
	Notes    string          `json:"notes" validate:"omitempty,max=500"`
}

// BillItemResponse línea en respuestas.
type BillItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	TaxRate   decimal.Decimal `json:"tax_rate"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	TaxAmount decimal.Decimal `json:"tax_amount"`
	Total     decimal.Decimal `json:"total"`
}

// PaymentResponse pago en respuestas.
type PaymentResponse struct {
	ID               string           `json:"id"`
	Amount           decimal.Decimal  `json:"amount"`
	Currency         string           `json:"currency"`
	OriginalAmount   *decimal.Decimal `json:"original_amount,omitempty"`
	OriginalCurrency string           `json:"original_currency,omitempty"`
	PaymentDate      string           `json:"payment_date"`
	Method           string           `json:"method,omitempty"`
	Notes            string           `json:"notes,omitempty"`
}

// BillResponse factura de venta con detalle.
type BillResponse struct {
	ID          string             `json:"id"`
	ClientID    string             `json:"client_id"`
	ClientName  string             `json:"client_name,omitempty"`
	Number      string             `json:"number"`
	Currency    string             `json:"currency"`
	Status      string             `json:"status"`
	TotalAmount decimal.Decimal    `json:"total_amount"`
	PaidAmount  decimal.Decimal    `json:"paid_amount"`
	BalanceDue  decimal.Decimal    `json:"balance_due"`
	IssueDate   string             `json:"issue_date"`
	DueDate     string             `json:"due_date"`
	PaidDate    string             `json:"paid_date,omitempty"`
	Items       []BillItemResponse `json:"items,omitempty"`
	Payments    []PaymentResponse  `json:"payments,omitempty"`
	// RateDegraded true cuando algún monto se convirtió con tasa de respaldo.
	RateDegraded bool `json:"rate_degraded,omitempty"`
}
