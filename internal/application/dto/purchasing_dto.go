package dto

import "github.com/shopspring/decimal"

// PurchaseItemRequest línea de factura de compra. ProductID es opcional:
// solo las líneas ligadas a un producto mueven stock.
type PurchaseItemRequest struct {
	ProductID   string          `json:"product_id" validate:"omitempty,uuid4"`
	Description string          `json:"description" validate:"required,max=200"`
	Quantity    decimal.Decimal `json:"quantity" validate:"required"`
	UnitPrice   decimal.Decimal `json:"unit_price" validate:"required"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
}

// CreatePurchaseInvoiceRequest body para POST /api/purchase-invoices.
// AttachedFile es una referencia a un archivo ya almacenado (pdf o xml).
type CreatePurchaseInvoiceRequest struct {
	VendorID      string                `json:"vendor_id" validate:"required,uuid4"`
	InvoiceNumber string                `json:"invoice_number" validate:"required,max=50"`
	Currency      string                `json:"currency" validate:"omitempty,len=3"`
	Date          string                `json:"date" validate:"required,datetime=2006-01-02"`
	DueDate       string                `json:"due_date" validate:"omitempty,datetime=2006-01-02"`
	Status        string                `json:"status" validate:"omitempty,oneof=unpaid partial paid"`
	Notes         string                `json:"notes" validate:"omitempty,max=500"`
	AttachedFile  string                `json:"attached_file" validate:"omitempty,max=500,endswith=.pdf|endswith=.xml"`
	Items         []PurchaseItemRequest `json:"items" validate:"required,min=1,dive"`
}

// UpdatePurchaseInvoiceRequest body para PATCH /api/purchase-invoices/:id.
// Si Items viene presente, el reemplazo es total (no merge): se revierten
// todos los movimientos previos de la factura antes de aplicar los nuevos.
type UpdatePurchaseInvoiceRequest struct {
	InvoiceNumber *string               `json:"invoice_number" validate:"omitempty,max=50"`
	Date          *string               `json:"date" validate:"omitempty,datetime=2006-01-02"`
	DueDate       *string               `json:"due_date" validate:"omitempty,datetime=2006-01-02"`
	Notes         *string               `json:"notes" validate:"omitempty,max=500"`
	AttachedFile  *string               `json:"attached_file" validate:"omitempty,max=500"`
	Items         []PurchaseItemRequest `json:"items" validate:"omitempty,min=1,dive"`
}

// PurchaseItemResponse línea en respuestas.
type PurchaseItemResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id,omitempty"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
	Total       decimal.Decimal `json:"total"`
}

// PurchaseInvoiceResponse factura de compra con detalle.
type PurchaseInvoiceResponse struct {
	ID            string                 `json:"id"`
	VendorID      string                 `json:"vendor_id"`
	VendorName    string                 `json:"vendor_name,omitempty"`
	InvoiceNumber string                 `json:"invoice_number"`
	Currency      string                 `json:"currency"`
	Status        string                 `json:"status"`
	Total         decimal.Decimal        `json:"total"`
	PaidAmount    decimal.Decimal        `json:"paid_amount"`
	BalanceDue    decimal.Decimal        `json:"balance_due"`
	Date          string                 `json:"date"`
	DueDate       string                 `json:"due_date,omitempty"`
	Notes         string                 `json:"notes,omitempty"`
	AttachedFile  string                 `json:"attached_file,omitempty"`
	Items         []PurchaseItemResponse `json:"items,omitempty"`
	Payments      []PaymentResponse      `json:"payments,omitempty"`
	// RateDegraded true cuando algún monto se convirtió con tasa de respaldo.
	RateDegraded bool `json:"rate_degraded,omitempty"`
}
