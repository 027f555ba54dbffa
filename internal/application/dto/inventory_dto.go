package dto

import "github.com/shopspring/decimal"

// AdjustStockRequest body para POST /api/products/:id/adjust-stock.
// Quantity es un delta con signo; Reason es obligatorio para auditoría.
type AdjustStockRequest struct {
	Quantity decimal.Decimal `json:"quantity" validate:"required"`
	Reason   string          `json:"reason" validate:"required,max=200"`
}

// AdjustmentResponse ajuste en respuestas.
type AdjustmentResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	Reason    string          `json:"reason"`
	CreatedAt string          `json:"created_at"`
}

// StockMovementResponse movimiento del libro de stock en respuestas.
type StockMovementResponse struct {
	ID         string          `json:"id"`
	ProductID  string          `json:"product_id"`
	Type       string          `json:"type"`
	Quantity   decimal.Decimal `json:"quantity"`
	SourceType string          `json:"source_type,omitempty"`
	SourceID   string          `json:"source_id,omitempty"`
	Notes      string          `json:"notes,omitempty"`
	CreatedAt  string          `json:"created_at"`
}
