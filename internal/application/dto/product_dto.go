package dto

import "github.com/shopspring/decimal"

// CreateProductRequest body para POST /api/products.
type CreateProductRequest struct {
	SKU           string          `json:"sku" validate:"required,max=50"`
	Name          string          `json:"name" validate:"required,max=100"`
	Description   string          `json:"description" validate:"omitempty,max=500"`
	Unit          string          `json:"unit" validate:"required,max=20"`
	PurchasePrice decimal.Decimal `json:"purchase_price" validate:"required"`
	SellPrice     decimal.Decimal `json:"sell_price" validate:"required"`
	TaxRate       decimal.Decimal `json:"tax_rate"`
	StockQty      decimal.Decimal `json:"stock_qty"`
	MinStock      decimal.Decimal `json:"min_stock"`
	MaxStock      decimal.Decimal `json:"max_stock"`
}

// UpdateProductRequest body para PATCH /api/products/:id.
// El SKU y el stock no se editan por aquí: el stock solo se mueve por el
// libro de movimientos.
type UpdateProductRequest struct {
	Name          *string          `json:"name" validate:"omitempty,max=100"`
	Description   *string          `json:"description" validate:"omitempty,max=500"`
	Unit          *string          `json:"unit" validate:"omitempty,max=20"`
	PurchasePrice *decimal.Decimal `json:"purchase_price"`
	SellPrice     *decimal.Decimal `json:"sell_price"`
	TaxRate       *decimal.Decimal `json:"tax_rate"`
	MinStock      *decimal.Decimal `json:"min_stock"`
	MaxStock      *decimal.Decimal `json:"max_stock"`
}

// ProductResponse producto en respuestas.
type ProductResponse struct {
	ID            string          `json:"id"`
	SKU           string          `json:"sku"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	Unit          string          `json:"unit"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	SellPrice     decimal.Decimal `json:"sell_price"`
	TaxRate       decimal.Decimal `json:"tax_rate"`
	StockQty      decimal.Decimal `json:"stock_qty"`
	MinStock      decimal.Decimal `json:"min_stock"`
	MaxStock      decimal.Decimal `json:"max_stock"`
	CreatedAt     string          `json:"created_at"`
	UpdatedAt     string          `json:"updated_at"`
}
