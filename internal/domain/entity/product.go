package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o SKU del inventario.
// StockQty solo se muta a través del libro de movimientos (inventory ledger),
// nunca de forma directa; la deducción por venta valida no-negatividad.
type Product struct {
	ID            string
	UserID        string
	SKU           string // código único por usuario
	Name          string
	Description   string
	Unit          string          // unidad de medida (un, kg, lt, ...)
	PurchasePrice decimal.Decimal // precio de compra
	SellPrice     decimal.Decimal // precio de venta
	TaxRate       decimal.Decimal // IVA en porcentaje: 0, 5, 10
	StockQty      decimal.Decimal
	MinStock      decimal.Decimal
	MaxStock      decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
