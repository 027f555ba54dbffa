package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryAdjustment representa un ajuste manual de stock con su motivo.
// Uno a uno con un StockMovement de tipo "adjustment".
type InventoryAdjustment struct {
	ID        string
	ProductID string
	Quantity  decimal.Decimal // delta con signo
	Reason    string
	UserID    string
	CreatedAt time.Time
}
