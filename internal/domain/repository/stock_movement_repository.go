package repository

import (
	"github.com/shopspring/decimal"

	"github.com/facturapy/facturapy-api/internal/domain/entity"
)

// StockMovementRepository define el puerto del libro de stock.
// Append-only: solo Create y lecturas; nunca update ni delete.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	ListByProduct(productID string, limit, offset int) ([]*entity.StockMovement, error)
	ListBySource(sourceType, sourceID string) ([]*entity.StockMovement, error)
	// SumByProduct devuelve la suma de deltas del producto (auditoría:
	// debe coincidir con products.stock_qty tras cada operación).
	SumByProduct(productID string) (decimal.Decimal, error)
}
