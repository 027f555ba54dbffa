package inventory

import (
	"context"

	"github.com/facturapy/facturapy-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad entre el movimiento
// del libro de stock, la cantidad del producto y el registro de ajuste.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		adjRepo repository.AdjustmentRepository,
	) error) error
}
