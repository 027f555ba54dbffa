package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/facturapy/facturapy-api/internal/domain"
	"github.com/facturapy/facturapy-api/internal/domain/entity"
	"github.com/facturapy/facturapy-api/internal/domain/repository"
)

// StockLedger es la única puerta de mutación del stock: cada delta se
// aplica junto con un movimiento inmutable, en la transacción del caller.
// Los motores de facturación y compras lo usan vía sus puertos.
type StockLedger struct{}

// NewStockLedger construye el ledger (sin estado propio).
func NewStockLedger() *StockLedger {
	return &StockLedger{}
}

// PostMovementInTx bloquea la fila del producto (SELECT FOR UPDATE),
// aplica el delta y apendiza el movimiento, usando los repositorios del
// caller (misma transacción). Para deltas de tipo venta (sale) rechaza con
// ErrInsufficientStock si el stock quedaría negativo; el par
// verificación + movimiento queda dentro de la misma transacción para que
// dos ventas concurrentes del mismo producto no lean ambas la cantidad
// previa a la deducción. Compras, ajustes y reversas no tienen precondición
// de no-negatividad.
func (l *StockLedger) PostMovementInTx(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	productID string,
	delta decimal.Decimal,
	movType, sourceType, sourceID, notes, userID string,
	now time.Time,
) error {
	product, err := productRepo.GetForUpdate(productID)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}

	newQty := product.StockQty.Add(delta)
	if movType == entity.MovementTypeSale && newQty.LessThan(decimal.Zero) {
		return domain.ErrInsufficientStock
	}

	if err := productRepo.UpdateStock(productID, newQty); err != nil {
		return err
	}
	mov := &entity.StockMovement{
		ID:         uuid.New().String(),
		ProductID:  productID,
		Quantity:   delta,
		Type:       movType,
		SourceType: sourceType,
		SourceID:   sourceID,
		Notes:      notes,
		CreatedAt:  now,
		CreatedBy:  userID,
	}
	return movRepo.Create(mov)
}

// ReverseSourceInTx apendiza la reversa exacta de todos los movimientos
// originados por (sourceType, sourceID): un movimiento nuevo por cada
// original, con el delta negado y el tipo indicado. No borra historial.
func (l *StockLedger) ReverseSourceInTx(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	sourceType, sourceID string,
	reversalType, reversalSourceType, notes, userID string,
	now time.Time,
) error {
	movements, err := movRepo.ListBySource(sourceType, sourceID)
	if err != nil {
		return err
	}
	for _, m := range movements {
		if err := l.PostMovementInTx(
			movRepo, productRepo,
			m.ProductID, m.Quantity.Neg(),
			reversalType, reversalSourceType, sourceID, notes, userID, now,
		); err != nil {
			return err
		}
	}
	return nil
}
