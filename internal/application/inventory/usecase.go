package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/facturapy/facturapy-api/internal/application/dto"
	"github.com/facturapy/facturapy-api/internal/domain"
	"github.com/facturapy/facturapy-api/internal/domain/entity"
	"github.com/facturapy/facturapy-api/internal/domain/repository"
)

// UseCase operaciones de inventario: ajustes manuales y consultas del
// libro de movimientos.
type UseCase struct {
	txRunner    TxRunner
	ledger      *StockLedger
	productRepo repository.ProductRepository
	movRepo     repository.StockMovementRepository
}

// NewUseCase construye el caso de uso de inventario.
func NewUseCase(
	txRunner TxRunner,
	ledger *StockLedger,
	productRepo repository.ProductRepository,
	movRepo repository.StockMovementRepository,
) *UseCase {
	return &UseCase{txRunner: txRunner, ledger: ledger, productRepo: productRepo, movRepo: movRepo}
}

// AdjustStock registra un ajuste manual de inventario: el ajuste (motivo,
// usuario) y su movimiento "adjustment" uno a uno, en una sola transacción.
// El delta puede ser de cualquier signo; no hay precondición de
// no-negatividad para ajustes.
func (uc *UseCase) AdjustStock(ctx context.Context, userID, productID string, in dto.AdjustStockRequest) (*dto.AdjustmentResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, domain.ErrInvalidInput
	}
	if in.Quantity.IsZero() {
		return nil, domain.ErrInvalidInput
	}

	product, err := uc.productRepo.GetByID(productID)
	if err != nil || product == nil {
		return nil, domain.ErrNotFound
	}
	if product.UserID != userID {
		return nil, domain.ErrForbidden
	}

	now := time.Now()
	adj := &entity.InventoryAdjustment{
		ID:        uuid.New().String(),
		ProductID: productID,
		Quantity:  in.Quantity,
		Reason:    in.Reason,
		UserID:    userID,
		CreatedAt: now,
	}

	err = uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		adjRepo repository.AdjustmentRepository,
	) error {
		if err := adjRepo.Create(adj); err != nil {
			return err
		}
		return uc.ledger.PostMovementInTx(
			movRepo, productRepo,
			productID, in.Quantity,
			entity.MovementTypeAdjustment, entity.SourceTypeAdjustment, adj.ID,
			in.Reason, userID, now,
		)
	})
	if err != nil {
		return nil, err
	}

	return &dto.AdjustmentResponse{
		ID:        adj.ID,
		ProductID: adj.ProductID,
		Quantity:  adj.Quantity,
		Reason:    adj.Reason,
		CreatedAt: adj.CreatedAt.Format(time.RFC3339),
	}, nil
}

// ListMovements devuelve los movimientos de un producto, más reciente primero.
func (uc *UseCase) ListMovements(ctx context.Context, userID, productID string, page dto.PageRequest) ([]dto.StockMovementResponse, error) {
	page.DefaultPage()
	product, err := uc.productRepo.GetByID(productID)
	if err != nil || product == nil {
		return nil, domain.ErrNotFound
	}
	if product.UserID != userID {
		return nil, domain.ErrForbidden
	}
	movements, err := uc.movRepo.ListByProduct(productID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockMovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, dto.StockMovementResponse{
			ID:         m.ID,
			ProductID:  m.ProductID,
			Type:       m.Type,
			Quantity:   m.Quantity,
			SourceType: m.SourceType,
			SourceID:   m.SourceID,
			Notes:      m.Notes,
			CreatedAt:  m.CreatedAt.Format(time.RFC3339),
		})
	}
	return out, nil
}
