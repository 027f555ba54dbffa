package masterdata

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/facturapy/facturapy-api/internal/application/dto"
	"github.com/facturapy/facturapy-api/internal/application/inventory"
	"github.com/facturapy/facturapy-api/internal/domain"
	"github.com/facturapy/facturapy-api/internal/domain/entity"
	"github.com/facturapy/facturapy-api/internal/domain/repository"
)

// ProductUseCase CRUD de productos. El stock nunca se edita directo:
// el stock inicial entra como ajuste con su movimiento, y de ahí en
// adelante solo lo mueven ventas, compras y ajustes.
type ProductUseCase struct {
	txRunner    inventory.TxRunner
	ledger      *inventory.StockLedger
	productRepo repository.ProductRepository
	movRepo     repository.StockMovementRepository
}

// NewProductUseCase construye el caso de uso de productos.
func NewProductUseCase(
	txRunner inventory.TxRunner,
	ledger *inventory.StockLedger,
	productRepo repository.ProductRepository,
	movRepo repository.StockMovementRepository,
) *ProductUseCase {
	return &ProductUseCase{txRunner: txRunner, ledger: ledger, productRepo: productRepo, movRepo: movRepo}
}

// CreateProduct crea un producto con SKU único por usuario. Si trae stock
// inicial, este entra como ajuste "Stock inicial" en la misma transacción
// para que la suma de movimientos siempre iguale la cantidad del producto.
func (uc *ProductUseCase) CreateProduct(ctx context.Context, userID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, domain.ErrInvalidInput
	}
	if in.PurchasePrice.LessThan(decimal.Zero) || in.SellPrice.LessThan(decimal.Zero) ||
		in.TaxRate.LessThan(decimal.Zero) || in.StockQty.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	if existing, _ := uc.productRepo.GetBySKU(userID, in.SKU); existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	product := &entity.Product{
		ID:            uuid.New().String(),
		UserID:        userID,
		SKU:           in.SKU,
		Name:          in.Name,
		Description:   in.Description,
		Unit:          in.Unit,
		PurchasePrice: in.PurchasePrice,
		SellPrice:     in.SellPrice,
		TaxRate:       in.TaxRate,
		StockQty:      decimal.Zero,
		MinStock:      in.MinStock,
		MaxStock:      in.MaxStock,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err := uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		adjRepo repository.AdjustmentRepository,
	) error {
		if err := productRepo.Create(product); err != nil {
			return err
		}
		if in.StockQty.IsZero() {
			return nil
		}
		adj := &entity.InventoryAdjustment{
			ID:        uuid.New().String(),
			ProductID: product.ID,
			Quantity:  in.StockQty,
			Reason:    "Stock inicial",
			UserID:    userID,
			CreatedAt: now,
		}
		if err := adjRepo.Create(adj); err != nil {
			return err
		}
		if err := uc.ledger.PostMovementInTx(
			movRepo, productRepo,
			product.ID, in.StockQty,
			entity.MovementTypeAdjustment, entity.SourceTypeAdjustment, adj.ID,
			adj.Reason, userID, now,
		); err != nil {
			return err
		}
		product.StockQty = in.StockQty
		return nil
	})
	if err != nil {
		return nil, err
	}

	return toProductResponse(product), nil
}

// GetProduct devuelve un producto del usuario.
func (uc *ProductUseCase) GetProduct(ctx context.Context, userID, productID string) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil || product == nil {
		return nil, domain.ErrNotFound
	}
	if product.UserID != userID {
		return nil, domain.ErrForbidden
	}
	return toProductResponse(product), nil
}

// ListProducts lista los productos del usuario.
func (uc *ProductUseCase) ListProducts(ctx context.Context, userID string, page dto.PageRequest) ([]dto.ProductResponse, error) {
	page.DefaultPage()
	products, err := uc.productRepo.List(userID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, *toProductResponse(p))
	}
	return out, nil
}

// ListLowStock lista productos con stock en o bajo su mínimo.
func (uc *ProductUseCase) ListLowStock(ctx context.Context, userID string) ([]dto.ProductResponse, error) {
	products, err := uc.productRepo.ListLowStock(userID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, *toProductResponse(p))
	}
	return out, nil
}

// UpdateProduct actualiza datos del producto. No toca SKU ni stock.
func (uc *ProductUseCase) UpdateProduct(ctx context.Context, userID, productID string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(productID)
	if err != nil || product == nil {
		return nil, domain.ErrNotFound
	}
	if product.UserID != userID {
		return nil, domain.ErrForbidden
	}

	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Unit != nil {
		product.Unit = *in.Unit
	}
	if in.PurchasePrice != nil {
		if in.PurchasePrice.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		product.PurchasePrice = *in.PurchasePrice
	}
	if in.SellPrice != nil {
		if in.SellPrice.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		product.SellPrice = *in.SellPrice
	}
	if in.TaxRate != nil {
		if in.TaxRate.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		product.TaxRate = *in.TaxRate
	}
	if in.MinStock != nil {
		product.MinStock = *in.MinStock
	}
	if in.MaxStock != nil {
		product.MaxStock = *in.MaxStock
	}
	product.UpdatedAt = time.Now()

	if err := uc.productRepo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// DeleteProduct elimina un producto sin historial de movimientos. Uno con
// movimientos no se borra: quedaría un libro que referencia un producto
// inexistente.
func (uc *ProductUseCase) DeleteProduct(ctx context.Context, userID, productID string) error {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil || product == nil {
		return domain.ErrNotFound
	}
	if product.UserID != userID {
		return domain.ErrForbidden
	}
	movements, err := uc.movRepo.ListByProduct(productID, 1, 0)
	if err != nil {
		return err
	}
	if len(movements) > 0 {
		return domain.ErrConflict
	}
	return uc.productRepo.Delete(productID)
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:            p.ID,
		SKU:           p.SKU,
		Name:          p.Name,
		Description:   p.Description,
		Unit:          p.Unit,
		PurchasePrice: p.PurchasePrice,
		SellPrice:     p.SellPrice,
		TaxRate:       p.TaxRate,
		StockQty:      p.StockQty,
		MinStock:      p.MinStock,
		MaxStock:      p.MaxStock,
		CreatedAt:     p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     p.UpdatedAt.Format(time.RFC3339),
	}
}
