package repository

import (
	"github.com/shopspring/decimal"

	"github.com/facturapy/facturapy-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para productos (DIP).
// UpdateStock solo debe invocarse desde el ledger de stock, dentro de la
// misma transacción que creó el movimiento.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySKU(userID, sku string) (*entity.Product, error)
	// GetForUpdate obtiene el producto y bloquea la fila (SELECT FOR UPDATE)
	// para el par verificación-de-stock + movimiento.
	GetForUpdate(id string) (*entity.Product, error)
	List(userID string, limit, offset int) ([]*entity.Product, error)
	ListLowStock(userID string) ([]*entity.Product, error)
	Update(product *entity.Product) error
	UpdateStock(id string, qty decimal.Decimal) error
	Delete(id string) error
}
