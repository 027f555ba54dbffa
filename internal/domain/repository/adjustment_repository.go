package repository

import "github.com/facturapy/facturapy-api/internal/domain/entity"

// AdjustmentRepository define el puerto de persistencia para ajustes de
// inventario (uno a uno con un movimiento de tipo "adjustment").
type AdjustmentRepository interface {
	Create(adj *entity.InventoryAdjustment) error
	ListByProduct(productID string) ([]*entity.InventoryAdjustment, error)
}
