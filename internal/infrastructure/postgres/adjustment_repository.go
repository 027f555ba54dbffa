package postgres

import (
	"context"
	"fmt"

	"github.com/facturapy/facturapy-api/internal/domain/entity"
	"github.com/facturapy/facturapy-api/internal/domain/repository"
)

var _ repository.AdjustmentRepository = (*AdjustmentRepo)(nil)

// AdjustmentRepo implementación del puerto AdjustmentRepository sobre PostgreSQL.
type AdjustmentRepo struct {
	q Querier
}

// NewAdjustmentRepository construye el adaptador de ajustes de inventario.
func NewAdjustmentRepository(q Querier) *AdjustmentRepo {
	return &AdjustmentRepo{q: q}
}

// Create persiste un ajuste.
func (r *AdjustmentRepo) Create(adj *entity.InventoryAdjustment) error {
	query := `
		INSERT INTO inventory_adjustments (id, product_id, quantity, reason, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		adj.ID, adj.ProductID, adj.Quantity, adj.Reason, adj.UserID, adj.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert adjustment: %w", err)
	}
	return nil
}

// ListByProduct lista los ajustes de un producto, más reciente primero.
func (r *AdjustmentRepo) ListByProduct(productID string) ([]*entity.InventoryAdjustment, error) {
	query := `
		SELECT id, product_id, quantity, reason, user_id, created_at
		FROM inventory_adjustments WHERE product_id = $1 ORDER BY created_at DESC`
	rows, err := r.q.Query(context.Background(), query, productID)
	if err != nil {
		return nil, fmt.Errorf("list adjustments: %w", err)
	}
	defer rows.Close()

	var out []*entity.InventoryAdjustment
	for rows.Next() {
		var a entity.InventoryAdjustment
		if err := rows.Scan(&a.ID, &a.ProductID, &a.Quantity, &a.Reason, &a.UserID, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan adjustment: %w", err)
		}
		out = append(out, &a)
	}
	return out, rows.Err()
}
