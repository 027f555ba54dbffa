package postgres

import (
	"context"
	"fmt"

	"github.com/facturapy/facturapy-api/internal/domain/entity"
	"github.com/facturapy/facturapy-api/internal/domain/repository"
)

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

// PaymentRepo implementación del puerto PaymentRepository sobre PostgreSQL.
// El target se guarda como (target_kind, target_id): exactamente un padre,
// sin pares de FKs nulas.
type PaymentRepo struct {
	q Querier
}

// NewPaymentRepository construye el adaptador de persistencia para pagos.
func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

// Create persiste un pago. No hay Update ni Delete: los pagos son inmutables.
func (r *PaymentRepo) Create(payment *entity.Payment) error {
	query := `
		INSERT INTO payments (id, target_kind, target_id, amount, currency, original_amount, original_currency, payment_date, method, notes, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		payment.ID, string(payment.Target.Kind), payment.Target.ID,
		payment.Amount, payment.Currency, payment.OriginalAmount, payment.OriginalCurrency,
		payment.PaymentDate, payment.Method, payment.Notes, payment.CreatedAt, payment.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

// ListByTarget lista los pagos de un documento, más antiguo primero.
func (r *PaymentRepo) ListByTarget(target entity.PaymentTarget) ([]*entity.Payment, error) {
	query := `
		SELECT id, target_kind, target_id, amount, currency, original_amount, original_currency, payment_date, method, notes, created_at, created_by
		FROM payments WHERE target_kind = $1 AND target_id = $2 ORDER BY payment_date, created_at`
	rows, err := r.q.Query(context.Background(), query, string(target.Kind), target.ID)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()

	var out []*entity.Payment
	for rows.Next() {
		var p entity.Payment
		var kind string
		if err := rows.Scan(&p.ID, &kind, &p.Target.ID, &p.Amount, &p.Currency,
			&p.OriginalAmount, &p.OriginalCurrency, &p.PaymentDate, &p.Method, &p.Notes,
			&p.CreatedAt, &p.CreatedBy); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		p.Target.Kind = entity.PaymentTargetKind(kind)
		out = append(out, &p)
	}
	return out, rows.Err()
}

// ExistsForTarget indica si el documento tiene al menos un pago.
func (r *PaymentRepo) ExistsForTarget(target entity.PaymentTarget) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM payments WHERE target_kind = $1 AND target_id = $2)`,
		string(target.Kind), target.ID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("payment exists: %w", err)
	}
	return exists, nil
}
