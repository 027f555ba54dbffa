package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/facturapy/facturapy-api/internal/domain/entity"
	"github.com/facturapy/facturapy-api/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo implementación del puerto TransactionRepository sobre PostgreSQL.
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el adaptador del libro de caja.
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

// Create persiste un asiento.
func (r *TransactionRepo) Create(txn *entity.Transaction) error {
	query := `
		INSERT INTO transactions (id, user_id, type, source_module, source_id, amount, currency, exchange_rate, date, description, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		txn.ID, txn.UserID, txn.Type, txn.SourceModule, txn.SourceID,
		txn.Amount, txn.Currency, txn.ExchangeRate, txn.Date, txn.Description,
		txn.Status, txn.CreatedAt, txn.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// List lista los asientos del usuario con filtros opcionales.
func (r *TransactionRepo) List(userID string, f repository.TransactionFilter) ([]*entity.Transaction, error) {
	query := `
		SELECT id, user_id, type, source_module, source_id, amount, currency, exchange_rate, date, description, status, created_at, updated_at
		FROM transactions WHERE user_id = $1`
	args := []any{userID}
	if f.Type != "" {
		args = append(args, f.Type)
		query += fmt.Sprintf(" AND type = $%d", len(args))
	}
	if f.From != nil {
		args = append(args, *f.From)
		query += fmt.Sprintf(" AND date >= $%d", len(args))
	}
	if f.To != nil {
		args = append(args, *f.To)
		query += fmt.Sprintf(" AND date <= $%d", len(args))
	}
	args = append(args, f.Limit)
	query += fmt.Sprintf(" ORDER BY date DESC, created_at DESC LIMIT $%d", len(args))
	args = append(args, f.Offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var out []*entity.Transaction
	for rows.Next() {
		var t entity.Transaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.Type, &t.SourceModule, &t.SourceID,
			&t.Amount, &t.Currency, &t.ExchangeRate, &t.Date, &t.Description,
			&t.Status, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		out = append(out, &t)
	}
	return out, rows.Err()
}

// Summary agrega ingresos y egresos confirmados del período.
func (r *TransactionRepo) Summary(userID string, from, to time.Time) (*repository.TransactionSummary, error) {
	query := `
		SELECT
			COALESCE(SUM(amount) FILTER (WHERE type = 'INCOME'), 0),
			COALESCE(SUM(amount) FILTER (WHERE type = 'EXPENSE'), 0)
		FROM transactions
		WHERE user_id = $1 AND status = 'CONFIRMED' AND date >= $2 AND date <= $3`
	var s repository.TransactionSummary
	err := r.q.QueryRow(context.Background(), query, userID, from, to).Scan(&s.IncomeTotal, &s.ExpenseTotal)
	if err != nil {
		return nil, fmt.Errorf("transaction summary: %w", err)
	}
	return &s, nil
}
