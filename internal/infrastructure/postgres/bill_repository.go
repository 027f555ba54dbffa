package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/facturapy/facturapy-api/internal/domain"
	"github.com/facturapy/facturapy-api/internal/domain/entity"
	"github.com/facturapy/facturapy-api/internal/domain/repository"
)

var _ repository.BillRepository = (*BillRepo)(nil)

// Clave del advisory lock que serializa la numeración de facturas.
const billNumberLockKey = 6120901

// BillRepo implementación del puerto BillRepository sobre PostgreSQL (usable con pool o tx).
type BillRepo struct {
	q Querier
}

// NewBillRepository construye el adaptador de persistencia para facturas de venta.
func NewBillRepository(q Querier) *BillRepo {
	return &BillRepo{q: q}
}

const billColumns = `id, user_id, client_id, number, number_seq, currency, status, total_amount, paid_amount, issue_date, due_date, paid_date, created_at, updated_at`

func scanBill(row pgx.Row) (*entity.Bill, error) {
	var b entity.Bill
	err := row.Scan(
		&b.ID, &b.UserID, &b.ClientID, &b.Number, &b.NumberSeq, &b.Currency, &b.Status,
		&b.TotalAmount, &b.PaidAmount, &b.IssueDate, &b.DueDate, &b.PaidDate,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// Create persiste la cabecera de la factura.
func (r *BillRepo) Create(bill *entity.Bill) error {
	query := `
		INSERT INTO bills (` + billColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		bill.ID, bill.UserID, bill.ClientID, bill.Number, bill.NumberSeq, bill.Currency, bill.Status,
		bill.TotalAmount, bill.PaidAmount, bill.IssueDate, bill.DueDate, bill.PaidDate,
		bill.CreatedAt, bill.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert bill: %w", err)
	}
	return nil
}

// CreateItem persiste una línea de la factura.
func (r *BillRepo) CreateItem(item *entity.BillItem) error {
	query := `
		INSERT INTO bill_items (id, bill_id, product_id, quantity, price, tax_rate, subtotal, tax_amount, total)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.BillID, item.ProductID, item.Quantity, item.Price, item.TaxRate,
		item.Subtotal, item.TaxAmount, item.Total,
	)
	if err != nil {
		return fmt.Errorf("insert bill item: %w", err)
	}
	return nil
}

// GetByID obtiene una factura por ID.
func (r *BillRepo) GetByID(id string) (*entity.Bill, error) {
	query := `SELECT ` + billColumns + ` FROM bills WHERE id = $1`
	b, err := scanBill(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get bill: %w", err)
	}
	return b, nil
}

// GetForUpdate obtiene la factura y bloquea la fila; pagos concurrentes
// quedan serializados sobre paid_amount.
func (r *BillRepo) GetForUpdate(id string) (*entity.Bill, error) {
	query := `SELECT ` + billColumns + ` FROM bills WHERE id = $1 FOR UPDATE`
	b, err := scanBill(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get bill for update: %w", err)
	}
	return b, nil
}

// GetItemsByBillID lista las líneas de una factura.
func (r *BillRepo) GetItemsByBillID(billID string) ([]*entity.BillItem, error) {
	query := `
		SELECT id, bill_id, product_id, quantity, price, tax_rate, subtotal, tax_amount, total
		FROM bill_items WHERE bill_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, billID)
	if err != nil {
		return nil, fmt.Errorf("list bill items: %w", err)
	}
	defer rows.Close()

	var out []*entity.BillItem
	for rows.Next() {
		var it entity.BillItem
		if err := rows.Scan(&it.ID, &it.BillID, &it.ProductID, &it.Quantity, &it.Price,
			&it.TaxRate, &it.Subtotal, &it.TaxAmount, &it.Total); err != nil {
			return nil, fmt.Errorf("scan bill item: %w", err)
		}
		out = append(out, &it)
	}
	return out, rows.Err()
}

// List lista facturas del usuario con filtros opcionales.
func (r *BillRepo) List(userID string, f repository.BillFilter) ([]*entity.Bill, error) {
	query := `SELECT ` + billColumns + ` FROM bills WHERE user_id = $1`
	args := []any{userID}
	if f.ClientID != "" {
		args = append(args, f.ClientID)
		query += fmt.Sprintf(" AND client_id = $%d", len(args))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if f.From != nil {
		args = append(args, *f.From)
		query += fmt.Sprintf(" AND issue_date >= $%d", len(args))
	}
	if f.To != nil {
		args = append(args, *f.To)
		query += fmt.Sprintf(" AND issue_date <= $%d", len(args))
	}
	args = append(args, f.Limit)
	query += fmt.Sprintf(" ORDER BY number_seq DESC LIMIT $%d", len(args))
	args = append(args, f.Offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list bills: %w", err)
	}
	defer rows.Close()

	var out []*entity.Bill
	for rows.Next() {
		b, err := scanBill(rows)
		if err != nil {
			return nil, fmt.Errorf("scan bill: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// NextNumberSeq devuelve el siguiente consecutivo global. El advisory lock
// de transacción serializa a los creadores concurrentes: quien lo toma
// lee el máximo vigente y lo incrementa; el lock se libera al terminar la
// tx, así que solo sirve dentro de una transacción.
func (r *BillRepo) NextNumberSeq() (int64, error) {
	ctx := context.Background()
	if _, err := r.q.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, billNumberLockKey); err != nil {
		return 0, fmt.Errorf("advisory lock bill number: %w", err)
	}
	var seq int64
	err := r.q.QueryRow(ctx, `SELECT COALESCE(MAX(number_seq), 0) + 1 FROM bills`).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next bill number: %w", err)
	}
	return seq, nil
}

// UpdatePayment persiste paid_amount, status y paid_date.
func (r *BillRepo) UpdatePayment(bill *entity.Bill) error {
	query := `
		UPDATE bills SET paid_amount = $2, status = $3, paid_date = $4, updated_at = $5
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		bill.ID, bill.PaidAmount, bill.Status, bill.PaidDate, bill.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update bill payment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteItems elimina las líneas de una factura.
func (r *BillRepo) DeleteItems(billID string) error {
	if _, err := r.q.Exec(context.Background(), `DELETE FROM bill_items WHERE bill_id = $1`, billID); err != nil {
		return fmt.Errorf("delete bill items: %w", err)
	}
	return nil
}

// Delete elimina la cabecera de una factura.
func (r *BillRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM bills WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete bill: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
