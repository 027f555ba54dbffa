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

var _ repository.PurchaseInvoiceRepository = (*PurchaseInvoiceRepo)(nil)

// PurchaseInvoiceRepo implementación del puerto PurchaseInvoiceRepository sobre PostgreSQL.
type PurchaseInvoiceRepo struct {
	q Querier
}

// NewPurchaseInvoiceRepository construye el adaptador de persistencia para facturas de compra.
func NewPurchaseInvoiceRepository(q Querier) *PurchaseInvoiceRepo {
	return &PurchaseInvoiceRepo{q: q}
}

const purchaseInvoiceColumns = `id, user_id, vendor_id, invoice_number, currency, status, total, paid_amount, date, due_date, notes, attached_file, created_at, updated_at`

func scanPurchaseInvoice(row pgx.Row) (*entity.PurchaseInvoice, error) {
	var p entity.PurchaseInvoice
	err := row.Scan(
		&p.ID, &p.UserID, &p.VendorID, &p.InvoiceNumber, &p.Currency, &p.Status,
		&p.Total, &p.PaidAmount, &p.Date, &p.DueDate, &p.Notes, &p.AttachedFile,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste la cabecera de la factura de compra.
func (r *PurchaseInvoiceRepo) Create(invoice *entity.PurchaseInvoice) error {
	query := `
		INSERT INTO purchase_invoices (` + purchaseInvoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		invoice.ID, invoice.UserID, invoice.VendorID, invoice.InvoiceNumber, invoice.Currency,
		invoice.Status, invoice.Total, invoice.PaidAmount, invoice.Date, invoice.DueDate,
		invoice.Notes, invoice.AttachedFile, invoice.CreatedAt, invoice.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert purchase invoice: %w", err)
	}
	return nil
}

// CreateItem persiste una línea.
func (r *PurchaseInvoiceRepo) CreateItem(item *entity.PurchaseInvoiceItem) error {
	// product_id vacío se guarda como NULL.
	var productID any
	if item.ProductID != "" {
		productID = item.ProductID
	}
	query := `
		INSERT INTO purchase_invoice_items (id, invoice_id, product_id, description, quantity, unit_price, tax_rate, total)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.InvoiceID, productID, item.Description,
		item.Quantity, item.UnitPrice, item.TaxRate, item.Total,
	)
	if err != nil {
		return fmt.Errorf("insert purchase invoice item: %w", err)
	}
	return nil
}

// GetByID obtiene una factura de compra por ID.
func (r *PurchaseInvoiceRepo) GetByID(id string) (*entity.PurchaseInvoice, error) {
	query := `SELECT ` + purchaseInvoiceColumns + ` FROM purchase_invoices WHERE id = $1`
	p, err := scanPurchaseInvoice(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase invoice: %w", err)
	}
	return p, nil
}

// GetForUpdate obtiene la factura y bloquea la fila.
func (r *PurchaseInvoiceRepo) GetForUpdate(id string) (*entity.PurchaseInvoice, error) {
	query := `SELECT ` + purchaseInvoiceColumns + ` FROM purchase_invoices WHERE id = $1 FOR UPDATE`
	p, err := scanPurchaseInvoice(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase invoice for update: %w", err)
	}
	return p, nil
}

// GetItemsByInvoiceID lista las líneas de una factura de compra.
func (r *PurchaseInvoiceRepo) GetItemsByInvoiceID(invoiceID string) ([]*entity.PurchaseInvoiceItem, error) {
	query := `
		SELECT id, invoice_id, COALESCE(product_id::text, ''), description, quantity, unit_price, tax_rate, total
		FROM purchase_invoice_items WHERE invoice_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list purchase invoice items: %w", err)
	}
	defer rows.Close()

	var out []*entity.PurchaseInvoiceItem
	for rows.Next() {
		var it entity.PurchaseInvoiceItem
		if err := rows.Scan(&it.ID, &it.InvoiceID, &it.ProductID, &it.Description,
			&it.Quantity, &it.UnitPrice, &it.TaxRate, &it.Total); err != nil {
			return nil, fmt.Errorf("scan purchase invoice item: %w", err)
		}
		out = append(out, &it)
	}
	return out, rows.Err()
}

// List lista facturas de compra del usuario con filtros opcionales.
func (r *PurchaseInvoiceRepo) List(userID string, f repository.PurchaseInvoiceFilter) ([]*entity.PurchaseInvoice, error) {
	query := `SELECT ` + purchaseInvoiceColumns + ` FROM purchase_invoices WHERE user_id = $1`
	args := []any{userID}
	if f.VendorID != "" {
		args = append(args, f.VendorID)
		query += fmt.Sprintf(" AND vendor_id = $%d", len(args))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
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
		return nil, fmt.Errorf("list purchase invoices: %w", err)
	}
	defer rows.Close()

	var out []*entity.PurchaseInvoice
	for rows.Next() {
		p, err := scanPurchaseInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan purchase invoice: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Update persiste la cabecera completa.
func (r *PurchaseInvoiceRepo) Update(invoice *entity.PurchaseInvoice) error {
	query := `
		UPDATE purchase_invoices
		SET invoice_number = $2, currency = $3, status = $4, total = $5, paid_amount = $6,
		    date = $7, due_date = $8, notes = $9, attached_file = $10, updated_at = $11
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		invoice.ID, invoice.InvoiceNumber, invoice.Currency, invoice.Status,
		invoice.Total, invoice.PaidAmount, invoice.Date, invoice.DueDate,
		invoice.Notes, invoice.AttachedFile, invoice.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update purchase invoice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdatePayment persiste paid_amount y status.
func (r *PurchaseInvoiceRepo) UpdatePayment(invoice *entity.PurchaseInvoice) error {
	query := `
		UPDATE purchase_invoices SET paid_amount = $2, status = $3, updated_at = $4
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		invoice.ID, invoice.PaidAmount, invoice.Status, invoice.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update purchase invoice payment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteItems elimina las líneas de una factura de compra.
func (r *PurchaseInvoiceRepo) DeleteItems(invoiceID string) error {
	if _, err := r.q.Exec(context.Background(),
		`DELETE FROM purchase_invoice_items WHERE invoice_id = $1`, invoiceID); err != nil {
		return fmt.Errorf("delete purchase invoice items: %w", err)
	}
	return nil
}

// Delete elimina la cabecera.
func (r *PurchaseInvoiceRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM purchase_invoices WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete purchase invoice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
