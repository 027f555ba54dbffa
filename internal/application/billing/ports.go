package billing

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/facturapy/facturapy-api/internal/domain/entity"
	"github.com/facturapy/facturapy-api/internal/domain/repository"
)

// BillingTxRunner ejecuta una función dentro de una transacción que cubre
// factura, pagos, libro de stock, productos y libro de caja: o todo
// commitea, o todo vuelve atrás.
type BillingTxRunner interface {
	RunBilling(ctx context.Context, fn func(
		billRepo repository.BillRepository,
		payRepo repository.PaymentRepository,
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		txnRepo repository.TransactionRepository,
	) error) error
}

// StockLedger puerto hacia el libro de stock. Las operaciones usan los
// repositorios del caller (misma transacción); si retornan error (ej:
// ErrInsufficientStock) el caller debe hacer rollback.
type StockLedger interface {
	PostMovementInTx(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		productID string,
		delta decimal.Decimal,
		movType, sourceType, sourceID, notes, userID string,
		now time.Time,
	) error
	ReverseSourceInTx(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		sourceType, sourceID string,
		reversalType, reversalSourceType, notes, userID string,
		now time.Time,
	) error
}

// BillPDFGenerator genera la representación gráfica de una factura.
type BillPDFGenerator interface {
	GenerateBillPDF(ctx context.Context, bill *entity.Bill, client *entity.Client, items []BillItemForPDF) ([]byte, error)
}

// BillItemForPDF línea enriquecida con el nombre del producto para el PDF.
type BillItemForPDF struct {
	Item        *entity.BillItem
	ProductName string
	ProductSKU  string
	Unit        string
}
