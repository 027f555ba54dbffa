package purchasing

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/facturapy/facturapy-api/internal/domain/repository"
)

// PurchasingTxRunner ejecuta una función dentro de una transacción que
// cubre factura de compra, pagos, libro de stock, productos y libro de
// caja: o todo commitea, o todo vuelve atrás.
type PurchasingTxRunner interface {
	RunPurchasing(ctx context.Context, fn func(
		invRepo repository.PurchaseInvoiceRepository,
		payRepo repository.PaymentRepository,
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		txnRepo repository.TransactionRepository,
	) error) error
}

// StockLedger puerto hacia el libro de stock (misma transacción del caller).
type StockLedger interface {
	PostMovementInTx(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		productID string,
		delta decimal.Decimal,
		movType, sourceType, sourceID, notes, userID string,
		now time.Time,
	) error
}
