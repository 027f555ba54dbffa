package billing

import (
	"github.com/facturapy/facturapy-api/internal/domain/money"
	"github.com/facturapy/facturapy-api/internal/domain/repository"
)

// Moneda por defecto de los documentos cuando el request no la indica.
const defaultCurrency = "PYG"

// UseCase motor de facturación de ventas: ciclo de vida de la factura,
// aplicación de pagos y acople 1:1 con el libro de stock.
type UseCase struct {
	txRunner    BillingTxRunner
	ledger      StockLedger
	clientRepo  repository.ClientRepository
	productRepo repository.ProductRepository
	billRepo    repository.BillRepository
	payRepo     repository.PaymentRepository
	rates       money.RateProvider
}

// NewUseCase construye el motor de facturación.
func NewUseCase(
	txRunner BillingTxRunner,
	ledger StockLedger,
	clientRepo repository.ClientRepository,
	productRepo repository.ProductRepository,
	billRepo repository.BillRepository,
	payRepo repository.PaymentRepository,
	rates money.RateProvider,
) *UseCase {
	return &UseCase{
		txRunner:    txRunner,
		ledger:      ledger,
		clientRepo:  clientRepo,
		productRepo: productRepo,
		billRepo:    billRepo,
		payRepo:     payRepo,
		rates:       rates,
	}
}
