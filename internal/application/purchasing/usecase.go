package purchasing

import (
	"github.com/facturapy/facturapy-api/internal/application/dto"
	"github.com/facturapy/facturapy-api/internal/domain/entity"
	"github.com/facturapy/facturapy-api/internal/domain/money"
	"github.com/facturapy/facturapy-api/internal/domain/repository"
)

// Moneda por defecto de los documentos cuando el request no la indica.
const defaultCurrency = "PYG"

// UseCase motor de compras: ciclo de vida de la factura de compra,
// ingreso de stock por línea de producto y pagos con asiento EXPENSE.
type UseCase struct {
	txRunner    PurchasingTxRunner
	ledger      StockLedger
	vendorRepo  repository.VendorRepository
	productRepo repository.ProductRepository
	invRepo     repository.PurchaseInvoiceRepository
	payRepo     repository.PaymentRepository
	rates       money.RateProvider
}

// NewUseCase construye el motor de compras.
func NewUseCase(
	txRunner PurchasingTxRunner,
	ledger StockLedger,
	vendorRepo repository.VendorRepository,
	productRepo repository.ProductRepository,
	invRepo repository.PurchaseInvoiceRepository,
	payRepo repository.PaymentRepository,
	rates money.RateProvider,
) *UseCase {
	return &UseCase{
		txRunner:    txRunner,
		ledger:      ledger,
		vendorRepo:  vendorRepo,
		productRepo: productRepo,
		invRepo:     invRepo,
		payRepo:     payRepo,
		rates:       rates,
	}
}

func (uc *UseCase) toInvoiceResponse(inv *entity.PurchaseInvoice, vendorName string, items []*entity.PurchaseInvoiceItem, payments []*entity.Payment, degraded bool) *dto.PurchaseInvoiceResponse {
	resp := &dto.PurchaseInvoiceResponse{
		ID:            inv.ID,
		VendorID:      inv.VendorID,
		VendorName:    vendorName,
		InvoiceNumber: inv.InvoiceNumber,
		Currency:      inv.Currency,
		Status:        inv.Status,
		Total:         inv.Total,
		PaidAmount:    inv.PaidAmount,
		BalanceDue:    inv.BalanceDue(),
		Date:          inv.Date.Format("2006-01-02"),
		Notes:         inv.Notes,
		AttachedFile:  inv.AttachedFile,
		RateDegraded:  degraded,
	}
	if inv.DueDate != nil {
		resp.DueDate = inv.DueDate.Format("2006-01-02")
	}
	for _, it := range items {
		resp.Items = append(resp.Items, dto.PurchaseItemResponse{
			ID:          it.ID,
			ProductID:   it.ProductID,
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			TaxRate:     it.TaxRate,
			Total:       it.Total,
		})
	}
	for _, p := range payments {
		resp.Payments = append(resp.Payments, dto.PaymentResponse{
			ID:               p.ID,
			Amount:           p.Amount,
			Currency:         p.Currency,
			OriginalAmount:   p.OriginalAmount,
			OriginalCurrency: p.OriginalCurrency,
			PaymentDate:      p.PaymentDate.Format("2006-01-02"),
			Method:           p.Method,
			Notes:            p.Notes,
		})
	}
	return resp
}
