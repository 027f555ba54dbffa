package purchasing

import (
	"context"

	"github.com/facturapy/facturapy-api/internal/application/dto"
	"github.com/facturapy/facturapy-api/internal/domain"
	"github.com/facturapy/facturapy-api/internal/domain/entity"
	"github.com/facturapy/facturapy-api/internal/domain/repository"
)

// GetPurchaseInvoice devuelve una factura de compra con líneas, pagos y
// nombre del proveedor.
func (uc *UseCase) GetPurchaseInvoice(ctx context.Context, userID, invoiceID string) (*dto.PurchaseInvoiceResponse, error) {
	invoice, err := uc.invRepo.GetByID(invoiceID)
	if err != nil || invoice == nil {
		return nil, domain.ErrNotFound
	}
	if invoice.UserID != userID {
		return nil, domain.ErrForbidden
	}

	items, err := uc.invRepo.GetItemsByInvoiceID(invoiceID)
	if err != nil {
		return nil, err
	}
	payments, err := uc.payRepo.ListByTarget(entity.PurchaseInvoiceTarget(invoiceID))
	if err != nil {
		return nil, err
	}

	vendorName := ""
	if vendor, err := uc.vendorRepo.GetByID(invoice.VendorID); err == nil && vendor != nil {
		vendorName = vendor.Name
	}

	return uc.toInvoiceResponse(invoice, vendorName, items, payments, false), nil
}

// ListPurchaseInvoices lista con filtros opcionales de proveedor, estado
// y rango de fechas.
func (uc *UseCase) ListPurchaseInvoices(ctx context.Context, userID string, f repository.PurchaseInvoiceFilter) ([]*dto.PurchaseInvoiceResponse, error) {
	if f.Limit <= 0 || f.Limit > 200 {
		f.Limit = 50
	}
	invoices, err := uc.invRepo.List(userID, f)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.PurchaseInvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		out = append(out, uc.toInvoiceResponse(inv, "", nil, nil, false))
	}
	return out, nil
}
