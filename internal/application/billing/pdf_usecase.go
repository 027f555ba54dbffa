package billing

import (
	"context"

	"github.com/facturapy/facturapy-api/internal/domain"
)

// PDFUseCase genera la representación PDF de una factura. Separado del
// motor transaccional: solo lee.
type PDFUseCase struct {
	billing   *UseCase
	generator BillPDFGenerator
}

// NewPDFUseCase construye el caso de uso de PDF de facturas.
func NewPDFUseCase(billing *UseCase, generator BillPDFGenerator) *PDFUseCase {
	return &PDFUseCase{billing: billing, generator: generator}
}

// GenerateBillPDF arma los datos de la factura y delega el render.
func (uc *PDFUseCase) GenerateBillPDF(ctx context.Context, userID, billID string) ([]byte, string, error) {
	bill, err := uc.billing.billRepo.GetByID(billID)
	if err != nil || bill == nil {
		return nil, "", domain.ErrNotFound
	}
	if bill.UserID != userID {
		return nil, "", domain.ErrForbidden
	}

	items, err := uc.billing.billRepo.GetItemsByBillID(billID)
	if err != nil {
		return nil, "", err
	}
	client, err := uc.billing.clientRepo.GetByID(bill.ClientID)
	if err != nil || client == nil {
		return nil, "", domain.ErrNotFound
	}

	// Enriquecer cada línea con nombre y SKU del producto; si el producto
	// fue borrado después de facturar, la línea sale sin nombre.
	pdfItems := make([]BillItemForPDF, 0, len(items))
	for _, it := range items {
		row := BillItemForPDF{Item: it}
		if p, err := uc.billing.productRepo.GetByID(it.ProductID); err == nil && p != nil {
			row.ProductName = p.Name
			row.ProductSKU = p.SKU
			row.Unit = p.Unit
		}
		pdfItems = append(pdfItems, row)
	}

	data, err := uc.generator.GenerateBillPDF(ctx, bill, client, pdfItems)
	if err != nil {
		return nil, "", err
	}
	return data, bill.Number + ".pdf", nil
}
