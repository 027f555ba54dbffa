package billing

import (
	"context"

	"github.com/facturapy/facturapy-api/internal/application/dto"
	"github.com/facturapy/facturapy-api/internal/domain"
	"github.com/facturapy/facturapy-api/internal/domain/entity"
	"github.com/facturapy/facturapy-api/internal/domain/repository"
)

// GetBill devuelve una factura con sus líneas, pagos y nombre del cliente.
func (uc *UseCase) GetBill(ctx context.Context, userID, billID string) (*dto.BillResponse, error) {
	bill, err := uc.billRepo.GetByID(billID)
	if err != nil || bill == nil {
		return nil, domain.ErrNotFound
	}
	if bill.UserID != userID {
		return nil, domain.ErrForbidden
	}

	items, err := uc.billRepo.GetItemsByBillID(billID)
	if err != nil {
		return nil, err
	}
	payments, err := uc.payRepo.ListByTarget(entity.BillTarget(billID))
	if err != nil {
		return nil, err
	}

	clientName := ""
	if client, err := uc.clientRepo.GetByID(bill.ClientID); err == nil && client != nil {
		clientName = client.Name
	}

	return uc.toBillResponse(bill, clientName, items, payments, false), nil
}

// ListBills lista las facturas del usuario con filtros opcionales de
// cliente, estado y rango de fecha de emisión.
func (uc *UseCase) ListBills(ctx context.Context, userID string, f repository.BillFilter) ([]*dto.BillResponse, error) {
	if f.Limit <= 0 || f.Limit > 200 {
		f.Limit = 50
	}
	bills, err := uc.billRepo.List(userID, f)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.BillResponse, 0, len(bills))
	for _, b := range bills {
		out = append(out, uc.toBillResponse(b, "", nil, nil, false))
	}
	return out, nil
}

// ListBillPayments devuelve el historial de pagos de una factura.
func (uc *UseCase) ListBillPayments(ctx context.Context, userID, billID string) ([]dto.PaymentResponse, error) {
	bill, err := uc.billRepo.GetByID(billID)
	if err != nil || bill == nil {
		return nil, domain.ErrNotFound
	}
	if bill.UserID != userID {
		return nil, domain.ErrForbidden
	}
	payments, err := uc.payRepo.ListByTarget(entity.BillTarget(billID))
	if err != nil {
		return nil, err
	}
	out := make([]dto.PaymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, dto.PaymentResponse{
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
	return out, nil
}
