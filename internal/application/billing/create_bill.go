package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/facturapy/facturapy-api/internal/application/dto"
	"github.com/facturapy/facturapy-api/internal/domain"
	"github.com/facturapy/facturapy-api/internal/domain/entity"
	"github.com/facturapy/facturapy-api/internal/domain/money"
	"github.com/facturapy/facturapy-api/internal/domain/repository"
)

// CreateBill crea una factura de venta y descuenta el stock en una sola
// transacción: cabecera, líneas y un movimiento "sale" por línea. Si
// cualquier línea falla (producto inexistente, stock insuficiente) toda la
// operación vuelve atrás: no hay factura parcial ni deducción parcial.
func (uc *UseCase) CreateBill(ctx context.Context, userID string, in dto.CreateBillRequest) (*dto.BillResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, domain.ErrInvalidInput
	}

	currency := in.Currency
	if currency == "" {
		currency = defaultCurrency
	}
	currency, err := money.NormalizeCurrency(currency)
	if err != nil {
		return nil, err
	}

	issueDate, err := time.Parse("2006-01-02", in.IssueDate)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	dueDate, err := time.Parse("2006-01-02", in.DueDate)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}

	client, err := uc.clientRepo.GetByID(in.ClientID)
	if err != nil || client == nil {
		return nil, domain.ErrNotFound
	}
	if client.UserID != userID {
		return nil, domain.ErrForbidden
	}

	// Resolver productos y capturar precio/tasa (lectura, fuera de la tx).
	// La verificación de stock definitiva ocurre dentro de la tx con la
	// fila bloqueada; esta pasada solo valida entrada y completa defaults.
	productsByID := make(map[string]*entity.Product, len(in.Items))
	for i := range in.Items {
		item := &in.Items[i]
		if !item.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		if item.Price.LessThan(decimal.Zero) || item.TaxRate.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.productRepo.GetByID(item.ProductID)
		if err != nil || product == nil {
			return nil, domain.ErrNotFound
		}
		if product.UserID != userID {
			return nil, domain.ErrForbidden
		}
		if item.Price.IsZero() {
			item.Price = product.SellPrice
		}
		if item.TaxRate.IsZero() {
			item.TaxRate = product.TaxRate
		}
		productsByID[item.ProductID] = product
	}

	now := time.Now()
	billID := uuid.New().String()
	var bill *entity.Bill
	var items []*entity.BillItem

	err = uc.txRunner.RunBilling(ctx, func(
		billRepo repository.BillRepository,
		payRepo repository.PaymentRepository,
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		txnRepo repository.TransactionRepository,
	) error {
		// 1) Un movimiento "sale" por línea, con la fila del producto
		// bloqueada; stock insuficiente → rollback de toda la factura.
		for _, item := range in.Items {
			if err := uc.ledger.PostMovementInTx(
				movRepo, productRepo,
				item.ProductID, item.Quantity.Neg(),
				entity.MovementTypeSale, entity.SourceTypeBill, billID,
				"", userID, now,
			); err != nil {
				return err
			}
		}

		// 2) Consecutivo global, serializado contra creadores concurrentes.
		seq, err := billRepo.NextNumberSeq()
		if err != nil {
			return err
		}

		// 3) Totales: precisión completa en el cálculo, redondeo solo al
		// persistir cada línea.
		var total decimal.Decimal
		items = items[:0]
		for _, item := range in.Items {
			subtotal := money.Round2(money.Subtotal(item.Quantity, item.Price))
			taxAmount := money.Round2(money.Tax(subtotal, item.TaxRate))
			lineTotal := subtotal.Add(taxAmount)
			total = total.Add(lineTotal)
			items = append(items, &entity.BillItem{
				ID:        uuid.New().String(),
				BillID:    billID,
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				Price:     item.Price,
				TaxRate:   item.TaxRate,
				Subtotal:  subtotal,
				TaxAmount: taxAmount,
				Total:     lineTotal,
			})
		}

		bill = &entity.Bill{
			ID:          billID,
			UserID:      userID,
			ClientID:    in.ClientID,
			Number:      fmt.Sprintf("INV-%d", seq),
			NumberSeq:   seq,
			Currency:    currency,
			Status:      entity.BillStatusUnpaid,
			TotalAmount: total,
			PaidAmount:  decimal.Zero,
			IssueDate:   issueDate,
			DueDate:     dueDate,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := billRepo.Create(bill); err != nil {
			return err
		}
		for _, it := range items {
			if err := billRepo.CreateItem(it); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return uc.toBillResponse(bill, client.Name, items, nil, false), nil
}

func (uc *UseCase) toBillResponse(bill *entity.Bill, clientName string, items []*entity.BillItem, payments []*entity.Payment, degraded bool) *dto.BillResponse {
	resp := &dto.BillResponse{
		ID:           bill.ID,
		ClientID:     bill.ClientID,
		ClientName:   clientName,
		Number:       bill.Number,
		Currency:     bill.Currency,
		Status:       bill.Status,
		TotalAmount:  bill.TotalAmount,
		PaidAmount:   bill.PaidAmount,
		BalanceDue:   bill.BalanceDue(),
		IssueDate:    bill.IssueDate.Format("2006-01-02"),
		DueDate:      bill.DueDate.Format("2006-01-02"),
		RateDegraded: degraded,
	}
	if bill.PaidDate != nil {
		resp.PaidDate = bill.PaidDate.Format("2006-01-02")
	}
	for _, it := range items {
		resp.Items = append(resp.Items, dto.BillItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.Price,
			TaxRate:   it.TaxRate,
			Subtotal:  it.Subtotal,
			TaxAmount: it.TaxAmount,
			Total:     it.Total,
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
