package purchasing

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

// ApplyPayment aplica un pago a una factura de compra. Misma disciplina
// que en ventas: conversión de moneda resuelta antes de la transacción,
// rechazo si excede el saldo y, en una sola transacción, paid_amount,
// estado derivado, pago inmutable y asiento EXPENSE en el libro de caja.
func (uc *UseCase) ApplyPayment(ctx context.Context, userID, invoiceID string, in dto.ApplyPaymentRequest) (*dto.PurchaseInvoiceResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, domain.ErrInvalidInput
	}
	if !in.Amount.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	payCurrency, err := money.NormalizeCurrency(in.Currency)
	if err != nil {
		return nil, err
	}

	invoice, err := uc.invRepo.GetByID(invoiceID)
	if err != nil || invoice == nil {
		return nil, domain.ErrNotFound
	}
	if invoice.UserID != userID {
		return nil, domain.ErrForbidden
	}

	converted, degraded := money.Convert(ctx, in.Amount, payCurrency, invoice.Currency, uc.rates)
	converted = money.Round2(converted)
	if !converted.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	var originalAmount *decimal.Decimal
	originalCurrency := ""
	if payCurrency != invoice.Currency {
		amt := in.Amount
		originalAmount = &amt
		originalCurrency = payCurrency
	}

	now := time.Now()
	err = uc.txRunner.RunPurchasing(ctx, func(
		invRepo repository.PurchaseInvoiceRepository,
		payRepo repository.PaymentRepository,
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		txnRepo repository.TransactionRepository,
	) error {
		locked, err := invRepo.GetForUpdate(invoiceID)
		if err != nil {
			return err
		}
		if locked == nil {
			return domain.ErrNotFound
		}
		if converted.GreaterThan(locked.BalanceDue()) {
			return domain.ErrPaymentExceedsBalance
		}

		locked.PaidAmount = locked.PaidAmount.Add(converted)
		locked.Status = entity.PurchaseStatusFor(locked.PaidAmount, locked.Total)
		locked.UpdatedAt = now
		if err := invRepo.UpdatePayment(locked); err != nil {
			return err
		}

		payment := &entity.Payment{
			ID:               uuid.New().String(),
			Target:           entity.PurchaseInvoiceTarget(invoiceID),
			Amount:           converted,
			Currency:         locked.Currency,
			OriginalAmount:   originalAmount,
			OriginalCurrency: originalCurrency,
			PaymentDate:      now,
			Method:           in.Method,
			Notes:            in.Notes,
			CreatedAt:        now,
			CreatedBy:        userID,
		}
		if err := payRepo.Create(payment); err != nil {
			return err
		}

		txn := &entity.Transaction{
			ID:           uuid.New().String(),
			UserID:       userID,
			Type:         entity.TransactionTypeExpense,
			SourceModule: entity.SourceTypePurchaseInvoice,
			SourceID:     invoiceID,
			Amount:       converted,
			Currency:     locked.Currency,
			Date:         now,
			Description:  fmt.Sprintf("Pago de compra %s", locked.InvoiceNumber),
			Status:       entity.TransactionStatusConfirmed,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := txnRepo.Create(txn); err != nil {
			return err
		}

		invoice = locked
		return nil
	})
	if err != nil {
		return nil, err
	}

	return uc.toInvoiceResponse(invoice, "", nil, nil, degraded), nil
}
