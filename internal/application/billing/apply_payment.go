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

// ApplyPayment aplica un pago (total o parcial) a una factura de venta.
// Si la moneda del pago difiere de la de la factura, el monto se convierte
// ANTES de abrir la transacción (la resolución de tasas puede bloquear en
// red y no debe sostener una tx abierta). Dentro de una sola transacción:
// paid_amount, estado derivado, registro de pago inmutable y asiento
// INCOME en el libro de caja. Rechaza sin mutar si el monto convertido
// excede el saldo pendiente.
func (uc *UseCase) ApplyPayment(ctx context.Context, userID, billID string, in dto.ApplyPaymentRequest) (*dto.BillResponse, error) {
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

	bill, err := uc.billRepo.GetByID(billID)
	if err != nil || bill == nil {
		return nil, domain.ErrNotFound
	}
	if bill.UserID != userID {
		return nil, domain.ErrForbidden
	}

	// Conversión best-effort, resuelta antes de la transacción.
	converted, degraded := money.Convert(ctx, in.Amount, payCurrency, bill.Currency, uc.rates)
	converted = money.Round2(converted)
	if !converted.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	var originalAmount *decimal.Decimal
	originalCurrency := ""
	if payCurrency != bill.Currency {
		amt := in.Amount
		originalAmount = &amt
		originalCurrency = payCurrency
	}

	now := time.Now()
	err = uc.txRunner.RunBilling(ctx, func(
		billRepo repository.BillRepository,
		payRepo repository.PaymentRepository,
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		txnRepo repository.TransactionRepository,
	) error {
		// Releer con la fila bloqueada: pagos concurrentes no deben leer
		// el mismo paid_amount.
		locked, err := billRepo.GetForUpdate(billID)
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
		locked.Status = entity.BillStatusFor(locked.PaidAmount, locked.TotalAmount)
		locked.UpdatedAt = now
		if locked.Status == entity.BillStatusPaid && locked.PaidDate == nil {
			paidAt := now
			locked.PaidDate = &paidAt
		}
		if err := billRepo.UpdatePayment(locked); err != nil {
			return err
		}

		payment := &entity.Payment{
			ID:               uuid.New().String(),
			Target:           entity.BillTarget(billID),
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

		// Asiento INCOME en el libro de caja, misma transacción.
		txn := &entity.Transaction{
			ID:           uuid.New().String(),
			UserID:       userID,
			Type:         entity.TransactionTypeIncome,
			SourceModule: entity.SourceTypeBill,
			SourceID:     billID,
			Amount:       converted,
			Currency:     locked.Currency,
			Date:         now,
			Description:  fmt.Sprintf("Pago de factura %s", locked.Number),
			Status:       entity.TransactionStatusConfirmed,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := txnRepo.Create(txn); err != nil {
			return err
		}

		bill = locked
		return nil
	})
	if err != nil {
		return nil, err
	}

	return uc.toBillResponse(bill, "", nil, nil, degraded), nil
}
