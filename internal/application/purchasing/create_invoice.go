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

// CreatePurchaseInvoice registra una factura de compra. Las líneas con
// producto asociado ingresan stock mediante movimientos "purchase" en la
// misma transacción que la factura. Si el request declara la factura como
// pagada (compra de contado), se registra además el asiento EXPENSE en el
// libro de caja.
func (uc *UseCase) CreatePurchaseInvoice(ctx context.Context, userID string, in dto.CreatePurchaseInvoiceRequest) (*dto.PurchaseInvoiceResponse, error) {
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

	date, err := time.Parse("2006-01-02", in.Date)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	var dueDate *time.Time
	if in.DueDate != "" {
		d, err := time.Parse("2006-01-02", in.DueDate)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		dueDate = &d
	}

	vendor, err := uc.vendorRepo.GetByID(in.VendorID)
	if err != nil || vendor == nil {
		return nil, domain.ErrNotFound
	}
	if vendor.UserID != userID {
		return nil, domain.ErrForbidden
	}

	for _, item := range in.Items {
		if !item.Quantity.GreaterThan(decimal.Zero) || item.UnitPrice.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		if item.ProductID == "" {
			continue
		}
		product, err := uc.productRepo.GetByID(item.ProductID)
		if err != nil || product == nil {
			return nil, domain.ErrNotFound
		}
		if product.UserID != userID {
			return nil, domain.ErrForbidden
		}
	}

	now := time.Now()
	invoiceID := uuid.New().String()
	var invoice *entity.PurchaseInvoice
	var items []*entity.PurchaseInvoiceItem

	err = uc.txRunner.RunPurchasing(ctx, func(
		invRepo repository.PurchaseInvoiceRepository,
		payRepo repository.PaymentRepository,
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		txnRepo repository.TransactionRepository,
	) error {
		total := decimal.Zero
		items = items[:0]
		for _, item := range in.Items {
			lineTotal := money.Round2(money.LineTotal(item.Quantity, item.UnitPrice, item.TaxRate))
			total = total.Add(lineTotal)
			items = append(items, &entity.PurchaseInvoiceItem{
				ID:          uuid.New().String(),
				InvoiceID:   invoiceID,
				ProductID:   item.ProductID,
				Description: item.Description,
				Quantity:    item.Quantity,
				UnitPrice:   item.UnitPrice,
				TaxRate:     item.TaxRate,
				Total:       lineTotal,
			})

			if item.ProductID != "" {
				if err := uc.ledger.PostMovementInTx(
					movRepo, productRepo,
					item.ProductID, item.Quantity,
					entity.MovementTypePurchase, entity.SourceTypePurchaseInvoice, invoiceID,
					"", userID, now,
				); err != nil {
					return err
				}
			}
		}

		// Compra de contado: pagada al registrarla.
		paid := decimal.Zero
		if in.Status == entity.PurchaseStatusPaid {
			paid = total
		}

		invoice = &entity.PurchaseInvoice{
			ID:            invoiceID,
			UserID:        userID,
			VendorID:      in.VendorID,
			InvoiceNumber: in.InvoiceNumber,
			Currency:      currency,
			Status:        entity.PurchaseStatusFor(paid, total),
			Total:         total,
			PaidAmount:    paid,
			Date:          date,
			DueDate:       dueDate,
			Notes:         in.Notes,
			AttachedFile:  in.AttachedFile,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := invRepo.Create(invoice); err != nil {
			return err
		}
		for _, it := range items {
			if err := invRepo.CreateItem(it); err != nil {
				return err
			}
		}

		if paid.GreaterThan(decimal.Zero) {
			payment := &entity.Payment{
				ID:          uuid.New().String(),
				Target:      entity.PurchaseInvoiceTarget(invoiceID),
				Amount:      paid,
				Currency:    currency,
				PaymentDate: now,
				CreatedAt:   now,
				CreatedBy:   userID,
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
				Amount:       paid,
				Currency:     currency,
				Date:         now,
				Description:  fmt.Sprintf("Compra %s - %s", in.InvoiceNumber, vendor.Name),
				Status:       entity.TransactionStatusConfirmed,
				CreatedAt:    now,
				UpdatedAt:    now,
			}
			if err := txnRepo.Create(txn); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return uc.toInvoiceResponse(invoice, vendor.Name, items, nil, false), nil
}
