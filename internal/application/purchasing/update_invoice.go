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

// UpdatePurchaseInvoice modifica cabecera y, si el request trae Items, las
// reemplaza por completo (no hay merge por línea). El reemplazo revierte el
// stock ingresado por las líneas actuales mediante movimientos "adjustment"
// y aplica las nuevas como movimientos "purchase"; el historial del libro
// conserva ambas pasadas. Si lo ya pagado excede el nuevo total la
// operación se rechaza: un pago nunca se reduce.
func (uc *UseCase) UpdatePurchaseInvoice(ctx context.Context, userID, invoiceID string, in dto.UpdatePurchaseInvoiceRequest) (*dto.PurchaseInvoiceResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, domain.ErrInvalidInput
	}

	invoice, err := uc.invRepo.GetByID(invoiceID)
	if err != nil || invoice == nil {
		return nil, domain.ErrNotFound
	}
	if invoice.UserID != userID {
		return nil, domain.ErrForbidden
	}

	// Validación de líneas nuevas fuera de la tx.
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
	var items []*entity.PurchaseInvoiceItem

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

		if in.InvoiceNumber != nil {
			locked.InvoiceNumber = *in.InvoiceNumber
		}
		if in.Date != nil {
			d, err := time.Parse("2006-01-02", *in.Date)
			if err != nil {
				return domain.ErrInvalidInput
			}
			locked.Date = d
		}
		if in.DueDate != nil {
			d, err := time.Parse("2006-01-02", *in.DueDate)
			if err != nil {
				return domain.ErrInvalidInput
			}
			locked.DueDate = &d
		}
		if in.Notes != nil {
			locked.Notes = *in.Notes
		}
		if in.AttachedFile != nil {
			locked.AttachedFile = *in.AttachedFile
		}

		if in.Items != nil {
			current, err := invRepo.GetItemsByInvoiceID(invoiceID)
			if err != nil {
				return err
			}
			// Revertir el ingreso de stock de las líneas actuales.
			for _, it := range current {
				if it.ProductID == "" {
					continue
				}
				if err := uc.ledger.PostMovementInTx(
					movRepo, productRepo,
					it.ProductID, it.Quantity.Neg(),
					entity.MovementTypeAdjustment, entity.SourceTypePurchaseInvoice, invoiceID,
					fmt.Sprintf("Reemplazo de líneas de compra %s", locked.InvoiceNumber),
					userID, now,
				); err != nil {
					return err
				}
			}
			if err := invRepo.DeleteItems(invoiceID); err != nil {
				return err
			}

			total := decimal.Zero
			for _, item := range in.Items {
				lineTotal := money.Round2(money.LineTotal(item.Quantity, item.UnitPrice, item.TaxRate))
				total = total.Add(lineTotal)
				newItem := &entity.PurchaseInvoiceItem{
					ID:          uuid.New().String(),
					InvoiceID:   invoiceID,
					ProductID:   item.ProductID,
					Description: item.Description,
					Quantity:    item.Quantity,
					UnitPrice:   item.UnitPrice,
					TaxRate:     item.TaxRate,
					Total:       lineTotal,
				}
				if err := invRepo.CreateItem(newItem); err != nil {
					return err
				}
				items = append(items, newItem)

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

			if locked.PaidAmount.GreaterThan(total) {
				return domain.ErrConflict
			}
			locked.Total = total
			locked.Status = entity.PurchaseStatusFor(locked.PaidAmount, total)
		}

		locked.UpdatedAt = now
		if err := invRepo.Update(locked); err != nil {
			return err
		}
		invoice = locked
		return nil
	})
	if err != nil {
		return nil, err
	}

	if items == nil {
		items, err = uc.invRepo.GetItemsByInvoiceID(invoiceID)
		if err != nil {
			return nil, fmt.Errorf("leer líneas de la compra %s: %w", invoiceID, err)
		}
	}
	return uc.toInvoiceResponse(invoice, "", items, nil, false), nil
}
