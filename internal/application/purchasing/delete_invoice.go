package purchasing

import (
	"context"
	"fmt"
	"time"

	"github.com/facturapy/facturapy-api/internal/domain"
	"github.com/facturapy/facturapy-api/internal/domain/entity"
	"github.com/facturapy/facturapy-api/internal/domain/repository"
)

// DeletePurchaseInvoice elimina una factura de compra sin pagos y retira
// el stock que había ingresado, con movimientos "adjustment" de delta
// negativo. El retiro puede dejar el stock por debajo de lo ingresado si
// hubo ventas intermedias; eso es un estado legítimo que el ajuste refleja,
// no un error.
func (uc *UseCase) DeletePurchaseInvoice(ctx context.Context, userID, invoiceID string) error {
	invoice, err := uc.invRepo.GetByID(invoiceID)
	if err != nil || invoice == nil {
		return domain.ErrNotFound
	}
	if invoice.UserID != userID {
		return domain.ErrForbidden
	}

	hasPayments, err := uc.payRepo.ExistsForTarget(entity.PurchaseInvoiceTarget(invoiceID))
	if err != nil {
		return err
	}
	if hasPayments {
		return domain.ErrHasPayments
	}

	now := time.Now()
	return uc.txRunner.RunPurchasing(ctx, func(
		invRepo repository.PurchaseInvoiceRepository,
		payRepo repository.PaymentRepository,
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		txnRepo repository.TransactionRepository,
	) error {
		hasPayments, err := payRepo.ExistsForTarget(entity.PurchaseInvoiceTarget(invoiceID))
		if err != nil {
			return err
		}
		if hasPayments {
			return domain.ErrHasPayments
		}

		items, err := invRepo.GetItemsByInvoiceID(invoiceID)
		if err != nil {
			return err
		}
		for _, it := range items {
			if it.ProductID == "" {
				continue
			}
			if err := uc.ledger.PostMovementInTx(
				movRepo, productRepo,
				it.ProductID, it.Quantity.Neg(),
				entity.MovementTypeAdjustment, entity.SourceTypePurchaseInvoiceDeletion, invoiceID,
				fmt.Sprintf("Eliminación de compra %s", invoice.InvoiceNumber),
				userID, now,
			); err != nil {
				return err
			}
		}

		if err := invRepo.DeleteItems(invoiceID); err != nil {
			return err
		}
		return invRepo.Delete(invoiceID)
	})
}
