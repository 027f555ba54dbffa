package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/facturapy/facturapy-api/internal/domain"
	"github.com/facturapy/facturapy-api/internal/domain/entity"
	"github.com/facturapy/facturapy-api/internal/domain/repository"
)

// DeleteBill elimina una factura de venta sin pagos asociados y devuelve
// el stock vendido mediante movimientos de devolución (el libro de stock
// nunca se edita: la corrección es un asiento nuevo con el delta opuesto).
// Una factura con pagos no se borra; anularla exigiría revertir también
// el libro de caja y eso queda fuera del ciclo de vida soportado.
func (uc *UseCase) DeleteBill(ctx context.Context, userID, billID string) error {
	bill, err := uc.billRepo.GetByID(billID)
	if err != nil || bill == nil {
		return domain.ErrNotFound
	}
	if bill.UserID != userID {
		return domain.ErrForbidden
	}

	hasPayments, err := uc.payRepo.ExistsForTarget(entity.BillTarget(billID))
	if err != nil {
		return err
	}
	if hasPayments {
		return domain.ErrHasPayments
	}

	now := time.Now()
	return uc.txRunner.RunBilling(ctx, func(
		billRepo repository.BillRepository,
		payRepo repository.PaymentRepository,
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		txnRepo repository.TransactionRepository,
	) error {
		// Recheck dentro de la tx: un pago pudo entrar entre la lectura
		// y el inicio de la transacción.
		hasPayments, err := payRepo.ExistsForTarget(entity.BillTarget(billID))
		if err != nil {
			return err
		}
		if hasPayments {
			return domain.ErrHasPayments
		}

		if err := uc.ledger.ReverseSourceInTx(
			movRepo, productRepo,
			entity.SourceTypeBill, billID,
			entity.MovementTypeReturn, entity.SourceTypeBill,
			fmt.Sprintf("Anulación de factura %s", bill.Number),
			userID, now,
		); err != nil {
			return err
		}

		if err := billRepo.DeleteItems(billID); err != nil {
			return err
		}
		return billRepo.Delete(billID)
	})
}
