package repository

import "github.com/facturapy/facturapy-api/internal/domain/entity"

// PaymentRepository define el puerto de persistencia para pagos.
// Los pagos son inmutables: no hay Update ni Delete.
type PaymentRepository interface {
	Create(payment *entity.Payment) error
	ListByTarget(target entity.PaymentTarget) ([]*entity.Payment, error)
	ExistsForTarget(target entity.PaymentTarget) (bool, error)
}
