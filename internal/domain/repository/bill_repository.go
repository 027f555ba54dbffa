package repository

import (
	"time"

	"github.com/facturapy/facturapy-api/internal/domain/entity"
)

// BillFilter filtros de listado de facturas de venta.
type BillFilter struct {
	ClientID string
	Status   string
	From     *time.Time
	To       *time.Time
	Limit    int
	Offset   int
}

// BillRepository define el puerto de persistencia para facturas de venta.
type BillRepository interface {
	Create(bill *entity.Bill) error
	CreateItem(item *entity.BillItem) error
	GetByID(id string) (*entity.Bill, error)
	// GetForUpdate bloquea la fila de la factura (SELECT FOR UPDATE) para
	// que pagos concurrentes no lean el mismo paid_amount.
	GetForUpdate(id string) (*entity.Bill, error)
	GetItemsByBillID(billID string) ([]*entity.BillItem, error)
	List(userID string, f BillFilter) ([]*entity.Bill, error)
	// NextNumberSeq devuelve el siguiente consecutivo global serializado
	// contra creadores concurrentes (lock de advisory en la implementación).
	NextNumberSeq() (int64, error)
	// UpdatePayment persiste paid_amount, status y paid_date.
	UpdatePayment(bill *entity.Bill) error
	DeleteItems(billID string) error
	Delete(id string) error
}
