package repository

import (
	"time"

	"github.com/facturapy/facturapy-api/internal/domain/entity"
)

// PurchaseInvoiceFilter filtros de listado de facturas de compra.
type PurchaseInvoiceFilter struct {
	VendorID string
	Status   string
	From     *time.Time
	To       *time.Time
	Limit    int
	Offset   int
}

// PurchaseInvoiceRepository define el puerto de persistencia para facturas
// de compra y sus líneas.
type PurchaseInvoiceRepository interface {
	Create(invoice *entity.PurchaseInvoice) error
	CreateItem(item *entity.PurchaseInvoiceItem) error
	GetByID(id string) (*entity.PurchaseInvoice, error)
	GetForUpdate(id string) (*entity.PurchaseInvoice, error)
	GetItemsByInvoiceID(invoiceID string) ([]*entity.PurchaseInvoiceItem, error)
	List(userID string, f PurchaseInvoiceFilter) ([]*entity.PurchaseInvoice, error)
	Update(invoice *entity.PurchaseInvoice) error
	// UpdatePayment persiste paid_amount y status.
	UpdatePayment(invoice *entity.PurchaseInvoice) error
	DeleteItems(invoiceID string) error
	Delete(id string) error
}
