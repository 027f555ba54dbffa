package repository

import "github.com/facturapy/facturapy-api/internal/domain/entity"

// VendorRepository define el puerto de persistencia para proveedores.
type VendorRepository interface {
	Create(vendor *entity.Vendor) error
	GetByID(id string) (*entity.Vendor, error)
	GetByEmail(email string) (*entity.Vendor, error)
	List(userID string, limit, offset int) ([]*entity.Vendor, error)
	Update(vendor *entity.Vendor) error
	Delete(id string) error
}
