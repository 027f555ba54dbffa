package masterdata

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/facturapy/facturapy-api/internal/application/dto"
	"github.com/facturapy/facturapy-api/internal/domain"
	"github.com/facturapy/facturapy-api/internal/domain/entity"
	"github.com/facturapy/facturapy-api/internal/domain/repository"
)

// VendorUseCase CRUD de proveedores. Espejo del de clientes.
type VendorUseCase struct {
	vendorRepo repository.VendorRepository
}

// NewVendorUseCase construye el caso de uso de proveedores.
func NewVendorUseCase(vendorRepo repository.VendorRepository) *VendorUseCase {
	return &VendorUseCase{vendorRepo: vendorRepo}
}

// CreateVendor crea un proveedor; el email es único.
func (uc *VendorUseCase) CreateVendor(ctx context.Context, userID string, in dto.CreateVendorRequest) (*dto.VendorResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, domain.ErrInvalidInput
	}
	if existing, _ := uc.vendorRepo.GetByEmail(in.Email); existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	now := time.Now()
	vendor := &entity.Vendor{
		ID:           uuid.New().String(),
		UserID:       userID,
		Name:         in.Name,
		Email:        in.Email,
		TaxID:        in.TaxID,
		PaymentTerms: in.PaymentTerms,
		Notes:        in.Notes,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.vendorRepo.Create(vendor); err != nil {
		return nil, err
	}
	return toVendorResponse(vendor), nil
}

// GetVendor devuelve un proveedor del usuario.
func (uc *VendorUseCase) GetVendor(ctx context.Context, userID, vendorID string) (*dto.VendorResponse, error) {
	vendor, err := uc.vendorRepo.GetByID(vendorID)
	if err != nil || vendor == nil {
		return nil, domain.ErrNotFound
	}
	if vendor.UserID != userID {
		return nil, domain.ErrForbidden
	}
	return toVendorResponse(vendor), nil
}

// ListVendors lista los proveedores del usuario.
func (uc *VendorUseCase) ListVendors(ctx context.Context, userID string, page dto.PageRequest) ([]dto.VendorResponse, error) {
	page.DefaultPage()
	vendors, err := uc.vendorRepo.List(userID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.VendorResponse, 0, len(vendors))
	for _, v := range vendors {
		out = append(out, *toVendorResponse(v))
	}
	return out, nil
}

// UpdateVendor actualiza datos del proveedor.
func (uc *VendorUseCase) UpdateVendor(ctx context.Context, userID, vendorID string, in dto.UpdateVendorRequest) (*dto.VendorResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, domain.ErrInvalidInput
	}
	vendor, err := uc.vendorRepo.GetByID(vendorID)
	if err != nil || vendor == nil {
		return nil, domain.ErrNotFound
	}
	if vendor.UserID != userID {
		return nil, domain.ErrForbidden
	}

	if in.Email != nil && *in.Email != vendor.Email {
		if existing, _ := uc.vendorRepo.GetByEmail(*in.Email); existing != nil {
			return nil, domain.ErrEmailAlreadyExists
		}
		vendor.Email = *in.Email
	}
	if in.Name != nil {
		vendor.Name = *in.Name
	}
	if in.TaxID != nil {
		vendor.TaxID = *in.TaxID
	}
	if in.PaymentTerms != nil {
		vendor.PaymentTerms = *in.PaymentTerms
	}
	if in.Notes != nil {
		vendor.Notes = *in.Notes
	}
	vendor.UpdatedAt = time.Now()

	if err := uc.vendorRepo.Update(vendor); err != nil {
		return nil, err
	}
	return toVendorResponse(vendor), nil
}

// DeleteVendor elimina un proveedor. Si tiene facturas de compra, la FK
// en la base rechaza la operación.
func (uc *VendorUseCase) DeleteVendor(ctx context.Context, userID, vendorID string) error {
	vendor, err := uc.vendorRepo.GetByID(vendorID)
	if err != nil || vendor == nil {
		return domain.ErrNotFound
	}
	if vendor.UserID != userID {
		return domain.ErrForbidden
	}
	return uc.vendorRepo.Delete(vendorID)
}

func toVendorResponse(v *entity.Vendor) *dto.VendorResponse {
	return &dto.VendorResponse{
		ID:           v.ID,
		Name:         v.Name,
		Email:        v.Email,
		TaxID:        v.TaxID,
		PaymentTerms: v.PaymentTerms,
		Notes:        v.Notes,
		CreatedAt:    v.CreatedAt.Format(time.RFC3339),
	}
}
