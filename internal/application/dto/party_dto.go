package dto

// CreateClientRequest body para POST /api/clients.
type CreateClientRequest struct {
	Name         string `json:"name" validate:"required,max=100"`
	Email        string `json:"email" validate:"required,email"`
	TaxID        string `json:"tax_id" validate:"omitempty,max=50"`
	PaymentTerms string `json:"payment_terms" validate:"omitempty,max=50"`
	Notes        string `json:"notes" validate:"omitempty,max=500"`
}

// UpdateClientRequest body para PATCH /api/clients/:id.
type UpdateClientRequest struct {
	Name         *string `json:"name" validate:"omitempty,max=100"`
	Email        *string `json:"email" validate:"omitempty,email"`
	TaxID        *string `json:"tax_id" validate:"omitempty,max=50"`
	PaymentTerms *string `json:"payment_terms" validate:"omitempty,max=50"`
	Notes        *string `json:"notes" validate:"omitempty,max=500"`
}

// ClientResponse cliente en respuestas.
type ClientResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	TaxID        string `json:"tax_id,omitempty"`
	PaymentTerms string `json:"payment_terms,omitempty"`
	Notes        string `json:"notes,omitempty"`
	CreatedAt    string `json:"created_at"`
}

// CreateVendorRequest body para POST /api/vendors.
type CreateVendorRequest struct {
	Name         string `json:"name" validate:"required,max=100"`
	Email        string `json:"email" validate:"required,email"`
	TaxID        string `json:"tax_id" validate:"omitempty,max=50"`
	PaymentTerms string `json:"payment_terms" validate:"omitempty,max=50"`
	Notes        string `json:"notes" validate:"omitempty,max=500"`
}

// UpdateVendorRequest body para PATCH /api/vendors/:id.
type UpdateVendorRequest struct {
	Name         *string `json:"name" validate:"omitempty,max=100"`
	Email        *string `json:"email" validate:"omitempty,email"`
	TaxID        *string `json:"tax_id" validate:"omitempty,max=50"`
	PaymentTerms *string `json:"payment_terms" validate:"omitempty,max=50"`
	Notes        *string `json:"notes" validate:"omitempty,max=500"`
}

// VendorResponse proveedor en respuestas.
type VendorResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	TaxID        string `json:"tax_id,omitempty"`
	PaymentTerms string `json:"payment_terms,omitempty"`
	Notes        string `json:"notes,omitempty"`
	CreatedAt    string `json:"created_at"`
}
