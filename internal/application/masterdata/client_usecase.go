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

// ClientUseCase CRUD de clientes.
type ClientUseCase struct {
	clientRepo repository.ClientRepository
}

// NewClientUseCase construye el caso de uso de clientes.
func NewClientUseCase(clientRepo repository.ClientRepository) *ClientUseCase {
	return &ClientUseCase{clientRepo: clientRepo}
}

// CreateClient crea un cliente; el email es único.
func (uc *ClientUseCase) CreateClient(ctx context.Context, userID string, in dto.CreateClientRequest) (*dto.ClientResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, domain.ErrInvalidInput
	}
	if existing, _ := uc.clientRepo.GetByEmail(in.Email); existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	now := time.Now()
	client := &entity.Client{
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
	if err := uc.clientRepo.Create(client); err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// GetClient devuelve un cliente del usuario.
func (uc *ClientUseCase) GetClient(ctx context.Context, userID, clientID string) (*dto.ClientResponse, error) {
	client, err := uc.clientRepo.GetByID(clientID)
	if err != nil || client == nil {
		return nil, domain.ErrNotFound
	}
	if client.UserID != userID {
		return nil, domain.ErrForbidden
	}
	return toClientResponse(client), nil
}

// ListClients lista los clientes del usuario.
func (uc *ClientUseCase) ListClients(ctx context.Context, userID string, page dto.PageRequest) ([]dto.ClientResponse, error) {
	page.DefaultPage()
	clients, err := uc.clientRepo.List(userID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ClientResponse, 0, len(clients))
	for _, c := range clients {
		out = append(out, *toClientResponse(c))
	}
	return out, nil
}

// UpdateClient actualiza datos del cliente.
func (uc *ClientUseCase) UpdateClient(ctx context.Context, userID, clientID string, in dto.UpdateClientRequest) (*dto.ClientResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, domain.ErrInvalidInput
	}
	client, err := uc.clientRepo.GetByID(clientID)
	if err != nil || client == nil {
		return nil, domain.ErrNotFound
	}
	if client.UserID != userID {
		return nil, domain.ErrForbidden
	}

	if in.Email != nil && *in.Email != client.Email {
		if existing, _ := uc.clientRepo.GetByEmail(*in.Email); existing != nil {
			return nil, domain.ErrEmailAlreadyExists
		}
		client.Email = *in.Email
	}
	if in.Name != nil {
		client.Name = *in.Name
	}
	if in.TaxID != nil {
		client.TaxID = *in.TaxID
	}
	if in.PaymentTerms != nil {
		client.PaymentTerms = *in.PaymentTerms
	}
	if in.Notes != nil {
		client.Notes = *in.Notes
	}
	client.UpdatedAt = time.Now()

	if err := uc.clientRepo.Update(client); err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// DeleteClient elimina un cliente. Si tiene facturas, la FK en la base
// rechaza la operación.
func (uc *ClientUseCase) DeleteClient(ctx context.Context, userID, clientID string) error {
	client, err := uc.clientRepo.GetByID(clientID)
	if err != nil || client == nil {
		return domain.ErrNotFound
	}
	if client.UserID != userID {
		return domain.ErrForbidden
	}
	return uc.clientRepo.Delete(clientID)
}

func toClientResponse(c *entity.Client) *dto.ClientResponse {
	return &dto.ClientResponse{
		ID:           c.ID,
		Name:         c.Name,
		Email:        c.Email,
		TaxID:        c.TaxID,
		PaymentTerms: c.PaymentTerms,
		Notes:        c.Notes,
		CreatedAt:    c.CreatedAt.Format(time.RFC3339),
	}
}
