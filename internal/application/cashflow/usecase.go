package cashflow

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/facturapy/facturapy-api/internal/application/dto"
	"github.com/facturapy/facturapy-api/internal/domain"
	"github.com/facturapy/facturapy-api/internal/domain/entity"
	"github.com/facturapy/facturapy-api/internal/domain/money"
	"github.com/facturapy/facturapy-api/internal/domain/repository"
)

// Origen de los asientos creados a mano, sin documento padre.
const sourceManual = "manual"

// UseCase libro de caja: asientos manuales y consultas. Los asientos
// automáticos (pagos de ventas y compras) los escriben los motores de
// facturación y compras dentro de sus propias transacciones; aquí solo
// se crean los manuales y se lee el conjunto.
type UseCase struct {
	txnRepo repository.TransactionRepository
}

// NewUseCase construye el caso de uso del libro de caja.
func NewUseCase(txnRepo repository.TransactionRepository) *UseCase {
	return &UseCase{txnRepo: txnRepo}
}

// CreateTransaction registra un asiento manual (INCOME, EXPENSE o TRANSFER).
func (uc *UseCase) CreateTransaction(ctx context.Context, userID string, in dto.CreateTransactionRequest) (*dto.TransactionResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, domain.ErrInvalidInput
	}
	if !in.Amount.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	currency, err := money.NormalizeCurrency(in.Currency)
	if err != nil {
		return nil, err
	}
	date, err := time.Parse("2006-01-02", in.Date)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	status := in.Status
	if status == "" {
		status = entity.TransactionStatusConfirmed
	}

	now := time.Now()
	txn := &entity.Transaction{
		ID:           uuid.New().String(),
		UserID:       userID,
		Type:         in.Type,
		SourceModule: sourceManual,
		Amount:       money.Round2(in.Amount),
		Currency:     currency,
		ExchangeRate: in.ExchangeRate,
		Date:         date,
		Description:  in.Description,
		Status:       status,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.txnRepo.Create(txn); err != nil {
		return nil, err
	}
	return toTransactionResponse(txn), nil
}

// ListTransactions lista los asientos del usuario con filtros de tipo y
// rango de fechas.
func (uc *UseCase) ListTransactions(ctx context.Context, userID string, in dto.ListTransactionsRequest) ([]dto.TransactionResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, domain.ErrInvalidInput
	}
	in.DefaultPage()

	f := repository.TransactionFilter{Limit: in.Limit, Offset: in.Offset}
	if in.Type != "" && in.Type != "ALL" {
		f.Type = in.Type
	}
	if in.Start != "" {
		d, err := time.Parse("2006-01-02", in.Start)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		f.From = &d
	}
	if in.End != "" {
		d, err := time.Parse("2006-01-02", in.End)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		// Fin de día inclusivo.
		end := d.Add(24*time.Hour - time.Nanosecond)
		f.To = &end
	}

	txns, err := uc.txnRepo.List(userID, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TransactionResponse, 0, len(txns))
	for _, t := range txns {
		out = append(out, *toTransactionResponse(t))
	}
	return out, nil
}

// Summary devuelve ingresos, egresos y neto del período [from, to].
func (uc *UseCase) Summary(ctx context.Context, userID string, from, to time.Time) (*dto.TransactionSummaryResponse, error) {
	sum, err := uc.txnRepo.Summary(userID, from, to)
	if err != nil {
		return nil, err
	}
	return &dto.TransactionSummaryResponse{
		IncomeTotal:  sum.IncomeTotal,
		ExpenseTotal: sum.ExpenseTotal,
		NetCash:      sum.IncomeTotal.Sub(sum.ExpenseTotal),
	}, nil
}

func toTransactionResponse(t *entity.Transaction) *dto.TransactionResponse {
	resp := &dto.TransactionResponse{
		ID:           t.ID,
		Type:         t.Type,
		SourceID:     t.SourceID,
		Amount:       t.Amount,
		Currency:     t.Currency,
		ExchangeRate: t.ExchangeRate,
		Date:         t.Date.Format("2006-01-02"),
		Description:  t.Description,
		Status:       t.Status,
	}
	if t.SourceModule != sourceManual {
		resp.SourceModule = t.SourceModule
	}
	return resp
}
