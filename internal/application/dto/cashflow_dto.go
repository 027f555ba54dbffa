package dto

import "github.com/shopspring/decimal"

// CreateTransactionRequest body para POST /api/transactions (asiento manual).
type CreateTransactionRequest struct {
	Type         string           `json:"type" validate:"required,oneof=INCOME EXPENSE TRANSFER"`
	Amount       decimal.Decimal  `json:"amount" validate:"required"`
	Currency     string           `json:"currency" validate:"required,len=3"`
	Date         string           `json:"date" validate:"required,datetime=2006-01-02"`
	Description  string           `json:"description" validate:"omitempty,max=500"`
	ExchangeRate *decimal.Decimal `json:"exchange_rate"`
	Status       string           `json:"status" validate:"omitempty,oneof=PENDING CONFIRMED CANCELLED"`
}

// ListTransactionsRequest query de GET /api/transactions.
type ListTransactionsRequest struct {
	Start string `query:"start" validate:"omitempty,datetime=2006-01-02"`
	End   string `query:"end" validate:"omitempty,datetime=2006-01-02"`
	Type  string `query:"type" validate:"omitempty,oneof=INCOME EXPENSE TRANSFER ALL"`
	PageRequest
}

// TransactionResponse asiento en respuestas.
type TransactionResponse struct {
	ID           string           `json:"id"`
	Type         string           `json:"type"`
	SourceModule string           `json:"source_module,omitempty"`
	SourceID     string           `json:"source_id,omitempty"`
	Amount       decimal.Decimal  `json:"amount"`
	Currency     string           `json:"currency"`
	ExchangeRate *decimal.Decimal `json:"exchange_rate,omitempty"`
	Date         string           `json:"date"`
	Description  string           `json:"description,omitempty"`
	Status       string           `json:"status"`
}

// TransactionSummaryResponse totales del período.
type TransactionSummaryResponse struct {
	IncomeTotal  decimal.Decimal `json:"income_total"`
	ExpenseTotal decimal.Decimal `json:"expense_total"`
	NetCash      decimal.Decimal `json:"net_cash"`
}
