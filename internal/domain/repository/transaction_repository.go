package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/facturapy/facturapy-api/internal/domain/entity"
)

// TransactionFilter filtros de listado del libro de caja.
type TransactionFilter struct {
	Type  string // INCOME, EXPENSE, TRANSFER o vacío para todos
	From  *time.Time
	To    *time.Time
	Limit int
	Offset int
}

// TransactionSummary totales de un período.
type TransactionSummary struct {
	IncomeTotal  decimal.Decimal
	ExpenseTotal decimal.Decimal
}

// TransactionRepository define el puerto del libro de caja. Desde los
// motores de facturación/compras es un sumidero de solo escritura.
type TransactionRepository interface {
	Create(txn *entity.Transaction) error
	List(userID string, f TransactionFilter) ([]*entity.Transaction, error)
	Summary(userID string, from, to time.Time) (*TransactionSummary, error)
}
