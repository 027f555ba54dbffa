package dto

import "github.com/shopspring/decimal"

// RateResponse respuesta de GET /api/rates.
type RateResponse struct {
	From     string          `json:"from"`
	To       string          `json:"to"`
	Rate     decimal.Decimal `json:"rate"`
	Degraded bool            `json:"degraded"` // true si la tasa es de respaldo
}
