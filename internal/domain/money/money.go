// Package money concentra la aritmética monetaria del motor: decimales de
// punto fijo (shopspring/decimal, nunca float64), redondeo a 2 decimales
// solo al persistir o mostrar, y conversión entre monedas vía un proveedor
// de tasas inyectado.
package money

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"

	"github.com/facturapy/facturapy-api/internal/domain"
)

// RateProvider entrega la tasa "1 unidad de from = rate unidades de to".
// Nunca falla: ante indisponibilidad degrada a tasas de respaldo; degraded
// indica que la tasa no vino de la fuente en vivo.
type RateProvider interface {
	Rate(ctx context.Context, from, to string) (rate decimal.Decimal, degraded bool)
}

var oneHundred = decimal.NewFromInt(100)

// Round2 redondea a 2 decimales con half-up. Se aplica únicamente en el
// punto de persistencia o presentación; los cálculos intermedios conservan
// la precisión completa.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Subtotal devuelve cantidad por precio unitario, sin redondear.
func Subtotal(quantity, unitPrice decimal.Decimal) decimal.Decimal {
	return quantity.Mul(unitPrice)
}

// Tax devuelve el impuesto de un subtotal dado el porcentaje (ej. 10 = 10%).
func Tax(subtotal, ratePercent decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(ratePercent).Div(oneHundred)
}

// LineTotal devuelve subtotal + impuesto para una línea.
func LineTotal(quantity, unitPrice, ratePercent decimal.Decimal) decimal.Decimal {
	sub := Subtotal(quantity, unitPrice)
	return sub.Add(Tax(sub, ratePercent))
}

// Convert convierte amount de from a to usando el proveedor. Para from == to
// devuelve amount sin tocar el proveedor. Best-effort: nunca retorna error;
// degraded indica tasa de respaldo.
func Convert(ctx context.Context, amount decimal.Decimal, from, to string, p RateProvider) (decimal.Decimal, bool) {
	if from == to {
		return amount, false
	}
	rate, degraded := p.Rate(ctx, from, to)
	return amount.Mul(rate), degraded
}

// NormalizeCurrency valida y normaliza un código ISO 4217 ("usd" → "USD").
// Retorna domain.ErrUnknownCurrency si el código no es una moneda ISO.
func NormalizeCurrency(code string) (string, error) {
	unit, err := currency.ParseISO(strings.TrimSpace(code))
	if err != nil {
		return "", domain.ErrUnknownCurrency
	}
	return unit.String(), nil
}
