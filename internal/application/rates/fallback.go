package rates

import "github.com/shopspring/decimal"

// Tabla estática de últimas cotizaciones conocidas, expresadas en guaraníes
// por unidad de moneda (fuente: pizarra del BCP). Se usa cuando la fuente
// remota no responde; se mantiene a mano.
var fallbackPYG = map[string]decimal.Decimal{
	"PYG": decimal.NewFromInt(1),
	"USD": decimal.NewFromInt(7250),
	"EUR": decimal.NewFromInt(7950),
	"BRL": decimal.NewFromInt(1480),
	"ARS": decimal.RequireFromString("8.20"),
	"GBP": decimal.NewFromInt(9200),
	"CLP": decimal.RequireFromString("7.60"),
	"UYU": decimal.NewFromInt(180),
	"JPY": decimal.RequireFromString("48.50"),
	"CHF": decimal.NewFromInt(8100),
}

// fallbackRate devuelve la tasa de respaldo del par. Si alguna de las dos
// monedas no está en la tabla, devuelve la tasa neutra 1: la conversión es
// best-effort y jamás bloquea una operación de facturación.
func fallbackRate(from, to string) decimal.Decimal {
	fromPYG, okFrom := fallbackPYG[from]
	toPYG, okTo := fallbackPYG[to]
	if !okFrom || !okTo || toPYG.IsZero() {
		return decimal.NewFromInt(1)
	}
	return fromPYG.Div(toPYG)
}
