package rates

import (
	"context"

	"github.com/shopspring/decimal"
)

// Source es la fuente remota de cotizaciones: fetch(base) → mapa
// código → "unidades de código por 1 base". La implementación de
// producción consulta un endpoint HTTP JSON; debe señalar con error toda
// respuesta no-2xx o dato ausente/malformado para que la capa de caché
// degrade a las tasas de respaldo.
type Source interface {
	Fetch(ctx context.Context, base string) (map[string]decimal.Decimal, error)
}
