package rates

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Service resuelve tasas de cambio con caché y degradación controlada.
// Orden de resolución: misma moneda → caché → fuente remota → tabla de
// respaldo. Nunca retorna error: una falla de la fuente jamás aborta una
// venta. Implementa money.RateProvider.
//
// Las tasas se resuelven siempre antes de abrir la transacción de BD del
// caller; este servicio puede bloquear en I/O de red pero nunca dentro de
// una transacción.
type Service struct {
	source Source
	cache  *Cache
	log    zerolog.Logger
}

// NewService construye el servicio con la fuente y la caché inyectadas.
func NewService(source Source, cache *Cache, log zerolog.Logger) *Service {
	return &Service{source: source, cache: cache, log: log}
}

// Rate devuelve la tasa "1 from = rate to". degraded es true cuando la
// tasa salió de la tabla de respaldo (o de la neutra 1) y no de la fuente
// en vivo ni de la caché.
func (s *Service) Rate(ctx context.Context, from, to string) (decimal.Decimal, bool) {
	if from == to {
		return decimal.NewFromInt(1), false
	}
	if rate, ok := s.cache.Get(from, to); ok {
		return rate, false
	}

	quotes, err := s.source.Fetch(ctx, from)
	if err == nil {
		if rate, ok := quotes[to]; ok && rate.GreaterThan(decimal.Zero) {
			s.cache.Put(from, to, rate)
			return rate, false
		}
		err = errMissingQuote
	}

	s.log.Warn().Err(err).Str("from", from).Str("to", to).
		Msg("fuente de tasas no disponible, usando tasa de respaldo")
	return fallbackRate(from, to), true
}

var errMissingQuote = errors.New("cotización ausente en la respuesta de la fuente")
