package rates

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSource fuente de tasas controlable en tests.
type fakeSource struct {
	quotes map[string]decimal.Decimal
	err    error
	calls  int
}

func (f *fakeSource) Fetch(_ context.Context, _ string) (map[string]decimal.Decimal, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.quotes, nil
}

func newTestService(src *fakeSource, cache *Cache) *Service {
	return NewService(src, cache, zerolog.Nop())
}

func TestRate_MismaMonedaSinRed(t *testing.T) {
	src := &fakeSource{err: errors.New("no debe llamarse")}
	svc := newTestService(src, NewCache(time.Hour))

	rate, degraded := svc.Rate(context.Background(), "USD", "USD")

	assert.True(t, rate.Equal(decimal.NewFromInt(1)))
	assert.False(t, degraded)
	assert.Zero(t, src.calls, "from == to no debe tocar la fuente ni la caché")
}

func TestRate_FuenteViva_YLuegoCache(t *testing.T) {
	src := &fakeSource{quotes: map[string]decimal.Decimal{"PYG": decimal.NewFromInt(7300)}}
	svc := newTestService(src, NewCache(time.Hour))

	rate, degraded := svc.Rate(context.Background(), "USD", "PYG")
	require.False(t, degraded)
	assert.True(t, rate.Equal(decimal.NewFromInt(7300)))
	assert.Equal(t, 1, src.calls)

	// Segunda consulta: resuelta por caché, sin red.
	rate, degraded = svc.Rate(context.Background(), "USD", "PYG")
	assert.False(t, degraded)
	assert.True(t, rate.Equal(decimal.NewFromInt(7300)))
	assert.Equal(t, 1, src.calls)
}

func TestRate_CacheExpiraTrasTTL(t *testing.T) {
	src := &fakeSource{quotes: map[string]decimal.Decimal{"PYG": decimal.NewFromInt(7300)}}
	cache := NewCache(time.Hour)

	current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return current }

	svc := newTestService(src, cache)
	svc.Rate(context.Background(), "USD", "PYG")
	require.Equal(t, 1, src.calls)

	// Dentro del TTL: caché.
	current = current.Add(59 * time.Minute)
	svc.Rate(context.Background(), "USD", "PYG")
	assert.Equal(t, 1, src.calls)

	// Pasado el TTL: vuelve a la fuente.
	current = current.Add(2 * time.Minute)
	svc.Rate(context.Background(), "USD", "PYG")
	assert.Equal(t, 2, src.calls)
}

func TestRate_FallaRemota_UsaRespaldo(t *testing.T) {
	src := &fakeSource{err: errors.New("timeout")}
	svc := newTestService(src, NewCache(time.Hour))

	rate, degraded := svc.Rate(context.Background(), "USD", "PYG")

	assert.True(t, degraded)
	assert.True(t, rate.Equal(decimal.NewFromInt(7250)), "respaldo: 1 USD = 7250 PYG, obtenido %s", rate)
}

func TestRate_CotizacionAusente_UsaRespaldo(t *testing.T) {
	// La fuente responde pero sin la moneda pedida.
	src := &fakeSource{quotes: map[string]decimal.Decimal{"EUR": decimal.RequireFromString("0.92")}}
	svc := newTestService(src, NewCache(time.Hour))

	rate, degraded := svc.Rate(context.Background(), "PYG", "USD")

	assert.True(t, degraded)
	assert.True(t, rate.Equal(decimal.NewFromInt(1).Div(decimal.NewFromInt(7250))), "obtenido %s", rate)
}

func TestRate_MonedaFueraDeTabla_TasaNeutra(t *testing.T) {
	src := &fakeSource{err: errors.New("down")}
	svc := newTestService(src, NewCache(time.Hour))

	rate, degraded := svc.Rate(context.Background(), "THB", "PYG")

	assert.True(t, degraded)
	assert.True(t, rate.Equal(decimal.NewFromInt(1)), "moneda desconocida degrada a tasa neutra 1")
}
