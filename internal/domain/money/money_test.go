package money_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/facturapy/facturapy-api/internal/domain"
	"github.com/facturapy/facturapy-api/internal/domain/money"
)

// fixedProvider devuelve siempre la misma tasa (para tests de Convert).
type fixedProvider struct {
	rate     decimal.Decimal
	degraded bool
}

func (p fixedProvider) Rate(_ context.Context, _, _ string) (decimal.Decimal, bool) {
	return p.rate, p.degraded
}

func TestRound2_HalfUp(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"0.275", "0.28"},
		{"0.274", "0.27"},
		{"1.005", "1.01"},
		{"33.00", "33"},
		{"0.2758620689", "0.28"},
	}
	for _, c := range cases {
		got := money.Round2(decimal.RequireFromString(c.in))
		assert.True(t, got.Equal(decimal.RequireFromString(c.want)), "Round2(%s) = %s, esperado %s", c.in, got, c.want)
	}
}

func TestLineTotal_ConImpuesto(t *testing.T) {
	// 3 x 10.00 con IVA 10% = 33.00
	qty := decimal.NewFromInt(3)
	price := decimal.RequireFromString("10.00")
	rate := decimal.NewFromInt(10)

	sub := money.Subtotal(qty, price)
	tax := money.Tax(sub, rate)
	total := money.LineTotal(qty, price, rate)

	assert.True(t, sub.Equal(decimal.RequireFromString("30.00")))
	assert.True(t, tax.Equal(decimal.RequireFromString("3.00")))
	assert.True(t, total.Equal(decimal.RequireFromString("33.00")))
}

func TestConvert_IdentidadMismaMoneda(t *testing.T) {
	// convert(a, X, X) == a sin consultar el proveedor
	amount := decimal.RequireFromString("123.456789")
	got, degraded := money.Convert(context.Background(), amount, "USD", "USD", fixedProvider{rate: decimal.NewFromInt(99)})
	assert.True(t, got.Equal(amount))
	assert.False(t, degraded)
}

func TestConvert_AplicaTasa(t *testing.T) {
	// 2000 PYG a USD con 1 USD = 7250 PYG → 2000/7250 ≈ 0.28
	rate := decimal.NewFromInt(1).Div(decimal.NewFromInt(7250))
	got, degraded := money.Convert(context.Background(), decimal.NewFromInt(2000), "PYG", "USD", fixedProvider{rate: rate, degraded: true})
	assert.True(t, degraded)
	assert.True(t, money.Round2(got).Equal(decimal.RequireFromString("0.28")), "obtenido %s", money.Round2(got))
}

func TestNormalizeCurrency(t *testing.T) {
	got, err := money.NormalizeCurrency("usd")
	require.NoError(t, err)
	assert.Equal(t, "USD", got)

	got, err = money.NormalizeCurrency(" pyg ")
	require.NoError(t, err)
	assert.Equal(t, "PYG", got)

	_, err = money.NormalizeCurrency("ZZZ")
	assert.ErrorIs(t, err, domain.ErrUnknownCurrency)

	_, err = money.NormalizeCurrency("")
	assert.ErrorIs(t, err, domain.ErrUnknownCurrency)
}
