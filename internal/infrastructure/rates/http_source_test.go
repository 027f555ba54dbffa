package rates_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	infrarates "github.com/facturapy/facturapy-api/internal/infrastructure/rates"
)

func TestHTTPSource_ParseaCotizaciones(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "PYG", r.URL.Query().Get("base"), "debe pedir la base por query")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"base":"PYG","rates":{"USD":"0.000137931","EUR":"0.000125786"}}`))
	}))
	defer srv.Close()

	src := infrarates.NewHTTPSource(srv.URL, srv.Client())
	quotes, err := src.Fetch(context.Background(), "PYG")
	require.NoError(t, err)

	require.Len(t, quotes, 2)
	assert.True(t, quotes["USD"].Equal(decimal.RequireFromString("0.000137931")))
	assert.True(t, quotes["EUR"].Equal(decimal.RequireFromString("0.000125786")))
}

func TestHTTPSource_No2xxEsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	src := infrarates.NewHTTPSource(srv.URL, srv.Client())
	_, err := src.Fetch(context.Background(), "PYG")
	assert.Error(t, err, "una respuesta 502 debe reportarse como error")
}

func TestHTTPSource_PayloadMalformadoEsError(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"json roto", `{"base":"PYG","rates":{`},
		{"sin cotizaciones", `{"base":"PYG","rates":{}}`},
		{"tasa no numérica", `{"base":"PYG","rates":{"USD":"siete mil"}}`},
		{"tasa negativa", `{"base":"PYG","rates":{"USD":"-5"}}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			src := infrarates.NewHTTPSource(srv.URL, srv.Client())
			_, err := src.Fetch(context.Background(), "PYG")
			assert.Error(t, err)
		})
	}
}
