// Package rates implementa la fuente remota de cotizaciones sobre HTTP.
package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/shopspring/decimal"

	apprates "github.com/facturapy/facturapy-api/internal/application/rates"
)

// HTTPSource consulta un endpoint JSON de cotizaciones con forma:
//
//	{"base": "PYG", "rates": {"USD": 0.000137931, "EUR": 0.000127, ...}}
//
// Cada valor es "unidades de la moneda destino por 1 unidad de base".
type HTTPSource struct {
	baseURL string
	client  *http.Client
}

var _ apprates.Source = (*HTTPSource)(nil)

// NewHTTPSource construye la fuente. baseURL es el endpoint sin query;
// el parámetro base se agrega como ?base=XXX.
func NewHTTPSource(baseURL string, client *http.Client) *HTTPSource {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPSource{baseURL: baseURL, client: client}
}

type ratesPayload struct {
	Base  string            `json:"base"`
	Rates map[string]string `json:"rates"`
}

// Fetch consulta las cotizaciones para la moneda base. Cualquier
// respuesta no-2xx o payload malformado devuelve error; el llamador
// decide si degradar a las tasas de respaldo.
func (s *HTTPSource) Fetch(ctx context.Context, base string) (map[string]decimal.Decimal, error) {
	u, err := url.Parse(s.baseURL)
	if err != nil {
		return nil, fmt.Errorf("rates: url inválida %q: %w", s.baseURL, err)
	}
	q := u.Query()
	q.Set("base", base)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("rates: construir request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("rates: fetch cotizaciones: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("rates: la fuente respondió %d", resp.StatusCode)
	}

	var payload ratesPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("rates: decodificar respuesta: %w", err)
	}
	if len(payload.Rates) == 0 {
		return nil, fmt.Errorf("rates: respuesta sin cotizaciones para base %s", base)
	}

	result := make(map[string]decimal.Decimal, len(payload.Rates))
	for code, raw := range payload.Rates {
		rate, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("rates: cotización malformada %s=%q: %w", code, raw, err)
		}
		if rate.Sign() <= 0 {
			return nil, fmt.Errorf("rates: cotización no positiva %s=%s", code, rate)
		}
		result[code] = rate
	}
	return result, nil
}
