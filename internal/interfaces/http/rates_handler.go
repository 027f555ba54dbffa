package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/facturapy/facturapy-api/internal/application/dto"
	"github.com/facturapy/facturapy-api/internal/application/rates"
	"github.com/facturapy/facturapy-api/internal/domain/money"
)

// RatesHandler expone la cotización vigente (protegido).
type RatesHandler struct {
	svc *rates.Service
}

// NewRatesHandler construye el handler.
func NewRatesHandler(svc *rates.Service) *RatesHandler {
	return &RatesHandler{svc: svc}
}

// Get devuelve la tasa "1 from = rate to". to por defecto es PYG.
// GET /api/rates?from=USD&to=PYG
func (h *RatesHandler) Get(c *fiber.Ctx) error {
	from, err := money.NormalizeCurrency(c.Query("from"))
	if err != nil {
		return respondError(c, err)
	}
	to, err := money.NormalizeCurrency(c.Query("to", "PYG"))
	if err != nil {
		return respondError(c, err)
	}
	rate, degraded := h.svc.Rate(c.Context(), from, to)
	return c.JSON(dto.RateResponse{From: from, To: to, Rate: rate, Degraded: degraded})
}
