package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/facturapy/facturapy-api/internal/application/cashflow"
	"github.com/facturapy/facturapy-api/internal/application/dto"
)

// TransactionHandler maneja las peticiones HTTP de flujo de caja (protegido).
type TransactionHandler struct {
	uc *cashflow.UseCase
}

// NewTransactionHandler construye el handler.
func NewTransactionHandler(uc *cashflow.UseCase) *TransactionHandler {
	return &TransactionHandler{uc: uc}
}

// Create registra un asiento manual de ingreso o egreso.
// POST /api/transactions
func (h *TransactionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreateTransaction(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List lista asientos con filtros de tipo y rango de fechas.
// GET /api/transactions?start=&end=&type=&limit=&offset=
func (h *TransactionHandler) List(c *fiber.Ctx) error {
	var in dto.ListTransactionsRequest
	if err := c.QueryParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.ListTransactions(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Summary devuelve ingresos, egresos y neto del período. Sin parámetros
// cubre el mes calendario en curso.
// GET /api/transactions/summary?start=&end=
func (h *TransactionHandler) Summary(c *fiber.Ctx) error {
	now := time.Now().UTC()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	to := now

	var ok bool
	if p, valid := parseDateQuery(c, "start"); !valid {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "start debe ser YYYY-MM-DD"})
	} else if p != nil {
		from = *p
	}
	var p *time.Time
	if p, ok = parseDateQuery(c, "end"); !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "end debe ser YYYY-MM-DD"})
	} else if p != nil {
		// fin de día para que el rango sea inclusivo
		to = p.Add(24*time.Hour - time.Nanosecond)
	}

	out, err := h.uc.Summary(c.Context(), GetUserID(c), from, to)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
