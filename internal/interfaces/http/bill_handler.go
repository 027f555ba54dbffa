package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/facturapy/facturapy-api/internal/application/billing"
	"github.com/facturapy/facturapy-api/internal/application/dto"
	"github.com/facturapy/facturapy-api/internal/domain"
	"github.com/facturapy/facturapy-api/internal/domain/repository"
)

// BillHandler maneja las peticiones HTTP de facturación de venta (protegido).
type BillHandler struct {
	uc    *billing.UseCase
	pdfUC *billing.PDFUseCase
}

// NewBillHandler construye el handler.
func NewBillHandler(uc *billing.UseCase, pdfUC *billing.PDFUseCase) *BillHandler {
	return &BillHandler{uc: uc, pdfUC: pdfUC}
}

// Create crea una factura y descuenta inventario.
// POST /api/bills
func (h *BillHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBillRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	bill, err := h.uc.CreateBill(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(bill)
}

// GetByID obtiene el detalle completo de una factura con líneas y pagos.
// GET /api/bills/:id
func (h *BillHandler) GetByID(c *fiber.Ctx) error {
	bill, err := h.uc.GetBill(c.Context(), GetUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(bill)
}

// List lista facturas con filtros opcionales.
// GET /api/bills?client_id=&status=&from=&to=&limit=&offset=
func (h *BillHandler) List(c *fiber.Ctx) error {
	f := repository.BillFilter{
		ClientID: c.Query("client_id"),
		Status:   c.Query("status"),
		Limit:    c.QueryInt("limit", 0),
		Offset:   c.QueryInt("offset", 0),
	}
	var ok bool
	if f.From, ok = parseDateQuery(c, "from"); !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from debe ser YYYY-MM-DD"})
	}
	if f.To, ok = parseDateQuery(c, "to"); !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to debe ser YYYY-MM-DD"})
	}
	bills, err := h.uc.ListBills(c.Context(), GetUserID(c), f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(bills)
}

// Delete anula una factura sin pagos y revierte el stock.
// DELETE /api/bills/:id
func (h *BillHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.DeleteBill(c.Context(), GetUserID(c), c.Params("id")); err != nil {
		if errors.Is(err, domain.ErrHasPayments) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "HAS_PAYMENTS", Message: "no se puede anular una factura con pagos"})
		}
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ApplyPayment registra un pago sobre la factura.
// POST /api/bills/:id/payments
func (h *BillHandler) ApplyPayment(c *fiber.Ctx) error {
	var in dto.ApplyPaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	bill, err := h.uc.ApplyPayment(c.Context(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(bill)
}

// ListPayments lista los pagos de la factura en orden cronológico.
// GET /api/bills/:id/payments
func (h *BillHandler) ListPayments(c *fiber.Ctx) error {
	payments, err := h.uc.ListBillPayments(c.Context(), GetUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(payments)
}

// DownloadPDF genera y descarga la representación PDF de la factura.
// GET /api/bills/:id/pdf
func (h *BillHandler) DownloadPDF(c *fiber.Ctx) error {
	data, filename, err := h.pdfUC.GenerateBillPDF(c.Context(), GetUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}

// parseDateQuery parsea un query param de fecha YYYY-MM-DD.
// Devuelve (nil, true) si el parámetro está ausente.
func parseDateQuery(c *fiber.Ctx, key string) (*time.Time, bool) {
	raw := c.Query(key)
	if raw == "" {
		return nil, true
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, false
	}
	return &t, true
}
