package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/facturapy/facturapy-api/internal/application/dto"
	"github.com/facturapy/facturapy-api/internal/application/purchasing"
	"github.com/facturapy/facturapy-api/internal/domain"
	"github.com/facturapy/facturapy-api/internal/domain/repository"
)

// PurchaseHandler maneja las peticiones HTTP de compras (protegido).
type PurchaseHandler struct {
	uc *purchasing.UseCase
}

// NewPurchaseHandler construye el handler.
func NewPurchaseHandler(uc *purchasing.UseCase) *PurchaseHandler {
	return &PurchaseHandler{uc: uc}
}

// Create registra una factura de compra e ingresa stock.
// POST /api/purchase-invoices
func (h *PurchaseHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePurchaseInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	inv, err := h.uc.CreatePurchaseInvoice(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(inv)
}

// GetByID obtiene la factura de compra con líneas y pagos.
// GET /api/purchase-invoices/:id
func (h *PurchaseHandler) GetByID(c *fiber.Ctx) error {
	inv, err := h.uc.GetPurchaseInvoice(c.Context(), GetUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(inv)
}

// List lista facturas de compra con filtros opcionales.
// GET /api/purchase-invoices?vendor_id=&status=&from=&to=&limit=&offset=
func (h *PurchaseHandler) List(c *fiber.Ctx) error {
	f := repository.PurchaseInvoiceFilter{
		VendorID: c.Query("vendor_id"),
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
	invoices, err := h.uc.ListPurchaseInvoices(c.Context(), GetUserID(c), f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(invoices)
}

// Update modifica cabecera y/o reemplaza las líneas de la compra.
// PUT /api/purchase-invoices/:id
func (h *PurchaseHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdatePurchaseInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	inv, err := h.uc.UpdatePurchaseInvoice(c.Context(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "el nuevo total no puede ser menor que lo ya pagado"})
		}
		return respondError(c, err)
	}
	return c.JSON(inv)
}

// Delete elimina una compra sin pagos y revierte el stock ingresado.
// DELETE /api/purchase-invoices/:id
func (h *PurchaseHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.DeletePurchaseInvoice(c.Context(), GetUserID(c), c.Params("id")); err != nil {
		if errors.Is(err, domain.ErrHasPayments) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "HAS_PAYMENTS", Message: "no se puede eliminar una compra con pagos"})
		}
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ApplyPayment registra un pago al proveedor sobre la compra.
// POST /api/purchase-invoices/:id/payments
func (h *PurchaseHandler) ApplyPayment(c *fiber.Ctx) error {
	var in dto.ApplyPaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	inv, err := h.uc.ApplyPayment(c.Context(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(inv)
}
