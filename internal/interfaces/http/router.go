package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/facturapy/facturapy-api/internal/application/auth"
	"github.com/facturapy/facturapy-api/internal/application/billing"
	"github.com/facturapy/facturapy-api/internal/application/cashflow"
	"github.com/facturapy/facturapy-api/internal/application/inventory"
	"github.com/facturapy/facturapy-api/internal/application/masterdata"
	"github.com/facturapy/facturapy-api/internal/application/purchasing"
	"github.com/facturapy/facturapy-api/internal/application/rates"
	"github.com/facturapy/facturapy-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	ProductUC    *masterdata.ProductUseCase
	ClientUC     *masterdata.ClientUseCase
	VendorUC     *masterdata.VendorUseCase
	InventoryUC  *inventory.UseCase
	BillingUC    *billing.UseCase
	BillPDF      *billing.PDFUseCase
	PurchasingUC *purchasing.UseCase
	CashflowUC   *cashflow.UseCase
	RatesSvc     *rates.Service
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// La anulación de documentos financieros queda fuera del rol vendedor.
	finance := RequireRole(entity.RoleAdmin, entity.RoleContador)

	// Products e inventario (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.InventoryUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/low-stock", productHandler.LowStock)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", finance, productHandler.Delete)
	products.Post("/:id/adjustments", productHandler.AdjustStock)
	products.Get("/:id/movements", productHandler.Movements)

	// Clients (protegido)
	clients := protected.Group("/clients")
	clientHandler := NewClientHandler(deps.ClientUC)
	clients.Post("/", clientHandler.Create)
	clients.Get("/", clientHandler.List)
	clients.Get("/:id", clientHandler.GetByID)
	clients.Put("/:id", clientHandler.Update)
	clients.Delete("/:id", clientHandler.Delete)

	// Vendors (protegido)
	vendors := protected.Group("/vendors")
	vendorHandler := NewVendorHandler(deps.VendorUC)
	vendors.Post("/", vendorHandler.Create)
	vendors.Get("/", vendorHandler.List)
	vendors.Get("/:id", vendorHandler.GetByID)
	vendors.Put("/:id", vendorHandler.Update)
	vendors.Delete("/:id", vendorHandler.Delete)

	// Bills (protegido)
	bills := protected.Group("/bills")
	billHandler := NewBillHandler(deps.BillingUC, deps.BillPDF)
	bills.Post("/", billHandler.Create)
	bills.Get("/", billHandler.List)
	bills.Get("/:id", billHandler.GetByID)
	bills.Delete("/:id", finance, billHandler.Delete)
	bills.Post("/:id/payments", billHandler.ApplyPayment)
	bills.Get("/:id/payments", billHandler.ListPayments)
	bills.Get("/:id/pdf", billHandler.DownloadPDF)

	// Purchase invoices (protegido)
	purchases := protected.Group("/purchase-invoices")
	purchaseHandler := NewPurchaseHandler(deps.PurchasingUC)
	purchases.Post("/", purchaseHandler.Create)
	purchases.Get("/", purchaseHandler.List)
	purchases.Get("/:id", purchaseHandler.GetByID)
	purchases.Put("/:id", purchaseHandler.Update)
	purchases.Delete("/:id", finance, purchaseHandler.Delete)
	purchases.Post("/:id/payments", purchaseHandler.ApplyPayment)

	// Transactions (protegido)
	txns := protected.Group("/transactions")
	txnHandler := NewTransactionHandler(deps.CashflowUC)
	txns.Post("/", txnHandler.Create)
	txns.Get("/", txnHandler.List)
	txns.Get("/summary", txnHandler.Summary)

	// Rates (protegido)
	ratesHandler := NewRatesHandler(deps.RatesSvc)
	protected.Get("/rates", ratesHandler.Get)
}
