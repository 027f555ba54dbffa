package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/facturapy/facturapy-api/internal/application/auth"
	"github.com/facturapy/facturapy-api/internal/application/billing"
	"github.com/facturapy/facturapy-api/internal/application/cashflow"
	"github.com/facturapy/facturapy-api/internal/application/inventory"
	"github.com/facturapy/facturapy-api/internal/application/masterdata"
	"github.com/facturapy/facturapy-api/internal/application/purchasing"
	apprates "github.com/facturapy/facturapy-api/internal/application/rates"
	infrapdf "github.com/facturapy/facturapy-api/internal/infrastructure/pdf"
	"github.com/facturapy/facturapy-api/internal/infrastructure/postgres"
	infrarates "github.com/facturapy/facturapy-api/internal/infrastructure/rates"
	httpRouter "github.com/facturapy/facturapy-api/internal/interfaces/http"
	"github.com/facturapy/facturapy-api/pkg/config"
	"github.com/facturapy/facturapy-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		App:   cfg.App.Name,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	clientRepo := postgres.NewClientRepository(pool)
	vendorRepo := postgres.NewVendorRepository(pool)
	billRepo := postgres.NewBillRepository(pool)
	invoiceRepo := postgres.NewPurchaseInvoiceRepository(pool)
	payRepo := postgres.NewPaymentRepository(pool)
	movRepo := postgres.NewStockMovementRepository(pool)
	txnRepo := postgres.NewTransactionRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Tasas de cambio: fuente HTTP con caché y tabla de respaldo. Con
	// RATES_SOURCE_URL vacío toda conversión degrada al respaldo.
	ratesSource := infrarates.NewHTTPSource(cfg.Rates.SourceURL, &http.Client{
		Timeout: cfg.Rates.Timeout,
	})
	ratesSvc := apprates.NewService(ratesSource, apprates.NewCache(cfg.Rates.CacheTTL), log.Zerolog())

	ledger := inventory.NewStockLedger()
	inventoryUC := inventory.NewUseCase(txRunner, ledger, productRepo, movRepo)
	productUC := masterdata.NewProductUseCase(txRunner, ledger, productRepo, movRepo)
	clientUC := masterdata.NewClientUseCase(clientRepo)
	vendorUC := masterdata.NewVendorUseCase(vendorRepo)

	billingUC := billing.NewUseCase(
		txRunner, ledger,
		clientRepo, productRepo, billRepo, payRepo,
		ratesSvc,
	)
	purchasingUC := purchasing.NewUseCase(
		txRunner, ledger,
		vendorRepo, productRepo, invoiceRepo, payRepo,
		ratesSvc,
	)
	cashflowUC := cashflow.NewUseCase(txnRepo)

	pdfGenerator := infrapdf.NewMarotoPDFGenerator(cfg.App.Name)
	billPDFUC := billing.NewPDFUseCase(billingUC, pdfGenerator)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "FacturaPy API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		ProductUC:    productUC,
		ClientUC:     clientUC,
		VendorUC:     vendorUC,
		InventoryUC:  inventoryUC,
		BillingUC:    billingUC,
		BillPDF:      billPDFUC,
		PurchasingUC: purchasingUC,
		CashflowUC:   cashflowUC,
		RatesSvc:     ratesSvc,
		JWTSecret:    cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
