package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/forddyce/stock-ac-sub001/internal/application/auth"
	"github.com/forddyce/stock-ac-sub001/internal/application/reports"
	"github.com/forddyce/stock-ac-sub001/internal/application/transactions"
	"github.com/forddyce/stock-ac-sub001/internal/application/usecase"
	infrapdf "github.com/forddyce/stock-ac-sub001/internal/infrastructure/pdf"
	"github.com/forddyce/stock-ac-sub001/internal/infrastructure/postgres"
	"github.com/forddyce/stock-ac-sub001/internal/infrastructure/xmlexport"
	httpRouter "github.com/forddyce/stock-ac-sub001/internal/interfaces/http"
	"github.com/forddyce/stock-ac-sub001/pkg/config"
	"github.com/forddyce/stock-ac-sub001/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	itemRepo := postgres.NewItemRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	purchaseRepo := postgres.NewPurchaseRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	transferRepo := postgres.NewTransferRepository(pool)
	adjustmentRepo := postgres.NewAdjustmentRepository(pool)
	keyRepo := postgres.NewTransactionKeyRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	guard := transactions.NewGuard(keyRepo)
	receiveUC := transactions.NewReceivePurchaseUseCase(txRunner, guard, supplierRepo, warehouseRepo, itemRepo, purchaseRepo)
	fulfillUC := transactions.NewFulfillSaleUseCase(txRunner, guard, customerRepo, warehouseRepo, itemRepo, saleRepo)
	transferUC := transactions.NewTransferUseCase(txRunner, guard, warehouseRepo, itemRepo, transferRepo)
	adjustUC := transactions.NewAdjustUseCase(txRunner, guard, warehouseRepo, itemRepo, adjustmentRepo)
	cancelUC := transactions.NewCancelUseCase(purchaseRepo, saleRepo, transferRepo, adjustmentRepo)

	itemUC := usecase.NewItemUseCase(itemRepo)
	warehouseUC := usecase.NewWarehouseUseCase(warehouseRepo)
	supplierUC := usecase.NewSupplierUseCase(supplierRepo)
	customerUC := usecase.NewCustomerUseCase(customerRepo)

	// Reportes: kardex XML descargable y remisión de venta en PDF
	kardexExporter := xmlexport.NewKardexExporter()
	reportUC := reports.NewReportUseCase(reportRepo, itemRepo, kardexExporter)
	pdfGenerator := infrapdf.NewMarotoDeliveryNoteGenerator()
	deliveryNoteUC := reports.NewDeliveryNoteUseCase(saleRepo, customerRepo, warehouseRepo, itemRepo, pdfGenerator)

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
		Title:    "Stock Ledger API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		ItemUC:         itemUC,
		WarehouseUC:    warehouseUC,
		SupplierUC:     supplierUC,
		CustomerUC:     customerUC,
		ReceiveUC:      receiveUC,
		FulfillUC:      fulfillUC,
		TransferUC:     transferUC,
		AdjustUC:       adjustUC,
		CancelUC:       cancelUC,
		ReportUC:       reportUC,
		DeliveryNoteUC: deliveryNoteUC,
		JWTSecret:      cfg.JWT.Secret,
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
