package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/forddyce/stock-ac-sub001/internal/application/auth"
	"github.com/forddyce/stock-ac-sub001/internal/application/reports"
	"github.com/forddyce/stock-ac-sub001/internal/application/transactions"
	"github.com/forddyce/stock-ac-sub001/internal/application/usecase"
	"github.com/forddyce/stock-ac-sub001/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	ItemUC         *usecase.ItemUseCase
	WarehouseUC    *usecase.WarehouseUseCase
	SupplierUC     *usecase.SupplierUseCase
	CustomerUC     *usecase.CustomerUseCase
	ReceiveUC      *transactions.ReceivePurchaseUseCase
	FulfillUC      *transactions.FulfillSaleUseCase
	TransferUC     *transactions.TransferUseCase
	AdjustUC       *transactions.AdjustUseCase
	CancelUC       *transactions.CancelUseCase
	ReportUC       *reports.ReportUseCase
	DeliveryNoteUC *reports.DeliveryNoteUseCase
	JWTSecret      string
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

	// Escrituras de catálogo solo para admin; lecturas para cualquier rol autenticado.
	adminOnly := RequireRole(entity.RoleAdmin)
	warehouseOps := RequireRole(entity.RoleAdmin, entity.RoleBodeguero)
	salesOps := RequireRole(entity.RoleAdmin, entity.RoleBodeguero, entity.RoleVendedor)

	// Items (protegido)
	items := protected.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC)
	reportHandler := NewReportHandler(deps.ReportUC)
	items.Post("/", adminOnly, itemHandler.Create)
	items.Get("/", itemHandler.List)
	items.Get("/:id", itemHandler.GetByID)
	items.Put("/:id", adminOnly, itemHandler.Update)
	items.Delete("/:id", adminOnly, itemHandler.Delete)
	items.Get("/:id/stock", reportHandler.ItemStock)
	items.Get("/:id/kardex", reportHandler.ItemKardex)
	items.Get("/:id/kardex/xml", reportHandler.ExportKardexXML)

	// Warehouses (protegido)
	warehouses := protected.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Post("/", adminOnly, warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)
	warehouses.Put("/:id", adminOnly, warehouseHandler.Update)
	warehouses.Delete("/:id", adminOnly, warehouseHandler.Delete)

	// Suppliers (protegido)
	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", adminOnly, supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Put("/:id", adminOnly, supplierHandler.Update)
	suppliers.Delete("/:id", adminOnly, supplierHandler.Delete)

	// Customers (protegido)
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", salesOps, customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", salesOps, customerHandler.Update)
	customers.Delete("/:id", adminOnly, customerHandler.Delete)

	// Purchases (protegido, bodega)
	purchases := protected.Group("/purchases")
	purchaseHandler := NewPurchaseHandler(deps.ReceiveUC, deps.CancelUC)
	purchases.Post("/", warehouseOps, purchaseHandler.Receive)
	purchases.Get("/", purchaseHandler.List)
	purchases.Get("/:id", purchaseHandler.GetByID)
	purchases.Post("/:id/cancel", warehouseOps, purchaseHandler.Cancel)

	// Sales (protegido, ventas)
	sales := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.FulfillUC, deps.CancelUC, deps.DeliveryNoteUC)
	sales.Post("/", salesOps, saleHandler.Fulfill)
	sales.Get("/", saleHandler.List)
	sales.Get("/:id", saleHandler.GetByID)
	sales.Get("/:id/pdf", saleHandler.DownloadPDF)
	sales.Post("/:id/cancel", salesOps, saleHandler.Cancel)

	// Transfers (protegido, bodega)
	transfers := protected.Group("/transfers")
	transferHandler := NewTransferHandler(deps.TransferUC, deps.CancelUC)
	transfers.Post("/", warehouseOps, transferHandler.Create)
	transfers.Get("/", transferHandler.List)
	transfers.Get("/:id", transferHandler.GetByID)
	transfers.Post("/:id/cancel", warehouseOps, transferHandler.Cancel)

	// Adjustments (protegido, bodega)
	adjustments := protected.Group("/adjustments")
	adjustmentHandler := NewAdjustmentHandler(deps.AdjustUC, deps.CancelUC)
	adjustments.Post("/", warehouseOps, adjustmentHandler.Create)
	adjustments.Get("/", adjustmentHandler.List)
	adjustments.Get("/:id", adjustmentHandler.GetByID)
	adjustments.Post("/:id/cancel", warehouseOps, adjustmentHandler.Cancel)

	// Reports (protegido)
	reportsGroup := protected.Group("/reports")
	reportsGroup.Get("/low-stock", reportHandler.LowStock)
	reportsGroup.Get("/activity", reportHandler.RecentActivity)
	reportsGroup.Get("/batches/:id", reportHandler.Batch)
}
