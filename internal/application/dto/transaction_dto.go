package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseLineRequest línea de una recepción de compra.
type PurchaseLineRequest struct {
	ItemID      string          `json:"item_id" validate:"required"`
	QtyOrdered  decimal.Decimal `json:"qty_ordered" validate:"required"`
	QtyReceived decimal.Decimal `json:"qty_received"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
}

// ReceivePurchaseRequest entrada HTTP para procesar una recepción de compra.
type ReceivePurchaseRequest struct {
	SupplierID     string                `json:"supplier_id" validate:"required"`
	WarehouseID    string                `json:"warehouse_id" validate:"required"`
	IdempotencyKey string                `json:"idempotency_key"`
	Notes          string                `json:"notes"`
	Lines          []PurchaseLineRequest `json:"lines" validate:"required,min=1"`
}

// PurchaseLineResponse línea de compra en respuestas.
type PurchaseLineResponse struct {
	ID          string          `json:"id"`
	ItemID      string          `json:"item_id"`
	QtyOrdered  decimal.Decimal `json:"qty_ordered"`
	QtyReceived decimal.Decimal `json:"qty_received"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// PurchaseResponse cabecera de compra con líneas y proveedor.
type PurchaseResponse struct {
	ID               string                 `json:"id"`
	SupplierID       string                 `json:"supplier_id"`
	SupplierName     string                 `json:"supplier_name,omitempty"`
	WarehouseID      string                 `json:"warehouse_id"`
	Status           string                 `json:"status"`
	Notes            string                 `json:"notes"`
	Total            decimal.Decimal        `json:"total"`
	BatchID          string                 `json:"batch_id,omitempty"`
	AlreadyProcessed bool                   `json:"already_processed"`
	ProcessedAt      *time.Time             `json:"processed_at"`
	Lines            []PurchaseLineResponse `json:"lines"`
	CreatedAt        time.Time              `json:"created_at"`
}

// SaleLineRequest línea de una venta.
type SaleLineRequest struct {
	ItemID       string          `json:"item_id" validate:"required"`
	QtyRequested decimal.Decimal `json:"qty_requested" validate:"required"`
	QtyFulfilled decimal.Decimal `json:"qty_fulfilled"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
}

// FulfillSaleRequest entrada HTTP para procesar una venta.
type FulfillSaleRequest struct {
	CustomerID     string            `json:"customer_id" validate:"required"`
	WarehouseID    string            `json:"warehouse_id" validate:"required"`
	IdempotencyKey string            `json:"idempotency_key"`
	Notes          string            `json:"notes"`
	Lines          []SaleLineRequest `json:"lines" validate:"required,min=1"`
}

// SaleLineResponse línea de venta en respuestas.
type SaleLineResponse struct {
	ID           string          `json:"id"`
	ItemID       string          `json:"item_id"`
	QtyRequested decimal.Decimal `json:"qty_requested"`
	QtyFulfilled decimal.Decimal `json:"qty_fulfilled"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Subtotal     decimal.Decimal `json:"subtotal"`
}

// SaleResponse cabecera de venta con líneas y cliente.
type SaleResponse struct {
	ID               string             `json:"id"`
	CustomerID       string             `json:"customer_id"`
	CustomerName     string             `json:"customer_name,omitempty"`
	WarehouseID      string             `json:"warehouse_id"`
	Status           string             `json:"status"`
	Notes            string             `json:"notes"`
	Total            decimal.Decimal    `json:"total"`
	BatchID          string             `json:"batch_id,omitempty"`
	AlreadyProcessed bool               `json:"already_processed"`
	ProcessedAt      *time.Time         `json:"processed_at"`
	Lines            []SaleLineResponse `json:"lines"`
	CreatedAt        time.Time          `json:"created_at"`
}

// TransferRequest entrada HTTP para un traslado entre bodegas.
type TransferRequest struct {
	ItemID          string          `json:"item_id" validate:"required"`
	FromWarehouseID string          `json:"from_warehouse_id" validate:"required"`
	ToWarehouseID   string          `json:"to_warehouse_id" validate:"required"`
	Qty             decimal.Decimal `json:"qty" validate:"required"`
	IdempotencyKey  string          `json:"idempotency_key"`
	Notes           string          `json:"notes"`
}

// TransferResponse cabecera de traslado.
type TransferResponse struct {
	ID               string          `json:"id"`
	ItemID           string          `json:"item_id"`
	FromWarehouseID  string          `json:"from_warehouse_id"`
	ToWarehouseID    string          `json:"to_warehouse_id"`
	QtySent          decimal.Decimal `json:"qty_sent"`
	QtyReceived      decimal.Decimal `json:"qty_received"`
	Status           string          `json:"status"`
	Notes            string          `json:"notes"`
	BatchID          string          `json:"batch_id,omitempty"`
	AlreadyProcessed bool            `json:"already_processed"`
	ProcessedAt      *time.Time      `json:"processed_at"`
	CreatedAt        time.Time       `json:"created_at"`
}

// AdjustmentRequest entrada HTTP para un ajuste manual de stock.
type AdjustmentRequest struct {
	ItemID         string          `json:"item_id" validate:"required"`
	WarehouseID    string          `json:"warehouse_id" validate:"required"`
	Type           string          `json:"type" validate:"required,oneof=add subtract"`
	Qty            decimal.Decimal `json:"qty" validate:"required"`
	IdempotencyKey string          `json:"idempotency_key"`
	Notes          string          `json:"notes"`
}

// AdjustmentResponse cabecera de ajuste.
type AdjustmentResponse struct {
	ID               string          `json:"id"`
	ItemID           string          `json:"item_id"`
	WarehouseID      string          `json:"warehouse_id"`
	Type             string          `json:"type"`
	Qty              decimal.Decimal `json:"qty"`
	Status           string          `json:"status"`
	Notes            string          `json:"notes"`
	BatchID          string          `json:"batch_id,omitempty"`
	AlreadyProcessed bool            `json:"already_processed"`
	ProcessedAt      *time.Time      `json:"processed_at"`
	CreatedAt        time.Time       `json:"created_at"`
}
