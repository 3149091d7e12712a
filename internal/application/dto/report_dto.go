package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockByWarehouseDTO stock de un ítem en una bodega.
type StockByWarehouseDTO struct {
	WarehouseID string          `json:"warehouse_id"`
	Warehouse   string          `json:"warehouse"`
	Quantity    decimal.Decimal `json:"quantity"`
}

// ItemStockResponse stock de un ítem por bodega más el total derivado.
type ItemStockResponse struct {
	ItemID     string                `json:"item_id"`
	Warehouses []StockByWarehouseDTO `json:"warehouses"`
	Total      decimal.Decimal       `json:"total"`
}

// LowStockDTO par (ítem, bodega) por debajo del umbral.
type LowStockDTO struct {
	ItemID      string          `json:"item_id"`
	SKU         string          `json:"sku"`
	ItemName    string          `json:"item_name"`
	WarehouseID string          `json:"warehouse_id"`
	Warehouse   string          `json:"warehouse"`
	Quantity    decimal.Decimal `json:"quantity"`
	MinStock    decimal.Decimal `json:"min_stock"`
}

// LedgerEntryDTO entrada del kardex con nombres resueltos.
type LedgerEntryDTO struct {
	ID        string          `json:"id"`
	BatchID   string          `json:"batch_id"`
	ItemID    string          `json:"item_id"`
	SKU       string          `json:"sku"`
	ItemName  string          `json:"item_name"`
	Warehouse string          `json:"warehouse"`
	Type      string          `json:"type"`
	QtyBefore decimal.Decimal `json:"qty_before"`
	QtyChange decimal.Decimal `json:"qty_change"`
	QtyAfter  decimal.Decimal `json:"qty_after"`
	UserName  string          `json:"user_name,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}
