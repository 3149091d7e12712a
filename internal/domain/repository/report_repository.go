package repository

import (
	"time"

	"github.com/shopspring/decimal"
)

// LowStockResult fila cruda del reporte de stock bajo.
// Lo produce la DB; el use case lo convierte en DTO.
type LowStockResult struct {
	ItemID      string
	SKU         string
	ItemName    string
	WarehouseID string
	Warehouse   string
	Quantity    decimal.Decimal
	MinStock    decimal.Decimal
}

// ActivityResult fila cruda de actividad reciente: entrada de ledger
// con los nombres de ítem, bodega y usuario ya resueltos.
type ActivityResult struct {
	EntryID   string
	BatchID   string
	ItemID    string
	SKU       string
	ItemName  string
	Warehouse string
	Type      string
	QtyBefore decimal.Decimal
	QtyChange decimal.Decimal
	QtyAfter  decimal.Decimal
	UserName  string // vacío para escrituras del sistema
	CreatedAt time.Time
}

// ItemStockResult stock de un ítem desglosado por bodega.
type ItemStockResult struct {
	WarehouseID string
	Warehouse   string
	Quantity    decimal.Decimal
}

// ReportRepository define las consultas de lectura para reportes.
// Las implementaciones son read-only (no modifican datos).
type ReportRepository interface {
	// LowStock devuelve los pares (ítem, bodega) con cantidad por debajo de min_stock.
	LowStock(limit, offset int) ([]LowStockResult, error)
	// RecentActivity devuelve las últimas entradas del ledger con nombres resueltos.
	RecentActivity(limit int) ([]ActivityResult, error)
	// ItemStock devuelve el stock por bodega de un ítem. El total es la suma
	// de las filas (derivado, nunca almacenado).
	ItemStock(itemID string) ([]ItemStockResult, error)
	// ItemKardex historial de movimientos de un ítem, opcionalmente acotado por fechas.
	ItemKardex(itemID string, from, to *time.Time, limit, offset int) ([]ActivityResult, error)
	// Batch devuelve todas las entradas de ledger producidas por un mismo
	// evento de negocio (p. ej. las dos patas de un traslado).
	Batch(batchID string) ([]ActivityResult, error)
}
