package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale cabecera de una venta despachada desde una bodega.
type Sale struct {
	ID             string
	CustomerID     string
	WarehouseID    string // bodega origen del despacho
	Status         TransactionStatus
	BatchID        string // batch del ledger del despacho
	IdempotencyKey string
	Notes          string
	Total          decimal.Decimal
	ProcessedAt    *time.Time
	CreatedBy      string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// SaleItem línea de venta: cantidad solicitada vs. cantidad despachada.
type SaleItem struct {
	ID           string
	SaleID       string
	ItemID       string
	QtyRequested decimal.Decimal
	QtyFulfilled decimal.Decimal
	UnitPrice    decimal.Decimal
	Subtotal     decimal.Decimal
}
