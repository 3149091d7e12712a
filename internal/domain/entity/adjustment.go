package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de ajuste manual de stock.
const (
	AdjustmentAdd      = "add"
	AdjustmentSubtract = "subtract"
)

// StockAdjustment ajuste manual de la cantidad de un ítem en una bodega
// (conteo físico, merma, rotura). Mono-ítem, como Transfer.
type StockAdjustment struct {
	ID             string
	ItemID         string
	WarehouseID    string
	Type           string // add, subtract
	Qty            decimal.Decimal // siempre positiva; el signo lo da Type
	Status         TransactionStatus
	BatchID        string // batch del ledger del ajuste
	IdempotencyKey string
	Notes          string
	ProcessedAt    *time.Time
	CreatedBy      string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
