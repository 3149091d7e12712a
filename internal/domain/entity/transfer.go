package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transfer traslado de un ítem entre dos bodegas. Es mono-ítem: un traslado
// de varios ítems son varios Transfer. Genera dos entradas de ledger
// (transfer_out en origen, transfer_in en destino) bajo un mismo batch.
type Transfer struct {
	ID              string
	ItemID          string
	FromWarehouseID string
	ToWarehouseID   string
	QtySent         decimal.Decimal
	QtyReceived     decimal.Decimal
	Status          TransactionStatus
	BatchID         string // batch del ledger que agrupa transfer_out y transfer_in
	IdempotencyKey  string
	Notes           string
	ProcessedAt     *time.Time
	CreatedBy       string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
