package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento registrados en el ledger de inventario.
// Un traslado genera dos entradas: transfer_out en origen y transfer_in en destino.
const (
	LedgerTypePurchase    = "purchase"
	LedgerTypeSale        = "sale"
	LedgerTypeTransferIn  = "transfer_in"
	LedgerTypeTransferOut = "transfer_out"
	LedgerTypeAdjustment  = "adjustment"
)

// LedgerEntry es una entrada inmutable del historial de stock (kardex).
// Invariante: QtyAfter = QtyBefore + QtyChange, y QtyAfter coincide con la
// cantidad en stock_balances para (item, bodega) justo después del commit.
// Las entradas nunca se actualizan ni se borran: sobreviven a la cabecera
// que las originó (auditoría).
type LedgerEntry struct {
	ID          string
	BatchID     string // agrupa todas las entradas de un mismo evento de negocio
	ItemID      string
	WarehouseID string
	Type        string // purchase, sale, transfer_in, transfer_out, adjustment
	ReferenceID string // ID de la cabecera origen; vacío para escrituras del sistema
	QtyBefore   decimal.Decimal
	QtyChange   decimal.Decimal // con signo
	QtyAfter    decimal.Decimal
	Notes       string
	UserID      string // vacío para escrituras del sistema (ej. importación)
	CreatedAt   time.Time
}
