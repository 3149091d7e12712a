package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase cabecera de una recepción de compra a un proveedor.
// Es dueña de sus líneas (se borran en cascada con la cabecera); las
// entradas del ledger que generó NO se borran nunca.
type Purchase struct {
	ID             string
	SupplierID     string
	WarehouseID    string // bodega destino de la mercancía
	Status         TransactionStatus
	BatchID        string // batch del ledger que agrupa los movimientos de esta recepción
	IdempotencyKey string // vacío = sin deduplicación
	Notes          string
	Total          decimal.Decimal
	ProcessedAt    *time.Time
	CreatedBy      string // UserID; vacío para escrituras del sistema
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// PurchaseItem línea de compra: cantidad pedida vs. cantidad efectivamente recibida.
type PurchaseItem struct {
	ID          string
	PurchaseID  string
	ItemID      string
	QtyOrdered  decimal.Decimal
	QtyReceived decimal.Decimal
	UnitCost    decimal.Decimal
	Subtotal    decimal.Decimal
}
