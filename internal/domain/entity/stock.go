package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockBalance es la cantidad actual de un ítem en una bodega.
// Se crea implícitamente con el primer movimiento hacia la bodega y solo
// muta a través de los procesadores de transacción (nunca directo).
type StockBalance struct {
	ItemID      string
	WarehouseID string
	Quantity    decimal.Decimal
	UpdatedAt   time.Time
}
