package repository

import (
	"time"

	"github.com/forddyce/stock-ac-sub001/internal/domain/entity"
)

// LedgerRepository define el puerto de persistencia del historial de stock.
// Solo inserta y lee: las entradas del ledger son inmutables.
type LedgerRepository interface {
	Create(entry *entity.LedgerEntry) error
	ListByItemWarehouse(itemID, warehouseID string, from, to *time.Time, limit, offset int) ([]*entity.LedgerEntry, error)
	// ListByBatch reconstruye todo lo que hizo un evento de negocio.
	ListByBatch(batchID string) ([]*entity.LedgerEntry, error)
	ListRecent(limit int) ([]*entity.LedgerEntry, error)
}
