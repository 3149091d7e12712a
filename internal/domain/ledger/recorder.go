// Package ledger implementa el registro del historial de stock (kardex).
//
// Cada evento de negocio (compra, venta, traslado, ajuste) crea UN Recorder,
// que genera un batch_id opaco compartido por todas las entradas del evento.
// Así "todo lo que hizo esta venta/compra/traslado" se reconstruye después
// con una sola consulta por batch.
package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/forddyce/stock-ac-sub001/internal/domain/entity"
	"github.com/forddyce/stock-ac-sub001/internal/domain/repository"
)

// Recorder registra entradas inmutables del ledger para un evento de negocio.
// No toca el saldo de stock: el caller es responsable de mantener
// qty_before/qty_change coherentes con stock_balances y de invocar ambos
// dentro de la misma transacción de BD.
type Recorder struct {
	repo    repository.LedgerRepository
	batchID string
	userID  string
}

// NewRecorder crea el recorder de un evento con un batch_id nuevo.
// userID puede ser vacío para escrituras del sistema (ej. importación).
func NewRecorder(repo repository.LedgerRepository, userID string) *Recorder {
	return &Recorder{
		repo:    repo,
		batchID: uuid.New().String(),
		userID:  userID,
	}
}

// BatchID devuelve el identificador del batch del evento.
func (r *Recorder) BatchID() string {
	return r.batchID
}

// Record calcula qty_after = qty_before + qty_change y persiste la entrada.
// Invocar una vez por cada (ítem, bodega) afectado por el evento.
func (r *Recorder) Record(itemID, warehouseID, ledgerType, referenceID string, qtyBefore, qtyChange decimal.Decimal, notes string) (*entity.LedgerEntry, error) {
	entry := &entity.LedgerEntry{
		ID:          uuid.New().String(),
		BatchID:     r.batchID,
		ItemID:      itemID,
		WarehouseID: warehouseID,
		Type:        ledgerType,
		ReferenceID: referenceID,
		QtyBefore:   qtyBefore,
		QtyChange:   qtyChange,
		QtyAfter:    qtyBefore.Add(qtyChange),
		Notes:       notes,
		UserID:      r.userID,
		CreatedAt:   time.Now(),
	}
	if err := r.repo.Create(entry); err != nil {
		return nil, err
	}
	return entry, nil
}
