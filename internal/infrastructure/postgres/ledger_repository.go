package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/forddyce/stock-ac-sub001/internal/domain/entity"
	"github.com/forddyce/stock-ac-sub001/internal/domain/repository"
)

var _ repository.LedgerRepository = (*LedgerRepo)(nil)

// LedgerRepo implementación del historial de stock sobre PostgreSQL (usable con pool o tx).
// Solo inserta y lee: no existen UPDATE ni DELETE sobre ledger_entries.
type LedgerRepo struct {
	q Querier
}

// NewLedgerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLedgerRepository(q Querier) *LedgerRepo {
	return &LedgerRepo{q: q}
}

const ledgerColumns = `id, batch_id, item_id, warehouse_id, type, reference_id, qty_before, qty_change, qty_after, notes, user_id, created_at`

// Create persiste una entrada del ledger.
func (r *LedgerRepo) Create(entry *entity.LedgerEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	query := `
		INSERT INTO ledger_entries (` + ledgerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		entry.ID, entry.BatchID, entry.ItemID, entry.WarehouseID, entry.Type,
		nullIfEmpty(entry.ReferenceID), entry.QtyBefore, entry.QtyChange, entry.QtyAfter,
		entry.Notes, nullIfEmpty(entry.UserID), entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create ledger entry: %w", err)
	}
	return nil
}

// ListByItemWarehouse lista el kardex de un ítem en una bodega, con rango de fechas opcional.
func (r *LedgerRepo) ListByItemWarehouse(itemID, warehouseID string, from, to *time.Time, limit, offset int) ([]*entity.LedgerEntry, error) {
	query := `
		SELECT ` + ledgerColumns + `
		FROM ledger_entries WHERE item_id = $1 AND warehouse_id = $2`
	args := []any{itemID, warehouseID}
	pos := 3
	if from != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND created_at <= $%d", pos)
		args = append(args, *to)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	return r.list(query, args...)
}

// ListByBatch reconstruye todas las entradas de un mismo evento de negocio.
func (r *LedgerRepo) ListByBatch(batchID string) ([]*entity.LedgerEntry, error) {
	query := `
		SELECT ` + ledgerColumns + `
		FROM ledger_entries WHERE batch_id = $1
		ORDER BY created_at`
	return r.list(query, batchID)
}

// ListRecent lista las últimas entradas del ledger (actividad reciente global).
func (r *LedgerRepo) ListRecent(limit int) ([]*entity.LedgerEntry, error) {
	query := `
		SELECT ` + ledgerColumns + `
		FROM ledger_entries
		ORDER BY created_at DESC LIMIT $1`
	return r.list(query, limit)
}

func (r *LedgerRepo) list(query string, args ...any) ([]*entity.LedgerEntry, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list ledger entries: %w", err)
	}
	defer rows.Close()
	var list []*entity.LedgerEntry
	for rows.Next() {
		var e entity.LedgerEntry
		var referenceID, userID *string
		if err := rows.Scan(&e.ID, &e.BatchID, &e.ItemID, &e.WarehouseID, &e.Type,
			&referenceID, &e.QtyBefore, &e.QtyChange, &e.QtyAfter,
			&e.Notes, &userID, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan ledger entry: %w", err)
		}
		if referenceID != nil {
			e.ReferenceID = *referenceID
		}
		if userID != nil {
			e.UserID = *userID
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
