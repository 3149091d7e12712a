package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/forddyce/stock-ac-sub001/internal/domain"
	"github.com/forddyce/stock-ac-sub001/internal/domain/entity"
	"github.com/forddyce/stock-ac-sub001/internal/domain/repository"
)

var _ repository.TransferRepository = (*TransferRepo)(nil)

// TransferRepo implementación de TransferRepository sobre PostgreSQL (usable con pool o tx).
type TransferRepo struct {
	q Querier
}

// NewTransferRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransferRepository(q Querier) *TransferRepo {
	return &TransferRepo{q: q}
}

const transferColumns = `id, item_id, from_warehouse_id, to_warehouse_id, qty_sent, qty_received, status, batch_id, idempotency_key, notes, processed_at, created_by, created_at, updated_at`

// Create persiste la cabecera de un traslado.
func (r *TransferRepo) Create(transfer *entity.Transfer) error {
	query := `
		INSERT INTO transfers (` + transferColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		transfer.ID, transfer.ItemID, transfer.FromWarehouseID, transfer.ToWarehouseID,
		transfer.QtySent, transfer.QtyReceived, string(transfer.Status),
		transfer.BatchID, nullIfEmpty(transfer.IdempotencyKey), transfer.Notes,
		transfer.ProcessedAt, nullIfEmpty(transfer.CreatedBy),
		transfer.CreatedAt, transfer.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create transfer: %w", err)
	}
	return nil
}

// GetByID obtiene un traslado por ID.
func (r *TransferRepo) GetByID(id string) (*entity.Transfer, error) {
	query := `
		SELECT ` + transferColumns + `
		FROM transfers WHERE id = $1`
	t, err := r.scanOne(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		return nil, fmt.Errorf("get transfer: %w", err)
	}
	return t, nil
}

// List lista traslados paginados, más recientes primero.
func (r *TransferRepo) List(limit, offset int) ([]*entity.Transfer, error) {
	query := `
		SELECT ` + transferColumns + `
		FROM transfers
		ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list transfers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Transfer
	for rows.Next() {
		t, err := r.scanOne(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transfer: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// UpdateStatus cambia el estado de la cabecera, condicionado a los estados
// de origen válidos de la transición.
func (r *TransferRepo) UpdateStatus(id string, status entity.TransactionStatus) error {
	query := `UPDATE transfers SET status = $2, updated_at = now()
		WHERE id = $1 AND status = ANY($3)`
	tag, err := r.q.Exec(context.Background(), query, id, string(status), transitionSources(status))
	if err != nil {
		return fmt.Errorf("update transfer status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrInvalidTransition
	}
	return nil
}

func (r *TransferRepo) scanOne(row pgx.Row) (*entity.Transfer, error) {
	var t entity.Transfer
	var status string
	var idempotencyKey, createdBy *string
	err := row.Scan(&t.ID, &t.ItemID, &t.FromWarehouseID, &t.ToWarehouseID,
		&t.QtySent, &t.QtyReceived, &status, &t.BatchID, &idempotencyKey, &t.Notes,
		&t.ProcessedAt, &createdBy, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	t.Status = entity.TransactionStatus(status)
	if idempotencyKey != nil {
		t.IdempotencyKey = *idempotencyKey
	}
	if createdBy != nil {
		t.CreatedBy = *createdBy
	}
	return &t, nil
}
