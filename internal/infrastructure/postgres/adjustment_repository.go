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

var _ repository.AdjustmentRepository = (*AdjustmentRepo)(nil)

// AdjustmentRepo implementación de AdjustmentRepository sobre PostgreSQL (usable con pool o tx).
type AdjustmentRepo struct {
	q Querier
}

// NewAdjustmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAdjustmentRepository(q Querier) *AdjustmentRepo {
	return &AdjustmentRepo{q: q}
}

const adjustmentColumns = `id, item_id, warehouse_id, type, qty, status, batch_id, idempotency_key, notes, processed_at, created_by, created_at, updated_at`

// Create persiste la cabecera de un ajuste.
func (r *AdjustmentRepo) Create(adjustment *entity.StockAdjustment) error {
	query := `
		INSERT INTO stock_adjustments (` + adjustmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		adjustment.ID, adjustment.ItemID, adjustment.WarehouseID, adjustment.Type,
		adjustment.Qty, string(adjustment.Status),
		adjustment.BatchID, nullIfEmpty(adjustment.IdempotencyKey), adjustment.Notes,
		adjustment.ProcessedAt, nullIfEmpty(adjustment.CreatedBy),
		adjustment.CreatedAt, adjustment.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create adjustment: %w", err)
	}
	return nil
}

// GetByID obtiene un ajuste por ID.
func (r *AdjustmentRepo) GetByID(id string) (*entity.StockAdjustment, error) {
	query := `
		SELECT ` + adjustmentColumns + `
		FROM stock_adjustments WHERE id = $1`
	a, err := r.scanOne(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		return nil, fmt.Errorf("get adjustment: %w", err)
	}
	return a, nil
}

// List lista ajustes paginados, más recientes primero.
func (r *AdjustmentRepo) List(limit, offset int) ([]*entity.StockAdjustment, error) {
	query := `
		SELECT ` + adjustmentColumns + `
		FROM stock_adjustments
		ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list adjustments: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockAdjustment
	for rows.Next() {
		a, err := r.scanOne(rows)
		if err != nil {
			return nil, fmt.Errorf("scan adjustment: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

// UpdateStatus cambia el estado de la cabecera, condicionado a los estados
// de origen válidos de la transición.
func (r *AdjustmentRepo) UpdateStatus(id string, status entity.TransactionStatus) error {
	query := `UPDATE stock_adjustments SET status = $2, updated_at = now()
		WHERE id = $1 AND status = ANY($3)`
	tag, err := r.q.Exec(context.Background(), query, id, string(status), transitionSources(status))
	if err != nil {
		return fmt.Errorf("update adjustment status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrInvalidTransition
	}
	return nil
}

func (r *AdjustmentRepo) scanOne(row pgx.Row) (*entity.StockAdjustment, error) {
	var a entity.StockAdjustment
	var status string
	var idempotencyKey, createdBy *string
	err := row.Scan(&a.ID, &a.ItemID, &a.WarehouseID, &a.Type, &a.Qty, &status,
		&a.BatchID, &idempotencyKey, &a.Notes, &a.ProcessedAt, &createdBy,
		&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	a.Status = entity.TransactionStatus(status)
	if idempotencyKey != nil {
		a.IdempotencyKey = *idempotencyKey
	}
	if createdBy != nil {
		a.CreatedBy = *createdBy
	}
	return &a, nil
}
