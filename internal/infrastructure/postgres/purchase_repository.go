package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/forddyce/stock-ac-sub001/internal/domain"
	"github.com/forddyce/stock-ac-sub001/internal/domain/entity"
	"github.com/forddyce/stock-ac-sub001/internal/domain/repository"
)

var _ repository.PurchaseRepository = (*PurchaseRepo)(nil)

// PurchaseRepo implementación de PurchaseRepository sobre PostgreSQL (usable con pool o tx).
type PurchaseRepo struct {
	q Querier
}

// NewPurchaseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseRepository(q Querier) *PurchaseRepo {
	return &PurchaseRepo{q: q}
}

const purchaseColumns = `id, supplier_id, warehouse_id, status, batch_id, idempotency_key, notes, total, processed_at, created_by, created_at, updated_at`

// Create persiste la cabecera de una compra.
func (r *PurchaseRepo) Create(purchase *entity.Purchase) error {
	query := `
		INSERT INTO purchases (` + purchaseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		purchase.ID, purchase.SupplierID, purchase.WarehouseID, string(purchase.Status),
		purchase.BatchID, nullIfEmpty(purchase.IdempotencyKey), purchase.Notes, purchase.Total,
		purchase.ProcessedAt, nullIfEmpty(purchase.CreatedBy),
		purchase.CreatedAt, purchase.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create purchase: %w", err)
	}
	return nil
}

// CreateItem persiste una línea de compra.
func (r *PurchaseRepo) CreateItem(item *entity.PurchaseItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	query := `
		INSERT INTO purchase_items (id, purchase_id, item_id, qty_ordered, qty_received, unit_cost, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.PurchaseID, item.ItemID, item.QtyOrdered, item.QtyReceived,
		item.UnitCost, item.Subtotal,
	)
	if err != nil {
		return fmt.Errorf("create purchase item: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera de una compra por ID.
func (r *PurchaseRepo) GetByID(id string) (*entity.Purchase, error) {
	query := `
		SELECT ` + purchaseColumns + `
		FROM purchases WHERE id = $1`
	p, err := r.scanOne(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		return nil, fmt.Errorf("get purchase: %w", err)
	}
	return p, nil
}

// ListItems lista las líneas de una compra.
func (r *PurchaseRepo) ListItems(purchaseID string) ([]*entity.PurchaseItem, error) {
	query := `
		SELECT id, purchase_id, item_id, qty_ordered, qty_received, unit_cost, subtotal
		FROM purchase_items WHERE purchase_id = $1
		ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, purchaseID)
	if err != nil {
		return nil, fmt.Errorf("list purchase items: %w", err)
	}
	defer rows.Close()
	var list []*entity.PurchaseItem
	for rows.Next() {
		var it entity.PurchaseItem
		if err := rows.Scan(&it.ID, &it.PurchaseID, &it.ItemID, &it.QtyOrdered,
			&it.QtyReceived, &it.UnitCost, &it.Subtotal); err != nil {
			return nil, fmt.Errorf("scan purchase item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// List lista compras paginadas, más recientes primero.
func (r *PurchaseRepo) List(limit, offset int) ([]*entity.Purchase, error) {
	query := `
		SELECT ` + purchaseColumns + `
		FROM purchases
		ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	defer rows.Close()
	var list []*entity.Purchase
	for rows.Next() {
		p, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// UpdateStatus cambia el estado de la cabecera. El UPDATE queda condicionado
// a los estados de origen válidos de la transición: si otra escritura
// concurrente ya movió la cabecera, no se aplica nada y se devuelve
// ErrInvalidTransition.
func (r *PurchaseRepo) UpdateStatus(id string, status entity.TransactionStatus) error {
	query := `UPDATE purchases SET status = $2, updated_at = now()
		WHERE id = $1 AND status = ANY($3)`
	tag, err := r.q.Exec(context.Background(), query, id, string(status), transitionSources(status))
	if err != nil {
		return fmt.Errorf("update purchase status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrInvalidTransition
	}
	return nil
}

func (r *PurchaseRepo) scanOne(row pgx.Row) (*entity.Purchase, error) {
	var p entity.Purchase
	var status string
	var idempotencyKey, createdBy *string
	err := row.Scan(&p.ID, &p.SupplierID, &p.WarehouseID, &status, &p.BatchID,
		&idempotencyKey, &p.Notes, &p.Total, &p.ProcessedAt, &createdBy,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	p.Status = entity.TransactionStatus(status)
	if idempotencyKey != nil {
		p.IdempotencyKey = *idempotencyKey
	}
	if createdBy != nil {
		p.CreatedBy = *createdBy
	}
	return &p, nil
}

func (r *PurchaseRepo) scanRow(rows pgx.Rows) (*entity.Purchase, error) {
	p, err := r.scanOne(rows)
	if err != nil {
		return nil, fmt.Errorf("scan purchase: %w", err)
	}
	return p, nil
}
