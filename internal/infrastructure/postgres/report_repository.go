package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/forddyce/stock-ac-sub001/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas read-only para reportes. Las filas salen con los
// nombres de ítem, bodega y usuario ya resueltos vía JOIN.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// LowStock devuelve los pares (ítem, bodega) con cantidad por debajo de min_stock.
func (r *ReportRepo) LowStock(limit, offset int) ([]repository.LowStockResult, error) {
	query := `
		SELECT i.id, i.sku, i.name, w.id, w.name, sb.quantity, i.min_stock
		FROM stock_balances sb
		JOIN items i ON i.id = sb.item_id
		JOIN warehouses w ON w.id = sb.warehouse_id
		WHERE sb.quantity < i.min_stock
		ORDER BY i.sku, w.name
		LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("low stock: %w", err)
	}
	defer rows.Close()
	var list []repository.LowStockResult
	for rows.Next() {
		var res repository.LowStockResult
		if err := rows.Scan(&res.ItemID, &res.SKU, &res.ItemName,
			&res.WarehouseID, &res.Warehouse, &res.Quantity, &res.MinStock); err != nil {
			return nil, fmt.Errorf("scan low stock: %w", err)
		}
		list = append(list, res)
	}
	return list, rows.Err()
}

const activityQuery = `
	SELECT le.id, le.batch_id, le.item_id, i.sku, i.name, w.name, le.type,
	       le.qty_before, le.qty_change, le.qty_after, COALESCE(u.name, ''), le.created_at
	FROM ledger_entries le
	JOIN items i ON i.id = le.item_id
	JOIN warehouses w ON w.id = le.warehouse_id
	LEFT JOIN users u ON u.id = le.user_id`

// RecentActivity devuelve las últimas entradas del ledger con nombres resueltos.
func (r *ReportRepo) RecentActivity(limit int) ([]repository.ActivityResult, error) {
	query := activityQuery + `
	ORDER BY le.created_at DESC LIMIT $1`
	return r.listActivity(query, limit)
}

// ItemStock devuelve el stock por bodega de un ítem.
func (r *ReportRepo) ItemStock(itemID string) ([]repository.ItemStockResult, error) {
	query := `
		SELECT w.id, w.name, sb.quantity
		FROM stock_balances sb
		JOIN warehouses w ON w.id = sb.warehouse_id
		WHERE sb.item_id = $1
		ORDER BY w.name`
	rows, err := r.q.Query(context.Background(), query, itemID)
	if err != nil {
		return nil, fmt.Errorf("item stock: %w", err)
	}
	defer rows.Close()
	var list []repository.ItemStockResult
	for rows.Next() {
		var res repository.ItemStockResult
		if err := rows.Scan(&res.WarehouseID, &res.Warehouse, &res.Quantity); err != nil {
			return nil, fmt.Errorf("scan item stock: %w", err)
		}
		list = append(list, res)
	}
	return list, rows.Err()
}

// ItemKardex historial de movimientos de un ítem, opcionalmente acotado por fechas.
func (r *ReportRepo) ItemKardex(itemID string, from, to *time.Time, limit, offset int) ([]repository.ActivityResult, error) {
	query := activityQuery + `
	WHERE le.item_id = $1`
	args := []any{itemID}
	pos := 2
	if from != nil {
		query += fmt.Sprintf(" AND le.created_at >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND le.created_at <= $%d", pos)
		args = append(args, *to)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY le.created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)
	return r.listActivity(query, args...)
}

// Batch devuelve todas las entradas de ledger de un mismo evento de negocio.
func (r *ReportRepo) Batch(batchID string) ([]repository.ActivityResult, error) {
	query := activityQuery + `
	WHERE le.batch_id = $1
	ORDER BY le.created_at`
	return r.listActivity(query, batchID)
}

func (r *ReportRepo) listActivity(query string, args ...any) ([]repository.ActivityResult, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list activity: %w", err)
	}
	defer rows.Close()
	var list []repository.ActivityResult
	for rows.Next() {
		var res repository.ActivityResult
		if err := rows.Scan(&res.EntryID, &res.BatchID, &res.ItemID, &res.SKU, &res.ItemName,
			&res.Warehouse, &res.Type, &res.QtyBefore, &res.QtyChange, &res.QtyAfter,
			&res.UserName, &res.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		list = append(list, res)
	}
	return list, rows.Err()
}
