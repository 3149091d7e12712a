package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/forddyce/stock-ac-sub001/internal/domain/entity"
	"github.com/forddyce/stock-ac-sub001/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Get obtiene el saldo actual de un ítem en una bodega.
// Una fila inexistente se lee como cantidad 0 (no error).
func (r *StockRepo) Get(itemID, warehouseID string) (*entity.StockBalance, error) {
	query := `
		SELECT item_id, warehouse_id, quantity, updated_at
		FROM stock_balances WHERE item_id = $1 AND warehouse_id = $2`
	var s entity.StockBalance
	err := r.q.QueryRow(context.Background(), query, itemID, warehouseID).Scan(
		&s.ItemID, &s.WarehouseID, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.StockBalance{ItemID: itemID, WarehouseID: warehouseID, Quantity: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}

// GetForUpdate obtiene el saldo y bloquea la fila (SELECT FOR UPDATE). Si la
// fila no existe todavía, la materializa en cero y la bloquea: sin fila no hay
// lock, y dos primeros movimientos concurrentes del mismo (ítem, bodega)
// leerían ambos cantidad 0 y uno pisaría al otro.
func (r *StockRepo) GetForUpdate(itemID, warehouseID string) (*entity.StockBalance, error) {
	query := `
		SELECT item_id, warehouse_id, quantity, updated_at
		FROM stock_balances WHERE item_id = $1 AND warehouse_id = $2
		FOR UPDATE`
	var s entity.StockBalance
	err := r.q.QueryRow(context.Background(), query, itemID, warehouseID).Scan(
		&s.ItemID, &s.WarehouseID, &s.Quantity, &s.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		seed := `
			INSERT INTO stock_balances (item_id, warehouse_id, quantity, updated_at)
			VALUES ($1, $2, 0, now())
			ON CONFLICT (item_id, warehouse_id) DO NOTHING`
		if _, serr := r.q.Exec(context.Background(), seed, itemID, warehouseID); serr != nil {
			return nil, fmt.Errorf("seed stock row: %w", serr)
		}
		// Relee con lock; la fila ya existe sea quien sea que la insertó.
		err = r.q.QueryRow(context.Background(), query, itemID, warehouseID).Scan(
			&s.ItemID, &s.WarehouseID, &s.Quantity, &s.UpdatedAt,
		)
	}
	if err != nil {
		return nil, fmt.Errorf("get stock for update: %w", err)
	}
	return &s, nil
}

// Upsert inserta o actualiza la cantidad en stock (por ítem y bodega).
func (r *StockRepo) Upsert(balance *entity.StockBalance) error {
	query := `
		INSERT INTO stock_balances (item_id, warehouse_id, quantity, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (item_id, warehouse_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query, balance.ItemID, balance.WarehouseID, balance.Quantity)
	if err != nil {
		return fmt.Errorf("upsert stock: %w", err)
	}
	return nil
}

// ListByItem lista los saldos de un ítem en todas las bodegas donde ha tenido movimiento.
func (r *StockRepo) ListByItem(itemID string) ([]*entity.StockBalance, error) {
	query := `
		SELECT item_id, warehouse_id, quantity, updated_at
		FROM stock_balances WHERE item_id = $1
		ORDER BY warehouse_id`
	rows, err := r.q.Query(context.Background(), query, itemID)
	if err != nil {
		return nil, fmt.Errorf("list stock by item: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockBalance
	for rows.Next() {
		var s entity.StockBalance
		if err := rows.Scan(&s.ItemID, &s.WarehouseID, &s.Quantity, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
