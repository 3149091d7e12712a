package transactions_test

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/forddyce/stock-ac-sub001/internal/application/transactions"
	"github.com/forddyce/stock-ac-sub001/internal/domain"
	"github.com/forddyce/stock-ac-sub001/internal/domain/entity"
	"github.com/forddyce/stock-ac-sub001/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles en memoria de los puertos de persistencia. El memTxRunner simula el
// Commit/Rollback real: toma un snapshot del store antes de fn y lo restaura
// si fn falla, así los tests de atomicidad ven el mismo comportamiento que
// una transacción de PostgreSQL.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	stock         map[string]entity.StockBalance // "item|bodega"
	locked        map[string]bool                // filas de stock leídas con lock en la tx en curso
	lockLog       []string                       // historial de locks tomados (para asertos)
	ledger        []entity.LedgerEntry
	keys          map[string]string // "kind|llave" → transactionID
	purchases     map[string]entity.Purchase
	purchaseItems map[string][]entity.PurchaseItem
	sales         map[string]entity.Sale
	saleItems     map[string][]entity.SaleItem
	transfers     map[string]entity.Transfer
	adjustments   map[string]entity.StockAdjustment
	items         map[string]entity.Item
	warehouses    map[string]entity.Warehouse
	suppliers     map[string]entity.Supplier
	customers     map[string]entity.Customer
}

func newMemStore() *memStore {
	return &memStore{
		stock:         map[string]entity.StockBalance{},
		locked:        map[string]bool{},
		keys:          map[string]string{},
		purchases:     map[string]entity.Purchase{},
		purchaseItems: map[string][]entity.PurchaseItem{},
		sales:         map[string]entity.Sale{},
		saleItems:     map[string][]entity.SaleItem{},
		transfers:     map[string]entity.Transfer{},
		adjustments:   map[string]entity.StockAdjustment{},
		items:         map[string]entity.Item{},
		warehouses:    map[string]entity.Warehouse{},
		suppliers:     map[string]entity.Supplier{},
		customers:     map[string]entity.Customer{},
	}
}

func stockKey(itemID, warehouseID string) string { return itemID + "|" + warehouseID }
func keyKey(kind entity.TransactionKind, key string) string { return string(kind) + "|" + key }

func (s *memStore) clone() *memStore {
	c := newMemStore()
	for k, v := range s.stock {
		c.stock[k] = v
	}
	for k, v := range s.locked {
		c.locked[k] = v
	}
	c.lockLog = append([]string(nil), s.lockLog...)
	c.ledger = append([]entity.LedgerEntry(nil), s.ledger...)
	for k, v := range s.keys {
		c.keys[k] = v
	}
	for k, v := range s.purchases {
		c.purchases[k] = v
	}
	for k, v := range s.purchaseItems {
		c.purchaseItems[k] = append([]entity.PurchaseItem(nil), v...)
	}
	for k, v := range s.sales {
		c.sales[k] = v
	}
	for k, v := range s.saleItems {
		c.saleItems[k] = append([]entity.SaleItem(nil), v...)
	}
	for k, v := range s.transfers {
		c.transfers[k] = v
	}
	for k, v := range s.adjustments {
		c.adjustments[k] = v
	}
	for k, v := range s.items {
		c.items[k] = v
	}
	for k, v := range s.warehouses {
		c.warehouses[k] = v
	}
	for k, v := range s.suppliers {
		c.suppliers[k] = v
	}
	for k, v := range s.customers {
		c.customers[k] = v
	}
	return c
}

// ── Stock ─────────────────────────────────────────────────────────────────────

type memStockRepo struct{ s *memStore }

func (r *memStockRepo) Get(itemID, warehouseID string) (*entity.StockBalance, error) {
	if b, ok := r.s.stock[stockKey(itemID, warehouseID)]; ok {
		out := b
		return &out, nil
	}
	return &entity.StockBalance{ItemID: itemID, WarehouseID: warehouseID, Quantity: decimal.Zero}, nil
}

// GetForUpdate imita al adaptador real: materializa la fila en cero si no
// existe y la marca como bloqueada en la tx en curso.
func (r *memStockRepo) GetForUpdate(itemID, warehouseID string) (*entity.StockBalance, error) {
	k := stockKey(itemID, warehouseID)
	if _, ok := r.s.stock[k]; !ok {
		r.s.stock[k] = entity.StockBalance{ItemID: itemID, WarehouseID: warehouseID, Quantity: decimal.Zero}
	}
	r.s.locked[k] = true
	r.s.lockLog = append(r.s.lockLog, k)
	b := r.s.stock[k]
	return &b, nil
}

// Upsert rechaza escrituras sobre filas no bloqueadas previamente con
// GetForUpdate: una lectura sin lock seguida de escritura absoluta es
// exactamente la carrera que pierde actualizaciones en PostgreSQL.
func (r *memStockRepo) Upsert(balance *entity.StockBalance) error {
	k := stockKey(balance.ItemID, balance.WarehouseID)
	if !r.s.locked[k] {
		return fmt.Errorf("escritura de saldo %s sin lock previo", k)
	}
	r.s.stock[k] = *balance
	return nil
}

func (r *memStockRepo) ListByItem(itemID string) ([]*entity.StockBalance, error) {
	var out []*entity.StockBalance
	for _, b := range r.s.stock {
		if b.ItemID == itemID {
			c := b
			out = append(out, &c)
		}
	}
	return out, nil
}

// ── Ledger ────────────────────────────────────────────────────────────────────

type memLedgerRepo struct{ s *memStore }

func (r *memLedgerRepo) Create(entry *entity.LedgerEntry) error {
	r.s.ledger = append(r.s.ledger, *entry)
	return nil
}

func (r *memLedgerRepo) ListByItemWarehouse(itemID, warehouseID string, _, _ *time.Time, limit, offset int) ([]*entity.LedgerEntry, error) {
	var out []*entity.LedgerEntry
	for i := range r.s.ledger {
		e := r.s.ledger[i]
		if e.ItemID == itemID && e.WarehouseID == warehouseID {
			c := e
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *memLedgerRepo) ListByBatch(batchID string) ([]*entity.LedgerEntry, error) {
	var out []*entity.LedgerEntry
	for i := range r.s.ledger {
		if r.s.ledger[i].BatchID == batchID {
			c := r.s.ledger[i]
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *memLedgerRepo) ListRecent(limit int) ([]*entity.LedgerEntry, error) {
	var out []*entity.LedgerEntry
	for i := len(r.s.ledger) - 1; i >= 0 && len(out) < limit; i-- {
		c := r.s.ledger[i]
		out = append(out, &c)
	}
	return out, nil
}

// ── Llaves de idempotencia ────────────────────────────────────────────────────

type memKeyRepo struct{ s *memStore }

func (r *memKeyRepo) Get(kind entity.TransactionKind, key string) (string, error) {
	return r.s.keys[keyKey(kind, key)], nil
}

func (r *memKeyRepo) Create(kind entity.TransactionKind, key, transactionID string) error {
	k := keyKey(kind, key)
	if _, ok := r.s.keys[k]; ok {
		return domain.ErrDuplicate
	}
	r.s.keys[k] = transactionID
	return nil
}

// ── Cabeceras ─────────────────────────────────────────────────────────────────

type memPurchaseRepo struct{ s *memStore }

func (r *memPurchaseRepo) Create(p *entity.Purchase) error {
	r.s.purchases[p.ID] = *p
	return nil
}

func (r *memPurchaseRepo) CreateItem(it *entity.PurchaseItem) error {
	r.s.purchaseItems[it.PurchaseID] = append(r.s.purchaseItems[it.PurchaseID], *it)
	return nil
}

func (r *memPurchaseRepo) GetByID(id string) (*entity.Purchase, error) {
	if p, ok := r.s.purchases[id]; ok {
		c := p
		return &c, nil
	}
	return nil, nil
}

func (r *memPurchaseRepo) ListItems(purchaseID string) ([]*entity.PurchaseItem, error) {
	var out []*entity.PurchaseItem
	for _, it := range r.s.purchaseItems[purchaseID] {
		c := it
		out = append(out, &c)
	}
	return out, nil
}

func (r *memPurchaseRepo) List(limit, offset int) ([]*entity.Purchase, error) { return nil, nil }

func (r *memPurchaseRepo) UpdateStatus(id string, status entity.TransactionStatus) error {
	p := r.s.purchases[id]
	if !p.Status.CanTransition(status) {
		return domain.ErrInvalidTransition
	}
	p.Status = status
	r.s.purchases[id] = p
	return nil
}

type memSaleRepo struct{ s *memStore }

func (r *memSaleRepo) Create(sale *entity.Sale) error {
	r.s.sales[sale.ID] = *sale
	return nil
}

func (r *memSaleRepo) CreateItem(it *entity.SaleItem) error {
	r.s.saleItems[it.SaleID] = append(r.s.saleItems[it.SaleID], *it)
	return nil
}

func (r *memSaleRepo) GetByID(id string) (*entity.Sale, error) {
	if s, ok := r.s.sales[id]; ok {
		c := s
		return &c, nil
	}
	return nil, nil
}

func (r *memSaleRepo) ListItems(saleID string) ([]*entity.SaleItem, error) {
	var out []*entity.SaleItem
	for _, it := range r.s.saleItems[saleID] {
		c := it
		out = append(out, &c)
	}
	return out, nil
}

func (r *memSaleRepo) List(limit, offset int) ([]*entity.Sale, error) { return nil, nil }

func (r *memSaleRepo) UpdateStatus(id string, status entity.TransactionStatus) error {
	s := r.s.sales[id]
	if !s.Status.CanTransition(status) {
		return domain.ErrInvalidTransition
	}
	s.Status = status
	r.s.sales[id] = s
	return nil
}

type memTransferRepo struct{ s *memStore }

func (r *memTransferRepo) Create(t *entity.Transfer) error {
	r.s.transfers[t.ID] = *t
	return nil
}

func (r *memTransferRepo) GetByID(id string) (*entity.Transfer, error) {
	if t, ok := r.s.transfers[id]; ok {
		c := t
		return &c, nil
	}
	return nil, nil
}

func (r *memTransferRepo) List(limit, offset int) ([]*entity.Transfer, error) { return nil, nil }

func (r *memTransferRepo) UpdateStatus(id string, status entity.TransactionStatus) error {
	t := r.s.transfers[id]
	if !t.Status.CanTransition(status) {
		return domain.ErrInvalidTransition
	}
	t.Status = status
	r.s.transfers[id] = t
	return nil
}

type memAdjustmentRepo struct{ s *memStore }

func (r *memAdjustmentRepo) Create(a *entity.StockAdjustment) error {
	r.s.adjustments[a.ID] = *a
	return nil
}

func (r *memAdjustmentRepo) GetByID(id string) (*entity.StockAdjustment, error) {
	if a, ok := r.s.adjustments[id]; ok {
		c := a
		return &c, nil
	}
	return nil, nil
}

func (r *memAdjustmentRepo) List(limit, offset int) ([]*entity.StockAdjustment, error) { return nil, nil }

func (r *memAdjustmentRepo) UpdateStatus(id string, status entity.TransactionStatus) error {
	a := r.s.adjustments[id]
	if !a.Status.CanTransition(status) {
		return domain.ErrInvalidTransition
	}
	a.Status = status
	r.s.adjustments[id] = a
	return nil
}

// ── Catálogo ──────────────────────────────────────────────────────────────────

type memItemRepo struct{ s *memStore }

func (r *memItemRepo) Create(it *entity.Item) error { r.s.items[it.ID] = *it; return nil }
func (r *memItemRepo) GetByID(id string) (*entity.Item, error) {
	if it, ok := r.s.items[id]; ok {
		c := it
		return &c, nil
	}
	return nil, nil
}
func (r *memItemRepo) GetBySKU(sku string) (*entity.Item, error) {
	for _, it := range r.s.items {
		if it.SKU == sku {
			c := it
			return &c, nil
		}
	}
	return nil, nil
}
func (r *memItemRepo) Update(it *entity.Item) error                 { r.s.items[it.ID] = *it; return nil }
func (r *memItemRepo) List(limit, offset int) ([]*entity.Item, error) { return nil, nil }
func (r *memItemRepo) Delete(id string) error                       { delete(r.s.items, id); return nil }

type memWarehouseRepo struct{ s *memStore }

func (r *memWarehouseRepo) Create(w *entity.Warehouse) error { r.s.warehouses[w.ID] = *w; return nil }
func (r *memWarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	if w, ok := r.s.warehouses[id]; ok {
		c := w
		return &c, nil
	}
	return nil, nil
}
func (r *memWarehouseRepo) Update(w *entity.Warehouse) error { r.s.warehouses[w.ID] = *w; return nil }
func (r *memWarehouseRepo) List(limit, offset int) ([]*entity.Warehouse, error) { return nil, nil }
func (r *memWarehouseRepo) Delete(id string) error { delete(r.s.warehouses, id); return nil }

type memSupplierRepo struct{ s *memStore }

func (r *memSupplierRepo) Create(p *entity.Supplier) error { r.s.suppliers[p.ID] = *p; return nil }
func (r *memSupplierRepo) GetByID(id string) (*entity.Supplier, error) {
	if p, ok := r.s.suppliers[id]; ok {
		c := p
		return &c, nil
	}
	return nil, nil
}
func (r *memSupplierRepo) Update(p *entity.Supplier) error { r.s.suppliers[p.ID] = *p; return nil }
func (r *memSupplierRepo) List(limit, offset int) ([]*entity.Supplier, error) { return nil, nil }
func (r *memSupplierRepo) Delete(id string) error { delete(r.s.suppliers, id); return nil }

type memCustomerRepo struct{ s *memStore }

func (r *memCustomerRepo) Create(c *entity.Customer) error { r.s.customers[c.ID] = *c; return nil }
func (r *memCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	if p, ok := r.s.customers[id]; ok {
		c := p
		return &c, nil
	}
	return nil, nil
}
func (r *memCustomerRepo) Update(c *entity.Customer) error { r.s.customers[c.ID] = *c; return nil }
func (r *memCustomerRepo) List(limit, offset int) ([]*entity.Customer, error) { return nil, nil }
func (r *memCustomerRepo) Delete(id string) error { delete(r.s.customers, id); return nil }

// ── TxRunner ──────────────────────────────────────────────────────────────────

type memTxRepos struct{ s *memStore }

func (m *memTxRepos) Stock() repository.StockRepository        { return &memStockRepo{m.s} }
func (m *memTxRepos) Ledger() repository.LedgerRepository      { return &memLedgerRepo{m.s} }
func (m *memTxRepos) Keys() repository.TransactionKeyRepository { return &memKeyRepo{m.s} }
func (m *memTxRepos) Purchases() repository.PurchaseRepository { return &memPurchaseRepo{m.s} }
func (m *memTxRepos) Sales() repository.SaleRepository         { return &memSaleRepo{m.s} }
func (m *memTxRepos) Transfers() repository.TransferRepository { return &memTransferRepo{m.s} }
func (m *memTxRepos) Adjustments() repository.AdjustmentRepository {
	return &memAdjustmentRepo{m.s}
}

type memTxRunner struct{ s *memStore }

// Run simula Commit/Rollback: restaura el snapshot si fn falla. Los locks de
// stock viven solo dentro de la transacción, como en PostgreSQL.
func (r *memTxRunner) Run(_ context.Context, fn func(repos transactions.TxRepos) error) error {
	snapshot := r.s.clone()
	r.s.locked = map[string]bool{}
	if err := fn(&memTxRepos{r.s}); err != nil {
		*r.s = *snapshot
		return err
	}
	r.s.locked = map[string]bool{}
	return nil
}
