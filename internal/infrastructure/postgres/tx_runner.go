package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/forddyce/stock-ac-sub001/internal/application/transactions"
	"github.com/forddyce/stock-ac-sub001/internal/domain/repository"
)

// Ensure TxRunner implements transactions.TxRunner.
var _ transactions.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(repos transactions.TxRepos) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(&txRepos{q: tx}); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// txRepos agrupa los repos construidos sobre la misma tx (Querier).
type txRepos struct {
	q Querier
}

func (t *txRepos) Stock() repository.StockRepository {
	return NewStockRepository(t.q)
}

func (t *txRepos) Ledger() repository.LedgerRepository {
	return NewLedgerRepository(t.q)
}

func (t *txRepos) Keys() repository.TransactionKeyRepository {
	return NewTransactionKeyRepository(t.q)
}

func (t *txRepos) Purchases() repository.PurchaseRepository {
	return NewPurchaseRepository(t.q)
}

func (t *txRepos) Sales() repository.SaleRepository {
	return NewSaleRepository(t.q)
}

func (t *txRepos) Transfers() repository.TransferRepository {
	return NewTransferRepository(t.q)
}

func (t *txRepos) Adjustments() repository.AdjustmentRepository {
	return NewAdjustmentRepository(t.q)
}
