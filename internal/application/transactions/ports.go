package transactions

import (
	"context"

	"github.com/forddyce/stock-ac-sub001/internal/domain/repository"
)

// TxRepos agrupa los repositorios atados a una misma transacción de BD.
// Todos comparten la tx subyacente: lo que se escriba a través de ellos
// se confirma o se revierte en bloque.
type TxRepos interface {
	Stock() repository.StockRepository
	Ledger() repository.LedgerRepository
	Keys() repository.TransactionKeyRepository
	Purchases() repository.PurchaseRepository
	Sales() repository.SaleRepository
	Transfers() repository.TransferRepository
	Adjustments() repository.AdjustmentRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Si fn devuelve error se hace Rollback:
// ni saldo, ni ledger, ni cabecera, ni llave de idempotencia quedan aplicados.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos TxRepos) error) error
}
