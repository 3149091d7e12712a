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

var _ repository.TransactionKeyRepository = (*TransactionKeyRepo)(nil)

// TransactionKeyRepo tabla única de llaves de idempotencia con discriminador
// de kind y UNIQUE(kind, key). El insert compite a nivel de constraint: entre
// dos requests concurrentes con la misma llave solo uno gana el commit.
type TransactionKeyRepo struct {
	q Querier
}

// NewTransactionKeyRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransactionKeyRepository(q Querier) *TransactionKeyRepo {
	return &TransactionKeyRepo{q: q}
}

// Get devuelve el ID de la transacción que consumió la llave, o "" si está libre.
func (r *TransactionKeyRepo) Get(kind entity.TransactionKind, key string) (string, error) {
	query := `
		SELECT transaction_id FROM transaction_keys
		WHERE kind = $1 AND key = $2`
	var transactionID string
	err := r.q.QueryRow(context.Background(), query, string(kind), key).Scan(&transactionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("get transaction key: %w", err)
	}
	return transactionID, nil
}

// Create consume la llave. Devuelve domain.ErrDuplicate si ya estaba consumida.
func (r *TransactionKeyRepo) Create(kind entity.TransactionKind, key, transactionID string) error {
	query := `
		INSERT INTO transaction_keys (kind, key, transaction_id, created_at)
		VALUES ($1, $2, $3, now())`
	_, err := r.q.Exec(context.Background(), query, string(kind), key, transactionID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create transaction key: %w", err)
	}
	return nil
}
