package transactions

import (
	"github.com/forddyce/stock-ac-sub001/internal/domain/entity"
	"github.com/forddyce/stock-ac-sub001/internal/domain/repository"
)

// Guard deduplica requests de creación de transacciones por llave de
// idempotencia. Las llaves se scopean por kind: una compra y una venta
// pueden reusar el mismo valor literal sin colisionar.
//
// Sin llave no hay deduplicación: envíos duplicados sin llave crean
// transacciones independientes (limitación documentada, no un bug).
type Guard struct {
	keys repository.TransactionKeyRepository
}

// NewGuard construye el guard sobre el repositorio de llaves.
func NewGuard(keys repository.TransactionKeyRepository) *Guard {
	return &Guard{keys: keys}
}

// Find devuelve el ID de la transacción que ya consumió (kind, key),
// o "" si la llave está libre o no se suministró.
func (g *Guard) Find(kind entity.TransactionKind, key string) (string, error) {
	if key == "" {
		return "", nil
	}
	return g.keys.Get(kind, key)
}
