package repository

import "github.com/forddyce/stock-ac-sub001/internal/domain/entity"

// TransactionKeyRepository mapea (kind, llave de idempotencia) → ID de cabecera.
// Tabla única con discriminador de kind y UNIQUE(kind, key): una compra y una
// venta pueden reusar el mismo valor literal de llave sin colisionar.
type TransactionKeyRepository interface {
	// Get devuelve el ID de la transacción que consumió la llave, o "" si está libre.
	Get(kind entity.TransactionKind, key string) (string, error)
	// Create consume la llave; domain.ErrDuplicate si ya estaba consumida.
	Create(kind entity.TransactionKind, key, transactionID string) error
}
