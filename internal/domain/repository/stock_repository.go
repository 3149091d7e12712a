package repository

import "github.com/forddyce/stock-ac-sub001/internal/domain/entity"

// StockRepository define el puerto para consultar/actualizar el saldo de stock
// por ítem+bodega. Una fila inexistente se lee como cantidad 0.
type StockRepository interface {
	Get(itemID, warehouseID string) (*entity.StockBalance, error)
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE); obligatorio
	// dentro de los procesadores para evitar lost updates entre requests concurrentes.
	GetForUpdate(itemID, warehouseID string) (*entity.StockBalance, error)
	Upsert(balance *entity.StockBalance) error
	ListByItem(itemID string) ([]*entity.StockBalance, error)
}
