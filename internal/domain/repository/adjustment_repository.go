package repository

import "github.com/forddyce/stock-ac-sub001/internal/domain/entity"

// AdjustmentRepository define el puerto de persistencia para ajustes manuales de stock.
type AdjustmentRepository interface {
	Create(adjustment *entity.StockAdjustment) error
	GetByID(id string) (*entity.StockAdjustment, error)
	List(limit, offset int) ([]*entity.StockAdjustment, error)
	UpdateStatus(id string, status entity.TransactionStatus) error
}
