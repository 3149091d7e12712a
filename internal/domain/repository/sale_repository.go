package repository

import "github.com/forddyce/stock-ac-sub001/internal/domain/entity"

// SaleRepository define el puerto de persistencia para ventas (cabecera + líneas).
type SaleRepository interface {
	Create(sale *entity.Sale) error
	CreateItem(item *entity.SaleItem) error
	GetByID(id string) (*entity.Sale, error)
	ListItems(saleID string) ([]*entity.SaleItem, error)
	List(limit, offset int) ([]*entity.Sale, error)
	UpdateStatus(id string, status entity.TransactionStatus) error
}
