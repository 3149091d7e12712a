package repository

import "github.com/forddyce/stock-ac-sub001/internal/domain/entity"

// ItemRepository define el puerto de persistencia para ítems del catálogo (DIP).
type ItemRepository interface {
	Create(item *entity.Item) error
	GetByID(id string) (*entity.Item, error)
	GetBySKU(sku string) (*entity.Item, error)
	Update(item *entity.Item) error
	List(limit, offset int) ([]*entity.Item, error)
	Delete(id string) error
}
