package repository

import "github.com/forddyce/stock-ac-sub001/internal/domain/entity"

// PurchaseRepository define el puerto de persistencia para compras (cabecera + líneas).
type PurchaseRepository interface {
	Create(purchase *entity.Purchase) error
	CreateItem(item *entity.PurchaseItem) error
	GetByID(id string) (*entity.Purchase, error)
	ListItems(purchaseID string) ([]*entity.PurchaseItem, error)
	List(limit, offset int) ([]*entity.Purchase, error)
	// UpdateStatus solo aplica si el estado actual es un origen válido de la
	// transición; en caso contrario devuelve ErrInvalidTransition.
	UpdateStatus(id string, status entity.TransactionStatus) error
}
