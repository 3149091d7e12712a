package repository

import "github.com/forddyce/stock-ac-sub001/internal/domain/entity"

// TransferRepository define el puerto de persistencia para traslados entre bodegas.
type TransferRepository interface {
	Create(transfer *entity.Transfer) error
	GetByID(id string) (*entity.Transfer, error)
	List(limit, offset int) ([]*entity.Transfer, error)
	UpdateStatus(id string, status entity.TransactionStatus) error
}
