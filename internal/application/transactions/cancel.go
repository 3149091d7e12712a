package transactions

import (
	"github.com/forddyce/stock-ac-sub001/internal/domain"
	"github.com/forddyce/stock-ac-sub001/internal/domain/entity"
	"github.com/forddyce/stock-ac-sub001/internal/domain/repository"
)

// CancelUseCase marca cabeceras como cancelled. Es un cambio de estado puro:
// no revierte stock ni toca el ledger (lo ya aplicado queda auditado).
// Solo pending y partial admiten cancelación; complete y cancelled son
// terminales. La lectura previa da el 404/409 temprano; contra escrituras
// concurrentes manda el UPDATE condicionado del repositorio, que vuelve a
// validar la transición fila en mano.
type CancelUseCase struct {
	purchaseRepo   repository.PurchaseRepository
	saleRepo       repository.SaleRepository
	transferRepo   repository.TransferRepository
	adjustmentRepo repository.AdjustmentRepository
}

// NewCancelUseCase construye el caso de uso.
func NewCancelUseCase(
	purchaseRepo repository.PurchaseRepository,
	saleRepo repository.SaleRepository,
	transferRepo repository.TransferRepository,
	adjustmentRepo repository.AdjustmentRepository,
) *CancelUseCase {
	return &CancelUseCase{
		purchaseRepo:   purchaseRepo,
		saleRepo:       saleRepo,
		transferRepo:   transferRepo,
		adjustmentRepo: adjustmentRepo,
	}
}

// CancelPurchase cancela una compra si su estado lo permite.
func (uc *CancelUseCase) CancelPurchase(id string) error {
	purchase, err := uc.purchaseRepo.GetByID(id)
	if err != nil {
		return err
	}
	if purchase == nil {
		return domain.ErrNotFound
	}
	if !purchase.Status.CanTransition(entity.StatusCancelled) {
		return domain.ErrInvalidTransition
	}
	return uc.purchaseRepo.UpdateStatus(id, entity.StatusCancelled)
}

// CancelSale cancela una venta si su estado lo permite.
func (uc *CancelUseCase) CancelSale(id string) error {
	sale, err := uc.saleRepo.GetByID(id)
	if err != nil {
		return err
	}
	if sale == nil {
		return domain.ErrNotFound
	}
	if !sale.Status.CanTransition(entity.StatusCancelled) {
		return domain.ErrInvalidTransition
	}
	return uc.saleRepo.UpdateStatus(id, entity.StatusCancelled)
}

// CancelTransfer cancela un traslado si su estado lo permite.
// Los traslados se crean complete, así que en la práctica solo aplica a
// cabeceras aún no procesadas.
func (uc *CancelUseCase) CancelTransfer(id string) error {
	transfer, err := uc.transferRepo.GetByID(id)
	if err != nil {
		return err
	}
	if transfer == nil {
		return domain.ErrNotFound
	}
	if !transfer.Status.CanTransition(entity.StatusCancelled) {
		return domain.ErrInvalidTransition
	}
	return uc.transferRepo.UpdateStatus(id, entity.StatusCancelled)
}

// CancelAdjustment cancela un ajuste si su estado lo permite.
func (uc *CancelUseCase) CancelAdjustment(id string) error {
	adjustment, err := uc.adjustmentRepo.GetByID(id)
	if err != nil {
		return err
	}
	if adjustment == nil {
		return domain.ErrNotFound
	}
	if !adjustment.Status.CanTransition(entity.StatusCancelled) {
		return domain.ErrInvalidTransition
	}
	return uc.adjustmentRepo.UpdateStatus(id, entity.StatusCancelled)
}
