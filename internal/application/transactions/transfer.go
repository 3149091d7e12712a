package transactions

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/forddyce/stock-ac-sub001/internal/domain"
	"github.com/forddyce/stock-ac-sub001/internal/domain/entity"
	"github.com/forddyce/stock-ac-sub001/internal/domain/ledger"
	"github.com/forddyce/stock-ac-sub001/internal/domain/repository"
)

// TransferInput entrada del procesador de traslados (mono-ítem).
type TransferInput struct {
	ItemID          string
	FromWarehouseID string
	ToWarehouseID   string
	Qty             decimal.Decimal
	IdempotencyKey  string
	Notes           string
	UserID          string
}

// TransferResult cabecera creada (o reenviada).
type TransferResult struct {
	Transfer         *entity.Transfer
	BatchID          string
	AlreadyProcessed bool
}

// TransferUseCase procesa traslados entre bodegas: resta en origen y suma en
// destino dentro de una misma transacción, con dos entradas de ledger
// (transfer_out y transfer_in) bajo un mismo batch. Si cualquier paso falla,
// nada queda aplicado: no existe transfer_out sin su transfer_in.
type TransferUseCase struct {
	txRunner      TxRunner
	guard         *Guard
	warehouseRepo repository.WarehouseRepository
	itemRepo      repository.ItemRepository
	transferRepo  repository.TransferRepository
}

// NewTransferUseCase construye el caso de uso.
func NewTransferUseCase(
	txRunner TxRunner,
	guard *Guard,
	warehouseRepo repository.WarehouseRepository,
	itemRepo repository.ItemRepository,
	transferRepo repository.TransferRepository,
) *TransferUseCase {
	return &TransferUseCase{
		txRunner:      txRunner,
		guard:         guard,
		warehouseRepo: warehouseRepo,
		itemRepo:      itemRepo,
		transferRepo:  transferRepo,
	}
}

// Transfer procesa un traslado. En replay (misma llave) devuelve el resultado
// original sin volver a mover stock.
func (uc *TransferUseCase) Transfer(ctx context.Context, input TransferInput) (*TransferResult, error) {
	if input.ItemID == "" || input.FromWarehouseID == "" || input.ToWarehouseID == "" {
		return nil, domain.ErrInvalidInput
	}
	if input.FromWarehouseID == input.ToWarehouseID || !input.Qty.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	if existingID, err := uc.guard.Find(entity.KindTransfer, input.IdempotencyKey); err != nil {
		return nil, err
	} else if existingID != "" {
		return uc.loadResult(existingID, true)
	}

	// Origen, destino e ítem deben existir antes de mutar nada: si el destino
	// no existe, el saldo y el ledger del origen quedan intactos.
	fromWh, err := uc.warehouseRepo.GetByID(input.FromWarehouseID)
	if err != nil {
		return nil, err
	}
	toWh, err := uc.warehouseRepo.GetByID(input.ToWarehouseID)
	if err != nil {
		return nil, err
	}
	if fromWh == nil || toWh == nil {
		return nil, domain.ErrNotFound
	}
	item, err := uc.itemRepo.GetByID(input.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	transferID := uuid.New().String()

	var batchID string
	err = uc.txRunner.Run(ctx, func(repos TxRepos) error {
		rec := ledger.NewRecorder(repos.Ledger(), input.UserID)
		batchID = rec.BatchID()

		// Ambas filas de saldo se bloquean (SELECT FOR UPDATE): la resta en
		// origen y la suma en destino son lecturas-modificaciones que no pueden
		// perder escrituras concurrentes. Orden fijo origen → destino para
		// acotar el riesgo de deadlock.
		origin, err := repos.Stock().GetForUpdate(input.ItemID, input.FromWarehouseID)
		if err != nil {
			return err
		}
		if origin.Quantity.LessThan(input.Qty) {
			return domain.ErrInsufficientStock
		}
		dest, err := repos.Stock().GetForUpdate(input.ItemID, input.ToWarehouseID)
		if err != nil {
			return err
		}

		originBefore := origin.Quantity
		destBefore := dest.Quantity
		origin.Quantity = originBefore.Sub(input.Qty)
		dest.Quantity = destBefore.Add(input.Qty)
		origin.UpdatedAt = now
		dest.UpdatedAt = now
		if err := repos.Stock().Upsert(origin); err != nil {
			return err
		}
		if err := repos.Stock().Upsert(dest); err != nil {
			return err
		}

		if _, err := rec.Record(input.ItemID, input.FromWarehouseID, entity.LedgerTypeTransferOut,
			transferID, originBefore, input.Qty.Neg(), input.Notes); err != nil {
			return err
		}
		if _, err := rec.Record(input.ItemID, input.ToWarehouseID, entity.LedgerTypeTransferIn,
			transferID, destBefore, input.Qty, input.Notes); err != nil {
			return err
		}

		transfer := &entity.Transfer{
			ID:              transferID,
			ItemID:          input.ItemID,
			FromWarehouseID: input.FromWarehouseID,
			ToWarehouseID:   input.ToWarehouseID,
			QtySent:         input.Qty,
			QtyReceived:     input.Qty,
			Status:          entity.StatusComplete,
			BatchID:         batchID,
			IdempotencyKey:  input.IdempotencyKey,
			Notes:           input.Notes,
			ProcessedAt:     &now,
			CreatedBy:       input.UserID,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if err := repos.Transfers().Create(transfer); err != nil {
			return err
		}
		if input.IdempotencyKey != "" {
			return repos.Keys().Create(entity.KindTransfer, input.IdempotencyKey, transferID)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			if existingID, gerr := uc.guard.Find(entity.KindTransfer, input.IdempotencyKey); gerr == nil && existingID != "" {
				return uc.loadResult(existingID, true)
			}
		}
		return nil, err
	}

	return uc.loadResult(transferID, false)
}

// Load devuelve un traslado ya procesado.
func (uc *TransferUseCase) Load(id string) (*TransferResult, error) {
	return uc.loadResult(id, false)
}

// List lista traslados paginados.
func (uc *TransferUseCase) List(limit, offset int) ([]*entity.Transfer, error) {
	return uc.transferRepo.List(limit, offset)
}

func (uc *TransferUseCase) loadResult(id string, replay bool) (*TransferResult, error) {
	transfer, err := uc.transferRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if transfer == nil {
		return nil, domain.ErrNotFound
	}
	// El batch viene de la cabecera persistida para que un replay devuelva
	// exactamente la misma respuesta que la primera llamada.
	return &TransferResult{Transfer: transfer, BatchID: transfer.BatchID, AlreadyProcessed: replay}, nil
}
