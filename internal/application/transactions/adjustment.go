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

// AdjustmentInput entrada del procesador de ajustes manuales (mono-ítem).
// Qty siempre positiva; Type (add|subtract) determina el signo del delta.
type AdjustmentInput struct {
	ItemID         string
	WarehouseID    string
	Type           string
	Qty            decimal.Decimal
	IdempotencyKey string
	Notes          string
	UserID         string
}

// AdjustmentResult cabecera creada (o reenviada).
type AdjustmentResult struct {
	Adjustment       *entity.StockAdjustment
	BatchID          string
	AlreadyProcessed bool
}

// AdjustUseCase procesa ajustes manuales de stock (conteo físico, merma).
// Un subtract nunca deja el saldo negativo: puede llevarlo a cero, pero si
// no alcanza se rechaza completo con ErrInsufficientStock.
type AdjustUseCase struct {
	txRunner       TxRunner
	guard          *Guard
	warehouseRepo  repository.WarehouseRepository
	itemRepo       repository.ItemRepository
	adjustmentRepo repository.AdjustmentRepository
}

// NewAdjustUseCase construye el caso de uso.
func NewAdjustUseCase(
	txRunner TxRunner,
	guard *Guard,
	warehouseRepo repository.WarehouseRepository,
	itemRepo repository.ItemRepository,
	adjustmentRepo repository.AdjustmentRepository,
) *AdjustUseCase {
	return &AdjustUseCase{
		txRunner:       txRunner,
		guard:          guard,
		warehouseRepo:  warehouseRepo,
		itemRepo:       itemRepo,
		adjustmentRepo: adjustmentRepo,
	}
}

// Adjust procesa un ajuste. En replay (misma llave) devuelve el resultado
// original sin volver a tocar el stock.
func (uc *AdjustUseCase) Adjust(ctx context.Context, input AdjustmentInput) (*AdjustmentResult, error) {
	if input.ItemID == "" || input.WarehouseID == "" || !input.Qty.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if input.Type != entity.AdjustmentAdd && input.Type != entity.AdjustmentSubtract {
		return nil, domain.ErrInvalidInput
	}

	if existingID, err := uc.guard.Find(entity.KindAdjustment, input.IdempotencyKey); err != nil {
		return nil, err
	} else if existingID != "" {
		return uc.loadResult(existingID, true)
	}

	warehouse, err := uc.warehouseRepo.GetByID(input.WarehouseID)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
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
	adjustmentID := uuid.New().String()
	delta := input.Qty
	if input.Type == entity.AdjustmentSubtract {
		delta = input.Qty.Neg()
	}

	var batchID string
	err = uc.txRunner.Run(ctx, func(repos TxRepos) error {
		rec := ledger.NewRecorder(repos.Ledger(), input.UserID)
		batchID = rec.BatchID()

		balance, err := repos.Stock().GetForUpdate(input.ItemID, input.WarehouseID)
		if err != nil {
			return err
		}
		before := balance.Quantity
		after := before.Add(delta)
		if after.LessThan(decimal.Zero) {
			return domain.ErrInsufficientStock
		}
		balance.Quantity = after
		balance.UpdatedAt = now
		if err := repos.Stock().Upsert(balance); err != nil {
			return err
		}
		if _, err := rec.Record(input.ItemID, input.WarehouseID, entity.LedgerTypeAdjustment,
			adjustmentID, before, delta, input.Notes); err != nil {
			return err
		}

		adjustment := &entity.StockAdjustment{
			ID:             adjustmentID,
			ItemID:         input.ItemID,
			WarehouseID:    input.WarehouseID,
			Type:           input.Type,
			Qty:            input.Qty,
			Status:         entity.StatusComplete,
			BatchID:        batchID,
			IdempotencyKey: input.IdempotencyKey,
			Notes:          input.Notes,
			ProcessedAt:    &now,
			CreatedBy:      input.UserID,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := repos.Adjustments().Create(adjustment); err != nil {
			return err
		}
		if input.IdempotencyKey != "" {
			return repos.Keys().Create(entity.KindAdjustment, input.IdempotencyKey, adjustmentID)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			if existingID, gerr := uc.guard.Find(entity.KindAdjustment, input.IdempotencyKey); gerr == nil && existingID != "" {
				return uc.loadResult(existingID, true)
			}
		}
		return nil, err
	}

	return uc.loadResult(adjustmentID, false)
}

// Load devuelve un ajuste ya procesado.
func (uc *AdjustUseCase) Load(id string) (*AdjustmentResult, error) {
	return uc.loadResult(id, false)
}

// List lista ajustes paginados.
func (uc *AdjustUseCase) List(limit, offset int) ([]*entity.StockAdjustment, error) {
	return uc.adjustmentRepo.List(limit, offset)
}

func (uc *AdjustUseCase) loadResult(id string, replay bool) (*AdjustmentResult, error) {
	adjustment, err := uc.adjustmentRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if adjustment == nil {
		return nil, domain.ErrNotFound
	}
	// El batch sale de la cabecera persistida: replay y primera llamada
	// devuelven exactamente la misma respuesta.
	return &AdjustmentResult{Adjustment: adjustment, BatchID: adjustment.BatchID, AlreadyProcessed: replay}, nil
}
