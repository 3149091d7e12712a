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

// PurchaseLineInput línea de una recepción de compra. QtyReceived puede ser
// menor que QtyOrdered (recepción parcial) o cero (pedido sin recibir).
type PurchaseLineInput struct {
	ItemID      string
	QtyOrdered  decimal.Decimal
	QtyReceived decimal.Decimal
	UnitCost    decimal.Decimal
}

// PurchaseInput entrada del procesador de compras.
type PurchaseInput struct {
	SupplierID     string
	WarehouseID    string
	IdempotencyKey string
	Notes          string
	UserID         string
	Lines          []PurchaseLineInput
}

// PurchaseResult cabecera creada (o reenviada) con sus líneas y entidades relacionadas.
// AlreadyProcessed=true indica replay: no hubo ningún efecto nuevo sobre el stock.
type PurchaseResult struct {
	Purchase         *entity.Purchase
	Items            []*entity.PurchaseItem
	Supplier         *entity.Supplier
	BatchID          string
	AlreadyProcessed bool
}

// ReceivePurchaseUseCase procesa recepciones de compra: valida referencias,
// suma stock en la bodega destino y registra una entrada de ledger por línea
// recibida, todo dentro de una transacción de BD.
type ReceivePurchaseUseCase struct {
	txRunner      TxRunner
	guard         *Guard
	supplierRepo  repository.SupplierRepository
	warehouseRepo repository.WarehouseRepository
	itemRepo      repository.ItemRepository
	purchaseRepo  repository.PurchaseRepository
}

// NewReceivePurchaseUseCase construye el caso de uso.
func NewReceivePurchaseUseCase(
	txRunner TxRunner,
	guard *Guard,
	supplierRepo repository.SupplierRepository,
	warehouseRepo repository.WarehouseRepository,
	itemRepo repository.ItemRepository,
	purchaseRepo repository.PurchaseRepository,
) *ReceivePurchaseUseCase {
	return &ReceivePurchaseUseCase{
		txRunner:      txRunner,
		guard:         guard,
		supplierRepo:  supplierRepo,
		warehouseRepo: warehouseRepo,
		itemRepo:      itemRepo,
		purchaseRepo:  purchaseRepo,
	}
}

// Receive procesa una recepción de compra. En replay (misma llave) devuelve
// el resultado original sin volver a tocar el stock.
func (uc *ReceivePurchaseUseCase) Receive(ctx context.Context, input PurchaseInput) (*PurchaseResult, error) {
	if len(input.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, line := range input.Lines {
		if line.ItemID == "" || !line.QtyOrdered.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		if line.QtyReceived.LessThan(decimal.Zero) || line.QtyReceived.GreaterThan(line.QtyOrdered) {
			return nil, domain.ErrInvalidInput
		}
		if line.UnitCost.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
	}

	// Guard de idempotencia: replay devuelve el resultado original.
	if existingID, err := uc.guard.Find(entity.KindPurchase, input.IdempotencyKey); err != nil {
		return nil, err
	} else if existingID != "" {
		return uc.loadResult(existingID, true)
	}

	// Referencias deben existir antes de mutar nada (fail-fast).
	supplier, err := uc.supplierRepo.GetByID(input.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}
	warehouse, err := uc.warehouseRepo.GetByID(input.WarehouseID)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, domain.ErrNotFound
	}
	for _, line := range input.Lines {
		item, err := uc.itemRepo.GetByID(line.ItemID)
		if err != nil {
			return nil, err
		}
		if item == nil {
			return nil, domain.ErrNotFound
		}
	}

	now := time.Now()
	purchaseID := uuid.New().String()
	status := purchaseStatus(input.Lines)

	var batchID string
	err = uc.txRunner.Run(ctx, func(repos TxRepos) error {
		rec := ledger.NewRecorder(repos.Ledger(), input.UserID)
		batchID = rec.BatchID()

		total := decimal.Zero
		for _, line := range input.Lines {
			total = total.Add(line.QtyReceived.Mul(line.UnitCost))
			if !line.QtyReceived.GreaterThan(decimal.Zero) {
				continue
			}
			// Bloquea la fila de saldo (SELECT FOR UPDATE) y aplica el delta.
			balance, err := repos.Stock().GetForUpdate(line.ItemID, input.WarehouseID)
			if err != nil {
				return err
			}
			before := balance.Quantity
			balance.Quantity = before.Add(line.QtyReceived)
			balance.UpdatedAt = now
			if err := repos.Stock().Upsert(balance); err != nil {
				return err
			}
			if _, err := rec.Record(line.ItemID, input.WarehouseID, entity.LedgerTypePurchase,
				purchaseID, before, line.QtyReceived, input.Notes); err != nil {
				return err
			}
		}

		purchase := &entity.Purchase{
			ID:             purchaseID,
			SupplierID:     input.SupplierID,
			WarehouseID:    input.WarehouseID,
			Status:         status,
			BatchID:        batchID,
			IdempotencyKey: input.IdempotencyKey,
			Notes:          input.Notes,
			Total:          total,
			ProcessedAt:    &now,
			CreatedBy:      input.UserID,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := repos.Purchases().Create(purchase); err != nil {
			return err
		}
		for _, line := range input.Lines {
			item := &entity.PurchaseItem{
				ID:          uuid.New().String(),
				PurchaseID:  purchaseID,
				ItemID:      line.ItemID,
				QtyOrdered:  line.QtyOrdered,
				QtyReceived: line.QtyReceived,
				UnitCost:    line.UnitCost,
				Subtotal:    line.QtyReceived.Mul(line.UnitCost),
			}
			if err := repos.Purchases().CreateItem(item); err != nil {
				return err
			}
		}
		if input.IdempotencyKey != "" {
			return repos.Keys().Create(entity.KindPurchase, input.IdempotencyKey, purchaseID)
		}
		return nil
	})
	if err != nil {
		// Carrera entre dos envíos con la misma llave: el UNIQUE(kind, key)
		// tumbó esta tx; la transacción ganadora es la respuesta.
		if errors.Is(err, domain.ErrDuplicate) {
			if existingID, gerr := uc.guard.Find(entity.KindPurchase, input.IdempotencyKey); gerr == nil && existingID != "" {
				return uc.loadResult(existingID, true)
			}
		}
		return nil, err
	}

	return uc.loadResult(purchaseID, false)
}

// Load devuelve una compra ya procesada con líneas y proveedor.
func (uc *ReceivePurchaseUseCase) Load(id string) (*PurchaseResult, error) {
	return uc.loadResult(id, false)
}

// List lista cabeceras de compra paginadas (sin líneas).
func (uc *ReceivePurchaseUseCase) List(limit, offset int) ([]*entity.Purchase, error) {
	return uc.purchaseRepo.List(limit, offset)
}

// loadResult carga cabecera + líneas + proveedor (respuesta completa, también en replay).
func (uc *ReceivePurchaseUseCase) loadResult(id string, replay bool) (*PurchaseResult, error) {
	purchase, err := uc.purchaseRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.purchaseRepo.ListItems(id)
	if err != nil {
		return nil, err
	}
	supplier, err := uc.supplierRepo.GetByID(purchase.SupplierID)
	if err != nil {
		return nil, err
	}
	// El batch sale de la cabecera persistida: replay y primera llamada
	// devuelven exactamente la misma respuesta.
	return &PurchaseResult{
		Purchase:         purchase,
		Items:            items,
		Supplier:         supplier,
		BatchID:          purchase.BatchID,
		AlreadyProcessed: replay,
	}, nil
}

// purchaseStatus deriva el estado de la cabecera desde las líneas:
// complete si todo lo pedido se recibió, pending si no se recibió nada,
// partial en el resto de casos.
func purchaseStatus(lines []PurchaseLineInput) entity.TransactionStatus {
	allFull := true
	anyReceived := false
	for _, line := range lines {
		if line.QtyReceived.GreaterThan(decimal.Zero) {
			anyReceived = true
		}
		if !line.QtyReceived.Equal(line.QtyOrdered) {
			allFull = false
		}
	}
	switch {
	case allFull:
		return entity.StatusComplete
	case anyReceived:
		return entity.StatusPartial
	default:
		return entity.StatusPending
	}
}
