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

// SaleLineInput línea de una venta. QtyFulfilled puede ser menor que
// QtyRequested (despacho parcial).
type SaleLineInput struct {
	ItemID       string
	QtyRequested decimal.Decimal
	QtyFulfilled decimal.Decimal
	UnitPrice    decimal.Decimal
}

// SaleInput entrada del procesador de ventas.
type SaleInput struct {
	CustomerID     string
	WarehouseID    string
	IdempotencyKey string
	Notes          string
	UserID         string
	Lines          []SaleLineInput
}

// SaleResult cabecera creada (o reenviada) con sus líneas y entidades relacionadas.
type SaleResult struct {
	Sale             *entity.Sale
	Items            []*entity.SaleItem
	Customer         *entity.Customer
	BatchID          string
	AlreadyProcessed bool
}

// FulfillSaleUseCase procesa despachos de venta: valida referencias, resta
// stock de la bodega origen (rechaza si no alcanza) y registra una entrada
// de ledger por línea despachada, todo dentro de una transacción de BD.
type FulfillSaleUseCase struct {
	txRunner      TxRunner
	guard         *Guard
	customerRepo  repository.CustomerRepository
	warehouseRepo repository.WarehouseRepository
	itemRepo      repository.ItemRepository
	saleRepo      repository.SaleRepository
}

// NewFulfillSaleUseCase construye el caso de uso.
func NewFulfillSaleUseCase(
	txRunner TxRunner,
	guard *Guard,
	customerRepo repository.CustomerRepository,
	warehouseRepo repository.WarehouseRepository,
	itemRepo repository.ItemRepository,
	saleRepo repository.SaleRepository,
) *FulfillSaleUseCase {
	return &FulfillSaleUseCase{
		txRunner:      txRunner,
		guard:         guard,
		customerRepo:  customerRepo,
		warehouseRepo: warehouseRepo,
		itemRepo:      itemRepo,
		saleRepo:      saleRepo,
	}
}

// Fulfill procesa una venta. En replay (misma llave) devuelve el resultado
// original sin volver a descontar stock.
func (uc *FulfillSaleUseCase) Fulfill(ctx context.Context, input SaleInput) (*SaleResult, error) {
	if len(input.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, line := range input.Lines {
		if line.ItemID == "" || !line.QtyRequested.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		if line.QtyFulfilled.LessThan(decimal.Zero) || line.QtyFulfilled.GreaterThan(line.QtyRequested) {
			return nil, domain.ErrInvalidInput
		}
		if line.UnitPrice.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
	}

	if existingID, err := uc.guard.Find(entity.KindSale, input.IdempotencyKey); err != nil {
		return nil, err
	} else if existingID != "" {
		return uc.loadResult(existingID, true)
	}

	customer, err := uc.customerRepo.GetByID(input.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
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
	saleID := uuid.New().String()
	status := saleStatus(input.Lines)

	var batchID string
	err = uc.txRunner.Run(ctx, func(repos TxRepos) error {
		rec := ledger.NewRecorder(repos.Ledger(), input.UserID)
		batchID = rec.BatchID()

		total := decimal.Zero
		for _, line := range input.Lines {
			total = total.Add(line.QtyFulfilled.Mul(line.UnitPrice))
			if !line.QtyFulfilled.GreaterThan(decimal.Zero) {
				continue
			}
			balance, err := repos.Stock().GetForUpdate(line.ItemID, input.WarehouseID)
			if err != nil {
				return err
			}
			// Política: el saldo no puede quedar negativo.
			if balance.Quantity.LessThan(line.QtyFulfilled) {
				return domain.ErrInsufficientStock
			}
			before := balance.Quantity
			balance.Quantity = before.Sub(line.QtyFulfilled)
			balance.UpdatedAt = now
			if err := repos.Stock().Upsert(balance); err != nil {
				return err
			}
			if _, err := rec.Record(line.ItemID, input.WarehouseID, entity.LedgerTypeSale,
				saleID, before, line.QtyFulfilled.Neg(), input.Notes); err != nil {
				return err
			}
		}

		sale := &entity.Sale{
			ID:             saleID,
			CustomerID:     input.CustomerID,
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
		if err := repos.Sales().Create(sale); err != nil {
			return err
		}
		for _, line := range input.Lines {
			item := &entity.SaleItem{
				ID:           uuid.New().String(),
				SaleID:       saleID,
				ItemID:       line.ItemID,
				QtyRequested: line.QtyRequested,
				QtyFulfilled: line.QtyFulfilled,
				UnitPrice:    line.UnitPrice,
				Subtotal:     line.QtyFulfilled.Mul(line.UnitPrice),
			}
			if err := repos.Sales().CreateItem(item); err != nil {
				return err
			}
		}
		if input.IdempotencyKey != "" {
			return repos.Keys().Create(entity.KindSale, input.IdempotencyKey, saleID)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			if existingID, gerr := uc.guard.Find(entity.KindSale, input.IdempotencyKey); gerr == nil && existingID != "" {
				return uc.loadResult(existingID, true)
			}
		}
		return nil, err
	}

	return uc.loadResult(saleID, false)
}

// Load devuelve una venta ya procesada con líneas y cliente.
func (uc *FulfillSaleUseCase) Load(id string) (*SaleResult, error) {
	return uc.loadResult(id, false)
}

// List lista cabeceras de venta paginadas (sin líneas).
func (uc *FulfillSaleUseCase) List(limit, offset int) ([]*entity.Sale, error) {
	return uc.saleRepo.List(limit, offset)
}

// loadResult carga cabecera + líneas + cliente (respuesta completa, también en replay).
func (uc *FulfillSaleUseCase) loadResult(id string, replay bool) (*SaleResult, error) {
	sale, err := uc.saleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.saleRepo.ListItems(id)
	if err != nil {
		return nil, err
	}
	customer, err := uc.customerRepo.GetByID(sale.CustomerID)
	if err != nil {
		return nil, err
	}
	// El batch sale de la cabecera persistida: replay y primera llamada
	// devuelven exactamente la misma respuesta.
	return &SaleResult{
		Sale:             sale,
		Items:            items,
		Customer:         customer,
		BatchID:          sale.BatchID,
		AlreadyProcessed: replay,
	}, nil
}

func saleStatus(lines []SaleLineInput) entity.TransactionStatus {
	allFull := true
	anyFulfilled := false
	for _, line := range lines {
		if line.QtyFulfilled.GreaterThan(decimal.Zero) {
			anyFulfilled = true
		}
		if !line.QtyFulfilled.Equal(line.QtyRequested) {
			allFull = false
		}
	}
	switch {
	case allFull:
		return entity.StatusComplete
	case anyFulfilled:
		return entity.StatusPartial
	default:
		return entity.StatusPending
	}
}
