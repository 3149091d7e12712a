package reports

import (
	"context"
	"fmt"

	"github.com/forddyce/stock-ac-sub001/internal/domain"
	"github.com/forddyce/stock-ac-sub001/internal/domain/repository"
)

// DeliveryNoteUseCase genera la remisión (PDF) de una venta ya procesada.
type DeliveryNoteUseCase struct {
	saleRepo      repository.SaleRepository
	customerRepo  repository.CustomerRepository
	warehouseRepo repository.WarehouseRepository
	itemRepo      repository.ItemRepository
	generator     DeliveryNotePDFGenerator
}

// NewDeliveryNoteUseCase construye el caso de uso inyectando todas sus dependencias.
func NewDeliveryNoteUseCase(
	saleRepo repository.SaleRepository,
	customerRepo repository.CustomerRepository,
	warehouseRepo repository.WarehouseRepository,
	itemRepo repository.ItemRepository,
	generator DeliveryNotePDFGenerator,
) *DeliveryNoteUseCase {
	return &DeliveryNoteUseCase{
		saleRepo:      saleRepo,
		customerRepo:  customerRepo,
		warehouseRepo: warehouseRepo,
		itemRepo:      itemRepo,
		generator:     generator,
	}
}

// DownloadDeliveryNotePDF recupera la venta con sus líneas, las enriquece con
// los datos de cada ítem y genera el PDF de la remisión.
//
// Devuelve:
//   - (nil, "", ErrNotFound)  si la venta no existe.
//   - (pdfBytes, filename, nil)  si todo sale bien.
func (uc *DeliveryNoteUseCase) DownloadDeliveryNotePDF(
	ctx context.Context,
	saleID string,
) (pdfBytes []byte, filename string, err error) {
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return nil, "", fmt.Errorf("remisión: obtener venta: %w", err)
	}
	if sale == nil {
		return nil, "", domain.ErrNotFound
	}

	customer, err := uc.customerRepo.GetByID(sale.CustomerID)
	if err != nil {
		return nil, "", fmt.Errorf("remisión: obtener cliente: %w", err)
	}
	warehouse, err := uc.warehouseRepo.GetByID(sale.WarehouseID)
	if err != nil {
		return nil, "", fmt.Errorf("remisión: obtener bodega: %w", err)
	}

	saleItems, err := uc.saleRepo.ListItems(saleID)
	if err != nil {
		return nil, "", fmt.Errorf("remisión: obtener líneas: %w", err)
	}

	lines := make([]DeliveryLineForPDF, 0, len(saleItems))
	for _, si := range saleItems {
		line := DeliveryLineForPDF{
			SKU:          si.ItemID,
			ItemName:     si.ItemID,
			Unit:         "und",
			QtyRequested: si.QtyRequested,
			QtyFulfilled: si.QtyFulfilled,
			UnitPrice:    si.UnitPrice,
			Subtotal:     si.Subtotal,
		}
		if item, err := uc.itemRepo.GetByID(si.ItemID); err == nil && item != nil {
			line.SKU = item.SKU
			line.ItemName = item.Name
			line.Unit = item.Unit
		}
		lines = append(lines, line)
	}

	pdfBytes, err = uc.generator.GenerateDeliveryNotePDF(ctx, sale, customer, warehouse, lines)
	if err != nil {
		return nil, "", fmt.Errorf("remisión: generación fallida: %w", err)
	}

	filename = fmt.Sprintf("remision_%s.pdf", sale.ID)
	return pdfBytes, filename, nil
}
