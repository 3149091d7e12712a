package reports

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/forddyce/stock-ac-sub001/internal/application/dto"
	"github.com/forddyce/stock-ac-sub001/internal/domain"
	"github.com/forddyce/stock-ac-sub001/internal/domain/repository"
)

// ReportUseCase consultas de lectura: stock bajo, actividad reciente,
// stock por ítem y kardex (JSON y XML).
type ReportUseCase struct {
	reportRepo repository.ReportRepository
	itemRepo   repository.ItemRepository
	exporter   KardexXMLExporter
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(
	reportRepo repository.ReportRepository,
	itemRepo repository.ItemRepository,
	exporter KardexXMLExporter,
) *ReportUseCase {
	return &ReportUseCase{reportRepo: reportRepo, itemRepo: itemRepo, exporter: exporter}
}

// LowStock devuelve los pares (ítem, bodega) con cantidad bajo el umbral min_stock.
func (uc *ReportUseCase) LowStock(limit, offset int) ([]dto.LowStockDTO, error) {
	rows, err := uc.reportRepo.LowStock(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LowStockDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.LowStockDTO{
			ItemID:      r.ItemID,
			SKU:         r.SKU,
			ItemName:    r.ItemName,
			WarehouseID: r.WarehouseID,
			Warehouse:   r.Warehouse,
			Quantity:    r.Quantity,
			MinStock:    r.MinStock,
		})
	}
	return out, nil
}

// RecentActivity devuelve las últimas entradas del ledger con nombres resueltos.
func (uc *ReportUseCase) RecentActivity(limit int) ([]dto.LedgerEntryDTO, error) {
	rows, err := uc.reportRepo.RecentActivity(limit)
	if err != nil {
		return nil, err
	}
	return toLedgerDTOs(rows), nil
}

// ItemStock devuelve el stock por bodega de un ítem más el total.
// El total SIEMPRE se deriva sumando las filas: nunca se almacena.
func (uc *ReportUseCase) ItemStock(itemID string) (*dto.ItemStockResponse, error) {
	item, err := uc.itemRepo.GetByID(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	rows, err := uc.reportRepo.ItemStock(itemID)
	if err != nil {
		return nil, err
	}
	resp := &dto.ItemStockResponse{
		ItemID:     itemID,
		Warehouses: make([]dto.StockByWarehouseDTO, 0, len(rows)),
		Total:      decimal.Zero,
	}
	for _, r := range rows {
		resp.Warehouses = append(resp.Warehouses, dto.StockByWarehouseDTO{
			WarehouseID: r.WarehouseID,
			Warehouse:   r.Warehouse,
			Quantity:    r.Quantity,
		})
		resp.Total = resp.Total.Add(r.Quantity)
	}
	return resp, nil
}

// Batch devuelve todo lo que hizo un mismo evento de negocio: las entradas
// de ledger que comparten batch_id (un traslado aparece con sus dos patas).
func (uc *ReportUseCase) Batch(batchID string) ([]dto.LedgerEntryDTO, error) {
	rows, err := uc.reportRepo.Batch(batchID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, domain.ErrNotFound
	}
	return toLedgerDTOs(rows), nil
}

// ItemKardex historial de movimientos de un ítem acotado por fechas opcionales.
func (uc *ReportUseCase) ItemKardex(itemID string, from, to *time.Time, limit, offset int) ([]dto.LedgerEntryDTO, error) {
	item, err := uc.itemRepo.GetByID(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	rows, err := uc.reportRepo.ItemKardex(itemID, from, to, limit, offset)
	if err != nil {
		return nil, err
	}
	return toLedgerDTOs(rows), nil
}

// ExportKardexXML genera el kardex del ítem como documento XML descargable.
// Devuelve (bytes, nombre de archivo, error).
func (uc *ReportUseCase) ExportKardexXML(itemID string, from, to *time.Time) ([]byte, string, error) {
	item, err := uc.itemRepo.GetByID(itemID)
	if err != nil {
		return nil, "", err
	}
	if item == nil {
		return nil, "", domain.ErrNotFound
	}
	rows, err := uc.reportRepo.ItemKardex(itemID, from, to, 10000, 0)
	if err != nil {
		return nil, "", err
	}
	xmlBytes, err := uc.exporter.ExportKardexXML(item, rows)
	if err != nil {
		return nil, "", fmt.Errorf("kardex: exportar XML: %w", err)
	}
	filename := fmt.Sprintf("kardex_%s.xml", item.SKU)
	return xmlBytes, filename, nil
}

func toLedgerDTOs(rows []repository.ActivityResult) []dto.LedgerEntryDTO {
	out := make([]dto.LedgerEntryDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.LedgerEntryDTO{
			ID:        r.EntryID,
			BatchID:   r.BatchID,
			ItemID:    r.ItemID,
			SKU:       r.SKU,
			ItemName:  r.ItemName,
			Warehouse: r.Warehouse,
			Type:      r.Type,
			QtyBefore: r.QtyBefore,
			QtyChange: r.QtyChange,
			QtyAfter:  r.QtyAfter,
			UserName:  r.UserName,
			CreatedAt: r.CreatedAt,
		})
	}
	return out
}
