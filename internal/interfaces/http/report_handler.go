package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/forddyce/stock-ac-sub001/internal/application/dto"
	"github.com/forddyce/stock-ac-sub001/internal/application/reports"
)

// ReportHandler consultas de lectura: stock bajo, actividad, stock por ítem y kardex.
type ReportHandler struct {
	reportUC *reports.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(reportUC *reports.ReportUseCase) *ReportHandler {
	return &ReportHandler{reportUC: reportUC}
}

// LowStock godoc
// @Summary      Ítems bajo el umbral de stock mínimo
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {array}  dto.LowStockDTO
// @Router       /api/reports/low-stock [get]
func (h *ReportHandler) LowStock(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	rows, err := h.reportUC.LowStock(limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(rows)
}

// RecentActivity godoc
// @Summary      Últimos movimientos del ledger
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Límite"  default(20)
// @Success      200    {array}  dto.LedgerEntryDTO
// @Router       /api/reports/activity [get]
func (h *ReportHandler) RecentActivity(c *fiber.Ctx) error {
	limit, _ := pageParams(c)
	rows, err := h.reportUC.RecentActivity(limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(rows)
}

// Batch godoc
// @Summary      Movimientos de un batch
// @Description  Todo lo que hizo un mismo evento de negocio (un traslado muestra sus dos patas).
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "Batch ID"
// @Success      200  {array}   dto.LedgerEntryDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reports/batches/{id} [get]
func (h *ReportHandler) Batch(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	rows, err := h.reportUC.Batch(id)
	if err != nil {
		return transactionError(c, err)
	}
	return c.JSON(rows)
}

// ItemStock godoc
// @Summary      Stock de un ítem por bodega
// @Description  El total se deriva sumando las filas, nunca se almacena.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del ítem"
// @Success      200  {object}  dto.ItemStockResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id}/stock [get]
func (h *ReportHandler) ItemStock(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	resp, err := h.reportUC.ItemStock(id)
	if err != nil {
		return transactionError(c, err)
	}
	return c.JSON(resp)
}

// ItemKardex godoc
// @Summary      Kardex de un ítem
// @Description  Historial de movimientos acotado por fechas opcionales (RFC 3339 o YYYY-MM-DD).
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del ítem"
// @Param        from    query  string  false  "Desde"
// @Param        to      query  string  false  "Hasta"
// @Param        limit   query  int     false  "Límite"   default(20)
// @Param        offset  query  int     false  "Offset"   default(0)
// @Success      200     {array}   dto.LedgerEntryDTO
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/items/{id}/kardex [get]
func (h *ReportHandler) ItemKardex(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	from, to, err := dateRangeParams(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_DATE", Message: "fecha inválida, use RFC 3339 o YYYY-MM-DD"})
	}
	limit, offset := pageParams(c)
	rows, uerr := h.reportUC.ItemKardex(id, from, to, limit, offset)
	if uerr != nil {
		return transactionError(c, uerr)
	}
	return c.JSON(rows)
}

// ExportKardexXML godoc
// @Summary      Descargar kardex de un ítem (XML)
// @Tags         reports
// @Security     Bearer
// @Produce      application/xml
// @Param        id    path   string  true   "ID del ítem"
// @Param        from  query  string  false  "Desde"
// @Param        to    query  string  false  "Hasta"
// @Success      200   {file}    binary
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/items/{id}/kardex/xml [get]
func (h *ReportHandler) ExportKardexXML(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	from, to, err := dateRangeParams(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_DATE", Message: "fecha inválida, use RFC 3339 o YYYY-MM-DD"})
	}
	xmlBytes, filename, uerr := h.reportUC.ExportKardexXML(id, from, to)
	if uerr != nil {
		return transactionError(c, uerr)
	}
	c.Set("Content-Type", "application/xml")
	c.Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	return c.Send(xmlBytes)
}

// dateRangeParams lee from/to de la query; acepta RFC 3339 o YYYY-MM-DD.
func dateRangeParams(c *fiber.Ctx) (from, to *time.Time, err error) {
	if raw := c.Query("from"); raw != "" {
		t, perr := parseDate(raw)
		if perr != nil {
			return nil, nil, perr
		}
		from = &t
	}
	if raw := c.Query("to"); raw != "" {
		t, perr := parseDate(raw)
		if perr != nil {
			return nil, nil, perr
		}
		to = &t
	}
	return from, to, nil
}

func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}
