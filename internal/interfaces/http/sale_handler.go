package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/forddyce/stock-ac-sub001/internal/application/dto"
	"github.com/forddyce/stock-ac-sub001/internal/application/reports"
	"github.com/forddyce/stock-ac-sub001/internal/application/transactions"
)

// SaleHandler maneja ventas (protegido).
type SaleHandler struct {
	fulfillUC *transactions.FulfillSaleUseCase
	cancelUC  *transactions.CancelUseCase
	pdfUC     *reports.DeliveryNoteUseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(
	fulfillUC *transactions.FulfillSaleUseCase,
	cancelUC *transactions.CancelUseCase,
	pdfUC *reports.DeliveryNoteUseCase,
) *SaleHandler {
	return &SaleHandler{fulfillUC: fulfillUC, cancelUC: cancelUC, pdfUC: pdfUC}
}

// Fulfill godoc
// @Summary      Procesar venta
// @Description  Descuenta stock de la bodega origen y registra el ledger, todo o nada.
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.FulfillSaleRequest  true  "Venta"
// @Success      201   {object}  dto.SaleResponse
// @Success      200   {object}  dto.SaleResponse  "Replay idempotente"
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "Stock insuficiente"
// @Router       /api/sales [post]
func (h *SaleHandler) Fulfill(c *fiber.Ctx) error {
	var in dto.FulfillSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	input := transactions.SaleInput{
		CustomerID:     in.CustomerID,
		WarehouseID:    in.WarehouseID,
		IdempotencyKey: in.IdempotencyKey,
		Notes:          in.Notes,
		UserID:         GetUserID(c),
	}
	for _, l := range in.Lines {
		input.Lines = append(input.Lines, transactions.SaleLineInput{
			ItemID:       l.ItemID,
			QtyRequested: l.QtyRequested,
			QtyFulfilled: l.QtyFulfilled,
			UnitPrice:    l.UnitPrice,
		})
	}
	result, err := h.fulfillUC.Fulfill(c.Context(), input)
	if err != nil {
		return transactionError(c, err)
	}
	status := fiber.StatusCreated
	if result.AlreadyProcessed {
		status = fiber.StatusOK
	}
	return c.Status(status).JSON(toSaleResponse(result))
}

// GetByID godoc
// @Summary      Obtener venta por ID
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {object}  dto.SaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [get]
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	result, err := h.fulfillUC.Load(id)
	if err != nil {
		return transactionError(c, err)
	}
	return c.JSON(toSaleResponse(result))
}

// List godoc
// @Summary      Listar ventas
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {array}  dto.SaleResponse
// @Router       /api/sales [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	sales, err := h.fulfillUC.List(limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]*dto.SaleResponse, 0, len(sales))
	for _, s := range sales {
		out = append(out, toSaleResponse(&transactions.SaleResult{Sale: s, BatchID: s.BatchID}))
	}
	return c.JSON(out)
}

// Cancel godoc
// @Summary      Cancelar venta
// @Description  Solo marca la cabecera: el stock y el ledger no se revierten.
// @Tags         sales
// @Security     Bearer
// @Param        id   path  string  true  "ID de la venta"
// @Success      204  "Sin contenido"
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/cancel [post]
func (h *SaleHandler) Cancel(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	if err := h.cancelUC.CancelSale(id); err != nil {
		return transactionError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DownloadPDF godoc
// @Summary      Descargar remisión de venta (PDF)
// @Tags         sales
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/pdf [get]
func (h *SaleHandler) DownloadPDF(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	pdfBytes, filename, err := h.pdfUC.DownloadDeliveryNotePDF(c.Context(), id)
	if err != nil {
		return transactionError(c, err)
	}
	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}

func toSaleResponse(r *transactions.SaleResult) *dto.SaleResponse {
	s := r.Sale
	out := &dto.SaleResponse{
		ID:               s.ID,
		CustomerID:       s.CustomerID,
		WarehouseID:      s.WarehouseID,
		Status:           string(s.Status),
		Notes:            s.Notes,
		Total:            s.Total,
		BatchID:          r.BatchID,
		AlreadyProcessed: r.AlreadyProcessed,
		ProcessedAt:      s.ProcessedAt,
		CreatedAt:        s.CreatedAt,
		Lines:            make([]dto.SaleLineResponse, 0, len(r.Items)),
	}
	if r.Customer != nil {
		out.CustomerName = r.Customer.Name
	}
	for _, it := range r.Items {
		out.Lines = append(out.Lines, dto.SaleLineResponse{
			ID:           it.ID,
			ItemID:       it.ItemID,
			QtyRequested: it.QtyRequested,
			QtyFulfilled: it.QtyFulfilled,
			UnitPrice:    it.UnitPrice,
			Subtotal:     it.Subtotal,
		})
	}
	return out
}
