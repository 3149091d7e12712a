package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/forddyce/stock-ac-sub001/internal/application/dto"
	"github.com/forddyce/stock-ac-sub001/internal/application/transactions"
	"github.com/forddyce/stock-ac-sub001/internal/domain"
)

// PurchaseHandler maneja recepciones de compra (protegido).
type PurchaseHandler struct {
	receiveUC *transactions.ReceivePurchaseUseCase
	cancelUC  *transactions.CancelUseCase
}

// NewPurchaseHandler construye el handler.
func NewPurchaseHandler(receiveUC *transactions.ReceivePurchaseUseCase, cancelUC *transactions.CancelUseCase) *PurchaseHandler {
	return &PurchaseHandler{receiveUC: receiveUC, cancelUC: cancelUC}
}

// Receive godoc
// @Summary      Procesar recepción de compra
// @Description  Suma stock en la bodega destino y registra el ledger, todo o nada.
// @Tags         purchases
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReceivePurchaseRequest  true  "Recepción"
// @Success      201   {object}  dto.PurchaseResponse
// @Success      200   {object}  dto.PurchaseResponse  "Replay idempotente"
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/purchases [post]
func (h *PurchaseHandler) Receive(c *fiber.Ctx) error {
	var in dto.ReceivePurchaseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	input := transactions.PurchaseInput{
		SupplierID:     in.SupplierID,
		WarehouseID:    in.WarehouseID,
		IdempotencyKey: in.IdempotencyKey,
		Notes:          in.Notes,
		UserID:         GetUserID(c),
	}
	for _, l := range in.Lines {
		input.Lines = append(input.Lines, transactions.PurchaseLineInput{
			ItemID:      l.ItemID,
			QtyOrdered:  l.QtyOrdered,
			QtyReceived: l.QtyReceived,
			UnitCost:    l.UnitCost,
		})
	}
	result, err := h.receiveUC.Receive(c.Context(), input)
	if err != nil {
		return transactionError(c, err)
	}
	status := fiber.StatusCreated
	if result.AlreadyProcessed {
		status = fiber.StatusOK
	}
	return c.Status(status).JSON(toPurchaseResponse(result))
}

// GetByID godoc
// @Summary      Obtener compra por ID
// @Tags         purchases
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la compra"
// @Success      200  {object}  dto.PurchaseResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchases/{id} [get]
func (h *PurchaseHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	result, err := h.receiveUC.Load(id)
	if err != nil {
		return transactionError(c, err)
	}
	return c.JSON(toPurchaseResponse(result))
}

// List godoc
// @Summary      Listar compras
// @Tags         purchases
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {array}  dto.PurchaseResponse
// @Router       /api/purchases [get]
func (h *PurchaseHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	purchases, err := h.receiveUC.List(limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]*dto.PurchaseResponse, 0, len(purchases))
	for _, p := range purchases {
		out = append(out, toPurchaseResponse(&transactions.PurchaseResult{Purchase: p, BatchID: p.BatchID}))
	}
	return c.JSON(out)
}

// Cancel godoc
// @Summary      Cancelar compra
// @Description  Solo marca la cabecera: el stock y el ledger no se revierten.
// @Tags         purchases
// @Security     Bearer
// @Param        id   path  string  true  "ID de la compra"
// @Success      204  "Sin contenido"
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/purchases/{id}/cancel [post]
func (h *PurchaseHandler) Cancel(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	if err := h.cancelUC.CancelPurchase(id); err != nil {
		return transactionError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func toPurchaseResponse(r *transactions.PurchaseResult) *dto.PurchaseResponse {
	p := r.Purchase
	out := &dto.PurchaseResponse{
		ID:               p.ID,
		SupplierID:       p.SupplierID,
		WarehouseID:      p.WarehouseID,
		Status:           string(p.Status),
		Notes:            p.Notes,
		Total:            p.Total,
		BatchID:          r.BatchID,
		AlreadyProcessed: r.AlreadyProcessed,
		ProcessedAt:      p.ProcessedAt,
		CreatedAt:        p.CreatedAt,
		Lines:            make([]dto.PurchaseLineResponse, 0, len(r.Items)),
	}
	if r.Supplier != nil {
		out.SupplierName = r.Supplier.Name
	}
	for _, it := range r.Items {
		out.Lines = append(out.Lines, dto.PurchaseLineResponse{
			ID:          it.ID,
			ItemID:      it.ItemID,
			QtyOrdered:  it.QtyOrdered,
			QtyReceived: it.QtyReceived,
			UnitCost:    it.UnitCost,
			Subtotal:    it.Subtotal,
		})
	}
	return out
}

// transactionError mapea los errores de dominio de los procesadores a HTTP.
func transactionError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "entrada inválida"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente en la bodega"})
	case errors.Is(err, domain.ErrInvalidTransition):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_TRANSITION", Message: "la transacción no admite ese cambio de estado"})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "llave de idempotencia en conflicto"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
