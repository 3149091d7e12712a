package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/forddyce/stock-ac-sub001/internal/application/dto"
	"github.com/forddyce/stock-ac-sub001/internal/application/transactions"
)

// AdjustmentHandler maneja ajustes manuales de stock (protegido).
type AdjustmentHandler struct {
	adjustUC *transactions.AdjustUseCase
	cancelUC *transactions.CancelUseCase
}

// NewAdjustmentHandler construye el handler.
func NewAdjustmentHandler(adjustUC *transactions.AdjustUseCase, cancelUC *transactions.CancelUseCase) *AdjustmentHandler {
	return &AdjustmentHandler{adjustUC: adjustUC, cancelUC: cancelUC}
}

// Create godoc
// @Summary      Procesar ajuste manual de stock
// @Description  Suma o resta una cantidad fija; un subtract nunca deja saldo negativo.
// @Tags         adjustments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustmentRequest  true  "Ajuste"
// @Success      201   {object}  dto.AdjustmentResponse
// @Success      200   {object}  dto.AdjustmentResponse  "Replay idempotente"
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "Stock insuficiente"
// @Router       /api/adjustments [post]
func (h *AdjustmentHandler) Create(c *fiber.Ctx) error {
	var in dto.AdjustmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.adjustUC.Adjust(c.Context(), transactions.AdjustmentInput{
		ItemID:         in.ItemID,
		WarehouseID:    in.WarehouseID,
		Type:           in.Type,
		Qty:            in.Qty,
		IdempotencyKey: in.IdempotencyKey,
		Notes:          in.Notes,
		UserID:         GetUserID(c),
	})
	if err != nil {
		return transactionError(c, err)
	}
	status := fiber.StatusCreated
	if result.AlreadyProcessed {
		status = fiber.StatusOK
	}
	return c.Status(status).JSON(toAdjustmentResponse(result))
}

// GetByID godoc
// @Summary      Obtener ajuste por ID
// @Tags         adjustments
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del ajuste"
// @Success      200  {object}  dto.AdjustmentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/adjustments/{id} [get]
func (h *AdjustmentHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	result, err := h.adjustUC.Load(id)
	if err != nil {
		return transactionError(c, err)
	}
	return c.JSON(toAdjustmentResponse(result))
}

// List godoc
// @Summary      Listar ajustes
// @Tags         adjustments
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {array}  dto.AdjustmentResponse
// @Router       /api/adjustments [get]
func (h *AdjustmentHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	adjustments, err := h.adjustUC.List(limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]*dto.AdjustmentResponse, 0, len(adjustments))
	for _, a := range adjustments {
		out = append(out, toAdjustmentResponse(&transactions.AdjustmentResult{Adjustment: a, BatchID: a.BatchID}))
	}
	return c.JSON(out)
}

// Cancel godoc
// @Summary      Cancelar ajuste
// @Tags         adjustments
// @Security     Bearer
// @Param        id   path  string  true  "ID del ajuste"
// @Success      204  "Sin contenido"
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/adjustments/{id}/cancel [post]
func (h *AdjustmentHandler) Cancel(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	if err := h.cancelUC.CancelAdjustment(id); err != nil {
		return transactionError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func toAdjustmentResponse(r *transactions.AdjustmentResult) *dto.AdjustmentResponse {
	a := r.Adjustment
	return &dto.AdjustmentResponse{
		ID:               a.ID,
		ItemID:           a.ItemID,
		WarehouseID:      a.WarehouseID,
		Type:             a.Type,
		Qty:              a.Qty,
		Status:           string(a.Status),
		Notes:            a.Notes,
		BatchID:          r.BatchID,
		AlreadyProcessed: r.AlreadyProcessed,
		ProcessedAt:      a.ProcessedAt,
		CreatedAt:        a.CreatedAt,
	}
}
