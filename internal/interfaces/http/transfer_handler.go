package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/forddyce/stock-ac-sub001/internal/application/dto"
	"github.com/forddyce/stock-ac-sub001/internal/application/transactions"
)

// TransferHandler maneja traslados entre bodegas (protegido).
type TransferHandler struct {
	transferUC *transactions.TransferUseCase
	cancelUC   *transactions.CancelUseCase
}

// NewTransferHandler construye el handler.
func NewTransferHandler(transferUC *transactions.TransferUseCase, cancelUC *transactions.CancelUseCase) *TransferHandler {
	return &TransferHandler{transferUC: transferUC, cancelUC: cancelUC}
}

// Create godoc
// @Summary      Procesar traslado entre bodegas
// @Description  Resta en origen y suma en destino en una sola transacción; dos entradas de ledger bajo un mismo batch.
// @Tags         transfers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TransferRequest  true  "Traslado"
// @Success      201   {object}  dto.TransferResponse
// @Success      200   {object}  dto.TransferResponse  "Replay idempotente"
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "Stock insuficiente en origen"
// @Router       /api/transfers [post]
func (h *TransferHandler) Create(c *fiber.Ctx) error {
	var in dto.TransferRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.transferUC.Transfer(c.Context(), transactions.TransferInput{
		ItemID:          in.ItemID,
		FromWarehouseID: in.FromWarehouseID,
		ToWarehouseID:   in.ToWarehouseID,
		Qty:             in.Qty,
		IdempotencyKey:  in.IdempotencyKey,
		Notes:           in.Notes,
		UserID:          GetUserID(c),
	})
	if err != nil {
		return transactionError(c, err)
	}
	status := fiber.StatusCreated
	if result.AlreadyProcessed {
		status = fiber.StatusOK
	}
	return c.Status(status).JSON(toTransferResponse(result))
}

// GetByID godoc
// @Summary      Obtener traslado por ID
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del traslado"
// @Success      200  {object}  dto.TransferResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transfers/{id} [get]
func (h *TransferHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	result, err := h.transferUC.Load(id)
	if err != nil {
		return transactionError(c, err)
	}
	return c.JSON(toTransferResponse(result))
}

// List godoc
// @Summary      Listar traslados
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {array}  dto.TransferResponse
// @Router       /api/transfers [get]
func (h *TransferHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	transfers, err := h.transferUC.List(limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]*dto.TransferResponse, 0, len(transfers))
	for _, t := range transfers {
		out = append(out, toTransferResponse(&transactions.TransferResult{Transfer: t, BatchID: t.BatchID}))
	}
	return c.JSON(out)
}

// Cancel godoc
// @Summary      Cancelar traslado
// @Tags         transfers
// @Security     Bearer
// @Param        id   path  string  true  "ID del traslado"
// @Success      204  "Sin contenido"
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/transfers/{id}/cancel [post]
func (h *TransferHandler) Cancel(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	if err := h.cancelUC.CancelTransfer(id); err != nil {
		return transactionError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func toTransferResponse(r *transactions.TransferResult) *dto.TransferResponse {
	t := r.Transfer
	return &dto.TransferResponse{
		ID:               t.ID,
		ItemID:           t.ItemID,
		FromWarehouseID:  t.FromWarehouseID,
		ToWarehouseID:    t.ToWarehouseID,
		QtySent:          t.QtySent,
		QtyReceived:      t.QtyReceived,
		Status:           string(t.Status),
		Notes:            t.Notes,
		BatchID:          r.BatchID,
		AlreadyProcessed: r.AlreadyProcessed,
		ProcessedAt:      t.ProcessedAt,
		CreatedAt:        t.CreatedAt,
	}
}
