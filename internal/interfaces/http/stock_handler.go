package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/greenstore-api/internal/application/dto"
	"github.com/jhoicas/greenstore-api/internal/application/inventory"
)

// HeaderApprovalToken token de aprobación de un gerente para operaciones sobre el techo.
const HeaderApprovalToken = "X-Approval-Token"

// StockHandler ajustes, mermas, movimientos y consultas del ledger (protegido).
type StockHandler struct {
	uc *inventory.StockUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *inventory.StockUseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// Adjust godoc
// @Summary      Ajuste manual de stock
// @Description  Si |delta| * precio supera max_stock_adjust exige x-approval-token (acción stock_adjust).
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        x-approval-token  header  string                  false  "token de aprobación"
// @Param        body              body    dto.AdjustStockRequest  true   "product_id, delta con signo, reason"
// @Success      200  {object}  dto.StockResultResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/stock/adjust [post]
func (h *StockHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := bind(c, &in); err != nil {
		return err
	}
	res, err := h.uc.Adjust(c.UserContext(), inventory.AdjustInput{
		ProductID:     in.ProductID,
		Delta:         in.Delta,
		Reason:        in.Reason,
		UserID:        GetUserID(c),
		ApprovalToken: c.Get(HeaderApprovalToken),
	})
	if err != nil {
		return err
	}
	return c.JSON(stockResult(res))
}

// Loss godoc
// @Summary      Reportar merma
// @Description  Si cantidad * precio supera max_losses exige x-approval-token (acción stock_loss).
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        x-approval-token  header  string           false  "token de aprobación"
// @Param        body              body    dto.LossRequest  true   "product_id, quantity, reason"
// @Success      201  {object}  dto.StockResultResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/stock/loss [post]
func (h *StockHandler) Loss(c *fiber.Ctx) error {
	var in dto.LossRequest
	if err := bind(c, &in); err != nil {
		return err
	}
	res, err := h.uc.ReportLoss(c.UserContext(), inventory.LossInput{
		ProductID:     in.ProductID,
		Quantity:      in.Quantity,
		Reason:        in.Reason,
		UserID:        GetUserID(c),
		ApprovalToken: c.Get(HeaderApprovalToken),
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(stockResult(res))
}

// Move godoc
// @Summary      Entrada o salida manual
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MoveRequest  true  "product_id, quantity, type (inbound|outbound), reason"
// @Success      201  {object}  dto.StockResultResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock/move [post]
func (h *StockHandler) Move(c *fiber.Ctx) error {
	var in dto.MoveRequest
	if err := bind(c, &in); err != nil {
		return err
	}
	res, err := h.uc.Move(c.UserContext(), inventory.MoveInput{
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
		Type:      in.Type,
		Reason:    in.Reason,
		UserID:    GetUserID(c),
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(stockResult(res))
}

// Movements godoc
// @Summary      Movimientos recientes del ledger
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  string  false  "filtrar por producto"
// @Param        limit       query  int     false  "1..200, por defecto 50"
// @Success      200  {array}   dto.MovementDTO
// @Router       /api/stock/movements [get]
func (h *StockHandler) Movements(c *fiber.Ctx) error {
	var q dto.MovementsQuery
	if err := bindQuery(c, &q); err != nil {
		return err
	}
	list, err := h.uc.ListMovements(c.UserContext(), q.ProductID, q.Limit)
	if err != nil {
		return err
	}
	out := make([]dto.MovementDTO, 0, len(list))
	for _, m := range list {
		out = append(out, dto.NewMovementDTO(m))
	}
	return c.JSON(out)
}

// Losses godoc
// @Summary      Mermas recientes
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "1..200, por defecto 50"
// @Success      200  {array}   dto.LossDTO
// @Router       /api/stock/loss [get]
func (h *StockHandler) Losses(c *fiber.Ctx) error {
	var q dto.LimitQuery
	if err := bindQuery(c, &q); err != nil {
		return err
	}
	list, err := h.uc.ListLosses(c.UserContext(), q.Limit)
	if err != nil {
		return err
	}
	out := make([]dto.LossDTO, 0, len(list))
	for _, l := range list {
		out = append(out, dto.NewLossDTO(l))
	}
	return c.JSON(out)
}

// RestockSuggestions godoc
// @Summary      Productos en o bajo su stock mínimo
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/stock/restock-suggestions [get]
func (h *StockHandler) RestockSuggestions(c *fiber.Ctx) error {
	list, err := h.uc.RestockSuggestions(c.UserContext())
	if err != nil {
		return err
	}
	out := make([]dto.RestockSuggestionDTO, 0, len(list))
	for _, p := range list {
		out = append(out, dto.NewRestockSuggestion(p))
	}
	return c.JSON(fiber.Map{"total": len(out), "suggestions": out})
}

// Reconcile godoc
// @Summary      Conciliar stock cacheado contra el ledger
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        product_id  path  string  true  "ID del producto"
// @Success      200  {object}  dto.ReconcileResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/{product_id}/reconcile [get]
func (h *StockHandler) Reconcile(c *fiber.Ctx) error {
	productID, err := uuidParam(c, "product_id")
	if err != nil {
		return err
	}
	rec, err := h.uc.Reconcile(c.UserContext(), productID)
	if err != nil {
		return err
	}
	return c.JSON(dto.ReconcileResponse{
		ProductID:    rec.ProductID,
		CurrentStock: rec.CurrentStock,
		LedgerSum:    rec.LedgerSum,
		Difference:   rec.Difference,
		Consistent:   rec.Consistent(),
	})
}

func stockResult(res *inventory.Result) dto.StockResultResponse {
	return dto.StockResultResponse{ID: res.MovementID, CurrentStock: res.CurrentStock, ApprovedBy: res.ApprovedBy}
}
