package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/greenstore-api/internal/application/dto"
	"github.com/jhoicas/greenstore-api/internal/application/pos"
)

// POSHandler acciones de caja con aprobación (protegido).
type POSHandler struct {
	uc *pos.UseCase
}

// NewPOSHandler construye el handler.
func NewPOSHandler(uc *pos.UseCase) *POSHandler {
	return &POSHandler{uc: uc}
}

// RemoveItem godoc
// @Summary      Quitar ítem del ticket (requiere aprobación remove_item)
// @Tags         pos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        x-approval-token  header  string                 true  "token de aprobación"
// @Param        body              body    dto.RemoveItemRequest  true  "item, reason"
// @Success      200  {object}  dto.StatusResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/pos/remove-item [post]
func (h *POSHandler) RemoveItem(c *fiber.Ctx) error {
	var in dto.RemoveItemRequest
	if err := bind(c, &in); err != nil {
		return err
	}
	out, err := h.uc.RemoveItem(c.UserContext(), in.Item, in.Reason, GetUserID(c), c.Get(HeaderApprovalToken))
	if err != nil {
		return err
	}
	return c.JSON(dto.StatusResponse{Status: "ok", ApprovedBy: out.ApprovedBy})
}

// CancelSale godoc
// @Summary      Cancelar ticket en curso (requiere aprobación cancel_sale)
// @Tags         pos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        x-approval-token  header  string                 true  "token de aprobación"
// @Param        body              body    dto.CancelSaleRequest  true  "reason, items"
// @Success      200  {object}  dto.StatusResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/pos/cancel-sale [post]
func (h *POSHandler) CancelSale(c *fiber.Ctx) error {
	var in dto.CancelSaleRequest
	if err := bind(c, &in); err != nil {
		return err
	}
	out, err := h.uc.CancelSale(c.UserContext(), in.Reason, in.Items, GetUserID(c), c.Get(HeaderApprovalToken))
	if err != nil {
		return err
	}
	return c.JSON(dto.StatusResponse{Status: "ok", ApprovedBy: out.ApprovedBy})
}

// DiscountOverride godoc
// @Summary      Descuento manual sobre el ticket
// @Description  403 sobre max_discount; desde approval_threshold exige token discount_override.
// @Tags         pos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        x-approval-token  header  string                       false  "token de aprobación"
// @Param        body              body    dto.DiscountOverrideRequest  true   "amount, subtotal, reason"
// @Success      200  {object}  dto.DiscountOverrideResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/pos/discount-override [post]
func (h *POSHandler) DiscountOverride(c *fiber.Ctx) error {
	var in dto.DiscountOverrideRequest
	if err := bind(c, &in); err != nil {
		return err
	}
	out, err := h.uc.DiscountOverride(c.UserContext(), pos.OverrideInput{
		Amount:   in.Amount,
		Subtotal: in.Subtotal,
		Reason:   in.Reason,
		UserID:   GetUserID(c),
		Token:    c.Get(HeaderApprovalToken),
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.DiscountOverrideResponse{Status: "ok", Percent: out.Percent.Round(2), ApprovedBy: out.ApprovedBy})
}
