package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/greenstore-api/internal/application/dto"
	"github.com/jhoicas/greenstore-api/internal/application/sales"
)

// SalesHandler maneja el registro de ventas y sus recibos (protegido).
type SalesHandler struct {
	uc *sales.UseCase
}

// NewSalesHandler construye el handler.
func NewSalesHandler(uc *sales.UseCase) *SalesHandler {
	return &SalesHandler{uc: uc}
}

// Register godoc
// @Summary      Registrar venta
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterSaleRequest  true  "product_id, quantity, payment_method, discount_id opcional"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SalesHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterSaleRequest
	if err := bind(c, &in); err != nil {
		return err
	}
	sale, err := h.uc.RegisterSale(c.UserContext(), sales.RegisterInput{
		ProductID:     in.ProductID,
		Quantity:      in.Quantity,
		PaymentMethod: in.PaymentMethod,
		DiscountID:    in.DiscountID,
		UserID:        GetUserID(c),
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SaleResponse{
		ID:             sale.ID,
		Total:          sale.Total,
		DiscountAmount: sale.DiscountAmount,
		FinalTotal:     sale.FinalTotal,
		CreatedAt:      sale.CreatedAt,
	})
}

// Receipt godoc
// @Summary      Descargar recibo PDF de una venta
// @Tags         sales
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/receipt [get]
func (h *SalesHandler) Receipt(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	pdf, filename, err := h.uc.Receipt(c.UserContext(), id)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="`+filename+`"`)
	return c.Send(pdf)
}
