package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/greenstore-api/internal/application/discounts"
	"github.com/jhoicas/greenstore-api/internal/application/dto"
)

// DiscountHandler administración de descuentos (manager+).
type DiscountHandler struct {
	uc *discounts.UseCase
}

// NewDiscountHandler construye el handler.
func NewDiscountHandler(uc *discounts.UseCase) *DiscountHandler {
	return &DiscountHandler{uc: uc}
}

// List godoc
// @Summary      Listar descuentos
// @Tags         discounts
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.DiscountDTO
// @Router       /api/discounts [get]
func (h *DiscountHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.UserContext())
	if err != nil {
		return err
	}
	out := make([]dto.DiscountDTO, 0, len(list))
	for _, d := range list {
		out = append(out, dto.NewDiscountDTO(d))
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear descuento
// @Tags         discounts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.DiscountRequest  true  "name y type obligatorios"
// @Success      201  {object}  dto.DiscountDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/discounts [post]
func (h *DiscountHandler) Create(c *fiber.Ctx) error {
	var in dto.DiscountRequest
	if err := bind(c, &in); err != nil {
		return err
	}
	d, err := h.uc.Create(c.UserContext(), in.ToInput(), GetUserID(c))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewDiscountDTO(d))
}

// Update godoc
// @Summary      Actualizar descuento (parcial)
// @Tags         discounts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "ID del descuento"
// @Param        body  body  dto.DiscountRequest  true  "campos a cambiar"
// @Success      200  {object}  dto.DiscountDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/discounts/{id} [put]
func (h *DiscountHandler) Update(c *fiber.Ctx) error {
	var in dto.DiscountRequest
	if err := bind(c, &in); err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	d, err := h.uc.Update(c.UserContext(), id, in.ToInput(), GetUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewDiscountDTO(d))
}
