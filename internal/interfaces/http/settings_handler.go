package http

import (
	"encoding/json"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/greenstore-api/internal/application/settings"
)

// SettingsHandler lectura y actualización de umbrales (admin).
type SettingsHandler struct {
	uc *settings.UseCase
}

// NewSettingsHandler construye el handler.
func NewSettingsHandler(uc *settings.UseCase) *SettingsHandler {
	return &SettingsHandler{uc: uc}
}

// GetAll godoc
// @Summary      Obtener configuración
// @Tags         settings
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /api/settings [get]
func (h *SettingsHandler) GetAll(c *fiber.Ctx) error {
	all, err := h.uc.GetAll(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(all)
}

// Update godoc
// @Summary      Actualizar configuración
// @Description  Upsert de cada clave; los valores pueden enviarse como número o texto.
// @Tags         settings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  map[string]string  true  "clave -> valor"
// @Success      200  {object}  map[string]int
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/settings [put]
func (h *SettingsHandler) Update(c *fiber.Ctx) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(c.Body(), &raw); err != nil {
		return errInvalidBody
	}
	values := make(map[string]string, len(raw))
	for k, v := range raw {
		values[k] = settingValue(v)
	}
	n, err := h.uc.Update(c.UserContext(), values, GetUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"updated": n})
}

// settingValue acepta "20" o 20.
func settingValue(v json.RawMessage) string {
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(v, &n); err == nil {
		return n.String()
	}
	var b bool
	if err := json.Unmarshal(v, &b); err == nil {
		return strconv.FormatBool(b)
	}
	return string(v)
}
