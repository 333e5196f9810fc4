package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/greenstore-api/internal/application/approval"
	"github.com/jhoicas/greenstore-api/internal/application/dto"
)

// ApprovalHandler emite tokens de aprobación tras re-autenticar al gerente (público).
type ApprovalHandler struct {
	svc *approval.Service
}

// NewApprovalHandler construye el handler.
func NewApprovalHandler(svc *approval.Service) *ApprovalHandler {
	return &ApprovalHandler{svc: svc}
}

// Issue godoc
// @Summary      Emitir token de aprobación
// @Description  Re-autentica a un gerente o administrador y devuelve un token de un solo uso válido 10 minutos.
// @Tags         approvals
// @Accept       json
// @Produce      json
// @Param        body  body  dto.IssueApprovalRequest  true  "email, password, action, reason, metadata"
// @Success      201  {object}  dto.ApprovalResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/approvals [post]
func (h *ApprovalHandler) Issue(c *fiber.Ctx) error {
	var in dto.IssueApprovalRequest
	if err := bind(c, &in); err != nil {
		return err
	}
	issued, err := h.svc.Issue(c.UserContext(), approval.IssueInput{
		Email:    in.Email,
		Password: in.Password,
		Action:   in.Action,
		Reason:   in.Reason,
		Metadata: in.Metadata,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ApprovalResponse{Token: issued.Token, ExpiresAt: issued.ExpiresAt})
}
