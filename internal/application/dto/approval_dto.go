package dto

import (
	"encoding/json"
	"time"
)

// IssueApprovalRequest body para POST /api/approvals (re-autenticación del gerente).
type IssueApprovalRequest struct {
	Email    string          `json:"email" validate:"required,email"`
	Password string          `json:"password" validate:"required"`
	Action   string          `json:"action" validate:"required,oneof=remove_item discount_override cancel_sale user_update stock_loss stock_adjust"`
	Reason   string          `json:"reason" validate:"max=255"`
	Metadata json.RawMessage `json:"metadata,omitempty"`
}

// ApprovalResponse token en claro (se muestra una sola vez) y su vencimiento.
type ApprovalResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
