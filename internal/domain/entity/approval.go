package entity

import (
	"encoding/json"
	"time"
)

// Acciones que pueden requerir aprobación de un gerente.
const (
	ActionRemoveItem       = "remove_item"
	ActionDiscountOverride = "discount_override"
	ActionCancelSale       = "cancel_sale"
	ActionUserUpdate       = "user_update"
	ActionStockLoss        = "stock_loss"
	ActionStockAdjust      = "stock_adjust"
)

var approvalActions = []string{
	ActionRemoveItem,
	ActionDiscountOverride,
	ActionCancelSale,
	ActionUserUpdate,
	ActionStockLoss,
	ActionStockAdjust,
}

// IsValidApprovalAction indica si a es una acción aprobable.
func IsValidApprovalAction(a string) bool {
	for _, v := range approvalActions {
		if v == a {
			return true
		}
	}
	return false
}

// Approval token de un solo uso emitido por un gerente. Solo se persiste el hash del token.
type Approval struct {
	ID         string
	TokenHash  string
	Action     string
	Reason     string
	Metadata   json.RawMessage
	ApprovedBy string
	ExpiresAt  time.Time
	UsedAt     *time.Time
	CreatedAt  time.Time
}

// Expired indica si el token venció en el instante now.
func (a *Approval) Expired(now time.Time) bool {
	return now.After(a.ExpiresAt)
}
