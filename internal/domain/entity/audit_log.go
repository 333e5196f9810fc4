package entity

import (
	"encoding/json"
	"time"
)

// Acciones registradas en auditoría además de las acciones aprobables.
const (
	AuditApprovalGranted = "approval_granted"
	AuditStockMove       = "stock_move"
	AuditDiscountCreated = "discount_created"
	AuditDiscountUpdated = "discount_updated"
	AuditSettingsUpdated = "settings_updated"
)

// AuditLog entrada append-only del registro de auditoría.
type AuditLog struct {
	ID          string
	Action      string
	Details     json.RawMessage
	PerformedBy string
	ApprovedBy  *string
	CreatedAt   time.Time
}
