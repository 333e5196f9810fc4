// Package audit arma entradas de auditoría dentro de la transacción de la operación auditada.
package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jhoicas/greenstore-api/internal/domain/entity"
	"github.com/jhoicas/greenstore-api/internal/domain/repository"
)

// Details detalle libre serializado como JSON.
type Details map[string]any

// Record agrega la entrada; approvedBy es nil cuando la operación no requirió aprobación.
func Record(ctx context.Context, log repository.AuditLogRepository, action string, details Details, performedBy string, approvedBy *string) error {
	var raw json.RawMessage
	if details != nil {
		b, err := json.Marshal(details)
		if err != nil {
			return fmt.Errorf("marshal audit details: %w", err)
		}
		raw = b
	}
	return log.Append(ctx, &entity.AuditLog{
		Action:      action,
		Details:     raw,
		PerformedBy: performedBy,
		ApprovedBy:  approvedBy,
	})
}
