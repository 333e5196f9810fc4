package repository

import (
	"context"

	"github.com/jhoicas/greenstore-api/internal/domain/entity"
)

// AuditLogRepository registro append-only de auditoría.
type AuditLogRepository interface {
	Append(ctx context.Context, entry *entity.AuditLog) error
}
