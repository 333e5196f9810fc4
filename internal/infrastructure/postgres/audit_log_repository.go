package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/greenstore-api/internal/domain/entity"
	"github.com/jhoicas/greenstore-api/internal/domain/repository"
)

var _ repository.AuditLogRepository = (*AuditLogRepo)(nil)

// AuditLogRepo auditoría append-only sobre PostgreSQL.
type AuditLogRepo struct {
	q Querier
}

// NewAuditLogRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAuditLogRepository(q Querier) *AuditLogRepo {
	return &AuditLogRepo{q: q}
}

func (r *AuditLogRepo) Append(ctx context.Context, e *entity.AuditLog) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	var details any
	if len(e.Details) > 0 {
		details = e.Details
	}
	err := r.q.QueryRow(ctx, `
		INSERT INTO audit_logs (id, action, details, performed_by, approved_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`,
		e.ID, e.Action, details, nullableString(e.PerformedBy), e.ApprovedBy,
	).Scan(&e.CreatedAt)
	if err != nil {
		return fmt.Errorf("append audit log: %w", err)
	}
	return nil
}
