package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/greenstore-api/internal/domain"
	"github.com/jhoicas/greenstore-api/internal/domain/entity"
	"github.com/jhoicas/greenstore-api/internal/domain/repository"
)

var _ repository.ApprovalRepository = (*ApprovalRepo)(nil)

// ApprovalRepo tokens de aprobación sobre PostgreSQL.
type ApprovalRepo struct {
	q Querier
}

// NewApprovalRepository construye el adaptador. Pasar pool o tx (Querier).
func NewApprovalRepository(q Querier) *ApprovalRepo {
	return &ApprovalRepo{q: q}
}

// Create persiste la aprobación (solo el hash del token).
func (r *ApprovalRepo) Create(ctx context.Context, a *entity.Approval) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	metadata := a.Metadata
	if len(metadata) == 0 {
		metadata = []byte(`{}`)
	}
	err := r.q.QueryRow(ctx, `
		INSERT INTO approvals (id, token_hash, action, reason, metadata, approved_by, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at`,
		a.ID, a.TokenHash, a.Action, a.Reason, metadata, a.ApprovedBy, a.ExpiresAt,
	).Scan(&a.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert approval: %w", err)
	}
	return nil
}

// FindUnused busca por hash y acción entre las no usadas; nil si no existe.
func (r *ApprovalRepo) FindUnused(ctx context.Context, tokenHash, action string) (*entity.Approval, error) {
	var a entity.Approval
	err := r.q.QueryRow(ctx, `
		SELECT id, token_hash, action, reason, metadata, approved_by, expires_at, used_at, created_at
		FROM approvals
		WHERE token_hash = $1 AND action = $2 AND used_at IS NULL`, tokenHash, action,
	).Scan(&a.ID, &a.TokenHash, &a.Action, &a.Reason, &a.Metadata, &a.ApprovedBy, &a.ExpiresAt, &a.UsedAt, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find approval: %w", err)
	}
	return &a, nil
}

// MarkUsed consume la aprobación con un UPDATE condicional; false si ya estaba usada.
func (r *ApprovalRepo) MarkUsed(ctx context.Context, id string, usedAt time.Time) (bool, error) {
	tag, err := r.q.Exec(ctx, `UPDATE approvals SET used_at = $2 WHERE id = $1 AND used_at IS NULL`, id, usedAt)
	if err != nil {
		return false, fmt.Errorf("mark approval used: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}
