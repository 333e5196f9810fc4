package repository

import (
	"context"
	"time"

	"github.com/jhoicas/greenstore-api/internal/domain/entity"
)

// ApprovalRepository puerto de tokens de aprobación.
type ApprovalRepository interface {
	Create(ctx context.Context, a *entity.Approval) error
	// FindUnused busca una aprobación no usada por hash y acción; nil si no existe.
	FindUnused(ctx context.Context, tokenHash, action string) (*entity.Approval, error)
	// MarkUsed marca la aprobación como usada solo si seguía sin usar; false si otro la consumió primero.
	MarkUsed(ctx context.Context, id string, usedAt time.Time) (bool, error)
}
