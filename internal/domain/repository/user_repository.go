package repository

import (
	"context"

	"github.com/jhoicas/greenstore-api/internal/domain/entity"
)

// UserRepository lectura de usuarios para re-autenticación de aprobadores.
type UserRepository interface {
	// GetByEmail devuelve nil, nil si no existe.
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
}
