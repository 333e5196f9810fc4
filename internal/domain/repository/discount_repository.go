package repository

import (
	"context"

	"github.com/jhoicas/greenstore-api/internal/domain/entity"
)

// DiscountRepository puerto de persistencia de descuentos.
type DiscountRepository interface {
	Create(ctx context.Context, d *entity.Discount) error
	Update(ctx context.Context, d *entity.Discount) error
	GetByID(ctx context.Context, id string) (*entity.Discount, error)
	List(ctx context.Context) ([]*entity.Discount, error)
}
