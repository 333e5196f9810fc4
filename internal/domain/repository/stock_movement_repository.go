package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/greenstore-api/internal/domain/entity"
)

// MovementFilter filtro de listado de movimientos; ProductID vacío lista todos.
type MovementFilter struct {
	ProductID string
	Limit     int
}

// StockMovementRepository puerto del ledger de movimientos (append-only).
type StockMovementRepository interface {
	Create(ctx context.Context, m *entity.StockMovement) error
	List(ctx context.Context, f MovementFilter) ([]*entity.StockMovement, error)
	// SumDelta devuelve la suma de deltas del producto (reconciliación).
	SumDelta(ctx context.Context, productID string) (decimal.Decimal, error)
}

// StockLossRepository puerto de registros de merma.
type StockLossRepository interface {
	Create(ctx context.Context, l *entity.StockLoss) error
	List(ctx context.Context, limit int) ([]*entity.StockLoss, error)
}
