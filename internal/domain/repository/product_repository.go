package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/greenstore-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// El catálogo se administra fuera de este servicio; aquí solo se lee y se mueve stock.
type ProductRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetForUpdate bloquea la fila del producto hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	UpdateStock(ctx context.Context, id string, currentStock decimal.Decimal) error
	ListBelowMin(ctx context.Context) ([]*entity.Product, error)
}
