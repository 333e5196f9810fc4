package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/greenstore-api/internal/domain/entity"
	"github.com/jhoicas/greenstore-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo ventas sobre PostgreSQL.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste la venta y completa ID y fecha.
func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	err := r.q.QueryRow(ctx, `
		INSERT INTO sales (id, product_id, quantity, unit_price, total, discount_id, discount_amount, final_total, payment_method, sold_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at`,
		s.ID, s.ProductID, s.Quantity, s.UnitPrice, s.Total, s.DiscountID, s.DiscountAmount,
		s.FinalTotal, s.PaymentMethod, nullableString(s.SoldBy),
	).Scan(&s.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// GetByID obtiene la venta con el nombre del producto; nil si no existe.
func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	var s entity.Sale
	var soldBy *string
	err := r.q.QueryRow(ctx, `
		SELECT s.id, s.product_id, p.name, s.quantity, s.unit_price, s.total, s.discount_id,
		       s.discount_amount, s.final_total, s.payment_method, s.sold_by, s.created_at
		FROM sales s
		JOIN products p ON p.id = s.product_id
		WHERE s.id = $1`, id,
	).Scan(&s.ID, &s.ProductID, &s.ProductName, &s.Quantity, &s.UnitPrice, &s.Total, &s.DiscountID,
		&s.DiscountAmount, &s.FinalTotal, &s.PaymentMethod, &soldBy, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	s.SoldBy = derefString(soldBy)
	return &s, nil
}
