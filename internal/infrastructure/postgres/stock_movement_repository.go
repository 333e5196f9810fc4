package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/greenstore-api/internal/domain/entity"
	"github.com/jhoicas/greenstore-api/internal/domain/repository"
)

var (
	_ repository.StockMovementRepository = (*StockMovementRepo)(nil)
	_ repository.StockLossRepository     = (*StockLossRepo)(nil)
)

// StockMovementRepo ledger de movimientos sobre PostgreSQL (solo inserciones).
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create persiste un movimiento; asigna ID y fecha cuando faltan.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	err := r.q.QueryRow(ctx, `
		INSERT INTO stock_movements (id, product_id, type, delta, reason, performed_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`,
		m.ID, m.ProductID, m.Type, m.Delta, m.Reason, nullableString(m.PerformedBy),
	).Scan(&m.CreatedAt)
	if err != nil {
		return fmt.Errorf("create stock movement: %w", err)
	}
	return nil
}

// List movimientos más recientes primero, opcionalmente de un producto.
func (r *StockMovementRepo) List(ctx context.Context, f repository.MovementFilter) ([]*entity.StockMovement, error) {
	query := `
		SELECT m.id, m.product_id, p.name, m.type, m.delta, m.reason, m.performed_by, m.created_at
		FROM stock_movements m
		JOIN products p ON p.id = m.product_id`
	args := []any{}
	pos := 1
	if f.ProductID != "" {
		query += fmt.Sprintf(" WHERE m.product_id = $%d", pos)
		args = append(args, f.ProductID)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY m.created_at DESC, m.id DESC LIMIT $%d", pos)
	args = append(args, f.Limit)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.StockMovement, 0)
	for rows.Next() {
		var m entity.StockMovement
		var performedBy *string
		if err := rows.Scan(&m.ID, &m.ProductID, &m.ProductName, &m.Type, &m.Delta, &m.Reason,
			&performedBy, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		m.PerformedBy = derefString(performedBy)
		list = append(list, &m)
	}
	return list, rows.Err()
}

// SumDelta suma los deltas del producto (0 si no tiene movimientos).
func (r *StockMovementRepo) SumDelta(ctx context.Context, productID string) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(delta), 0) FROM stock_movements WHERE product_id = $1`, productID,
	).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum deltas: %w", err)
	}
	return sum, nil
}

// StockLossRepo registros de merma sobre PostgreSQL.
type StockLossRepo struct {
	q Querier
}

// NewStockLossRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockLossRepository(q Querier) *StockLossRepo {
	return &StockLossRepo{q: q}
}

func (r *StockLossRepo) Create(ctx context.Context, l *entity.StockLoss) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	err := r.q.QueryRow(ctx, `
		INSERT INTO stock_losses (id, product_id, quantity, reason, reported_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`,
		l.ID, l.ProductID, l.Quantity, l.Reason, nullableString(l.ReportedBy),
	).Scan(&l.CreatedAt)
	if err != nil {
		return fmt.Errorf("create stock loss: %w", err)
	}
	return nil
}

func (r *StockLossRepo) List(ctx context.Context, limit int) ([]*entity.StockLoss, error) {
	rows, err := r.q.Query(ctx, `
		SELECT l.id, l.product_id, p.name, l.quantity, l.reason, l.reported_by, l.created_at
		FROM stock_losses l
		JOIN products p ON p.id = l.product_id
		ORDER BY l.created_at DESC, l.id DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list stock losses: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.StockLoss, 0)
	for rows.Next() {
		var l entity.StockLoss
		var reportedBy *string
		if err := rows.Scan(&l.ID, &l.ProductID, &l.ProductName, &l.Quantity, &l.Reason,
			&reportedBy, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan loss: %w", err)
		}
		l.ReportedBy = derefString(reportedBy)
		list = append(list, &l)
	}
	return list, rows.Err()
}
