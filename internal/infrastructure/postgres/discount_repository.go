package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/greenstore-api/internal/domain"
	"github.com/jhoicas/greenstore-api/internal/domain/entity"
	"github.com/jhoicas/greenstore-api/internal/domain/repository"
)

var _ repository.DiscountRepository = (*DiscountRepo)(nil)

const discountColumns = `id, name, type, value, min_quantity, buy_quantity, get_quantity, target_type, target_value,
	days_of_week, starts_at, ends_at, starts_time, ends_time, stacking_rule, priority, active, created_at`

// DiscountRepo descuentos sobre PostgreSQL.
type DiscountRepo struct {
	q Querier
}

// NewDiscountRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDiscountRepository(q Querier) *DiscountRepo {
	return &DiscountRepo{q: q}
}

// Create persiste un descuento nuevo.
func (r *DiscountRepo) Create(ctx context.Context, d *entity.Discount) error {
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	err := r.q.QueryRow(ctx, `
		INSERT INTO discounts (id, name, type, value, min_quantity, buy_quantity, get_quantity, target_type, target_value,
			days_of_week, starts_at, ends_at, starts_time, ends_time, stacking_rule, priority, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING created_at`,
		d.ID, d.Name, d.Type, d.Value, nullableDecimal(d.MinQuantity), nullableDecimal(d.BuyQuantity),
		nullableDecimal(d.GetQuantity), d.TargetType, nullableString(d.TargetValue), toInt32s(d.DaysOfWeek),
		d.StartsAt, d.EndsAt, nullableString(d.StartsTime), nullableString(d.EndsTime), d.StackingRule,
		d.Priority, d.Active,
	).Scan(&d.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert discount: %w", err)
	}
	return nil
}

// Update reemplaza todos los campos editables.
func (r *DiscountRepo) Update(ctx context.Context, d *entity.Discount) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE discounts
		SET name = $2, type = $3, value = $4, min_quantity = $5, buy_quantity = $6, get_quantity = $7,
		    target_type = $8, target_value = $9, days_of_week = $10, starts_at = $11, ends_at = $12,
		    starts_time = $13, ends_time = $14, stacking_rule = $15, priority = $16, active = $17
		WHERE id = $1`,
		d.ID, d.Name, d.Type, d.Value, nullableDecimal(d.MinQuantity), nullableDecimal(d.BuyQuantity),
		nullableDecimal(d.GetQuantity), d.TargetType, nullableString(d.TargetValue), toInt32s(d.DaysOfWeek),
		d.StartsAt, d.EndsAt, nullableString(d.StartsTime), nullableString(d.EndsTime), d.StackingRule,
		d.Priority, d.Active,
	)
	if err != nil {
		return fmt.Errorf("update discount: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrDiscountNotFound
	}
	return nil
}

// GetByID obtiene un descuento; nil si no existe.
func (r *DiscountRepo) GetByID(ctx context.Context, id string) (*entity.Discount, error) {
	d, err := scanDiscount(r.q.QueryRow(ctx, `SELECT `+discountColumns+` FROM discounts WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get discount: %w", err)
	}
	return d, nil
}

// List todos los descuentos, los más nuevos primero.
func (r *DiscountRepo) List(ctx context.Context) ([]*entity.Discount, error) {
	rows, err := r.q.Query(ctx, `SELECT `+discountColumns+` FROM discounts ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("list discounts: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Discount, 0)
	for rows.Next() {
		d, err := scanDiscount(rows)
		if err != nil {
			return nil, fmt.Errorf("scan discount: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

func scanDiscount(row pgx.Row) (*entity.Discount, error) {
	var d entity.Discount
	var minQty, buyQty, getQty decimal.NullDecimal
	var targetValue, startsTime, endsTime *string
	var days []int32
	err := row.Scan(&d.ID, &d.Name, &d.Type, &d.Value, &minQty, &buyQty, &getQty, &d.TargetType,
		&targetValue, &days, &d.StartsAt, &d.EndsAt, &startsTime, &endsTime, &d.StackingRule,
		&d.Priority, &d.Active, &d.CreatedAt)
	if err != nil {
		return nil, err
	}
	d.MinQuantity = minQty.Decimal
	d.BuyQuantity = buyQty.Decimal
	d.GetQuantity = getQty.Decimal
	d.TargetValue = derefString(targetValue)
	d.StartsTime = derefString(startsTime)
	d.EndsTime = derefString(endsTime)
	for _, day := range days {
		d.DaysOfWeek = append(d.DaysOfWeek, int(day))
	}
	return &d, nil
}

// nullableDecimal guarda cero como NULL (cantidad no configurada).
func nullableDecimal(v decimal.Decimal) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: v, Valid: !v.IsZero()}
}

func toInt32s(v []int) []int32 {
	if len(v) == 0 {
		return nil
	}
	out := make([]int32, len(v))
	for i, x := range v {
		out[i] = int32(x)
	}
	return out
}
