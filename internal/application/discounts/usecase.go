// Package discounts administra las promociones (alta, edición y listado) para gerentes.
package discounts

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/greenstore-api/internal/application/audit"
	"github.com/jhoicas/greenstore-api/internal/domain"
	"github.com/jhoicas/greenstore-api/internal/domain/entity"
	"github.com/jhoicas/greenstore-api/internal/domain/policy"
	"github.com/jhoicas/greenstore-api/internal/domain/repository"
)

// UseCase casos de uso de descuentos.
type UseCase struct {
	tx    repository.TxRunner
	repos repository.Repos
}

// NewUseCase construye el caso de uso.
func NewUseCase(tx repository.TxRunner, repos repository.Repos) *UseCase {
	return &UseCase{tx: tx, repos: repos}
}

// Input campos de un descuento. En Update un puntero nil conserva el valor actual.
type Input struct {
	Name         *string
	Type         *string
	Value        *decimal.Decimal
	MinQuantity  *decimal.Decimal
	BuyQuantity  *decimal.Decimal
	GetQuantity  *decimal.Decimal
	TargetType   *string
	TargetValue  *string
	DaysOfWeek   []int // nil conserva; vacío limpia
	StartsAt     *time.Time
	EndsAt       *time.Time
	StartsTime   *string
	EndsTime     *string
	StackingRule *string
	Priority     *int
	Active       *bool
}

// List todos los descuentos, más recientes primero.
func (uc *UseCase) List(ctx context.Context) ([]*entity.Discount, error) {
	return uc.repos.Discounts.List(ctx)
}

// Create da de alta un descuento. Por defecto alcance all, acumulación exclusive e inactivo.
func (uc *UseCase) Create(ctx context.Context, in Input, userID string) (*entity.Discount, error) {
	d := &entity.Discount{TargetType: entity.TargetAll, StackingRule: entity.StackingExclusive}
	apply(d, in)
	var out *entity.Discount
	err := uc.tx.Run(ctx, func(ctx context.Context, r repository.Repos) error {
		if err := validate(ctx, r, d); err != nil {
			return err
		}
		if err := r.Discounts.Create(ctx, d); err != nil {
			return err
		}
		out = d
		return audit.Record(ctx, r.Audit, entity.AuditDiscountCreated, summary(d), userID, nil)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Update aplica un cambio parcial y revalida el descuento resultante.
func (uc *UseCase) Update(ctx context.Context, id string, in Input, userID string) (*entity.Discount, error) {
	var out *entity.Discount
	err := uc.tx.Run(ctx, func(ctx context.Context, r repository.Repos) error {
		d, err := r.Discounts.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if d == nil {
			return domain.ErrDiscountNotFound
		}
		apply(d, in)
		if err := validate(ctx, r, d); err != nil {
			return err
		}
		if err := r.Discounts.Update(ctx, d); err != nil {
			return err
		}
		out = d
		return audit.Record(ctx, r.Audit, entity.AuditDiscountUpdated, summary(d), userID, nil)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func apply(d *entity.Discount, in Input) {
	if in.Name != nil {
		d.Name = strings.TrimSpace(*in.Name)
	}
	if in.Type != nil {
		d.Type = *in.Type
	}
	if in.Value != nil {
		d.Value = *in.Value
	}
	if in.MinQuantity != nil {
		d.MinQuantity = *in.MinQuantity
	}
	if in.BuyQuantity != nil {
		d.BuyQuantity = *in.BuyQuantity
	}
	if in.GetQuantity != nil {
		d.GetQuantity = *in.GetQuantity
	}
	if in.TargetType != nil {
		d.TargetType = *in.TargetType
	}
	if in.TargetValue != nil {
		d.TargetValue = strings.TrimSpace(*in.TargetValue)
	}
	if in.DaysOfWeek != nil {
		d.DaysOfWeek = in.DaysOfWeek
	}
	if in.StartsAt != nil {
		d.StartsAt = in.StartsAt
	}
	if in.EndsAt != nil {
		d.EndsAt = in.EndsAt
	}
	if in.StartsTime != nil {
		d.StartsTime = *in.StartsTime
	}
	if in.EndsTime != nil {
		d.EndsTime = *in.EndsTime
	}
	if in.StackingRule != nil {
		d.StackingRule = *in.StackingRule
	}
	if in.Priority != nil {
		d.Priority = *in.Priority
	}
	if in.Active != nil {
		d.Active = *in.Active
	}
}

func validate(ctx context.Context, r repository.Repos, d *entity.Discount) error {
	if d.Name == "" {
		return domain.NewBusinessError(domain.KindInvalid, "el nombre es obligatorio")
	}
	if !entity.IsValidDiscountType(d.Type) {
		return domain.NewBusinessError(domain.KindInvalid, "tipo de descuento inválido: %s", d.Type)
	}
	for _, q := range []decimal.Decimal{d.Value, d.MinQuantity, d.BuyQuantity, d.GetQuantity} {
		if q.IsNegative() {
			return domain.NewBusinessError(domain.KindInvalid, "valores y cantidades no pueden ser negativos")
		}
	}
	switch d.TargetType {
	case entity.TargetAll:
	case entity.TargetCategory, entity.TargetProduct, entity.TargetCombo:
		if d.TargetValue == "" {
			return domain.NewBusinessError(domain.KindInvalid, "el alcance %s requiere target_value", d.TargetType)
		}
	default:
		return domain.NewBusinessError(domain.KindInvalid, "alcance inválido: %s", d.TargetType)
	}
	if d.StackingRule != entity.StackingExclusive {
		return domain.NewBusinessError(domain.KindInvalid, "regla de acumulación no soportada: %s", d.StackingRule)
	}
	for _, day := range d.DaysOfWeek {
		if day < 0 || day > 6 {
			return domain.NewBusinessError(domain.KindInvalid, "día de la semana inválido: %d", day)
		}
	}
	for _, clock := range []string{d.StartsTime, d.EndsTime} {
		if clock == "" {
			continue
		}
		if _, err := time.Parse("15:04", clock); err != nil {
			return domain.NewBusinessError(domain.KindInvalid, "hora inválida (HH:MM): %s", clock)
		}
	}
	if d.StartsAt != nil && d.EndsAt != nil && d.EndsAt.Before(*d.StartsAt) {
		return domain.NewBusinessError(domain.KindInvalid, "ends_at anterior a starts_at")
	}
	if d.Type == entity.DiscountFixedBundle && (!d.BuyQuantity.IsPositive() || !d.Value.IsPositive()) {
		return domain.ErrBundleIncomplete
	}

	if d.Type != entity.DiscountPercent {
		return nil
	}
	settings, err := r.Settings.GetMany(ctx, []string{entity.SettingMaxDiscount})
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	if policy.FromSettings(settings).DiscountAboveCeiling(d.Value) {
		return domain.ErrDiscountCeiling
	}
	return nil
}

func summary(d *entity.Discount) audit.Details {
	return audit.Details{"id": d.ID, "name": d.Name, "type": d.Type, "value": d.Value}
}
