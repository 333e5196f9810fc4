package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/greenstore-api/internal/application/discounts"
	"github.com/jhoicas/greenstore-api/internal/domain/entity"
)

// DiscountRequest body para POST y PUT /api/discounts. En PUT los campos ausentes se conservan.
type DiscountRequest struct {
	Name         *string          `json:"name" validate:"omitempty,max=120"`
	Type         *string          `json:"type" validate:"omitempty,oneof=percent fixed buy_x_get_y fixed_bundle"`
	Value        *decimal.Decimal `json:"value"`
	MinQuantity  *decimal.Decimal `json:"min_quantity"`
	BuyQuantity  *decimal.Decimal `json:"buy_quantity"`
	GetQuantity  *decimal.Decimal `json:"get_quantity"`
	TargetType   *string          `json:"target_type" validate:"omitempty,oneof=all category product combo"`
	TargetValue  *string          `json:"target_value"`
	DaysOfWeek   []int            `json:"days_of_week" validate:"omitempty,dive,min=0,max=6"`
	StartsAt     *time.Time       `json:"starts_at"`
	EndsAt       *time.Time       `json:"ends_at"`
	StartsTime   *string          `json:"starts_time"`
	EndsTime     *string          `json:"ends_time"`
	StackingRule *string          `json:"stacking_rule"`
	Priority     *int             `json:"priority"`
	Active       *bool            `json:"active"`
}

// ToInput convierte el body al input del caso de uso.
func (r DiscountRequest) ToInput() discounts.Input {
	return discounts.Input{
		Name: r.Name, Type: r.Type, Value: r.Value, MinQuantity: r.MinQuantity,
		BuyQuantity: r.BuyQuantity, GetQuantity: r.GetQuantity, TargetType: r.TargetType,
		TargetValue: r.TargetValue, DaysOfWeek: r.DaysOfWeek, StartsAt: r.StartsAt, EndsAt: r.EndsAt,
		StartsTime: r.StartsTime, EndsTime: r.EndsTime, StackingRule: r.StackingRule,
		Priority: r.Priority, Active: r.Active,
	}
}

// DiscountDTO descuento tal como se expone.
type DiscountDTO struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Type         string          `json:"type"`
	Value        decimal.Decimal `json:"value"`
	MinQuantity  decimal.Decimal `json:"min_quantity"`
	BuyQuantity  decimal.Decimal `json:"buy_quantity"`
	GetQuantity  decimal.Decimal `json:"get_quantity"`
	TargetType   string          `json:"target_type"`
	TargetValue  string          `json:"target_value,omitempty"`
	DaysOfWeek   []int           `json:"days_of_week"`
	StartsAt     *time.Time      `json:"starts_at,omitempty"`
	EndsAt       *time.Time      `json:"ends_at,omitempty"`
	StartsTime   string          `json:"starts_time,omitempty"`
	EndsTime     string          `json:"ends_time,omitempty"`
	StackingRule string          `json:"stacking_rule"`
	Priority     int             `json:"priority"`
	Active       bool            `json:"active"`
	CreatedAt    time.Time       `json:"created_at"`
}

// NewDiscountDTO mapea la entidad.
func NewDiscountDTO(d *entity.Discount) DiscountDTO {
	days := d.DaysOfWeek
	if days == nil {
		days = []int{}
	}
	return DiscountDTO{
		ID: d.ID, Name: d.Name, Type: d.Type, Value: d.Value, MinQuantity: d.MinQuantity,
		BuyQuantity: d.BuyQuantity, GetQuantity: d.GetQuantity, TargetType: d.TargetType,
		TargetValue: d.TargetValue, DaysOfWeek: days, StartsAt: d.StartsAt, EndsAt: d.EndsAt,
		StartsTime: d.StartsTime, EndsTime: d.EndsTime, StackingRule: d.StackingRule,
		Priority: d.Priority, Active: d.Active, CreatedAt: d.CreatedAt,
	}
}
