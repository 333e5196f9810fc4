package entity

import (
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de descuento.
const (
	DiscountPercent     = "percent"
	DiscountFixed       = "fixed"
	DiscountBuyXGetY    = "buy_x_get_y"
	DiscountFixedBundle = "fixed_bundle"
)

// Alcance del descuento.
const (
	TargetAll      = "all"
	TargetCategory = "category"
	TargetProduct  = "product"
	TargetCombo    = "combo"
)

// StackingExclusive es la única regla de acumulación soportada: un descuento por venta.
const StackingExclusive = "exclusive"

// Discount promoción aplicable a una venta. Cantidades en cero se tratan como no configuradas.
type Discount struct {
	ID           string
	Name         string
	Type         string
	Value        decimal.Decimal
	MinQuantity  decimal.Decimal
	BuyQuantity  decimal.Decimal
	GetQuantity  decimal.Decimal
	TargetType   string
	TargetValue  string // id de producto/categoría; en combo, ids separados por coma
	DaysOfWeek   []int  // 0=domingo ... 6=sábado; vacío = todos
	StartsAt     *time.Time
	EndsAt       *time.Time
	StartsTime   string // HH:MM
	EndsTime     string // HH:MM
	StackingRule string
	Priority     int
	Active       bool
	CreatedAt    time.Time
}

// IsValidDiscountType indica si t es un tipo soportado.
func IsValidDiscountType(t string) bool {
	switch t {
	case DiscountPercent, DiscountFixed, DiscountBuyXGetY, DiscountFixedBundle:
		return true
	}
	return false
}

// IsActiveAt indica si el descuento está activo y dentro de sus ventanas de día, fecha y hora.
func (d *Discount) IsActiveAt(t time.Time) bool {
	if !d.Active {
		return false
	}
	if len(d.DaysOfWeek) > 0 && !slices.Contains(d.DaysOfWeek, int(t.Weekday())) {
		return false
	}
	if d.StartsAt != nil && t.Before(*d.StartsAt) {
		return false
	}
	if d.EndsAt != nil && t.After(*d.EndsAt) {
		return false
	}
	clock := t.Format("15:04")
	if d.StartsTime != "" && clock < d.StartsTime {
		return false
	}
	if d.EndsTime != "" && clock > d.EndsTime {
		return false
	}
	return true
}

// AppliesTo indica si el alcance del descuento incluye al producto.
func (d *Discount) AppliesTo(p *Product) bool {
	switch d.TargetType {
	case "", TargetAll:
		return true
	case TargetProduct:
		return d.TargetValue == p.ID
	case TargetCategory:
		return p.CategoryID != "" && d.TargetValue == p.CategoryID
	case TargetCombo:
		for _, id := range strings.Split(d.TargetValue, ",") {
			if strings.TrimSpace(id) == p.ID {
				return true
			}
		}
	}
	return false
}
