// Package policy interpreta los umbrales configurados y decide qué operaciones requieren aprobación.
// Una Policy se carga una sola vez por petición y se pasa explícitamente a las compuertas.
package policy

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/greenstore-api/internal/domain/entity"
)

// Valores por defecto del bloqueo por intentos fallidos.
const (
	DefaultLoginAttempts = 5
	DefaultLockMinutes   = 10
)

// Policy umbrales vigentes. Un techo en cero (o ausente) deshabilita su compuerta.
type Policy struct {
	MaxDiscount       decimal.Decimal // % máximo de descuento
	MaxLosses         decimal.Decimal // valor máximo de merma sin aprobación
	MaxStockAdjust    decimal.Decimal // valor máximo de ajuste sin aprobación
	ApprovalThreshold decimal.Decimal // % desde el cual un override de descuento requiere aprobación
	LoginAttempts     int
	LockMinutes       int
}

// FromSettings construye la política; valores ausentes o mal formados cuentan como cero (deshabilitado).
func FromSettings(s map[string]string) Policy {
	return Policy{
		MaxDiscount:       parseDecimal(s[entity.SettingMaxDiscount]),
		MaxLosses:         parseDecimal(s[entity.SettingMaxLosses]),
		MaxStockAdjust:    parseDecimal(s[entity.SettingMaxStockAdjust]),
		ApprovalThreshold: parseDecimal(s[entity.SettingApprovalThreshold]),
		LoginAttempts:     parsePositiveInt(s[entity.SettingLoginAttempts], DefaultLoginAttempts),
		LockMinutes:       parsePositiveInt(s[entity.SettingLockMinutes], DefaultLockMinutes),
	}
}

// Exceeds indica si value supera un techo habilitado.
func Exceeds(value, ceiling decimal.Decimal) bool {
	return ceiling.IsPositive() && value.GreaterThan(ceiling)
}

// AdjustNeedsApproval: |delta| * precio contra max_stock_adjust.
func (p Policy) AdjustNeedsApproval(delta, price decimal.Decimal) bool {
	return Exceeds(delta.Abs().Mul(price), p.MaxStockAdjust)
}

// LossNeedsApproval: cantidad * precio contra max_losses.
func (p Policy) LossNeedsApproval(quantity, price decimal.Decimal) bool {
	return Exceeds(quantity.Abs().Mul(price), p.MaxLosses)
}

// DiscountAboveCeiling: porcentaje efectivo contra max_discount.
func (p Policy) DiscountAboveCeiling(percent decimal.Decimal) bool {
	return Exceeds(percent, p.MaxDiscount)
}

// OverrideNeedsApproval: un override en o sobre approval_threshold requiere aprobación.
func (p Policy) OverrideNeedsApproval(percent decimal.Decimal) bool {
	return p.ApprovalThreshold.IsPositive() && percent.GreaterThanOrEqual(p.ApprovalThreshold)
}

// DiscountChecksEnabled indica si alguna compuerta de descuento está activa.
func (p Policy) DiscountChecksEnabled() bool {
	return p.MaxDiscount.IsPositive() || p.ApprovalThreshold.IsPositive()
}

func parseDecimal(v string) decimal.Decimal {
	v = strings.TrimSpace(v)
	if v == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(v)
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d
}

func parsePositiveInt(v string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n <= 0 {
		return def
	}
	return n
}
