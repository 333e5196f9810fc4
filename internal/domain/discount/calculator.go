// Package discount calcula el monto de descuento de una línea de venta (servicio de dominio puro).
package discount

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/greenstore-api/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// Compute devuelve el monto a descontar sobre subtotal (= quantity * unitPrice).
// El resultado siempre queda en [0, subtotal]; un descuento nil o de tipo desconocido devuelve 0.
func Compute(d *entity.Discount, quantity, unitPrice, subtotal decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	amount := decimal.Zero
	switch d.Type {
	case entity.DiscountPercent:
		amount = subtotal.Mul(d.Value).Div(hundred)
	case entity.DiscountFixed:
		amount = d.Value
	case entity.DiscountBuyXGetY:
		if d.BuyQuantity.IsPositive() && quantity.GreaterThanOrEqual(d.BuyQuantity) {
			amount = unitPrice.Mul(d.GetQuantity)
		}
	case entity.DiscountFixedBundle:
		if d.BuyQuantity.IsPositive() && !d.Value.IsNegative() {
			bundles := quantity.Div(d.BuyQuantity).Floor()
			remainder := quantity.Sub(bundles.Mul(d.BuyQuantity))
			amount = subtotal.Sub(bundles.Mul(d.Value).Add(remainder.Mul(unitPrice)))
		}
	}

	if d.MinQuantity.IsPositive() && quantity.LessThan(d.MinQuantity) {
		amount = decimal.Zero
	}
	return clamp(amount, subtotal)
}

// Percent expresa amount como porcentaje de subtotal; 0 si el subtotal no es positivo.
func Percent(amount, subtotal decimal.Decimal) decimal.Decimal {
	if !subtotal.IsPositive() {
		return decimal.Zero
	}
	return amount.Div(subtotal).Mul(hundred)
}

func clamp(amount, subtotal decimal.Decimal) decimal.Decimal {
	if amount.IsNegative() {
		return decimal.Zero
	}
	if subtotal.IsNegative() {
		return decimal.Zero
	}
	if amount.GreaterThan(subtotal) {
		return subtotal
	}
	return amount
}
