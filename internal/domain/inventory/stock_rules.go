package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/greenstore-api/internal/domain"
	"github.com/jhoicas/greenstore-api/internal/domain/entity"
)

// Deduct calcula el stock tras una salida por venta o merma.
// Falla con ErrInsufficientStock si la cantidad supera el stock disponible.
func Deduct(current, quantity decimal.Decimal) (decimal.Decimal, error) {
	if current.LessThan(quantity) {
		return current, domain.ErrInsufficientStock
	}
	return current.Sub(quantity), nil
}

// ApplyDelta suma un delta con signo (ajuste o movimiento manual).
// Falla con ErrNegativeStock si el resultado quedaría por debajo de cero.
func ApplyDelta(current, delta decimal.Decimal) (decimal.Decimal, error) {
	next := current.Add(delta)
	if next.IsNegative() {
		return current, domain.ErrNegativeStock
	}
	return next, nil
}

// Valuation valor monetario de una cantidad (se usa el valor absoluto) a un precio.
func Valuation(quantity, price decimal.Decimal) decimal.Decimal {
	return quantity.Abs().Mul(price)
}

// Escalas de las columnas NUMERIC: cantidades con 3 decimales, dinero con 2.
const (
	QuantityScale = 3
	MoneyScale    = 2
)

// ValidQuantityScale indica si la cantidad cabe en la escala de stock sin redondeo.
func ValidQuantityScale(q decimal.Decimal) bool {
	return q.Equal(q.Truncate(QuantityScale))
}

// CheckUnit rechaza cantidades fraccionarias en productos que se venden por unidad.
func CheckUnit(unitType string, q decimal.Decimal) error {
	if entity.IsCountUnit(unitType) && !q.Equal(q.Truncate(0)) {
		return domain.ErrFractionalQuantity
	}
	return nil
}

// Money redondea un importe a la escala monetaria.
func Money(v decimal.Decimal) decimal.Decimal {
	return v.Round(MoneyScale)
}
