package discount_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/greenstore-api/internal/domain/discount"
	"github.com/jhoicas/greenstore-api/internal/domain/entity"
)

func d(v string) decimal.Decimal { return decimal.RequireFromString(v) }

func compute(disc *entity.Discount, qty, price string) decimal.Decimal {
	q, p := d(qty), d(price)
	return discount.Compute(disc, q, p, q.Mul(p))
}

func TestCompute_Vectores(t *testing.T) {
	cases := []struct {
		name  string
		disc  *entity.Discount
		qty   string
		price string
		want  string
	}{
		{"sin descuento", nil, "3", "5", "0"},
		{"porcentaje", &entity.Discount{Type: entity.DiscountPercent, Value: d("10")}, "4", "25", "10"},
		{"fijo", &entity.Discount{Type: entity.DiscountFixed, Value: d("7.5")}, "2", "10", "7.5"},
		{"fijo mayor al subtotal se recorta", &entity.Discount{Type: entity.DiscountFixed, Value: d("50")}, "2", "10", "20"},
		{"porcentaje sobre 100 se recorta", &entity.Discount{Type: entity.DiscountPercent, Value: d("150")}, "1", "8", "8"},
		{"tipo desconocido", &entity.Discount{Type: "mystery", Value: d("5")}, "1", "8", "0"},
		{"cantidad mínima no alcanzada", &entity.Discount{Type: entity.DiscountFixed, Value: d("5"), MinQuantity: d("3")}, "2", "10", "0"},
		{"cantidad mínima alcanzada", &entity.Discount{Type: entity.DiscountFixed, Value: d("5"), MinQuantity: d("3")}, "3", "10", "5"},
		{"combo exacto", &entity.Discount{Type: entity.DiscountFixedBundle, BuyQuantity: d("3"), Value: d("10")}, "7", "5", "10"},
		{"combo sin paquetes completos", &entity.Discount{Type: entity.DiscountFixedBundle, BuyQuantity: d("3"), Value: d("10")}, "2", "5", "0"},
		{"combo más caro que el precio normal", &entity.Discount{Type: entity.DiscountFixedBundle, BuyQuantity: d("2"), Value: d("30")}, "2", "5", "0"},
		{"combo sin cantidad configurada", &entity.Discount{Type: entity.DiscountFixedBundle, Value: d("10")}, "6", "5", "0"},
		{"lleve x pague y bajo el umbral", &entity.Discount{Type: entity.DiscountBuyXGetY, BuyQuantity: d("3"), GetQuantity: d("1")}, "2", "6.5", "0"},
		{"lleve x pague y en el umbral", &entity.Discount{Type: entity.DiscountBuyXGetY, BuyQuantity: d("3"), GetQuantity: d("1")}, "3", "6.5", "6.5"},
		{"lleve x pague y sin compra configurada", &entity.Discount{Type: entity.DiscountBuyXGetY, GetQuantity: d("1")}, "3", "6.5", "0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := compute(tc.disc, tc.qty, tc.price)
			assert.True(t, got.Equal(d(tc.want)), "got %s want %s", got, tc.want)
		})
	}
}

func TestCompute_SiempreDentroDelSubtotal(t *testing.T) {
	types := []string{entity.DiscountPercent, entity.DiscountFixed, entity.DiscountBuyXGetY, entity.DiscountFixedBundle}
	values := []string{"0", "1", "9.99", "100", "1000"}
	qtys := []string{"1", "2", "3", "7", "12"}
	for _, typ := range types {
		for _, v := range values {
			for _, q := range qtys {
				disc := &entity.Discount{Type: typ, Value: d(v), BuyQuantity: d("3"), GetQuantity: d("5")}
				qty, price := d(q), d("4.25")
				subtotal := qty.Mul(price)
				got := discount.Compute(disc, qty, price, subtotal)
				assert.False(t, got.IsNegative(), "%s v=%s q=%s negativo: %s", typ, v, q, got)
				assert.True(t, got.LessThanOrEqual(subtotal), "%s v=%s q=%s excede subtotal: %s", typ, v, q, got)
			}
		}
	}
}

func TestPercent(t *testing.T) {
	assert.True(t, discount.Percent(d("5"), d("20")).Equal(d("25")))
	assert.True(t, discount.Percent(d("5"), decimal.Zero).IsZero())
}
