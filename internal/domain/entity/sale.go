package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale es una venta de una línea. FinalTotal = max(Total - DiscountAmount, 0).
type Sale struct {
	ID             string
	ProductID      string
	ProductName    string // solo lectura (recibo)
	Quantity       decimal.Decimal
	UnitPrice      decimal.Decimal
	Total          decimal.Decimal
	DiscountID     *string
	DiscountAmount decimal.Decimal
	FinalTotal     decimal.Decimal
	PaymentMethod  string
	SoldBy         string
	CreatedAt      time.Time
}
