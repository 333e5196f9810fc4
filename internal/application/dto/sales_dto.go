package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterSaleRequest body para POST /api/sales.
type RegisterSaleRequest struct {
	ProductID     string          `json:"product_id" validate:"required,uuid"`
	Quantity      decimal.Decimal `json:"quantity"`
	PaymentMethod string          `json:"payment_method" validate:"required,max=50"`
	DiscountID    string          `json:"discount_id,omitempty" validate:"omitempty,uuid"`
}

// SaleResponse resumen de la venta registrada.
type SaleResponse struct {
	ID             string          `json:"id"`
	Total          decimal.Decimal `json:"total"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	FinalTotal     decimal.Decimal `json:"final_total"`
	CreatedAt      time.Time       `json:"created_at"`
}
