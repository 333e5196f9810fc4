package dto

import "github.com/shopspring/decimal"

// RemoveItemRequest body para POST /api/pos/remove-item.
type RemoveItemRequest struct {
	Item   string `json:"item" validate:"required"`
	Reason string `json:"reason" validate:"required,max=255"`
}

// CancelSaleRequest body para POST /api/pos/cancel-sale.
type CancelSaleRequest struct {
	Reason string `json:"reason" validate:"required,max=255"`
	Items  int    `json:"items" validate:"min=0"`
}

// DiscountOverrideRequest body para POST /api/pos/discount-override.
type DiscountOverrideRequest struct {
	Amount   decimal.Decimal `json:"amount"`
	Subtotal decimal.Decimal `json:"subtotal"`
	Reason   string          `json:"reason" validate:"required,max=255"`
}

// DiscountOverrideResponse porcentaje efectivo y aprobador, si lo hubo.
type DiscountOverrideResponse struct {
	Status     string          `json:"status"`
	Percent    decimal.Decimal `json:"percent"`
	ApprovedBy *string         `json:"approved_by,omitempty"`
}
