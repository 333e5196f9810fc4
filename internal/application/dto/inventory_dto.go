package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/greenstore-api/internal/domain/entity"
)

// AdjustStockRequest body para POST /api/stock/adjust.
type AdjustStockRequest struct {
	ProductID string          `json:"product_id" validate:"required,uuid"`
	Delta     decimal.Decimal `json:"delta"`
	Reason    string          `json:"reason" validate:"required,max=255"`
}

// LossRequest body para POST /api/stock/loss.
type LossRequest struct {
	ProductID string          `json:"product_id" validate:"required,uuid"`
	Quantity  decimal.Decimal `json:"quantity"`
	Reason    string          `json:"reason" validate:"required,max=255"`
}

// MoveRequest body para POST /api/stock/move.
type MoveRequest struct {
	ProductID string          `json:"product_id" validate:"required,uuid"`
	Quantity  decimal.Decimal `json:"quantity"`
	Type      string          `json:"type" validate:"required,oneof=inbound outbound"`
	Reason    string          `json:"reason" validate:"required,max=255"`
}

// StockResultResponse movimiento creado y stock resultante.
type StockResultResponse struct {
	ID           string          `json:"id"`
	CurrentStock decimal.Decimal `json:"current_stock"`
	ApprovedBy   *string         `json:"approved_by,omitempty"`
}

// MovementDTO fila del ledger.
type MovementDTO struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Type        string          `json:"type"`
	Delta       decimal.Decimal `json:"delta"`
	Reason      string          `json:"reason"`
	PerformedBy string          `json:"performed_by,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// LossDTO registro de merma.
type LossDTO struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	Reason      string          `json:"reason"`
	ReportedBy  string          `json:"reported_by,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// RestockSuggestionDTO producto en o bajo su mínimo con la cantidad sugerida a pedir.
type RestockSuggestionDTO struct {
	ProductID         string          `json:"product_id"`
	SKU               string          `json:"sku"`
	ProductName       string          `json:"product_name"`
	CurrentStock      decimal.Decimal `json:"current_stock"`
	MinStock          decimal.Decimal `json:"min_stock"`
	MaxStock          decimal.Decimal `json:"max_stock"`
	SuggestedOrderQty decimal.Decimal `json:"suggested_order_qty"` // hasta max_stock, o hasta min_stock si no hay máximo
}

// ReconcileResponse stock cacheado contra la suma del ledger.
type ReconcileResponse struct {
	ProductID    string          `json:"product_id"`
	CurrentStock decimal.Decimal `json:"current_stock"`
	LedgerSum    decimal.Decimal `json:"ledger_sum"`
	Difference   decimal.Decimal `json:"difference"`
	Consistent   bool            `json:"consistent"`
}

// NewMovementDTO mapea la entidad.
func NewMovementDTO(m *entity.StockMovement) MovementDTO {
	return MovementDTO{
		ID: m.ID, ProductID: m.ProductID, ProductName: m.ProductName, Type: m.Type,
		Delta: m.Delta, Reason: m.Reason, PerformedBy: m.PerformedBy, CreatedAt: m.CreatedAt,
	}
}

// NewLossDTO mapea la entidad.
func NewLossDTO(l *entity.StockLoss) LossDTO {
	return LossDTO{
		ID: l.ID, ProductID: l.ProductID, ProductName: l.ProductName, Quantity: l.Quantity,
		Reason: l.Reason, ReportedBy: l.ReportedBy, CreatedAt: l.CreatedAt,
	}
}

// NewRestockSuggestion calcula la cantidad sugerida para llegar al máximo (o al mínimo).
func NewRestockSuggestion(p *entity.Product) RestockSuggestionDTO {
	target := p.MaxStock
	if !target.GreaterThan(p.MinStock) {
		target = p.MinStock
	}
	qty := target.Sub(p.CurrentStock)
	if qty.IsNegative() {
		qty = decimal.Zero
	}
	return RestockSuggestionDTO{
		ProductID: p.ID, SKU: p.SKU, ProductName: p.Name, CurrentStock: p.CurrentStock,
		MinStock: p.MinStock, MaxStock: p.MaxStock, SuggestedOrderQty: qty,
	}
}
