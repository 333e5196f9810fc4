package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de stock.
const (
	MovementTypeSale       = "sale"
	MovementTypeLoss       = "loss"
	MovementTypeAdjustment = "adjustment"
	MovementTypeInbound    = "inbound"
	MovementTypeOutbound   = "outbound"
)

// StockMovement es una entrada inmutable del ledger. Delta es positivo para entradas y negativo para salidas.
type StockMovement struct {
	ID          string
	ProductID   string
	ProductName string // solo lectura (join para listados)
	Type        string
	Delta       decimal.Decimal
	Reason      string
	PerformedBy string
	CreatedAt   time.Time
}

// IsValidMoveType indica si el tipo es aceptado por la operación de movimiento manual.
func IsValidMoveType(t string) bool {
	return t == MovementTypeInbound || t == MovementTypeOutbound
}
