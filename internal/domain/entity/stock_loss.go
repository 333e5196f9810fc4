package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockLoss registra una merma (vencimiento, rotura, robo), aparte del movimiento que descuenta el stock.
type StockLoss struct {
	ID          string
	ProductID   string
	ProductName string // solo lectura
	Quantity    decimal.Decimal
	Reason      string
	ReportedBy  string
	CreatedAt   time.Time
}
