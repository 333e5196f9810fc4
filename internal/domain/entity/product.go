package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un artículo vendible del catálogo.
// CurrentStock es un caché desnormalizado de la suma de movimientos y solo lo muta el ledger de stock.
type Product struct {
	ID           string
	SKU          string // código único
	Name         string
	UnitType     string // unidad, kg, litro...
	CategoryID   string // opcional; usado por descuentos con target_type=category
	Price        decimal.Decimal
	CurrentStock decimal.Decimal
	MinStock     decimal.Decimal
	MaxStock     decimal.Decimal
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NeedsRestock indica si el stock actual está en o por debajo del mínimo.
func (p *Product) NeedsRestock() bool {
	return p.CurrentStock.LessThanOrEqual(p.MinStock)
}

// Unidades de conteo: solo admiten cantidades enteras.
var countUnits = map[string]bool{
	"unidad":  true,
	"unit":    true,
	"und":     true,
	"pieza":   true,
	"paquete": true,
}

// IsCountUnit indica si el tipo de unidad es de conteo (unidad, pieza...).
func IsCountUnit(unitType string) bool {
	return countUnits[strings.ToLower(strings.TrimSpace(unitType))]
}
