// Package pdf genera el recibo imprimible de una venta con Maroto v2.
//
// Layout (A5 vertical):
//
//	┌───────────────────────────────────────────┐
//	│  Tienda + "RECIBO DE VENTA" │ N° + fecha  │
//	│  ───────────────────────────────────────  │
//	│  TABLA: Cant | Producto | P.Unit | Total  │
//	│  ───────────────────────────────────────  │
//	│  Subtotal / Descuento / TOTAL A PAGAR     │
//	│  Medio de pago + QR con el id de venta    │
//	└───────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/greenstore-api/internal/application/sales"
	"github.com/jhoicas/greenstore-api/internal/domain/entity"
)

var _ sales.ReceiptRenderer = (*ReceiptGenerator)(nil)

var (
	colorPrimary = &props.Color{Red: 24, Green: 110, Blue: 60}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ReceiptGenerator implementa sales.ReceiptRenderer.
type ReceiptGenerator struct {
	storeName string
}

// NewReceiptGenerator construye el generador; storeName encabeza el recibo.
func NewReceiptGenerator(storeName string) *ReceiptGenerator {
	return &ReceiptGenerator{storeName: nonEmpty(storeName, "GreenStore")}
}

// RenderSaleReceipt genera el PDF y devuelve sus bytes.
func (g *ReceiptGenerator) RenderSaleReceipt(_ context.Context, sale *entity.Sale) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A5).
		WithLeftMargin(8).WithRightMargin(8).
		WithTopMargin(8).WithBottomMargin(8).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Recibo de venta", true).
		WithAuthor(g.storeName, true).
		Build()

	m := maroto.New(cfg)
	m.AddRows(g.headerRow(sale))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow(), lineRow(sale))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(sale))
	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow(sale))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar recibo: %w", err)
	}
	return doc.GetBytes(), nil
}

func (g *ReceiptGenerator) headerRow(sale *entity.Sale) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New(g.storeName, props.Text{Style: fontstyle.Bold, Size: 12, Color: colorPrimary, Top: 1}),
			text.New("RECIBO DE VENTA", props.Text{Size: 8, Top: 8, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("N° "+shortID(sale.ID), props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 1}),
			text.New(sale.CreatedAt.Format("02/01/2006 15:04"), props.Text{Size: 8, Align: align.Right, Top: 8, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Align: a, Top: 2}))
	}
	return row.New(7).Add(
		h("Cant.", 2, align.Center),
		h("Producto", 5, align.Left),
		h("P. Unit.", 2, align.Right),
		h("Total", 3, align.Right),
	)
}

func lineRow(sale *entity.Sale) core.Row {
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 1}))
	}
	return row.New(7).Add(
		cell(sale.Quantity.String(), 2, align.Center),
		cell(nonEmpty(sale.ProductName, sale.ProductID), 5, align.Left),
		cell("$"+formatMoney(sale.UnitPrice), 2, align.Right),
		cell("$"+formatMoney(sale.Total), 3, align.Right),
	)
}

func totalsRow(sale *entity.Sale) core.Row {
	label := func(s string, p props.Text) core.Component {
		p.Align, p.Right = align.Right, 2
		return text.New(s, p)
	}
	return row.New(20).Add(
		col.New(4),
		col.New(4).Add(
			label("Subtotal:", props.Text{Style: fontstyle.Bold, Size: 9}),
			label("Descuento:", props.Text{Style: fontstyle.Bold, Size: 9, Top: 5}),
			label("TOTAL A PAGAR:", props.Text{Style: fontstyle.Bold, Size: 10, Top: 11, Color: colorPrimary}),
		),
		col.New(4).Add(
			label("$"+formatMoney(sale.Total), props.Text{Size: 9}),
			label("-$"+formatMoney(sale.DiscountAmount), props.Text{Size: 9, Top: 5}),
			label("$"+formatMoney(sale.FinalTotal), props.Text{Style: fontstyle.Bold, Size: 10, Top: 11, Color: colorPrimary}),
		),
	)
}

func footerRow(sale *entity.Sale) core.Row {
	return row.New(30).Add(
		col.New(8).Add(
			text.New("Medio de pago: "+sale.PaymentMethod, props.Text{Size: 8, Top: 2}),
			text.New("Gracias por su compra.", props.Text{Size: 8, Top: 10, Color: colorGray}),
		),
		col.New(4).Add(code.NewQr(sale.ID, props.Rect{Percent: 90, Center: true})),
	)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func shortID(id string) string {
	if len(id) > 8 {
		return strings.ToUpper(id[:8])
	}
	return strings.ToUpper(id)
}

// formatMoney agrupa miles con punto y usa coma decimal: 1234.5 -> "1.234,50".
func formatMoney(d decimal.Decimal) string {
	s := d.Abs().StringFixed(2)
	intPart, frac, _ := strings.Cut(s, ".")
	n := len(intPart)
	buf := make([]byte, 0, n+n/3+4)
	if d.IsNegative() {
		buf = append(buf, '-')
	}
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	buf = append(buf, ',')
	buf = append(buf, frac...)
	return string(buf)
}
