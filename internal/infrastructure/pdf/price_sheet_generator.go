// Package pdf implementa la ficha de precios de un producto en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Tienda + identificación  │  FICHA DE PRECIOS + Fecha │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PRODUCTO: Nombre / Marca / Categoría / Proveedor            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Artículo | SKU | Costo | Precio | P. lista | Mín | Stock │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PAQUETES: Artículo | Unidades | Precio | Descuento | Final   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: código de barras del EAN + leyenda                  │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

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
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/product-pricing-api/internal/application/ports"
	"github.com/jhoicas/product-pricing-api/internal/application/usecase"
	"github.com/jhoicas/product-pricing-api/internal/domain/entity"
)

var _ ports.PriceSheetGenerator = (*MarotoPriceSheetGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWarn    = &props.Color{Red: 180, Green: 40, Blue: 40}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPriceSheetGenerator implementa ports.PriceSheetGenerator usando Maroto v2.
type MarotoPriceSheetGenerator struct {
	money *message.Printer
	now   func() time.Time
}

// NewMarotoPriceSheetGenerator construye el generador. locale es un tag BCP 47 (ej. "es-CO")
// usado para los separadores de miles y decimales.
func NewMarotoPriceSheetGenerator(locale string) *MarotoPriceSheetGenerator {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.Spanish
	}
	return &MarotoPriceSheetGenerator{money: message.NewPrinter(tag), now: time.Now}
}

// GeneratePriceSheet genera el PDF y devuelve sus bytes.
func (g *MarotoPriceSheetGenerator) GeneratePriceSheet(_ context.Context, data ports.PriceSheetData) ([]byte, error) {
	if data.Store == nil || data.Product == nil {
		return nil, fmt.Errorf("pdf: tienda y producto son obligatorios")
	}
	p := data.Product

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Ficha de precios - "+p.Name, true).
		WithAuthor(data.Store.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(data.Store))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(productRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(itemsHeaderRow())
	m.AddRows(g.itemRows(p)...)

	if p.PackCount() > 0 {
		m.AddRows(line.NewRow(3))
		m.AddRows(sectionTitle("PAQUETES"))
		m.AddRows(packsHeaderRow())
		m.AddRows(g.packRows(p)...)
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRows(p)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre de la tienda + identificación (izq) y título + fecha (der).
func (g *MarotoPriceSheetGenerator) headerRow(store *entity.Store) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(store.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("ID: "+nonEmpty(store.TaxID, "—"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("FICHA DE PRECIOS", props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("Fecha: "+g.now().Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

// productRow: datos generales del producto.
func productRow(data ports.PriceSheetData) core.Row {
	p := data.Product
	kind := "Producto simple"
	if p.HasVariants {
		kind = fmt.Sprintf("%d variantes", len(p.Variants))
	}
	return row.New(20).Add(
		col.New(12).Add(
			text.New(p.Name, props.Text{Style: fontstyle.Bold, Size: 11, Top: 1}),
			text.New(fmt.Sprintf("Marca: %s   |   Categoría: %s   |   Proveedor: %s   |   %s",
				nonEmpty(p.Brand, "—"),
				nonEmpty(data.CategoryName, "—"),
				nonEmpty(data.SupplierName, "—"),
				kind,
			), props.Text{Size: 8, Top: 8, Color: colorGray}),
			text.New(attributesLine(p.Attributes), props.Text{Size: 8, Top: 13, Color: colorGray}),
		),
	)
}

func sectionTitle(title string) core.Row {
	return row.New(6).Add(col.New(12).Add(
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
	))
}

func headerCell(label string, size int, a align.Type) core.Col {
	return col.New(size).Add(text.New(label, props.Text{
		Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
	}))
}

func itemsHeaderRow() core.Row {
	return row.New(8).Add(
		headerCell("Artículo", 3, align.Left),
		headerCell("SKU", 2, align.Left),
		headerCell("Costo", 1, align.Right),
		headerCell("Precio", 2, align.Right),
		headerCell("P. lista", 1, align.Right),
		headerCell("Mín.", 1, align.Center),
		headerCell("Pedido mín.", 1, align.Right),
		headerCell("Stock", 1, align.Center),
	)
}

// itemRows: una fila para el producto simple o una por variante.
func (g *MarotoPriceSheetGenerator) itemRows(p *entity.Product) []core.Row {
	if !p.HasVariants {
		return []core.Row{g.itemRow(p.Name, p.ItemPricing)}
	}
	out := make([]core.Row, 0, len(p.Variants))
	for _, v := range p.Variants {
		out = append(out, g.itemRow(combinationLabel(v.Attributes), v.ItemPricing))
	}
	return out
}

func (g *MarotoPriceSheetGenerator) itemRow(label string, ip entity.ItemPricing) core.Row {
	var priceColor *props.Color
	if ip.ItemCost.IsPositive() && ip.ItemSellingCost.IsPositive() && ip.ItemSellingCost.LessThan(ip.ItemCost) {
		priceColor = colorWarn
	}
	return row.New(7).Add(
		col.New(3).Add(text.New(label, props.Text{Size: 8, Top: 1, Left: 1})),
		col.New(2).Add(text.New(nonEmpty(ip.SKU, "—"), props.Text{Size: 8, Top: 1, Left: 1})),
		col.New(1).Add(text.New(g.amount(ip.ItemCost), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		col.New(2).Add(text.New(g.amount(ip.ItemSellingCost), props.Text{
			Size: 8, Align: align.Right, Top: 1, Right: 1, Color: priceColor,
		})),
		col.New(1).Add(text.New(g.amount(ip.MSRP), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		col.New(1).Add(text.New(g.money.Sprintf("%d", ip.MinSellingQuantity), props.Text{Size: 8, Align: align.Center, Top: 1})),
		col.New(1).Add(text.New(g.amount(ip.MinOrderValue), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		col.New(1).Add(text.New(g.money.Sprintf("%d", ip.Quantity), props.Text{Size: 8, Align: align.Center, Top: 1})),
	)
}

func packsHeaderRow() core.Row {
	return row.New(8).Add(
		headerCell("Artículo", 4, align.Left),
		headerCell("Unidades", 1, align.Center),
		headerCell("Disponibles", 2, align.Center),
		headerCell("Precio", 2, align.Right),
		headerCell("Descuento", 1, align.Right),
		headerCell("Final", 2, align.Right),
	)
}

func (g *MarotoPriceSheetGenerator) packRows(p *entity.Product) []core.Row {
	var out []core.Row
	add := func(label string, packs []entity.ProductPack) {
		for _, pk := range packs {
			out = append(out, row.New(7).Add(
				col.New(4).Add(text.New(label, props.Text{Size: 8, Top: 1, Left: 1})),
				col.New(1).Add(text.New(g.money.Sprintf("%d", pk.Quantity), props.Text{Size: 8, Align: align.Center, Top: 1})),
				col.New(2).Add(text.New(g.money.Sprintf("%d", pk.TotalPacksQuantity), props.Text{Size: 8, Align: align.Center, Top: 1})),
				col.New(2).Add(text.New(g.amount(pk.OrderedPacksPrice), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
				col.New(1).Add(text.New(g.discount(pk), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
				col.New(2).Add(text.New(g.amount(usecase.PackFinalPrice(pk)), props.Text{
					Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 1, Right: 1,
				})),
			))
		}
	}
	add(p.Name, p.Packs)
	for _, v := range p.Variants {
		add(combinationLabel(v.Attributes), v.Packs)
	}
	return out
}

// footerRows: código de barras del EAN (si existe) y leyenda.
func footerRows(p *entity.Product) []core.Row {
	var rows []core.Row
	if p.EAN != "" {
		rows = append(rows, row.New(20).Add(
			col.New(4).Add(code.NewBar(p.EAN, props.Barcode{Percent: 90, Center: true})),
			col.New(8).Add(text.New("EAN "+p.EAN, props.Text{Size: 8, Top: 8, Left: 3, Color: colorGray})),
		))
	}
	rows = append(rows, row.New(8).Add(col.New(12).Add(
		text.New("Precios sujetos a cambio sin previo aviso. Los precios en rojo están por debajo del costo.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2}),
	)))
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func (g *MarotoPriceSheetGenerator) amount(d decimal.Decimal) string {
	f, _ := d.Round(2).Float64()
	return g.money.Sprintf("$%.2f", f)
}

func (g *MarotoPriceSheetGenerator) discount(pk entity.ProductPack) string {
	switch {
	case !pk.PercentDiscount.IsZero():
		return pk.PercentDiscount.String() + "%"
	case !pk.DiscountAmount.IsZero():
		return g.amount(pk.DiscountAmount)
	default:
		return "—"
	}
}

func attributesLine(attrs []entity.ProductAttribute) string {
	if len(attrs) == 0 {
		return ""
	}
	parts := make([]string, 0, len(attrs))
	for _, a := range attrs {
		parts = append(parts, a.Name+": "+strings.Join(a.Values, ", "))
	}
	return strings.Join(parts, "   |   ")
}

// combinationLabel "Color: Rojo / Talla: M" con los nombres ordenados.
func combinationLabel(c map[string]string) string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+c[k])
	}
	return strings.Join(parts, " / ")
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
