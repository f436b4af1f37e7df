// Package report implementa la generación del reporte PDF de vencimientos
// a partir del estado local del CLI.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + Usuario  │  Fecha de generación           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: totales / vencidos / por vencer / % vencido       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: SKU | Descripción | Categoría | Vence | Cant | Días │
//	└─────────────────────────────────────────────────────────────┘
package report

import (
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
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

	"github.com/tu-usuario/expiry-monitor/internal/application/dto"
	"github.com/tu-usuario/expiry-monitor/internal/client/state"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorDanger  = &props.Color{Red: 180, Green: 30, Blue: 30}
)

// ExpiryReportGenerator genera el reporte de vencimientos usando Maroto v2.
type ExpiryReportGenerator struct{}

// NewExpiryReportGenerator construye el generador.
func NewExpiryReportGenerator() *ExpiryReportGenerator { return &ExpiryReportGenerator{} }

// Generate genera el PDF y devuelve sus bytes. Lista los productos de la
// vista filtrada del estado, con el resumen del dashboard arriba.
func (g *ExpiryReportGenerator) Generate(st *state.State, username string, now time.Time) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de Vencimientos", true).
		WithAuthor(username, true).
		Build()

	m := maroto.New(cfg)

	dash := state.BuildDashboard(st, now)

	m.AddRows(headerRow(username, now))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(dash))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableItemRows(st, now) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("report: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título + usuario (izq) y fecha de generación (der).
func headerRow(username string, now time.Time) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New("REPORTE DE VENCIMIENTOS", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Usuario: "+username, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Generado: "+now.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
		),
	)
}

// summaryRow: los contadores del dashboard en una línea.
func summaryRow(d state.Dashboard) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("RESUMEN", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf(
				"Productos: %d   |   Vencidos: %d (%s%%)   |   Vencen en 7 días: %d   |   Vencen en 30 días: %d   |   Categorías: %d",
				d.Total, d.Expired, d.ExpiredPercent.StringFixed(2),
				d.ExpiringWeek, d.ExpiringMonth, d.CategoryCount,
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de productos.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("SKU", 2, align.Left),
		h("Descripción", 4, align.Left),
		h("Categoría", 2, align.Left),
		h("Vence", 2, align.Center),
		h("Cant.", 1, align.Center),
		h("Días", 1, align.Center),
	)
}

// tableItemRows: una fila por producto de la vista filtrada, con los días
// restantes o "VENCIDO" en rojo.
func tableItemRows(st *state.State, now time.Time) []core.Row {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	items := st.Filtered()
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(it.SKU, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(4).Add(text.New(it.Description, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(categoryLabel(it), props.Text{Size: 8, Top: 1, Left: 1, Color: colorGray})),
			col.New(2).Add(text.New(it.Expiry.Format("02/01/2006"), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(1).Add(text.New(fmt.Sprintf("%d", it.Quantity), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(1).Add(daysLeftCell(it.Expiry, today)),
		))
	}
	return result
}

// ── helpers ───────────────────────────────────────────────────────────────────

func categoryLabel(it dto.ItemResponse) string {
	if it.Category == nil {
		return "—"
	}
	return it.Category.Name
}

func daysLeftCell(expiry, today time.Time) core.Component {
	day := time.Date(expiry.Year(), expiry.Month(), expiry.Day(), 0, 0, 0, 0, today.Location())
	daysLeft := int(day.Sub(today).Hours() / 24)
	if daysLeft < 0 {
		return text.New("VENCIDO", props.Text{
			Style: fontstyle.Bold, Size: 7, Align: align.Center, Top: 1, Color: colorDanger,
		})
	}
	return text.New(fmt.Sprintf("%d", daysLeft), props.Text{
		Size: 8, Align: align.Center, Top: 1,
	})
}
