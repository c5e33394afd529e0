// Package pdf genera el reporte de desempeño de leads en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + fecha de generación                        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: total | Well-Performing | Average | Underperf.     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Lead | Recientes | Total | Pedidos | Desempeño       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: criterios de clasificación                          │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

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

	"github.com/jhoicas/leads-crm-api/internal/application/analytics"
	"github.com/jhoicas/leads-crm-api/internal/application/dto"
	"github.com/jhoicas/leads-crm-api/internal/domain/performance"
)

var _ analytics.PerformanceReportGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorGood    = &props.Color{Red: 20, Green: 120, Blue: 60}
	colorBad     = &props.Color{Red: 170, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa analytics.PerformanceReportGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	author string
}

// NewMarotoPDFGenerator construye el generador; author se escribe en los metadatos del PDF.
func NewMarotoPDFGenerator(author string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{author: author}
}

// GeneratePerformanceReport genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GeneratePerformanceReport(_ context.Context, report *dto.PerformanceReportDTO) ([]byte, error) {
	if report == nil {
		return nil, fmt.Errorf("pdf: reporte vacío")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Desempeño de leads", true).
		WithAuthor(g.author, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableRows(report.Leads)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(report *dto.PerformanceReportDTO) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New("DESEMPEÑO DE LEADS", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Interacciones de los últimos 30 días y pedidos acumulados", props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+report.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
		),
	)
}

func summaryRow(report *dto.PerformanceReportDTO) core.Row {
	cell := func(label string, value int, color *props.Color) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Size: 7, Align: align.Center, Top: 1, Color: colorGray}),
			text.New(fmt.Sprintf("%d", value), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Center, Top: 5, Color: color,
			}),
		)
	}
	return row.New(14).Add(
		cell("Total de leads", report.TotalLeads, colorPrimary),
		cell(string(performance.WellPerforming), report.WellPerforming, colorGood),
		cell(string(performance.Average), report.Average, colorGray),
		cell(string(performance.Underperforming), report.Underperforming, colorBad),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Lead", 4, align.Left),
		h("Recientes", 2, align.Center),
		h("Total", 1, align.Center),
		h("Pedidos", 2, align.Right),
		h("Desempeño", 3, align.Center),
	)
}

// tableRows una fila por lead, en el orden recibido.
func tableRows(leads []dto.LeadPerformanceDTO) []core.Row {
	rows := make([]core.Row, 0, len(leads))
	for _, l := range leads {
		rows = append(rows, row.New(7).Add(
			col.New(4).Add(text.New(l.Name, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(fmt.Sprintf("%d", l.RecentInteractions), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(1).Add(text.New(fmt.Sprintf("%d", l.TotalInteractions), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New("$"+formatMoney(l.TotalOrders.StringFixed(2)), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(3).Add(text.New(l.Performance, props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Center, Top: 1, Color: labelColor(l.Performance),
			})),
		))
	}
	if len(rows) == 0 {
		rows = append(rows, row.New(8).Add(col.New(12).Add(
			text.New("Sin leads registrados.", props.Text{Size: 8, Align: align.Center, Top: 2, Color: colorGray}),
		)))
	}
	return rows
}

func footerRow() core.Row {
	return row.New(10).Add(col.New(12).Add(
		text.New(
			"Well-Performing: más de 3 interacciones recientes o más de $500 en pedidos. "+
				"Underperforming: sin interacciones recientes o menos de $100 en pedidos. "+
				"Average: el resto.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2},
		),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func labelColor(label string) *props.Color {
	switch performance.Label(label) {
	case performance.WellPerforming:
		return colorGood
	case performance.Underperforming:
		return colorBad
	}
	return colorGray
}

// formatMoney inserta comas de miles en la parte entera de un decimal con punto.
// Ej: "25000.50" → "25,000.50", "-1234" → "-1,234"
func formatMoney(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}
	n := len(intPart)
	if n <= 3 {
		return sign + intPart + frac
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, c)
	}
	return sign + string(buf) + frac
}
