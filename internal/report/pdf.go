package report

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/Simplici0/casework/internal/breakdown"
	"github.com/Simplici0/casework/internal/format"
)

// minGrid is maroto's default column grid. Wider tables grow the grid so
// every labor service keeps a column.
const minGrid = 12

var (
	mutedColor  = &props.Color{Red: 100, Green: 100, Blue: 100}
	headerColor = &props.Color{Red: 33, Green: 37, Blue: 41}
	white       = &props.Color{Red: 255, Green: 255, Blue: 255}
	stripeColor = &props.Color{Red: 245, Green: 245, Blue: 245}
)

// PDF renders doc as a landscape A4 document.
func PDF(doc Document) ([]byte, error) {
	widths := columnWidths(len(doc.Table.Columns))
	grid := sum(widths)

	cfg := config.NewBuilder().
		WithMaxGridSize(grid).
		WithOrientation(orientation.Horizontal).
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   mutedColor,
		}).
		Build()

	m := maroto.New(cfg)

	addTitle(m, doc, grid)
	addHeaderRow(m, Headers(doc.Table), widths)
	for _, r := range doc.Table.Rows {
		addBodyRow(m, doc.Table, r, widths, grid)
	}
	addSummary(m, doc.Table.Summary, grid)

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return out.GetBytes(), nil
}

// columnWidths gives the label, count and cost columns fixed widths and
// each labor service one grid unit. Leftover space goes to the label.
func columnWidths(services int) []int {
	widths := []int{3, 1, 2}
	for i := 0; i < services; i++ {
		widths = append(widths, 1)
	}
	if used := sum(widths); used < minGrid {
		widths[0] += minGrid - used
	}
	return widths
}

func sum(widths []int) int {
	total := 0
	for _, w := range widths {
		total += w
	}
	return total
}

func addTitle(m core.Maroto, doc Document, grid int) {
	m.AddRows(
		row.New(12).Add(
			col.New(grid).Add(
				text.New(doc.Title, props.Text{Size: 16, Style: fontstyle.Bold, Align: align.Left}),
			),
		),
	)
	if doc.Subtitle != "" {
		m.AddRows(
			row.New(7).Add(
				col.New(grid).Add(
					text.New(doc.Subtitle, props.Text{Size: 9, Color: mutedColor}),
				),
			),
		)
	}
	m.AddRows(row.New(4))
}

func addHeaderRow(m core.Maroto, labels []string, widths []int) {
	style := props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Center, Color: white}
	cell := &props.Cell{BackgroundColor: headerColor}

	cols := make([]core.Col, 0, len(labels))
	for i, label := range labels {
		cols = append(cols, col.New(widths[i]).Add(text.New(label, style)).WithStyle(cell))
	}
	m.AddRows(row.New(8).Add(cols...))
}

func addBodyRow(m core.Maroto, t breakdown.Table, r breakdown.Row, widths []int, grid int) {
	base := props.Text{Size: 8, Align: align.Right, Top: 1}
	label := base
	label.Align = align.Left
	if r.Kind == breakdown.RowAdjustment {
		label.Style = fontstyle.Italic
	}

	var cell *props.Cell
	if r.Kind == breakdown.RowAdjustment {
		cell = &props.Cell{BackgroundColor: stripeColor}
	}

	values := Cells(t, r)
	cols := make([]core.Col, 0, len(values))
	for i, v := range values {
		style := base
		if i == 0 {
			style = label
		}
		c := col.New(widths[i]).Add(text.New(v, style))
		if cell != nil {
			c = c.WithStyle(cell)
		}
		cols = append(cols, c)
	}
	m.AddRows(row.New(6).Add(cols...))

	if r.Note != "" {
		m.AddRows(
			row.New(5).Add(
				col.New(grid).Add(
					text.New(r.Note, props.Text{Size: 7, Style: fontstyle.Italic, Color: mutedColor, Left: 3}),
				),
			),
		)
	}
}

func addSummary(m core.Maroto, s breakdown.Summary, grid int) {
	m.AddRows(row.New(4))
	for _, line := range summaryLines(s) {
		style := props.Text{Size: 9, Align: align.Right}
		if line.label == "Total" {
			style.Style = fontstyle.Bold
		}
		m.AddRows(
			row.New(6).Add(
				col.New(grid-3).Add(text.New(line.label+":", style)),
				col.New(3).Add(text.New(format.Currency(line.value), style)),
			),
		)
	}
}
