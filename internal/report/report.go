// Package report renders a section breakdown table as xlsx, pdf or plain
// text. Every renderer formats money and hours through package format so the
// outputs agree to the cent.
package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/Simplici0/casework/internal/breakdown"
	"github.com/Simplici0/casework/internal/format"
)

// Document is one rendered breakdown.
type Document struct {
	Title    string
	Subtitle string
	Table    breakdown.Table
}

type summaryLine struct {
	label string
	value float64
}

func summaryLines(s breakdown.Summary) []summaryLine {
	return []summaryLine{
		{"Parts", s.PartsTotal},
		{"Labor", s.LaborTotal},
		{"Subtotal", s.Subtotal},
		{"Profit", s.Profit},
		{"Commission", s.Commission},
		{"Discount", s.Discount},
		{"Total", s.Total},
	}
}

// Headers returns the column titles of t.
func Headers(t breakdown.Table) []string {
	out := []string{"Category", "Count", "Cost"}
	for _, c := range t.Columns {
		out = append(out, c.Name+" hrs")
	}
	return out
}

// Cells returns the formatted values of one row, aligned with Headers.
// The adjustments row has no count or cost.
func Cells(t breakdown.Table, r breakdown.Row) []string {
	out := []string{r.Label, "", ""}
	if r.Kind == breakdown.RowCategory {
		out[1] = format.Count(r.Count)
		out[2] = format.Currency(r.Cost)
	}
	for i := range t.Columns {
		if r.Hours == nil {
			out = append(out, "")
			continue
		}
		out = append(out, format.Hours(r.Hours[i]))
	}
	return out
}

// Text writes doc as an aligned plain-text table.
func Text(w io.Writer, doc Document) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintln(tw, doc.Title)
	if doc.Subtitle != "" {
		fmt.Fprintln(tw, doc.Subtitle)
	}
	fmt.Fprintln(tw)

	fmt.Fprintln(tw, strings.Join(Headers(doc.Table), "\t"))
	for _, r := range doc.Table.Rows {
		fmt.Fprintln(tw, strings.Join(Cells(doc.Table, r), "\t"))
		if r.Note != "" {
			fmt.Fprintf(tw, "  (%s)\n", r.Note)
		}
	}
	fmt.Fprintln(tw)

	for _, line := range summaryLines(doc.Table.Summary) {
		fmt.Fprintf(tw, "%s\t%s\n", line.label, format.Currency(line.value))
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("write text report: %w", err)
	}
	return nil
}
