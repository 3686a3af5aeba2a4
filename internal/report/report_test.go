package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/Simplici0/casework/internal/breakdown"
	"github.com/Simplici0/casework/internal/model"
)

func sampleDocument() Document {
	return Document{
		Title:    "Hill kitchen / Island",
		Subtitle: "Estimate 12, section 3",
		Table: breakdown.Table{
			Columns: []breakdown.Column{
				{ServiceID: 1, Name: "Shop", Rate: 65, Hours: 5, Cost: 325},
				{ServiceID: 4, Name: "Install", Rate: 85, Hours: 2, Cost: 170},
			},
			Rows: []breakdown.Row{
				{Kind: breakdown.RowCategory, Key: model.CategoryBoxes, Label: "Cabinet Boxes", Cost: 1234.5, Count: 4, Hours: []float64{4, 0}, Note: breakdown.AggregateNote},
				{Kind: breakdown.RowCategory, Key: model.CategoryHinges, Label: "Hinges", Cost: 36, Count: 8},
				{Kind: breakdown.RowAdjustment, Label: breakdown.AdjustmentsLabel, Hours: []float64{1, 2}},
			},
			Summary: breakdown.Summary{PartsTotal: 1270.5, LaborTotal: 495, Subtotal: 1765.5, Profit: 176.55, Total: 1942.05},
		},
	}
}

func TestCells_FormatsRows(t *testing.T) {
	doc := sampleDocument()

	got := Cells(doc.Table, doc.Table.Rows[0])
	want := []string{"Cabinet Boxes", "4", "$1,234.50", "4", "-"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("category cells = %v, want %v", got, want)
	}

	got = Cells(doc.Table, doc.Table.Rows[1])
	want = []string{"Hinges", "8", "$36.00", "", ""}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("hinge cells = %v, want %v", got, want)
	}

	got = Cells(doc.Table, doc.Table.Rows[2])
	want = []string{breakdown.AdjustmentsLabel, "", "", "1", "2"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("adjustment cells = %v, want %v", got, want)
	}
}

func TestExcel_Reopens(t *testing.T) {
	result, err := Excel(sampleDocument())
	if err != nil {
		t.Fatalf("Excel() error = %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(result))
	if err != nil {
		t.Fatalf("result is not valid Excel: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 1 || sheets[0] != "Hill kitchen   Island" {
		t.Fatalf("unexpected sheets %v", sheets)
	}

	header, _ := f.GetCellValue(sheets[0], "D4")
	if header != "Shop hrs" {
		t.Errorf("D4 = %q, want %q", header, "Shop hrs")
	}
	label, _ := f.GetCellValue(sheets[0], "A5")
	if label != "Cabinet Boxes" {
		t.Errorf("A5 = %q, want %q", label, "Cabinet Boxes")
	}
	cost, _ := f.GetCellValue(sheets[0], "C5")
	if cost != "$1,234.50" {
		t.Errorf("C5 = %q, want %q", cost, "$1,234.50")
	}
	note, _ := f.GetCellValue(sheets[0], "F5")
	if note != breakdown.AggregateNote {
		t.Errorf("F5 = %q, want aggregate note", note)
	}
	adj, _ := f.GetCellValue(sheets[0], "A7")
	if adj != breakdown.AdjustmentsLabel {
		t.Errorf("A7 = %q, want %q", adj, breakdown.AdjustmentsLabel)
	}
}

func TestExcel_EmptyTitle(t *testing.T) {
	result, err := Excel(Document{})
	if err != nil {
		t.Fatalf("Excel() error = %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(result))
	if err != nil {
		t.Fatalf("result is not valid Excel: %v", err)
	}
	defer f.Close()

	if sheets := f.GetSheetList(); sheets[0] != defaultSheetName {
		t.Errorf("expected default sheet name, got %v", sheets)
	}
}

func TestPDF_Header(t *testing.T) {
	result, err := PDF(sampleDocument())
	if err != nil {
		t.Fatalf("PDF() error = %v", err)
	}
	if len(result) < 5 || string(result[:5]) != "%PDF-" {
		t.Fatalf("result does not start with PDF header")
	}
}

func TestColumnWidths_FitGrid(t *testing.T) {
	for services := 0; services < 10; services++ {
		widths := columnWidths(services)
		if len(widths) != 3+services {
			t.Fatalf("columnWidths(%d) has %d columns", services, len(widths))
		}
		want := max(minGrid, 6+services)
		if got := sum(widths); got != want {
			t.Fatalf("columnWidths(%d) sums to %d, want %d", services, got, want)
		}
	}
}

func TestPDF_ManyServices(t *testing.T) {
	doc := sampleDocument()
	for id := int64(5); id < 14; id++ {
		doc.Table.Columns = append(doc.Table.Columns, breakdown.Column{ServiceID: id, Name: "Extra"})
	}
	for i := range doc.Table.Rows {
		if doc.Table.Rows[i].Hours != nil {
			doc.Table.Rows[i].Hours = make([]float64, len(doc.Table.Columns))
		}
	}

	result, err := PDF(doc)
	if err != nil {
		t.Fatalf("PDF() error = %v", err)
	}
	if len(result) == 0 {
		t.Fatal("PDF() returned empty bytes")
	}
}

func TestText_IncludesSummary(t *testing.T) {
	var buf bytes.Buffer
	if err := Text(&buf, sampleDocument()); err != nil {
		t.Fatalf("Text() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{"Cabinet Boxes", "$1,234.50", breakdown.AdjustmentsLabel, "$1,942.05", breakdown.AggregateNote} {
		if !strings.Contains(out, want) {
			t.Errorf("text output missing %q:\n%s", want, out)
		}
	}
}
