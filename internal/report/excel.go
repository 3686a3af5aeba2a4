package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/Simplici0/casework/internal/breakdown"
	"github.com/Simplici0/casework/internal/format"
)

const (
	defaultSheetName = "Breakdown"
	maxSheetName     = 31
	headerRow        = 4
)

// Excel renders doc as a single-sheet workbook.
func Excel(doc Document) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := sheetName(doc.Title)
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	head := Headers(doc.Table)
	head = append(head, "Notes")
	lastCol, err := excelize.ColumnNumberToName(len(head))
	if err != nil {
		return nil, fmt.Errorf("resolve last column: %w", err)
	}

	if err := f.SetColWidth(sheet, "A", "A", 22); err != nil {
		return nil, fmt.Errorf("set category width: %w", err)
	}
	if err := f.SetColWidth(sheet, "B", lastCol, 14); err != nil {
		return nil, fmt.Errorf("set column widths: %w", err)
	}

	titleStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 16}})
	if err != nil {
		return nil, fmt.Errorf("create title style: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#333333"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}
	bodyStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Size: 10}, Border: thinBorders()})
	if err != nil {
		return nil, fmt.Errorf("create body style: %w", err)
	}
	adjustmentStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Size: 10, Italic: true}, Border: thinBorders()})
	if err != nil {
		return nil, fmt.Errorf("create adjustment style: %w", err)
	}
	summaryStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Alignment: &excelize.Alignment{Horizontal: "right"},
	})
	if err != nil {
		return nil, fmt.Errorf("create summary style: %w", err)
	}

	if err := f.MergeCell(sheet, "A1", lastCol+"1"); err != nil {
		return nil, fmt.Errorf("merge title: %w", err)
	}
	f.SetCellValue(sheet, "A1", sanitizeExcelCell(doc.Title))
	f.SetCellStyle(sheet, "A1", lastCol+"1", titleStyle)
	if doc.Subtitle != "" {
		f.SetCellValue(sheet, "A2", sanitizeExcelCell(doc.Subtitle))
	}

	if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", headerRow), &head); err != nil {
		return nil, fmt.Errorf("write header row: %w", err)
	}
	f.SetCellStyle(sheet, fmt.Sprintf("A%d", headerRow), fmt.Sprintf("%s%d", lastCol, headerRow), headerStyle)

	row := headerRow + 1
	for _, r := range doc.Table.Rows {
		values := make([]any, 0, len(head))
		for i, v := range Cells(doc.Table, r) {
			if i == 0 {
				v = sanitizeExcelCell(v)
			}
			values = append(values, v)
		}
		values = append(values, sanitizeExcelCell(r.Note))

		start := fmt.Sprintf("A%d", row)
		if err := f.SetSheetRow(sheet, start, &values); err != nil {
			return nil, fmt.Errorf("write row %q: %w", r.Label, err)
		}
		style := bodyStyle
		if r.Kind == breakdown.RowAdjustment {
			style = adjustmentStyle
		}
		f.SetCellStyle(sheet, start, fmt.Sprintf("%s%d", lastCol, row), style)
		row++
	}

	row++
	for _, line := range summaryLines(doc.Table.Summary) {
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), line.label+":")
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), format.Currency(line.value))
		f.SetCellStyle(sheet, fmt.Sprintf("B%d", row), fmt.Sprintf("C%d", row), summaryStyle)
		row++
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}
	return buf.Bytes(), nil
}

var sheetNameReplacer = strings.NewReplacer(":", " ", "\\", " ", "/", " ", "?", " ", "*", " ", "[", "(", "]", ")")

func sheetName(title string) string {
	name := strings.TrimSpace(sheetNameReplacer.Replace(title))
	if len([]rune(name)) > maxSheetName {
		name = string([]rune(name)[:maxSheetName])
	}
	if name == "" {
		name = defaultSheetName
	}
	return name
}

// sanitizeExcelCell prefixes user text Excel would read as a formula.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{Type: side, Color: "#000000", Style: 1}
	}
	return borders
}
