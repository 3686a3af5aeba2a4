package breakdown

import (
	"github.com/Simplici0/casework/internal/model"
	"github.com/Simplici0/casework/internal/pricing"
)

// AdjustmentsLabel labels the manual labor-hours row.
const AdjustmentsLabel = "Labor Adjustments"

type RowKind string

const (
	RowCategory   RowKind = "category"
	RowAdjustment RowKind = "adjustment"
)

// Column is one labor service column of the table.
type Column struct {
	ServiceID int64   `json:"service_id"`
	Name      string  `json:"name"`
	Rate      float64 `json:"rate"`
	Hours     float64 `json:"hours"`
	Cost      float64 `json:"cost"`
}

// Row is one category or the adjustments row. Hours lines up with
// Table.Columns and is nil for rows that do not show hours.
type Row struct {
	Kind  RowKind        `json:"kind"`
	Key   model.Category `json:"key,omitempty"`
	Label string         `json:"label"`
	Cost  float64        `json:"cost"`
	Count float64        `json:"count"`
	Hours []float64      `json:"hours"`
	Note  string         `json:"note,omitempty"`
}

// Summary repeats the section totals below the table.
type Summary struct {
	PartsTotal float64 `json:"parts_total"`
	LaborTotal float64 `json:"labor_total"`
	Subtotal   float64 `json:"subtotal"`
	Profit     float64 `json:"profit"`
	Commission float64 `json:"commission"`
	Discount   float64 `json:"discount"`
	Total      float64 `json:"total"`
}

// Table is the report model shared by every renderer.
type Table struct {
	Columns []Column `json:"columns"`
	Rows    []Row    `json:"rows"`
	Summary Summary  `json:"summary"`
}

// BuildTable lays out the visible categories and, when present, the manual
// adjustments row against the active service columns.
func BuildTable(calc pricing.Calculations, adjustments map[int64]float64) Table {
	ids := ServiceColumns(calc)
	columns := make([]Column, 0, len(ids))
	for _, id := range ids {
		svc := calc.LaborCosts.CostsByService[id]
		columns = append(columns, Column{ServiceID: id, Name: svc.Name, Rate: svc.Rate, Hours: svc.Hours, Cost: svc.Cost})
	}

	hoursRow := func(byService map[int64]float64) []float64 {
		hours := make([]float64, len(ids))
		for i, id := range ids {
			hours[i] = byService[id]
		}
		return hours
	}

	visible := Visible(BuildCategories(calc))
	rows := make([]Row, 0, len(visible)+1)
	for _, cat := range visible {
		row := Row{Kind: RowCategory, Key: cat.Key, Label: cat.Name, Cost: cat.Cost, Count: cat.Count}
		if !cat.SkipHours {
			row.Hours = hoursRow(cat.HoursByService)
		}
		if cat.ShowAggregateNote {
			row.Note = AggregateNote
		}
		rows = append(rows, row)
	}
	if adjustments != nil {
		rows = append(rows, Row{Kind: RowAdjustment, Label: AdjustmentsLabel, Hours: hoursRow(adjustments)})
	}

	return Table{
		Columns: columns,
		Rows:    rows,
		Summary: Summary{
			PartsTotal: calc.PartsTotalPrice,
			LaborTotal: calc.LaborCosts.TotalLaborCost,
			Subtotal:   calc.SubTotalPrice,
			Profit:     calc.Profit,
			Commission: calc.Commission,
			Discount:   calc.Discount,
			Total:      calc.TotalPrice,
		},
	}
}
