package breakdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Simplici0/casework/internal/catalog"
	"github.com/Simplici0/casework/internal/model"
	"github.com/Simplici0/casework/internal/pricing"
)

func sampleCalculations() pricing.Calculations {
	var calc pricing.Calculations
	calc.Categories.Boxes = pricing.CategoryTotal{Cost: 1200, Count: 6, Hours: map[int64]float64{1: 10, 4: 3}}
	calc.Categories.Doors = pricing.CategoryTotal{Cost: 800, Count: 8, Hours: map[int64]float64{1: 4, 2: 6}}
	calc.Categories.Hinges = pricing.CategoryTotal{Cost: 72, Count: 16, Hours: map[int64]float64{1: 1}}
	calc.Categories.Fillers = pricing.CategoryTotal{Cost: 0, Count: 2}
	calc.LaborCosts = pricing.LaborCosts{
		CostsByService: map[int64]pricing.ServiceCost{
			4: {Name: "Install", Hours: 5, Rate: 70, Cost: 350},
			1: {Name: "Shop", Hours: 15, Rate: 60, Cost: 900},
			2: {Name: "Finish", Hours: 6, Rate: 55, Cost: 330},
		},
		TotalLaborCost: 1580,
	}
	calc.PartsTotalPrice = 2072
	calc.SubTotalPrice = 3652
	calc.TotalPrice = 3652
	return calc
}

func TestBuildCategories_FixedOrderAndLength(t *testing.T) {
	cats := BuildCategories(pricing.Calculations{})
	require.Len(t, cats, CategoryCount())
	assert.Equal(t, 18, CategoryCount())

	names := make([]string, 0, len(cats))
	for _, c := range cats {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{
		"Cabinet Boxes", "Doors", "Drawer Fronts", "False Fronts", "Panels", "Hood",
		"Drawer Boxes", "Rollouts", "Hinges", "Drawer Slides", "Pulls", "Face Frame",
		"Fillers", "Panel Mods", "Lengths", "Accessories", "Other", "Nosing",
	}, names)
}

func TestBuildCategories_CarriesHoursAndFlags(t *testing.T) {
	cats := BuildCategories(sampleCalculations())

	assert.Equal(t, map[int64]float64{1: 10, 4: 3}, cats[0].HoursByService)
	assert.True(t, cats[0].ShowAggregateNote)
	assert.Nil(t, cats[2].HoursByService)
	assert.True(t, cats[8].SkipHours)
	assert.Equal(t, model.CategoryHinges, cats[8].Key)
}

func TestVisible_NeverLongerAndDropsOnlyEmpty(t *testing.T) {
	all := BuildCategories(sampleCalculations())
	visible := Visible(all)

	assert.Less(t, len(visible), len(all))
	require.Len(t, visible, 4)
	assert.Equal(t, "Fillers", visible[3].Name, "zero cost with a count is kept")

	assert.Empty(t, Visible(BuildCategories(pricing.Calculations{})))
}

func TestLaborAdjustmentHours(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]any
		want map[int64]float64
	}{
		{"setup merges into install", map[string]any{"setup_hours": 2, "1": 3}, map[int64]float64{1: 3, 4: 2}},
		{"setup adds to explicit install", map[string]any{"setup_hours": 1.5, "4": 2}, map[int64]float64{4: 3.5}},
		{"zero setup only", map[string]any{"setup_hours": 0}, nil},
		{"empty", map[string]any{}, nil},
		{"nil", nil, nil},
		{"non-positive and junk dropped", map[string]any{"1": -2, "2": "abc", "shop": 4, "3": "1.25"}, map[int64]float64{3: 1.25}},
		{"booleans are not hours", map[string]any{"1.0": 3, "2": true, "3": "2e0", "setup_hours": false}, map[int64]float64{1: 3, 3: 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LaborAdjustmentHours(model.ParseAddHours(tt.raw)))
		})
	}
}

func TestLaborAdjustmentHours_UsesInstallService(t *testing.T) {
	got := LaborAdjustmentHours(model.HourAdjustments{{Kind: model.AdjustSetup, Hours: 1}})
	assert.Equal(t, map[int64]float64{catalog.InstallServiceID: 1}, got)
}

func TestServiceColumns_Sorted(t *testing.T) {
	assert.Equal(t, []int64{1, 2, 4}, ServiceColumns(sampleCalculations()))
	assert.Empty(t, ServiceColumns(pricing.Calculations{}))
}

func TestBuildTable(t *testing.T) {
	table := BuildTable(sampleCalculations(), map[int64]float64{4: 2, 9: 1})

	require.Len(t, table.Columns, 3)
	assert.Equal(t, "Shop", table.Columns[0].Name)
	assert.Equal(t, int64(4), table.Columns[2].ServiceID)

	require.Len(t, table.Rows, 5)
	boxes := table.Rows[0]
	assert.Equal(t, []float64{10, 0, 3}, boxes.Hours)
	assert.Equal(t, AggregateNote, boxes.Note)

	hinges := table.Rows[2]
	assert.Equal(t, "Hinges", hinges.Label)
	assert.Nil(t, hinges.Hours)

	adj := table.Rows[4]
	assert.Equal(t, RowAdjustment, adj.Kind)
	assert.Equal(t, []float64{0, 0, 2}, adj.Hours)

	assert.Equal(t, 3652.0, table.Summary.Total)
}

func TestBuildTable_NoAdjustmentsRow(t *testing.T) {
	table := BuildTable(sampleCalculations(), nil)
	for _, row := range table.Rows {
		assert.NotEqual(t, RowAdjustment, row.Kind)
	}
}
