package quote

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Simplici0/casework/internal/breakdown"
	"github.com/Simplici0/casework/internal/catalog"
	"github.com/Simplici0/casework/internal/estimate"
	"github.com/Simplici0/casework/internal/model"
)

func ptr[T any](v T) *T { return &v }

func kitchen() (*model.Section, *model.OrganizationDefaults, catalog.Snapshot) {
	snap := catalog.Snapshot{
		Materials: catalog.Materials{
			{ID: 1, Name: "Maple", NeedsFinish: true, IsActive: true},
			{ID: 2, Name: "Melamine", IsActive: true},
		},
		Finishes: catalog.Finishes{
			{ID: 10, Name: "Stain", FinishMarkup: 20, ShopMarkup: 10, IsActive: true},
		},
		LaborServices: catalog.LaborServices{
			{ID: 1, Name: "Shop", HourlyRate: 50, IsActive: true},
			{ID: 4, Name: "Install", HourlyRate: 80, IsActive: true},
		},
	}
	org := &model.OrganizationDefaults{
		BoxMat:        2,
		FaceMat:       1,
		FaceFinish:    []int64{10},
		ProfitPercent: 10,
	}
	section := &model.Section{
		ID:       3,
		AddHours: model.ParseAddHours(map[string]any{"setup_hours": 2, "1": 1}),
		LineItems: []model.LineItem{
			{Category: model.CategoryBoxes, Quantity: 4, UnitCost: 100, Finish: model.FinishBox, Hours: map[int64]float64{1: 1}},
			{Category: model.CategoryDoors, Quantity: 6, UnitCost: 50, Finish: model.FinishDoor},
		},
	}
	return section, org, snap
}

func TestSection_EndToEnd(t *testing.T) {
	section, org, snap := kitchen()

	q, err := Section(section, nil, org, snap)
	require.NoError(t, err)

	assert.InDelta(t, 400, q.Calculations.Categories.Boxes.Cost, 1e-9)
	assert.InDelta(t, 360, q.Calculations.Categories.Doors.Cost, 1e-9)
	assert.Equal(t, map[int64]float64{1: 1, 4: 2}, q.Adjustments)

	// 4 box hours + 1 manual shop hour at 50, 2 setup hours at 80.
	assert.InDelta(t, 410, q.Calculations.LaborCosts.TotalLaborCost, 1e-9)
	assert.InDelta(t, (760+410)*1.1, q.Calculations.TotalPrice, 1e-9)

	assert.Len(t, q.Categories, breakdown.CategoryCount())
	require.Len(t, q.Table.Rows, 3)
	assert.Equal(t, breakdown.RowAdjustment, q.Table.Rows[2].Kind)
	assert.Equal(t, []float64{1, 2}, q.Table.Rows[2].Hours)
}

func TestSection_ZeroQuantityHidesEverything(t *testing.T) {
	section, org, snap := kitchen()
	section.Quantity = ptr(0.0)

	q, err := Section(section, nil, org, snap)
	require.NoError(t, err)

	assert.Nil(t, q.Adjustments)
	assert.Empty(t, q.Table.Rows)
	assert.Equal(t, 0.0, q.Calculations.TotalPrice)
	assert.Len(t, q.Categories, breakdown.CategoryCount())
}

func TestSection_InvalidInput(t *testing.T) {
	_, _, snap := kitchen()

	_, err := Section(nil, nil, nil, snap)
	require.ErrorIs(t, err, estimate.ErrInvalidInput)
}
