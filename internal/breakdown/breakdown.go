// Package breakdown turns a section's calculations into the ordered cost
// categories shown on estimates, cross-tabbed against labor services.
package breakdown

import (
	"github.com/Simplici0/casework/internal/model"
	"github.com/Simplici0/casework/internal/pricing"
)

// Category is one row of the itemized breakdown.
type Category struct {
	Key               model.Category    `json:"key"`
	Name              string            `json:"name"`
	Cost              float64           `json:"cost"`
	Count             float64           `json:"count"`
	HoursByService    map[int64]float64 `json:"hours_by_service,omitempty"`
	SkipHours         bool              `json:"skip_hours"`
	ShowAggregateNote bool              `json:"show_aggregate_note"`
}

// AggregateNote is shown under categories flagged ShowAggregateNote.
const AggregateNote = "Hours include hinge, slide and pull installation."

type categoryDef struct {
	key           model.Category
	name          string
	skipHours     bool
	aggregateNote bool
	total         func(*pricing.CategoryTotals) pricing.CategoryTotal
}

var categoryDefs = []categoryDef{
	{model.CategoryBoxes, "Cabinet Boxes", false, true, func(c *pricing.CategoryTotals) pricing.CategoryTotal { return c.Boxes }},
	{model.CategoryDoors, "Doors", false, false, func(c *pricing.CategoryTotals) pricing.CategoryTotal { return c.Doors }},
	{model.CategoryDrawerFronts, "Drawer Fronts", false, false, func(c *pricing.CategoryTotals) pricing.CategoryTotal { return c.DrawerFronts }},
	{model.CategoryFalseFronts, "False Fronts", false, false, func(c *pricing.CategoryTotals) pricing.CategoryTotal { return c.FalseFronts }},
	{model.CategoryPanels, "Panels", false, false, func(c *pricing.CategoryTotals) pricing.CategoryTotal { return c.Panels }},
	{model.CategoryHood, "Hood", false, false, func(c *pricing.CategoryTotals) pricing.CategoryTotal { return c.Hood }},
	{model.CategoryDrawerBoxes, "Drawer Boxes", false, false, func(c *pricing.CategoryTotals) pricing.CategoryTotal { return c.DrawerBoxes }},
	{model.CategoryRollouts, "Rollouts", false, false, func(c *pricing.CategoryTotals) pricing.CategoryTotal { return c.Rollouts }},
	{model.CategoryHinges, "Hinges", true, false, func(c *pricing.CategoryTotals) pricing.CategoryTotal { return c.Hinges }},
	{model.CategorySlides, "Drawer Slides", true, false, func(c *pricing.CategoryTotals) pricing.CategoryTotal { return c.Slides }},
	{model.CategoryPulls, "Pulls", true, false, func(c *pricing.CategoryTotals) pricing.CategoryTotal { return c.Pulls }},
	{model.CategoryFaceFrame, "Face Frame", false, false, func(c *pricing.CategoryTotals) pricing.CategoryTotal { return c.FaceFrame }},
	{model.CategoryFillers, "Fillers", false, false, func(c *pricing.CategoryTotals) pricing.CategoryTotal { return c.Fillers }},
	{model.CategoryPanelMods, "Panel Mods", false, false, func(c *pricing.CategoryTotals) pricing.CategoryTotal { return c.PanelMods }},
	{model.CategoryLengths, "Lengths", false, false, func(c *pricing.CategoryTotals) pricing.CategoryTotal { return c.Lengths }},
	{model.CategoryAccessories, "Accessories", false, false, func(c *pricing.CategoryTotals) pricing.CategoryTotal { return c.Accessories }},
	{model.CategoryOther, "Other", false, false, func(c *pricing.CategoryTotals) pricing.CategoryTotal { return c.Other }},
	{model.CategoryNosing, "Nosing", false, false, func(c *pricing.CategoryTotals) pricing.CategoryTotal { return c.Nosing }},
}

// CategoryCount returns the length of every BuildCategories result.
func CategoryCount() int { return len(categoryDefs) }

// BuildCategories returns every category in display order, including empty
// ones. Dropping empty categories is the caller's job; see Visible.
func BuildCategories(calc pricing.Calculations) []Category {
	out := make([]Category, 0, len(categoryDefs))
	for _, def := range categoryDefs {
		total := def.total(&calc.Categories)
		cat := Category{
			Key:               def.key,
			Name:              def.name,
			Cost:              total.Cost,
			Count:             total.Count,
			SkipHours:         def.skipHours,
			ShowAggregateNote: def.aggregateNote,
		}
		if len(total.Hours) > 0 {
			cat.HoursByService = make(map[int64]float64, len(total.Hours))
			for id, h := range total.Hours {
				cat.HoursByService[id] = h
			}
		}
		out = append(out, cat)
	}
	return out
}

// Visible drops categories whose cost and count are both zero.
func Visible(categories []Category) []Category {
	out := make([]Category, 0, len(categories))
	for _, cat := range categories {
		if cat.Cost == 0 && cat.Count == 0 {
			continue
		}
		out = append(out, cat)
	}
	return out
}
