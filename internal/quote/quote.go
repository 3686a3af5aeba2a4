// Package quote runs one section through resolution, pricing and breakdown.
package quote

import (
	"fmt"

	"github.com/Simplici0/casework/internal/breakdown"
	"github.com/Simplici0/casework/internal/catalog"
	"github.com/Simplici0/casework/internal/estimate"
	"github.com/Simplici0/casework/internal/model"
	"github.com/Simplici0/casework/internal/pricing"
)

// Quote is the full result for one section.
type Quote struct {
	Resolution   estimate.Result      `json:"resolution"`
	Calculations pricing.Calculations `json:"calculations"`
	Categories   []breakdown.Category `json:"categories"`
	Adjustments  map[int64]float64    `json:"adjustments"`
	Table        breakdown.Table      `json:"table"`
}

// Section prices one section against one catalog snapshot. The snapshot
// must not change during the call.
func Section(section *model.Section, project *model.ProjectDefaults, org *model.OrganizationDefaults, snap catalog.Snapshot) (Quote, error) {
	res, err := estimate.BuildSectionContext(section, project, org, snap)
	if err != nil {
		return Quote{}, fmt.Errorf("build section context: %w", err)
	}

	adjustments := breakdown.LaborAdjustmentHours(res.Section.AddHours)
	if res.Section.Quantity == 0 {
		adjustments = nil
	}

	calc := pricing.Calculate(res, adjustments)

	return Quote{
		Resolution:   res,
		Calculations: calc,
		Categories:   breakdown.BuildCategories(calc),
		Adjustments:  adjustments,
		Table:        breakdown.BuildTable(calc, adjustments),
	}, nil
}
