package breakdown

import (
	"math"
	"sort"

	"github.com/Simplici0/casework/internal/catalog"
	"github.com/Simplici0/casework/internal/model"
	"github.com/Simplici0/casework/internal/pricing"
)

// LaborAdjustmentHours totals a section's manual hours per labor service.
// Setup hours always count as Install time. Non-positive entries are
// dropped; nil means there is nothing to show.
func LaborAdjustmentHours(adjustments model.HourAdjustments) map[int64]float64 {
	var out map[int64]float64
	for _, adj := range adjustments {
		if !(adj.Hours > 0) || math.IsInf(adj.Hours, 0) {
			continue
		}
		serviceID := adj.ServiceID
		if adj.Kind == model.AdjustSetup {
			serviceID = catalog.InstallServiceID
		}
		if out == nil {
			out = make(map[int64]float64)
		}
		out[serviceID] += adj.Hours
	}
	return out
}

// ServiceColumns returns the ids of services with cost data, ascending.
func ServiceColumns(calc pricing.Calculations) []int64 {
	ids := make([]int64, 0, len(calc.LaborCosts.CostsByService))
	for id := range calc.LaborCosts.CostsByService {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
