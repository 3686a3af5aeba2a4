package pricing

import (
	"github.com/Simplici0/casework/internal/catalog"
	"github.com/Simplici0/casework/internal/estimate"
	"github.com/Simplici0/casework/internal/model"
)

// CategoryTotal holds the cost, item count and labor hours of one category.
// Hours is nil when no line item in the category carried hours.
type CategoryTotal struct {
	Cost  float64           `json:"cost"`
	Count float64           `json:"count"`
	Hours map[int64]float64 `json:"hours,omitempty"`
}

// CategoryTotals has one named total per breakdown category.
type CategoryTotals struct {
	Boxes        CategoryTotal `json:"boxes"`
	Doors        CategoryTotal `json:"doors"`
	DrawerFronts CategoryTotal `json:"drawer_fronts"`
	FalseFronts  CategoryTotal `json:"false_fronts"`
	Panels       CategoryTotal `json:"panels"`
	Hood         CategoryTotal `json:"hood"`
	DrawerBoxes  CategoryTotal `json:"drawer_boxes"`
	Rollouts     CategoryTotal `json:"rollouts"`
	Hinges       CategoryTotal `json:"hinges"`
	Slides       CategoryTotal `json:"slides"`
	Pulls        CategoryTotal `json:"pulls"`
	FaceFrame    CategoryTotal `json:"face_frame"`
	Fillers      CategoryTotal `json:"fillers"`
	PanelMods    CategoryTotal `json:"panel_mods"`
	Lengths      CategoryTotal `json:"lengths"`
	Accessories  CategoryTotal `json:"accessories"`
	Other        CategoryTotal `json:"other"`
	Nosing       CategoryTotal `json:"nosing"`
}

// slot returns the total a line item category accumulates into. Unknown
// categories land in Other.
func (c *CategoryTotals) slot(cat model.Category) *CategoryTotal {
	switch cat {
	case model.CategoryBoxes:
		return &c.Boxes
	case model.CategoryDoors:
		return &c.Doors
	case model.CategoryDrawerFronts:
		return &c.DrawerFronts
	case model.CategoryFalseFronts:
		return &c.FalseFronts
	case model.CategoryPanels:
		return &c.Panels
	case model.CategoryHood:
		return &c.Hood
	case model.CategoryDrawerBoxes:
		return &c.DrawerBoxes
	case model.CategoryRollouts:
		return &c.Rollouts
	case model.CategoryHinges:
		return &c.Hinges
	case model.CategorySlides:
		return &c.Slides
	case model.CategoryPulls:
		return &c.Pulls
	case model.CategoryFaceFrame:
		return &c.FaceFrame
	case model.CategoryFillers:
		return &c.Fillers
	case model.CategoryPanelMods:
		return &c.PanelMods
	case model.CategoryLengths:
		return &c.Lengths
	case model.CategoryAccessories:
		return &c.Accessories
	case model.CategoryNosing:
		return &c.Nosing
	default:
		return &c.Other
	}
}

// ServiceCost is the labor bill of one labor service.
type ServiceCost struct {
	Name  string  `json:"name"`
	Hours float64 `json:"hours"`
	Rate  float64 `json:"rate"`
	Cost  float64 `json:"cost"`
}

// LaborCosts groups labor cost per active service.
type LaborCosts struct {
	CostsByService map[int64]ServiceCost `json:"costs_by_service"`
	TotalLaborCost float64               `json:"total_labor_cost"`
}

// Calculations is the full pricing output of one section.
type Calculations struct {
	PartsTotalPrice float64        `json:"parts_total_price"`
	SubTotalPrice   float64        `json:"sub_total_price"`
	Profit          float64        `json:"profit"`
	Commission      float64        `json:"commission"`
	Discount        float64        `json:"discount"`
	TotalPrice      float64        `json:"total_price"`
	LaborCosts      LaborCosts     `json:"labor_costs"`
	Categories      CategoryTotals `json:"categories"`
}

// Calculate prices a resolved section. extraHours are manual labor hours
// per service added on top of the line items (see breakdown.LaborAdjustmentHours).
func Calculate(res estimate.Result, extraHours map[int64]float64) Calculations {
	ctx := res.Context
	sectionQty := res.Section.Quantity

	var calc Calculations
	serviceHours := make(map[int64]float64)

	for _, item := range res.Section.LineItems {
		unitCost := item.UnitCost
		if unitCost == 0 {
			unitCost = hardwareUnitCost(ctx, item.Category)
		}

		qty := item.Quantity * sectionQty
		cost := qty * unitCost
		target := finishTarget(ctx, item.Finish)
		if target != nil && target.FinishMultiplier > 0 {
			cost *= target.FinishMultiplier
		}

		slot := calc.Categories.slot(item.Category)
		slot.Cost += cost
		slot.Count += qty
		for serviceID, perUnit := range item.Hours {
			hours := perUnit * qty
			if serviceID == catalog.ShopServiceID && target != nil {
				hours *= target.ShopMultiplier
			}
			if hours == 0 {
				continue
			}
			if slot.Hours == nil {
				slot.Hours = make(map[int64]float64)
			}
			slot.Hours[serviceID] += hours
			serviceHours[serviceID] += hours
		}

		calc.PartsTotalPrice += cost
	}

	if sectionQty != 0 {
		for serviceID, hours := range extraHours {
			serviceHours[serviceID] += hours
		}
	}

	calc.LaborCosts = laborCosts(ctx, serviceHours)

	subtotal := calc.PartsTotalPrice + calc.LaborCosts.TotalLaborCost
	profit := subtotal * (res.Section.ProfitPercent / 100.0)
	commission := (subtotal + profit) * (res.Section.CommissionPercent / 100.0)
	discount := (subtotal + profit + commission) * (res.Section.DiscountPercent / 100.0)

	calc.SubTotalPrice = subtotal
	calc.Profit = profit
	calc.Commission = commission
	calc.Discount = discount
	calc.TotalPrice = subtotal + profit + commission - discount

	return calc
}

func laborCosts(ctx estimate.Context, serviceHours map[int64]float64) LaborCosts {
	costs := LaborCosts{CostsByService: make(map[int64]ServiceCost)}
	for serviceID, hours := range serviceHours {
		rate, active := ctx.LaborRates[serviceID]
		if !active || hours <= 0 {
			continue
		}
		name := ""
		if svc, ok := ctx.Catalogs.LaborServices.Find(serviceID); ok {
			name = svc.Name
		}
		cost := hours * rate
		costs.CostsByService[serviceID] = ServiceCost{Name: name, Hours: hours, Rate: rate, Cost: cost}
		costs.TotalLaborCost += cost
	}
	return costs
}

func finishTarget(ctx estimate.Context, target model.FinishTarget) *estimate.SelectedMaterial {
	switch target {
	case model.FinishFace:
		return &ctx.FaceMaterial
	case model.FinishBox:
		return &ctx.BoxMaterial
	case model.FinishDoor:
		return &ctx.DoorMaterial
	case model.FinishDrawerFront:
		return &ctx.DrawerFrontMaterial
	default:
		return nil
	}
}

// hardwareUnitCost prices hinge/slide/pull lines that carry no cost of their
// own from the section's selected hardware.
func hardwareUnitCost(ctx estimate.Context, cat model.Category) float64 {
	var hw estimate.SelectedHardware
	switch cat {
	case model.CategoryHinges:
		hw = ctx.Hinge
	case model.CategorySlides:
		hw = ctx.Slide
	case model.CategoryPulls:
		hw = ctx.Pull
	default:
		return 0
	}
	if !hw.Found {
		return 0
	}
	return hw.Hardware.UnitCost
}
