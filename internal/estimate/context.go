// Package estimate turns a section and its default tiers into the effective
// section and the pricing context a price calculator consumes.
package estimate

import (
	"errors"

	"github.com/Simplici0/casework/internal/catalog"
	"github.com/Simplici0/casework/internal/model"
	"github.com/Simplici0/casework/internal/resolve"
)

// ErrInvalidInput is returned when the section or organization defaults are
// missing; nothing can be resolved without them.
var ErrInvalidInput = errors.New("invalid input: section and organization defaults are required")

// SelectedMaterial is a material slot after catalog lookup. Found is false
// when the id has no catalog row; the multipliers still hold their defaults
// (finish 0, shop 1) so a calculator adds no finish cost.
type SelectedMaterial struct {
	ID               int64            `json:"id"`
	Material         catalog.Material `json:"material"`
	Found            bool             `json:"found"`
	FinishNeeded     bool             `json:"finish_needed"`
	Finishes         []catalog.Finish `json:"finishes"`
	FinishMultiplier float64          `json:"finish_multiplier"`
	ShopMultiplier   float64          `json:"shop_multiplier"`
}

// SelectedHardware is a hardware slot after catalog lookup.
type SelectedHardware struct {
	ID       int64            `json:"id"`
	Hardware catalog.Hardware `json:"hardware"`
	Found    bool             `json:"found"`
}

// Context is everything a price calculator needs besides the section itself.
// It lives for one calculation pass.
type Context struct {
	FaceMaterial        SelectedMaterial `json:"face_material"`
	BoxMaterial         SelectedMaterial `json:"box_material"`
	DoorMaterial        SelectedMaterial `json:"door_material"`
	DrawerFrontMaterial SelectedMaterial `json:"drawer_front_material"`
	DrawerBoxMaterial   SelectedMaterial `json:"drawer_box_material"`

	Hinge SelectedHardware `json:"hinge"`
	Slide SelectedHardware `json:"slide"`
	Pull  SelectedHardware `json:"pull"`

	// LaborRates holds the hourly rate of each active labor service after
	// organization overrides.
	LaborRates map[int64]float64 `json:"labor_rates"`

	Catalogs catalog.Snapshot `json:"-"`
}

// EffectiveSection is the merged configuration plus the section data that
// has no tiers.
type EffectiveSection struct {
	model.EffectiveConfiguration

	ID         int64                 `json:"id"`
	EstimateID int64                 `json:"estimate_id"`
	Name       string                `json:"name"`
	Notes      string                `json:"notes"`
	AddHours   model.HourAdjustments `json:"add_hours"`
	LineItems  []model.LineItem      `json:"line_items"`
}

// Result pairs the pricing context with the effective section.
type Result struct {
	Context Context          `json:"context"`
	Section EffectiveSection `json:"section"`
}

// BuildSectionContext resolves one section against its project and
// organization defaults and the given catalog snapshot. A nil project
// inherits everything from the organization. Missing catalog rows never
// fail the call; they surface as Found == false.
func BuildSectionContext(section *model.Section, project *model.ProjectDefaults, org *model.OrganizationDefaults, snap catalog.Snapshot) (Result, error) {
	if section == nil || org == nil {
		return Result{}, ErrInvalidInput
	}
	if project == nil {
		project = &model.ProjectDefaults{}
	}

	eff := resolve.AllDefaults(*section, *project, *org)

	// Finish applicability is decided on the raw tier ids, before defaults
	// are merged into the finish lists.
	faceNeeded := resolve.ShouldApplyFinish(section.FaceMat, project.FaceMat, &org.FaceMat, snap.Materials)
	boxNeeded := resolve.ShouldApplyFinish(section.BoxMat, project.BoxMat, &org.BoxMat, snap.Materials)
	doorNeeded, drawerFrontNeeded := faceNeeded, faceNeeded
	if section.DoorMat != nil {
		doorNeeded = resolve.ShouldApplyFinish(section.DoorMat, nil, nil, snap.Materials)
	}
	if section.DrawerFrontMat != nil {
		drawerFrontNeeded = resolve.ShouldApplyFinish(section.DrawerFrontMat, nil, nil, snap.Materials)
	}

	if !faceNeeded {
		eff.FaceFinish = []int64{}
	}
	if !boxNeeded {
		eff.BoxFinish = []int64{}
	}
	if !doorNeeded {
		eff.DoorFinish = []int64{}
	}
	if !drawerFrontNeeded {
		eff.DrawerFrontFinish = []int64{}
	}

	ctx := Context{
		FaceMaterial:        selectMaterial(snap, eff.FaceMat, faceNeeded, eff.FaceFinish),
		BoxMaterial:         selectMaterial(snap, eff.BoxMat, boxNeeded, eff.BoxFinish),
		DoorMaterial:        selectMaterial(snap, eff.DoorMat, doorNeeded, eff.DoorFinish),
		DrawerFrontMaterial: selectMaterial(snap, eff.DrawerFrontMat, drawerFrontNeeded, eff.DrawerFrontFinish),
		DrawerBoxMaterial:   selectMaterial(snap, eff.DrawerBoxMat, false, nil),
		Hinge:               selectHardware(snap, eff.Hinge),
		Slide:               selectHardware(snap, eff.Slide),
		Pull:                selectHardware(snap, eff.Pull),
		LaborRates:          snap.EffectiveRates(org.LaborRates),
		Catalogs:            snap,
	}

	return Result{
		Context: ctx,
		Section: EffectiveSection{
			EffectiveConfiguration: eff,
			ID:                     section.ID,
			EstimateID:             section.EstimateID,
			Name:                   section.Name,
			Notes:                  section.Notes,
			AddHours:               section.AddHours,
			LineItems:              section.LineItems,
		},
	}, nil
}

func selectMaterial(snap catalog.Snapshot, id int64, finishNeeded bool, finishIDs []int64) SelectedMaterial {
	mat, found := snap.Materials.Find(id)
	sel := SelectedMaterial{
		ID:             id,
		Material:       mat,
		Found:          found,
		FinishNeeded:   finishNeeded,
		Finishes:       []catalog.Finish{},
		ShopMultiplier: 1,
	}
	if !finishNeeded {
		return sel
	}

	sel.FinishMultiplier = 1
	for _, finishID := range finishIDs {
		finish, ok := snap.Finishes.Find(finishID)
		if !ok {
			continue
		}
		sel.Finishes = append(sel.Finishes, finish)
		sel.FinishMultiplier += finish.FinishMarkup / 100
		sel.ShopMultiplier += finish.ShopMarkup / 100
	}
	return sel
}

func selectHardware(snap catalog.Snapshot, id int64) SelectedHardware {
	hw, found := snap.Hardware.Find(id)
	return SelectedHardware{ID: id, Hardware: hw, Found: found}
}
