package resolve

import (
	"slices"

	"github.com/Simplici0/casework/internal/model"
)

// AllDefaults merges the three tiers into one effective configuration.
//
// Door and drawer-front material/finish have no tier of their own: a section
// value wins, otherwise they follow the resolved face material/finish.
func AllDefaults(section model.Section, project model.ProjectDefaults, org model.OrganizationDefaults) model.EffectiveConfiguration {
	sources := make(map[string]model.Source, 32)

	str := func(name string, s, p *string, o string) string {
		r := Value(s, p, &o)
		sources[name] = r.Source
		return r.Value
	}
	id := func(name string, s, p *int64, o int64) int64 {
		r := Value(s, p, &o)
		sources[name] = r.Source
		return r.Value
	}
	flag := func(name string, s, p *bool, o bool) bool {
		r := Value(s, p, &o)
		sources[name] = r.Source
		return r.Value
	}
	pct := func(name string, s, p *float64, o float64) float64 {
		r := Value(s, p, &o)
		sources[name] = r.Source
		return r.Value
	}
	list := func(name string, s, p, o []int64) []int64 {
		r := Slice(s, p, o)
		sources[name] = r.Source
		return cloneIDs(r.Value)
	}

	eff := model.EffectiveConfiguration{
		CabinetStyle:      str("cabinet_style", section.CabinetStyle, project.CabinetStyle, org.CabinetStyle),
		BoxMat:            id("box_mat", section.BoxMat, project.BoxMat, org.BoxMat),
		FaceMat:           id("face_mat", section.FaceMat, project.FaceMat, org.FaceMat),
		DrawerBoxMat:      id("drawer_box_mat", section.DrawerBoxMat, project.DrawerBoxMat, org.DrawerBoxMat),
		Hinge:             id("hinge", section.Hinge, project.Hinge, org.Hinge),
		Slide:             id("slide", section.Slide, project.Slide, org.Slide),
		Pull:              id("pull", section.Pull, project.Pull, org.Pull),
		FaceFinish:        list("face_finish", section.FaceFinish, project.FaceFinish, org.FaceFinish),
		BoxFinish:         list("box_finish", section.BoxFinish, project.BoxFinish, org.BoxFinish),
		CrownMolding:      flag("crown_molding", section.CrownMolding, project.CrownMolding, org.CrownMolding),
		LightRailMolding:  flag("light_rail_molding", section.LightRailMolding, project.LightRailMolding, org.LightRailMolding),
		BaseMolding:       flag("base_molding", section.BaseMolding, project.BaseMolding, org.BaseMolding),
		ToeMolding:        flag("toe_molding", section.ToeMolding, project.ToeMolding, org.ToeMolding),
		EndPanelMod:       id("end_panel_mod", section.EndPanelMod, project.EndPanelMod, org.EndPanelMod),
		BackPanelMod:      id("back_panel_mod", section.BackPanelMod, project.BackPanelMod, org.BackPanelMod),
		DoorStyle:         str("door_style", section.DoorStyle, project.DoorStyle, org.DoorStyle),
		DrawerFrontStyle:  str("drawer_front_style", section.DrawerFrontStyle, project.DrawerFrontStyle, org.DrawerFrontStyle),
		ProfitPercent:     pct("profit", section.ProfitPercent, project.ProfitPercent, org.ProfitPercent),
		CommissionPercent: pct("commission", section.CommissionPercent, project.CommissionPercent, org.CommissionPercent),
		DiscountPercent:   pct("discount", section.DiscountPercent, project.DiscountPercent, org.DiscountPercent),
		Quantity:          1,
	}
	if section.Quantity != nil {
		eff.Quantity = *section.Quantity
	}

	eff.DoorMat = followFace(sources, "door_mat", section.DoorMat, eff.FaceMat)
	eff.DrawerFrontMat = followFace(sources, "drawer_front_mat", section.DrawerFrontMat, eff.FaceMat)
	eff.DoorFinish = followFaceFinish(sources, "door_finish", section.DoorFinish, eff.FaceFinish)
	eff.DrawerFrontFinish = followFaceFinish(sources, "drawer_front_finish", section.DrawerFrontFinish, eff.FaceFinish)

	eff.Sources = sources
	return eff
}

func followFace(sources map[string]model.Source, name string, own *int64, face int64) int64 {
	if own != nil {
		sources[name] = model.SourceSection
		return *own
	}
	sources[name] = sources["face_mat"]
	return face
}

func followFaceFinish(sources map[string]model.Source, name string, own, face []int64) []int64 {
	if own != nil {
		sources[name] = model.SourceSection
		return cloneIDs(own)
	}
	sources[name] = sources["face_finish"]
	return cloneIDs(face)
}

func cloneIDs(ids []int64) []int64 {
	if ids == nil {
		return []int64{}
	}
	return slices.Clone(ids)
}
