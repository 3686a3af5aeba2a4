package model

// Category keys a line item to a breakdown bucket.
type Category string

const (
	CategoryBoxes        Category = "boxes"
	CategoryDoors        Category = "doors"
	CategoryDrawerFronts Category = "drawer_fronts"
	CategoryFalseFronts  Category = "false_fronts"
	CategoryPanels       Category = "panels"
	CategoryHood         Category = "hood"
	CategoryDrawerBoxes  Category = "drawer_boxes"
	CategoryRollouts     Category = "rollouts"
	CategoryHinges       Category = "hinges"
	CategorySlides       Category = "slides"
	CategoryPulls        Category = "pulls"
	CategoryFaceFrame    Category = "face_frame"
	CategoryFillers      Category = "fillers"
	CategoryPanelMods    Category = "panel_mods"
	CategoryLengths      Category = "lengths"
	CategoryAccessories  Category = "accessories"
	CategoryOther        Category = "other"
	CategoryNosing       Category = "nosing"
)

// FinishTarget says whose finish multiplier applies to a line item.
type FinishTarget string

const (
	FinishNone        FinishTarget = ""
	FinishFace        FinishTarget = "face"
	FinishBox         FinishTarget = "box"
	FinishDoor        FinishTarget = "door"
	FinishDrawerFront FinishTarget = "drawer_front"
)

// LineItem is one priced part of a section, per single run of the section.
// Hours are per unit, keyed by labor service id.
type LineItem struct {
	Category    Category          `json:"category" yaml:"category"`
	Description string            `json:"description" yaml:"description"`
	Quantity    float64           `json:"quantity" yaml:"quantity"`
	UnitCost    float64           `json:"unit_cost" yaml:"unit_cost"`
	Finish      FinishTarget      `json:"finish,omitempty" yaml:"finish,omitempty"`
	Hours       map[int64]float64 `json:"hours,omitempty" yaml:"hours,omitempty"`
}
