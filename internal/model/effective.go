package model

// Source names the tier an effective value was taken from.
type Source string

const (
	SourceSection Source = "section"
	SourceProject Source = "project"
	SourceOrg     Source = "org"
)

// EffectiveConfiguration is a section with every tiered attribute filled in.
type EffectiveConfiguration struct {
	CabinetStyle      string  `json:"cabinet_style"`
	BoxMat            int64   `json:"box_mat"`
	FaceMat           int64   `json:"face_mat"`
	DrawerBoxMat      int64   `json:"drawer_box_mat"`
	DoorMat           int64   `json:"door_mat"`
	DrawerFrontMat    int64   `json:"drawer_front_mat"`
	Hinge             int64   `json:"hinge"`
	Slide             int64   `json:"slide"`
	Pull              int64   `json:"pull"`
	FaceFinish        []int64 `json:"face_finish"`
	BoxFinish         []int64 `json:"box_finish"`
	DoorFinish        []int64 `json:"door_finish"`
	DrawerFrontFinish []int64 `json:"drawer_front_finish"`
	CrownMolding      bool    `json:"crown_molding"`
	LightRailMolding  bool    `json:"light_rail_molding"`
	BaseMolding       bool    `json:"base_molding"`
	ToeMolding        bool    `json:"toe_molding"`
	EndPanelMod       int64   `json:"end_panel_mod"`
	BackPanelMod      int64   `json:"back_panel_mod"`
	DoorStyle         string  `json:"door_style"`
	DrawerFrontStyle  string  `json:"drawer_front_style"`
	Quantity          float64 `json:"quantity"`
	ProfitPercent     float64 `json:"profit"`
	CommissionPercent float64 `json:"commission"`
	DiscountPercent   float64 `json:"discount"`

	// Sources maps each attribute's json name to the tier it came from.
	Sources map[string]Source `json:"sources"`
}
