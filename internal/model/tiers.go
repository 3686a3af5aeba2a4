package model

// OrganizationDefaults is the bottom tier. Every attribute carries a value;
// the owning store guarantees it.
type OrganizationDefaults struct {
	ID   int64  `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`

	CabinetStyle     string  `json:"default_cabinet_style" yaml:"default_cabinet_style"`
	BoxMat           int64   `json:"default_box_mat" yaml:"default_box_mat"`
	FaceMat          int64   `json:"default_face_mat" yaml:"default_face_mat"`
	DrawerBoxMat     int64   `json:"default_drawer_box_mat" yaml:"default_drawer_box_mat"`
	Hinge            int64   `json:"default_hinge" yaml:"default_hinge"`
	Slide            int64   `json:"default_slide" yaml:"default_slide"`
	Pull             int64   `json:"default_pull" yaml:"default_pull"`
	FaceFinish       []int64 `json:"default_face_finish" yaml:"default_face_finish"`
	BoxFinish        []int64 `json:"default_box_finish" yaml:"default_box_finish"`
	CrownMolding     bool    `json:"default_crown_molding" yaml:"default_crown_molding"`
	LightRailMolding bool    `json:"default_light_rail_molding" yaml:"default_light_rail_molding"`
	BaseMolding      bool    `json:"default_base_molding" yaml:"default_base_molding"`
	ToeMolding       bool    `json:"default_toe_molding" yaml:"default_toe_molding"`
	EndPanelMod      int64   `json:"default_end_panel_mod" yaml:"default_end_panel_mod"`
	BackPanelMod     int64   `json:"default_back_panel_mod" yaml:"default_back_panel_mod"`
	DoorStyle        string  `json:"default_door_style" yaml:"default_door_style"`
	DrawerFrontStyle string  `json:"default_drawer_front_style" yaml:"default_drawer_front_style"`

	ProfitPercent     float64 `json:"default_profit" yaml:"default_profit"`
	CommissionPercent float64 `json:"default_commission" yaml:"default_commission"`
	DiscountPercent   float64 `json:"default_discount" yaml:"default_discount"`

	// LaborRates overrides the catalog hourly rate per labor service id.
	LaborRates map[int64]float64 `json:"labor_rates,omitempty" yaml:"labor_rates,omitempty"`
}

// ProjectDefaults is the estimate-level tier. A nil field inherits from the
// organization.
type ProjectDefaults struct {
	ID   int64  `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`

	CabinetStyle     *string `json:"default_cabinet_style,omitempty" yaml:"default_cabinet_style,omitempty"`
	BoxMat           *int64  `json:"default_box_mat,omitempty" yaml:"default_box_mat,omitempty"`
	FaceMat          *int64  `json:"default_face_mat,omitempty" yaml:"default_face_mat,omitempty"`
	DrawerBoxMat     *int64  `json:"default_drawer_box_mat,omitempty" yaml:"default_drawer_box_mat,omitempty"`
	Hinge            *int64  `json:"default_hinge,omitempty" yaml:"default_hinge,omitempty"`
	Slide            *int64  `json:"default_slide,omitempty" yaml:"default_slide,omitempty"`
	Pull             *int64  `json:"default_pull,omitempty" yaml:"default_pull,omitempty"`
	FaceFinish       []int64 `json:"default_face_finish" yaml:"default_face_finish"`
	BoxFinish        []int64 `json:"default_box_finish" yaml:"default_box_finish"`
	CrownMolding     *bool   `json:"default_crown_molding,omitempty" yaml:"default_crown_molding,omitempty"`
	LightRailMolding *bool   `json:"default_light_rail_molding,omitempty" yaml:"default_light_rail_molding,omitempty"`
	BaseMolding      *bool   `json:"default_base_molding,omitempty" yaml:"default_base_molding,omitempty"`
	ToeMolding       *bool   `json:"default_toe_molding,omitempty" yaml:"default_toe_molding,omitempty"`
	EndPanelMod      *int64  `json:"default_end_panel_mod,omitempty" yaml:"default_end_panel_mod,omitempty"`
	BackPanelMod     *int64  `json:"default_back_panel_mod,omitempty" yaml:"default_back_panel_mod,omitempty"`
	DoorStyle        *string `json:"default_door_style,omitempty" yaml:"default_door_style,omitempty"`
	DrawerFrontStyle *string `json:"default_drawer_front_style,omitempty" yaml:"default_drawer_front_style,omitempty"`

	ProfitPercent     *float64 `json:"default_profit,omitempty" yaml:"default_profit,omitempty"`
	CommissionPercent *float64 `json:"default_commission,omitempty" yaml:"default_commission,omitempty"`
	DiscountPercent   *float64 `json:"default_discount,omitempty" yaml:"default_discount,omitempty"`
}

// Section is one cabinet run. Overridable attributes are nil when they
// inherit; finish lists are nil when absent and non-nil (possibly empty)
// when set explicitly.
type Section struct {
	ID         int64  `json:"id" yaml:"id"`
	EstimateID int64  `json:"estimate_id" yaml:"estimate_id"`
	Name       string `json:"name" yaml:"name"`

	CabinetStyle     *string `json:"cabinet_style,omitempty" yaml:"cabinet_style,omitempty"`
	BoxMat           *int64  `json:"box_mat,omitempty" yaml:"box_mat,omitempty"`
	FaceMat          *int64  `json:"face_mat,omitempty" yaml:"face_mat,omitempty"`
	DrawerBoxMat     *int64  `json:"drawer_box_mat,omitempty" yaml:"drawer_box_mat,omitempty"`
	Hinge            *int64  `json:"hinge,omitempty" yaml:"hinge,omitempty"`
	Slide            *int64  `json:"slide,omitempty" yaml:"slide,omitempty"`
	Pull             *int64  `json:"pull,omitempty" yaml:"pull,omitempty"`
	FaceFinish       []int64 `json:"face_finish" yaml:"face_finish"`
	BoxFinish        []int64 `json:"box_finish" yaml:"box_finish"`
	CrownMolding     *bool   `json:"crown_molding,omitempty" yaml:"crown_molding,omitempty"`
	LightRailMolding *bool   `json:"light_rail_molding,omitempty" yaml:"light_rail_molding,omitempty"`
	BaseMolding      *bool   `json:"base_molding,omitempty" yaml:"base_molding,omitempty"`
	ToeMolding       *bool   `json:"toe_molding,omitempty" yaml:"toe_molding,omitempty"`
	EndPanelMod      *int64  `json:"end_panel_mod,omitempty" yaml:"end_panel_mod,omitempty"`
	BackPanelMod     *int64  `json:"back_panel_mod,omitempty" yaml:"back_panel_mod,omitempty"`
	DoorStyle        *string `json:"door_style,omitempty" yaml:"door_style,omitempty"`
	DrawerFrontStyle *string `json:"drawer_front_style,omitempty" yaml:"drawer_front_style,omitempty"`

	ProfitPercent     *float64 `json:"profit,omitempty" yaml:"profit,omitempty"`
	CommissionPercent *float64 `json:"commission,omitempty" yaml:"commission,omitempty"`
	DiscountPercent   *float64 `json:"discount,omitempty" yaml:"discount,omitempty"`

	// Door and drawer-front selections have no project or organization
	// tier; when unset they follow the resolved face material and finish.
	DoorMat           *int64  `json:"door_mat,omitempty" yaml:"door_mat,omitempty"`
	DrawerFrontMat    *int64  `json:"drawer_front_mat,omitempty" yaml:"drawer_front_mat,omitempty"`
	DoorFinish        []int64 `json:"door_finish" yaml:"door_finish"`
	DrawerFrontFinish []int64 `json:"drawer_front_finish" yaml:"drawer_front_finish"`

	// Quantity is nil for "one run"; an explicit zero prices to nothing.
	Quantity  *float64        `json:"quantity,omitempty" yaml:"quantity,omitempty"`
	Notes     string          `json:"notes" yaml:"notes"`
	AddHours  HourAdjustments `json:"add_hours" yaml:"add_hours"`
	LineItems []LineItem      `json:"line_items" yaml:"line_items"`
}
