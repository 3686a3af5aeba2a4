package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Simplici0/casework/internal/model"
)

// SectionInputs is everything the engine needs from the tier tables to
// price one section.
type SectionInputs struct {
	Organization model.OrganizationDefaults
	Project      model.ProjectDefaults
	Section      model.Section
}

// SectionInputs loads a section together with its estimate and
// organization. The section must belong to estimateID.
func (s *Store) SectionInputs(ctx context.Context, estimateID, sectionID int64) (SectionInputs, error) {
	var in SectionInputs
	err := s.readTx(ctx, func(tx *sql.Tx) error {
		section, err := loadSection(ctx, tx, estimateID, sectionID)
		if err != nil {
			return err
		}
		project, orgID, err := loadEstimate(ctx, tx, estimateID)
		if err != nil {
			return err
		}
		org, err := loadOrganization(ctx, tx, orgID)
		if err != nil {
			return err
		}
		in = SectionInputs{Organization: org, Project: project, Section: section}
		return nil
	})
	if err != nil {
		return SectionInputs{}, err
	}
	return in, nil
}

func (s *Store) Organization(ctx context.Context, id int64) (model.OrganizationDefaults, error) {
	return loadOrganization(ctx, s.db, id)
}

// Estimate returns the project defaults and the owning organization id.
func (s *Store) Estimate(ctx context.Context, id int64) (model.ProjectDefaults, int64, error) {
	return loadEstimate(ctx, s.db, id)
}

func (s *Store) Section(ctx context.Context, estimateID, sectionID int64) (model.Section, error) {
	return loadSection(ctx, s.db, estimateID, sectionID)
}

func loadOrganization(ctx context.Context, q queryer, id int64) (model.OrganizationDefaults, error) {
	var org model.OrganizationDefaults
	var faceFinish, boxFinish sql.Null[string]
	err := q.QueryRowContext(ctx, `
		SELECT
			id, name,
			default_cabinet_style, default_box_mat, default_face_mat, default_drawer_box_mat,
			default_hinge, default_slide, default_pull,
			default_face_finish, default_box_finish,
			default_crown_molding, default_light_rail_molding, default_base_molding, default_toe_molding,
			default_end_panel_mod, default_back_panel_mod,
			default_door_style, default_drawer_front_style,
			default_profit, default_commission, default_discount
		FROM organizations
		WHERE id = ?
	`, id).Scan(
		&org.ID, &org.Name,
		&org.CabinetStyle, &org.BoxMat, &org.FaceMat, &org.DrawerBoxMat,
		&org.Hinge, &org.Slide, &org.Pull,
		&faceFinish, &boxFinish,
		&org.CrownMolding, &org.LightRailMolding, &org.BaseMolding, &org.ToeMolding,
		&org.EndPanelMod, &org.BackPanelMod,
		&org.DoorStyle, &org.DrawerFrontStyle,
		&org.ProfitPercent, &org.CommissionPercent, &org.DiscountPercent,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.OrganizationDefaults{}, fmt.Errorf("organization %d: %w", id, ErrNotFound)
		}
		return model.OrganizationDefaults{}, fmt.Errorf("query organization %d: %w", id, err)
	}

	if org.FaceFinish, err = decodeIDs(faceFinish); err != nil {
		return model.OrganizationDefaults{}, err
	}
	if org.BoxFinish, err = decodeIDs(boxFinish); err != nil {
		return model.OrganizationDefaults{}, err
	}
	// Organization lists are never absent.
	if org.FaceFinish == nil {
		org.FaceFinish = []int64{}
	}
	if org.BoxFinish == nil {
		org.BoxFinish = []int64{}
	}

	if org.LaborRates, err = loadLaborRates(ctx, q, id); err != nil {
		return model.OrganizationDefaults{}, err
	}
	return org, nil
}

func loadLaborRates(ctx context.Context, q queryer, orgID int64) (map[int64]float64, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT labor_service_id, hourly_rate
		FROM labor_rate_overrides
		WHERE organization_id = ?
	`, orgID)
	if err != nil {
		return nil, fmt.Errorf("query labor rate overrides: %w", err)
	}
	defer rows.Close()

	var rates map[int64]float64
	for rows.Next() {
		var serviceID int64
		var rate float64
		if err := rows.Scan(&serviceID, &rate); err != nil {
			return nil, fmt.Errorf("scan labor rate override: %w", err)
		}
		if rates == nil {
			rates = make(map[int64]float64)
		}
		rates[serviceID] = rate
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate labor rate overrides: %w", err)
	}

	return rates, nil
}

func loadEstimate(ctx context.Context, q queryer, id int64) (model.ProjectDefaults, int64, error) {
	var (
		p                                                    model.ProjectDefaults
		orgID                                                int64
		cabinetStyle, doorStyle, drawerFrontStyle            sql.Null[string]
		boxMat, faceMat, drawerBoxMat, hinge, slide, pull    sql.Null[int64]
		endPanelMod, backPanelMod                            sql.Null[int64]
		faceFinish, boxFinish                                sql.Null[string]
		crownMolding, lightRailMolding, baseMolding, toeMold sql.Null[bool]
		profit, commission, discount                         sql.Null[float64]
	)
	err := q.QueryRowContext(ctx, `
		SELECT
			id, organization_id, name,
			default_cabinet_style, default_box_mat, default_face_mat, default_drawer_box_mat,
			default_hinge, default_slide, default_pull,
			default_face_finish, default_box_finish,
			default_crown_molding, default_light_rail_molding, default_base_molding, default_toe_molding,
			default_end_panel_mod, default_back_panel_mod,
			default_door_style, default_drawer_front_style,
			default_profit, default_commission, default_discount
		FROM estimates
		WHERE id = ?
	`, id).Scan(
		&p.ID, &orgID, &p.Name,
		&cabinetStyle, &boxMat, &faceMat, &drawerBoxMat,
		&hinge, &slide, &pull,
		&faceFinish, &boxFinish,
		&crownMolding, &lightRailMolding, &baseMolding, &toeMold,
		&endPanelMod, &backPanelMod,
		&doorStyle, &drawerFrontStyle,
		&profit, &commission, &discount,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.ProjectDefaults{}, 0, fmt.Errorf("estimate %d: %w", id, ErrNotFound)
		}
		return model.ProjectDefaults{}, 0, fmt.Errorf("query estimate %d: %w", id, err)
	}

	p.CabinetStyle = ptrOf(cabinetStyle)
	p.BoxMat = ptrOf(boxMat)
	p.FaceMat = ptrOf(faceMat)
	p.DrawerBoxMat = ptrOf(drawerBoxMat)
	p.Hinge = ptrOf(hinge)
	p.Slide = ptrOf(slide)
	p.Pull = ptrOf(pull)
	p.CrownMolding = ptrOf(crownMolding)
	p.LightRailMolding = ptrOf(lightRailMolding)
	p.BaseMolding = ptrOf(baseMolding)
	p.ToeMolding = ptrOf(toeMold)
	p.EndPanelMod = ptrOf(endPanelMod)
	p.BackPanelMod = ptrOf(backPanelMod)
	p.DoorStyle = ptrOf(doorStyle)
	p.DrawerFrontStyle = ptrOf(drawerFrontStyle)
	p.ProfitPercent = ptrOf(profit)
	p.CommissionPercent = ptrOf(commission)
	p.DiscountPercent = ptrOf(discount)

	if p.FaceFinish, err = decodeIDs(faceFinish); err != nil {
		return model.ProjectDefaults{}, 0, err
	}
	if p.BoxFinish, err = decodeIDs(boxFinish); err != nil {
		return model.ProjectDefaults{}, 0, err
	}
	return p, orgID, nil
}

func loadSection(ctx context.Context, q queryer, estimateID, sectionID int64) (model.Section, error) {
	var (
		sec                                                  model.Section
		cabinetStyle, doorStyle, drawerFrontStyle            sql.Null[string]
		boxMat, faceMat, drawerBoxMat, hinge, slide, pull    sql.Null[int64]
		endPanelMod, backPanelMod, doorMat, drawerFrontMat   sql.Null[int64]
		faceFinish, boxFinish, doorFinish, drawerFrontFinish sql.Null[string]
		crownMolding, lightRailMolding, baseMolding, toeMold sql.Null[bool]
		profit, commission, discount, quantity               sql.Null[float64]
		addHours, lineItems                                  string
	)
	err := q.QueryRowContext(ctx, `
		SELECT
			id, estimate_id, name,
			cabinet_style, box_mat, face_mat, drawer_box_mat,
			hinge, slide, pull,
			face_finish, box_finish,
			crown_molding, light_rail_molding, base_molding, toe_molding,
			end_panel_mod, back_panel_mod,
			door_style, drawer_front_style,
			profit, commission, discount,
			door_mat, drawer_front_mat, door_finish, drawer_front_finish,
			quantity, notes, add_hours, line_items
		FROM sections
		WHERE id = ? AND estimate_id = ?
	`, sectionID, estimateID).Scan(
		&sec.ID, &sec.EstimateID, &sec.Name,
		&cabinetStyle, &boxMat, &faceMat, &drawerBoxMat,
		&hinge, &slide, &pull,
		&faceFinish, &boxFinish,
		&crownMolding, &lightRailMolding, &baseMolding, &toeMold,
		&endPanelMod, &backPanelMod,
		&doorStyle, &drawerFrontStyle,
		&profit, &commission, &discount,
		&doorMat, &drawerFrontMat, &doorFinish, &drawerFrontFinish,
		&quantity, &sec.Notes, &addHours, &lineItems,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Section{}, fmt.Errorf("section %d in estimate %d: %w", sectionID, estimateID, ErrNotFound)
		}
		return model.Section{}, fmt.Errorf("query section %d: %w", sectionID, err)
	}

	sec.CabinetStyle = ptrOf(cabinetStyle)
	sec.BoxMat = ptrOf(boxMat)
	sec.FaceMat = ptrOf(faceMat)
	sec.DrawerBoxMat = ptrOf(drawerBoxMat)
	sec.Hinge = ptrOf(hinge)
	sec.Slide = ptrOf(slide)
	sec.Pull = ptrOf(pull)
	sec.CrownMolding = ptrOf(crownMolding)
	sec.LightRailMolding = ptrOf(lightRailMolding)
	sec.BaseMolding = ptrOf(baseMolding)
	sec.ToeMolding = ptrOf(toeMold)
	sec.EndPanelMod = ptrOf(endPanelMod)
	sec.BackPanelMod = ptrOf(backPanelMod)
	sec.DoorStyle = ptrOf(doorStyle)
	sec.DrawerFrontStyle = ptrOf(drawerFrontStyle)
	sec.ProfitPercent = ptrOf(profit)
	sec.CommissionPercent = ptrOf(commission)
	sec.DiscountPercent = ptrOf(discount)
	sec.DoorMat = ptrOf(doorMat)
	sec.DrawerFrontMat = ptrOf(drawerFrontMat)
	sec.Quantity = ptrOf(quantity)

	for _, f := range []struct {
		dst *[]int64
		raw sql.Null[string]
	}{
		{&sec.FaceFinish, faceFinish},
		{&sec.BoxFinish, boxFinish},
		{&sec.DoorFinish, doorFinish},
		{&sec.DrawerFrontFinish, drawerFrontFinish},
	} {
		if *f.dst, err = decodeIDs(f.raw); err != nil {
			return model.Section{}, err
		}
	}

	if err := json.Unmarshal([]byte(addHours), &sec.AddHours); err != nil {
		return model.Section{}, fmt.Errorf("decode section %d add_hours: %w", sectionID, err)
	}
	if err := json.Unmarshal([]byte(lineItems), &sec.LineItems); err != nil {
		return model.Section{}, fmt.Errorf("decode section %d line items: %w", sectionID, err)
	}
	return sec, nil
}

// CreateOrganization inserts org and its labor rate overrides and returns
// the new id.
func (s *Store) CreateOrganization(ctx context.Context, org model.OrganizationDefaults) (int64, error) {
	var id int64
	err := s.writeTx(ctx, func(tx *sql.Tx) error {
		faceFinish, err := encodeIDs(orEmpty(org.FaceFinish))
		if err != nil {
			return err
		}
		boxFinish, err := encodeIDs(orEmpty(org.BoxFinish))
		if err != nil {
			return err
		}

		res, err := tx.ExecContext(ctx, `
			INSERT INTO organizations (
				name,
				default_cabinet_style, default_box_mat, default_face_mat, default_drawer_box_mat,
				default_hinge, default_slide, default_pull,
				default_face_finish, default_box_finish,
				default_crown_molding, default_light_rail_molding, default_base_molding, default_toe_molding,
				default_end_panel_mod, default_back_panel_mod,
				default_door_style, default_drawer_front_style,
				default_profit, default_commission, default_discount
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`,
			org.Name,
			org.CabinetStyle, org.BoxMat, org.FaceMat, org.DrawerBoxMat,
			org.Hinge, org.Slide, org.Pull,
			faceFinish, boxFinish,
			org.CrownMolding, org.LightRailMolding, org.BaseMolding, org.ToeMolding,
			org.EndPanelMod, org.BackPanelMod,
			org.DoorStyle, org.DrawerFrontStyle,
			org.ProfitPercent, org.CommissionPercent, org.DiscountPercent,
		)
		if err != nil {
			return fmt.Errorf("insert organization: %w", err)
		}
		if id, err = res.LastInsertId(); err != nil {
			return fmt.Errorf("read organization id: %w", err)
		}

		return saveLaborRates(ctx, tx, id, org.LaborRates)
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

func saveLaborRates(ctx context.Context, ex execer, orgID int64, rates map[int64]float64) error {
	for serviceID, rate := range rates {
		if _, err := ex.ExecContext(ctx, `
			INSERT INTO labor_rate_overrides (organization_id, labor_service_id, hourly_rate)
			VALUES (?, ?, ?)
			ON CONFLICT(organization_id, labor_service_id) DO UPDATE SET hourly_rate = excluded.hourly_rate
		`, orgID, serviceID, rate); err != nil {
			return fmt.Errorf("upsert labor rate override for service %d: %w", serviceID, err)
		}
	}
	return nil
}

// CreateEstimate inserts an estimate owned by orgID. Nil project fields are
// stored as NULL and inherit from the organization.
func (s *Store) CreateEstimate(ctx context.Context, orgID int64, p model.ProjectDefaults) (int64, error) {
	faceFinish, err := encodeIDs(p.FaceFinish)
	if err != nil {
		return 0, err
	}
	boxFinish, err := encodeIDs(p.BoxFinish)
	if err != nil {
		return 0, err
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO estimates (
			organization_id, name,
			default_cabinet_style, default_box_mat, default_face_mat, default_drawer_box_mat,
			default_hinge, default_slide, default_pull,
			default_face_finish, default_box_finish,
			default_crown_molding, default_light_rail_molding, default_base_molding, default_toe_molding,
			default_end_panel_mod, default_back_panel_mod,
			default_door_style, default_drawer_front_style,
			default_profit, default_commission, default_discount
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		orgID, p.Name,
		nullOf(p.CabinetStyle), nullOf(p.BoxMat), nullOf(p.FaceMat), nullOf(p.DrawerBoxMat),
		nullOf(p.Hinge), nullOf(p.Slide), nullOf(p.Pull),
		faceFinish, boxFinish,
		nullOf(p.CrownMolding), nullOf(p.LightRailMolding), nullOf(p.BaseMolding), nullOf(p.ToeMolding),
		nullOf(p.EndPanelMod), nullOf(p.BackPanelMod),
		nullOf(p.DoorStyle), nullOf(p.DrawerFrontStyle),
		nullOf(p.ProfitPercent), nullOf(p.CommissionPercent), nullOf(p.DiscountPercent),
	)
	if err != nil {
		return 0, fmt.Errorf("insert estimate: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read estimate id: %w", err)
	}
	return id, nil
}

// CreateSection inserts sec under sec.EstimateID and returns the new id.
func (s *Store) CreateSection(ctx context.Context, sec model.Section) (int64, error) {
	finishes := make([]sql.Null[string], 0, 4)
	for _, ids := range [][]int64{sec.FaceFinish, sec.BoxFinish, sec.DoorFinish, sec.DrawerFrontFinish} {
		encoded, err := encodeIDs(ids)
		if err != nil {
			return 0, err
		}
		finishes = append(finishes, encoded)
	}

	addHours, err := json.Marshal(sec.AddHours)
	if err != nil {
		return 0, fmt.Errorf("encode add_hours: %w", err)
	}
	lineItems, err := json.Marshal(orEmpty(sec.LineItems))
	if err != nil {
		return 0, fmt.Errorf("encode line items: %w", err)
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO sections (
			estimate_id, name,
			cabinet_style, box_mat, face_mat, drawer_box_mat,
			hinge, slide, pull,
			face_finish, box_finish,
			crown_molding, light_rail_molding, base_molding, toe_molding,
			end_panel_mod, back_panel_mod,
			door_style, drawer_front_style,
			profit, commission, discount,
			door_mat, drawer_front_mat, door_finish, drawer_front_finish,
			quantity, notes, add_hours, line_items
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		sec.EstimateID, sec.Name,
		nullOf(sec.CabinetStyle), nullOf(sec.BoxMat), nullOf(sec.FaceMat), nullOf(sec.DrawerBoxMat),
		nullOf(sec.Hinge), nullOf(sec.Slide), nullOf(sec.Pull),
		finishes[0], finishes[1],
		nullOf(sec.CrownMolding), nullOf(sec.LightRailMolding), nullOf(sec.BaseMolding), nullOf(sec.ToeMolding),
		nullOf(sec.EndPanelMod), nullOf(sec.BackPanelMod),
		nullOf(sec.DoorStyle), nullOf(sec.DrawerFrontStyle),
		nullOf(sec.ProfitPercent), nullOf(sec.CommissionPercent), nullOf(sec.DiscountPercent),
		nullOf(sec.DoorMat), nullOf(sec.DrawerFrontMat), finishes[2], finishes[3],
		nullOf(sec.Quantity), sec.Notes, string(addHours), string(lineItems),
	)
	if err != nil {
		return 0, fmt.Errorf("insert section: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read section id: %w", err)
	}
	return id, nil
}

func orEmpty[S ~[]E, E any](s S) S {
	if s == nil {
		return S{}
	}
	return s
}
