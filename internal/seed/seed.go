package seed

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Simplici0/casework/internal/catalog"
)

const defaultOrganizationName = "Default Shop"

// Config contains the values required by startup seed.
type Config struct {
	OrganizationName string
}

// Stats contains seed operation counters.
type Stats struct {
	Inserts int
}

type row struct {
	label  string
	exists string
	insert string
	args   []any
}

var laborServices = []catalog.LaborService{
	{ID: catalog.ShopServiceID, Name: "Shop", HourlyRate: 65, IsActive: true},
	{ID: catalog.FinishServiceID, Name: "Finish", HourlyRate: 70, IsActive: true},
	{ID: catalog.AssemblyServiceID, Name: "Assembly", HourlyRate: 60, IsActive: true},
	{ID: catalog.InstallServiceID, Name: "Install", HourlyRate: 85, IsActive: true},
}

var materials = []catalog.Material{
	{ID: 1, Name: "Prefinished maple ply", SheetCost: 92, IsActive: true},
	{ID: 2, Name: "Paint-grade maple", NeedsFinish: true, SheetCost: 88, IsActive: true},
	{ID: 3, Name: "Baltic birch", NeedsFinish: true, SheetCost: 110, IsActive: true},
}

var finishes = []catalog.Finish{
	{ID: 1, Name: "Clear lacquer", FinishMarkup: 15, ShopMarkup: 5, IsActive: true},
	{ID: 2, Name: "Painted", FinishMarkup: 35, ShopMarkup: 10, IsActive: true},
}

var hardware = []catalog.Hardware{
	{ID: 1, Name: "Soft-close hinge", Kind: catalog.KindHinge, UnitCost: 4.5, IsActive: true},
	{ID: 2, Name: "Full-extension undermount slide", Kind: catalog.KindSlide, UnitCost: 22, IsActive: true},
	{ID: 3, Name: "Bar pull 128mm", Kind: catalog.KindPull, UnitCost: 6.75, IsActive: true},
}

// Run executes the startup seed in an idempotent way. Rows are matched by id
// and never overwritten, so catalog edits survive restarts.
func Run(ctx context.Context, db *sql.DB, cfg Config) (Stats, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return Stats{}, fmt.Errorf("begin seed transaction: %w", err)
	}

	stats := Stats{}
	for _, r := range rows(cfg) {
		if err := ensure(ctx, tx, r, &stats); err != nil {
			_ = tx.Rollback()
			return Stats{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return Stats{}, fmt.Errorf("commit seed transaction: %w", err)
	}

	return stats, nil
}

func rows(cfg Config) []row {
	out := make([]row, 0, len(laborServices)+len(materials)+len(finishes)+len(hardware)+1)

	for _, svc := range laborServices {
		out = append(out, row{
			label:  "labor service " + svc.Name,
			exists: `SELECT EXISTS(SELECT 1 FROM labor_services WHERE id = ?)`,
			insert: `INSERT INTO labor_services (id, name, hourly_rate, active) VALUES (?, ?, ?, ?)`,
			args:   []any{svc.ID, svc.Name, svc.HourlyRate, svc.IsActive},
		})
	}
	for _, m := range materials {
		out = append(out, row{
			label:  "material " + m.Name,
			exists: `SELECT EXISTS(SELECT 1 FROM materials WHERE id = ?)`,
			insert: `INSERT INTO materials (id, name, needs_finish, sheet_cost, active) VALUES (?, ?, ?, ?, ?)`,
			args:   []any{m.ID, m.Name, m.NeedsFinish, m.SheetCost, m.IsActive},
		})
	}
	for _, f := range finishes {
		out = append(out, row{
			label:  "finish " + f.Name,
			exists: `SELECT EXISTS(SELECT 1 FROM finishes WHERE id = ?)`,
			insert: `INSERT INTO finishes (id, name, finish_markup, shop_markup, active) VALUES (?, ?, ?, ?, ?)`,
			args:   []any{f.ID, f.Name, f.FinishMarkup, f.ShopMarkup, f.IsActive},
		})
	}
	for _, h := range hardware {
		out = append(out, row{
			label:  "hardware " + h.Name,
			exists: `SELECT EXISTS(SELECT 1 FROM hardware WHERE id = ?)`,
			insert: `INSERT INTO hardware (id, name, kind, unit_cost, active) VALUES (?, ?, ?, ?, ?)`,
			args:   []any{h.ID, h.Name, string(h.Kind), h.UnitCost, h.IsActive},
		})
	}

	name := cfg.OrganizationName
	if name == "" {
		name = defaultOrganizationName
	}
	out = append(out, row{
		label:  "organization " + name,
		exists: `SELECT EXISTS(SELECT 1 FROM organizations WHERE id = ?)`,
		insert: `
			INSERT INTO organizations (
				id, name,
				default_cabinet_style, default_box_mat, default_face_mat, default_drawer_box_mat,
				default_hinge, default_slide, default_pull,
				default_face_finish, default_box_finish,
				default_door_style, default_drawer_front_style,
				default_profit, default_commission, default_discount
			) VALUES (?, ?, 'frameless', 1, 2, 3, 1, 2, 3, '[2]', '[]', 'slab', 'slab', 25, 0, 0)
		`,
		args: []any{int64(1), name},
	})

	return out
}

// ensure inserts r unless a row with the same key already exists. The first
// argument of r.args is the key.
func ensure(ctx context.Context, tx *sql.Tx, r row, stats *Stats) error {
	var exists bool
	if err := tx.QueryRowContext(ctx, r.exists, r.args[0]).Scan(&exists); err != nil {
		return fmt.Errorf("check %s existence: %w", r.label, err)
	}
	if exists {
		return nil
	}

	if _, err := tx.ExecContext(ctx, r.insert, r.args...); err != nil {
		return fmt.Errorf("insert %s: %w", r.label, err)
	}
	stats.Inserts++
	return nil
}
