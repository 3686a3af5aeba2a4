package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Simplici0/casework/internal/catalog"
)

// LoadSnapshot reads every catalog inside one transaction, so a calculation
// pass never sees materials from before an edit next to finishes from after.
func (s *Store) LoadSnapshot(ctx context.Context) (catalog.Snapshot, error) {
	var snap catalog.Snapshot
	err := s.readTx(ctx, func(tx *sql.Tx) error {
		var err error
		if snap.Materials, err = listMaterials(ctx, tx); err != nil {
			return err
		}
		if snap.Finishes, err = listFinishes(ctx, tx); err != nil {
			return err
		}
		if snap.Hardware, err = listHardware(ctx, tx); err != nil {
			return err
		}
		if snap.LaborServices, err = listLaborServices(ctx, tx); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return catalog.Snapshot{}, err
	}
	return snap, nil
}

func listMaterials(ctx context.Context, q queryer) (catalog.Materials, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, name, needs_finish, sheet_cost, active
		FROM materials
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("query materials: %w", err)
	}
	defer rows.Close()

	materials := make(catalog.Materials, 0)
	for rows.Next() {
		var m catalog.Material
		if err := rows.Scan(&m.ID, &m.Name, &m.NeedsFinish, &m.SheetCost, &m.IsActive); err != nil {
			return nil, fmt.Errorf("scan material: %w", err)
		}
		materials = append(materials, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate materials: %w", err)
	}

	return materials, nil
}

func listFinishes(ctx context.Context, q queryer) (catalog.Finishes, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, name, finish_markup, shop_markup, active
		FROM finishes
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("query finishes: %w", err)
	}
	defer rows.Close()

	finishes := make(catalog.Finishes, 0)
	for rows.Next() {
		var f catalog.Finish
		if err := rows.Scan(&f.ID, &f.Name, &f.FinishMarkup, &f.ShopMarkup, &f.IsActive); err != nil {
			return nil, fmt.Errorf("scan finish: %w", err)
		}
		finishes = append(finishes, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate finishes: %w", err)
	}

	return finishes, nil
}

func listHardware(ctx context.Context, q queryer) (catalog.HardwareItems, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, name, kind, unit_cost, active
		FROM hardware
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("query hardware: %w", err)
	}
	defer rows.Close()

	items := make(catalog.HardwareItems, 0)
	for rows.Next() {
		var h catalog.Hardware
		var kind string
		if err := rows.Scan(&h.ID, &h.Name, &kind, &h.UnitCost, &h.IsActive); err != nil {
			return nil, fmt.Errorf("scan hardware: %w", err)
		}
		h.Kind = catalog.HardwareKind(kind)
		items = append(items, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate hardware: %w", err)
	}

	return items, nil
}

func listLaborServices(ctx context.Context, q queryer) (catalog.LaborServices, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, name, hourly_rate, active
		FROM labor_services
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("query labor services: %w", err)
	}
	defer rows.Close()

	services := make(catalog.LaborServices, 0)
	for rows.Next() {
		var svc catalog.LaborService
		if err := rows.Scan(&svc.ID, &svc.Name, &svc.HourlyRate, &svc.IsActive); err != nil {
			return nil, fmt.Errorf("scan labor service: %w", err)
		}
		services = append(services, svc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate labor services: %w", err)
	}

	return services, nil
}

// SaveSnapshot upserts every catalog row by id in one transaction.
func (s *Store) SaveSnapshot(ctx context.Context, snap catalog.Snapshot) error {
	return s.writeTx(ctx, func(tx *sql.Tx) error {
		for _, m := range snap.Materials {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO materials (id, name, needs_finish, sheet_cost, active)
				VALUES (?, ?, ?, ?, ?)
				ON CONFLICT(id) DO UPDATE SET
					name = excluded.name,
					needs_finish = excluded.needs_finish,
					sheet_cost = excluded.sheet_cost,
					active = excluded.active,
					updated_at = CURRENT_TIMESTAMP
			`, m.ID, m.Name, m.NeedsFinish, m.SheetCost, m.IsActive); err != nil {
				return fmt.Errorf("upsert material %d: %w", m.ID, err)
			}
		}
		for _, f := range snap.Finishes {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO finishes (id, name, finish_markup, shop_markup, active)
				VALUES (?, ?, ?, ?, ?)
				ON CONFLICT(id) DO UPDATE SET
					name = excluded.name,
					finish_markup = excluded.finish_markup,
					shop_markup = excluded.shop_markup,
					active = excluded.active,
					updated_at = CURRENT_TIMESTAMP
			`, f.ID, f.Name, f.FinishMarkup, f.ShopMarkup, f.IsActive); err != nil {
				return fmt.Errorf("upsert finish %d: %w", f.ID, err)
			}
		}
		for _, h := range snap.Hardware {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO hardware (id, name, kind, unit_cost, active)
				VALUES (?, ?, ?, ?, ?)
				ON CONFLICT(id) DO UPDATE SET
					name = excluded.name,
					kind = excluded.kind,
					unit_cost = excluded.unit_cost,
					active = excluded.active,
					updated_at = CURRENT_TIMESTAMP
			`, h.ID, h.Name, string(h.Kind), h.UnitCost, h.IsActive); err != nil {
				return fmt.Errorf("upsert hardware %d: %w", h.ID, err)
			}
		}
		for _, svc := range snap.LaborServices {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO labor_services (id, name, hourly_rate, active)
				VALUES (?, ?, ?, ?)
				ON CONFLICT(id) DO UPDATE SET
					name = excluded.name,
					hourly_rate = excluded.hourly_rate,
					active = excluded.active,
					updated_at = CURRENT_TIMESTAMP
			`, svc.ID, svc.Name, svc.HourlyRate, svc.IsActive); err != nil {
				return fmt.Errorf("upsert labor service %d: %w", svc.ID, err)
			}
		}
		return nil
	})
}
