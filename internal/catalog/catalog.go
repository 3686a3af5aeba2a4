// Package catalog holds read-only snapshots of the shop's catalogs.
//
// A Snapshot is taken once per calculation pass and never mutated, so
// materials and finishes seen by one pass always belong together.
package catalog

// Well-known labor service ids.
const (
	ShopServiceID     int64 = 1
	FinishServiceID   int64 = 2
	AssemblyServiceID int64 = 3
	InstallServiceID  int64 = 4
)

// HardwareKind classifies hardware catalog rows.
type HardwareKind string

const (
	KindHinge HardwareKind = "hinge"
	KindSlide HardwareKind = "slide"
	KindPull  HardwareKind = "pull"
)

type Material struct {
	ID          int64   `json:"id" yaml:"id"`
	Name        string  `json:"name" yaml:"name"`
	NeedsFinish bool    `json:"needs_finish" yaml:"needs_finish"`
	SheetCost   float64 `json:"sheet_cost" yaml:"sheet_cost"`
	IsActive    bool    `json:"is_active" yaml:"is_active"`
}

// Finish markups are percentages: 25 means +25%.
type Finish struct {
	ID           int64   `json:"id" yaml:"id"`
	Name         string  `json:"name" yaml:"name"`
	FinishMarkup float64 `json:"finish_markup" yaml:"finish_markup"`
	ShopMarkup   float64 `json:"shop_markup" yaml:"shop_markup"`
	IsActive     bool    `json:"is_active" yaml:"is_active"`
}

type Hardware struct {
	ID       int64        `json:"id" yaml:"id"`
	Name     string       `json:"name" yaml:"name"`
	Kind     HardwareKind `json:"kind" yaml:"kind"`
	UnitCost float64      `json:"unit_cost" yaml:"unit_cost"`
	IsActive bool         `json:"is_active" yaml:"is_active"`
}

type LaborService struct {
	ID         int64   `json:"id" yaml:"id"`
	Name       string  `json:"name" yaml:"name"`
	HourlyRate float64 `json:"hourly_rate" yaml:"hourly_rate"`
	IsActive   bool    `json:"is_active" yaml:"is_active"`
}

func (m Material) key() int64     { return m.ID }
func (f Finish) key() int64       { return f.ID }
func (h Hardware) key() int64     { return h.ID }
func (s LaborService) key() int64 { return s.ID }

type keyed interface {
	Material | Finish | Hardware | LaborService
	key() int64
}

// find is a linear scan; catalogs are small and arrive as plain lists.
func find[T keyed](items []T, id int64) (T, bool) {
	for _, item := range items {
		if item.key() == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

type (
	Materials     []Material
	Finishes      []Finish
	HardwareItems []Hardware
	LaborServices []LaborService
)

func (c Materials) Find(id int64) (Material, bool)         { return find(c, id) }
func (c Finishes) Find(id int64) (Finish, bool)            { return find(c, id) }
func (c HardwareItems) Find(id int64) (Hardware, bool)     { return find(c, id) }
func (c LaborServices) Find(id int64) (LaborService, bool) { return find(c, id) }

// Snapshot bundles every catalog a calculation pass reads.
type Snapshot struct {
	Materials     Materials     `json:"materials" yaml:"materials"`
	Finishes      Finishes      `json:"finishes" yaml:"finishes"`
	Hardware      HardwareItems `json:"hardware" yaml:"hardware"`
	LaborServices LaborServices `json:"labor_services" yaml:"labor_services"`
}

// EffectiveRates returns the hourly rate of every active labor service,
// with organization overrides applied on top of the catalog rate.
func (s Snapshot) EffectiveRates(overrides map[int64]float64) map[int64]float64 {
	rates := make(map[int64]float64, len(s.LaborServices))
	for _, svc := range s.LaborServices {
		if !svc.IsActive {
			continue
		}
		rate := svc.HourlyRate
		if override, ok := overrides[svc.ID]; ok {
			rate = override
		}
		rates[svc.ID] = rate
	}
	return rates
}
