package model

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

// SetupHoursKey is the reserved add_hours key for shop setup time.
const SetupHoursKey = "setup_hours"

// AdjustmentKind tags a manual hour adjustment.
type AdjustmentKind int

const (
	AdjustService AdjustmentKind = iota
	AdjustSetup
)

// HourAdjustment is one manual labor-hour entry on a section. ServiceID is
// only meaningful for AdjustService entries.
type HourAdjustment struct {
	Kind      AdjustmentKind
	ServiceID int64
	Hours     float64
}

// HourAdjustments is the parsed form of a section's add_hours object.
// It reads and writes the object form ({"setup_hours": 2, "1": 3}).
type HourAdjustments []HourAdjustment

// ParseAddHours converts the raw add_hours object into tagged adjustments.
// Keys that are neither "setup_hours" nor an integral service id ("2" or
// "2.0"), and values that are not numbers or numeric strings, are dropped.
// The result is ordered setup first, then by service id.
func ParseAddHours(raw map[string]any) HourAdjustments {
	if len(raw) == 0 {
		return nil
	}

	out := make(HourAdjustments, 0, len(raw))
	for key, value := range raw {
		hours, ok := hoursValue(value)
		if !ok {
			continue
		}
		if key == SetupHoursKey {
			out = append(out, HourAdjustment{Kind: AdjustSetup, Hours: hours})
			continue
		}
		serviceID, ok := serviceKey(key)
		if !ok {
			continue
		}
		out = append(out, HourAdjustment{Kind: AdjustService, ServiceID: serviceID, Hours: hours})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Kind != out[j].Kind {
			return out[i].Kind == AdjustSetup
		}
		return out[i].ServiceID < out[j].ServiceID
	})
	return out
}

// hoursValue converts a number or numeric string. Booleans and nil are not
// hours even though cast would map them to 0 or 1.
func hoursValue(v any) (float64, bool) {
	switch v.(type) {
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64, json.Number, string:
	default:
		return 0, false
	}
	hours, err := cast.ToFloat64E(v)
	if err != nil || math.IsNaN(hours) {
		return 0, false
	}
	return hours, true
}

func serviceKey(key string) (int64, bool) {
	if id, err := strconv.ParseInt(key, 10, 64); err == nil {
		return id, true
	}
	f, err := strconv.ParseFloat(key, 64)
	if err != nil || f != math.Trunc(f) || math.Abs(f) > 1<<53 {
		return 0, false
	}
	return int64(f), true
}

// Map returns the object form used for storage and JSON.
func (h HourAdjustments) Map() map[string]float64 {
	out := make(map[string]float64, len(h))
	for _, adj := range h {
		key := SetupHoursKey
		if adj.Kind == AdjustService {
			key = strconv.FormatInt(adj.ServiceID, 10)
		}
		out[key] += adj.Hours
	}
	return out
}

func (h HourAdjustments) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.Map())
}

func (h *HourAdjustments) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode add_hours: %w", err)
	}
	*h = ParseAddHours(raw)
	return nil
}

func (h *HourAdjustments) UnmarshalYAML(node *yaml.Node) error {
	var raw map[any]any
	if err := node.Decode(&raw); err != nil {
		return fmt.Errorf("decode add_hours: %w", err)
	}
	byKey := make(map[string]any, len(raw))
	for k, v := range raw {
		key, err := cast.ToStringE(k)
		if err != nil {
			continue
		}
		byKey[key] = v
	}
	*h = ParseAddHours(byKey)
	return nil
}
