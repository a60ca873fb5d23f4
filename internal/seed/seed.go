// Package seed loads the two seed documents feeding the generator: the
// station list and the line definitions. Station attributes are resolved
// through the configured field map, so seed files may name their keys
// freely; line records use fixed keys.
package seed

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"ridegen/internal/config"
)

// Station is one station record, resolved through the field map. Capacity
// fields stay nil when the seed omits them or carries a non-numeric value.
type Station struct {
	Code         string
	Name         string
	OccupancyCap *float64
	PlatformCap  *float64
	PeakFlowCap  *float64
	Lines        []string // line names in listed order; may contain "" for entries missing line_name
}

// Window is a clock-time interval during which a line runs peak headways.
// Bounds are "HH:MM" strings, inclusive at both ends.
type Window struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// HeadwayPatterns holds the two cyclical interval sequences in minutes.
type HeadwayPatterns struct {
	PeakMin    []float64 `json:"peak_min"`
	OffpeakMin []float64 `json:"offpeak_min"`
}

// Line is one line definition. Capacity fields are pointers so that an
// absent key and an explicit zero stay distinguishable: a zero explicit
// total falls through to cars_per_train × carriage_capacity.
type Line struct {
	Name               string          `json:"line_name"`
	TrainTotalCapacity *float64        `json:"train_total_capacity"`
	CarsPerTrain       *float64        `json:"cars_per_train"`
	CarriageCapacity   *float64        `json:"carriage_capacity"`
	PeakWindows        []Window        `json:"peak_windows"`
	Headways           HeadwayPatterns `json:"headway_patterns"`
}

// LoadStations reads the stations seed at path, mapping each record's
// attributes through fields. Records stay in file order.
func LoadStations(path string, fields config.FieldMap) ([]Station, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("seed: read stations %s: %w", path, err)
	}
	var raw []map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("seed: decode stations %s: %w", path, err)
	}

	stations := make([]Station, 0, len(raw))
	for _, rec := range raw {
		st := Station{
			Code:         toString(rec[fields.StationCode]),
			Name:         toString(rec[fields.StationName]),
			OccupancyCap: toFloatPtr(rec[fields.OccupancyCap]),
			PlatformCap:  toFloatPtr(rec[fields.PlatformCap]),
			PeakFlowCap:  toFloatPtr(rec[fields.PeakCap]),
			Lines:        memberLineNames(rec[fields.Lines]),
		}
		stations = append(stations, st)
	}
	return stations, nil
}

// LoadLines reads the lines seed at path into a name-keyed map. Duplicate
// names overwrite earlier records, last one wins.
func LoadLines(path string) (map[string]Line, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("seed: read lines %s: %w", path, err)
	}
	var records []Line
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("seed: decode lines %s: %w", path, err)
	}

	lines := make(map[string]Line, len(records))
	for i, rec := range records {
		if rec.Name == "" {
			return nil, fmt.Errorf("seed: lines %s: record %d has no line_name", path, i)
		}
		lines[rec.Name] = rec
	}
	return lines, nil
}

// memberLineNames extracts the line names from a station's membership
// list. Entries without a line_name key come through as "" so that the
// estimator can report them as unresolvable references.
func memberLineNames(v any) []string {
	members, ok := v.([]any)
	if !ok {
		return nil
	}
	names := make([]string, 0, len(members))
	for _, m := range members {
		entry, ok := m.(map[string]any)
		if !ok {
			names = append(names, "")
			continue
		}
		names = append(names, toString(entry["line_name"]))
	}
	return names
}

// Utility converters for flexible JSON values.
func toString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	}
	return ""
}

func toFloatPtr(v any) *float64 {
	switch t := v.(type) {
	case float64:
		return &t
	case string:
		if f, err := strconv.ParseFloat(t, 64); err == nil {
			return &f
		}
	case json.Number:
		if f, err := t.Float64(); err == nil {
			return &f
		}
	}
	return nil
}
