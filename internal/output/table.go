package output

import (
	"strconv"

	"ridegen/internal/estimate"
)

const timestampLayout = "2006-01-02 15:04:05"

// Columns present in every produced table, in output order. The three
// percentage columns are appended only when populated somewhere in the run.
var baseColumns = []string{
	"timestamp",
	"station_code",
	"station_name",
	"line_name",
	"is_peak",
	"headway_min",
	"trains_per_hour",
	"train_capacity",
	"passengers_per_min",
	"estimated_present",
}

// Table holds the full day's rows in generation order.
type Table struct {
	Rows []estimate.Row

	hasStationPct  bool
	hasPlatformPct bool
	hasFlowPct     bool
}

func NewTable(rows []estimate.Row) *Table {
	t := &Table{Rows: rows}
	for i := range rows {
		if rows[i].CrowdingStationPct != nil {
			t.hasStationPct = true
		}
		if rows[i].CrowdingPlatformPct != nil {
			t.hasPlatformPct = true
		}
		if rows[i].FlowVsPeakPct != nil {
			t.hasFlowPct = true
		}
	}
	return t
}

// Columns returns the header for this table in canonical order.
func (t *Table) Columns() []string {
	cols := make([]string, len(baseColumns), len(baseColumns)+3)
	copy(cols, baseColumns)
	if t.hasStationPct {
		cols = append(cols, "crowding_station_pct")
	}
	if t.hasPlatformPct {
		cols = append(cols, "crowding_platform_pct")
	}
	if t.hasFlowPct {
		cols = append(cols, "flow_vs_peak_pct")
	}
	return cols
}

// record renders one row following the Columns order. A row missing a value
// for an active percentage column gets an empty cell.
func (t *Table) record(r *estimate.Row) []string {
	rec := make([]string, 0, len(baseColumns)+3)
	rec = append(rec,
		r.Timestamp.Format(timestampLayout),
		r.StationCode,
		r.StationName,
		r.LineName,
		strconv.FormatBool(r.IsPeak),
		formatFloat(r.HeadwayMin),
		formatFloat(r.TrainsPerHour),
		formatFloat(r.TrainCapacity),
		formatFloat(r.PassengersPerMin),
		strconv.FormatInt(r.EstimatedPresent, 10),
	)
	if t.hasStationPct {
		rec = append(rec, formatFloatPtr(r.CrowdingStationPct))
	}
	if t.hasPlatformPct {
		rec = append(rec, formatFloatPtr(r.CrowdingPlatformPct))
	}
	if t.hasFlowPct {
		rec = append(rec, formatFloatPtr(r.FlowVsPeakPct))
	}
	return rec
}

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

func formatFloatPtr(v *float64) string {
	if v == nil {
		return ""
	}
	return formatFloat(*v)
}
