package estimate

import (
	"errors"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"ridegen/internal/schedule"
	"ridegen/internal/seed"
)

// ErrNoData indicates that every station-line pair was skipped and the run
// produced no rows at all.
var ErrNoData = errors.New("estimate: no data generated, check the stations and lines seeds")

// Assumptions carries the estimation heuristics: the mean time a
// passenger stays within a station's catchment, and the fraction of the
// present passengers assumed to be on the platform.
type Assumptions struct {
	DwellMinutes  float64
	PlatformShare float64
}

// Row is one estimate: a single timestamp × station × line. The three
// percentage metrics are nil when the station does not carry the
// corresponding capacity ceiling.
type Row struct {
	Timestamp           time.Time
	StationCode         string
	StationName         string
	LineName            string
	IsPeak              bool
	HeadwayMin          float64
	TrainsPerHour       float64
	TrainCapacity       float64
	PassengersPerMin    float64
	EstimatedPresent    int64
	CrowdingStationPct  *float64
	CrowdingPlatformPct *float64
	FlowVsPeakPct       *float64
}

// Estimator runs the generation pass over stations × lines × timestamps.
type Estimator struct {
	stations []seed.Station
	lines    map[string]seed.Line
	grid     schedule.Grid
	asm      Assumptions
	logger   *zap.Logger
	warnings *WarningAggregator
}

// New creates an estimator over the loaded seeds and day grid.
func New(stations []seed.Station, lines map[string]seed.Line, grid schedule.Grid, asm Assumptions, logger *zap.Logger) *Estimator {
	return &Estimator{
		stations: stations,
		lines:    lines,
		grid:     grid,
		asm:      asm,
		logger:   logger,
		warnings: NewWarningAggregator(),
	}
}

// Generate computes one row per station-line pair per grid timestamp.
// Rows keep station seed order, then the station's listed line order,
// then ascending timestamp. Pairs hitting a skip condition contribute
// nothing; if that leaves zero rows the run fails with ErrNoData.
func (e *Estimator) Generate() ([]Row, error) {
	rows := make([]Row, 0, len(e.stations)*len(e.grid.Times))

	for _, st := range e.stations {
		if len(st.Lines) == 0 {
			continue
		}
		for _, name := range st.Lines {
			line, ok := e.lines[name]
			if !ok {
				e.logger.Warn("line not in lines seed, skipping station-line pair",
					zap.String("station", st.Code),
					zap.String("line", name))
				e.warnings.Add(WarningUnknownLine, pairLabel(st.Code, name))
				continue
			}
			if len(line.Headways.PeakMin) == 0 || len(line.Headways.OffpeakMin) == 0 {
				e.logger.Warn("incomplete headway pattern, skipping station-line pair",
					zap.String("station", st.Code),
					zap.String("line", name))
				e.warnings.Add(WarningIncompleteHeadways, pairLabel(st.Code, name))
				continue
			}

			capTrain, err := TrainCapacity(line)
			if err != nil {
				return nil, err
			}
			windows, err := parseWindows(line)
			if err != nil {
				return nil, err
			}
			pair, err := e.pairRows(st, line, capTrain, windows)
			if err != nil {
				return nil, err
			}
			rows = append(rows, pair...)
		}
	}

	e.warnings.LogAll(e.logger)

	if len(rows) == 0 {
		return nil, ErrNoData
	}
	return rows, nil
}

// pairRows computes the full day of rows for one station-line pair.
func (e *Estimator) pairRows(st seed.Station, line seed.Line, capTrain float64, windows []schedule.Window) ([]Row, error) {
	rows := make([]Row, 0, len(e.grid.Times))

	for i, ts := range e.grid.Times {
		peak := schedule.InWindows(ts, windows)
		pattern := line.Headways.OffpeakMin
		if peak {
			pattern = line.Headways.PeakMin
		}
		hw := schedule.CyclicalPick(pattern, i)
		if hw <= 0 {
			return nil, fmt.Errorf("estimate: line %q has non-positive headway %v", line.Name, hw)
		}

		tph := 60.0 / hw
		ppm := tph * capTrain / 60.0
		present := ppm * e.asm.DwellMinutes

		row := Row{
			Timestamp:        ts,
			StationCode:      st.Code,
			StationName:      st.Name,
			LineName:         line.Name,
			IsPeak:           peak,
			HeadwayMin:       hw,
			TrainsPerHour:    round3(tph),
			TrainCapacity:    capTrain,
			PassengersPerMin: round3(ppm),
			EstimatedPresent: int64(math.Round(present)),
		}

		// Percentages derive from the unrounded flow and presence values.
		if st.OccupancyCap != nil && *st.OccupancyCap != 0 {
			row.CrowdingStationPct = round2p(100 * present / *st.OccupancyCap)
		}
		if st.PlatformCap != nil && *st.PlatformCap != 0 {
			row.CrowdingPlatformPct = round2p(100 * (e.asm.PlatformShare * present) / *st.PlatformCap)
		}
		if st.PeakFlowCap != nil && *st.PeakFlowCap != 0 {
			row.FlowVsPeakPct = round2p(100 * (ppm * 60) / *st.PeakFlowCap)
		}

		rows = append(rows, row)
	}
	return rows, nil
}

// TrainCapacity derives the carrying capacity of one train on the line:
// the explicit total when present and non-zero, otherwise cars_per_train ×
// carriage_capacity. With neither derivable the error is fatal for the
// whole run.
func TrainCapacity(line seed.Line) (float64, error) {
	if line.TrainTotalCapacity != nil && *line.TrainTotalCapacity != 0 {
		return *line.TrainTotalCapacity, nil
	}
	if line.CarsPerTrain != nil && line.CarriageCapacity != nil {
		return *line.CarsPerTrain * *line.CarriageCapacity, nil
	}
	return 0, fmt.Errorf("estimate: line %q has neither train_total_capacity nor cars_per_train and carriage_capacity", line.Name)
}

// parseWindows resolves a line's clock-time peak windows. Windows are
// validated here, when the line is first used, so malformed bounds on a
// line no station references never surface.
func parseWindows(line seed.Line) ([]schedule.Window, error) {
	if len(line.PeakWindows) == 0 {
		return nil, nil
	}
	windows := make([]schedule.Window, 0, len(line.PeakWindows))
	for _, w := range line.PeakWindows {
		parsed, err := schedule.ParseWindow(w.Start, w.End)
		if err != nil {
			return nil, fmt.Errorf("estimate: line %q: %w", line.Name, err)
		}
		windows = append(windows, parsed)
	}
	return windows, nil
}

func pairLabel(stationCode, lineName string) string {
	if lineName == "" {
		lineName = "<unnamed>"
	}
	return stationCode + "/" + lineName
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

func round3(v float64) float64 { return math.Round(v*1000) / 1000 }

func round2p(v float64) *float64 {
	r := round2(v)
	return &r
}
