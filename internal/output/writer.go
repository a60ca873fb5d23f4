package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/parquet-go/parquet-go"
	"go.uber.org/zap"

	"ridegen/internal/config"
)

// Write persists the table under dir as day_{stamp}.{ext} and returns the
// path actually written. A failed parquet write falls back to CSV under the
// matching .csv name.
func Write(t *Table, dir, stamp, format string, logger *zap.Logger) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create out_dir %s: %w", dir, err)
	}

	if format == config.FormatParquet {
		path := filepath.Join(dir, "day_"+stamp+".parquet")
		err := writeParquet(t, path)
		if err == nil {
			return path, nil
		}
		logger.Warn("parquet write failed, writing csv instead", zap.Error(err))
		_ = os.Remove(path)
	}

	path := filepath.Join(dir, "day_"+stamp+".csv")
	if err := writeCSV(t, path); err != nil {
		return "", err
	}
	return path, nil
}

func writeCSV(t *Table, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(t.Columns()); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for i := range t.Rows {
		if err := w.Write(t.record(&t.Rows[i])); err != nil {
			return fmt.Errorf("write csv row %d: %w", i, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return nil
}

// parquetRow mirrors the table's column set. Pointer fields become nullable
// parquet columns, null where the station had no matching capacity.
type parquetRow struct {
	Timestamp           time.Time `parquet:"timestamp"`
	StationCode         string    `parquet:"station_code"`
	StationName         string    `parquet:"station_name"`
	LineName            string    `parquet:"line_name"`
	IsPeak              bool      `parquet:"is_peak"`
	HeadwayMin          float64   `parquet:"headway_min"`
	TrainsPerHour       float64   `parquet:"trains_per_hour"`
	TrainCapacity       float64   `parquet:"train_capacity"`
	PassengersPerMin    float64   `parquet:"passengers_per_min"`
	EstimatedPresent    int64     `parquet:"estimated_present"`
	CrowdingStationPct  *float64  `parquet:"crowding_station_pct,optional"`
	CrowdingPlatformPct *float64  `parquet:"crowding_platform_pct,optional"`
	FlowVsPeakPct       *float64  `parquet:"flow_vs_peak_pct,optional"`
}

func writeParquet(t *Table, path string) error {
	rows := make([]parquetRow, len(t.Rows))
	for i := range t.Rows {
		r := &t.Rows[i]
		rows[i] = parquetRow{
			Timestamp:           r.Timestamp,
			StationCode:         r.StationCode,
			StationName:         r.StationName,
			LineName:            r.LineName,
			IsPeak:              r.IsPeak,
			HeadwayMin:          r.HeadwayMin,
			TrainsPerHour:       r.TrainsPerHour,
			TrainCapacity:       r.TrainCapacity,
			PassengersPerMin:    r.PassengersPerMin,
			EstimatedPresent:    r.EstimatedPresent,
			CrowdingStationPct:  r.CrowdingStationPct,
			CrowdingPlatformPct: r.CrowdingPlatformPct,
			FlowVsPeakPct:       r.FlowVsPeakPct,
		}
	}
	if err := parquet.WriteFile(path, rows); err != nil {
		return fmt.Errorf("write parquet %s: %w", path, err)
	}
	return nil
}
