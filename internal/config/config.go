// Package config handles generator configuration loading and validation.
//
// Configuration is loaded from a single YAML document and validated using
// struct tags. Defaults are applied after decoding so that absent keys and
// explicit zero values stay distinguishable.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Output formats supported by the writer.
const (
	FormatCSV     = "csv"
	FormatParquet = "parquet"
)

// DefaultTZ is the zone used when the document carries no tz key.
const DefaultTZ = "Asia/Riyadh"

const (
	defaultDwellMin      = 12.0
	defaultPlatformShare = 0.4
)

// ScheduleConfig describes the generated operating day.
type ScheduleConfig struct {
	StartHour        int `yaml:"start_hour" validate:"gte=0,lte=23"`
	HoursPerDay      int `yaml:"hours_per_day" validate:"gt=0"`
	MinuteResolution int `yaml:"minute_resolution" validate:"gt=0"`
}

// FieldMap maps logical station attributes to the keys used in the
// stations seed file. The station reader resolves attributes through this
// table only; seed documents are free to name their columns anything.
type FieldMap struct {
	StationCode  string `yaml:"station_code" validate:"required"`
	StationName  string `yaml:"station_name" validate:"required"`
	OccupancyCap string `yaml:"occupancy_cap_field" validate:"required"`
	PlatformCap  string `yaml:"platform_cap_field" validate:"required"`
	PeakCap      string `yaml:"peak_cap_field" validate:"required"`
	Lines        string `yaml:"lines_field" validate:"required"`
}

// SeedsConfig locates the two seed documents.
type SeedsConfig struct {
	StationsFile string `yaml:"stations_file" validate:"required"`
	LinesFile    string `yaml:"lines_file" validate:"required"`
}

// AssumptionsConfig carries the estimation heuristics. Both values are
// optional; pointer fields keep "absent" apart from an explicit zero.
type AssumptionsConfig struct {
	AvgDwellMin   *float64 `yaml:"avg_dwell_min" validate:"omitempty,gte=0"`
	PlatformShare *float64 `yaml:"platform_share" validate:"omitempty,gte=0,lte=1"`
}

// OutputConfig controls where and how the day table is written.
type OutputConfig struct {
	OutDir string `yaml:"out_dir" validate:"required"`
	Format string `yaml:"format" validate:"omitempty,oneof=csv parquet"`
}

// Config is the root configuration structure.
type Config struct {
	TZ          string            `yaml:"tz"`
	Schedule    ScheduleConfig    `yaml:"schedule"`
	Fields      FieldMap          `yaml:"fields"`
	Seeds       SeedsConfig       `yaml:"seeds"`
	Assumptions AssumptionsConfig `yaml:"assumptions"`
	Output      OutputConfig      `yaml:"output"`

	loc *time.Location
}

// Load reads and validates the configuration document at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}
	cfg.Output.Format = strings.ToLower(strings.TrimSpace(cfg.Output.Format))

	v := validator.New()
	if err := v.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config: validate %s: %w", path, err)
	}

	if cfg.TZ == "" {
		cfg.TZ = DefaultTZ
	}
	if cfg.Output.Format == "" {
		cfg.Output.Format = FormatParquet
	}
	loc, err := time.LoadLocation(cfg.TZ)
	if err != nil {
		return nil, fmt.Errorf("config: resolve tz %q: %w", cfg.TZ, err)
	}
	cfg.loc = loc
	return &cfg, nil
}

// Location returns the zone the operating day is generated in.
func (c *Config) Location() *time.Location {
	if c.loc != nil {
		return c.loc
	}
	return time.Local
}

// DwellMinutes returns the assumed average passenger dwell time.
func (c *Config) DwellMinutes() float64 {
	if c.Assumptions.AvgDwellMin != nil {
		return *c.Assumptions.AvgDwellMin
	}
	return defaultDwellMin
}

// PlatformShare returns the assumed fraction of present passengers that
// are on the platform rather than elsewhere in the station.
func (c *Config) PlatformShare() float64 {
	if c.Assumptions.PlatformShare != nil {
		return *c.Assumptions.PlatformShare
	}
	return defaultPlatformShare
}
