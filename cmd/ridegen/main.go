package main

import (
	"flag"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"ridegen/internal/config"
	"ridegen/internal/estimate"
	"ridegen/internal/logging"
	"ridegen/internal/output"
	"ridegen/internal/schedule"
	"ridegen/internal/seed"
)

func main() {
	configPath := flag.String("config", "./config/00_config.yml", "path to the run configuration")
	date := flag.String("date", "", "generation date as YYYY-MM-DD (default: today)")
	format := flag.String("format", "", "output format override: csv|parquet")
	outDir := flag.String("out", "", "output directory override")
	flag.Parse()

	logger, err := logging.New()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}
	if *format != "" {
		f := strings.ToLower(strings.TrimSpace(*format))
		if f != config.FormatCSV && f != config.FormatParquet {
			logger.Fatal("invalid -format, want csv or parquet", zap.String("format", *format))
		}
		cfg.Output.Format = f
	}
	if *outDir != "" {
		cfg.Output.OutDir = *outDir
	}

	// The grid is anchored on today's date unless -date pins the run.
	ref := time.Now().In(cfg.Location())
	if *date != "" {
		day, err := time.ParseInLocation("2006-01-02", *date, cfg.Location())
		if err != nil {
			logger.Fatal("invalid -date, want YYYY-MM-DD", zap.Error(err))
		}
		ref = day
	}

	stations, err := seed.LoadStations(cfg.Seeds.StationsFile, cfg.Fields)
	if err != nil {
		logger.Fatal("failed to load stations seed", zap.Error(err))
	}
	lines, err := seed.LoadLines(cfg.Seeds.LinesFile)
	if err != nil {
		logger.Fatal("failed to load lines seed", zap.Error(err))
	}

	grid := schedule.BuildGrid(ref, cfg.Schedule)
	logger.Info("generating day",
		zap.String("day", grid.DayStamp()),
		zap.Int("timestamps", len(grid.Times)),
		zap.Int("stations", len(stations)),
		zap.Int("lines", len(lines)))

	asm := estimate.Assumptions{
		DwellMinutes:  cfg.DwellMinutes(),
		PlatformShare: cfg.PlatformShare(),
	}
	rows, err := estimate.New(stations, lines, grid, asm, logger).Generate()
	if err != nil {
		logger.Fatal("generation failed", zap.Error(err))
	}

	table := output.NewTable(rows)
	path, err := output.Write(table, cfg.Output.OutDir, grid.DayStamp(), cfg.Output.Format, logger)
	if err != nil {
		logger.Fatal("failed to write output", zap.Error(err))
	}

	output.Report(os.Stdout, table, path)
}
