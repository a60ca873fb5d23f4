// Package output turns the day's estimate rows into files and console text.
//
// # Overview
//
// The package handles the tail of the pipeline:
//   - Table: rows in generation order plus the set of populated optional columns
//   - Write: persists the table as day_{YYYYMMDD}.csv or .parquet under out_dir
//   - Report: prints row count, file path and the busiest station-line pairs
//
// # Format fallback
//
// Parquet is the default format. If a parquet write fails the table is
// rewritten as CSV under the matching .csv name and the returned path
// reflects the file actually on disk, so a run never loses data silently.
//
// # Optional columns
//
// The three crowding percentage columns exist in the CSV header only when at
// least one row in the run carries a value for them. Parquet output always
// carries the full schema with the percentages as nullable columns.
package output
