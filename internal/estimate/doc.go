// Package estimate is the core of the generator: it derives per-minute
// ridership metrics for every station-line pair over the day grid.
//
// # Overview
//
// The estimator coordinates three inputs:
//   - station records (code, name, capacity ceilings, served lines) via seed.Station
//   - line definitions (train capacity, peak windows, headway patterns) via seed.Line
//   - the operating-day timestamp grid via schedule.Grid
//
// For each station-line pair and each grid timestamp it classifies the
// timestamp as peak or off-peak, picks a headway from the matching
// cyclical pattern using the global grid index, and derives service
// frequency, passenger flow, and instantaneous-presence metrics. When the
// station carries the corresponding capacity ceiling, the flow and
// presence figures are also expressed as crowding percentages.
//
// # Skip conditions
//
// A station with no served lines contributes nothing. A pair whose line
// is missing from the lines seed, or whose line lacks either headway
// pattern, is skipped with a warning; skips are collected by
// WarningAggregator and summarized after the pass. Skips are never fatal
// on their own. The run fails only when every pair was skipped and no
// rows exist at all (ErrNoData).
//
// # Determinism
//
// Given identical seeds, assumptions, and grid, the output is identical:
// rows are ordered by station seed order, then the station's listed line
// order, then ascending grid index.
package estimate
