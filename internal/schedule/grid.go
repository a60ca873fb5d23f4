// Package schedule provides the time arithmetic behind the generator: the
// operating-day grid, clock-time peak windows, and cyclical pattern
// selection.
package schedule

import (
	"fmt"
	"time"

	"ridegen/internal/config"
)

// Grid is the ordered, evenly spaced sequence of timestamps covering one
// operating day: [start, start + hours_per_day h) at minute_resolution
// steps. A timestamp's slice index is the global grid index used for
// cyclical headway selection.
type Grid struct {
	Start time.Time
	Times []time.Time
}

// BuildGrid constructs the day grid for the date of ref, with the time of
// day forced to start_hour:00:00 in ref's zone.
func BuildGrid(ref time.Time, sched config.ScheduleConfig) Grid {
	start := time.Date(ref.Year(), ref.Month(), ref.Day(), sched.StartHour, 0, 0, 0, ref.Location())
	end := start.Add(time.Duration(sched.HoursPerDay) * time.Hour)
	step := time.Duration(sched.MinuteResolution) * time.Minute

	times := make([]time.Time, 0, int(end.Sub(start)/step)+1)
	for ts := start; ts.Before(end); ts = ts.Add(step) {
		times = append(times, ts)
	}
	return Grid{Start: start, Times: times}
}

// DayStamp returns the grid's date as an 8-digit stamp for output naming.
func (g Grid) DayStamp() string {
	return g.Start.Format("20060102")
}

// Window is a peak window with inclusive bounds in minutes since midnight.
type Window struct {
	StartMin int
	EndMin   int
}

// ParseWindow converts a pair of "HH:MM" clock strings into a Window.
func ParseWindow(start, end string) (Window, error) {
	s, err := ClockMinutes(start)
	if err != nil {
		return Window{}, err
	}
	e, err := ClockMinutes(end)
	if err != nil {
		return Window{}, err
	}
	return Window{StartMin: s, EndMin: e}, nil
}

// ClockMinutes converts an "HH:MM" clock string to minutes since midnight.
func ClockMinutes(s string) (int, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("schedule: parse clock time %q: %w", s, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("schedule: clock time %q out of range", s)
	}
	return h*60 + m, nil
}

// InWindows reports whether ts's time of day falls within any window,
// inclusive at both ends. Only the time of day is compared; the date is
// ignored. An empty window list is never peak.
func InWindows(ts time.Time, windows []Window) bool {
	tod := ts.Hour()*60 + ts.Minute()
	for _, w := range windows {
		if w.StartMin <= tod && tod <= w.EndMin {
			return true
		}
	}
	return false
}

// CyclicalPick returns the element at position i modulo the sequence
// length. The caller passes the global grid index, never a per-pair
// counter, so two lines with patterns of different lengths stay in their
// own phases while remaining aligned on the shared timestamp index.
func CyclicalPick(seq []float64, i int) float64 {
	return seq[i%len(seq)]
}
