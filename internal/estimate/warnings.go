package estimate

import (
	"fmt"

	"go.uber.org/zap"
)

// Warning type constants
const (
	WarningUnknownLine        = "unknown_line"
	WarningIncompleteHeadways = "incomplete_headways"
)

// warningInfo holds aggregated information about a specific warning type
type warningInfo struct {
	count    int
	examples []string
}

// WarningAggregator collects skip warnings during generation and outputs
// consolidated summaries after the pass
type WarningAggregator struct {
	warnings map[string]*warningInfo
}

// NewWarningAggregator creates a new warning aggregator
func NewWarningAggregator() *WarningAggregator {
	return &WarningAggregator{
		warnings: make(map[string]*warningInfo),
	}
}

// Add records a warning occurrence with an example station/line pair
func (w *WarningAggregator) Add(warningType, examplePair string) {
	if w.warnings[warningType] == nil {
		w.warnings[warningType] = &warningInfo{
			examples: make([]string, 0, 3),
		}
	}

	info := w.warnings[warningType]
	info.count++

	// Store up to 3 examples
	if len(info.examples) < 3 {
		info.examples = append(info.examples, examplePair)
	}
}

// Count returns how many occurrences of a warning type were recorded.
func (w *WarningAggregator) Count(warningType string) int {
	if info := w.warnings[warningType]; info != nil {
		return info.count
	}
	return 0
}

// LogAll outputs all collected warnings in consolidated format
func (w *WarningAggregator) LogAll(logger *zap.Logger) {
	if len(w.warnings) == 0 {
		return
	}

	for warningType, info := range w.warnings {
		logger.Warn(w.formatWarningMessage(warningType, info),
			zap.Strings("examples", info.examples))
	}
}

// formatWarningMessage creates a human-readable warning message
func (w *WarningAggregator) formatWarningMessage(warningType string, info *warningInfo) string {
	var description, action string

	switch warningType {
	case WarningUnknownLine:
		description = "station-line references to lines absent from the lines seed"
		action = "Generated no rows for those pairs"
	case WarningIncompleteHeadways:
		description = "lines missing a peak or off-peak headway pattern"
		action = "Generated no rows for those pairs"
	default:
		description = "unknown issue"
		action = "Generated with fallback behavior"
	}

	return fmt.Sprintf("Run has %s (%d occurrences). %s", description, info.count, action)
}
