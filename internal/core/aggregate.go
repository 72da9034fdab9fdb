// Package core contains the business logic for aura: configuration loading,
// severity aggregation, loudness mapping and ramping, alert tone decisions,
// the playback watchdog, and the poll-loop controller.
package core

import "github.com/aural/aura/pkg/models"

// ErrorSeverity is the syslog-style level that counts as an error.
// Everything below it is folded into the warn count, informational
// records included.
const ErrorSeverity = 4

// Aggregate reduces raw severity levels into a summary. It never fails:
// empty input yields the zero summary. Levels above ErrorSeverity count
// toward the total only.
func Aggregate(levels []int) models.MetricSummary {
	summary := models.MetricSummary{Total: len(levels)}
	for _, level := range levels {
		switch {
		case level == ErrorSeverity:
			summary.ErrorCount++
		case level < ErrorSeverity:
			summary.WarnCount++
		}
	}
	return summary
}
