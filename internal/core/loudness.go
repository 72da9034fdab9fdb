package core

import "github.com/aural/aura/pkg/models"

// Limits bounds the playback loudness percentage.
type Limits struct {
	Min int
	Max int
}

// DefaultLimits matches the range the audio sink accepts.
var DefaultLimits = Limits{Min: 0, Max: 250}

// Clamp bounds v to the limits, inclusive.
func (l Limits) Clamp(v int) int {
	if v < l.Min {
		return l.Min
	}
	if v > l.Max {
		return l.Max
	}
	return v
}

// MapLoudness maps a metric summary to a target loudness percentage:
// the total scaled against the configured reference mean, anchored so a
// mean-sized window lands at 50%, then clamped. mean must be positive
// (validated at configuration time). The fetch-failure sentinel yields a
// negative raw value and therefore clamps to the minimum, silencing the
// ambient signal.
func MapLoudness(summary models.MetricSummary, mean int, limits Limits) int {
	raw := int(float64(summary.Total) / float64(mean) * 50)
	return limits.Clamp(raw)
}
