package core

import "github.com/aural/aura/pkg/models"

// Alert tone frequencies.
const (
	FreqLong    = 512  // hz; the backend took a long time to respond
	FreqUnknown = 2048 // hz; the backend rejected the query
	FreqWarn    = 1024 // hz
	FreqError   = 4096 // hz
)

// LongRequestSeconds is how long a fetch may take before the long-request
// tone fires.
const LongRequestSeconds = 30

// MinAudibleCount is the count floor for warn and error tones. Tones are
// not distinguishable below this many milliseconds, so smaller counts stay
// silent.
const MinAudibleCount = 25

// Decide maps a cycle's fetch duration and metric summary to the ordered
// list of alert tones to emit. Rules fire independently except that the
// unknown-fetch tone suppresses the count-based tones, since counts carry
// no meaning when the fetch failed. Error tones sort before warn tones.
func Decide(elapsedSeconds float64, summary models.MetricSummary) []models.ToneSpec {
	var tones []models.ToneSpec

	if elapsedSeconds > LongRequestSeconds {
		tones = append(tones, models.ToneSpec{FrequencyHz: FreqLong, DurationMs: 1000})
	}

	if summary.Unknown() {
		return append(tones, models.ToneSpec{FrequencyHz: FreqUnknown, DurationMs: 1000})
	}

	if summary.ErrorCount >= MinAudibleCount {
		tones = append(tones, models.ToneSpec{FrequencyHz: FreqError, DurationMs: summary.ErrorCount})
	}
	if summary.WarnCount >= MinAudibleCount {
		tones = append(tones, models.ToneSpec{FrequencyHz: FreqWarn, DurationMs: summary.WarnCount})
	}
	return tones
}
