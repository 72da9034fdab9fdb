package models

// UnknownTotal is the sentinel total meaning the metric fetch failed this
// cycle; warn and error counts are meaningless when it is set.
const UnknownTotal = -1

// MetricSummary is the aggregated result of one poll cycle. It is created
// fresh each cycle and discarded after use.
type MetricSummary struct {
	Total      int `json:"total"`
	WarnCount  int `json:"warn_count"`
	ErrorCount int `json:"error_count"`
}

// Unknown reports whether the summary is the fetch-failure sentinel.
func (s MetricSummary) Unknown() bool {
	return s.Total == UnknownTotal
}

// UnknownSummary returns the sentinel summary substituted when the fetch
// fails or the backend rejects the query.
func UnknownSummary() MetricSummary {
	return MetricSummary{Total: UnknownTotal}
}

// ToneSpec describes a single alert beep.
type ToneSpec struct {
	FrequencyHz int `json:"frequency_hz"`
	DurationMs  int `json:"duration_ms"`
}
