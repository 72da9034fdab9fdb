package observability

import (
	"fmt"
	"time"
)

// Metrics holds calculated metrics derived from the event log.
type Metrics struct {
	CyclesCompleted  int            `json:"cycles_completed"`
	FetchFailures    int            `json:"fetch_failures"`
	PlaybackRestarts int            `json:"playback_restarts"`
	TonesFired       int            `json:"tones_fired"`
	TonesByKind      map[string]int `json:"tones_by_kind"`
	EventCount       int            `json:"event_count"`
	OldestEvent      *time.Time     `json:"oldest_event,omitempty"`
	NewestEvent      *time.Time     `json:"newest_event,omitempty"`
}

// MetricsCalculator derives metrics from the event log.
type MetricsCalculator interface {
	Calculate(since time.Time) (*Metrics, error)
}

// metricsCalculator implements MetricsCalculator by reading from an EventLog.
type metricsCalculator struct {
	eventLog EventLog
}

// NewMetricsCalculator creates a new MetricsCalculator that reads from the given EventLog.
func NewMetricsCalculator(eventLog EventLog) MetricsCalculator {
	return &metricsCalculator{eventLog: eventLog}
}

// Calculate reads all events since the given time and aggregates them into metrics.
func (mc *metricsCalculator) Calculate(since time.Time) (*Metrics, error) {
	events, err := mc.eventLog.Read(EventFilter{Since: &since})
	if err != nil {
		return nil, fmt.Errorf("reading events for metrics: %w", err)
	}

	m := &Metrics{
		TonesByKind: make(map[string]int),
	}

	m.EventCount = len(events)

	for i, event := range events {
		if i == 0 {
			t := event.Time
			m.OldestEvent = &t
		}
		t := event.Time
		m.NewestEvent = &t

		switch event.Type {
		case "cycle.completed":
			m.CyclesCompleted++
		case "fetch.failed":
			m.FetchFailures++
		case "playback.restarted":
			m.PlaybackRestarts++
		case "tone.fired":
			m.TonesFired++
			m.TonesByKind[ToneKind(dataInt(event.Data, "frequency_hz"))]++
		}
	}

	return m, nil
}

// ToneKind names a tone by its frequency for reporting.
func ToneKind(frequencyHz int) string {
	switch frequencyHz {
	case 512:
		return "long-request"
	case 1024:
		return "warn"
	case 2048:
		return "unknown-fetch"
	case 4096:
		return "error"
	default:
		return "other"
	}
}

// dataInt extracts an integer from event data, tolerating the float64
// values JSON decoding produces.
func dataInt(data map[string]any, key string) int {
	switch v := data[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	default:
		return 0
	}
}
