package core

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aural/aura/pkg/models"
)

// AlertNotifier forwards noteworthy cycle outcomes to an external channel.
// This interface is defined locally in core to avoid importing observability.
type AlertNotifier interface {
	NotifyTones(summary models.MetricSummary, tones []models.ToneSpec) error
}

// Controller drives the alert loop: one cycle per poll interval, in order
// watchdog -> timed fetch -> aggregation -> loudness ramp (background) ->
// tone emission (synchronous) -> status line. It owns the player reference
// and the single ramp slot.
type Controller struct {
	cfg      *models.Config
	limits   Limits
	source   MetricSource
	player   Player
	tones    ToneEmitter
	ramper   *Ramper
	events   EventLogger   // may be nil
	notifier AlertNotifier // may be nil
	out      io.Writer
}

// NewController creates a Controller. events and notifier may be nil.
func NewController(cfg *models.Config, source MetricSource, player Player, tones ToneEmitter, events EventLogger, notifier AlertNotifier, out io.Writer) *Controller {
	return &Controller{
		cfg:      cfg,
		limits:   Limits{Min: cfg.Volume.Min, Max: cfg.Volume.Max},
		source:   source,
		player:   player,
		tones:    tones,
		ramper:   NewRamper(),
		events:   events,
		notifier: notifier,
		out:      out,
	}
}

// Run drives the poll loop until ctx is cancelled, which is the only
// graceful way out. Transport failures from the metric source propagate
// and stop the loop; every other failure mode recovers locally. Any
// in-flight ramp is abandoned on exit, leaving loudness wherever it was.
func (c *Controller) Run(ctx context.Context) error {
	defer c.ramper.Stop()

	interval := time.Duration(c.cfg.PollInterval) * time.Second
	for {
		fmt.Fprintf(c.out, "Zzz... (%ds)\n", c.cfg.PollInterval)
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(interval):
		}
		fmt.Fprintln(c.out, strings.Repeat("-", 30))

		if err := c.RunOnce(ctx); err != nil {
			return err
		}
	}
}

// RunOnce executes a single poll cycle. The loudness target and the tone
// list are both derived from the same summary snapshot.
func (c *Controller) RunOnce(ctx context.Context) error {
	if CheckAndReplay(c.player) {
		fmt.Fprintln(c.out, "Tape rewound")
		c.logEvent("playback.restarted", nil)
	}

	start := time.Now()
	levels, ok, err := c.source.FetchLevels(ctx)
	if err != nil {
		// Connection-level faults stay loud: terminate the loop instead
		// of silently swallowing an unreachable backend.
		return fmt.Errorf("querying graylog: %w", err)
	}
	elapsed := time.Since(start).Seconds()
	fmt.Fprintf(c.out, "Querying Graylog... %.2fs\n", elapsed)

	summary := models.UnknownSummary()
	if ok {
		summary = Aggregate(levels)
	} else {
		c.logEvent("fetch.failed", map[string]any{"elapsed_seconds": elapsed})
	}

	target := MapLoudness(summary, c.cfg.Graylog.Mean, c.limits)

	// Fire-and-forget: the ramp paces itself and must not delay the next
	// poll. Starting it supersedes any ramp still in flight.
	c.ramper.Start(ctx, c.player, target)

	tones := Decide(elapsed, summary)
	for _, tone := range tones {
		_ = c.tones.Emit(tone)
		c.logEvent("tone.fired", map[string]any{
			"frequency_hz": tone.FrequencyHz,
			"duration_ms":  tone.DurationMs,
		})
	}

	if c.notifier != nil && containsAlertTone(tones) {
		if err := c.notifier.NotifyTones(summary, tones); err != nil {
			c.logEvent("notify.failed", map[string]any{"error": err.Error()})
		}
	}

	fmt.Fprintf(c.out, "%d / %d / %d (%d%%)\n", summary.Total, summary.WarnCount, summary.ErrorCount, target)
	c.logEvent("cycle.completed", map[string]any{
		"total":           summary.Total,
		"warn_count":      summary.WarnCount,
		"error_count":     summary.ErrorCount,
		"target_loudness": target,
		"elapsed_seconds": elapsed,
	})
	return nil
}

// containsAlertTone reports whether the cycle produced a tone worth
// forwarding to the external notifier: a fetch failure or an error tone.
func containsAlertTone(tones []models.ToneSpec) bool {
	for _, tone := range tones {
		if tone.FrequencyHz == FreqUnknown || tone.FrequencyHz == FreqError {
			return true
		}
	}
	return false
}

func (c *Controller) logEvent(eventType string, data map[string]any) {
	if c.events == nil {
		return
	}
	_ = c.events.LogEvent(eventType, data)
}
