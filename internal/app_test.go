package internal

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aural/aura/internal/cli"
	"github.com/aural/aura/internal/observability"
)

func writeTestConfig(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
}

const validConfigJSON = `{
	"soundFile": "ambient.mp3",
	"pollInterval": 60,
	"graylog": {
		"host": "graylog.local",
		"apiToken": "tok",
		"requestedBy": "aura",
		"streams": ["000000000000000000000001"],
		"mean": 100
	}
}`

func resetCLIState() {
	cli.Config = nil
	cli.ConfigErr = nil
	cli.Source = nil
	cli.Events = nil
	cli.EventLog = nil
	cli.MetricsCalc = nil
	cli.Notifier = nil
}

func TestResolveBasePath(t *testing.T) {
	t.Setenv("AURA_PATH", "/srv/aura")
	if got := ResolveBasePath(); got != "/srv/aura" {
		t.Errorf("expected AURA_PATH to win, got %q", got)
	}

	t.Setenv("AURA_PATH", "")
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getting working directory: %v", err)
	}
	if got := ResolveBasePath(); got != wd {
		t.Errorf("expected the working directory, got %q", got)
	}
}

func TestNewApp_WiresEverything(t *testing.T) {
	resetCLIState()
	t.Setenv("AURA_CONFIG", "")
	dir := t.TempDir()
	writeTestConfig(t, dir, validConfigJSON)

	app, err := NewApp(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if app.Config == nil {
		t.Fatal("expected the configuration loaded")
	}
	if app.Source == nil {
		t.Error("expected a metric source")
	}
	if app.EventLog == nil || app.MetricsCalc == nil {
		t.Error("expected the observability layer wired")
	}
	if app.Notifier != nil {
		t.Error("expected no notifier without a webhook")
	}

	if cli.Config != app.Config || cli.Source == nil || cli.Events == nil {
		t.Error("expected the CLI layer wired to the app services")
	}
	if cli.ConfigErr != nil {
		t.Errorf("expected no recorded config error, got %v", cli.ConfigErr)
	}
}

func TestNewApp_RecordsConfigFailure(t *testing.T) {
	resetCLIState()
	t.Setenv("AURA_CONFIG", "")

	app, err := NewApp(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cli.ConfigErr == nil {
		t.Error("expected the config failure recorded for the CLI layer")
	}
	if app.Config != nil || app.Source != nil {
		t.Error("expected no config-dependent services")
	}

	// Observability still works so alerts and metrics stay usable.
	if app.EventLog == nil || app.MetricsCalc == nil {
		t.Error("expected the event log despite the config failure")
	}
}

func TestNewApp_SlackNotifierWhenConfigured(t *testing.T) {
	resetCLIState()
	t.Setenv("AURA_CONFIG", "")
	dir := t.TempDir()
	writeTestConfig(t, dir, `{
		"soundFile": "ambient.mp3",
		"pollInterval": 60,
		"graylog": {
			"host": "graylog.local",
			"apiToken": "tok",
			"requestedBy": "aura",
			"streams": ["000000000000000000000001"],
			"mean": 100
		},
		"notifications": {"slackWebhook": "https://hooks.slack.example/T000/B000"}
	}`)

	app, err := NewApp(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if app.Notifier == nil {
		t.Error("expected a notifier for the configured webhook")
	}
}

func TestEventLogAdapter_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.jsonl")
	log, err := observability.NewJSONLEventLog(path)
	if err != nil {
		t.Fatalf("creating event log: %v", err)
	}
	defer func() { _ = log.Close() }()

	adapter := &eventLogAdapter{log: log}
	if err := adapter.LogEvent("tone.fired", map[string]any{"frequency_hz": 4096}); err != nil {
		t.Fatalf("logging event: %v", err)
	}

	events, err := log.Read(observability.EventFilter{Type: "tone.fired"})
	if err != nil {
		t.Fatalf("reading events: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected one event, got %d", len(events))
	}
	got := events[0]
	if got.Level != "WARN" {
		t.Errorf("expected tone.fired recorded at WARN, got %q", got.Level)
	}
	if got.Message != "alert tone fired" {
		t.Errorf("expected the stable message, got %q", got.Message)
	}
	if time.Since(got.Time) > time.Minute {
		t.Errorf("expected a fresh timestamp, got %v", got.Time)
	}
}

func TestEventLevel(t *testing.T) {
	tests := []struct {
		eventType string
		want      string
	}{
		{"fetch.failed", "ERROR"},
		{"notify.failed", "ERROR"},
		{"tone.fired", "WARN"},
		{"cycle.completed", "INFO"},
		{"playback.restarted", "INFO"},
		{"anything.else", "INFO"},
	}
	for _, tt := range tests {
		if got := eventLevel(tt.eventType); got != tt.want {
			t.Errorf("eventLevel(%q) = %q, want %q", tt.eventType, got, tt.want)
		}
	}
}
