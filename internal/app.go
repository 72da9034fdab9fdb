// Package internal provides the App struct that wires all components of
// aura together and initializes the CLI layer.
package internal

import (
	"os"
	"path/filepath"
	"time"

	"github.com/aural/aura/internal/cli"
	"github.com/aural/aura/internal/core"
	"github.com/aural/aura/internal/integration"
	"github.com/aural/aura/internal/observability"
	"github.com/aural/aura/pkg/models"
)

// App holds all service dependencies for aura.
type App struct {
	BasePath string

	// Configuration
	ConfigMgr core.ConfigurationManager
	Config    *models.Config

	// Integration services
	Source *integration.GraylogClient

	// Observability
	EventLog    observability.EventLog
	MetricsCalc observability.MetricsCalculator
	Notifier    observability.Notifier
}

// ResolveBasePath returns the root directory aura works from: AURA_PATH if
// set, otherwise the current directory.
func ResolveBasePath() string {
	if p := os.Getenv("AURA_PATH"); p != "" {
		return p
	}
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}

// NewApp creates and wires all components of aura. A config load failure is
// recorded rather than returned so commands that do not need configuration
// (version, metrics, alerts) still work; commands that do need it surface
// the error.
func NewApp(basePath string) (*App, error) {
	app := &App{BasePath: basePath}

	// --- Configuration ---
	app.ConfigMgr = core.NewConfigurationManager(basePath)
	cfg, err := app.ConfigMgr.Load()
	if err != nil {
		cli.ConfigErr = err
	} else {
		app.Config = cfg
		app.Source = integration.NewGraylogClient(cfg.Graylog)
	}

	// --- Observability ---
	eventLogPath := filepath.Join(basePath, ".aura_events.jsonl")
	app.EventLog, err = observability.NewJSONLEventLog(eventLogPath)
	if err != nil {
		// Non-fatal: run without observability if the log can't be created.
		app.EventLog = nil
	}
	if app.EventLog != nil {
		app.MetricsCalc = observability.NewMetricsCalculator(app.EventLog)
	}
	if app.Config != nil && app.Config.Notifications.SlackWebhook != "" {
		app.Notifier = observability.NewSlackNotifier(app.Config.Notifications.SlackWebhook)
	}

	// --- Wire CLI package-level variables ---
	cli.Config = app.Config
	if app.Source != nil {
		cli.Source = app.Source
	}
	cli.EventLog = app.EventLog
	cli.MetricsCalc = app.MetricsCalc
	cli.Notifier = app.Notifier
	if app.EventLog != nil {
		cli.Events = &eventLogAdapter{log: app.EventLog}
	}

	return app, nil
}

// eventLogAdapter bridges the observability event log to the core
// EventLogger interface.
type eventLogAdapter struct {
	log observability.EventLog
}

func (a *eventLogAdapter) LogEvent(eventType string, data map[string]any) error {
	return a.log.Write(observability.Event{
		Time:    time.Now().UTC(),
		Level:   eventLevel(eventType),
		Type:    eventType,
		Message: eventMessage(eventType),
		Data:    data,
	})
}

// eventLevel maps aura event types to log levels.
func eventLevel(eventType string) string {
	switch eventType {
	case "fetch.failed", "notify.failed":
		return "ERROR"
	case "tone.fired":
		return "WARN"
	default:
		return "INFO"
	}
}

// eventMessage gives each event type a stable human-readable message.
func eventMessage(eventType string) string {
	switch eventType {
	case "cycle.completed":
		return "poll cycle completed"
	case "fetch.failed":
		return "metric fetch failed"
	case "tone.fired":
		return "alert tone fired"
	case "playback.restarted":
		return "playback restarted"
	case "notify.failed":
		return "notification delivery failed"
	default:
		return eventType
	}
}
