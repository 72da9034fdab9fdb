package cli

import (
	"fmt"

	"github.com/aural/aura/internal/core"
	"github.com/aural/aura/internal/observability"
	"github.com/aural/aura/pkg/models"
)

// Service instances, set during app initialization in app.go.
var (
	// Config is nil when loading failed; ConfigErr then holds the reason.
	Config    *models.Config
	ConfigErr error

	Source      core.MetricSource
	Events      core.EventLogger
	EventLog    observability.EventLog
	MetricsCalc observability.MetricsCalculator
	Notifier    observability.Notifier
)

// requireConfig returns the configuration or the startup load error for
// commands that cannot run without one.
func requireConfig() (*models.Config, error) {
	if Config != nil {
		return Config, nil
	}
	if ConfigErr != nil {
		return nil, ConfigErr
	}
	return nil, fmt.Errorf("configuration not initialized")
}
