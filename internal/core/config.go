package core

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/aural/aura/pkg/models"
)

// Environment variables consulted during configuration loading.
const (
	EnvConfigPath  = "AURA_CONFIG"
	EnvAPIToken    = "GRAYLOG_API_TOKEN"
	EnvRequestedBy = "GRAYLOG_REQ_BY"
)

// ConfigurationManager loads and validates the aura configuration.
// Configuration is read once at startup and immutable thereafter; there is
// no implicit global lookup.
type ConfigurationManager interface {
	Load() (*models.Config, error)
}

// viperConfigManager implements ConfigurationManager using Viper, reading
// a config file (JSON or YAML) from AURA_CONFIG or the base path.
type viperConfigManager struct {
	basePath string
}

// NewConfigurationManager creates a ConfigurationManager that resolves the
// config file relative to basePath when AURA_CONFIG is not set.
func NewConfigurationManager(basePath string) ConfigurationManager {
	return &viperConfigManager{basePath: basePath}
}

// Load reads the config file, applies environment fallbacks for the
// Graylog credentials, and validates the result. A missing or malformed
// configuration is an error: the process must not start without one.
func (cm *viperConfigManager) Load() (*models.Config, error) {
	// A .env next to the binary may carry the credential fallbacks.
	_ = godotenv.Load()

	v := viper.New()
	if path := os.Getenv(EnvConfigPath); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(cm.basePath)
	}
	v.SetDefault("volume.min", DefaultLimits.Min)
	v.SetDefault("volume.max", DefaultLimits.Max)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg models.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.Graylog.APIToken == "" {
		cfg.Graylog.APIToken = os.Getenv(EnvAPIToken)
	}
	if cfg.Graylog.RequestedBy == "" {
		cfg.Graylog.RequestedBy = os.Getenv(EnvRequestedBy)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validateConfig checks the configuration-time invariants.
func validateConfig(cfg *models.Config) error {
	var problems []string
	if cfg.SoundFile == "" {
		problems = append(problems, "soundFile is required")
	}
	if cfg.PollInterval <= 0 {
		problems = append(problems, "pollInterval must be positive")
	}
	if cfg.Graylog.Host == "" {
		problems = append(problems, "graylog.host is required")
	}
	if len(cfg.Graylog.Streams) == 0 {
		problems = append(problems, "graylog.streams must list at least one stream")
	}
	if cfg.Graylog.Mean <= 0 {
		problems = append(problems, "graylog.mean must be positive")
	}
	if cfg.Volume.Min > cfg.Volume.Max {
		problems = append(problems, "volume.min must not exceed volume.max")
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}
