package models

// GraylogConfig holds the connection and query settings for the Graylog
// metric source.
type GraylogConfig struct {
	Host        string   `yaml:"host" json:"host" mapstructure:"host"`
	APIToken    string   `yaml:"apiToken,omitempty" json:"apiToken,omitempty" mapstructure:"apiToken"`
	RequestedBy string   `yaml:"requestedBy,omitempty" json:"requestedBy,omitempty" mapstructure:"requestedBy"`
	Streams     []string `yaml:"streams" json:"streams" mapstructure:"streams"`
	Mean        int      `yaml:"mean" json:"mean" mapstructure:"mean"`
}

// VolumeConfig bounds the playback loudness percentage.
type VolumeConfig struct {
	Min int `yaml:"min" json:"min" mapstructure:"min"`
	Max int `yaml:"max" json:"max" mapstructure:"max"`
}

// NotificationsConfig holds optional outbound notification settings.
type NotificationsConfig struct {
	SlackWebhook string `yaml:"slackWebhook,omitempty" json:"slackWebhook,omitempty" mapstructure:"slackWebhook"`
}

// Config is the full aura configuration, loaded once at startup and
// immutable thereafter.
type Config struct {
	SoundFile     string              `yaml:"soundFile" json:"soundFile" mapstructure:"soundFile"`
	PollInterval  int                 `yaml:"pollInterval" json:"pollInterval" mapstructure:"pollInterval"`
	Graylog       GraylogConfig       `yaml:"graylog" json:"graylog" mapstructure:"graylog"`
	Volume        VolumeConfig        `yaml:"volume" json:"volume" mapstructure:"volume"`
	Notifications NotificationsConfig `yaml:"notifications,omitempty" json:"notifications,omitempty" mapstructure:"notifications"`
}
