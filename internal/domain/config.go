package domain

import "context"

// Settings is the persisted spotweb configuration file.
type Settings struct {
	BaseURL            string `yaml:"base_url,omitempty"`
	Token              string `yaml:"token,omitempty"`
	ClientID           string `yaml:"client_id,omitempty"`
	ClientSecret       string `yaml:"client_secret,omitempty"`
	TokenURL           string `yaml:"token_url,omitempty"`
	Timeout            string `yaml:"timeout,omitempty"`
	LogLevel           string `yaml:"log_level,omitempty"`
	LogFormat          string `yaml:"log_format,omitempty"`
	InsecureSkipVerify bool   `yaml:"insecure_skip_verify,omitempty"`
}

// ConfigRepository manages the spotweb settings file.
type ConfigRepository interface {
	GetSettings(ctx context.Context) (Settings, error)
	Set(ctx context.Context, key, value string) error
	SaveConfig(ctx context.Context) error
	LoadConfig(ctx context.Context) error
	Path() string
}
