// Package config loads spotweb's runtime settings and manages its settings file.
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"

	"spotweb/internal/auth"
	"spotweb/internal/errors"
	"spotweb/internal/logging"
	"spotweb/internal/spotify"
)

// EnvPrefix is prepended to every environment variable spotweb reads.
const EnvPrefix = "SPOTWEB"

// Setting keys, shared by viper, the settings file and `config set`.
const (
	KeyBaseURL            = "base_url"
	KeyToken              = "token"
	KeyClientID           = "client_id"
	KeyClientSecret       = "client_secret"
	KeyTokenURL           = "token_url"
	KeyTimeout            = "timeout"
	KeyLogLevel           = "log_level"
	KeyLogFormat          = "log_format"
	KeyInsecureSkipVerify = "insecure_skip_verify"
)

const defaultTimeout = 30 * time.Second

// Config holds the effective runtime configuration.
type Config struct {
	BaseURL            string        `mapstructure:"base_url"`
	Token              string        `mapstructure:"token"`
	ClientID           string        `mapstructure:"client_id"`
	ClientSecret       string        `mapstructure:"client_secret"`
	TokenURL           string        `mapstructure:"token_url"`
	Timeout            time.Duration `mapstructure:"timeout"`
	LogLevel           string        `mapstructure:"log_level"`
	LogFormat          string        `mapstructure:"log_format"`
	InsecureSkipVerify bool          `mapstructure:"insecure_skip_verify"`
}

// SetDefaults registers every key with its default so that environment
// variables are picked up by Unmarshal.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyBaseURL, spotify.BaseAPIURL)
	v.SetDefault(KeyToken, "")
	v.SetDefault(KeyClientID, "")
	v.SetDefault(KeyClientSecret, "")
	v.SetDefault(KeyTokenURL, auth.DefaultTokenURL)
	v.SetDefault(KeyTimeout, defaultTimeout)
	v.SetDefault(KeyLogLevel, string(logging.LevelInfo))
	v.SetDefault(KeyLogFormat, logging.FormatText)
	v.SetDefault(KeyInsecureSkipVerify, false)
}

// BindEnv makes viper read SPOTWEB_* variables.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
}

// Load decodes and validates the configuration held by v.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.NewConfigurationError("", "", "failed to decode configuration", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks every field and reports all problems at once.
func (c *Config) Validate() error {
	var errs []error

	if err := validateURL(KeyBaseURL, c.BaseURL); err != nil {
		errs = append(errs, err)
	}
	if err := validateURL(KeyTokenURL, c.TokenURL); err != nil {
		errs = append(errs, err)
	}
	if c.Timeout <= 0 {
		errs = append(errs, errors.NewValidationError(KeyTimeout, c.Timeout.String(), "positive", "timeout must be positive"))
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, errors.NewValidationError(KeyLogLevel, c.LogLevel, "supported_values", "log level must be one of: debug, info, warn, error"))
	}
	if !logging.ValidFormat(c.LogFormat) {
		errs = append(errs, errors.NewValidationError(KeyLogFormat, c.LogFormat, "supported_values", "log format must be one of: text, json"))
	}
	if (c.ClientID == "") != (c.ClientSecret == "") {
		errs = append(errs, errors.NewValidationError(KeyClientID, c.ClientID, "pair", "client_id and client_secret must be set together"))
	}

	return errors.Join(errs...)
}

// HasClientCredentials reports whether an app token can be requested.
func (c *Config) HasClientCredentials() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}

// Level returns the configured log level, falling back to info.
func (c *Config) Level() logging.LogLevel {
	level, err := logging.ParseLevel(c.LogLevel)
	if err != nil {
		return logging.LevelInfo
	}
	return level
}

func validateURL(field, value string) error {
	parsed, err := url.Parse(value)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return errors.NewValidationError(field, value, "url", fmt.Sprintf("%s must be an absolute http(s) URL", field))
	}
	return nil
}
