package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"spotweb/internal/domain"
	apierrors "spotweb/internal/errors"
	"spotweb/internal/logging"
)

const (
	dirPermissions  = 0o700 // Owner-only access, the file may hold a token
	filePermissions = 0o600 // Read/write owner only
)

// Repository handles settings file persistence.
type Repository struct {
	fs         domain.FileSystemAdapter
	configPath string
	settings   domain.Settings
	logger     *slog.Logger
}

var _ domain.ConfigRepository = (*Repository)(nil)

// NewRepository creates a new settings repository and loads the file if it exists.
func NewRepository(
	fs domain.FileSystemAdapter,
	configPath string,
	logger *slog.Logger,
) (*Repository, error) {
	repo := &Repository{
		fs:         fs,
		configPath: configPath,
		logger:     logger,
	}

	if err := repo.LoadConfig(context.Background()); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	return repo, nil
}

// Path returns the settings file location.
func (r *Repository) Path() string {
	return r.configPath
}

// GetSettings returns the settings currently held in memory.
func (r *Repository) GetSettings(ctx context.Context) (domain.Settings, error) {
	r.logger.DebugContext(ctx, "Getting settings", "path", r.configPath)
	return r.settings, nil
}

// SettableKeys lists the keys accepted by Set.
func SettableKeys() []string {
	return []string{
		KeyBaseURL,
		KeyToken,
		KeyClientID,
		KeyClientSecret,
		KeyTokenURL,
		KeyTimeout,
		KeyLogLevel,
		KeyLogFormat,
		KeyInsecureSkipVerify,
	}
}

// Set validates value, stores it under key and saves the file.
// An empty value clears the key.
func (r *Repository) Set(ctx context.Context, key, value string) error {
	if !slices.Contains(SettableKeys(), key) {
		return apierrors.NewValidationError("key", key, "supported_values", fmt.Sprintf("unknown setting %q", key))
	}

	previous := r.settings
	if err := applySetting(&r.settings, key, value); err != nil {
		return err
	}

	if err := r.SaveConfig(ctx); err != nil {
		r.settings = previous // Rollback
		return fmt.Errorf("failed to save configuration after setting %s: %w", key, err)
	}

	r.logger.InfoContext(ctx, "Updated setting", "key", key, "path", r.configPath)
	return nil
}

func applySetting(settings *domain.Settings, key, value string) error {
	switch key {
	case KeyBaseURL, KeyTokenURL:
		if value != "" {
			if err := validateURL(key, value); err != nil {
				return err
			}
		}
		if key == KeyBaseURL {
			settings.BaseURL = value
		} else {
			settings.TokenURL = value
		}
	case KeyToken:
		settings.Token = value
	case KeyClientID:
		settings.ClientID = value
	case KeyClientSecret:
		settings.ClientSecret = value
	case KeyTimeout:
		if value != "" {
			timeout, err := time.ParseDuration(value)
			if err != nil || timeout <= 0 {
				return apierrors.NewValidationError(key, value, "duration", "timeout must be a positive duration such as 30s")
			}
		}
		settings.Timeout = value
	case KeyLogLevel:
		if value != "" {
			if _, err := logging.ParseLevel(value); err != nil {
				return apierrors.NewValidationError(key, value, "supported_values", "log level must be one of: debug, info, warn, error")
			}
		}
		settings.LogLevel = value
	case KeyLogFormat:
		if value != "" && !logging.ValidFormat(value) {
			return apierrors.NewValidationError(key, value, "supported_values", "log format must be one of: text, json")
		}
		settings.LogFormat = value
	case KeyInsecureSkipVerify:
		enabled := false
		if value != "" {
			parsed, err := strconv.ParseBool(value)
			if err != nil {
				return apierrors.NewValidationError(key, value, "bool", "insecure_skip_verify must be true or false")
			}
			enabled = parsed
		}
		settings.InsecureSkipVerify = enabled
	}
	return nil
}

// SaveConfig saves the current settings to disk.
func (r *Repository) SaveConfig(ctx context.Context) error {
	if err := r.fs.MkdirAll(filepath.Dir(r.configPath), dirPermissions); err != nil {
		return apierrors.NewConfigurationError("config_directory", filepath.Dir(r.configPath), "failed to create config directory", err)
	}

	data, err := yaml.Marshal(&r.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal configuration: %w", err)
	}

	if writeErr := r.fs.WriteFile(r.configPath, data, filePermissions); writeErr != nil {
		return apierrors.NewConfigurationError("config_path", r.configPath, "failed to write config file", writeErr)
	}

	r.logger.DebugContext(ctx, "Configuration saved", "path", r.configPath)
	return nil
}

// LoadConfig loads the settings from disk. A missing file yields os.ErrNotExist
// and leaves empty settings in place.
func (r *Repository) LoadConfig(ctx context.Context) error {
	data, err := r.fs.ReadFile(r.configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			r.logger.DebugContext(ctx, "Configuration file does not exist", "path", r.configPath)
			return os.ErrNotExist
		}
		return apierrors.NewConfigurationError("config_path", r.configPath, "failed to read config file", err)
	}

	var settings domain.Settings
	if unmarshalErr := yaml.Unmarshal(data, &settings); unmarshalErr != nil {
		return apierrors.NewConfigurationError("config_format", "yaml", "failed to unmarshal config", unmarshalErr)
	}

	r.settings = settings
	r.logger.DebugContext(ctx, "Configuration loaded", "path", r.configPath)
	return nil
}
