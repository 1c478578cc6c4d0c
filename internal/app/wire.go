package app

import (
	"context"
	"os"

	"spotweb/internal/adapters/filesystem"
	"spotweb/internal/adapters/terminal"
	"spotweb/internal/auth"
	"spotweb/internal/config"
	"spotweb/internal/logging"
	"spotweb/internal/spotify"
)

// NewAppWithConfig creates a new App with the given configuration, wiring all dependencies.
func NewAppWithConfig(ctx context.Context, cfg *config.Config, options *Options) (*App, error) {
	// Create logger.
	logConfig := logging.DefaultConfig()
	logConfig.Level = cfg.Level()
	logConfig.Format = cfg.LogFormat
	if options.Verbose {
		logConfig.Level = logging.LevelDebug
	}
	if options.LogOutput != nil {
		logConfig.Output = options.LogOutput
	}
	logger := logging.NewLogger(logConfig)

	// Create filesystem adapter.
	fs := filesystem.New()

	// Create config services.
	configProvider := config.NewProvider(fs)
	configPath := options.ConfigPath
	if configPath == "" {
		var err error
		configPath, err = configProvider.GetConfigPath()
		if err != nil {
			return nil, err
		}
	}
	configRepo, err := config.NewRepository(fs, configPath, logger)
	if err != nil {
		return nil, err
	}

	// Create the transport and the request builder on top of it.
	factory := NewTransportFactory(logger)
	transport := options.Transport
	if transport == nil {
		transport = factory.CreateTransport(cfg)
	}
	builder := spotify.NewBuilder(cfg.BaseURL, transport, logger)

	// Create token resolution: explicit token, client credentials, then prompt.
	tokenSource := factory.CreateTokenSource(cfg)
	tokenReader := options.TokenReader
	if tokenReader == nil {
		tokenReader = terminal.NewAdapter(os.Stdin, os.Stderr)
	}
	resolver := auth.NewResolver(cfg.Token, tokenSource, tokenReader, logger)

	// Log configuration details.
	logger.DebugContext(ctx, "Initializing spotweb with configuration",
		"logLevel", string(logConfig.Level),
		"verbose", options.Verbose,
		"configPath", configPath,
		"baseURL", cfg.BaseURL,
		"clientCredentials", tokenSource != nil)

	return &App{
		Config:      cfg,
		ConfigRepo:  configRepo,
		Builder:     builder,
		TokenSource: tokenSource,
		Tokens:      resolver,
		FileSystem:  fs,
		Logger:      logger,
		Options:     options,
	}, nil
}
