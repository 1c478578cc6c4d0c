// Package cmd implements the spotweb command line interface.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"spotweb/internal/app"
	"spotweb/internal/config"
	"spotweb/internal/spotify"
)

//nolint:gochecknoglobals // Cobra CLI pattern for persistent flag variables
var (
	cfgFile string
	verbose bool

	application *app.App

	// appOptions are appended when the application is built; tests use it to inject fakes.
	appOptions []app.Option
)

// VersionInfo holds build information.
type VersionInfo struct {
	Version string
	Commit  string
	Date    string
	BuiltBy string
}

//nolint:gochecknoglobals // Package-level version info for CLI commands
var versionInfo = VersionInfo{
	Version: "dev",
	Commit:  "none",
	Date:    "unknown",
	BuiltBy: "unknown",
}

// SetVersionInfo updates the build information.
func SetVersionInfo(v, c, d, b string) {
	versionInfo.Version = v
	versionInfo.Commit = c
	versionInfo.Date = d
	versionInfo.BuiltBy = b
}

// GetVersionInfo returns the current version information.
func GetVersionInfo() VersionInfo {
	return versionInfo
}

//nolint:gochecknoglobals // Cobra CLI pattern for root command
var rootCmd = &cobra.Command{
	Use:   "spotweb",
	Short: "A CLI tool for calling the Spotify Web API",
	Long: `Spotweb sends authenticated requests to the Spotify Web API and prints
the response. List parameters are sent in the comma format the API expects
(ids=a,b,c). Errors, including rate limiting, are reported as returned by the
API; nothing is retried automatically.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		if hint := errorHint(err); hint != "" {
			fmt.Fprintln(rootCmd.ErrOrStderr(), "Hint: "+hint)
		}
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Cobra CLI pattern for flag initialization
func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().
		StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/spotweb/config.yaml)")
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().
		String("token", "", "Access token (overrides SPOTWEB_TOKEN and the config file)")
	rootCmd.PersistentFlags().
		String("base-url", "", "Web API base URL (default is "+spotify.BaseAPIURL+")")
	rootCmd.PersistentFlags().
		Duration("timeout", 0, "Request timeout (default 30s)")

	_ = viper.BindPFlag(config.KeyToken, rootCmd.PersistentFlags().Lookup("token"))
	_ = viper.BindPFlag(config.KeyBaseURL, rootCmd.PersistentFlags().Lookup("base-url"))
	_ = viper.BindPFlag(config.KeyTimeout, rootCmd.PersistentFlags().Lookup("timeout"))
}

func initConfig() {
	config.SetDefaults(viper.GetViper())
	config.BindEnv(viper.GetViper())

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home + "/.config/spotweb")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Read config file silently (ignore error if config file doesn't exist)
	_ = viper.ReadInConfig()
}

// getApp returns the application, building it from the loaded configuration on first use.
func getApp(cmd *cobra.Command) (*app.App, error) {
	if application != nil {
		return application, nil
	}

	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, err
	}

	opts := []app.Option{
		app.WithVerbose(verbose),
		app.WithLogOutput(cmd.ErrOrStderr()),
	}
	if cfgFile != "" {
		opts = append(opts, app.WithConfigPath(cfgFile))
	}
	opts = append(opts, appOptions...)

	application, err = app.NewApp(commandContext(cmd), cfg, opts...)
	if err != nil {
		return nil, err
	}
	return application, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
