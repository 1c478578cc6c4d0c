package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"spotweb/internal/adapters/filesystem"
	"spotweb/internal/config"
	"spotweb/internal/domain"
	"spotweb/internal/logging"
)

const maskedValue = "********"

//nolint:gochecknoglobals // Cobra CLI pattern for subcommand
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the spotweb settings file",
	Long: `Show, change, or locate the spotweb settings file.

Settings are read from the file, then overridden by SPOTWEB_* environment
variables and command line flags.`,
}

//nolint:gochecknoglobals // Cobra CLI pattern for subcommand
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the settings file with secrets masked",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

//nolint:gochecknoglobals // Cobra CLI pattern for subcommand
var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Long: fmt.Sprintf(`Change a setting and save the file. An empty value clears the setting.

Keys: %s`, strings.Join(config.SettableKeys(), ", ")),
	Example: `  spotweb config set client_id 0123456789abcdef
  spotweb config set timeout 10s
  spotweb config set token ""`,
	Args: cobra.ExactArgs(2), //nolint:mnd // key and value
	RunE: runConfigSet,
}

//nolint:gochecknoglobals // Cobra CLI pattern for subcommand
var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the settings file location",
	Args:  cobra.NoArgs,
	RunE:  runConfigPath,
}

//nolint:gochecknoinits // Cobra CLI pattern for command registration
func init() {
	configCmd.AddCommand(configShowCmd, configSetCmd, configPathCmd)
	rootCmd.AddCommand(configCmd)
}

// getConfigRepo returns the settings repository. It does not need a valid
// runtime configuration, so a broken setting can still be fixed with `config set`.
func getConfigRepo(cmd *cobra.Command) (domain.ConfigRepository, error) {
	if application != nil {
		return application.ConfigRepo, nil
	}

	fs := filesystem.New()
	path := cfgFile
	if path == "" {
		var err error
		path, err = config.NewProvider(fs).GetConfigPath()
		if err != nil {
			return nil, err
		}
	}

	logConfig := logging.DefaultConfig()
	logConfig.Output = cmd.ErrOrStderr()
	if verbose {
		logConfig.Level = logging.LevelDebug
	}
	return config.NewRepository(fs, path, logging.NewLogger(logConfig))
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	repo, err := getConfigRepo(cmd)
	if err != nil {
		return err
	}

	settings, err := repo.GetSettings(commandContext(cmd))
	if err != nil {
		return err
	}

	if settings == (domain.Settings{}) {
		fmt.Fprintf(cmd.OutOrStdout(), "No settings saved in %s\n", repo.Path())
		return nil
	}

	return writeOutput(cmd.OutOrStdout(), maskSettings(settings), OutputYAML)
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	repo, err := getConfigRepo(cmd)
	if err != nil {
		return err
	}

	key, value := args[0], args[1]
	if err := repo.Set(commandContext(cmd), key, value); err != nil {
		return err
	}

	if value == "" {
		fmt.Fprintf(cmd.OutOrStdout(), "Cleared %s\n", key)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "Set %s\n", key)
	}
	return nil
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	repo, err := getConfigRepo(cmd)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), repo.Path())
	return nil
}

func maskSettings(settings domain.Settings) domain.Settings {
	if settings.Token != "" {
		settings.Token = maskedValue
	}
	if settings.ClientSecret != "" {
		settings.ClientSecret = maskedValue
	}
	return settings
}
