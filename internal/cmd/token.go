package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"spotweb/internal/config"
	"spotweb/internal/errors"
)

//nolint:gochecknoglobals // Cobra CLI pattern for subcommand
var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Print an app access token",
	Long: `Request an app access token with the client credentials flow and print it.

Requires client_id and client_secret (config file or SPOTWEB_CLIENT_ID and
SPOTWEB_CLIENT_SECRET). Each run fetches a new token; nothing is cached.`,
	Args: cobra.NoArgs,
	RunE: runToken,
}

//nolint:gochecknoinits // Cobra CLI pattern for command registration
func init() {
	rootCmd.AddCommand(tokenCmd)
}

func runToken(cmd *cobra.Command, _ []string) error {
	a, err := getApp(cmd)
	if err != nil {
		return err
	}

	if a.TokenSource == nil {
		return errors.NewConfigurationError(config.KeyClientID, "",
			"client_id and client_secret are required to request a token", nil)
	}

	token, err := a.TokenSource.Token(commandContext(cmd))
	if err != nil {
		return describeError(err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
