package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"spotweb/internal/spotify"
)

//nolint:gochecknoglobals // Cobra CLI pattern for command flags
var queryParams []string

//nolint:gochecknoglobals // Cobra CLI pattern for subcommand
var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Print the query string for a set of parameters",
	Long: `Print the query string spotweb would send for the given parameters,
without making a request. Repeated keys are joined with commas.`,
	Example: `  spotweb query --param ids=a --param ids=b --param market=US
  ids=a%2Cb&market=US`,
	Args: cobra.NoArgs,
	RunE: runQuery,
}

//nolint:gochecknoinits // Cobra CLI pattern for command registration
func init() {
	rootCmd.AddCommand(queryCmd)

	queryCmd.Flags().StringArrayVarP(&queryParams, "param", "p", nil, "Query parameter as key=value (repeatable)")
}

func runQuery(cmd *cobra.Command, _ []string) error {
	params, err := parseParams(queryParams)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), spotify.SerializeParams(params))
	return nil
}
