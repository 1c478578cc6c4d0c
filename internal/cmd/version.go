package cmd

import (
	"fmt"
	"runtime"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra CLI pattern for subcommand
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Long:  `Display version, commit, build date, and build information for spotweb.`,
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprint(cmd.OutOrStdout(), versionText(GetVersionInfo()))
	},
}

//nolint:gochecknoinits // Cobra CLI pattern for command registration
func init() {
	rootCmd.AddCommand(versionCmd)
}

func versionText(info VersionInfo) string {
	table := uitable.New()
	table.RightAlign(0)
	table.MaxColWidth = 80
	table.Separator = " "
	table.AddRow("version:", info.Version)
	table.AddRow("commit:", info.Commit)
	table.AddRow("built:", info.Date)
	table.AddRow("built by:", info.BuiltBy)
	table.AddRow("go:", runtime.Version())
	table.AddRow("platform:", runtime.GOOS+"/"+runtime.GOARCH)

	return "spotweb " + info.Version + "\n" + table.String() + "\n"
}
