package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"spotweb/internal/domain"
)

//nolint:gochecknoglobals // Cobra CLI pattern for command flags
var (
	requestParams      []string
	requestData        string
	requestContentType string
	requestOutput      string
	requestDryRun      bool
)

//nolint:gochecknoglobals // Cobra CLI pattern for subcommand
var requestCmd = &cobra.Command{
	Use:   "request <METHOD> <path>",
	Short: "Send a request to the Web API",
	Long: `Send an authenticated request to the Spotify Web API and print the response.

The path is joined to the configured base URL unless it is an absolute URL.
Repeat --param with the same key to send a list; lists are sent comma-joined.
Use --data @file to read the request body from a file.`,
	Example: `  spotweb request GET me
  spotweb request GET albums --param ids=4aawyAB9vmqN3uQ7FjRGTy --param ids=1A2GTWGtFfWp7KSQTwWOyo
  spotweb request PUT me/player/pause
  spotweb request PUT playlists/3cEYpjA9oz9GiPac4AsH4n/images --content-type image/jpeg --data @cover.b64`,
	Args: cobra.ExactArgs(2), //nolint:mnd // method and path
	RunE: runRequest,
}

//nolint:gochecknoinits // Cobra CLI pattern for command registration
func init() {
	rootCmd.AddCommand(requestCmd)

	requestCmd.Flags().StringArrayVarP(&requestParams, "param", "p", nil, "Query parameter as key=value (repeatable)")
	requestCmd.Flags().StringVarP(&requestData, "data", "d", "", "Request body, or @file to read it from a file")
	requestCmd.Flags().StringVar(&requestContentType, "content-type", "", "Content-Type header (default application/json)")
	requestCmd.Flags().StringVarP(&requestOutput, "output", "o", OutputJSON, "Output format: json or yaml")
	requestCmd.Flags().BoolVar(&requestDryRun, "dry-run", false, "Print the request instead of sending it")
}

func runRequest(cmd *cobra.Command, args []string) error {
	if err := validOutput(requestOutput); err != nil {
		return err
	}

	a, err := getApp(cmd)
	if err != nil {
		return err
	}
	ctx := commandContext(cmd)

	method := strings.ToUpper(args[0])
	path := args[1]

	params, err := parseParams(requestParams)
	if err != nil {
		return err
	}

	opts := &domain.RequestOptions{
		ContentType: requestContentType,
		Params:      params,
	}
	if requestData != "" {
		data, err := readData(a.FileSystem, requestData)
		if err != nil {
			return err
		}
		opts.Data = data
	}

	if requestDryRun {
		config := a.Builder.Build(path, method, "", opts)
		return writeOutput(cmd.OutOrStdout(), newDryRunView(config), requestOutput)
	}

	token, err := a.ResolveToken(ctx)
	if err != nil {
		return err
	}

	result, err := a.Builder.Send(ctx, path, method, token, opts)
	if err != nil {
		return describeError(err)
	}

	return writeOutput(cmd.OutOrStdout(), result, requestOutput)
}

// readData returns the body given to --data, reading it from a file when it
// starts with @.
func readData(fs domain.FileSystemAdapter, value string) (string, error) {
	path, fromFile := strings.CutPrefix(value, "@")
	if !fromFile {
		return value, nil
	}

	content, err := fs.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read request body from %s: %w", path, err)
	}
	return string(content), nil
}

// dryRunView is the printable form of a request config. The token is never shown.
type dryRunView struct {
	Method  string            `json:"method"            yaml:"method"`
	BaseURL string            `json:"baseURL"           yaml:"baseURL"`
	URL     string            `json:"url"               yaml:"url"`
	Headers map[string]string `json:"headers"           yaml:"headers"`
	Params  domain.Params     `json:"params,omitempty"  yaml:"params,omitempty"`
	Query   string            `json:"query,omitempty"   yaml:"query,omitempty"`
	Data    any               `json:"data,omitempty"    yaml:"data,omitempty"`
}

func newDryRunView(config *domain.RequestConfig) dryRunView {
	headers := make(map[string]string, len(config.Headers))
	for name, value := range config.Headers {
		headers[name] = value
	}
	if _, ok := headers["Authorization"]; ok {
		headers["Authorization"] = "Bearer <token>"
	}

	view := dryRunView{
		Method:  config.Method,
		BaseURL: config.BaseURL,
		URL:     config.URL,
		Headers: headers,
		Params:  config.Params,
		Data:    config.Data,
	}
	if len(config.Params) > 0 && config.ParamsSerializer != nil {
		view.Query = config.ParamsSerializer(config.Params)
	}
	return view
}
