package cmd

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"spotweb/internal/app"
	"spotweb/internal/auth"
	"spotweb/internal/config"
	"spotweb/internal/logging"
	"spotweb/internal/spotify"
	"spotweb/internal/testutil"
)

type stubTokenReader struct{}

func (stubTokenReader) ReadToken(context.Context, string) (string, error) { return "", nil }
func (stubTokenReader) IsInteractive() bool                               { return false }

func testConfig() *config.Config {
	return &config.Config{
		BaseURL:   spotify.BaseAPIURL,
		Token:     "test-token",
		TokenURL:  auth.DefaultTokenURL,
		Timeout:   5 * time.Second,
		LogLevel:  string(logging.LevelInfo),
		LogFormat: logging.FormatText,
	}
}

// setupTestApp installs an application backed by transport and resets the
// command state when the test ends.
func setupTestApp(t *testing.T, cfg *config.Config, transport *testutil.Transport) *app.App {
	t.Helper()
	resetCommandState(t)

	a, err := app.NewApp(context.Background(), cfg,
		app.WithTransport(transport),
		app.WithTokenReader(stubTokenReader{}),
		app.WithConfigPath(filepath.Join(t.TempDir(), "config.yaml")),
		app.WithLogOutput(io.Discard),
	)
	require.NoError(t, err)

	application = a
	return a
}

// resetCommandState clears package level flag values before and after a test.
func resetCommandState(t *testing.T) {
	t.Helper()
	reset := func() {
		application = nil
		appOptions = nil
		cfgFile = ""
		verbose = false
		requestParams = nil
		requestData = ""
		requestContentType = ""
		requestOutput = OutputJSON
		requestDryRun = false
		queryParams = nil
	}
	reset()
	t.Cleanup(reset)
}

// newTestCommand returns a command with captured output.
func newTestCommand() (*cobra.Command, *bytes.Buffer) {
	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetContext(context.Background())
	return cmd, &out
}
