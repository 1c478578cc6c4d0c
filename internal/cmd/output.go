package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"spotweb/internal/errors"
)

// Output formats accepted by --output.
const (
	OutputJSON = "json"
	OutputYAML = "yaml"
)

func validOutput(format string) error {
	switch format {
	case OutputJSON, OutputYAML:
		return nil
	default:
		return errors.NewValidationError("output", format, "supported_values",
			fmt.Sprintf("unsupported output format %q (use json or yaml)", format))
	}
}

// writeOutput renders data in the given format. Strings are written as-is and
// a nil value writes nothing.
func writeOutput(w io.Writer, data any, format string) error {
	switch v := data.(type) {
	case nil:
		return nil
	case string:
		_, err := fmt.Fprintln(w, v)
		return err
	}

	if format == OutputYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(data); err != nil {
			return fmt.Errorf("failed to encode yaml output: %w", err)
		}
		return enc.Close()
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("failed to encode json output: %w", err)
	}
	return nil
}
