package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/cotstudio/cot/internal/config"
	"github.com/cotstudio/cot/internal/tui"
)

// resolveOutputFormat reads the --output flag, falling back to the configured
// default, and validates the result.
func resolveOutputFormat(cmd *cobra.Command) (string, error) {
	format, _ := cmd.Flags().GetString("output")
	if format == "" {
		format = config.GetDefaultOutputFormat()
	}
	switch format {
	case config.FormatTable, config.FormatJSON, config.FormatNDJSON, config.FormatYAML:
		return format, nil
	default:
		return "", fmt.Errorf("unsupported output format: %s (supported: table, json, ndjson, yaml)", format)
	}
}

// structuredFormat reports whether format bypasses the TUI completely.
// Explicit json/ndjson/yaml output must stay machine-readable no matter
// what kind of terminal the command runs in.
func structuredFormat(format string) bool {
	return format == config.FormatJSON || format == config.FormatNDJSON || format == config.FormatYAML
}

// detectMode picks the presentation mode for table output, honoring --plain.
func detectMode(cmd *cobra.Command) tui.OutputMode {
	plain, _ := cmd.Flags().GetBool("plain")
	return tui.DetectOutputMode(plain)
}

// writeJSON writes v as an indented JSON document.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeNDJSON writes one compact JSON line per item.
func writeNDJSON[T any](w io.Writer, items []T) error {
	enc := json.NewEncoder(w)
	for _, item := range items {
		if err := enc.Encode(item); err != nil {
			return err
		}
	}
	return nil
}

// writeYAML writes v as a YAML document.
func writeYAML(w io.Writer, v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// writeStructured dispatches v to the encoder for an explicit structured
// format. items is the element slice used for ndjson; v is the document
// used for json and yaml.
func writeStructured[T any](w io.Writer, format string, v any, items []T) error {
	switch format {
	case config.FormatJSON:
		return writeJSON(w, v)
	case config.FormatNDJSON:
		return writeNDJSON(w, items)
	case config.FormatYAML:
		return writeYAML(w, v)
	default:
		return fmt.Errorf("unsupported structured format: %s", format)
	}
}
