package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mj1618/desktop-matrix/internal/model"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// Format represents the output format.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ParseFormat validates a --format value.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatYAML, "":
		return FormatYAML, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported format: %s (use yaml or json)", s)
	}
}

// OutputFormat is the current output format, set by the root command's --format flag.
var OutputFormat Format = FormatYAML

// PrettyOutput enables pretty-printing for JSON output.
var PrettyOutput bool

// Stdout is where Print writes. Tests may swap it.
var Stdout io.Writer = os.Stdout

// ReadResult is the top-level output of the `read` command.
type ReadResult struct {
	Source   string          `yaml:"source,omitempty" json:"source,omitempty"`
	TS       int64           `yaml:"ts"               json:"ts"`
	Elements []model.Element `yaml:"elements"         json:"elements"`
}

// ReadFlatResult is the top-level output when --flat is used.
type ReadFlatResult struct {
	Source   string              `yaml:"source,omitempty" json:"source,omitempty"`
	TS       int64               `yaml:"ts"               json:"ts"`
	Elements []model.FlatElement `yaml:"elements"         json:"elements"`
}

// Print serializes v to Stdout in the current output format.
func Print(v interface{}) error {
	return Fprint(Stdout, OutputFormat, PrettyOutput, v)
}

// Fprint serializes v to w in the given format.
func Fprint(w io.Writer, format Format, pretty bool, v interface{}) error {
	switch format {
	case FormatJSON:
		return WriteJSON(w, v, pretty)
	case FormatYAML:
		return WriteYAML(w, v)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

// WriteJSON serializes v as JSON, single-line unless pretty is set.
func WriteJSON(w io.Writer, v interface{}, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("json encode: %w", err)
	}
	return nil
}

// WriteYAML serializes v as YAML.
func WriteYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("yaml encode: %w", err)
	}
	return enc.Close()
}

// Marshal renders v to a string in format, for transports that need text.
func Marshal(format Format, v interface{}) (string, error) {
	var b strings.Builder
	if err := Fprint(&b, format, false, v); err != nil {
		return "", err
	}
	return b.String(), nil
}

// IsOutputPiped reports whether stdout is not a terminal.
func IsOutputPiped() bool {
	return !term.IsTerminal(int(os.Stdout.Fd()))
}
