package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// Output formats for structured command output.
const (
	outputText = "text"
	outputJSON = "json"
	outputYAML = "yaml"
)

// outputFormat is a validated --format flag value.
type outputFormat string

var _ pflag.Value = (*outputFormat)(nil)

func newOutputFormat(p *outputFormat, def string) *outputFormat {
	*p = outputFormat(def)

	return p
}

func (f *outputFormat) String() string { return string(*f) }

func (f *outputFormat) Set(s string) error {
	switch s = strings.ToLower(strings.TrimSpace(s)); s {
	case outputText, outputJSON, outputYAML:
		*f = outputFormat(s)

		return nil
	}

	return fmt.Errorf("unsupported format %q (supported: %s, %s, %s)", s, outputText, outputJSON, outputYAML)
}

func (f *outputFormat) Type() string { return "format" }

// addFormatFlag registers --format on flags.
func addFormatFlag(flags *pflag.FlagSet, p *outputFormat) {
	flags.VarP(newOutputFormat(p, outputText), "format", "o", "output format (text, json, yaml)")
}

// writeStructured encodes v as JSON or YAML.
func writeStructured(w io.Writer, format outputFormat, v interface{}) error {
	switch format {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		return enc.Encode(v)
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}

		return enc.Close()
	}

	return fmt.Errorf("format %q is not structured", format)
}
