package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/conneroisu/branddna/internal/errors"
	"github.com/conneroisu/branddna/internal/importer"
)

var validateFormat outputFormat

var validateCmd = &cobra.Command{
	Use:     "validate [file]",
	Aliases: []string{"check"},
	Short:   "Validate a brand file",
	Long: `Run the full import pipeline on a brand file and report every diagnostic.

Advisory diagnostics (missing fallbacks, low contrast) are reported as
warnings; with --strict they fail the check.

Examples:
  branddna validate                    # validate the configured brand file
  branddna validate brands/acme.json   # validate a specific file
  branddna validate --strict -o json   # machine readable, warnings fail`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	addFormatFlag(validateCmd.Flags(), &validateFormat)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	path := brandPath(cfg, args)
	res := newImporter(cfg, logger).ImportFile(path)

	if validateFormat != outputText {
		if err := writeStructured(out, validateFormat, res); err != nil {
			return err
		}

		return res.Err()
	}

	fmt.Fprint(out, formatValidation(path, res))

	return res.Err()
}

func formatValidation(path string, res importer.Result) string {
	var s string
	if res.Success {
		s = okStyle.Render("✓ valid") + " " + path + "\n"
	} else {
		s = failStyle.Render("✗ invalid") + " " + path + "\n"
	}

	if res.Success && res.Brand != nil {
		sum := importer.Summarize(*res.Brand)
		s += dimStyle.Render(fmt.Sprintf("  %s: %d colors, %d fonts, %d assets, %d values",
			sum.Name, sum.Colors, sum.Fonts, sum.Assets, sum.Values)) + "\n"
	}

	s += renderFieldErrors("Errors", failStyle, res.Errors)
	s += renderFieldErrors("Warnings", warnStyle, res.Warnings)

	all := append(append(errors.FieldErrors{}, res.Errors...), res.Warnings...)
	if hint := errors.FormatSuggestions(errors.SuggestionsForErrors(all)); hint != "" {
		s += "\n" + hint
	}

	return s
}
