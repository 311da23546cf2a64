package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/conneroisu/branddna/internal/artifacts"
	"github.com/conneroisu/branddna/internal/importer"
	"github.com/conneroisu/branddna/internal/serializer"
	"github.com/conneroisu/branddna/internal/validation"
)

var (
	importPreview bool
	importDiff    string
	importOut     string
	importForce   bool
	importFormat  outputFormat
)

var importCmd = &cobra.Command{
	Use:   "import <file|url|link>",
	Short: "Import a brand from a file, URL or shareable link",
	Long: `Import a Brand DNA document from a local file, an http(s) URL or a
shareable link (full URL or bare token). The document is parsed, migrated,
sanitized, merged with defaults and validated before anything is written.

Examples:
  branddna import theirs.json --preview          # summarize without writing
  branddna import https://example.com/brand.json # fetch and write brand.json
  branddna import <token> --diff brand.json      # compare with the current brand
  branddna import theirs.json --out acme.json --force`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().BoolVarP(&importPreview, "preview", "p", false, "summarize the import without writing")
	importCmd.Flags().StringVar(&importDiff, "diff", "", "compare the import with this brand file")
	importCmd.Flags().StringVar(&importOut, "out", "", "destination file (default is the configured brand file)")
	importCmd.Flags().BoolVarP(&importForce, "force", "f", false, "overwrite the destination")
	addFormatFlag(importCmd.Flags(), &importFormat)
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	imp := newImporter(cfg, logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, cfg.Import.Timeout)
	defer cancel()

	source := args[0]
	res := imp.Import(ctx, source)
	logger.Info(ctx, "Import finished",
		"source", importer.DetectSource(source).String(),
		"success", res.Success,
		"errors", len(res.Errors),
		"warnings", len(res.Warnings))

	if importPreview {
		preview := importer.PreviewOf(res)
		if importFormat != outputText {
			if err := writeStructured(out, importFormat, preview); err != nil {
				return err
			}
		} else {
			fmt.Fprint(out, formatPreview(preview))
		}
		if !preview.Valid {
			return res.Err()
		}

		return nil
	}

	if !res.Success {
		if importFormat == outputText {
			fmt.Fprint(out, formatValidation(source, res))
		} else if err := writeStructured(out, importFormat, res); err != nil {
			return err
		}

		return res.Err()
	}

	if importDiff != "" {
		current, _, err := loadBrand(imp, importDiff)
		if err != nil {
			return fmt.Errorf("load %s: %w", importDiff, err)
		}
		diffs := importer.Compare(current, *res.Brand)
		if importFormat != outputText {
			return writeStructured(out, importFormat, diffs)
		}
		fmt.Fprint(out, formatDiffs(importDiff, diffs))

		return nil
	}

	dest := importOut
	if dest == "" {
		dest = cfg.Brand.File
	}
	if err := validation.ValidatePath(dest); err != nil {
		return fmt.Errorf("invalid destination: %w", err)
	}
	if _, err := os.Stat(dest); err == nil && !importForce {
		return fmt.Errorf("%s already exists (use --force to overwrite, or --preview to inspect)", dest)
	}

	data, err := serializer.ToJSONAt(*res.Brand, true, now())
	if err != nil {
		return err
	}
	if err := artifacts.WriteFileAtomic(dest, data); err != nil {
		return fmt.Errorf("write %s: %w", dest, err)
	}

	fmt.Fprintf(out, "%s %s → %s\n", okStyle.Render("✓ imported"), res.Brand.Metadata.Name, dest)
	fmt.Fprint(out, renderFieldErrors("Warnings", warnStyle, res.Warnings))

	return nil
}

func formatPreview(p importer.PreviewResult) string {
	var s string
	if !p.Valid {
		s = failStyle.Render("✗ import would be rejected") + "\n"
		s += renderFieldErrors("Errors", failStyle, p.Errors)

		return s
	}

	body := fmt.Sprintf("%s\n%d colors\n%d fonts\n%d assets\n%d values",
		titleStyle.Render(p.Summary.Name), p.Summary.Colors, p.Summary.Fonts, p.Summary.Assets, p.Summary.Values)
	s = boxStyle.Render(body) + "\n"
	for _, w := range p.Warnings {
		s += warnStyle.Render("! "+w) + "\n"
	}

	return s
}

func formatDiffs(against string, diffs []importer.Diff) string {
	if len(diffs) == 0 {
		return okStyle.Render("no differences") + " from " + against + "\n"
	}

	s := titleStyle.Render(fmt.Sprintf("%d differences from %s", len(diffs), against)) + "\n"
	for _, d := range diffs {
		s += fmt.Sprintf("  %s\n    - %s\n    + %s\n", d.Field, dimStyle.Render(d.Current), d.Imported)
	}

	return s
}
