package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/conneroisu/branddna/internal/artifacts"
	"github.com/conneroisu/branddna/internal/brand"
	"github.com/conneroisu/branddna/internal/config"
	"github.com/conneroisu/branddna/internal/logging"
	"github.com/conneroisu/branddna/internal/serializer"
)

var (
	exportFormats []string
	exportOutDir  string
	exportStdout  bool
	exportList    bool
)

var exportCmd = &cobra.Command{
	Use:     "export [file]",
	Aliases: []string{"build"},
	Short:   "Export a brand to CSS, Tailwind, TypeScript, SCSS and more",
	Long: `Render the brand file into the configured artifact formats and write them
to the output directory. Artifacts whose content has not changed are left
untouched.

Examples:
  branddna export                          # configured formats into output.dir
  branddna export -F css -F ts             # only CSS and TypeScript
  branddna export --out-dir public/brand   # another directory
  branddna export -F css --stdout          # print one artifact
  branddna export --list                   # show the available formats`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringSliceVarP(&exportFormats, "formats", "F", nil, "formats to export (default is output.formats)")
	exportCmd.Flags().StringVarP(&exportOutDir, "out-dir", "d", "", "output directory (default is output.dir)")
	exportCmd.Flags().BoolVar(&exportStdout, "stdout", false, "print a single format to standard output")
	exportCmd.Flags().BoolVar(&exportList, "list", false, "list the available formats")
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	reg := serializer.DefaultRegistry(cfg.CSSOptions())

	if exportList {
		for _, f := range reg.List() {
			fmt.Fprintf(out, "%-10s %s\n", f.Name, dimStyle.Render(f.FileName+"  "+f.MediaType))
		}

		return nil
	}

	b, res, err := loadBrand(newImporter(cfg, logger), brandPath(cfg, args))
	if err != nil {
		fmt.Fprint(cmd.ErrOrStderr(), formatValidation(brandPath(cfg, args), res))

		return err
	}

	formats := exportFormats
	if len(formats) == 0 {
		formats = cfg.Output.Formats
	}

	if exportStdout {
		if len(formats) != 1 {
			return fmt.Errorf("--stdout needs exactly one format, got %d", len(formats))
		}

		return renderTo(out, reg, formats[0], b)
	}

	dir := exportOutDir
	if dir == "" {
		dir = cfg.Output.Dir
	}

	written, err := exportArtifacts(cmd.Context(), cfg, logger, reg, dir, b, formats)
	if err != nil {
		return err
	}

	for _, a := range written {
		state := okStyle.Render("wrote")
		if a.Unchanged {
			state = dimStyle.Render("same ")
		}
		fmt.Fprintf(out, "%s %s\n", state, a.Path)
	}

	return nil
}

func renderTo(w io.Writer, reg *serializer.Registry, format string, b brand.BrandDNA) error {
	data, err := reg.Render(format, b)
	if err != nil {
		return err
	}
	_, err = w.Write(data)

	return err
}

// exportArtifacts writes formats for b into dir.
func exportArtifacts(
	ctx context.Context,
	cfg *config.Config,
	logger logging.Logger,
	reg *serializer.Registry,
	dir string,
	b brand.BrandDNA,
	formats []string,
) ([]artifacts.Artifact, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	w, err := artifacts.NewWriter(reg, dir,
		artifacts.WithLogger(logger),
		artifacts.WithClock(now),
		artifacts.WithManifest(cfg.Output.Manifest),
	)
	if err != nil {
		return nil, err
	}

	return w.Write(ctx, b, formats...)
}
