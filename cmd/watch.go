package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/conneroisu/branddna/internal/config"
	"github.com/conneroisu/branddna/internal/errors"
	"github.com/conneroisu/branddna/internal/importer"
	"github.com/conneroisu/branddna/internal/logging"
	"github.com/conneroisu/branddna/internal/serializer"
	"github.com/conneroisu/branddna/internal/stylesink"
	"github.com/conneroisu/branddna/internal/watcher"
)

var (
	watchCSSFile string
	watchHTML    []string
	watchNoBuild bool
)

var watchCmd = &cobra.Command{
	Use:   "watch [file]",
	Short: "Rebuild artifacts whenever the brand file changes",
	Long: `Watch the brand file and re-export the configured artifacts on every save.
A change that fails validation is reported and the previous artifacts are
kept.

The generated CSS can also be pushed into a stylesheet or injected into
HTML documents as a <style> element.

Examples:
  branddna watch
  branddna watch --css-file public/brand.css
  branddna watch --html index.html --html about.html --no-build`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVar(&watchCSSFile, "css-file", "", "also write the stylesheet to this file")
	watchCmd.Flags().StringSliceVar(&watchHTML, "html", nil, "inject the stylesheet into these HTML files")
	watchCmd.Flags().BoolVar(&watchNoBuild, "no-build", false, "skip artifact export, only update the style sinks")
}

// rebuilder re-imports a brand file and pushes the result to the
// artifact directory and the style sinks.
type rebuilder struct {
	cfg      *config.Config
	logger   logging.Logger
	importer *importer.Importer
	registry *serializer.Registry
	sinks    *stylesink.Multi
	errors   *errors.ErrorHandler
	path     string
	export   bool
	out      io.Writer
}

func newRebuilder(cfg *config.Config, logger logging.Logger, path string, out io.Writer) (*rebuilder, error) {
	sinks := stylesink.NewMulti()
	if watchCSSFile != "" {
		f, err := stylesink.NewFile(watchCSSFile)
		if err != nil {
			return nil, fmt.Errorf("css file: %w", err)
		}
		sinks.Add(f)
	}
	for _, p := range watchHTML {
		d, err := stylesink.NewHTMLDocument(p)
		if err != nil {
			return nil, fmt.Errorf("html document %s: %w", p, err)
		}
		sinks.Add(d)
	}

	logger = logger.WithComponent("rebuild")

	return &rebuilder{
		cfg:      cfg,
		logger:   logger,
		importer: newImporter(cfg, logger),
		registry: serializer.DefaultRegistry(cfg.CSSOptions()),
		sinks:    sinks,
		errors:   errors.NewErrorHandler(logger, nil),
		path:     path,
		export:   !watchNoBuild,
		out:      out,
	}, nil
}

// rebuild runs one import and export cycle. A rejected import leaves the
// artifacts and sinks untouched.
func (r *rebuilder) rebuild(ctx context.Context) error {
	b, res, err := loadBrand(r.importer, r.path)
	if err != nil {
		fmt.Fprint(r.out, formatValidation(r.path, res))
		r.errors.Handle(ctx, err)

		return err
	}

	if r.export {
		written, err := exportArtifacts(ctx, r.cfg, r.logger, r.registry, r.cfg.Output.Dir, b, r.cfg.Output.Formats)
		if err != nil {
			r.errors.Handle(ctx, err)

			return err
		}
		changed := 0
		for _, a := range written {
			if !a.Unchanged {
				changed++
			}
		}
		fmt.Fprintf(r.out, "%s %s: %d of %d artifacts updated\n",
			okStyle.Render("✓"), b.Metadata.Name, changed, len(written))
	}

	if r.sinks.Len() > 0 {
		if err := r.sinks.Apply(serializer.ToCSS(b, r.cfg.CSSOptions())); err != nil {
			return err
		}
	}

	return nil
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	path := brandPath(cfg, args)

	r, err := newRebuilder(cfg, logger, path, out)
	if err != nil {
		return err
	}

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The initial build may fail; watching continues so the file can be fixed.
	_ = r.rebuild(ctx)

	fw, err := watcher.NewFileWatcher(cfg.Watch.Debounce, logger)
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := fw.WatchFile(path); err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}
	fw.AddHandler(func(events []watcher.ChangeEvent) error {
		// Editors that save by rename report a delete before the new file lands.
		if _, err := os.Stat(path); os.IsNotExist(err) {
			fmt.Fprintln(out, warnStyle.Render("! "+path+" was removed"))

			return nil
		}
		logger.Debug(ctx, "Brand file changed", "events", len(events))

		return r.rebuild(ctx)
	})

	if err := fw.Start(ctx); err != nil {
		return err
	}
	fmt.Fprintf(out, "Watching %s (Ctrl+C to stop)\n", path)

	<-ctx.Done()
	_ = fw.Stop()
	fw.Wait()
	fmt.Fprintln(out, "Stopped")

	return nil
}
