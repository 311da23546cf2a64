package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/conneroisu/branddna/internal/errors"
	"github.com/conneroisu/branddna/internal/server"
	"github.com/conneroisu/branddna/internal/stylesink"
	"github.com/conneroisu/branddna/internal/watcher"
)

var (
	serveHost    string
	servePort    int
	serveNoWatch bool
	serveCSSFile string
)

var serveCmd = &cobra.Command{
	Use:     "serve [file]",
	Aliases: []string{"preview"},
	Short:   "Start the live preview server",
	Long: `Serve a live preview of the brand: swatches, fonts, strategy and every
diagnostic. Saving the brand file pushes the new CSS variables to open
browsers over a websocket without a page reload.

Endpoints:
  /             preview page
  /brand.css    generated stylesheet
  /api/brand    brand document (?format=css|scss|tailwind|ts|link)
  /api/validate POST a document to validate it
  /ws           live CSS updates
  /health       status

Examples:
  branddna serve
  branddna serve --port 3000
  branddna serve --css-file public/brand.css`,
	Args: cobra.MaximumNArgs(1),
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveHost, "host", "", "host to bind (default is server.host)")
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "port to listen on (default is server.port)")
	serveCmd.Flags().BoolVar(&serveNoWatch, "no-watch", false, "do not reload on file changes")
	serveCmd.Flags().StringVar(&serveCSSFile, "css-file", "", "also write the stylesheet to this file")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if serveHost != "" {
		cfg.Server.Host = serveHost
	}
	if servePort != 0 {
		if servePort < 0 || servePort > 65535 {
			return fmt.Errorf("port %d is not in valid range 0-65535", servePort)
		}
		cfg.Server.Port = servePort
	}

	path := brandPath(cfg, args)
	imp := newImporter(cfg, logger)
	b, res, err := loadBrand(imp, path)
	if err != nil {
		fmt.Fprint(cmd.ErrOrStderr(), formatValidation(path, res))

		return err
	}

	opts := []server.Option{
		server.WithLogger(logger),
		server.WithImporter(imp),
		server.WithClock(now),
	}
	if serveCSSFile != "" {
		sink, err := stylesink.NewFile(serveCSSFile)
		if err != nil {
			return fmt.Errorf("css file: %w", err)
		}
		opts = append(opts, server.WithSink(sink))
	}

	srv, err := server.New(cfg, b, opts...)
	if err != nil {
		return err
	}

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !serveNoWatch {
		handler := errors.NewErrorHandler(logger.WithComponent("reload"), nil)
		fw, err := watcher.NewFileWatcher(cfg.Watch.Debounce, logger)
		if err != nil {
			return fmt.Errorf("failed to create file watcher: %w", err)
		}
		if err := fw.WatchFile(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		fw.AddHandler(func(_ []watcher.ChangeEvent) error {
			if _, err := os.Stat(path); os.IsNotExist(err) {
				return nil
			}
			if err := srv.ReloadFile(ctx, path); err != nil {
				handler.Handle(ctx, err)
				fmt.Fprintln(out, failStyle.Render("✗ "+path+" rejected, preview unchanged"))

				return err
			}
			fmt.Fprintln(out, okStyle.Render("↻ reloaded ")+path)

			return nil
		})
		if err := fw.Start(ctx); err != nil {
			return err
		}
		defer func() {
			_ = fw.Stop()
			fw.Wait()
		}()
	}

	fmt.Fprintf(out, "%s http://%s\n", titleStyle.Render("Brand preview at"), cfg.Addr())

	return srv.Start(ctx)
}
