// Package cmd provides the branddna command-line interface.
//
// Configuration is read from several sources, highest priority first:
//
//  1. Command-line flags (--config, --log-level, --strict, ...)
//  2. Environment variables named BRANDDNA_<SECTION>_<KEY>, for example
//     BRANDDNA_SERVER_PORT or BRANDDNA_OUTPUT_DIR
//  3. The configuration file: --config, then BRANDDNA_CONFIG_FILE, then
//     .branddna.yml in the current directory
//  4. Built-in defaults
package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/conneroisu/branddna/internal/brand"
	"github.com/conneroisu/branddna/internal/config"
	"github.com/conneroisu/branddna/internal/errors"
	"github.com/conneroisu/branddna/internal/importer"
	"github.com/conneroisu/branddna/internal/logging"
)

// ConfigFileEnv names the variable that points at a configuration file.
const ConfigFileEnv = "BRANDDNA_CONFIG_FILE"

var cfgFile string

// now is the clock used for timestamps written by commands.
var now = time.Now

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "branddna",
	Short: "Portable brand identity documents",
	Long: `branddna manages Brand DNA documents: colors, typography, spacing,
strategy and assets in one validated JSON file, exported to CSS custom
properties, Tailwind config, TypeScript, SCSS and shareable links.

Quick Start:
  branddna init --template startup --name "Acme"   Create brand.json
  branddna validate                                 Check the brand file
  branddna export                                   Write the configured artifacts
  branddna serve                                    Live preview with hot reload
  branddna import <file|url|link> --preview         Inspect a document before importing`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(rootCmd.ErrOrStderr(), failStyle.Render("Error:"), formatCommandError(err))
	}

	return err
}

// formatCommandError renders err with fix suggestions. Rejected imports
// have already printed their diagnostics.
func formatCommandError(err error) string {
	if errors.IsImportError(err) {
		return errors.FormatError(err)
	}

	return errors.FormatErrorWithSuggestions(err)
}

func init() {
	cobra.OnInitialize(initConfig)
	cobra.OnFinalize(closeLogFiles)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default is "+config.FileName+", can also use "+ConfigFileEnv+" env var)")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "", "log format (text, json)")
	rootCmd.PersistentFlags().String("log-file", "", "also write JSON logs to this file")
	rootCmd.PersistentFlags().Bool("strict", false, "treat advisory diagnostics as errors")

	bindFlag("log.level", "log-level")
	bindFlag("log.format", "log-format")
	bindFlag("log.file", "log-file")
	bindFlag("validation.strict", "strict")
}

func bindFlag(key, flag string) {
	if err := viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
		panic(err)
	}
}

// initConfig points viper at the configuration file and the environment.
func initConfig() {
	switch {
	case cfgFile != "":
		viper.SetConfigFile(cfgFile)
	case os.Getenv(ConfigFileEnv) != "":
		viper.SetConfigFile(os.Getenv(ConfigFileEnv))
	default:
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(strings.TrimSuffix(config.FileName, filepath.Ext(config.FileName)))
	}

	config.BindEnv(viper.GetViper())

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig decodes and validates the merged configuration.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

var (
	logFilesMu sync.Mutex
	logFiles   []io.Closer
)

// newLogger builds the command logger from cfg. With log.file set, records
// go to stderr and, as JSON, to the file.
func newLogger(cmd *cobra.Command, cfg *config.Config) (logging.Logger, error) {
	lc, err := cfg.LoggerConfig()
	if err != nil {
		return nil, err
	}
	lc.Output = cmd.ErrOrStderr()
	console := logging.NewLogger(lc)
	if cfg.Log.File == "" {
		return console, nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Log.File), 0o755); err != nil {
		return nil, errors.WrapIO(err, errors.ErrCodeConfigInvalid, "create log directory").WithFile(cfg.Log.File)
	}
	f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, errors.WrapIO(err, errors.ErrCodeConfigInvalid, "open log file").WithFile(cfg.Log.File)
	}
	logFilesMu.Lock()
	logFiles = append(logFiles, f)
	logFilesMu.Unlock()

	fc := *lc
	fc.Format = "json"
	fc.Output = f

	return logging.NewMultiLogger(console, logging.NewLogger(&fc)), nil
}

// closeLogFiles closes the files opened by newLogger.
func closeLogFiles() {
	logFilesMu.Lock()
	defer logFilesMu.Unlock()
	for _, f := range logFiles {
		_ = f.Close()
	}
	logFiles = nil
}

// setup loads the configuration and the logger every command needs.
func setup(cmd *cobra.Command) (*config.Config, logging.Logger, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	logger, err := newLogger(cmd, cfg)
	if err != nil {
		return nil, nil, err
	}

	return cfg, logger, nil
}

func newImporter(cfg *config.Config, logger logging.Logger) *importer.Importer {
	return importer.New(
		importer.WithLogger(logger),
		importer.WithStrict(cfg.Validation.Strict),
		importer.WithMaxBytes(cfg.Import.MaxBytes),
		importer.WithClock(now),
	)
}

// loadBrand imports path through the full pipeline.
func loadBrand(imp *importer.Importer, path string) (brand.BrandDNA, importer.Result, error) {
	res := imp.ImportFile(path)
	if !res.Success {
		return brand.BrandDNA{}, res, res.Err()
	}

	return *res.Brand, res, nil
}

// brandPath returns the first argument or the configured brand file.
func brandPath(cfg *config.Config, args []string) string {
	if len(args) > 0 && args[0] != "" {
		return args[0]
	}

	return cfg.Brand.File
}
