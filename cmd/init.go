package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/conneroisu/branddna/internal/artifacts"
	"github.com/conneroisu/branddna/internal/config"
	"github.com/conneroisu/branddna/internal/serializer"
	"github.com/conneroisu/branddna/internal/templates"
	"github.com/conneroisu/branddna/internal/validation"
)

var (
	initTemplate string
	initName     string
	initForce    bool
	initNoConfig bool
)

var initCmd = &cobra.Command{
	Use:     "init [file]",
	Aliases: []string{"i"},
	Short:   "Create a brand file from a template",
	Long: `Create a new Brand DNA file from one of the built-in templates and write a
default ` + config.FileName + ` next to it.

Examples:
  branddna init                                   # default template, brand.json
  branddna init --template organic --name "Fern"  # named brand from a template
  branddna init brands/acme.json --force          # overwrite an existing file`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().StringVarP(&initTemplate, "template", "t", "", "template id (see 'branddna templates list')")
	initCmd.Flags().StringVarP(&initName, "name", "n", "", "brand name")
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite an existing brand file")
	initCmd.Flags().BoolVar(&initNoConfig, "no-config", false, "do not write "+config.FileName)
}

func runInit(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	path := brandPath(cfg, args)
	if err := validation.ValidatePath(path); err != nil {
		return fmt.Errorf("invalid brand file path: %w", err)
	}
	if _, err := os.Stat(path); err == nil && !initForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	id := initTemplate
	if id == "" {
		id = cfg.Brand.Template
	}

	stamp := now()
	b, err := templates.Builtin().Instantiate(id, stamp)
	if err != nil {
		return err
	}
	if name := validation.SanitizeText(initName); name != "" {
		b = b.WithName(name, stamp)
	}

	data, err := serializer.ToJSONAt(b, true, stamp)
	if err != nil {
		return err
	}
	if err := artifacts.WriteFileAtomic(path, data); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	logger.Info(cmd.Context(), "Brand file created", "path", path, "template", id)
	fmt.Fprintf(out, "✓ Created %s from template %q\n", path, id)

	if !initNoConfig {
		if _, err := os.Stat(config.FileName); os.IsNotExist(err) {
			if err := cfg.WriteFile(config.FileName, false); err != nil {
				return fmt.Errorf("write %s: %w", config.FileName, err)
			}
			fmt.Fprintf(out, "✓ Created %s\n", config.FileName)
		}
	}

	fmt.Fprintln(out, "\nNext steps:")
	fmt.Fprintf(out, "  branddna validate %s\n", path)
	fmt.Fprintln(out, "  branddna serve")

	return nil
}
