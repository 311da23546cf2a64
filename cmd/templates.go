package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/conneroisu/branddna/internal/brand"
	"github.com/conneroisu/branddna/internal/templates"
)

var (
	templatesCategory  string
	templatesFormat    outputFormat
	templateShowFormat outputFormat
)

var templatesCmd = &cobra.Command{
	Use:     "templates",
	Aliases: []string{"tpl"},
	Short:   "Browse the built-in brand templates",
}

var templatesListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List templates grouped by category",
	Args:    cobra.NoArgs,
	RunE:    runTemplatesList,
}

var templatesShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show the brand a template produces",
	Args:  cobra.ExactArgs(1),
	RunE:  runTemplatesShow,
}

func init() {
	rootCmd.AddCommand(templatesCmd)
	templatesCmd.AddCommand(templatesListCmd, templatesShowCmd)

	templatesListCmd.Flags().StringVarP(&templatesCategory, "category", "c", "", "only list this category")
	addFormatFlag(templatesListCmd.Flags(), &templatesFormat)
	addFormatFlag(templatesShowCmd.Flags(), &templateShowFormat)
}

func runTemplatesList(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	reg := templates.Builtin()

	list := reg.List()
	if templatesCategory != "" {
		list = reg.ByCategory(strings.ToLower(templatesCategory))
		if len(list) == 0 {
			return fmt.Errorf("unknown category %q (available: %s)",
				templatesCategory, strings.Join(reg.Categories(), ", "))
		}
	}

	if templatesFormat != outputText {
		return writeStructured(out, templatesFormat, list)
	}

	for _, category := range reg.Categories() {
		var group []templates.Template
		for _, t := range list {
			if t.Category == category {
				group = append(group, t)
			}
		}
		if len(group) == 0 {
			continue
		}

		fmt.Fprintln(out, titleStyle.Render(templates.CategoryTitle(category)))
		for _, t := range group {
			light := t.Brand().Colors.Light
			fmt.Fprintf(out, "  %s%s%s %-14s %s\n",
				swatch(light.Primary), swatch(light.Secondary), swatch(light.Accent),
				t.ID, dimStyle.Render(t.Description))
		}
	}

	return nil
}

func runTemplatesShow(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	t, err := templates.Builtin().GetByID(args[0])
	if err != nil {
		return err
	}
	b := t.Brand()

	if templateShowFormat != outputText {
		return writeStructured(out, templateShowFormat, b)
	}

	fmt.Fprintln(out, titleStyle.Render(t.Name)+" "+dimStyle.Render("("+t.ID+", "+templates.CategoryTitle(t.Category)+")"))
	fmt.Fprintln(out, t.Description)
	fmt.Fprintln(out)
	fmt.Fprint(out, formatPalette(b))
	fmt.Fprintln(out)
	for _, role := range brand.FontRoles {
		f, _ := b.Typography.Font(role)
		fmt.Fprintf(out, "  %-8s %s\n", role, strings.Join(f.Stack(), ", "))
	}

	return nil
}

// formatPalette renders both palettes side by side, one slot per row.
func formatPalette(b brand.BrandDNA) string {
	var s strings.Builder
	fmt.Fprintf(&s, "  %-12s %-22s %s\n", "", "light", "dark")
	for _, slot := range brand.Slots {
		light, _ := b.Colors.Light.Get(slot)
		dark, _ := b.Colors.Dark.Get(slot)
		fmt.Fprintf(&s, "  %-12s %s %-19s %s %s\n", slot, swatch(light), light, swatch(dark), dark)
	}

	return s.String()
}
