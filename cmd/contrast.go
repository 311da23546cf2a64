package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/conneroisu/branddna/internal/brand"
	"github.com/conneroisu/branddna/internal/color"
)

var (
	contrastHex    bool
	contrastBrand  string
	contrastFormat outputFormat
)

var contrastCmd = &cobra.Command{
	Use:   "contrast [foreground background]",
	Short: "Check WCAG contrast between colors",
	Long: `Compute the WCAG contrast ratio of a foreground and background color, or
of the text pairs of every palette in a brand file.

Colors are HSL triples ("222.2 47.4% 11.2%") unless --hex is given.

Examples:
  branddna contrast "222.2 47.4% 11.2%" "0 0% 100%"
  branddna contrast --hex '#1e293b' '#ffffff'
  branddna contrast --brand brand.json -o json`,
	Args: func(cmd *cobra.Command, args []string) error {
		if contrastBrand != "" {
			return cobra.NoArgs(cmd, args)
		}

		return cobra.ExactArgs(2)(cmd, args)
	},
	RunE: runContrast,
}

func init() {
	rootCmd.AddCommand(contrastCmd)

	contrastCmd.Flags().BoolVar(&contrastHex, "hex", false, "colors are hex values (#rrggbb)")
	contrastCmd.Flags().StringVar(&contrastBrand, "brand", "", "check the palette pairs of this brand file")
	addFormatFlag(contrastCmd.Flags(), &contrastFormat)
}

// contrastCheck is one evaluated color pair.
type contrastCheck struct {
	Pair       string               `json:"pair,omitempty" yaml:"pair,omitempty"`
	Foreground string               `json:"foreground" yaml:"foreground"`
	Background string               `json:"background" yaml:"background"`
	Hex        [2]string            `json:"hex" yaml:"hex"`
	Result     color.ContrastResult `json:"result" yaml:"result"`
	Level      string               `json:"level" yaml:"level"`
}

// brandContrastPairs are the foreground/background slots checked per mode.
var brandContrastPairs = [][2]brand.Slot{
	{brand.SlotForeground, brand.SlotBackground},
	{brand.SlotPrimary, brand.SlotBackground},
	{brand.SlotSecondary, brand.SlotBackground},
	{brand.SlotAccent, brand.SlotBackground},
	{brand.SlotDestructive, brand.SlotBackground},
	{brand.SlotForeground, brand.SlotCard},
}

func runContrast(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	var checks []contrastCheck
	if contrastBrand != "" {
		var err error
		if checks, err = brandContrast(cmd); err != nil {
			return err
		}
	} else {
		fg, bg := args[0], args[1]
		if contrastHex {
			var err error
			if fg, err = color.FromHex(fg); err != nil {
				return fmt.Errorf("foreground: %w", err)
			}
			if bg, err = color.FromHex(bg); err != nil {
				return fmt.Errorf("background: %w", err)
			}
		}
		c, err := checkPair("", fg, bg)
		if err != nil {
			return err
		}
		checks = []contrastCheck{c}
	}

	if contrastFormat != outputText {
		return writeStructured(out, contrastFormat, checks)
	}

	for _, c := range checks {
		fmt.Fprint(out, formatContrast(c))
	}

	return nil
}

func brandContrast(cmd *cobra.Command) ([]contrastCheck, error) {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return nil, err
	}
	b, _, err := loadBrand(newImporter(cfg, logger), contrastBrand)
	if err != nil {
		return nil, err
	}

	var checks []contrastCheck
	for _, mode := range []brand.Mode{brand.ModeLight, brand.ModeDark} {
		p, _ := b.Colors.Palette(mode)
		for _, pair := range brandContrastPairs {
			fg, _ := p.Get(pair[0])
			bg, _ := p.Get(pair[1])
			c, err := checkPair(fmt.Sprintf("%s %s/%s", mode, pair[0], pair[1]), fg, bg)
			if err != nil {
				return nil, err
			}
			checks = append(checks, c)
		}
	}

	return checks, nil
}

func checkPair(name, fg, bg string) (contrastCheck, error) {
	res, err := color.CheckContrast(fg, bg)
	if err != nil {
		return contrastCheck{}, err
	}
	fgHex, _ := color.ToHex(fg)
	bgHex, _ := color.ToHex(bg)

	return contrastCheck{
		Pair:       name,
		Foreground: fg,
		Background: bg,
		Hex:        [2]string{fgHex, bgHex},
		Result:     res,
		Level:      res.Level(),
	}, nil
}

func formatContrast(c contrastCheck) string {
	var s strings.Builder
	if c.Pair != "" {
		s.WriteString(titleStyle.Render(c.Pair) + "\n")
	}
	fmt.Fprintf(&s, "  %s %s on %s %s\n", swatch(c.Foreground), c.Hex[0], swatch(c.Background), c.Hex[1])
	fmt.Fprintf(&s, "  ratio %.2f:1  level %s\n", c.Result.Ratio, c.Level)
	fmt.Fprintf(&s, "  AA %s  AAA %s  AA large %s  AAA large %s\n",
		passFail(c.Result.AA), passFail(c.Result.AAA), passFail(c.Result.AALarge), passFail(c.Result.AAALarge))

	return s.String()
}
