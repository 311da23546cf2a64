package serializer

import (
	"fmt"
	"strings"

	"github.com/conneroisu/branddna/internal/brand"
)

// CSS defaults.
const (
	DefaultSelector  = ".brand-preview-scope"
	DefaultPrefix    = "brand"
	DefaultDarkClass = "dark"
)

// aliasSlots get an unprefixed custom property next to the prefixed one so
// that shadcn-style host stylesheets pick up the brand.
var aliasSlots = []brand.Slot{
	brand.SlotBackground,
	brand.SlotForeground,
	brand.SlotPrimary,
	brand.SlotSecondary,
	brand.SlotAccent,
	brand.SlotDestructive,
	brand.SlotMuted,
	brand.SlotCard,
	brand.SlotBorder,
	brand.SlotInput,
	brand.SlotRing,
}

// radiusAliasTokens are tried in order for the unprefixed --radius alias.
var radiusAliasTokens = []string{"lg", "md"}

var genericFamilies = map[string]bool{
	"serif":         true,
	"sans-serif":    true,
	"monospace":     true,
	"cursive":       true,
	"fantasy":       true,
	"system-ui":     true,
	"ui-serif":      true,
	"ui-sans-serif": true,
	"ui-monospace":  true,
	"ui-rounded":    true,
	"emoji":         true,
	"math":          true,
	"fangsong":      true,
	"inherit":       true,
}

// CSSOptions controls the selectors and variable names of ToCSS. Zero
// fields take the defaults.
type CSSOptions struct {
	Selector    string `json:"selector" yaml:"selector"`
	Prefix      string `json:"prefix" yaml:"prefix"`
	DarkClass   string `json:"dark_class" yaml:"dark_class"`
	ImportFonts bool   `json:"import_fonts" yaml:"import_fonts"`
}

// DefaultCSSOptions returns the preview-scope options.
func DefaultCSSOptions() CSSOptions {
	return CSSOptions{
		Selector:  DefaultSelector,
		Prefix:    DefaultPrefix,
		DarkClass: DefaultDarkClass,
	}
}

func (o CSSOptions) withDefaults() CSSOptions {
	if o.Selector == "" {
		o.Selector = DefaultSelector
	}
	if o.Prefix == "" {
		o.Prefix = DefaultPrefix
	}
	if o.DarkClass == "" {
		o.DarkClass = DefaultDarkClass
	}

	return o
}

// DarkSelector is the selector of the dark block.
func (o CSSOptions) DarkSelector() string {
	o = o.withDefaults()

	return o.Selector + "." + o.DarkClass
}

// cssBlock collects declarations for one rule.
type cssBlock struct {
	prefix string
	decls  [][2]string
}

func (c *cssBlock) add(name, value string) {
	if value == "" {
		return
	}
	c.decls = append(c.decls, [2]string{name, value})
}

func (c *cssBlock) addPrefixed(name, value string) {
	c.add(c.prefix+"-"+name, value)
}

func (c *cssBlock) writeTo(sb *strings.Builder, selector string) {
	sb.WriteString(selector)
	sb.WriteString(" {\n")
	for _, d := range c.decls {
		fmt.Fprintf(sb, "  --%s: %s;\n", d[0], d[1])
	}
	sb.WriteString("}\n")
}

// ToCSS renders two rule blocks: the light block carries every token and
// the dark block layers only the palette overrides.
func ToCSS(b brand.BrandDNA, opts CSSOptions) string {
	opts = opts.withDefaults()

	var sb strings.Builder
	if opts.ImportFonts {
		writeFontImports(&sb, b.Typography)
	}

	light := &cssBlock{prefix: opts.Prefix}
	writePalette(light, b.Colors.Light)
	for i, c := range b.Colors.Chart {
		light.addPrefixed(fmt.Sprintf("chart-%d", i+1), c)
	}
	for _, role := range brand.FontRoles {
		font, _ := b.Typography.Font(role)
		light.addPrefixed("font-"+string(role), FontStack(font))
	}
	for _, k := range brand.OrderedKeys(b.Typography.Scale, brand.ScaleTokens) {
		light.addPrefixed("font-size-"+k, b.Typography.Scale[k])
	}
	lh := b.Typography.LineHeight
	light.addPrefixed("line-height-tight", lh.Tight)
	light.addPrefixed("line-height-normal", lh.Normal)
	light.addPrefixed("line-height-relaxed", lh.Relaxed)
	ls := b.Typography.LetterSpacing
	light.addPrefixed("letter-spacing-tight", ls.Tight)
	light.addPrefixed("letter-spacing-normal", ls.Normal)
	light.addPrefixed("letter-spacing-wide", ls.Wide)
	for _, k := range brand.OrderedKeys(b.Spacing.Radius, brand.RadiusTokens) {
		light.addPrefixed("radius-"+k, b.Spacing.Radius[k])
	}
	for _, k := range brand.OrderedKeys(b.Spacing.Spacing, brand.SpacingTokens) {
		light.addPrefixed("spacing-"+k, b.Spacing.Spacing[k])
	}
	writeAliases(light, b.Colors.Light)
	light.add("radius", RadiusAlias(b.Spacing))
	light.writeTo(&sb, opts.Selector)

	sb.WriteString("\n")

	dark := &cssBlock{prefix: opts.Prefix}
	writePalette(dark, b.Colors.Dark)
	writeAliases(dark, b.Colors.Dark)
	dark.writeTo(&sb, opts.DarkSelector())

	return sb.String()
}

func writePalette(c *cssBlock, p brand.ColorPalette) {
	for _, s := range brand.Slots {
		v, _ := p.Get(s)
		c.addPrefixed(string(s), v)
	}
}

func writeAliases(c *cssBlock, p brand.ColorPalette) {
	for _, s := range aliasSlots {
		v, _ := p.Get(s)
		c.add(string(s), v)
	}
}

func writeFontImports(sb *strings.Builder, t brand.Typography) {
	seen := make(map[string]bool)
	for _, role := range brand.FontRoles {
		font, _ := t.Font(role)
		if font.URL == "" || seen[font.URL] {
			continue
		}
		seen[font.URL] = true
		fmt.Fprintf(sb, "@import url(%s);\n", cssString(font.URL))
	}
	if len(seen) > 0 {
		sb.WriteString("\n")
	}
}

// RadiusAlias returns the value used for the unprefixed --radius property.
func RadiusAlias(s brand.Spacing) string {
	for _, k := range radiusAliasTokens {
		if v := s.Radius[k]; v != "" {
			return v
		}
	}

	return ""
}

// FontStack renders a font-family value. Family names are quoted unless
// they are CSS generic families.
func FontStack(f brand.FontFamily) string {
	stack := f.Stack()
	parts := make([]string, 0, len(stack))
	for _, name := range stack {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if genericFamilies[strings.ToLower(name)] {
			parts = append(parts, name)

			continue
		}
		parts = append(parts, cssString(name))
	}

	return strings.Join(parts, ", ")
}

func cssString(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\a `)

	return `"` + r.Replace(s) + `"`
}
