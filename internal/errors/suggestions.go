package errors

import (
	"fmt"
	"strings"
)

// ErrorSuggestion represents a suggestion for fixing an error
type ErrorSuggestion struct {
	Title       string
	Description string
	Command     string
	Example     string
}

var codeSuggestions = map[Code][]ErrorSuggestion{
	CodeInvalidJSON: {
		{
			Title:       "Check the JSON syntax",
			Description: "The input could not be parsed; look for trailing commas or unquoted keys",
			Command:     "branddna validate brand.json",
		},
	},
	CodeInvalidStructure: {
		{
			Title:       "Provide at least one brand section",
			Description: "A brand file must be an object containing metadata, colors or typography",
			Example:     `{"metadata": {"name": "Acme"}}`,
		},
	},
	CodeRequiredField: {
		{
			Title:       "Fill in the required field",
			Description: "Brand name and font family names cannot be empty",
		},
	},
	CodeInvalidColor: {
		{
			Title:       "Use the HSL triple format",
			Description: "Colors are written as hue (0-360), saturation and lightness percentages",
			Example:     `"primary": "222.2 47.4% 11.2%"`,
		},
		{
			Title:       "Convert from hex",
			Description: "Convert an existing hex color to the expected format",
			Command:     "branddna contrast --hex '#1e293b' '#ffffff'",
		},
	},
	CodeInsufficientContrast: {
		{
			Title:       "Increase the lightness difference",
			Description: "Text needs a contrast ratio of at least 4.5:1 against its background",
			Command:     "branddna contrast <foreground> <background>",
		},
	},
	CodeInvalidArrayLength: {
		{
			Title:       "Provide exactly five chart colors",
			Description: "Data visualizations use a fixed five color sequence",
		},
	},
	CodeMaxArrayLength: {
		{
			Title:       "Trim the list",
			Description: "Keep brand values to five and tone of voice traits to seven",
		},
	},
	CodeMaxLength: {
		{
			Title:       "Shorten the text",
			Description: "Purpose and vision are limited to 200 characters, mission to 300",
		},
	},
	CodeInvalidValue: {
		{
			Title:       "Remove blank entries",
			Description: "Lists must not contain empty or whitespace-only items",
		},
	},
	CodeInvalidFile: {
		{
			Title:       "Import a JSON file",
			Description: "Only .json files exported by branddna can be imported",
			Command:     "branddna export --format json",
		},
	},
	CodeFetchFailed: {
		{
			Title:       "Check the URL",
			Description: "The remote server must answer a GET request with a 2xx status",
			Command:     "curl -I <url>",
		},
	},
	CodeInvalidLink: {
		{
			Title:       "Copy the whole link",
			Description: "Shareable links are long; make sure the token was not truncated",
		},
	},
}

// SuggestionsFor returns the fix suggestions for a diagnostic code.
func SuggestionsFor(code Code) []ErrorSuggestion {
	return codeSuggestions[code]
}

// SuggestionsForErrors returns the suggestions for every distinct code in
// fe, in code order.
func SuggestionsForErrors(fe FieldErrors) []ErrorSuggestion {
	var out []ErrorSuggestion
	for _, code := range fe.Codes() {
		out = append(out, SuggestionsFor(code)...)
	}

	return out
}

// FormatSuggestions renders suggestions for terminal output.
func FormatSuggestions(suggestions []ErrorSuggestion) string {
	if len(suggestions) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("Suggestions:\n")
	for _, s := range suggestions {
		fmt.Fprintf(&b, "  • %s", s.Title)
		if s.Description != "" {
			fmt.Fprintf(&b, ": %s", s.Description)
		}
		b.WriteString("\n")
		if s.Command != "" {
			fmt.Fprintf(&b, "    $ %s\n", s.Command)
		}
		if s.Example != "" {
			fmt.Fprintf(&b, "    e.g. %s\n", s.Example)
		}
	}

	return b.String()
}
