package serializer

import (
	"regexp"
	"strconv"
	"strings"
)

// literal is a JavaScript value with deterministic key order.
type literal interface {
	write(sb *strings.Builder, depth int)
}

type (
	jsObject []jsField
	jsArray  []literal
	jsString string
	jsNumber float64
)

type jsField struct {
	key   string
	value literal
}

var identifier = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

func indent(sb *strings.Builder, depth int) {
	sb.WriteString(strings.Repeat("  ", depth))
}

func (o jsObject) write(sb *strings.Builder, depth int) {
	if len(o) == 0 {
		sb.WriteString("{}")

		return
	}
	sb.WriteString("{\n")
	for _, f := range o {
		indent(sb, depth+1)
		sb.WriteString(jsKey(f.key))
		sb.WriteString(": ")
		f.value.write(sb, depth+1)
		sb.WriteString(",\n")
	}
	indent(sb, depth)
	sb.WriteString("}")
}

// Arrays of scalars stay on one line.
func (a jsArray) write(sb *strings.Builder, depth int) {
	sb.WriteString("[")
	for i, v := range a {
		if i > 0 {
			sb.WriteString(", ")
		}
		v.write(sb, depth)
	}
	sb.WriteString("]")
}

func (s jsString) write(sb *strings.Builder, _ int) {
	sb.WriteString(jsQuote(string(s)))
}

func (n jsNumber) write(sb *strings.Builder, _ int) {
	sb.WriteString(strconv.FormatFloat(float64(n), 'f', -1, 64))
}

func jsKey(k string) string {
	if identifier.MatchString(k) {
		return k
	}

	return jsQuote(k)
}

var jsEscaper = strings.NewReplacer(
	`\`, `\\`,
	`'`, `\'`,
	"\n", `\n`,
	"\r", `\r`,
	"\u2028", `\u2028`,
	"\u2029", `\u2029`,
	"</", `<\/`,
)

func jsQuote(s string) string {
	return "'" + jsEscaper.Replace(s) + "'"
}

func renderLiteral(v literal) string {
	var sb strings.Builder
	v.write(&sb, 0)

	return sb.String()
}

// tokenObject renders a token map in canonical key order.
func tokenObject(m map[string]string, keys []string) jsObject {
	obj := make(jsObject, 0, len(keys))
	for _, k := range keys {
		obj = append(obj, jsField{k, jsString(m[k])})
	}

	return obj
}

func stringArray(values []string) jsArray {
	arr := make(jsArray, 0, len(values))
	for _, v := range values {
		arr = append(arr, jsString(v))
	}

	return arr
}
