package server

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/conneroisu/branddna/internal/brand"
	"github.com/conneroisu/branddna/internal/errors"
	"github.com/conneroisu/branddna/internal/serializer"
	"github.com/conneroisu/branddna/internal/stylesink"
)

// PageData is everything the preview page renders.
type PageData struct {
	Brand    brand.BrandDNA
	CSS      string
	Errors   errors.FieldErrors
	Warnings errors.FieldErrors
	// Prefix is the custom property prefix used for font variables.
	Prefix string
	// DarkClass is toggled on the root element by the mode button.
	DarkClass string
}

// swatchSlots are the slots rendered as swatches, in order.
var swatchSlots = []brand.Slot{
	brand.SlotPrimary,
	brand.SlotSecondary,
	brand.SlotAccent,
	brand.SlotBackground,
	brand.SlotForeground,
	brand.SlotMuted,
	brand.SlotDestructive,
	brand.SlotBorder,
}

var fontRoles = []brand.FontRole{brand.FontHeading, brand.FontBody, brand.FontMono}

// PreviewPage renders the live preview document.
func PreviewPage(data PageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		b := data.Brand
		var sb strings.Builder

		sb.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n<meta charset=\"utf-8\">\n")
		sb.WriteString("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">\n")
		fmt.Fprintf(&sb, "<title>%s · Brand DNA</title>\n", templ.EscapeString(b.Metadata.Name))
		fmt.Fprintf(&sb, "<style id=\"%s\">\n%s</style>\n", stylesink.StyleElementID, styleText(data.CSS))
		sb.WriteString(chrome(data.Prefix))
		sb.WriteString("</head>\n<body>\n<main>\n")

		fmt.Fprintf(&sb, "<header><h1>%s</h1>", templ.EscapeString(b.Metadata.Name))
		if b.Metadata.Tagline != "" {
			fmt.Fprintf(&sb, "<p class=\"tagline\">%s</p>", templ.EscapeString(b.Metadata.Tagline))
		}
		darkClass := data.DarkClass
		if darkClass == "" {
			darkClass = serializer.DefaultDarkClass
		}
		fmt.Fprintf(&sb, "<button type=\"button\" id=\"mode\" data-dark-class=\"%s\">Toggle dark mode</button></header>\n",
			templ.EscapeString(darkClass))

		writeDiagnostics(&sb, "errors", "Errors", data.Errors)
		writeDiagnostics(&sb, "warnings", "Warnings", data.Warnings)

		sb.WriteString("<section><h2>Colors</h2><div class=\"swatches\">\n")
		for _, slot := range swatchSlots {
			fmt.Fprintf(&sb,
				"<div class=\"swatch\"><span style=\"background: hsl(var(--%s))\"></span><code>%s</code></div>\n",
				string(slot), templ.EscapeString(string(slot)))
		}
		sb.WriteString("</div></section>\n")

		sb.WriteString("<section><h2>Typography</h2>\n")
		for _, role := range fontRoles {
			font, _ := b.Typography.Font(role)
			fmt.Fprintf(&sb,
				"<p class=\"font-%s\"><strong>%s</strong> %s</p>\n",
				string(role), templ.EscapeString(string(role)), templ.EscapeString(font.Name))
		}
		sb.WriteString("</section>\n")

		if s := b.Strategy; s != nil {
			sb.WriteString("<section><h2>Strategy</h2>\n")
			for _, item := range [][2]string{{"Purpose", s.Purpose}, {"Vision", s.Vision}, {"Mission", s.Mission}} {
				if item[1] == "" {
					continue
				}
				fmt.Fprintf(&sb, "<h3>%s</h3><p>%s</p>\n", item[0], templ.EscapeString(item[1]))
			}
			if len(s.Values) > 0 {
				sb.WriteString("<ul class=\"values\">\n")
				for _, v := range s.Values {
					fmt.Fprintf(&sb, "<li><strong>%s %s</strong> %s</li>\n",
						templ.EscapeString(v.Icon), templ.EscapeString(v.Name), templ.EscapeString(v.Description))
				}
				sb.WriteString("</ul>\n")
			}
			sb.WriteString("</section>\n")
		}

		sb.WriteString("</main>\n")
		sb.WriteString(liveScript)
		sb.WriteString("</body>\n</html>\n")

		_, err := io.WriteString(w, sb.String())

		return err
	})
}

func writeDiagnostics(sb *strings.Builder, class, title string, fe errors.FieldErrors) {
	if len(fe) == 0 {
		return
	}
	fmt.Fprintf(sb, "<section class=\"%s\"><h2>%s</h2><ul>\n", class, title)
	for _, e := range fe {
		fmt.Fprintf(sb, "<li><code>%s</code> %s</li>\n",
			templ.EscapeString(e.Field), templ.EscapeString(e.Message))
	}
	sb.WriteString("</ul></section>\n")
}

func chrome(prefix string) string {
	if prefix == "" {
		prefix = serializer.DefaultPrefix
	}

	return strings.ReplaceAll(pageChrome, "--font-", "--"+prefix+"-font-")
}

// styleText keeps generated CSS from closing the style element.
func styleText(css string) string {
	return strings.ReplaceAll(css, "</", "<\\/")
}

const pageChrome = `<style>
body { margin: 0; font-family: var(--font-body, system-ui), sans-serif; background: hsl(var(--background)); color: hsl(var(--foreground)); }
main { max-width: 960px; margin: 0 auto; padding: 2rem; }
h1, h2, h3 { font-family: var(--font-heading, system-ui), sans-serif; }
code, .font-mono { font-family: var(--font-mono, monospace), monospace; }
.swatches { display: grid; grid-template-columns: repeat(auto-fill, minmax(120px, 1fr)); gap: 1rem; }
.swatch span { display: block; height: 64px; border-radius: var(--radius, 0.5rem); border: 1px solid hsl(var(--border)); }
.errors { color: hsl(var(--destructive)); }
button { background: hsl(var(--primary)); color: hsl(var(--background)); border: 0; padding: 0.5rem 1rem; border-radius: var(--radius, 0.5rem); }
</style>
`

const liveScript = `<script>
(function () {
  var id = "` + stylesink.StyleElementID + `";
  var mode = document.getElementById("mode");
  mode.addEventListener("click", function () {
    document.documentElement.classList.toggle(mode.dataset.darkClass);
  });
  function style() {
    var el = document.getElementById(id);
    if (!el) {
      el = document.createElement("style");
      el.id = id;
      document.head.insertBefore(el, document.head.firstChild);
    }
    return el;
  }
  function connect() {
    var proto = location.protocol === "https:" ? "wss://" : "ws://";
    var ws = new WebSocket(proto + location.host + "/ws");
    ws.onmessage = function (ev) {
      var msg = JSON.parse(ev.data);
      if (msg.type === "css") {
        style().textContent = msg.css;
      } else if (msg.type === "remove") {
        var el = document.getElementById(id);
        if (el) { el.remove(); }
      } else if (msg.type === "error") {
        console.warn("brand rejected", msg.errors);
      }
    };
    ws.onclose = function () { setTimeout(connect, 1000); };
  }
  connect();
})();
</script>
`
