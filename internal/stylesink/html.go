package stylesink

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/conneroisu/branddna/internal/artifacts"
	"github.com/conneroisu/branddna/internal/validation"
)

// StyleElementID identifies the injected style element.
const StyleElementID = "brand-dna-variables"

// HTMLDocument injects the CSS into an HTML file as
// <style id="brand-dna-variables"> inside <head>.
type HTMLDocument struct {
	path  string
	mutex sync.Mutex
}

// NewHTMLDocument creates a sink for the HTML file at path. The file must
// exist when Apply or Remove is called.
func NewHTMLDocument(path string) (*HTMLDocument, error) {
	if err := validation.ValidatePath(path); err != nil {
		return nil, err
	}
	if err := validation.ValidateFileExtension(path, []string{".html", ".htm"}); err != nil {
		return nil, err
	}

	return &HTMLDocument{path: filepath.Clean(path)}, nil
}

// Path returns the document path.
func (d *HTMLDocument) Path() string {
	return d.path
}

// Apply replaces the style element's content with css, inserting the
// element at the end of <head> if it is missing.
func (d *HTMLDocument) Apply(css string) error {
	if err := checkCSS(css); err != nil {
		return err
	}

	return d.rewrite(func(doc string) (string, error) {
		return InjectStyle(doc, css)
	})
}

// Remove deletes the style element if present.
func (d *HTMLDocument) Remove() error {
	return d.rewrite(RemoveStyle)
}

func (d *HTMLDocument) rewrite(edit func(string) (string, error)) error {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	data, err := os.ReadFile(d.path)
	if err != nil {
		return fmt.Errorf("read %s: %w", d.path, err)
	}

	out, err := edit(string(data))
	if err != nil {
		return fmt.Errorf("edit %s: %w", d.path, err)
	}
	if out == string(data) {
		return nil
	}

	return artifacts.WriteFileAtomic(d.path, []byte(out))
}

// InjectStyle returns doc with the brand style element set to css.
func InjectStyle(doc, css string) (string, error) {
	if err := checkCSS(css); err != nil {
		return "", err
	}

	root, err := html.Parse(strings.NewReader(doc))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	style := findStyle(root)
	if style == nil {
		head := findElement(root, atom.Head)
		if head == nil {
			return "", fmt.Errorf("document has no head element")
		}
		style = &html.Node{
			Type:     html.ElementNode,
			DataAtom: atom.Style,
			Data:     "style",
			Attr:     []html.Attribute{{Key: "id", Val: StyleElementID}},
		}
		head.AppendChild(style)
	}

	for c := style.FirstChild; c != nil; c = style.FirstChild {
		style.RemoveChild(c)
	}
	style.AppendChild(&html.Node{Type: html.TextNode, Data: css})

	return render(root)
}

// RemoveStyle returns doc without the brand style element. A document
// without one is returned unchanged.
func RemoveStyle(doc string) (string, error) {
	root, err := html.Parse(strings.NewReader(doc))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	style := findStyle(root)
	if style == nil {
		return doc, nil
	}
	style.Parent.RemoveChild(style)

	return render(root)
}

// ExtractStyle returns the content of the brand style element.
func ExtractStyle(doc string) (string, bool) {
	root, err := html.Parse(strings.NewReader(doc))
	if err != nil {
		return "", false
	}

	style := findStyle(root)
	if style == nil {
		return "", false
	}

	var sb strings.Builder
	for c := style.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
		}
	}

	return sb.String(), true
}

func render(root *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, root); err != nil {
		return "", fmt.Errorf("render html: %w", err)
	}

	return buf.String(), nil
}

func findElement(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, a); found != nil {
			return found
		}
	}

	return nil
}

func findStyle(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == atom.Style {
		for _, attr := range n.Attr {
			if attr.Key == "id" && attr.Val == StyleElementID {
				return n
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findStyle(c); found != nil {
			return found
		}
	}

	return nil
}
