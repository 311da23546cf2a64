package serializer

import (
	"fmt"
	"sort"
	"sync"

	"github.com/conneroisu/branddna/internal/brand"
	"github.com/conneroisu/branddna/internal/errors"
)

// Built-in format names.
const (
	FormatJSON     = "json"
	FormatCSS      = "css"
	FormatTailwind = "tailwind"
	FormatTS       = "ts"
	FormatSCSS     = "scss"
	FormatLink     = "link"
)

// RenderFunc renders a brand into an artifact.
type RenderFunc func(b brand.BrandDNA) ([]byte, error)

// Format describes a named artifact.
type Format struct {
	Name      string
	FileName  string
	Extension string
	MediaType string
	Render    RenderFunc
}

// Registry holds the known formats. It is safe for concurrent use.
type Registry struct {
	formats map[string]Format
	mutex   sync.RWMutex
}

// NewRegistry creates a registry holding formats.
func NewRegistry(formats ...Format) (*Registry, error) {
	r := &Registry{formats: make(map[string]Format, len(formats))}
	for _, f := range formats {
		if err := r.Register(f); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// DefaultRegistry returns a registry with every built-in format. CSS is
// rendered with opts.
func DefaultRegistry(opts CSSOptions) *Registry {
	r, err := NewRegistry(BuiltinFormats(opts)...)
	if err != nil {
		panic(err)
	}

	return r
}

// BuiltinFormats returns the built-in formats.
func BuiltinFormats(opts CSSOptions) []Format {
	return []Format{
		{
			Name:      FormatJSON,
			FileName:  "brand.json",
			Extension: ".json",
			MediaType: "application/json",
			Render: func(b brand.BrandDNA) ([]byte, error) {
				return ToJSON(b, true)
			},
		},
		{
			Name:      FormatCSS,
			FileName:  "brand.css",
			Extension: ".css",
			MediaType: "text/css; charset=utf-8",
			Render: func(b brand.BrandDNA) ([]byte, error) {
				return []byte(ToCSS(b, opts)), nil
			},
		},
		{
			Name:      FormatTailwind,
			FileName:  "tailwind.brand.js",
			Extension: ".js",
			MediaType: "text/javascript; charset=utf-8",
			Render: func(b brand.BrandDNA) ([]byte, error) {
				return []byte(ToBuildConfig(b)), nil
			},
		},
		{
			Name:      FormatTS,
			FileName:  "brand.ts",
			Extension: ".ts",
			MediaType: "text/typescript; charset=utf-8",
			Render: func(b brand.BrandDNA) ([]byte, error) {
				return []byte(ToTypedModule(b)), nil
			},
		},
		{
			Name:      FormatSCSS,
			FileName:  "_brand.scss",
			Extension: ".scss",
			MediaType: "text/x-scss; charset=utf-8",
			Render: func(b brand.BrandDNA) ([]byte, error) {
				return []byte(ToSCSS(b)), nil
			},
		},
		{
			Name:      FormatLink,
			FileName:  "brand.link.txt",
			Extension: ".txt",
			MediaType: "text/plain; charset=utf-8",
			Render: func(b brand.BrandDNA) ([]byte, error) {
				token, err := ToShareableLink(b)
				if err != nil {
					return nil, err
				}

				return []byte(token + "\n"), nil
			},
		},
	}
}

// Register adds f. Names must be unique.
func (r *Registry) Register(f Format) error {
	if f.Name == "" {
		return fmt.Errorf("format name cannot be empty")
	}
	if f.Render == nil {
		return fmt.Errorf("format %s has no renderer", f.Name)
	}
	if f.FileName == "" {
		f.FileName = "brand" + f.Extension
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.formats[f.Name]; exists {
		return fmt.Errorf("format %s is already registered", f.Name)
	}
	r.formats[f.Name] = f

	return nil
}

// Get returns the format called name.
func (r *Registry) Get(name string) (Format, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	f, ok := r.formats[name]
	if !ok {
		return Format{}, errors.ErrFormatNotFound(name)
	}

	return f, nil
}

// List returns every format sorted by name.
func (r *Registry) List() []Format {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	out := make([]Format, 0, len(r.formats))
	for _, f := range r.formats {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	return out
}

// Names returns the sorted format names.
func (r *Registry) Names() []string {
	formats := r.List()
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = f.Name
	}

	return names
}

// Render renders b in the named format.
func (r *Registry) Render(name string, b brand.BrandDNA) ([]byte, error) {
	f, err := r.Get(name)
	if err != nil {
		return nil, err
	}

	data, err := f.Render(b)
	if err != nil {
		return nil, errors.WrapInternal(err, errors.ErrCodeExportFailed, fmt.Sprintf("render %s", name))
	}

	return data, nil
}
