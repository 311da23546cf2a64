// Package templates provides the catalog of Brand DNA presets used to seed
// new brands and to reset existing ones.
//
// The catalog is immutable. Every lookup hands out a fresh deep copy, so
// callers may mutate what they receive.
package templates

import (
	"sort"
	"sync"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/conneroisu/branddna/internal/brand"
	"github.com/conneroisu/branddna/internal/errors"
)

// DefaultID is the identifier of the fallback template.
const DefaultID = "default"

// Template is a named preset.
type Template struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Category    string `json:"category" yaml:"category"`

	build func() brand.BrandDNA
}

// New creates a template whose brand is produced by build.
func New(id, name, description, category string, build func() brand.BrandDNA) Template {
	return Template{
		ID:          id,
		Name:        name,
		Description: description,
		Category:    category,
		build:       build,
	}
}

// Brand returns a fresh copy of the template's brand with zero timestamps.
func (t Template) Brand() brand.BrandDNA {
	if t.build == nil {
		return brand.Default()
	}

	return t.build().Clone()
}

// Registry is an immutable template catalog.
type Registry struct {
	templates []Template
	byID      map[string]Template
}

// NewRegistry creates a registry. Later templates with a duplicate ID
// replace earlier ones.
func NewRegistry(templates ...Template) *Registry {
	r := &Registry{byID: make(map[string]Template, len(templates))}
	for _, t := range templates {
		if _, exists := r.byID[t.ID]; !exists {
			r.templates = append(r.templates, t)
		} else {
			for i := range r.templates {
				if r.templates[i].ID == t.ID {
					r.templates[i] = t
				}
			}
		}
		r.byID[t.ID] = t
	}

	return r
}

var (
	builtinOnce     sync.Once
	builtinRegistry *Registry
)

// Builtin returns the built-in catalog. It is constructed on first use.
func Builtin() *Registry {
	builtinOnce.Do(func() {
		builtinRegistry = NewRegistry(builtinTemplates()...)
	})

	return builtinRegistry
}

// List returns every template in registration order.
func (r *Registry) List() []Template {
	out := make([]Template, len(r.templates))
	copy(out, r.templates)

	return out
}

// GetByID returns the template with id.
func (r *Registry) GetByID(id string) (Template, error) {
	t, ok := r.byID[id]
	if !ok {
		return Template{}, errors.ErrTemplateNotFound(id)
	}

	return t, nil
}

// ByCategory returns the templates in category, in registration order.
func (r *Registry) ByCategory(category string) []Template {
	var out []Template
	for _, t := range r.templates {
		if t.Category == category {
			out = append(out, t)
		}
	}

	return out
}

// Categories returns the distinct categories, sorted.
func (r *Registry) Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, t := range r.templates {
		if !seen[t.Category] {
			seen[t.Category] = true
			out = append(out, t.Category)
		}
	}
	sort.Strings(out)

	return out
}

// Instantiate returns a fresh brand built from template id with both
// timestamps set to now.
func (r *Registry) Instantiate(id string, now time.Time) (brand.BrandDNA, error) {
	t, err := r.GetByID(id)
	if err != nil {
		return brand.BrandDNA{}, err
	}

	b := t.Brand()
	b.Metadata.CreatedAt = brand.Timestamp(now)
	b.Metadata.UpdatedAt = brand.Timestamp(now)

	return b, nil
}

// CategoryTitle returns a display title for category.
func CategoryTitle(category string) string {
	return cases.Title(language.English).String(category)
}
