// Package stylesink applies generated brand CSS to a host: memory, a CSS
// file, an HTML document or several of these at once.
package stylesink

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/conneroisu/branddna/internal/errors"
)

// StyleSink receives generated CSS. Apply replaces whatever was applied
// before; Remove withdraws it. Both are idempotent.
type StyleSink interface {
	Apply(css string) error
	Remove() error
}

// ErrUnsafeCSS is returned for CSS that would escape a style element.
var ErrUnsafeCSS = stderrors.New("css contains a closing style tag")

func checkCSS(css string) error {
	if strings.Contains(strings.ToLower(css), "</style") {
		return ErrUnsafeCSS
	}

	return nil
}

// Multi fans out to several sinks.
type Multi struct {
	sinks []StyleSink
}

// NewMulti creates a fan-out sink. Nil sinks are skipped.
func NewMulti(sinks ...StyleSink) *Multi {
	m := &Multi{}
	for _, s := range sinks {
		if s != nil {
			m.sinks = append(m.sinks, s)
		}
	}

	return m
}

// Add appends a sink.
func (m *Multi) Add(s StyleSink) {
	if s != nil {
		m.sinks = append(m.sinks, s)
	}
}

// Len returns the number of sinks.
func (m *Multi) Len() int {
	return len(m.sinks)
}

// Apply applies css to every sink, even after a failure, and joins the
// errors.
func (m *Multi) Apply(css string) error {
	var errs []error
	for i, s := range m.sinks {
		if err := s.Apply(css); err != nil {
			errs = append(errs, fmt.Errorf("sink %d: %w", i, err))
		}
	}

	return errors.CombineErrors(errs...)
}

// Remove removes from every sink and joins the errors.
func (m *Multi) Remove() error {
	var errs []error
	for i, s := range m.sinks {
		if err := s.Remove(); err != nil {
			errs = append(errs, fmt.Errorf("sink %d: %w", i, err))
		}
	}

	return errors.CombineErrors(errs...)
}
