// Package templates holds the registry of named progression templates.
// A Catalog is populated once at startup and never mutated, so concurrent
// lookups need no locking.
package templates

import (
	"fmt"

	"github.com/ewilliams-labs/setcurve/internal/core/domain"
	"github.com/ewilliams-labs/setcurve/internal/core/ports"
)

// Catalog maps template names to validated templates.
type Catalog struct {
	byName map[string]domain.Template
	order  []string
}

// compile-time interface assertion
var _ ports.TemplateCatalog = (*Catalog)(nil)

// NewCatalog validates every template and indexes it by name. Duplicate
// names are rejected.
func NewCatalog(ts ...domain.Template) (*Catalog, error) {
	c := &Catalog{
		byName: make(map[string]domain.Template, len(ts)),
		order:  make([]string, 0, len(ts)),
	}
	for _, t := range ts {
		if err := t.Validate(); err != nil {
			return nil, fmt.Errorf("templates: %w", err)
		}
		if _, dup := c.byName[t.Name]; dup {
			return nil, fmt.Errorf("templates: %w: duplicate name %q", domain.ErrInvalidTemplate, t.Name)
		}
		c.byName[t.Name] = clone(t)
		c.order = append(c.order, t.Name)
	}
	return c, nil
}

// Default returns a catalog of the built-in templates.
func Default() *Catalog {
	c, err := NewCatalog(Builtin()...)
	if err != nil {
		panic(err)
	}
	return c
}

// Lookup resolves name to its template.
func (c *Catalog) Lookup(name string) (domain.Template, error) {
	t, ok := c.byName[name]
	if !ok {
		return domain.Template{}, domain.UnknownTemplateError{Name: name}
	}
	return clone(t), nil
}

// List returns the template summaries in registration order.
func (c *Catalog) List() []domain.TemplateSummary {
	out := make([]domain.TemplateSummary, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, c.byName[name].Summary())
	}
	return out
}

// Len returns the number of registered templates.
func (c *Catalog) Len() int {
	return len(c.order)
}

func clone(t domain.Template) domain.Template {
	t.Curve = append([]domain.ControlPoint(nil), t.Curve...)
	return t
}
