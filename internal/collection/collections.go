package collection

import (
	"sort"

	derrors "github.com/sage-code/ara-docs/internal/foundation/errors"
)

// DocsCollection is the name of the documentation pages collection.
const DocsCollection = "docs"

// Type distinguishes Markdown content collections from data collections.
type Type string

const (
	TypeContent Type = "content"
	TypeData    Type = "data"
)

// Collection binds a name to the schema its entries must satisfy.
type Collection struct {
	Name   string
	Type   Type
	Schema *Schema
}

// Collections maps collection names to their definitions.
type Collections map[string]Collection

// Default returns the collections of the documentation site: docs bound to
// DocsSchema.
func Default() Collections {
	c := Collections{}
	c.Define(DocsCollection, TypeContent, DocsSchema())
	return c
}

// Define binds name to schema, replacing any previous binding.
func (c Collections) Define(name string, typ Type, schema *Schema) {
	if typ == "" {
		typ = TypeContent
	}
	c[name] = Collection{Name: name, Type: typ, Schema: schema}
}

// Lookup returns the collection called name.
func (c Collections) Lookup(name string) (Collection, bool) {
	col, ok := c[name]
	return col, ok
}

// Names returns the collection names, sorted.
func (c Collections) Names() []string {
	names := make([]string, 0, len(c))
	for n := range c {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ValidatePage validates frontmatter against the named collection's schema.
// An unknown collection is a not_found error; schema violations are returned
// as the slice, with a nil error.
func (c Collections) ValidatePage(name string, frontmatter map[string]any) ([]FieldError, error) {
	col, ok := c.Lookup(name)
	if !ok || col.Schema == nil {
		return nil, derrors.NewError(derrors.CategoryNotFound, "collection not defined").
			WithContext("collection", name).
			Build()
	}
	return col.Schema.Validate(frontmatter), nil
}
