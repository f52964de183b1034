// Package collection declares content collections and the frontmatter schemas
// their pages must satisfy.
//
// The docs collection is bound to DocsSchema. A page whose frontmatter fails
// its collection schema is rejected by the check stage.
package collection

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Kind is the expected type of a frontmatter value.
type Kind string

const (
	KindString Kind = "string"
	KindBool   Kind = "boolean"
	KindInt    Kind = "integer"
	KindNumber Kind = "number"
	KindDate   Kind = "date"
	KindEnum   Kind = "enum"
	KindObject Kind = "object"
	KindArray  Kind = "array"
	KindUnion  Kind = "union"
	KindAny    Kind = "any"
)

// Field describes one frontmatter key.
type Field struct {
	Name     string
	Kind     Kind
	Required bool
	// Enum lists the accepted values for KindEnum.
	Enum []string
	// Fields are the nested keys of a KindObject value.
	Fields []Field
	// Items describes array elements; nil accepts anything.
	Items *Field
	// Variants are the alternatives of a KindUnion; the first match wins.
	Variants []Field
	// Min and Max bound KindInt values when non-nil.
	Min, Max *int
	// Default is reported by Describe; validation does not inject it.
	Default any
}

// FieldError is a single schema violation.
type FieldError struct {
	Path    string
	Message string
}

func (e FieldError) Error() string {
	if e.Path == "" {
		return e.Message
	}
	return e.Path + ": " + e.Message
}

// Schema is an ordered set of top-level fields. Keys not declared by the
// schema pass through unchecked.
type Schema struct {
	Name   string
	Fields []Field
}

// Field returns the top-level field called name.
func (s *Schema) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Validate checks values against the schema and returns every violation,
// in field declaration order.
func (s *Schema) Validate(values map[string]any) []FieldError {
	return validateObject("", s.Fields, values)
}

func validateObject(prefix string, fields []Field, values map[string]any) []FieldError {
	var errs []FieldError
	for _, f := range fields {
		path := join(prefix, f.Name)
		v, ok := values[f.Name]
		if !ok || v == nil {
			if f.Required {
				errs = append(errs, FieldError{Path: path, Message: "required"})
			}
			continue
		}
		errs = append(errs, validateValue(path, f, v)...)
	}
	return errs
}

func validateValue(path string, f Field, v any) []FieldError {
	switch f.Kind {
	case KindAny:
		return nil
	case KindString:
		if _, ok := v.(string); !ok {
			return mismatch(path, f, v)
		}
	case KindBool:
		if _, ok := v.(bool); !ok {
			return mismatch(path, f, v)
		}
	case KindInt:
		n, ok := asInt(v)
		if !ok {
			return mismatch(path, f, v)
		}
		if f.Min != nil && n < *f.Min {
			return []FieldError{{Path: path, Message: fmt.Sprintf("must be >= %d", *f.Min)}}
		}
		if f.Max != nil && n > *f.Max {
			return []FieldError{{Path: path, Message: fmt.Sprintf("must be <= %d", *f.Max)}}
		}
	case KindNumber:
		if _, ok := asNumber(v); !ok {
			return mismatch(path, f, v)
		}
	case KindDate:
		if !isDate(v) {
			return mismatch(path, f, v)
		}
	case KindEnum:
		s, ok := v.(string)
		if !ok || !contains(f.Enum, s) {
			return []FieldError{{Path: path, Message: fmt.Sprintf("expected one of %s, got %s", strings.Join(quoteAll(f.Enum), ", "), describe(v))}}
		}
	case KindObject:
		m, ok := v.(map[string]any)
		if !ok {
			return mismatch(path, f, v)
		}
		return validateObject(path, f.Fields, m)
	case KindArray:
		items, ok := v.([]any)
		if !ok {
			return mismatch(path, f, v)
		}
		if f.Items == nil {
			return nil
		}
		var errs []FieldError
		for i, item := range items {
			errs = append(errs, validateValue(fmt.Sprintf("%s[%d]", path, i), *f.Items, item)...)
		}
		return errs
	case KindUnion:
		var nested []FieldError
		for _, variant := range f.Variants {
			errs := validateValue(path, variant, v)
			if len(errs) == 0 {
				return nil
			}
			// An object variant that matched structurally reports its own errors.
			if variant.Kind == KindObject {
				if _, isMap := v.(map[string]any); isMap {
					nested = errs
				}
			}
		}
		if nested != nil {
			return nested
		}
		return mismatch(path, f, v)
	default:
		return []FieldError{{Path: path, Message: fmt.Sprintf("unknown schema kind %q", f.Kind)}}
	}
	return nil
}

func mismatch(path string, f Field, v any) []FieldError {
	return []FieldError{{Path: path, Message: fmt.Sprintf("expected %s, got %s", Describe(f), describe(v))}}
}

// Describe renders the accepted type of a field (string | boolean).
func Describe(f Field) string {
	switch f.Kind {
	case KindUnion:
		parts := make([]string, len(f.Variants))
		for i, v := range f.Variants {
			parts[i] = Describe(v)
		}
		return strings.Join(parts, " | ")
	case KindEnum:
		return strings.Join(quoteAll(f.Enum), " | ")
	case KindArray:
		if f.Items != nil {
			return Describe(*f.Items) + "[]"
		}
		return "array"
	default:
		return string(f.Kind)
	}
}

func describe(v any) string {
	switch vv := v.(type) {
	case string:
		return fmt.Sprintf("string %q", vv)
	case bool:
		return "boolean"
	case int, int64, uint64:
		return "integer"
	case float64:
		return "number"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case time.Time:
		return "date"
	default:
		return fmt.Sprintf("%T", v)
	}
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case uint64:
		return int(n), true
	case float64:
		if n == float64(int(n)) {
			return int(n), true
		}
	}
	return 0, false
}

func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

var dateLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05", "2006-01-02"}

func isDate(v any) bool {
	switch d := v.(type) {
	case time.Time:
		return true
	case string:
		for _, layout := range dateLayouts {
			if _, err := time.Parse(layout, d); err == nil {
				return true
			}
		}
	}
	return false
}

func contains(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}

func quoteAll(list []string) []string {
	out := make([]string, len(list))
	for i, s := range list {
		out[i] = fmt.Sprintf("%q", s)
	}
	return out
}

func join(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}

// Keys returns the top-level field names, sorted.
func (s *Schema) Keys() []string {
	keys := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		keys[i] = f.Name
	}
	sort.Strings(keys)
	return keys
}
