// Package errors provides classified error primitives used across aradocs.
//
// A ClassifiedError carries a category (config, validation, content, ...),
// a severity and a small context map. Categories drive CLI exit codes and the
// log level used when an error is reported.
//
// Example usage:
//
//	err := errors.NewError(errors.CategoryContent, "page frontmatter invalid").
//		WithContext("path", rel).
//		WithCause(parseErr).
//		Build()
package errors
