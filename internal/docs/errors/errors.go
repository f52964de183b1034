// Package errors provides sentinel errors for content discovery.
package errors

import "errors"

var (
	// ErrContentDirNotFound indicates the configured content directory does not exist.
	ErrContentDirNotFound = errors.New("content directory not found")

	// ErrWalkFailed indicates filesystem traversal of the content directory failed.
	ErrWalkFailed = errors.New("content directory walk failed")

	// ErrFileReadFailed indicates reading a page failed.
	ErrFileReadFailed = errors.New("page read failed")

	// ErrFrontmatterInvalid indicates a page's frontmatter could not be parsed.
	ErrFrontmatterInvalid = errors.New("page frontmatter invalid")

	// ErrSlugCollision indicates two pages resolve to the same slug.
	ErrSlugCollision = errors.New("slug collision")
)
