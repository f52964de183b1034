// Package docs discovers the documentation pages of the content directory and
// indexes them by slug and directory.
package docs

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	derrors "github.com/sage-code/ara-docs/internal/docs/errors"
	"github.com/sage-code/ara-docs/internal/frontmatter"
	"github.com/sage-code/ara-docs/internal/logfields"
)

// DefaultContentDir is where documentation pages live, relative to the project root.
const DefaultContentDir = "src/content/docs"

var pageExtensions = map[string]bool{".md": true, ".mdx": true, ".markdown": true}

// IsPageFile reports whether name has a documentation page extension.
func IsPageFile(name string) bool {
	return pageExtensions[strings.ToLower(filepath.Ext(name))]
}

// Discover walks root and returns the index of every page below it. Pages
// with unparsable frontmatter are kept with ParseErr set, so the check stage
// can report them alongside other issues.
func Discover(ctx context.Context, root string) (*Index, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", derrors.ErrWalkFailed, root, err)
	}
	info, err := os.Stat(absRoot)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", derrors.ErrContentDirNotFound, root)
	}

	var pages []*Page
	dirs := map[string]bool{}
	err = filepath.WalkDir(absRoot, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		name := d.Name()
		if p != absRoot && (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(absRoot, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if d.IsDir() {
			if rel != "." {
				dirs[SlugDir(rel)] = true
			}
			return nil
		}
		if !IsPageFile(name) {
			return nil
		}
		page, err := loadPage(p, rel)
		if err != nil {
			return err
		}
		pages = append(pages, page)
		return nil
	})
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s: %w", derrors.ErrWalkFailed, root, err)
	}

	ix, err := NewIndex(pages)
	if err != nil {
		return nil, err
	}
	ix.root = absRoot
	ix.dirs = dirs
	slog.Debug("Content discovered", logfields.Path(absRoot), logfields.Count(len(pages)))
	return ix, nil
}

func loadPage(absPath, rel string) (*Page, error) {
	// #nosec G304 -- absPath comes from walking the content directory.
	content, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", derrors.ErrFileReadFailed, rel, err)
	}

	page := &Page{
		Path:    absPath,
		RelPath: rel,
		Dir:     SlugDir(path.Dir(rel)),
		Fields:  map[string]any{},
		Body:    content,
	}
	doc, err := frontmatter.Parse(content)
	if err != nil {
		page.ParseErr = fmt.Errorf("%w: %w", derrors.ErrFrontmatterInvalid, err)
		slog.Warn("Unparsable frontmatter", logfields.Path(rel), logfields.Error(err))
	} else {
		page.Fields = doc.Fields
		page.Body = doc.Body
	}
	page.Slug = SlugFor(rel, page.Fields)

	fp, err := ComputeFingerprint(page.Fields, page.Body)
	if err != nil {
		return nil, fmt.Errorf("fingerprint %s: %w", rel, err)
	}
	page.Fingerprint = fp
	return page, nil
}

// Index holds discovered pages ordered by relative path.
type Index struct {
	root   string
	pages  []*Page
	bySlug map[string]*Page
	dirs   map[string]bool
}

// NewIndex builds an index from pages. Two pages with the same slug are an
// ErrSlugCollision.
func NewIndex(pages []*Page) (*Index, error) {
	sorted := append([]*Page(nil), pages...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].RelPath < sorted[j].RelPath })

	ix := &Index{pages: sorted, bySlug: make(map[string]*Page, len(sorted)), dirs: map[string]bool{}}
	for _, p := range sorted {
		if prev, dup := ix.bySlug[p.Slug]; dup {
			return nil, fmt.Errorf("%w: %q from %s and %s", derrors.ErrSlugCollision, p.Link(), prev.RelPath, p.RelPath)
		}
		ix.bySlug[p.Slug] = p
		for d := p.Dir; d != "" && d != "."; d = parentDir(d) {
			ix.dirs[d] = true
		}
	}
	return ix, nil
}

func parentDir(d string) string {
	i := strings.LastIndex(d, "/")
	if i < 0 {
		return ""
	}
	return d[:i]
}

// Root returns the absolute content directory ("" for indexes built with NewIndex).
func (ix *Index) Root() string { return ix.root }

// Pages returns all pages ordered by relative path.
func (ix *Index) Pages() []*Page { return ix.pages }

// Len returns the number of pages.
func (ix *Index) Len() int { return len(ix.pages) }

// Lookup resolves a site link (/guides/example/, /guides/example#x) to a page.
func (ix *Index) Lookup(link string) (*Page, bool) {
	p, ok := ix.bySlug[NormalizeLink(link)]
	return p, ok
}

// NormalizeLink strips query, fragment and surrounding slashes, and lowercases.
func NormalizeLink(link string) string {
	if i := strings.IndexAny(link, "?#"); i >= 0 {
		link = link[:i]
	}
	return strings.ToLower(strings.Trim(link, "/"))
}

// HasDirectory reports whether dir exists below the content directory.
func (ix *Index) HasDirectory(dir string) bool {
	return ix.dirs[SlugDir(dir)]
}

// InDirectory returns the pages whose file lives in dir or below it, ordered
// by relative path.
func (ix *Index) InDirectory(dir string) []*Page {
	d := SlugDir(dir)
	var out []*Page
	for _, p := range ix.pages {
		if p.Dir == d || strings.HasPrefix(p.Dir, d+"/") {
			out = append(out, p)
		}
	}
	return out
}
