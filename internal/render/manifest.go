// Package render writes the outputs of a build: the site manifest (JSON or
// YAML), the regenerated Astro/Starlight configuration, and a Hugo
// configuration carrying the same navigation.
package render

import (
	"time"

	"github.com/google/uuid"

	"github.com/sage-code/ara-docs/internal/collection"
	"github.com/sage-code/ara-docs/internal/docs"
	"github.com/sage-code/ara-docs/internal/sidebar"
	"github.com/sage-code/ara-docs/internal/site"
)

// Manifest is the resolved documentation site.
type Manifest struct {
	BuildID     string           `json:"build_id" yaml:"build_id"`
	GeneratedAt time.Time        `json:"generated_at" yaml:"generated_at"`
	Site        *site.Config     `json:"site" yaml:"site"`
	Sidebar     sidebar.Tree     `json:"sidebar" yaml:"sidebar"`
	Collections []CollectionInfo `json:"collections" yaml:"collections"`
	Pages       []PageInfo       `json:"pages" yaml:"pages"`
}

// CollectionInfo describes a content collection binding.
type CollectionInfo struct {
	Name   string   `json:"name" yaml:"name"`
	Type   string   `json:"type" yaml:"type"`
	Schema string   `json:"schema" yaml:"schema"`
	Fields []string `json:"fields" yaml:"fields"`
}

// PageInfo is the manifest entry of one page.
type PageInfo struct {
	Slug        string `json:"slug" yaml:"slug"`
	Link        string `json:"link" yaml:"link"`
	Path        string `json:"path" yaml:"path"`
	Title       string `json:"title" yaml:"title"`
	Fingerprint string `json:"fingerprint" yaml:"fingerprint"`
	Draft       bool   `json:"draft,omitempty" yaml:"draft,omitempty"`
	Hidden      bool   `json:"hidden,omitempty" yaml:"hidden,omitempty"`
}

// NewManifest assembles a manifest with a fresh build id. A nil index yields
// no pages.
func NewManifest(cfg *site.Config, tree sidebar.Tree, cols collection.Collections, ix *docs.Index, now time.Time) *Manifest {
	m := &Manifest{
		BuildID:     uuid.NewString(),
		GeneratedAt: now.UTC(),
		Site:        cfg,
		Sidebar:     tree,
		Collections: []CollectionInfo{},
		Pages:       []PageInfo{},
	}
	for _, name := range cols.Names() {
		col := cols[name]
		info := CollectionInfo{Name: name, Type: string(col.Type)}
		if col.Schema != nil {
			info.Schema = col.Schema.Name
			info.Fields = col.Schema.Keys()
		}
		m.Collections = append(m.Collections, info)
	}
	if ix != nil {
		for _, p := range ix.Pages() {
			m.Pages = append(m.Pages, PageInfo{
				Slug:        p.Slug,
				Link:        p.Link(),
				Path:        p.RelPath,
				Title:       p.Title(),
				Fingerprint: p.Fingerprint,
				Draft:       p.Draft(),
				Hidden:      p.Hidden(),
			})
		}
	}
	return m
}
