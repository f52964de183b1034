// Package sidebar resolves the declared site sidebar against the discovered
// pages into the navigation tree rendered by the site generator.
package sidebar

import (
	"path"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/sage-code/ara-docs/internal/docs"
	"github.com/sage-code/ara-docs/internal/site"
)

// EntryKind discriminates links from groups.
type EntryKind string

const (
	KindLink  EntryKind = "link"
	KindGroup EntryKind = "group"
)

// Entry is one node of the resolved navigation tree.
type Entry struct {
	Kind      EntryKind   `json:"kind" yaml:"kind"`
	Label     string      `json:"label" yaml:"label"`
	Link      string      `json:"link,omitempty" yaml:"link,omitempty"`
	Badge     *docs.Badge `json:"badge,omitempty" yaml:"badge,omitempty"`
	Collapsed bool        `json:"collapsed,omitempty" yaml:"collapsed,omitempty"`
	Entries   []Entry     `json:"entries,omitempty" yaml:"entries,omitempty"`

	// Page is the page an internal link resolved to.
	Page *docs.Page `json:"-" yaml:"-"`
	// Missing is set for internal links that resolve to no page.
	Missing bool `json:"missing,omitempty" yaml:"missing,omitempty"`
	// Directory is the content directory an autogenerated group was built from.
	Directory string `json:"directory,omitempty" yaml:"directory,omitempty"`
}

// Tree is the resolved sidebar. Groups keep the declared order.
type Tree struct {
	Groups []Entry `json:"groups" yaml:"groups"`
}

// Links returns every link entry in depth-first order.
func (t Tree) Links() []Entry {
	var out []Entry
	var walk func([]Entry)
	walk = func(entries []Entry) {
		for _, e := range entries {
			if e.Kind == KindLink {
				out = append(out, e)
				continue
			}
			walk(e.Entries)
		}
	}
	walk(t.Groups)
	return out
}

// Missing returns the link entries that resolved to no page.
func (t Tree) Missing() []Entry {
	var out []Entry
	for _, e := range t.Links() {
		if e.Missing {
			out = append(out, e)
		}
	}
	return out
}

// Resolve builds the navigation tree for cfg. A nil index resolves manual
// links without page lookups and leaves autogenerate groups empty.
func Resolve(cfg *site.Config, ix *docs.Index) Tree {
	tree := Tree{Groups: make([]Entry, 0, len(cfg.Sidebar))}
	for _, g := range cfg.Sidebar {
		switch g.Kind() {
		case site.KindAuto:
			tree.Groups = append(tree.Groups, resolveAuto(g, ix))
		default:
			tree.Groups = append(tree.Groups, resolveManual(g, ix))
		}
	}
	return tree
}

func resolveManual(g site.NavigationGroup, ix *docs.Index) Entry {
	group := Entry{Kind: KindGroup, Label: g.Label, Collapsed: g.Collapsed}
	for _, item := range g.Items {
		e := Entry{Kind: KindLink, Label: item.Label, Link: item.Link}
		if ix != nil && site.IsInternalLink(item.Link) {
			if p, ok := ix.Lookup(item.Link); ok {
				e.Page = p
				e.Badge = pageBadge(p)
			} else {
				e.Missing = true
			}
		}
		group.Entries = append(group.Entries, e)
	}
	return group
}

func resolveAuto(g site.NavigationGroup, ix *docs.Index) Entry {
	dir := docs.SlugDir(g.Autogenerate.Directory)
	group := Entry{
		Kind:      KindGroup,
		Label:     g.Label,
		Collapsed: g.Collapsed || g.Autogenerate.Collapsed,
		Directory: dir,
	}
	if ix == nil {
		return group
	}
	var pages []*docs.Page
	for _, p := range ix.InDirectory(dir) {
		if p.Hidden() || p.Draft() {
			continue
		}
		pages = append(pages, p)
	}
	group.Entries = buildDir(dir, pages, group.Collapsed)
	return group
}

// sortable pairs an entry with its sort keys.
type sortable struct {
	entry    Entry
	order    float64
	hasOrder bool
	key      string
}

// buildDir lays out the pages below dir: pages living directly in dir become
// links, deeper pages are grouped per sub-directory.
func buildDir(dir string, pages []*docs.Page, collapsed bool) []Entry {
	var items []sortable
	nested := map[string][]*docs.Page{}
	for _, p := range pages {
		if p.Dir == dir {
			order, ok := p.SidebarOrder()
			items = append(items, sortable{entry: pageEntry(p), order: order, hasOrder: ok, key: p.Slug})
			continue
		}
		child := childDir(dir, p.Dir)
		nested[child] = append(nested[child], p)
	}
	for child, childPages := range nested {
		items = append(items, sortable{
			entry: Entry{
				Kind:      KindGroup,
				Label:     DirLabel(child),
				Collapsed: collapsed,
				Directory: child,
				Entries:   buildDir(child, childPages, collapsed),
			},
			key: child,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.hasOrder != b.hasOrder {
			return a.hasOrder
		}
		if a.hasOrder && a.order != b.order {
			return a.order < b.order
		}
		return a.key < b.key
	})

	out := make([]Entry, len(items))
	for i, it := range items {
		out[i] = it.entry
	}
	return out
}

// childDir returns the immediate sub-directory of dir on the way to target.
func childDir(dir, target string) string {
	rest := target
	if dir != "" {
		rest = strings.TrimPrefix(target, dir+"/")
	}
	first, _, _ := strings.Cut(rest, "/")
	return path.Join(dir, first)
}

func pageEntry(p *docs.Page) Entry {
	return Entry{Kind: KindLink, Label: pageLabel(p), Link: p.Link(), Page: p, Badge: pageBadge(p)}
}

func pageLabel(p *docs.Page) string {
	label := p.SidebarLabel()
	base := strings.TrimSuffix(path.Base(p.RelPath), path.Ext(p.RelPath))
	if label == base {
		return DirLabel(base)
	}
	return label
}

func pageBadge(p *docs.Page) *docs.Badge {
	if b, ok := p.Badge(); ok {
		return &b
	}
	return nil
}

// DirLabel turns a directory or file name into a label: the last path
// segment with dashes and underscores as spaces, title-cased.
func DirLabel(dir string) string {
	name := strings.NewReplacer("-", " ", "_", " ").Replace(path.Base(dir))
	// A Caser keeps state between calls; one per call keeps DirLabel safe
	// for concurrent use.
	return cases.Title(language.English).String(name)
}
