package docs

import (
	"path"
	"strings"
	"unicode"

	"github.com/inful/mdfp"

	"github.com/sage-code/ara-docs/internal/frontmatter"
	"github.com/sage-code/ara-docs/internal/markdown"
)

// Page is a discovered documentation page.
type Page struct {
	Path    string // Absolute path on disk
	RelPath string // Slash-separated path relative to the content directory
	Dir     string // Slugified directory of the file ("" at the root)
	Slug    string // Site path without surrounding slashes ("" for the root index)
	Fields  map[string]any
	Body    []byte
	// Fingerprint identifies the page content; see ComputeFingerprint.
	Fingerprint string
	// ParseErr is set when the frontmatter could not be parsed. Fields is empty then.
	ParseErr error
}

// Badge is the optional sidebar badge of a page.
type Badge struct {
	Text    string `json:"text" yaml:"text"`
	Variant string `json:"variant,omitempty" yaml:"variant,omitempty"`
}

// Link returns the site path of the page with surrounding slashes.
func (p *Page) Link() string {
	if p.Slug == "" {
		return "/"
	}
	return "/" + p.Slug + "/"
}

// Title returns the frontmatter title, falling back to the first level-1
// heading and then the file name.
func (p *Page) Title() string {
	if t, ok := p.Fields["title"].(string); ok && strings.TrimSpace(t) != "" {
		return t
	}
	if h := markdown.FirstHeading(p.Body); h != "" {
		return h
	}
	return strings.TrimSuffix(path.Base(p.RelPath), path.Ext(p.RelPath))
}

func (p *Page) sidebar() map[string]any {
	m, _ := p.Fields["sidebar"].(map[string]any)
	return m
}

// SidebarLabel returns sidebar.label, or the title.
func (p *Page) SidebarLabel() string {
	if l, ok := p.sidebar()["label"].(string); ok && strings.TrimSpace(l) != "" {
		return l
	}
	return p.Title()
}

// SidebarOrder returns sidebar.order when set. Fractional orders are kept.
func (p *Page) SidebarOrder() (float64, bool) {
	switch n := p.sidebar()["order"].(type) {
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

// Hidden reports sidebar.hidden.
func (p *Page) Hidden() bool {
	h, _ := p.sidebar()["hidden"].(bool)
	return h
}

// Draft reports whether the page is a draft.
func (p *Page) Draft() bool {
	d, _ := p.Fields["draft"].(bool)
	return d
}

// Badge returns sidebar.badge, which may be a string or {text, variant}.
func (p *Page) Badge() (Badge, bool) {
	switch b := p.sidebar()["badge"].(type) {
	case string:
		return Badge{Text: b, Variant: "default"}, b != ""
	case map[string]any:
		text, _ := b["text"].(string)
		variant, _ := b["variant"].(string)
		if variant == "" {
			variant = "default"
		}
		return Badge{Text: text, Variant: variant}, text != ""
	}
	return Badge{}, false
}

// ComputeFingerprint hashes the canonical frontmatter (sorted YAML, without
// the fingerprint field itself) together with the body.
func ComputeFingerprint(fields map[string]any, body []byte) (string, error) {
	canonical := make(map[string]any, len(fields))
	for k, v := range fields {
		if k == mdfp.FingerprintField {
			continue
		}
		canonical[k] = v
	}
	fm, err := frontmatter.SerializeYAML(canonical)
	if err != nil {
		return "", err
	}
	return mdfp.CalculateFingerprintFromParts(strings.TrimSuffix(string(fm), "\n"), string(body)), nil
}

// SlugFor derives the slug of a page from its relative path, honoring a
// frontmatter slug override. Slugs are lowercase, like the links Lookup accepts.
func SlugFor(relPath string, fields map[string]any) string {
	if s, ok := fields["slug"].(string); ok {
		return strings.ToLower(strings.Trim(s, "/"))
	}
	trimmed := strings.TrimSuffix(relPath, path.Ext(relPath))
	segments := strings.Split(trimmed, "/")
	if segments[len(segments)-1] == "index" {
		segments = segments[:len(segments)-1]
	}
	out := make([]string, 0, len(segments))
	for _, seg := range segments {
		if s := Slugify(seg); s != "" {
			out = append(out, s)
		}
	}
	return strings.Join(out, "/")
}

// Slugify lowercases a path segment, turns whitespace into dashes and drops
// punctuation other than dashes, underscores and dots.
func Slugify(segment string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(segment)) {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '-', r == '_', r == '.':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune('-')
		}
	}
	return b.String()
}

// SlugDir slugifies every segment of a directory path.
func SlugDir(dir string) string {
	dir = strings.Trim(path.Clean("/"+strings.ReplaceAll(dir, "\\", "/")), "/")
	if dir == "" {
		return ""
	}
	segments := strings.Split(dir, "/")
	for i, s := range segments {
		segments[i] = Slugify(s)
	}
	return strings.Join(segments, "/")
}
