package site

import (
	"fmt"
	"net/url"
	"path"
	"sort"
	"strings"

	"golang.org/x/text/language"

	derrors "github.com/sage-code/ara-docs/internal/foundation/errors"
)

// Problem is a single validation failure. Field is a dotted path into the
// configuration (sidebar[1].autogenerate.directory).
type Problem struct {
	Field   string
	Message string
}

func (p Problem) String() string {
	return p.Field + ": " + p.Message
}

// Problems returns every validation failure, in field order.
func (c *Config) Problems() []Problem {
	var ps []Problem
	add := func(field, format string, args ...any) {
		ps = append(ps, Problem{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	if strings.TrimSpace(c.Title) == "" {
		add("title", "must not be empty")
	}
	for i, css := range c.CustomCSS {
		if strings.TrimSpace(css) == "" {
			add(fmt.Sprintf("customCss[%d]", i), "must not be empty")
		}
	}

	seenPlatform := map[string]bool{}
	for _, s := range c.Social {
		field := "social." + s.Platform
		if s.Platform == "" {
			add("social", "platform name must not be empty")
			continue
		}
		if seenPlatform[s.Platform] {
			add(field, "declared more than once")
		}
		seenPlatform[s.Platform] = true
		if !isWebURL(s.URL) {
			add(field, "must be an absolute http(s) URL, got %q", s.URL)
		}
	}

	if len(c.Sidebar) == 0 {
		add("sidebar", "must declare at least one group")
	}
	for i, g := range c.Sidebar {
		ps = append(ps, groupProblems(fmt.Sprintf("sidebar[%d]", i), g)...)
	}

	ps = append(ps, c.localeProblems()...)
	return ps
}

// Validate returns a validation error listing every problem, or nil.
func (c *Config) Validate() error {
	ps := c.Problems()
	if len(ps) == 0 {
		return nil
	}
	msgs := make([]string, len(ps))
	for i, p := range ps {
		msgs[i] = p.String()
	}
	return derrors.ValidationError("invalid site configuration").
		WithCause(fmt.Errorf("%s", strings.Join(msgs, "; "))).
		WithContext("problems", len(ps)).
		Build()
}

func groupProblems(field string, g NavigationGroup) []Problem {
	var ps []Problem
	if strings.TrimSpace(g.Label) == "" {
		ps = append(ps, Problem{Field: field + ".label", Message: "must not be empty"})
	}
	switch {
	case g.Autogenerate != nil && len(g.Items) > 0:
		ps = append(ps, Problem{Field: field, Message: "must declare either items or autogenerate, not both"})
	case g.Autogenerate == nil && len(g.Items) == 0:
		ps = append(ps, Problem{Field: field, Message: "must declare items or autogenerate"})
	case g.Autogenerate != nil:
		if msg := directoryProblem(g.Autogenerate.Directory); msg != "" {
			ps = append(ps, Problem{Field: field + ".autogenerate.directory", Message: msg})
		}
	}
	for j, item := range g.Items {
		itemField := fmt.Sprintf("%s.items[%d]", field, j)
		if strings.TrimSpace(item.Label) == "" {
			ps = append(ps, Problem{Field: itemField + ".label", Message: "must not be empty"})
		}
		if !IsInternalLink(item.Link) && !isWebURL(item.Link) {
			ps = append(ps, Problem{Field: itemField + ".link", Message: fmt.Sprintf("must be a site path starting with / or an absolute URL, got %q", item.Link)})
		}
	}
	return ps
}

func directoryProblem(dir string) string {
	d := strings.TrimSpace(dir)
	switch {
	case d == "":
		return "must not be empty"
	case strings.HasPrefix(d, "/"):
		return "must be relative to the content directory"
	case path.Clean(d) != strings.TrimSuffix(d, "/") || strings.HasPrefix(path.Clean(d), ".."):
		return fmt.Sprintf("must be a clean relative path, got %q", dir)
	}
	return ""
}

func (c *Config) localeProblems() []Problem {
	var ps []Problem
	if len(c.Locales) == 0 {
		if c.DefaultLocale != "" {
			ps = append(ps, Problem{Field: "defaultLocale", Message: "set without any locales"})
		}
		return ps
	}
	if c.DefaultLocale == "" {
		ps = append(ps, Problem{Field: "defaultLocale", Message: "required when locales are declared"})
	} else if _, ok := c.Locales[c.DefaultLocale]; !ok {
		ps = append(ps, Problem{Field: "defaultLocale", Message: fmt.Sprintf("%q is not a declared locale", c.DefaultLocale)})
	}

	keys := make([]string, 0, len(c.Locales))
	for k := range c.Locales {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		loc := c.Locales[k]
		field := "locales." + k
		if strings.TrimSpace(loc.Label) == "" {
			ps = append(ps, Problem{Field: field + ".label", Message: "must not be empty"})
		}
		lang := loc.Lang
		if lang == "" {
			if k == "root" {
				ps = append(ps, Problem{Field: field + ".lang", Message: "required for the root locale"})
				continue
			}
			lang = k
		}
		if _, err := language.Parse(lang); err != nil {
			ps = append(ps, Problem{Field: field + ".lang", Message: fmt.Sprintf("not a BCP 47 language tag: %q", lang)})
		}
		if loc.Dir != "" && loc.Dir != "ltr" && loc.Dir != "rtl" {
			ps = append(ps, Problem{Field: field + ".dir", Message: fmt.Sprintf("must be ltr or rtl, got %q", loc.Dir)})
		}
	}
	return ps
}

// IsInternalLink reports whether link points into the site itself.
func IsInternalLink(link string) bool {
	return strings.HasPrefix(link, "/") && !strings.HasPrefix(link, "//")
}

func isWebURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
