// Package site assembles the documentation site configuration: title,
// social links, custom CSS, localization and the declared sidebar.
//
// A Config is built once from literals (see Starlight and Localized) or read
// from the aradocs configuration file, and is treated as read-only afterwards.
// Sidebar groups and their items keep declaration order; consumers render
// them top-to-bottom.
package site

import (
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// GroupKind discriminates the two NavigationGroup variants.
type GroupKind string

const (
	// KindManual is a group with an explicit, ordered list of links.
	KindManual GroupKind = "manual"
	// KindAuto is a group whose links are derived from a content directory.
	KindAuto GroupKind = "auto"
)

// NavigationLink is one entry of a manual sidebar group.
type NavigationLink struct {
	Label string `yaml:"label" json:"label"`
	Link  string `yaml:"link" json:"link"`
}

// Autogenerate names the content directory a group is generated from.
type Autogenerate struct {
	Directory string `yaml:"directory" json:"directory"`
	Collapsed bool   `yaml:"collapsed,omitempty" json:"collapsed,omitempty"`
}

// NavigationGroup is either a manual group (Items set) or an autogenerate
// group (Autogenerate set). Exactly one of the two is populated.
type NavigationGroup struct {
	Label        string           `yaml:"label" json:"label"`
	Collapsed    bool             `yaml:"collapsed,omitempty" json:"collapsed,omitempty"`
	Items        []NavigationLink `yaml:"items,omitempty" json:"items,omitempty"`
	Autogenerate *Autogenerate    `yaml:"autogenerate,omitempty" json:"autogenerate,omitempty"`
}

// Kind reports which variant the group is. A group with neither items nor an
// autogenerate directory reports KindManual and fails validation.
func (g NavigationGroup) Kind() GroupKind {
	if g.Autogenerate != nil {
		return KindAuto
	}
	return KindManual
}

// Locale describes one site language.
type Locale struct {
	Label string `yaml:"label" json:"label"`
	Lang  string `yaml:"lang,omitempty" json:"lang,omitempty"`
	Dir   string `yaml:"dir,omitempty" json:"dir,omitempty"`
}

// Config is the site configuration handed to the site generator.
type Config struct {
	Title         string            `yaml:"title" json:"title"`
	Description   string            `yaml:"description,omitempty" json:"description,omitempty"`
	CustomCSS     []string          `yaml:"customCss,omitempty" json:"customCss,omitempty"`
	Social        Social            `yaml:"social,omitempty" json:"social,omitempty"`
	Sidebar       []NavigationGroup `yaml:"sidebar" json:"sidebar"`
	DefaultLocale string            `yaml:"defaultLocale,omitempty" json:"defaultLocale,omitempty"`
	Locales       map[string]Locale `yaml:"locales,omitempty" json:"locales,omitempty"`
}

// Link builds a NavigationLink.
func Link(label, link string) NavigationLink {
	return NavigationLink{Label: label, Link: link}
}

// ManualGroup builds a group listing links in the given order.
func ManualGroup(label string, links ...NavigationLink) NavigationGroup {
	return NavigationGroup{Label: label, Items: links}
}

// AutoGroup builds a group generated from a content directory.
func AutoGroup(label, directory string) NavigationGroup {
	return NavigationGroup{Label: label, Autogenerate: &Autogenerate{Directory: directory}}
}

// Directories returns the autogenerate directories in sidebar order.
func (c *Config) Directories() []string {
	var dirs []string
	for _, g := range c.Sidebar {
		if g.Kind() == KindAuto {
			dirs = append(dirs, g.Autogenerate.Directory)
		}
	}
	return dirs
}

// Localized reports whether the configuration declares locales.
func (c *Config) Localized() bool {
	return len(c.Locales) > 0
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	out := *c
	if c.CustomCSS != nil {
		out.CustomCSS = append([]string(nil), c.CustomCSS...)
	}
	if c.Social != nil {
		out.Social = append(Social(nil), c.Social...)
	}
	if c.Sidebar != nil {
		out.Sidebar = make([]NavigationGroup, len(c.Sidebar))
		for i, g := range c.Sidebar {
			ng := g
			if g.Items != nil {
				ng.Items = append([]NavigationLink(nil), g.Items...)
			}
			if g.Autogenerate != nil {
				ag := *g.Autogenerate
				ng.Autogenerate = &ag
			}
			out.Sidebar[i] = ng
		}
	}
	if c.Locales != nil {
		out.Locales = make(map[string]Locale, len(c.Locales))
		for k, v := range c.Locales {
			out.Locales[k] = v
		}
	}
	return &out
}

// plainConfig has Config's fields without its methods, so cmp compares the
// fields instead of calling Equal again.
type plainConfig Config

// Equal reports structural equality. Nil and empty lists or maps are equal,
// matching what the codecs produce for omitted keys.
func (c *Config) Equal(other *Config) bool {
	if c == nil || other == nil {
		return c == other
	}
	return cmp.Equal(plainConfig(*c), plainConfig(*other), cmpopts.EquateEmpty())
}
