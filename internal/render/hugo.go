package render

import (
	"bytes"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/sage-code/ara-docs/internal/docs"
	"github.com/sage-code/ara-docs/internal/sidebar"
	"github.com/sage-code/ara-docs/internal/site"
)

// HugoConfigFile is written by the hugo format.
const HugoConfigFile = "hugo.yaml"

type hugoConfig struct {
	Title                  string                  `yaml:"title"`
	DefaultContentLanguage string                  `yaml:"defaultContentLanguage,omitempty"`
	Languages              map[string]hugoLanguage `yaml:"languages,omitempty"`
	Params                 hugoParams              `yaml:"params"`
	Menu                   hugoMenus               `yaml:"menu"`
}

type hugoLanguage struct {
	LanguageName      string `yaml:"languageName"`
	LanguageDirection string `yaml:"languageDirection,omitempty"`
	Weight            int    `yaml:"weight"`
}

type hugoParams struct {
	Description string      `yaml:"description,omitempty"`
	CustomCSS   []string    `yaml:"customCss,omitempty"`
	Social      site.Social `yaml:"social,omitempty"`
}

type hugoMenus struct {
	Main    []hugoMenuEntry `yaml:"main"`
	Sidebar []hugoMenuEntry `yaml:"sidebar"`
}

type hugoMenuEntry struct {
	Identifier string `yaml:"identifier"`
	Name       string `yaml:"name"`
	PageRef    string `yaml:"pageRef,omitempty"`
	URL        string `yaml:"url,omitempty"`
	Parent     string `yaml:"parent,omitempty"`
	Weight     int    `yaml:"weight"`
	Pre        string `yaml:"pre,omitempty"`
}

// RenderHugoConfig renders a Hugo configuration whose menus mirror the
// resolved sidebar: one main menu entry per group and a sidebar menu holding
// the group contents.
func RenderHugoConfig(cfg *site.Config, tree sidebar.Tree) ([]byte, error) {
	hc := hugoConfig{
		Title: cfg.Title,
		Params: hugoParams{
			Description: cfg.Description,
			CustomCSS:   cfg.CustomCSS,
			Social:      cfg.Social,
		},
		Menu: hugoMenus{Main: []hugoMenuEntry{}, Sidebar: []hugoMenuEntry{}},
	}

	if cfg.Localized() {
		hc.Languages = map[string]hugoLanguage{}
		weight := 1
		for _, name := range sortedKeys(cfg.Locales) {
			loc := cfg.Locales[name]
			code := loc.Lang
			if code == "" {
				code = name
			}
			hc.Languages[code] = hugoLanguage{LanguageName: loc.Label, LanguageDirection: loc.Dir, Weight: weight}
			if name == cfg.DefaultLocale {
				hc.DefaultContentLanguage = code
			}
			weight++
		}
	}

	for i, group := range tree.Groups {
		id := docs.Slugify(group.Label)
		hc.Menu.Main = append(hc.Menu.Main, hugoMenuEntry{Identifier: id, Name: group.Label, Weight: i + 1})
		hc.Menu.Sidebar = appendMenu(hc.Menu.Sidebar, id, group.Entries)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(hc); err != nil {
		return nil, fmt.Errorf("render %s: %w", HugoConfigFile, err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("render %s: %w", HugoConfigFile, err)
	}
	return buf.Bytes(), nil
}

func appendMenu(menu []hugoMenuEntry, parent string, entries []sidebar.Entry) []hugoMenuEntry {
	for i, e := range entries {
		me := hugoMenuEntry{
			Identifier: parent + "/" + docs.Slugify(e.Label),
			Name:       e.Label,
			Parent:     parent,
			Weight:     i + 1,
		}
		if e.Kind == sidebar.KindLink {
			if site.IsInternalLink(e.Link) {
				me.PageRef = e.Link
			} else {
				me.URL = e.Link
			}
		}
		if e.Badge != nil {
			me.Pre = e.Badge.Text
		}
		menu = append(menu, me)
		if e.Kind == sidebar.KindGroup {
			menu = appendMenu(menu, me.Identifier, e.Entries)
		}
	}
	return menu
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

type hugoWriter struct{}

func (hugoWriter) Format() string { return FormatHugo }

func (hugoWriter) Write(dir string, m *Manifest) ([]string, error) {
	data, err := RenderHugoConfig(m.Site, m.Sidebar)
	if err != nil {
		return nil, err
	}
	path, err := WriteFile(dir, HugoConfigFile, data)
	if err != nil {
		return nil, err
	}
	return []string{path}, nil
}
