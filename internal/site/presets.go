package site

import (
	"sort"
	"strings"

	derrors "github.com/sage-code/ara-docs/internal/foundation/errors"
)

const (
	// SiteTitle is the documentation site title.
	SiteTitle = "ARA"
	// GitHubURL is the project repository.
	GitHubURL = "https://github.com/sage-code/ara"
	// CustomCSSPath is the stylesheet layered over the theme defaults.
	CustomCSSPath = "./src/styles/custom.css"

	PresetStarlight = "starlight"
	PresetLocalized = "localized"

	// DefaultPreset is used when the configuration file names none.
	DefaultPreset = PresetStarlight
)

var presets = map[string]func() *Config{
	PresetStarlight: Starlight,
	PresetLocalized: Localized,
}

func guides() NavigationGroup {
	return ManualGroup("Guides",
		Link("Example Guide", "/guides/example/"),
		Link("Contribution", "/guides/contribution/"),
		Link("MD Markup", "/guides/markup/"),
	)
}

// Starlight returns the site configuration with the custom stylesheet and no
// localization. Groups: Guides, Structures, Algorithms, Reference.
func Starlight() *Config {
	return &Config{
		Title:     SiteTitle,
		CustomCSS: []string{CustomCSSPath},
		Social:    Social{{Platform: "github", URL: GitHubURL}},
		Sidebar: []NavigationGroup{
			guides(),
			AutoGroup("Structures", "structures"),
			AutoGroup("Algorithms", "algorithms"),
			AutoGroup("Reference", "reference"),
		},
	}
}

// Localized returns the site configuration with an English root locale and a
// Generators group in place of Algorithms.
func Localized() *Config {
	return &Config{
		Title:  SiteTitle,
		Social: Social{{Platform: "github", URL: GitHubURL}},
		Sidebar: []NavigationGroup{
			guides(),
			AutoGroup("Structures", "structures"),
			AutoGroup("Generators", "generators"),
			AutoGroup("Reference", "reference"),
		},
		DefaultLocale: "root",
		Locales: map[string]Locale{
			"root": {Label: "English", Lang: "en"},
		},
	}
}

// Preset returns a fresh copy of the named configuration.
func Preset(name string) (*Config, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		key = DefaultPreset
	}
	build, ok := presets[key]
	if !ok {
		return nil, derrors.NewError(derrors.CategoryNotFound, "unknown site preset").
			WithContext("preset", name).
			WithContext("available", PresetNames()).
			Build()
	}
	return build(), nil
}

// PresetNames lists the available presets, sorted.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for n := range presets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
