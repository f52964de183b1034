package site

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	derrors "github.com/sage-code/ara-docs/internal/foundation/errors"
)

func TestStarlight_Literals(t *testing.T) {
	c := Starlight()

	assert.Equal(t, "ARA", c.Title)
	gh, ok := c.Social.Get("github")
	require.True(t, ok)
	assert.Equal(t, "https://github.com/sage-code/ara", gh)
	assert.Equal(t, []string{"./src/styles/custom.css"}, c.CustomCSS)
	assert.False(t, c.Localized())

	labels := make([]string, len(c.Sidebar))
	for i, g := range c.Sidebar {
		labels[i] = g.Label
	}
	assert.Equal(t, []string{"Guides", "Structures", "Algorithms", "Reference"}, labels)
	assert.Equal(t, []NavigationLink{
		{Label: "Example Guide", Link: "/guides/example/"},
		{Label: "Contribution", Link: "/guides/contribution/"},
		{Label: "MD Markup", Link: "/guides/markup/"},
	}, c.Sidebar[0].Items)
	assert.Equal(t, []string{"structures", "algorithms", "reference"}, c.Directories())
	require.NoError(t, c.Validate())
}

func TestLocalized_Literals(t *testing.T) {
	c := Localized()

	assert.Equal(t, "Guides", c.Sidebar[0].Label)
	assert.Equal(t, NavigationLink{Label: "Contribution", Link: "/guides/contribution/"}, c.Sidebar[0].Items[1])
	assert.Equal(t, KindManual, c.Sidebar[0].Kind())
	assert.Equal(t, KindAuto, c.Sidebar[2].Kind())
	assert.Equal(t, "Generators", c.Sidebar[2].Label)
	assert.Empty(t, c.CustomCSS)
	assert.True(t, c.Localized())
	assert.Equal(t, "root", c.DefaultLocale)
	assert.Equal(t, Locale{Label: "English", Lang: "en"}, c.Locales["root"])
	require.NoError(t, c.Validate())
}

func TestPresets_Idempotent(t *testing.T) {
	for _, name := range PresetNames() {
		a, err := Preset(name)
		require.NoError(t, err)
		b, err := Preset(name)
		require.NoError(t, err)
		if diff := cmp.Diff(a, b); diff != "" {
			t.Fatalf("preset %s not deterministic (-a +b):\n%s", name, diff)
		}
		assert.True(t, a.Equal(b))
		assert.NotSame(t, a, b)
	}
}

func TestPreset_DefaultAndUnknown(t *testing.T) {
	c, err := Preset("")
	require.NoError(t, err)
	assert.True(t, c.Equal(Starlight()))

	c, err = Preset(" Localized ")
	require.NoError(t, err)
	assert.True(t, c.Equal(Localized()))

	_, err = Preset("nope")
	require.Error(t, err)
	assert.True(t, derrors.HasCategory(err, derrors.CategoryNotFound))
}

func TestCodec_RoundTrip(t *testing.T) {
	for _, name := range PresetNames() {
		orig, err := Preset(name)
		require.NoError(t, err)

		y, err := EncodeYAML(orig)
		require.NoError(t, err)
		fromYAML, err := DecodeYAML(y)
		require.NoError(t, err)
		if diff := cmp.Diff(orig, fromYAML); diff != "" {
			t.Errorf("%s yaml round trip (-want +got):\n%s", name, diff)
		}

		j, err := EncodeJSON(orig)
		require.NoError(t, err)
		fromJSON, err := DecodeJSON(j)
		require.NoError(t, err)
		if diff := cmp.Diff(orig, fromJSON); diff != "" {
			t.Errorf("%s json round trip (-want +got):\n%s", name, diff)
		}
	}
}

func TestCodec_YAMLShape(t *testing.T) {
	y, err := EncodeYAML(Starlight())
	require.NoError(t, err)

	want := `title: ARA
customCss:
  - ./src/styles/custom.css
social:
  github: https://github.com/sage-code/ara
sidebar:
  - label: Guides
    items:
      - label: Example Guide
        link: /guides/example/
      - label: Contribution
        link: /guides/contribution/
      - label: MD Markup
        link: /guides/markup/
  - label: Structures
    autogenerate:
      directory: structures
  - label: Algorithms
    autogenerate:
      directory: algorithms
  - label: Reference
    autogenerate:
      directory: reference
`
	assert.Equal(t, want, string(y))
}

func TestCodec_SocialOrderPreserved(t *testing.T) {
	src := []byte("title: T\nsocial:\n  mastodon: https://m.example/@ara\n  github: https://github.com/x\nsidebar:\n  - label: A\n    autogenerate:\n      directory: a\n")
	c, err := DecodeYAML(src)
	require.NoError(t, err)
	assert.Equal(t, Social{
		{Platform: "mastodon", URL: "https://m.example/@ara"},
		{Platform: "github", URL: "https://github.com/x"},
	}, c.Social)

	j, err := EncodeJSON(c)
	require.NoError(t, err)
	js := string(j)
	assert.Less(t, strings.Index(js, `"mastodon"`), strings.Index(js, `"github"`))
	back, err := DecodeJSON(j)
	require.NoError(t, err)
	assert.Equal(t, c.Social, back.Social)
}

func TestDecodeYAML_RejectsUnknownFields(t *testing.T) {
	_, err := DecodeYAML([]byte("title: T\nsidbar: []\n"))
	require.Error(t, err)
}

func TestValidate_Problems(t *testing.T) {
	c := &Config{
		Social: Social{{Platform: "github", URL: "not a url"}},
		Sidebar: []NavigationGroup{
			{Label: "Empty"},
			{Label: "Both", Items: []NavigationLink{Link("A", "/a/")}, Autogenerate: &Autogenerate{Directory: "a"}},
			ManualGroup("Bad link", Link("", "relative/path")),
			AutoGroup("Escape", "../outside"),
			AutoGroup("", "/abs"),
		},
		DefaultLocale: "fr",
		Locales: map[string]Locale{
			"root": {Label: "English"},
			"xx":   {Label: "Broken", Lang: "not_a_tag!", Dir: "up"},
		},
	}

	fields := map[string]bool{}
	for _, p := range c.Problems() {
		fields[p.Field] = true
	}
	for _, f := range []string{
		"title",
		"social.github",
		"sidebar[0]",
		"sidebar[1]",
		"sidebar[2].items[0].label",
		"sidebar[2].items[0].link",
		"sidebar[3].autogenerate.directory",
		"sidebar[4].label",
		"sidebar[4].autogenerate.directory",
		"defaultLocale",
		"locales.root.lang",
		"locales.xx.lang",
		"locales.xx.dir",
	} {
		assert.True(t, fields[f], "expected problem for %s", f)
	}

	err := c.Validate()
	require.Error(t, err)
	assert.True(t, derrors.HasCategory(err, derrors.CategoryValidation))
}

func TestValidate_DefaultLocaleWithoutLocales(t *testing.T) {
	c := Starlight()
	c.DefaultLocale = "root"
	ps := c.Problems()
	require.Len(t, ps, 1)
	assert.Equal(t, "defaultLocale", ps[0].Field)
}

func TestClone_IsDeep(t *testing.T) {
	orig := Localized()
	cp := orig.Clone()
	require.True(t, orig.Equal(cp))

	cp.Sidebar[0].Items[0].Label = "changed"
	cp.Sidebar[1].Autogenerate.Directory = "changed"
	cp.Locales["root"] = Locale{Label: "changed"}
	cp.Social[0].URL = "https://changed.example"

	assert.True(t, orig.Equal(Localized()))
}

func TestIsInternalLink(t *testing.T) {
	assert.True(t, IsInternalLink("/guides/example/"))
	assert.False(t, IsInternalLink("//cdn.example/x"))
	assert.False(t, IsInternalLink("https://example.com"))
	assert.False(t, IsInternalLink("guides/example"))
}

func TestCodec_RoundTripEmptyCollections(t *testing.T) {
	orig, err := DecodeYAML([]byte("title: T\ncustomCss: []\nsocial: {}\nsidebar: []\nlocales: {}\n"))
	require.NoError(t, err)
	require.NotNil(t, orig.Social)

	y, err := EncodeYAML(orig)
	require.NoError(t, err)
	back, err := DecodeYAML(y)
	require.NoError(t, err)
	assert.True(t, orig.Equal(back), "yaml:\n%s", y)

	j, err := EncodeJSON(orig)
	require.NoError(t, err)
	fromJSON, err := DecodeJSON(j)
	require.NoError(t, err)
	assert.True(t, orig.Equal(fromJSON), "json:\n%s", j)
}

func TestCodec_NullSocial(t *testing.T) {
	c, err := DecodeJSON([]byte(`{"title":"T","sidebar":[],"social":null}`))
	require.NoError(t, err)
	assert.Empty(t, c.Social)
	assert.True(t, c.Equal(&Config{Title: "T"}))

	c, err = DecodeYAML([]byte("title: T\nsocial:\n"))
	require.NoError(t, err)
	assert.Empty(t, c.Social)
}

func TestEqual(t *testing.T) {
	assert.True(t, Starlight().Equal(Starlight()))
	assert.False(t, Starlight().Equal(Localized()))

	var nilCfg *Config
	assert.True(t, nilCfg.Equal(nil))
	assert.False(t, nilCfg.Equal(Starlight()))
	assert.False(t, Starlight().Equal(nil))
}
