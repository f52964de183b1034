package sidebar

import (
	"bytes"
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sage-code/ara-docs/internal/docs"
	"github.com/sage-code/ara-docs/internal/site"
	"github.com/sage-code/ara-docs/internal/testutil/testutils"
)

func projectIndex(t *testing.T) *docs.Index {
	t.Helper()
	root := testutils.NewProject(t)
	ix, err := docs.Discover(context.Background(), filepath.Join(root, docs.DefaultContentDir))
	require.NoError(t, err)
	return ix
}

func labels(entries []Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Label)
	}
	return out
}

func TestResolve_StarlightPreset(t *testing.T) {
	tree := Resolve(site.Starlight(), projectIndex(t))

	require.Equal(t, []string{"Guides", "Structures", "Algorithms", "Reference"}, labels(tree.Groups))

	guides := tree.Groups[0]
	assert.Equal(t, []string{"Example Guide", "Contribution", "MD Markup"}, labels(guides.Entries))
	for _, e := range guides.Entries {
		assert.False(t, e.Missing, e.Link)
		require.NotNil(t, e.Page, e.Link)
	}
	assert.Equal(t, "guides/contribution.md", guides.Entries[1].Page.RelPath)

	structures := tree.Groups[1]
	assert.Equal(t, "structures", structures.Directory)
	assert.Equal(t, []string{"Queue", "Stack", "Trees"}, labels(structures.Entries))
	trees := structures.Entries[2]
	assert.Equal(t, KindGroup, trees.Kind)
	require.Len(t, trees.Entries, 1)
	heap := trees.Entries[0]
	assert.Equal(t, "/structures/trees/binary-heap/", heap.Link)
	require.NotNil(t, heap.Badge)
	assert.Equal(t, "New", heap.Badge.Text)

	assert.Equal(t, []string{"Search", "Sorting"}, labels(tree.Groups[2].Entries))
	assert.Equal(t, []string{"Syntax"}, labels(tree.Groups[3].Entries), "hidden and draft pages are skipped")
	assert.Empty(t, tree.Missing())
}

func TestResolve_LocalizedPresetGenerators(t *testing.T) {
	tree := Resolve(site.Localized(), projectIndex(t))
	require.Equal(t, []string{"Guides", "Structures", "Generators", "Reference"}, labels(tree.Groups))
	assert.Equal(t, []string{"Range"}, labels(tree.Groups[2].Entries))
}

func TestResolve_MissingManualLink(t *testing.T) {
	cfg := &site.Config{
		Title: "ARA",
		Sidebar: []site.NavigationGroup{
			site.ManualGroup("Guides",
				site.Link("Example Guide", "/guides/example/"),
				site.Link("Nowhere", "/guides/nowhere/"),
				site.Link("Upstream", "https://github.com/sage-code/ara"),
			),
		},
	}
	tree := Resolve(cfg, projectIndex(t))
	entries := tree.Groups[0].Entries
	assert.False(t, entries[0].Missing)
	assert.True(t, entries[1].Missing)
	assert.False(t, entries[2].Missing, "external links are not looked up")
	assert.Nil(t, entries[2].Page)

	missing := tree.Missing()
	require.Len(t, missing, 1)
	assert.Equal(t, "/guides/nowhere/", missing[0].Link)
}

func TestResolve_NilIndex(t *testing.T) {
	tree := Resolve(site.Starlight(), nil)
	require.Len(t, tree.Groups, 4)
	assert.Len(t, tree.Groups[0].Entries, 3)
	assert.Empty(t, tree.Groups[1].Entries)
	assert.Empty(t, tree.Missing())
}

func TestResolve_OrderedBeforeUnordered(t *testing.T) {
	pages := []*docs.Page{
		{RelPath: "ref/zeta.md", Dir: "ref", Slug: "ref/zeta", Fields: map[string]any{"title": "Zeta", "sidebar": map[string]any{"order": 1}}},
		{RelPath: "ref/alpha.md", Dir: "ref", Slug: "ref/alpha", Fields: map[string]any{"title": "Alpha"}},
		{RelPath: "ref/beta.md", Dir: "ref", Slug: "ref/beta", Fields: map[string]any{"title": "Beta", "sidebar": map[string]any{"order": 0}}},
		{RelPath: "ref/getting_started.md", Dir: "ref", Slug: "ref/getting_started", Fields: map[string]any{}},
	}
	ix, err := docs.NewIndex(pages)
	require.NoError(t, err)

	cfg := &site.Config{Title: "ARA", Sidebar: []site.NavigationGroup{site.AutoGroup("Reference", "ref")}}
	tree := Resolve(cfg, ix)
	assert.Equal(t, []string{"Beta", "Zeta", "Alpha", "Getting Started"}, labels(tree.Groups[0].Entries))
}

func TestResolve_FractionalOrder(t *testing.T) {
	pages := []*docs.Page{
		{RelPath: "ref/c.md", Dir: "ref", Slug: "ref/c", Fields: map[string]any{"title": "Two", "sidebar": map[string]any{"order": 2}}},
		{RelPath: "ref/a.md", Dir: "ref", Slug: "ref/a", Fields: map[string]any{"title": "One and a half", "sidebar": map[string]any{"order": 1.5}}},
		{RelPath: "ref/b.md", Dir: "ref", Slug: "ref/b", Fields: map[string]any{"title": "One", "sidebar": map[string]any{"order": 1}}},
	}
	ix, err := docs.NewIndex(pages)
	require.NoError(t, err)

	cfg := &site.Config{Title: "ARA", Sidebar: []site.NavigationGroup{site.AutoGroup("Reference", "ref")}}
	tree := Resolve(cfg, ix)
	assert.Equal(t, []string{"One", "One and a half", "Two"}, labels(tree.Groups[0].Entries))
}

func TestTreeLinks(t *testing.T) {
	tree := Resolve(site.Starlight(), projectIndex(t))
	var links []string
	for _, e := range tree.Links() {
		links = append(links, e.Link)
	}
	assert.Equal(t, []string{
		"/guides/example/", "/guides/contribution/", "/guides/markup/",
		"/structures/queue/", "/structures/stack/", "/structures/trees/binary-heap/",
		"/algorithms/searching/", "/algorithms/sorting/",
		"/reference/syntax/",
	}, links)
}

func TestDirLabel(t *testing.T) {
	assert.Equal(t, "Trees", DirLabel("structures/trees"))
	assert.Equal(t, "Binary Heap", DirLabel("binary-heap"))
	assert.Equal(t, "Getting Started", DirLabel("getting_started"))
}

func TestDirLabel_Concurrent(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				assert.Equal(t, "Binary Heap", DirLabel("structures/binary-heap"))
			}
		}()
	}
	wg.Wait()
}

func TestWriteText(t *testing.T) {
	cfg := &site.Config{
		Title: "ARA",
		Sidebar: []site.NavigationGroup{
			site.ManualGroup("Guides", site.Link("Nowhere", "/guides/nowhere/")),
			site.AutoGroup("Structures", "structures"),
		},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, Resolve(cfg, projectIndex(t))))
	assert.Equal(t, `Guides
  - Nowhere -> /guides/nowhere/ MISSING
Structures [structures/]
  - Queue -> /structures/queue/
  - Stack -> /structures/stack/
  Trees [structures/trees/]
    - Binary Heap -> /structures/trees/binary-heap/ (New)
`, buf.String())
}
