package testutils

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteTree writes files (relative path -> content) below root.
func WriteTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		full := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(full), 0o750); err != nil {
			t.Fatalf("mkdir %s: %v", rel, err)
		}
		if err := os.WriteFile(full, []byte(content), 0o600); err != nil {
			t.Fatalf("write %s: %v", rel, err)
		}
	}
}

// ProjectFiles is a small documentation project matching the Starlight preset:
// every manual guide link resolves and every autogenerate directory has pages.
func ProjectFiles() map[string]string {
	return map[string]string{
		"src/styles/custom.css":                  ":root { --sl-color-accent: #7c3aed; }\n",
		"src/content/docs/index.mdx":             "---\ntitle: ARA\ntemplate: splash\n---\nWelcome.\n",
		"src/content/docs/guides/example.md":     "---\ntitle: Example Guide\n---\nSee [stack](/structures/stack/).\n",
		"src/content/docs/guides/contribution.md": "---\ntitle: Contribution\n---\nHow to contribute.\n",
		"src/content/docs/guides/markup.md":      "---\ntitle: MD Markup\n---\nMarkup rules.\n",
		"src/content/docs/structures/stack.md":   "---\ntitle: Stack\nsidebar:\n  order: 2\n---\nLIFO.\n",
		"src/content/docs/structures/queue.md":   "---\ntitle: Queue\nsidebar:\n  order: 1\n---\nFIFO.\n",
		"src/content/docs/structures/trees/binary-heap.md": "---\ntitle: Binary Heap\nsidebar:\n  badge: New\n---\nHeap.\n",
		"src/content/docs/algorithms/sorting.md":           "---\ntitle: Sorting\n---\nSee [queue](/structures/queue/).\n",
		"src/content/docs/algorithms/searching.md":         "---\ntitle: Searching\nsidebar:\n  label: Search\n---\nFind.\n",
		"src/content/docs/generators/range.md":             "---\ntitle: Range\n---\nRanges.\n",
		"src/content/docs/reference/syntax.md":             "---\ntitle: Syntax\nsidebar:\n  order: 1\n---\nGrammar.\n",
		"src/content/docs/reference/internals.md":          "---\ntitle: Internals\nsidebar:\n  hidden: true\n---\nHidden.\n",
		"src/content/docs/reference/wip.md":                "---\ntitle: Work in progress\ndraft: true\n---\nDraft.\n",
	}
}

// NewProject writes ProjectFiles to a temporary directory and returns it.
func NewProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	WriteTree(t, root, ProjectFiles())
	return root
}
