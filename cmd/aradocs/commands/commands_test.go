package commands

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sage-code/ara-docs/internal/config"
	derrors "github.com/sage-code/ara-docs/internal/foundation/errors"
	"github.com/sage-code/ara-docs/internal/render"
	"github.com/sage-code/ara-docs/internal/testutil/testutils"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cli := &CLI{stdout: &out}
	parser, err := kong.New(cli, kong.Vars{"version": "test"}, kong.Exit(func(int) {}))
	require.NoError(t, err)
	ctx, err := parser.Parse(args)
	require.NoError(t, err)
	err = ctx.Run(&Global{Logger: slog.Default()}, cli)
	return out.String(), err
}

func TestPresets(t *testing.T) {
	out, err := runCLI(t, "presets")
	require.NoError(t, err)
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "starlight")
	assert.Contains(t, out, "ARA")
}

func TestInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.DefaultFile)

	out, err := runCLI(t, "-c", path, "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote")
	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "starlight", cfg.Preset)

	_, err = runCLI(t, "-c", path, "init")
	require.Error(t, err)
	assert.True(t, derrors.HasCategory(err, derrors.CategoryConfig))

	_, err = runCLI(t, "-c", path, "init", "--force")
	require.NoError(t, err)
}

func TestBuild(t *testing.T) {
	root := testutils.NewProject(t)
	out, err := runCLI(t, "-c", filepath.Join(root, config.DefaultFile), "build", "-f", "json", "-f", "astro", "-o", "out")
	require.NoError(t, err)
	assert.Contains(t, out, "Built 13 pages")

	testutils.NewFileAssertions(t, filepath.Join(root, "out")).
		AssertFileExists(render.ManifestJSON).
		AssertFileContains(render.AstroConfigFile, "title: 'ARA',")
}

func TestBuild_InvalidFormat(t *testing.T) {
	root := testutils.NewProject(t)
	_, err := runCLI(t, "-c", filepath.Join(root, config.DefaultFile), "build", "-f", "pdf")
	require.Error(t, err)
	assert.True(t, derrors.HasCategory(err, derrors.CategoryValidation))
}

func TestBuild_FailsOnCheckErrors(t *testing.T) {
	root := testutils.NewProject(t)
	testutils.WriteTree(t, root, map[string]string{
		"src/content/docs/guides/untitled.md": "---\ndescription: no title\n---\n",
	})
	_, err := runCLI(t, "-c", filepath.Join(root, config.DefaultFile), "build")
	require.Error(t, err)
	assert.True(t, derrors.HasCategory(err, derrors.CategoryValidation))
}

func TestCheck(t *testing.T) {
	root := testutils.NewProject(t)
	cfgPath := filepath.Join(root, config.DefaultFile)

	_, err := runCLI(t, "-c", cfgPath, "check")
	require.NoError(t, err)

	testutils.WriteTree(t, root, map[string]string{
		"src/content/docs/guides/untitled.md": "---\ndescription: no title\n---\n",
	})
	out, err := runCLI(t, "-c", cfgPath, "check", "-f", "json")
	var exit *ExitError
	require.True(t, errors.As(err, &exit))
	assert.Equal(t, 2, exit.Code)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Contains(t, out, "guides/untitled.md")
}

func TestShow(t *testing.T) {
	root := testutils.NewProject(t)
	cfgPath := filepath.Join(root, config.DefaultFile)

	out, err := runCLI(t, "-c", cfgPath, "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Guides")
	assert.Contains(t, out, "- Queue -> /structures/queue/")

	out, err = runCLI(t, "-c", cfgPath, "show", "-f", "json")
	require.NoError(t, err)
	var tree map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &tree))
	assert.Contains(t, tree, "groups")
}
