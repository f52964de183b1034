package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sage-code/ara-docs/internal/config"
	derrors "github.com/sage-code/ara-docs/internal/foundation/errors"
	"github.com/sage-code/ara-docs/internal/metrics"
	"github.com/sage-code/ara-docs/internal/render"
	"github.com/sage-code/ara-docs/internal/testutil/testutils"
)

type fakeRecorder struct {
	mu       sync.Mutex
	stages   map[string]metrics.ResultLabel
	outcomes []metrics.BuildOutcomeLabel
	pages    int
	issues   map[string]int
}

func newFakeRecorder() *fakeRecorder {
	return &fakeRecorder{stages: map[string]metrics.ResultLabel{}, issues: map[string]int{}}
}

func (f *fakeRecorder) ObserveStageDuration(string, time.Duration) {}
func (f *fakeRecorder) ObserveBuildDuration(time.Duration)         {}
func (f *fakeRecorder) IncStageResult(stage string, r metrics.ResultLabel) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stages[stage] = r
}
func (f *fakeRecorder) IncBuildOutcome(o metrics.BuildOutcomeLabel) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.outcomes = append(f.outcomes, o)
}
func (f *fakeRecorder) SetPages(n int) { f.pages = n }
func (f *fakeRecorder) IncIssues(rule, severity string, n int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.issues[rule+"/"+severity] += n
}

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func projectConfig(t *testing.T, extra map[string]string, formats ...string) (*config.Config, string) {
	t.Helper()
	root := testutils.NewProject(t)
	testutils.WriteTree(t, root, extra)
	cfg := config.Default()
	cfg.SetBaseDir(root)
	if len(formats) > 0 {
		cfg.Output.Formats = formats
	}
	return cfg, root
}

func TestBuild_WritesOutputs(t *testing.T) {
	cfg, root := projectConfig(t, nil, render.FormatJSON, render.FormatAstro)
	rec := newFakeRecorder()

	st, report, err := New(cfg, WithRecorder(rec), WithClock(func() time.Time { return fixedNow })).Build(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []StageName{StageLoad, StageDiscover, StageCheck, StageResolve, StageRender}, report.Stages)
	assert.Equal(t, metrics.OutcomeSuccess, report.Outcome)
	assert.Equal(t, 13, report.Pages)
	assert.NotEmpty(t, report.BuildID)
	assert.Len(t, report.StageDurations, 5)

	require.NotNil(t, st.Manifest)
	assert.Equal(t, "ARA", st.Manifest.Site.Title)
	assert.Equal(t, fixedNow, st.Manifest.GeneratedAt)
	assert.Equal(t, report.BuildID, st.Manifest.BuildID)

	out := testutils.NewFileAssertions(t, filepath.Join(root, config.DefaultOutputDir))
	out.AssertFileExists(render.ManifestJSON).
		AssertFileContains(render.AstroConfigFile, "title: 'ARA',").
		AssertFileContains(render.ContentConfigFile, "docs: defineCollection({ schema: docsSchema() }),").
		AssertFileNotExists(render.ManifestYAML)

	m, err := render.ReadManifestJSON([]byte(out.Read(render.ManifestJSON)))
	require.NoError(t, err)
	assert.Equal(t, 13, len(m.Pages))

	assert.Equal(t, metrics.ResultSuccess, rec.stages[string(StageRender)])
	assert.Equal(t, []metrics.BuildOutcomeLabel{metrics.OutcomeSuccess}, rec.outcomes)
	assert.Equal(t, 13, rec.pages)
}

func TestBuild_FailsOnCheckErrors(t *testing.T) {
	cfg, root := projectConfig(t, map[string]string{
		"src/content/docs/guides/untitled.md": "---\ndescription: no title\n---\n",
	})
	rec := newFakeRecorder()

	st, report, err := New(cfg, WithRecorder(rec)).Build(context.Background())
	require.Error(t, err)
	assert.True(t, derrors.HasCategory(err, derrors.CategoryValidation))
	assert.Equal(t, metrics.OutcomeFailed, report.Outcome)
	assert.Equal(t, 1, report.Errors)
	assert.NotContains(t, report.Stages, StageRender)
	assert.Nil(t, st.Manifest)
	assert.Equal(t, metrics.ResultFatal, rec.stages[string(StageCheck)])
	assert.Equal(t, 1, rec.issues["schema/ERROR"])

	_, statErr := os.Stat(filepath.Join(root, config.DefaultOutputDir))
	assert.True(t, os.IsNotExist(statErr))
}

func TestBuild_WarningsAndFailOnWarnings(t *testing.T) {
	extra := map[string]string{
		"src/content/docs/guides/links.md": "---\ntitle: Links\n---\n[gone](/guides/gone/)\n",
	}

	cfg, _ := projectConfig(t, extra)
	_, report, err := New(cfg).Build(context.Background())
	require.NoError(t, err)
	assert.Equal(t, metrics.OutcomeWarning, report.Outcome)
	assert.Equal(t, 1, report.Warnings)

	strict, _ := projectConfig(t, extra)
	strict.Check.FailOnWarnings = true
	_, report, err = New(strict).Build(context.Background())
	require.Error(t, err)
	assert.Equal(t, metrics.OutcomeFailed, report.Outcome)
}

func TestCheck_DoesNotFailOnIssues(t *testing.T) {
	cfg, _ := projectConfig(t, map[string]string{
		"src/content/docs/guides/untitled.md": "---\ndescription: no title\n---\n",
	})
	st, report, err := New(cfg).Check(context.Background())
	require.NoError(t, err)
	require.NotNil(t, st.Check)
	assert.Equal(t, 2, st.Check.ExitCode())
	assert.Equal(t, []StageName{StageLoad, StageDiscover, StageCheck}, report.Stages)
	assert.Equal(t, metrics.OutcomeWarning, report.Outcome)
}

func TestResolve_BuildsSidebar(t *testing.T) {
	cfg, _ := projectConfig(t, nil)
	st, _, err := New(cfg).Resolve(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, st.Tree.Groups)
	assert.Equal(t, "Guides", st.Tree.Groups[0].Label)
	assert.Empty(t, st.Tree.Missing())
	assert.Nil(t, st.Check)
}

func TestBuild_MissingContentDir(t *testing.T) {
	cfg := config.Default()
	cfg.SetBaseDir(t.TempDir())

	_, report, err := New(cfg).Build(context.Background())
	require.Error(t, err)
	assert.True(t, derrors.HasCategory(err, derrors.CategoryContent))
	assert.Equal(t, []StageName{StageLoad, StageDiscover}, report.Stages)
}

func TestBuild_Canceled(t *testing.T) {
	cfg, _ := projectConfig(t, nil)
	rec := newFakeRecorder()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, report, err := New(cfg, WithRecorder(rec)).Build(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, metrics.OutcomeCanceled, report.Outcome)
	assert.Empty(t, report.Stages)
	assert.Equal(t, metrics.ResultCanceled, rec.stages[string(StageLoad)])
}
