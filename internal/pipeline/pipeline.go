// Package pipeline runs a documentation build as a sequence of timed stages:
// load the site configuration, discover pages, check, resolve the sidebar and
// render the outputs.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/sage-code/ara-docs/internal/check"
	"github.com/sage-code/ara-docs/internal/collection"
	"github.com/sage-code/ara-docs/internal/config"
	"github.com/sage-code/ara-docs/internal/docs"
	derrors "github.com/sage-code/ara-docs/internal/foundation/errors"
	"github.com/sage-code/ara-docs/internal/logfields"
	"github.com/sage-code/ara-docs/internal/metrics"
	"github.com/sage-code/ara-docs/internal/render"
	"github.com/sage-code/ara-docs/internal/sidebar"
	"github.com/sage-code/ara-docs/internal/site"
)

// StageName identifies a build stage.
type StageName string

// Canonical stage names, in run order.
const (
	StageLoad     StageName = "load"
	StageDiscover StageName = "discover"
	StageCheck    StageName = "check"
	StageResolve  StageName = "resolve"
	StageRender   StageName = "render"
)

// State carries what the stages produce.
type State struct {
	BuildID     string
	Site        *site.Config
	Collections collection.Collections
	Index       *docs.Index
	Check       *check.Result
	Tree        sidebar.Tree
	Manifest    *render.Manifest
	Outputs     []string

	// gate makes the check stage fail the build on blocking issues.
	gate bool
}

type stageFunc func(ctx context.Context, p *Pipeline, st *State) error

type stageDef struct {
	Name StageName
	Fn   stageFunc
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithRecorder sets the metrics recorder (NoopRecorder by default).
func WithRecorder(r metrics.Recorder) Option {
	return func(p *Pipeline) {
		if r != nil {
			p.recorder = r
		}
	}
}

// WithClock overrides time.Now for manifests and reports.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) { p.now = now }
}

// WithCollections overrides the content collections (collection.Default by default).
func WithCollections(c collection.Collections) Option {
	return func(p *Pipeline) { p.collections = c }
}

// Pipeline builds the site described by a configuration.
type Pipeline struct {
	cfg         *config.Config
	recorder    metrics.Recorder
	now         func() time.Time
	collections collection.Collections
}

// New creates a pipeline for cfg.
func New(cfg *config.Config, opts ...Option) *Pipeline {
	p := &Pipeline{cfg: cfg, recorder: metrics.NoopRecorder{}, now: time.Now}
	for _, o := range opts {
		o(p)
	}
	if p.collections == nil {
		p.collections = collection.Default()
	}
	return p
}

// Config returns the pipeline configuration.
func (p *Pipeline) Config() *config.Config { return p.cfg }

// Build runs every stage. A check result with errors (or warnings when
// check.fail_on_warnings is set) fails the build before anything is written.
func (p *Pipeline) Build(ctx context.Context) (*State, *Report, error) {
	return p.run(ctx, &State{gate: true}, []stageDef{
		{StageLoad, stageLoad},
		{StageDiscover, stageDiscover},
		{StageCheck, stageCheck},
		{StageResolve, stageResolve},
		{StageRender, stageRender},
	})
}

// Check loads, discovers and checks without rendering. Issues never fail
// the run; callers inspect State.Check.
func (p *Pipeline) Check(ctx context.Context) (*State, *Report, error) {
	return p.run(ctx, &State{}, []stageDef{
		{StageLoad, stageLoad},
		{StageDiscover, stageDiscover},
		{StageCheck, stageCheck},
	})
}

// Resolve loads, discovers and resolves the sidebar without checking or rendering.
func (p *Pipeline) Resolve(ctx context.Context) (*State, *Report, error) {
	return p.run(ctx, &State{}, []stageDef{
		{StageLoad, stageLoad},
		{StageDiscover, stageDiscover},
		{StageResolve, stageResolve},
	})
}

// run executes stages in order, recording timing and stopping on the first error.
func (p *Pipeline) run(ctx context.Context, st *State, stages []stageDef) (*State, *Report, error) {
	report := newReport(uuid.NewString(), p.now())
	st.BuildID = report.BuildID
	log := slog.With(logfields.BuildID(report.BuildID))

	var runErr error
	for _, def := range stages {
		if err := ctx.Err(); err != nil {
			p.recorder.IncStageResult(string(def.Name), metrics.ResultCanceled)
			runErr = err
			break
		}
		t0 := time.Now()
		err := def.Fn(ctx, p, st)
		dur := time.Since(t0)
		report.recordStage(def.Name, dur)
		p.recorder.ObserveStageDuration(string(def.Name), dur)

		result := stageResult(err)
		if err == nil && def.Name == StageCheck && st.Check != nil && len(st.Check.Issues) > 0 {
			result = metrics.ResultWarning
		}
		p.recorder.IncStageResult(string(def.Name), result)
		log.Debug("Stage complete", logfields.Stage(string(def.Name)), logfields.DurationMS(float64(dur.Microseconds())/1000))

		if err != nil {
			runErr = err
			break
		}
	}

	report.finish(p.now(), st, runErr)
	p.recorder.ObserveBuildDuration(report.Duration())
	p.recorder.IncBuildOutcome(report.Outcome)
	if st.Index != nil {
		p.recorder.SetPages(st.Index.Len())
	}
	if runErr != nil {
		log.Warn("Build failed", logfields.Error(runErr), slog.String("outcome", string(report.Outcome)))
		return st, report, runErr
	}
	log.Info("Build finished", slog.String("outcome", string(report.Outcome)),
		logfields.DurationMS(float64(report.Duration().Milliseconds())))
	return st, report, nil
}

func stageResult(err error) metrics.ResultLabel {
	switch {
	case err == nil:
		return metrics.ResultSuccess
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return metrics.ResultCanceled
	default:
		return metrics.ResultFatal
	}
}

func stageLoad(_ context.Context, p *Pipeline, st *State) error {
	cfg, err := p.cfg.SiteConfig()
	if err != nil {
		return err
	}
	st.Site = cfg
	st.Collections = p.collections
	return nil
}

func stageDiscover(ctx context.Context, p *Pipeline, st *State) error {
	ix, err := docs.Discover(ctx, p.cfg.ContentPath())
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		return derrors.WrapError(err, derrors.CategoryContent, "content discovery failed").
			WithContext("content_dir", p.cfg.ContentPath()).
			Build()
	}
	st.Index = ix
	return nil
}

func stageCheck(_ context.Context, p *Pipeline, st *State) error {
	res := check.NewChecker().Run(&check.Input{
		ProjectRoot: p.cfg.ProjectPath(),
		Site:        st.Site,
		Collections: st.Collections,
		Index:       st.Index,
	})
	st.Check = res
	for _, issue := range res.Issues {
		p.recorder.IncIssues(issue.Rule, issue.Severity.String(), 1)
	}
	if !st.gate {
		return nil
	}
	if res.HasErrors() || (p.cfg.Check.FailOnWarnings && res.HasWarnings()) {
		return derrors.ValidationError("documentation check failed").
			WithContext("errors", res.ErrorCount()).
			WithContext("warnings", res.WarningCount()).
			WithCause(fmt.Errorf("%d error(s), %d warning(s); run the check command for details", res.ErrorCount(), res.WarningCount())).
			Build()
	}
	return nil
}

func stageResolve(_ context.Context, _ *Pipeline, st *State) error {
	st.Tree = sidebar.Resolve(st.Site, st.Index)
	for _, g := range st.Tree.Groups {
		slog.Debug("Sidebar group resolved", logfields.Group(g.Label), logfields.Count(len(g.Entries)))
	}
	return nil
}

func stageRender(_ context.Context, p *Pipeline, st *State) error {
	m := render.NewManifest(st.Site, st.Tree, st.Collections, st.Index, p.now())
	m.BuildID = st.BuildID
	st.Manifest = m
	outputs, err := render.WriteAll(p.cfg.OutputPath(), m, p.cfg.Output.Formats)
	st.Outputs = outputs
	if err != nil {
		return derrors.WrapError(err, derrors.CategoryRender, "failed to write outputs").
			WithContext("output_dir", p.cfg.OutputPath()).
			Fatal().
			Build()
	}
	for _, o := range outputs {
		slog.Debug("Output written", logfields.Path(o))
	}
	return nil
}
