package pipeline

import (
	"context"
	"errors"
	"time"

	"github.com/sage-code/ara-docs/internal/metrics"
)

// Report summarizes one pipeline run.
type Report struct {
	BuildID        string                      `json:"build_id"`
	Start          time.Time                   `json:"start"`
	End            time.Time                   `json:"end"`
	Stages         []StageName                 `json:"stages"`
	StageDurations map[StageName]time.Duration `json:"stage_durations"`
	Pages          int                         `json:"pages"`
	Errors         int                         `json:"errors"`
	Warnings       int                         `json:"warnings"`
	Outputs        []string                    `json:"outputs,omitempty"`
	Outcome        metrics.BuildOutcomeLabel   `json:"outcome"`
}

func newReport(buildID string, start time.Time) *Report {
	return &Report{BuildID: buildID, Start: start, StageDurations: map[StageName]time.Duration{}}
}

func (r *Report) recordStage(name StageName, d time.Duration) {
	r.Stages = append(r.Stages, name)
	r.StageDurations[name] = d
}

func (r *Report) finish(end time.Time, st *State, err error) {
	r.End = end
	if st.Index != nil {
		r.Pages = st.Index.Len()
	}
	if st.Check != nil {
		r.Errors = st.Check.ErrorCount()
		r.Warnings = st.Check.WarningCount()
	}
	r.Outputs = st.Outputs

	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		r.Outcome = metrics.OutcomeCanceled
	case err != nil:
		r.Outcome = metrics.OutcomeFailed
	case r.Errors > 0 || r.Warnings > 0:
		r.Outcome = metrics.OutcomeWarning
	default:
		r.Outcome = metrics.OutcomeSuccess
	}
}

// Duration is the wall time of the run.
func (r *Report) Duration() time.Duration {
	return r.End.Sub(r.Start)
}
