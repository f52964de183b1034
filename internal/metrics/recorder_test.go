package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNoopRecorderImplementsRecorder(t *testing.T) {
	var r Recorder = NoopRecorder{}
	assert.NotPanics(t, func() {
		r.ObserveStageDuration("render", time.Millisecond)
		r.ObserveBuildDuration(time.Millisecond)
		r.IncStageResult("render", ResultFatal)
		r.IncBuildOutcome(OutcomeCanceled)
		r.SetPages(0)
		r.IncIssues("schema", "ERROR", 1)
	})
}

var (
	_ Recorder = NoopRecorder{}
	_ Recorder = (*PrometheusRecorder)(nil)
)
