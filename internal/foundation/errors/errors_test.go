package errors

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifiedError_BuilderAndAccessors(t *testing.T) {
	err := NewError(CategoryContent, "invalid frontmatter").
		WithSeverity(SeverityWarning).
		WithContext("path", "guides/example.md").
		Build()

	assert.Equal(t, CategoryContent, err.Category())
	assert.Equal(t, SeverityWarning, err.Severity())
	assert.Equal(t, "invalid frontmatter", err.Message())
	path, ok := err.Context().GetString("path")
	require.True(t, ok)
	assert.Equal(t, "guides/example.md", path)
	assert.Equal(t, "[content:warning] invalid frontmatter", err.Error())
}

func TestClassifiedError_UnwrapThroughFmtWrap(t *testing.T) {
	cause := stderrors.New("disk gone")
	classified := WrapError(cause, CategoryFileSystem, "read page").Build()
	wrapped := fmt.Errorf("discover: %w", classified)

	require.True(t, IsClassified(wrapped))
	assert.True(t, HasCategory(wrapped, CategoryFileSystem))
	assert.ErrorIs(t, wrapped, cause)
	assert.Equal(t, CategoryInternal, GetCategory(cause))
	assert.Equal(t, SeverityError, GetSeverity(cause))
}

func TestClassifiedError_WithContextDoesNotMutateOriginal(t *testing.T) {
	base := ConfigError("bad preset").Build()
	extended := base.WithContext("preset", "nope")

	_, ok := base.Context().Get("preset")
	assert.False(t, ok)
	v, ok := extended.Context().GetString("preset")
	require.True(t, ok)
	assert.Equal(t, "nope", v)
	assert.True(t, stderrors.Is(extended, base))
}

func TestCLIErrorAdapter_ExitCodes(t *testing.T) {
	a := NewCLIErrorAdapter(false, nil)

	cases := []struct {
		err  error
		code int
	}{
		{nil, 0},
		{stderrors.New("plain"), 1},
		{ValidationError("x").Build(), 2},
		{NewError(CategoryNotFound, "x").Build(), 4},
		{ConfigError("x").Build(), 7},
		{InternalError("x").Build(), 10},
		{ContentError("x").Build(), 11},
		{RenderError("x").Build(), 11},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.code, a.ExitCodeFor(tc.err), "%v", tc.err)
	}
}

func TestCLIErrorAdapter_Report(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	a := NewCLIErrorAdapter(false, logger)

	var out bytes.Buffer
	code := a.Report(&out, WrapError(stderrors.New("no such file"), CategoryConfig, "load configuration").Fatal().Build())

	assert.Equal(t, 7, code)
	assert.Equal(t, "Error: load configuration: no such file\n", out.String())
	assert.Contains(t, logs.String(), "category=config")
}
