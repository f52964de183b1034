package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type recorder struct {
	results chan Reason
	calls   atomic.Int32
}

func newRecorder() *recorder {
	return &recorder{results: make(chan Reason, 16)}
}

func (r *recorder) rebuild(_ context.Context, reason Reason) error {
	r.calls.Add(1)
	r.results <- reason
	return nil
}

func (r *recorder) wait(t *testing.T) Reason {
	t.Helper()
	select {
	case reason := <-r.results:
		return reason
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for rebuild")
		return ""
	}
}

func start(t *testing.T, w *Watcher) (context.CancelFunc, <-chan error) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	// Give Run time to register watches.
	time.Sleep(100 * time.Millisecond)
	return cancel, done
}

func stop(t *testing.T, cancel context.CancelFunc, done <-chan error) {
	t.Helper()
	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatcher_DebouncesBurstIntoOneRebuild(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "guides"), 0o750))
	rec := newRecorder()
	w, err := New(Options{Dirs: []string{dir}, Debounce: 50 * time.Millisecond}, rec.rebuild)
	require.NoError(t, err)

	cancel, done := start(t, w)
	for i := range 5 {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "guides", "example.md"), []byte{byte('a' + i)}, 0o600))
	}
	assert.Equal(t, ReasonChange, rec.wait(t))
	time.Sleep(200 * time.Millisecond)
	assert.Equal(t, int32(1), rec.calls.Load())

	stop(t, cancel, done)
}

func TestWatcher_PicksUpNewDirectories(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	dir := t.TempDir()
	rec := newRecorder()
	w, err := New(Options{Dirs: []string{dir}, Debounce: 20 * time.Millisecond}, rec.rebuild)
	require.NoError(t, err)

	cancel, done := start(t, w)
	sub := filepath.Join(dir, "structures")
	require.NoError(t, os.Mkdir(sub, 0o750))
	rec.wait(t)

	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(sub, "stack.md"), []byte("# Stack\n"), 0o600))
	rec.wait(t)

	stop(t, cancel, done)
}

func TestWatcher_ConfigFileOnly(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	dir := t.TempDir()
	cfg := filepath.Join(dir, "aradocs.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("preset: starlight\n"), 0o600))
	rec := newRecorder()
	w, err := New(Options{Files: []string{cfg}, Debounce: 20 * time.Millisecond}, rec.rebuild)
	require.NoError(t, err)

	cancel, done := start(t, w)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "unrelated.txt"), []byte("x"), 0o600))
	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, int32(0), rec.calls.Load())

	require.NoError(t, os.WriteFile(cfg, []byte("preset: localized\n"), 0o600))
	rec.wait(t)

	stop(t, cancel, done)
}

func TestWatcher_PeriodicRescan(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	rec := newRecorder()
	w, err := New(Options{Dirs: []string{t.TempDir()}, RescanInterval: 50 * time.Millisecond}, rec.rebuild)
	require.NoError(t, err)

	cancel, done := start(t, w)
	assert.Equal(t, ReasonRescan, rec.wait(t))
	stop(t, cancel, done)
}

func TestWatcher_ReportsRebuildErrors(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	dir := t.TempDir()
	boom := errors.New("boom")
	results := make(chan error, 4)
	w, err := New(Options{
		Dirs:     []string{dir},
		Debounce: 20 * time.Millisecond,
		OnResult: func(_ Reason, err error) { results <- err },
	}, func(context.Context, Reason) error { return boom })
	require.NoError(t, err)

	cancel, done := start(t, w)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.md"), []byte("a"), 0o600))
	select {
	case got := <-results:
		assert.ErrorIs(t, got, boom)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for result")
	}
	stop(t, cancel, done)
}

func TestWatcher_IgnoredFilesDoNotTrigger(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	dir := t.TempDir()
	rec := newRecorder()
	w, err := New(Options{Dirs: []string{dir}, Debounce: 20 * time.Millisecond}, rec.rebuild)
	require.NoError(t, err)

	cancel, done := start(t, w)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".example.md.swp"), []byte("x"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "example.md~"), []byte("x"), 0o600))
	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, int32(0), rec.calls.Load())
	stop(t, cancel, done)
}

func TestNew_Validation(t *testing.T) {
	_, err := New(Options{Dirs: []string{"."}}, nil)
	require.Error(t, err)
	_, err = New(Options{}, func(context.Context, Reason) error { return nil })
	require.Error(t, err)
	_, err = New(Options{Dirs: []string{"."}, RescanInterval: -time.Second}, func(context.Context, Reason) error { return nil })
	require.Error(t, err)

	w, err := New(Options{Dirs: []string{"."}}, func(context.Context, Reason) error { return nil })
	require.NoError(t, err)
	assert.Equal(t, DefaultDebounce, w.opts.Debounce)
}

func TestRun_MissingDirectory(t *testing.T) {
	w, err := New(Options{Dirs: []string{filepath.Join(t.TempDir(), "nope")}}, func(context.Context, Reason) error { return nil })
	require.NoError(t, err)
	require.Error(t, w.Run(context.Background()))
}

func TestShouldIgnore(t *testing.T) {
	for _, p := range []string{"/d/.hidden", "/d/a.md~", "/d/.a.md.swp", "/d/a.swx", "/d/#a.md#", "/d/Thumbs.db"} {
		assert.True(t, ShouldIgnore(p), p)
	}
	assert.False(t, ShouldIgnore("/d/guides/example.md"))
}
