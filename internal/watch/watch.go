// Package watch rebuilds the site when documentation sources change.
//
// Content directories are watched recursively through fsnotify. Single files
// (the configuration file) are watched through their parent directory, which
// survives editors that replace files on save. Bursts of events are debounced
// into one rebuild, and rebuilds never overlap: a change arriving during a
// rebuild queues exactly one follow-up. An optional periodic rescan through
// gocron covers filesystems that do not deliver change notifications.
package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-co-op/gocron/v2"

	"github.com/sage-code/ara-docs/internal/logfields"
)

// DefaultDebounce is the quiet period after the last event before a rebuild starts.
const DefaultDebounce = 300 * time.Millisecond

// Reason says why a rebuild was requested.
type Reason string

const (
	ReasonChange Reason = "change"
	ReasonRescan Reason = "rescan"
)

// RebuildFunc performs one rebuild. Errors are logged and handed to
// Options.OnResult; they never stop the watcher.
type RebuildFunc func(ctx context.Context, reason Reason) error

// Options configures a Watcher.
type Options struct {
	// Dirs are watched recursively; directories created later are added.
	Dirs []string
	// Files are watched individually.
	Files []string
	// Debounce defaults to DefaultDebounce.
	Debounce time.Duration
	// RescanInterval schedules periodic rebuilds; zero disables them.
	RescanInterval time.Duration
	// OnResult is called after every rebuild.
	OnResult func(reason Reason, err error)
}

// Watcher runs rebuilds in response to filesystem changes.
type Watcher struct {
	opts    Options
	rebuild RebuildFunc
	fsw     *fsnotify.Watcher
	files   map[string]bool

	requests chan Reason

	mu    sync.Mutex
	timer *time.Timer
}

// New creates a watcher. Nothing is watched until Run.
func New(opts Options, rebuild RebuildFunc) (*Watcher, error) {
	if rebuild == nil {
		return nil, errors.New("watch: rebuild function is required")
	}
	if len(opts.Dirs) == 0 && len(opts.Files) == 0 {
		return nil, errors.New("watch: nothing to watch")
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.RescanInterval < 0 {
		return nil, fmt.Errorf("watch: negative rescan interval %s", opts.RescanInterval)
	}
	return &Watcher{
		opts:     opts,
		rebuild:  rebuild,
		files:    map[string]bool{},
		requests: make(chan Reason, 1),
	}, nil
}

// Run watches until ctx is canceled. It returns nil on cancellation.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fsnotify: %w", err)
	}
	w.fsw = fsw
	defer func() { _ = fsw.Close() }()

	for _, dir := range w.opts.Dirs {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return err
		}
		if info, err := os.Stat(abs); err != nil || !info.IsDir() {
			return fmt.Errorf("watch: %s is not a directory", dir)
		}
		w.addDirsRecursive(abs)
	}
	for _, file := range w.opts.Files {
		abs, err := filepath.Abs(file)
		if err != nil {
			return err
		}
		w.files[abs] = true
		if err := fsw.Add(filepath.Dir(abs)); err != nil {
			return fmt.Errorf("watch %s: %w", file, err)
		}
	}

	var scheduler gocron.Scheduler
	if w.opts.RescanInterval > 0 {
		scheduler, err = w.startRescan()
		if err != nil {
			return err
		}
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		w.worker(ctx)
	}()

	slog.Info("Watching for changes",
		logfields.Count(len(w.opts.Dirs)+len(w.opts.Files)),
		slog.Duration("debounce", w.opts.Debounce),
		slog.Duration("rescan_interval", w.opts.RescanInterval))

	w.loop(ctx)

	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()
	if scheduler != nil {
		if err := scheduler.Shutdown(); err != nil {
			slog.Warn("Rescan scheduler shutdown failed", logfields.Error(err))
		}
	}
	wg.Wait()
	slog.Info("Watcher stopped")
	return nil
}

func (w *Watcher) startRescan() (gocron.Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
	}
	_, err = s.NewJob(
		gocron.DurationJob(w.opts.RescanInterval),
		gocron.NewTask(func() {
			for _, dir := range w.opts.Dirs {
				if abs, err := filepath.Abs(dir); err == nil {
					w.addDirsRecursive(abs)
				}
			}
			w.request(ReasonRescan)
		}),
		gocron.WithName("rescan"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = s.Shutdown()
		return nil, fmt.Errorf("failed to create rescan job: %w", err)
	}
	s.Start()
	return s, nil
}

func (w *Watcher) loop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handleEvent(ev)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			slog.Warn("Watcher error", logfields.Error(err))
		}
	}
}

func (w *Watcher) handleEvent(ev fsnotify.Event) {
	if ev.Op == fsnotify.Chmod || ShouldIgnore(ev.Name) {
		return
	}
	dir := filepath.Dir(ev.Name)
	if w.watchesFileDir(dir) && !w.files[ev.Name] && !w.inWatchedTree(ev.Name) {
		return
	}
	if ev.Op&fsnotify.Create == fsnotify.Create {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			w.addDirsRecursive(ev.Name)
		}
	}
	slog.Debug("File change detected", logfields.Path(ev.Name), slog.String("op", ev.Op.String()))
	w.trigger()
}

// watchesFileDir reports whether dir is watched only for single files.
func (w *Watcher) watchesFileDir(dir string) bool {
	for f := range w.files {
		if filepath.Dir(f) == dir {
			return true
		}
	}
	return false
}

func (w *Watcher) inWatchedTree(path string) bool {
	for _, d := range w.opts.Dirs {
		abs, err := filepath.Abs(d)
		if err != nil {
			continue
		}
		if path == abs || strings.HasPrefix(path, abs+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// trigger (re)starts the debounce timer.
func (w *Watcher) trigger() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.opts.Debounce, func() { w.request(ReasonChange) })
}

// request queues a rebuild; a request already queued absorbs it.
func (w *Watcher) request(reason Reason) {
	select {
	case w.requests <- reason:
	default:
	}
}

func (w *Watcher) worker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case reason := <-w.requests:
			start := time.Now()
			slog.Info("Rebuilding", slog.String("reason", string(reason)))
			err := w.rebuild(ctx, reason)
			if err != nil {
				slog.Warn("Rebuild failed", logfields.Error(err))
			} else {
				slog.Info("Rebuild complete", logfields.DurationMS(float64(time.Since(start).Milliseconds())))
			}
			if w.opts.OnResult != nil {
				w.opts.OnResult(reason, err)
			}
		}
	}
}

func (w *Watcher) addDirsRecursive(root string) {
	_ = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			if err := w.fsw.Add(path); err != nil {
				slog.Warn("Watch add failed", logfields.Path(path), logfields.Error(err))
			}
		}
		return nil
	})
}

// ShouldIgnore returns true for paths that never trigger rebuilds: hidden
// files, editor swap and backup files, and OS metadata files.
func ShouldIgnore(path string) bool {
	base := filepath.Base(path)
	switch {
	case strings.HasPrefix(base, "."):
		return true
	case strings.HasSuffix(base, "~"), strings.HasSuffix(base, ".swp"), strings.HasSuffix(base, ".swx"):
		return true
	case strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#"):
		return true
	case base == "Thumbs.db":
		return true
	}
	return false
}
