package source

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/randalmurphal/ctxkit/assembler"
)

// Tracker is the part of an assembler.Assembler the watcher drives.
type Tracker interface {
	Members() []string
	Refresh(ctx context.Context, id string) error
	Remove(id string) bool
	OnChange(fn assembler.Listener) (unsubscribe func())
}

// WatchOptions configures a Watcher.
type WatchOptions struct {
	// Prune removes members whose file is deleted or renamed away.
	// When false the last cached content is kept.
	Prune bool

	// Logger receives refresh failures. Default: slog.Default().
	Logger *slog.Logger
}

// Watcher keeps a Tracker's cached content in sync with the filesystem.
// It watches the parent directory of every member, which survives the
// write-to-temp-and-rename saves most editors perform.
type Watcher struct {
	target  Tracker
	opts    WatchOptions
	watcher *fsnotify.Watcher

	unsubscribe func()
	resync      chan struct{}

	mu   sync.Mutex
	dirs map[string]bool
}

// NewWatcher creates a watcher for target's members. Call Run to start
// processing events and Close to release the underlying watcher.
func NewWatcher(target Tracker, opts WatchOptions) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	w := &Watcher{
		target:  target,
		opts:    opts,
		watcher: fw,
		resync:  make(chan struct{}, 1),
		dirs:    make(map[string]bool),
	}
	w.unsubscribe = target.OnChange(func(assembler.Stats) error {
		select {
		case w.resync <- struct{}{}:
		default:
		}
		return nil
	})
	w.sync()
	return w, nil
}

// Run processes filesystem events until ctx is cancelled or the watcher
// is closed. It returns nil on cancellation.
func (w *Watcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil

		case <-w.resync:
			w.sync()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handle(ctx, event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			if errors.Is(err, fsnotify.ErrEventOverflow) {
				w.refreshAll(ctx)
				continue
			}
			w.opts.Logger.Warn("file watcher error", slog.Any("error", err))
		}
	}
}

// Close stops watching and detaches from the tracker.
func (w *Watcher) Close() error {
	if w.unsubscribe != nil {
		w.unsubscribe()
	}
	return w.watcher.Close()
}

// Dirs returns the directories currently watched.
func (w *Watcher) Dirs() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]string, 0, len(w.dirs))
	for d := range w.dirs {
		out = append(out, d)
	}
	return out
}

// sync makes the watched directory set match the tracker's members.
func (w *Watcher) sync() {
	want := make(map[string]bool)
	for _, id := range w.target.Members() {
		want[filepath.Dir(cleanPath(id))] = true
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	for dir := range w.dirs {
		if !want[dir] {
			_ = w.watcher.Remove(dir)
			delete(w.dirs, dir)
		}
	}
	for dir := range want {
		if w.dirs[dir] {
			continue
		}
		if err := w.watcher.Add(dir); err != nil {
			w.opts.Logger.Warn("cannot watch directory",
				slog.String("dir", dir),
				slog.Any("error", err))
			continue
		}
		w.dirs[dir] = true
	}
}

func (w *Watcher) handle(ctx context.Context, event fsnotify.Event) {
	id, ok := w.memberFor(event.Name)
	if !ok {
		return
	}

	switch {
	case event.Has(fsnotify.Write) || event.Has(fsnotify.Create):
		w.refresh(ctx, id)

	case event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename):
		// Editors that save by rename recreate the file immediately.
		if _, err := os.Stat(event.Name); err == nil {
			w.refresh(ctx, id)
			return
		}
		if w.opts.Prune && w.target.Remove(id) {
			w.opts.Logger.Info("removed deleted file from context", slog.String("id", id))
		}
	}
}

func (w *Watcher) refresh(ctx context.Context, id string) {
	if err := w.target.Refresh(ctx, id); err != nil && !errors.Is(err, assembler.ErrNotMember) {
		w.opts.Logger.Warn("failed to refresh context file",
			slog.String("id", id),
			slog.Any("error", err))
	}
}

func (w *Watcher) refreshAll(ctx context.Context) {
	for _, id := range w.target.Members() {
		w.refresh(ctx, id)
	}
}

func (w *Watcher) memberFor(name string) (string, bool) {
	name = cleanPath(name)
	for _, id := range w.target.Members() {
		if cleanPath(id) == name {
			return id, true
		}
	}
	return "", false
}

func cleanPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return filepath.Clean(p)
}
