package ingest

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher watches document directories and signals when a re-analysis is
// due. Changes are debounced: a burst of writes produces one signal.
type Watcher struct {
	watcher  *fsnotify.Watcher
	debounce time.Duration
	reader   *Reader
	logger   *slog.Logger

	pendingMu sync.Mutex
	pending   bool

	changes chan struct{}
}

// NewWatcher creates a watcher over the given roots (files or
// directories; directories are watched recursively).
func NewWatcher(reader *Reader, roots []string, debounce time.Duration, logger *slog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}

	w := &Watcher{
		watcher:  fsw,
		debounce: debounce,
		reader:   reader,
		logger:   logger,
		changes:  make(chan struct{}, 1),
	}

	for _, root := range roots {
		if err := w.addRecursive(root); err != nil {
			_ = fsw.Close()
			return nil, err
		}
	}
	return w, nil
}

// Changes returns the channel signaling that watched documents changed.
func (w *Watcher) Changes() <-chan struct{} {
	return w.changes
}

// Start begins processing filesystem events until the context is canceled.
func (w *Watcher) Start(ctx context.Context) {
	go w.loop(ctx)
	w.logger.Info("Document watcher started", "debounce", w.debounce)
}

// Stop closes the underlying filesystem watcher.
func (w *Watcher) Stop() error {
	return w.watcher.Close()
}

func (w *Watcher) loop(ctx context.Context) {
	ticker := time.NewTicker(w.debounce)
	defer ticker.Stop()
	defer close(w.changes)

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("Watch error", "error", err)
		case <-ticker.C:
			w.flush()
		}
	}
}

// handleEvent marks a pending change for relevant paths and adds watches
// for newly created directories.
func (w *Watcher) handleEvent(event fsnotify.Event) {
	if event.Op.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addRecursive(event.Name); err != nil {
				w.logger.Warn("Failed to watch new directory", "path", event.Name, "error", err)
			}
			return
		}
	}
	if !w.relevant(event.Name) {
		return
	}
	w.pendingMu.Lock()
	w.pending = true
	w.pendingMu.Unlock()
}

// flush emits one change signal when changes are pending.
func (w *Watcher) flush() {
	w.pendingMu.Lock()
	pending := w.pending
	w.pending = false
	w.pendingMu.Unlock()
	if !pending {
		return
	}
	select {
	case w.changes <- struct{}{}:
	default:
		// A signal is already queued; the next analysis picks it all up.
	}
}

// relevant reports whether a changed path is a document the reader accepts.
func (w *Watcher) relevant(path string) bool {
	return w.reader.accepts(path)
}

// addRecursive watches a file's directory, or a directory tree.
func (w *Watcher) addRecursive(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return w.watcher.Add(filepath.Dir(root))
	}
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		base := filepath.Base(path)
		if w.reader.excludes[base] && path != root {
			return filepath.SkipDir
		}
		if strings.HasPrefix(base, ".") && path != root {
			return filepath.SkipDir
		}
		return w.watcher.Add(path)
	})
}
