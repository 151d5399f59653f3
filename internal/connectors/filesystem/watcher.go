package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/docgrep/internal/core/domain"
	"github.com/custodia-labs/docgrep/internal/core/ports/driven"
	"github.com/custodia-labs/docgrep/internal/logger"
)

// Ensure Watcher implements the interface.
var _ driven.DocumentWatcher = (*Watcher)(nil)

// errWatcherClosed is returned by Watch after Close.
var errWatcherClosed = errors.New("watcher is closed")

// Watcher reports changes to local files.
type Watcher struct {
	includeHidden bool

	mu      sync.Mutex
	watcher *fsnotify.Watcher
	closed  bool
}

// NewWatcher creates a watcher. Hidden files are ignored unless includeHidden is set.
func NewWatcher(includeHidden bool) *Watcher {
	return &Watcher{includeHidden: includeHidden}
}

// Watch starts watching paths. Files are watched through their parent
// directory; directories are watched recursively.
func (w *Watcher) Watch(ctx context.Context, paths []string) (<-chan domain.DocumentChange, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil, errWatcherClosed
	}

	dirs, err := w.watchDirs(paths)
	if err != nil {
		return nil, err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	for _, dir := range dirs {
		if err := fw.Add(dir); err != nil {
			fw.Close()
			return nil, fmt.Errorf("watch %s: %w", dir, err)
		}
	}
	if w.watcher != nil {
		w.watcher.Close()
	}
	w.watcher = fw

	changes := make(chan domain.DocumentChange)
	go w.forward(ctx, fw, changes)
	logger.Debug("watching %d directories", len(dirs))
	return changes, nil
}

// Close stops watching. Idempotent.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true
	if w.watcher != nil {
		return w.watcher.Close()
	}
	return nil
}

func (w *Watcher) forward(ctx context.Context, fw *fsnotify.Watcher, changes chan<- domain.DocumentChange) {
	defer close(changes)
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-fw.Events:
			if !ok {
				return
			}
			change := w.handleFsEvent(event)
			if change == nil {
				continue
			}
			select {
			case changes <- *change:
			case <-ctx.Done():
				return
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			logger.Warn("watcher error: %v", err)
		}
	}
}

// watchDirs resolves paths to the set of directories to register.
func (w *Watcher) watchDirs(paths []string) ([]string, error) {
	seen := make(map[string]bool)
	var dirs []string
	add := func(dir string) {
		if !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}

	for _, p := range paths {
		root, err := filepath.Abs(PathFromURI(p))
		if err != nil {
			return nil, fmt.Errorf("root path error: %w", err)
		}
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("root path error: %w", err)
		}
		if !info.IsDir() {
			add(filepath.Dir(root))
			continue
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil || !d.IsDir() {
				return nil
			}
			if rel, _ := filepath.Rel(root, path); !w.includeHidden && isHidden(rel) {
				return filepath.SkipDir
			}
			add(path)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", root, err)
		}
	}
	return dirs, nil
}

// handleFsEvent converts an fsnotify event into a document change.
// Returns nil for events that do not affect a document.
func (w *Watcher) handleFsEvent(event fsnotify.Event) *domain.DocumentChange {
	if !w.includeHidden && isHidden(filepath.Base(event.Name)) {
		return nil
	}

	switch {
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		return &domain.DocumentChange{Type: domain.ChangeDeleted, URI: event.Name}

	case event.Has(fsnotify.Create), event.Has(fsnotify.Write):
		info, err := os.Stat(event.Name)
		if err != nil || info.IsDir() {
			return nil
		}
		content, err := os.ReadFile(event.Name)
		if err != nil {
			logger.Warn("failed to read %s: %v", event.Name, err)
			return nil
		}
		if isBinary(content) {
			return nil
		}

		changeType := domain.ChangeUpdated
		if event.Has(fsnotify.Create) {
			changeType = domain.ChangeCreated
		}
		return &domain.DocumentChange{Type: changeType, URI: event.Name, Text: string(content)}

	default:
		// Chmod only.
		return nil
	}
}
