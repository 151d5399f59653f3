package filesystem

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docgrep/internal/core/domain"
)

// waitForChange returns the first change of the wanted type for path.
func waitForChange(t *testing.T, changes <-chan domain.DocumentChange, path string, want domain.ChangeType) domain.DocumentChange {
	t.Helper()
	timeout := time.After(2 * time.Second)
	for {
		select {
		case change, ok := <-changes:
			require.True(t, ok, "channel closed before change arrived")
			if change.URI == path && change.Type == want {
				return change
			}
		case <-timeout:
			t.Fatalf("timeout waiting for %s change to %s", want, path)
		}
	}
}

func TestWatcher_Watch(t *testing.T) {
	t.Run("detects file creation", func(t *testing.T) {
		dir := t.TempDir()
		w := NewWatcher(false)
		defer w.Close()
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		changes, err := w.Watch(ctx, []string{dir})
		require.NoError(t, err)

		path := filepath.Join(dir, "new-file.txt")
		require.NoError(t, os.WriteFile(path, []byte("content"), 0o644))

		change := waitForChange(t, changes, path, domain.ChangeCreated)
		assert.Contains(t, []string{"", "content"}, change.Text)
	})

	t.Run("detects file modifications", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "test.txt")
		require.NoError(t, os.WriteFile(path, []byte("initial"), 0o644))

		w := NewWatcher(false)
		defer w.Close()
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		changes, err := w.Watch(ctx, []string{path})
		require.NoError(t, err)

		require.NoError(t, os.WriteFile(path, []byte("modified"), 0o644))

		waitForChange(t, changes, path, domain.ChangeUpdated)
	})

	t.Run("detects file deletions", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "to-delete.txt")
		require.NoError(t, os.WriteFile(path, []byte("delete me"), 0o644))

		w := NewWatcher(false)
		defer w.Close()
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		changes, err := w.Watch(ctx, []string{dir})
		require.NoError(t, err)

		require.NoError(t, os.Remove(path))

		waitForChange(t, changes, path, domain.ChangeDeleted)
	})

	t.Run("returns error for non-existent path", func(t *testing.T) {
		w := NewWatcher(false)
		defer w.Close()

		changes, err := w.Watch(context.Background(), []string{"/non/existent/path"})

		assert.Error(t, err)
		assert.Nil(t, changes)
		assert.Contains(t, err.Error(), "root path error")
	})

	t.Run("closes channel when context is cancelled", func(t *testing.T) {
		w := NewWatcher(false)
		defer w.Close()
		ctx, cancel := context.WithCancel(context.Background())

		changes, err := w.Watch(ctx, []string{t.TempDir()})
		require.NoError(t, err)

		cancel()

		select {
		case _, ok := <-changes:
			if ok {
				for range changes {
				}
			}
		case <-time.After(time.Second):
			t.Fatal("channel did not close after context cancellation")
		}
	})

	t.Run("returns error when watcher is closed", func(t *testing.T) {
		w := NewWatcher(false)
		require.NoError(t, w.Close())

		changes, err := w.Watch(context.Background(), []string{t.TempDir()})

		assert.Error(t, err)
		assert.Nil(t, changes)
		assert.Contains(t, err.Error(), "closed")
	})
}

func TestWatcher_Close(t *testing.T) {
	w := NewWatcher(false)

	assert.NoError(t, w.Close())
	assert.NoError(t, w.Close())
}

func TestHandleFsEvent(t *testing.T) {
	tests := []struct {
		name           string
		setupFile      bool
		setupDir       bool
		setupHidden    bool
		operation      fsnotify.Op
		expectedChange bool
		expectedType   domain.ChangeType
	}{
		{
			name:           "create file event",
			setupFile:      true,
			operation:      fsnotify.Create,
			expectedChange: true,
			expectedType:   domain.ChangeCreated,
		},
		{
			name:           "write file event",
			setupFile:      true,
			operation:      fsnotify.Write,
			expectedChange: true,
			expectedType:   domain.ChangeUpdated,
		},
		{
			name:           "remove file event",
			operation:      fsnotify.Remove,
			expectedChange: true,
			expectedType:   domain.ChangeDeleted,
		},
		{
			name:           "rename file event",
			operation:      fsnotify.Rename,
			expectedChange: true,
			expectedType:   domain.ChangeDeleted,
		},
		{
			name:           "chmod file event - not handled",
			setupFile:      true,
			operation:      fsnotify.Chmod,
			expectedChange: false,
		},
		{
			name:           "create directory event - skipped",
			setupDir:       true,
			operation:      fsnotify.Create,
			expectedChange: false,
		},
		{
			name:           "hidden file write - skipped",
			setupHidden:    true,
			operation:      fsnotify.Write,
			expectedChange: false,
		},
		{
			name:           "hidden file remove - skipped",
			setupHidden:    true,
			operation:      fsnotify.Remove,
			expectedChange: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			var eventPath string

			switch {
			case tt.setupDir:
				eventPath = filepath.Join(dir, "testdir")
				require.NoError(t, os.Mkdir(eventPath, 0o755))
			case tt.setupHidden:
				eventPath = filepath.Join(dir, ".hidden.txt")
				if tt.operation != fsnotify.Remove {
					require.NoError(t, os.WriteFile(eventPath, []byte("hidden"), 0o644))
				}
			case tt.setupFile:
				eventPath = filepath.Join(dir, "test.txt")
				require.NoError(t, os.WriteFile(eventPath, []byte("content"), 0o644))
			default:
				eventPath = filepath.Join(dir, "removed.txt")
			}

			change := NewWatcher(false).handleFsEvent(fsnotify.Event{Name: eventPath, Op: tt.operation})

			if !tt.expectedChange {
				assert.Nil(t, change, "expected no change but got one")
				return
			}
			require.NotNil(t, change, "expected change but got nil")
			assert.Equal(t, tt.expectedType, change.Type)
			assert.Equal(t, eventPath, change.URI)
			if tt.expectedType != domain.ChangeDeleted {
				assert.Equal(t, "content", change.Text)
			}
		})
	}

	t.Run("combined write and chmod", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "test.txt")
		require.NoError(t, os.WriteFile(path, []byte("content"), 0o644))

		change := NewWatcher(false).handleFsEvent(fsnotify.Event{Name: path, Op: fsnotify.Write | fsnotify.Chmod})

		require.NotNil(t, change)
		assert.Equal(t, domain.ChangeUpdated, change.Type)
	})

	t.Run("hidden file included when configured", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(path, []byte("KEY=1"), 0o644))

		change := NewWatcher(true).handleFsEvent(fsnotify.Event{Name: path, Op: fsnotify.Write})

		require.NotNil(t, change)
		assert.Equal(t, "KEY=1", change.Text)
	})
}
