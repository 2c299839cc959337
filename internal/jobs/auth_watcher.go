package jobs

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Invalidator drops cached state derived from the credential (NotebookService)
type Invalidator interface {
	Invalidate(ctx context.Context)
}

// AuthFileWatcher invalidates the notebook cache whenever the auth file changes,
// e.g. after notebooklm-mcp-auth logs into a different account.
type AuthFileWatcher struct {
	path     string
	target   Invalidator
	debounce time.Duration
	watcher  *fsnotify.Watcher
	done     chan struct{}
}

// NewAuthFileWatcher creates a watcher for path
func NewAuthFileWatcher(path string, target Invalidator) *AuthFileWatcher {
	return &AuthFileWatcher{
		path:     path,
		target:   target,
		debounce: 500 * time.Millisecond,
	}
}

// Start begins watching. The directory containing the file must exist.
func (w *AuthFileWatcher) Start() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}

	absPath, err := filepath.Abs(w.path)
	if err != nil {
		watcher.Close()
		return fmt.Errorf("failed to get absolute path for %s: %w", w.path, err)
	}

	// Watch the directory containing the file (more reliable than watching the file directly)
	dir := filepath.Dir(absPath)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch directory %s: %w", dir, err)
	}

	w.watcher = watcher
	w.done = make(chan struct{})
	go w.loop(filepath.Base(absPath))

	log.Printf("👁️  Watching %s for credential changes", absPath)
	return nil
}

// Stop ends the watch and waits for the event loop to exit
func (w *AuthFileWatcher) Stop() error {
	if w.watcher == nil {
		return nil
	}
	err := w.watcher.Close()
	<-w.done
	return err
}

func (w *AuthFileWatcher) loop(filename string) {
	defer close(w.done)

	// Debounce timer to avoid multiple invalidations for one rewrite
	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != filename {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(w.debounce, func() {
				log.Printf("🔄 Detected changes in %s, invalidating notebook cache", w.path)
				w.target.Invalidate(context.Background())
			})

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("⚠️  Auth file watcher error: %v", err)
		}
	}
}
