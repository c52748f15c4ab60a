package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"pomodoro/internal/logging"
)

const debounceDelay = 50 * time.Millisecond

// Watcher reports changes made to a FileStore key by other processes or editors.
type Watcher struct {
	store   *FileStore
	watcher *fsnotify.Watcher
	logger  zerolog.Logger

	wg sync.WaitGroup
}

// NewWatcher watches the directory of store. The directory is created if it doesn't exist.
func NewWatcher(store *FileStore) (*Watcher, error) {
	if err := os.MkdirAll(store.Dir(), 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(store.Dir()); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", store.Dir(), err)
	}

	return &Watcher{
		store:   store,
		watcher: watcher,
		logger:  logging.Component("watcher"),
	}, nil
}

// Watch calls onChange after the file for key is written, debounced, until ctx is done
// or the watcher is closed. It must be called at most once per Watcher.
func (w *Watcher) Watch(ctx context.Context, key string, onChange func()) {
	target := filepath.Clean(w.store.Path(key))

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()

		var (
			mu    sync.Mutex
			timer *time.Timer
		)
		defer func() {
			mu.Lock()
			if timer != nil {
				timer.Stop()
			}
			mu.Unlock()
		}()

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-w.watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				mu.Lock()
				if timer != nil {
					timer.Stop()
				}
				timer = time.AfterFunc(debounceDelay, onChange)
				mu.Unlock()
			case err, ok := <-w.watcher.Errors:
				if !ok {
					return
				}
				w.logger.Warn().Err(err).Msg("watch error")
			}
		}
	}()
}

// Close stops watching and waits for the watch goroutine to exit.
func (w *Watcher) Close() error {
	err := w.watcher.Close()
	w.wg.Wait()
	return err
}
