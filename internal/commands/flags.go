package commands

import (
	"fmt"
	"path/filepath"
	"sync"

	"pomodoro/internal/platform"
	"pomodoro/internal/storage"
)

// Supported values of --store.
const (
	StoreFile   = "file"
	StoreBadger = "badger"
)

// Flags holds the global options shared by every command.
type Flags struct {
	LogLevel  string
	LogFile   string
	DataDir   string
	StoreKind string

	mu    sync.Mutex
	store storage.Store
}

// DefaultDataDir returns <config dir>/Pomodoro, or a relative directory when the
// config dir cannot be resolved.
func DefaultDataDir() string {
	configDir, err := platform.NewService().GetConfigDir()
	if err != nil {
		return "pomodoro-data"
	}
	return filepath.Join(configDir, "Pomodoro")
}

// Store opens the configured store on first use. Later calls return the same store.
func (flags *Flags) Store() (storage.Store, error) {
	flags.mu.Lock()
	defer flags.mu.Unlock()

	if flags.store != nil {
		return flags.store, nil
	}
	store, err := OpenStore(flags.StoreKind, flags.DataDir)
	if err != nil {
		return nil, err
	}
	flags.store = store
	return store, nil
}

// Close closes the store if it was opened.
func (flags *Flags) Close() error {
	flags.mu.Lock()
	defer flags.mu.Unlock()

	if flags.store == nil {
		return nil
	}
	err := flags.store.Close()
	flags.store = nil
	return err
}

// OpenStore opens a store of the given kind rooted at dataDir.
func OpenStore(kind, dataDir string) (storage.Store, error) {
	switch kind {
	case "", StoreFile:
		return storage.NewFileStore(dataDir), nil
	case StoreBadger:
		store, err := storage.OpenBadger(filepath.Join(dataDir, "badger"))
		if err != nil {
			return nil, fmt.Errorf("open badger store: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown store %q, expected %q or %q", kind, StoreFile, StoreBadger)
	}
}
