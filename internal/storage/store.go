// Package storage persists settings and session history in a durable key-value store.
package storage

import (
	"errors"
	"fmt"
	"strings"
)

// Fixed keys for the persisted values.
const (
	KeySettings         = "pomodoroSettings"
	KeyHistory          = "pomodoroHistory"
	KeyStopwatchHistory = "stopwatchHistory"
)

// ErrNotFound is returned by Store.Get when the key has never been written.
var ErrNotFound = errors.New("key not found")

// Store is a synchronous key-value store with last-writer-wins semantics.
type Store interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Close() error
}

func validateKey(key string) error {
	if key == "" {
		return fmt.Errorf("invalid key: empty")
	}
	if strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return fmt.Errorf("invalid key %q", key)
	}
	return nil
}
