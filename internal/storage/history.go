package storage

import (
	"encoding/json"
	"errors"
	"fmt"
)

// DefaultHistory is the stored history before any session was recorded.
func DefaultHistory() []int {
	return []int{0, 0, 0}
}

// LoadHistory reads a history list stored under key.
// Absent values yield DefaultHistory. Unreadable values yield DefaultHistory and the error.
func LoadHistory(store Store, key string) ([]int, error) {
	return LoadHistoryOr(store, key, DefaultHistory())
}

// LoadHistoryOr is LoadHistory with a caller supplied fallback.
func LoadHistoryOr(store Store, key string, fallback []int) ([]int, error) {
	rawData, err := store.Get(key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fallback, nil
		}
		return fallback, fmt.Errorf("read history %s: %w", key, err)
	}

	var values []int
	if err := json.Unmarshal(rawData, &values); err != nil {
		return fallback, fmt.Errorf("parse history %s: %w", key, err)
	}
	for _, value := range values {
		if value < 0 {
			return fallback, fmt.Errorf("parse history %s: negative entry %d", key, value)
		}
	}
	if values == nil {
		values = []int{}
	}
	return values, nil
}

// SaveHistory writes a history list under key.
func SaveHistory(store Store, key string, values []int) error {
	if values == nil {
		values = []int{}
	}
	serialized, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("marshal history: %w", err)
	}
	if err := store.Set(key, serialized); err != nil {
		return fmt.Errorf("write history %s: %w", key, err)
	}
	return nil
}

// HistoryWriter binds a store and key so an engine can persist its history.
type HistoryWriter struct {
	Store Store
	Key   string
}

// SaveHistory implements the engines' history writer.
func (writer HistoryWriter) SaveHistory(values []int) error {
	return SaveHistory(writer.Store, writer.Key, values)
}
