package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadHistory_MissingReturnsDefault(t *testing.T) {
	values, err := LoadHistory(NewMemoryStore(), KeyHistory)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0, 0}, values)
}

func TestSaveAndLoadHistory(t *testing.T) {
	store := NewMemoryStore()

	require.NoError(t, SaveHistory(store, KeyHistory, []int{1200, 300, 0}))
	values, err := LoadHistory(store, KeyHistory)
	require.NoError(t, err)
	assert.Equal(t, []int{1200, 300, 0}, values)

	raw, err := store.Get(KeyHistory)
	require.NoError(t, err)
	assert.JSONEq(t, `[1200,300,0]`, string(raw))
}

func TestSaveHistory_EmptyIsStoredAsEmptyList(t *testing.T) {
	store := NewMemoryStore()

	require.NoError(t, SaveHistory(store, KeyHistory, nil))
	values, err := LoadHistory(store, KeyHistory)
	require.NoError(t, err)
	assert.Empty(t, values)
	assert.NotNil(t, values)
}

func TestLoadHistory_Malformed(t *testing.T) {
	tests := map[string]string{
		"not json":       "{oops",
		"wrong type":     `{"a":1}`,
		"negative entry": `[10,-1]`,
	}
	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			store := NewMemoryStore()
			require.NoError(t, store.Set(KeyHistory, []byte(raw)))

			values, err := LoadHistory(store, KeyHistory)
			require.Error(t, err)
			assert.Equal(t, DefaultHistory(), values)
		})
	}
}

func TestHistoryWriter(t *testing.T) {
	store := NewMemoryStore()
	writer := HistoryWriter{Store: store, Key: KeyStopwatchHistory}

	require.NoError(t, writer.SaveHistory([]int{65}))
	values, err := LoadHistory(store, KeyStopwatchHistory)
	require.NoError(t, err)
	assert.Equal(t, []int{65}, values)
}

func TestLoadHistoryOr_UsesFallback(t *testing.T) {
	store := NewMemoryStore()

	values, err := LoadHistoryOr(store, KeyStopwatchHistory, nil)
	require.NoError(t, err)
	assert.Nil(t, values)

	require.NoError(t, store.Set(KeyStopwatchHistory, []byte("not json")))
	values, err = LoadHistoryOr(store, KeyStopwatchHistory, []int{})
	require.Error(t, err)
	assert.Equal(t, []int{}, values)
}
