package notify

import (
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChimeWithoutAppFails(t *testing.T) {
	var chime *Chime
	assert.ErrorIs(t, chime.Play(), ErrNoApp)
	assert.ErrorIs(t, NewChime(nil, "Pomodoro", nil).Play(), ErrNoApp)
}

func TestChimeSendsNotification(t *testing.T) {
	app := test.NewTempApp(t)
	calls := 0
	chime := NewChime(app, "Pomodoro", func() string {
		calls++
		return "Focus session complete"
	})

	require.NoError(t, chime.Play())
	assert.Equal(t, 1, calls)
}
