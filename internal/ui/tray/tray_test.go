package tray

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pomodoro/internal/core/model"
)

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "Pomodoro 24:59", Status{Mode: model.ModeFocus, Remaining: 1499, Running: true}.Label())
	assert.Equal(t, "Short Break 05:00 (paused)", Status{Mode: model.ModeShortBreak, Remaining: 300}.Label())
	assert.Equal(t, "Long Break 00:00", Status{Mode: model.ModeLongBreak}.Label())
}

func TestManagerWithoutDesktop(t *testing.T) {
	toggles := 0
	manager := New(nil, Icons{}, Callbacks{OnToggle: func() { toggles++ }})

	manager.SetStatus(Status{Mode: model.ModeFocus, Remaining: 1500})
	assert.Equal(t, "Pomodoro 25:00 (paused)", manager.statusItem.Label)
	assert.Equal(t, "Start", manager.toggleItem.Label)
	assert.False(t, manager.toggleItem.Disabled)

	manager.SetStatus(Status{Mode: model.ModeFocus, Remaining: 1499, Running: true})
	assert.Equal(t, "Stop", manager.toggleItem.Label)

	manager.SetStatus(Status{Mode: model.ModeFocus})
	assert.True(t, manager.toggleItem.Disabled)

	manager.toggleItem.Action()
	assert.Equal(t, 1, toggles)
}

func TestMissingCallbacksAreIgnored(t *testing.T) {
	manager := New(nil, Icons{}, Callbacks{})
	for _, item := range manager.menu.Items {
		if item.Action != nil && !item.Disabled {
			item.Action()
		}
	}
}
