package hint

import (
	"testing"

	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
)

func TestButtonPublishesHintOnHover(t *testing.T) {
	test.NewTempApp(t)

	bar := NewBar()
	step := 5
	tapped := 0
	button := NewButton("+", bar, func() string {
		if step == 5 {
			return "Increase time by 5 minutes"
		}
		return "Increase time by 1 minute"
	}, func() { tapped++ })

	button.MouseIn(&desktop.MouseEvent{})
	assert.Equal(t, "Increase time by 5 minutes", bar.Text)

	step = 1
	button.MouseIn(&desktop.MouseEvent{})
	assert.Equal(t, "Increase time by 1 minute", bar.Text)

	button.MouseOut()
	assert.Empty(t, bar.Text)

	test.Tap(button)
	assert.Equal(t, 1, tapped)
}

func TestButtonWithoutHint(t *testing.T) {
	test.NewTempApp(t)

	button := NewButton("x", nil, nil, nil)
	assert.Empty(t, button.Hint())
	button.MouseIn(&desktop.MouseEvent{})
	button.MouseOut()
}
