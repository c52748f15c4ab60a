// Package notify sends the desktop notification that marks the end of a countdown.
package notify

import (
	"errors"

	"fyne.io/fyne/v2"
)

// ErrNoApp is returned when the chime has no application to notify through.
var ErrNoApp = errors.New("notify: no application")

// Chime posts a desktop notification. It satisfies countdown.Chime.
type Chime struct {
	app     fyne.App
	title   string
	message func() string
}

// NewChime creates a Chime. message is evaluated when the notification fires.
func NewChime(app fyne.App, title string, message func() string) *Chime {
	return &Chime{app: app, title: title, message: message}
}

// Play sends the notification on the UI goroutine.
func (chime *Chime) Play() error {
	if chime == nil || chime.app == nil {
		return ErrNoApp
	}
	content := "Time's up!"
	if chime.message != nil {
		content = chime.message()
	}
	notification := fyne.NewNotification(chime.title, content)
	fyne.Do(func() {
		chime.app.SendNotification(notification)
	})
	return nil
}
