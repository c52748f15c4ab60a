// Package tray manages the system tray menu.
package tray

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"

	"pomodoro/internal/core/model"
	"pomodoro/internal/ui/format"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow        func()
	OnToggle      func()
	OnReset       func()
	OnPreferences func()
	OnQuit        func()
}

// Status is what the tray reports about the countdown.
type Status struct {
	Mode      model.Mode
	Remaining int
	Running   bool
}

// Label renders the status line, for example "Pomodoro 24:59" or "Short Break 05:00 (paused)".
func (status Status) Label() string {
	label := fmt.Sprintf("%s %s", status.Mode.Label(), format.Clock(status.Remaining))
	if !status.Running && status.Remaining > 0 {
		label += " (paused)"
	}
	return label
}

// Manager handles system tray state.
type Manager struct {
	app        desktop.App
	callbacks  Callbacks
	status     Status
	statusItem *fyne.MenuItem
	toggleItem *fyne.MenuItem
	menu       *fyne.Menu
	icons      Icons
}

// Icons are swapped with the running state.
type Icons struct {
	Running fyne.Resource
	Idle    fyne.Resource
}

// New creates a tray manager with the provided callbacks.
func New(app desktop.App, icons Icons, callbacks Callbacks) *Manager {
	manager := &Manager{app: app, callbacks: callbacks, icons: icons}

	manager.statusItem = fyne.NewMenuItem("", nil)
	manager.statusItem.Disabled = true
	manager.toggleItem = fyne.NewMenuItem("Start", safe(callbacks.OnToggle))

	manager.menu = fyne.NewMenu("Pomodoro",
		manager.statusItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Show", safe(callbacks.OnShow)),
		manager.toggleItem,
		fyne.NewMenuItem("Reset", safe(callbacks.OnReset)),
		fyne.NewMenuItem("Preferences", safe(callbacks.OnPreferences)),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", safe(callbacks.OnQuit)),
	)
	manager.apply()
	if app != nil {
		app.SetSystemTrayMenu(manager.menu)
	}
	return manager
}

// SetStatus updates the status line, the toggle label and the icon.
func (manager *Manager) SetStatus(status Status) {
	if status == manager.status {
		return
	}
	runningChanged := status.Running != manager.status.Running
	manager.status = status
	manager.apply()
	if manager.app == nil {
		return
	}
	manager.app.SetSystemTrayMenu(manager.menu)
	if runningChanged {
		manager.setIcon()
	}
}

// Status returns the last status shown.
func (manager *Manager) Status() Status {
	return manager.status
}

func (manager *Manager) apply() {
	manager.statusItem.Label = manager.status.Label()
	if manager.status.Running {
		manager.toggleItem.Label = "Stop"
	} else {
		manager.toggleItem.Label = "Start"
	}
	manager.toggleItem.Disabled = !manager.status.Running && manager.status.Remaining == 0
}

func (manager *Manager) setIcon() {
	icon := manager.icons.Idle
	if manager.status.Running {
		icon = manager.icons.Running
	}
	if icon != nil {
		manager.app.SetSystemTrayIcon(icon)
	}
}

func safe(handler func()) func() {
	return func() {
		if handler != nil {
			handler()
		}
	}
}

// SetIcon sets the idle icon immediately. Used once at startup.
func (manager *Manager) SetIcon() {
	if manager.app != nil {
		manager.setIcon()
	}
}
