// Package shell assembles the desktop application: engines, views, tray and background watchers.
package shell

import (
	"context"
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/rs/zerolog"

	"pomodoro/internal/core/countdown"
	"pomodoro/internal/core/idlewatch"
	"pomodoro/internal/core/model"
	"pomodoro/internal/core/stopwatch"
	"pomodoro/internal/core/ticker"
	"pomodoro/internal/logging"
	"pomodoro/internal/platform"
	"pomodoro/internal/storage"
	"pomodoro/internal/ui/apptheme"
	"pomodoro/internal/ui/notify"
	"pomodoro/internal/ui/preferences"
	"pomodoro/internal/ui/stopwatchview"
	"pomodoro/internal/ui/timerview"
	"pomodoro/internal/ui/tray"
	"pomodoro/resources"
)

const eventBuffer = 16

// Options configures Run.
type Options struct {
	AppID   string
	AppName string
	Store   storage.Store
	// Platform provides launch-at-login and idle detection. Defaults to the OS implementation.
	Platform platform.Service
	Idle     platform.IdleProvider
	// Guard, when set, brings the window forward when another launch is attempted.
	Guard *platform.InstanceGuard
}

type shell struct {
	options  Options
	app      fyne.App
	window   fyne.Window
	logger   zerolog.Logger
	settings model.Settings

	countdown *countdown.Engine
	stopwatch *stopwatch.Engine
	monitor   *idlewatch.Monitor

	timerView     *timerview.View
	stopwatchView *stopwatchview.View
	prefs         *preferences.Window
	tray          *tray.Manager
}

// Run builds the application and blocks until it quits.
func Run(ctx context.Context, options Options) error {
	if options.Store == nil {
		return fmt.Errorf("run shell: store is required")
	}
	if options.Platform == nil {
		options.Platform = platform.NewService()
	}
	if options.Idle == nil {
		options.Idle = platform.NewIdleProvider()
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	shell := newShell(app.NewWithID(options.AppID), options)
	defer shell.close()

	if fileStore, ok := options.Store.(*storage.FileStore); ok {
		shell.watchSettings(ctx, fileStore)
	}

	go func() {
		<-ctx.Done()
		fyne.Do(shell.app.Quit)
	}()

	shell.window.Show()
	shell.app.Run()
	return nil
}

func newShell(fyneApp fyne.App, options Options) *shell {
	shell := &shell{
		options: options,
		app:     fyneApp,
		logger:  logging.Component("shell"),
	}
	shell.build()
	return shell
}

func (shell *shell) build() {
	shell.app.SetIcon(resources.MustLogo(resources.LogoActive))
	shell.settings = shell.loadSettings()
	apptheme.Apply(shell.app, shell.settings.Theme)

	source := ticker.NewInterval()

	focusHistory, err := storage.LoadHistory(shell.options.Store, storage.KeyHistory)
	if err != nil {
		shell.logger.Warn().Err(err).Msg("countdown history unreadable, starting empty")
	}
	shell.countdown = countdown.New(shell.settings, focusHistory, countdown.Config{
		Source:  source,
		Chime:   notify.NewChime(shell.app, shell.options.AppName, shell.completionMessage),
		History: storage.HistoryWriter{Store: shell.options.Store, Key: storage.KeyHistory},
	})

	stopwatchHistory, err := storage.LoadHistoryOr(shell.options.Store, storage.KeyStopwatchHistory, nil)
	if err != nil {
		shell.logger.Warn().Err(err).Msg("stopwatch history unreadable, starting empty")
	}
	shell.stopwatch = stopwatch.New(stopwatchHistory, stopwatch.Config{
		Source:  source,
		History: storage.HistoryWriter{Store: shell.options.Store, Key: storage.KeyStopwatchHistory},
	})

	shell.monitor = idlewatch.New(shell.options.Idle, shell.countdown, idlewatch.Config{
		Enabled: shell.settings.IdleStopEnabled,
		Source:  source,
		OnStop: func(idle time.Duration) {
			shell.logger.Info().Dur("idle", idle).Msg("countdown stopped while away")
		},
	})
	shell.monitor.Start()

	shell.prefs = preferences.New(shell.app, shell.settings, shell.saveSettings)
	shell.timerView = timerview.New(shell.countdown, shell.prefs.Show)
	shell.stopwatchView = stopwatchview.New(shell.stopwatch)

	shell.window = shell.app.NewWindow(shell.options.AppName)
	tabs := container.NewAppTabs(
		container.NewTabItem("Pomodoro", shell.timerView.Content()),
		container.NewTabItem("Stopwatch", shell.stopwatchView.Content()),
	)
	shell.window.SetContent(tabs)
	shell.window.Resize(fyne.NewSize(420, 520))
	shell.window.SetMaster()

	if desktopApp, ok := shell.app.(desktop.App); ok {
		shell.tray = tray.New(desktopApp, tray.Icons{
			Running: resources.MustLogo(resources.LogoActive),
			Idle:    resources.MustLogo(resources.LogoIdle),
		}, tray.Callbacks{
			OnShow:        shell.showWindow,
			OnToggle:      shell.toggleCountdown,
			OnReset:       shell.resetCountdown,
			OnPreferences: shell.prefs.Show,
			OnQuit:        shell.app.Quit,
		})
		shell.tray.SetIcon()
		shell.window.SetCloseIntercept(shell.window.Hide)
	} else {
		shell.logger.Info().Msg("system tray unsupported on this platform")
	}
	shell.syncTray()

	if shell.options.Guard != nil {
		shell.options.Guard.OnActivate(func() {
			fyne.Do(shell.showWindow)
		})
	}

	shell.forwardCountdownEvents(shell.countdown.Subscribe(eventBuffer))
	shell.forwardStopwatchEvents(shell.stopwatch.Subscribe(eventBuffer))
}

func (shell *shell) close() {
	shell.monitor.Close()
	shell.countdown.Close()
	shell.stopwatch.Close()
	shell.timerView.Close()
}

func (shell *shell) forwardCountdownEvents(events <-chan countdown.Event) {
	go func() {
		for event := range events {
			fyne.Do(func() {
				shell.timerView.Sync()
				shell.syncTray()
				if event.Type == countdown.EventCompleted {
					shell.timerView.Flash()
				}
			})
		}
	}()
}

func (shell *shell) forwardStopwatchEvents(events <-chan stopwatch.Event) {
	go func() {
		for range events {
			fyne.Do(shell.stopwatchView.Sync)
		}
	}()
}

func (shell *shell) syncTray() {
	if shell.tray == nil {
		return
	}
	snapshot := shell.countdown.Snapshot()
	shell.tray.SetStatus(tray.Status{
		Mode:      snapshot.Mode,
		Remaining: snapshot.Remaining,
		Running:   snapshot.Running,
	})
}

func (shell *shell) showWindow() {
	shell.window.Show()
	shell.window.RequestFocus()
}

func (shell *shell) toggleCountdown() {
	if shell.countdown.Running() {
		shell.countdown.Stop()
	} else {
		shell.countdown.Start()
	}
	shell.timerView.Sync()
	shell.syncTray()
}

func (shell *shell) resetCountdown() {
	shell.countdown.Reset()
	shell.timerView.Sync()
	shell.syncTray()
}

func (shell *shell) completionMessage() string {
	return shell.countdown.Snapshot().Mode.Description() + " finished"
}
