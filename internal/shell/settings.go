package shell

import (
	"context"

	"fyne.io/fyne/v2"

	"pomodoro/internal/core/model"
	"pomodoro/internal/platform"
	"pomodoro/internal/storage"
	"pomodoro/internal/ui/apptheme"
)

// loadSettings reads stored settings and reconciles launch-at-login with the OS.
func (shell *shell) loadSettings() model.Settings {
	settings, err := storage.LoadSettings(shell.options.Store)
	if err != nil {
		shell.logger.Warn().Err(err).Msg("stored settings unreadable, using defaults")
	}

	enabled, err := shell.options.Platform.AutostartEnabled(shell.options.AppName)
	if err != nil {
		shell.logger.Debug().Err(err).Msg("query autostart")
		return settings
	}
	settings.LaunchAtLogin = enabled
	return settings
}

// saveSettings persists settings edited in the preferences window and applies them.
func (shell *shell) saveSettings(settings model.Settings) {
	previous := shell.settings
	if err := storage.SaveSettings(shell.options.Store, settings); err != nil {
		shell.logger.Error().Err(err).Msg("save settings")
	}

	if settings.LaunchAtLogin != previous.LaunchAtLogin {
		if err := platform.SetAutostart(shell.options.Platform, shell.options.AppName, settings.LaunchAtLogin); err != nil {
			shell.logger.Error().Err(err).Bool("enabled", settings.LaunchAtLogin).Msg("update launch at login")
			settings.LaunchAtLogin = previous.LaunchAtLogin
		}
	}

	shell.applySettings(settings)
}

// applySettings pushes settings to the engine, theme, idle monitor and preferences window.
func (shell *shell) applySettings(settings model.Settings) {
	if settings == shell.settings {
		return
	}
	shell.settings = settings

	shell.countdown.ApplySettings(settings)
	apptheme.Apply(shell.app, settings.Theme)
	shell.monitor.SetEnabled(settings.IdleStopEnabled)
	shell.prefs.UpdateSettings(settings)
	shell.timerView.Sync()
	shell.syncTray()
}

// watchSettings reloads settings edited on disk by another process or a text editor.
func (shell *shell) watchSettings(ctx context.Context, fileStore *storage.FileStore) {
	watcher, err := storage.NewWatcher(fileStore)
	if err != nil {
		shell.logger.Warn().Err(err).Msg("settings watcher unavailable")
		return
	}
	go func() {
		<-ctx.Done()
		_ = watcher.Close()
	}()

	watcher.Watch(ctx, storage.KeySettings, func() {
		settings, err := storage.LoadSettings(fileStore)
		if err != nil {
			shell.logger.Warn().Err(err).Msg("reload settings")
			return
		}
		fyne.Do(func() {
			settings.LaunchAtLogin = shell.settings.LaunchAtLogin
			shell.applySettings(settings)
		})
	})
}
