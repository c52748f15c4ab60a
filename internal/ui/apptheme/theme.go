// Package apptheme pins the fyne theme to the light or dark variant chosen in settings.
package apptheme

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"

	"pomodoro/internal/core/model"
)

// Accent is the indigo used for the active mode, the primary button and the progress bar.
var Accent = color.NRGBA{R: 99, G: 102, B: 241, A: 255}

type forcedTheme struct {
	fyne.Theme
	variant fyne.ThemeVariant
}

// For returns a theme that ignores the system variant.
func For(selected model.Theme) fyne.Theme {
	return &forcedTheme{Theme: theme.DefaultTheme(), variant: Variant(selected)}
}

// Variant maps a settings theme to a fyne variant. Unknown values fall back to dark.
func Variant(selected model.Theme) fyne.ThemeVariant {
	if selected == model.ThemeLight {
		return theme.VariantLight
	}
	return theme.VariantDark
}

// Apply installs the theme on app.
func Apply(app fyne.App, selected model.Theme) {
	app.Settings().SetTheme(For(selected))
}

func (forced *forcedTheme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	if name == theme.ColorNamePrimary {
		return Accent
	}
	return forced.Theme.Color(name, forced.variant)
}
