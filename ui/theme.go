package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// TomatoRed is the accent color of the timer.
var TomatoRed = color.NRGBA{R: 0xe5, G: 0x4b, B: 0x3c, A: 0xff}

// CustomTheme tints the default theme with the timer accent color.
type CustomTheme struct {
	fyne.Theme
	primary color.Color
}

// NewCustomTheme creates a new instance of the custom theme.
func NewCustomTheme(primary color.Color) fyne.Theme {
	return &CustomTheme{Theme: theme.DefaultTheme(), primary: primary}
}

// Color returns the accent for primary and focus colors and defers the rest.
func (t *CustomTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNamePrimary, theme.ColorNameFocus:
		return t.primary
	}
	return t.Theme.Color(name, variant)
}
