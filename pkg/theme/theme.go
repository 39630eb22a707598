// Package theme is the dark fyne theme of the dashboard window.
package theme

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

var (
	Background = color.RGBA{R: 23, G: 23, B: 24, A: 255}
	Accent     = color.RGBA{R: 0xff, G: 0x67, A: 255}
)

// DashTheme forces the dark variant and tightens the default sizes so
// more of the window is left to the gauges.
type DashTheme struct{}

var _ fyne.Theme = DashTheme{}

func (DashTheme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNameBackground:
		return Background
	case theme.ColorNamePrimary, theme.ColorNameFocus:
		return Accent
	}
	return theme.DefaultTheme().Color(name, theme.VariantDark)
}

func (DashTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

func (DashTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

func (DashTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameSeparatorThickness:
		return 0
	case theme.SizeNameInnerPadding:
		return 8
	case theme.SizeNamePadding:
		return 2
	case theme.SizeNameText:
		return 14
	case theme.SizeNameCaptionText:
		return 11
	case theme.SizeNameInputRadius:
		return 5
	default:
		return theme.DefaultTheme().Size(name)
	}
}
