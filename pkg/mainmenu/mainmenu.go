// Package mainmenu builds the window menu with one entry per gauge preset.
package mainmenu

import (
	"strings"

	"fyne.io/fyne/v2"
	"github.com/roffe/txgauge/pkg/presets"
)

type MainMenu struct {
	menus    []*fyne.Menu
	onPreset func(name string)
}

// New returns a menu builder. menus are placed before the preset menu.
func New(menus []*fyne.Menu, onPreset func(name string)) *MainMenu {
	return &MainMenu{
		menus:    menus,
		onPreset: onPreset,
	}
}

// GetMenu lists the current presets. Call it again after presets change.
func (mm *MainMenu) GetMenu() *fyne.MainMenu {
	menus := append([]*fyne.Menu{}, mm.menus...)
	var items []*fyne.MenuItem
	for _, name := range presets.Names() {
		itm := fyne.NewMenuItem(title(name), func() {
			mm.onPreset(name)
		})
		items = append(items, itm)
	}
	menus = append(menus, fyne.NewMenu("Presets", items...))
	return fyne.NewMainMenu(menus...)
}

func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
