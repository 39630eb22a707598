package mainmenu

import (
	"testing"

	"fyne.io/fyne/v2"
	"github.com/roffe/txgauge/pkg/presets"
)

func TestGetMenu(t *testing.T) {
	var picked string
	file := fyne.NewMenu("File", fyne.NewMenuItem("Quit", func() {}))
	mm := New([]*fyne.Menu{file}, func(name string) { picked = name })

	m := mm.GetMenu()
	if len(m.Items) != 2 || m.Items[0].Label != "File" || m.Items[1].Label != "Presets" {
		t.Fatalf("menus = %+v", m.Items)
	}
	items := m.Items[1].Items
	if len(items) != len(presets.Names()) {
		t.Fatalf("items = %d, want %d", len(items), len(presets.Names()))
	}
	for i, name := range presets.Names() {
		if name == "speedometer" {
			if items[i].Label != "Speedometer" {
				t.Errorf("label = %q", items[i].Label)
			}
			items[i].Action()
		}
	}
	if picked != "speedometer" {
		t.Errorf("picked = %q", picked)
	}
}
