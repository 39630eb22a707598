package ebusmonitor

import (
	"slices"
	"testing"

	"fyne.io/fyne/v2/test"
)

func TestSetValue(t *testing.T) {
	test.NewApp()
	m := New()
	w := test.NewWindow(m)
	defer w.Close()

	m.SetValue("rpm", 3000)
	m.SetValue("boost", 1.25)
	m.SetValue("rpm", 3100.25)

	if got := m.Topics(); !slices.Equal(got, []string{"boost", "rpm"}) {
		t.Errorf("Topics() = %v", got)
	}
	if got := m.Text("rpm"); got != "rpm: 3100" {
		t.Errorf("rpm text = %q", got)
	}
	if got := m.Text("boost"); got != "boost: 1.25" {
		t.Errorf("boost text = %q", got)
	}
	if m.Text("missing") != "" {
		t.Error("missing topic has text")
	}
	if len(m.container.Objects) != 2 {
		t.Errorf("objects = %d", len(m.container.Objects))
	}
}
