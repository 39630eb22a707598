package snapshot

import (
	"bytes"
	"errors"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/roffe/txgauge/pkg/bar"
	"github.com/roffe/txgauge/pkg/gauge"
	"github.com/roffe/txgauge/pkg/presets"
)

func TestRenderBackground(t *testing.T) {
	host := NewHost(64, 48)
	g := gauge.New(host)
	g.AddBackground(100)
	img, err := Render(g, 64, 48, color.White)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 64 || b.Dy() != 48 {
		t.Fatalf("bounds = %v", b)
	}
	if c := img.RGBAAt(1, 1); c != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("corner = %v, want white", c)
	}
	if c := img.RGBAAt(32, 24); c == (color.RGBA{255, 255, 255, 255}) {
		t.Error("dial centre not painted")
	}
	if host.Redraws() == 0 {
		t.Error("adding an item requested no redraw")
	}
}

func TestRenderInvalidSize(t *testing.T) {
	if _, err := Render(gauge.New(NewHost(1, 1)), 0, 10, nil); err == nil {
		t.Error("zero width rendered")
	}
}

func TestPreset(t *testing.T) {
	data, err := Preset("speedometer", Options{Size: 128, Value: 120})
	if err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 128 || b.Dy() != 128 {
		t.Errorf("bounds = %v", b)
	}
	if _, err := Preset("nope", Options{}); !errors.Is(err, presets.ErrNotFound) {
		t.Errorf("unknown preset = %v", err)
	}
}

func TestDump(t *testing.T) {
	b := bar.New(NewHost(200, 40))
	b.SetCurrentValue(30)
	var sb strings.Builder
	if err := Dump(&sb, b); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(sb.String(), "rect") {
		t.Errorf("dump = %q", sb.String())
	}
}
