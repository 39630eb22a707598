package capture

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/test"
	"github.com/roffe/txgauge/pkg/theme"
)

func TestFilename(t *testing.T) {
	ts := time.Date(2024, 1, 2, 15, 4, 5, 0, time.UTC)
	if got := Filename("dash", ts); got != "dash-2024-01-02-15-04-05.png" {
		t.Errorf("Filename() = %q", got)
	}
}

func TestScreenshot(t *testing.T) {
	test.NewApp()
	w := test.NewWindow(canvas.NewRectangle(theme.Accent))
	defer w.Close()
	w.Resize(fyne.NewSize(40, 30))

	dir := t.TempDir()
	name, err := Screenshot(w.Canvas(), dir)
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Dir(name) != dir || !strings.HasPrefix(filepath.Base(name), "capture-") {
		t.Errorf("name = %q", name)
	}
	b, err := os.ReadFile(name)
	if err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(bytes.NewReader(b))
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Empty() {
		t.Error("empty capture")
	}
}
