package layout

import (
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
)

func TestGridLayout(t *testing.T) {
	g := NewGrid(2, 2, 5)
	objs := make([]fyne.CanvasObject, 5)
	for i := range objs {
		r := canvas.NewRectangle(nil)
		r.SetMinSize(fyne.NewSize(10, 20))
		objs[i] = r
	}
	g.Layout(objs, fyne.NewSize(200, 100))

	tests := []struct {
		idx  int
		pos  fyne.Position
		size fyne.Size
	}{
		{0, fyne.NewPos(5, 5), fyne.NewSize(90, 40)},
		{1, fyne.NewPos(105, 5), fyne.NewSize(90, 40)},
		{2, fyne.NewPos(5, 55), fyne.NewSize(90, 40)},
		{3, fyne.NewPos(105, 55), fyne.NewSize(90, 40)},
	}
	for _, tt := range tests {
		if p := objs[tt.idx].Position(); p != tt.pos {
			t.Errorf("object %d at %v, want %v", tt.idx, p, tt.pos)
		}
		if s := objs[tt.idx].Size(); s != tt.size {
			t.Errorf("object %d size %v, want %v", tt.idx, s, tt.size)
		}
	}
	if objs[4].Visible() {
		t.Error("overflow object visible")
	}
	if ms := g.MinSize(objs); ms != fyne.NewSize(40, 60) {
		t.Errorf("MinSize() = %v", ms)
	}
	if NewGrid(0, -1, 0).Cols != 1 {
		t.Error("cols not clamped")
	}
}

func TestRatioContainer(t *testing.T) {
	l := &RatioContainer{Widths: []float32{0.5, 0.25}}
	a, b, c := canvas.NewRectangle(nil), canvas.NewRectangle(nil), canvas.NewRectangle(nil)
	l.Layout([]fyne.CanvasObject{a, b, c}, fyne.NewSize(100, 20))
	if a.Size().Width != 50 || b.Size().Width != 25 {
		t.Errorf("widths = %v %v", a.Size().Width, b.Size().Width)
	}
	if b.Position().X != 75 {
		t.Errorf("second x = %v, want 75", b.Position().X)
	}
	if c.Visible() {
		t.Error("object without a share is visible")
	}
}
