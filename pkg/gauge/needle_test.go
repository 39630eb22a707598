package gauge

import (
	"image/color"
	"math"
	"testing"

	"github.com/roffe/txgauge/pkg/paint"
	"github.com/roffe/txgauge/pkg/paint/recorder"
)

func TestNeedleClamp(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{-10, 0},
		{0, 0},
		{33.3, 33.3},
		{100, 100},
		{1e9, 100},
		{math.NaN(), 0},
		{math.Inf(1), 100},
	}
	n := NewNeedle()
	for _, tt := range tests {
		n.SetCurrentValue(tt.in)
		if got := n.CurrentValue(); got != tt.want {
			t.Errorf("SetCurrentValue(%v) -> %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNeedleUpdatesLabel(t *testing.T) {
	g, host := newTestGauge(200, 200)
	l := g.AddLabel(40)
	n := g.AddNeedle(60)
	n.SetLabel(l)
	n.SetValueFormat("%1 km/h")

	before := host.redraws
	n.SetCurrentValue(42)
	if got := l.Text(); got != "42 km/h" {
		t.Errorf("label text = %q", got)
	}
	if host.redraws != before+1 {
		t.Errorf("redraws = %d, want exactly one more than %d", host.redraws, before)
	}

	n.SetPrecision(1)
	n.SetCurrentValue(150)
	if got := l.Text(); got != "100.0 km/h" {
		t.Errorf("label text = %q", got)
	}
}

func TestNeedleNaNLabel(t *testing.T) {
	g, _ := newTestGauge(200, 200)
	l := g.AddLabel(40)
	n := g.AddNeedle(60)
	n.SetLabel(l)
	n.SetCurrentValue(math.NaN())
	if got := l.Text(); got != "0" {
		t.Errorf("label text = %q, want %q", got, "0")
	}
}

func TestNeedleRemovedLabelNotWritten(t *testing.T) {
	g, _ := newTestGauge(200, 200)
	l := g.AddLabel(40)
	n := g.AddNeedle(60)
	n.SetLabel(l)
	n.SetCurrentValue(10)

	g.RemoveItem(l)
	if n.Label() != nil {
		t.Fatal("Label() resolved a removed label")
	}
	n.SetCurrentValue(20)
	if got := l.Text(); got != "10" {
		t.Errorf("removed label text = %q, want %q", got, "10")
	}
}

func TestNeedlePolygons(t *testing.T) {
	tests := []struct {
		shape    NeedleShape
		vertices int
	}{
		{Feather, 5},
		{Diamond, 4},
		{Triangle, 3},
		{AttitudeStyle, 3},
		{Compass, 4},
	}
	n := NewNeedle()
	for _, tt := range tests {
		t.Run(tt.shape.String(), func(t *testing.T) {
			n.SetShape(tt.shape)
			poly := n.Polygon(100)
			if len(poly) != tt.vertices {
				t.Fatalf("vertices = %d, want %d", len(poly), tt.vertices)
			}
			tip := poly[0]
			if tt.shape == Diamond {
				tip = poly[2]
			}
			if tip.X != 0 || tip.Y != 100 {
				t.Errorf("tip = %+v, want (0,100)", tip)
			}
			if got, ok := ParseNeedleShape(tt.shape.String()); !ok || got != tt.shape {
				t.Errorf("ParseNeedleShape(%q) = %v,%v", tt.shape.String(), got, ok)
			}
		})
	}
}

func TestNeedleDraw(t *testing.T) {
	g, _ := newTestGauge(200, 200)
	n := g.AddNeedle(50)
	n.SetCurrentValue(50)

	rec := recorder.New()
	n.Draw(rec)
	polys := rec.Filter(recorder.OpPolygon)
	if len(polys) != 1 {
		t.Fatalf("polygons = %d", len(polys))
	}
	op := polys[0]
	if op.Rotation != 180 {
		t.Errorf("rotation = %v, want 180", op.Rotation)
	}
	if op.Offset.X != 100 || op.Offset.Y != 100 {
		t.Errorf("offset = %+v", op.Offset)
	}
	if op.Pen.Visible() {
		t.Error("needle outline should not be stroked")
	}
	if !rec.Balanced() {
		t.Error("canvas state not restored")
	}
}

func TestCompassNeedleGradient(t *testing.T) {
	g, _ := newTestGauge(200, 200)
	n := g.AddNeedle(50)
	n.SetShape(Compass)
	n.SetMarkerColors(color.White, color.Black)

	rec := recorder.New()
	n.Draw(rec)
	grad, ok := rec.Filter(recorder.OpPolygon)[0].Brush.(*paint.LinearGradient)
	if !ok {
		t.Fatal("compass needle not filled with a gradient")
	}
	if len(grad.Stops) != 2 || grad.Stops[0].Offset != 0.9 || grad.Stops[1].Offset != 1 {
		t.Errorf("stops = %+v", grad.Stops)
	}
	if grad.Start.Y != 50 || grad.End.X != -50.0/15 {
		t.Errorf("gradient %+v -> %+v", grad.Start, grad.End)
	}
}
