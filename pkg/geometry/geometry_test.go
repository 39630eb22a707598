package geometry

import (
	"math"
	"testing"
)

const eps = 1e-9

func near(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

func nearPt(a, b Point) bool { return near(a.X, b.X) && near(a.Y, b.Y) }

func TestRadius(t *testing.T) {
	tests := []struct {
		name string
		r    Rect
		want float64
	}{
		{name: "square", r: NewRect(0, 0, 200, 200), want: 100},
		{name: "wide", r: NewRect(10, 10, 400, 100), want: 50},
		{name: "tall", r: NewRect(0, 0, 60, 300), want: 30},
		{name: "empty", r: Rect{}, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Radius(tt.r); got != tt.want {
				t.Errorf("Radius() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestInscribedSquare(t *testing.T) {
	got := InscribedSquare(NewRect(0, 0, 400, 200))
	want := NewRect(100, 0, 200, 200)
	if got != want {
		t.Errorf("InscribedSquare() = %+v, want %+v", got, want)
	}
}

func TestPointOnEllipse(t *testing.T) {
	r := NewRect(0, 0, 200, 200)
	tests := []struct {
		deg  float64
		want Point
	}{
		{deg: 0, want: Pt(0, 100)},
		{deg: 90, want: Pt(100, 0)},
		{deg: 180, want: Pt(200, 100)},
		{deg: 270, want: Pt(100, 200)},
		{deg: -45, want: Pt(100-100*math.Sqrt2/2, 100+100*math.Sqrt2/2)},
	}
	for _, tt := range tests {
		got := PointOnEllipse(tt.deg, r)
		if !nearPt(got, tt.want) {
			t.Errorf("PointOnEllipse(%v) = %+v, want %+v", tt.deg, got, tt.want)
		}
	}
}

func TestAngleFromPointInverse(t *testing.T) {
	r := NewRect(20, 40, 300, 180)
	for _, deg := range []float64{-170, -90, -45, 0, 10, 90, 135, 179} {
		p := PointOnEllipse(deg, r)
		if got := AngleFromPoint(p, r); !near(got, deg) {
			t.Errorf("AngleFromPoint(PointOnEllipse(%v)) = %v", deg, got)
		}
	}
}

func TestShrinkToPercentage(t *testing.T) {
	r := NewRect(10, 20, 200, 200)

	full := ShrinkToPercentage(r, 100)
	if math.Abs(full.X-r.X) > eps || math.Abs(full.Width-r.Width) > eps {
		t.Errorf("ShrinkToPercentage(100) = %+v, want %+v", full, r)
	}

	zero := ShrinkToPercentage(r, 0)
	if zero.Width != 0 || zero.Height != 0 {
		t.Errorf("ShrinkToPercentage(0) size = %vx%v, want 0x0", zero.Width, zero.Height)
	}
	if !nearPt(zero.Center(), r.Center()) {
		t.Errorf("ShrinkToPercentage(0) centre = %+v, want %+v", zero.Center(), r.Center())
	}

	half := ShrinkToPercentage(r, 50)
	if !near(Radius(half), 50) {
		t.Errorf("ShrinkToPercentage(50) radius = %v, want 50", Radius(half))
	}
}

func TestPointAtPercent(t *testing.T) {
	a, b := Pt(0, 0), Pt(100, 50)
	if got := PointAtPercent(a, b, 0.13); !nearPt(got, Pt(13, 6.5)) {
		t.Errorf("PointAtPercent() = %+v", got)
	}
}

func TestRayCircleIntersection(t *testing.T) {
	r := NewRect(0, 0, 200, 200)
	tests := []struct {
		name   string
		origin Point
		p      Point
		want   Point
		ok     bool
	}{
		{name: "from centre left", origin: Pt(100, 100), p: Pt(50, 100), want: Pt(0, 100), ok: true},
		{name: "offset chord", origin: Pt(100, 40), p: Pt(0, 40), want: Pt(20, 40), ok: true},
		{name: "degenerate", origin: Pt(5, 5), p: Pt(5, 5), want: Pt(5, 5), ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := RayCircleIntersection(tt.origin, tt.p, r)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if !nearPt(got, tt.want) {
				t.Errorf("RayCircleIntersection() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRotate(t *testing.T) {
	if got := Rotate(Pt(0, 1), 90); !nearPt(got, Pt(-1, 0)) {
		t.Errorf("Rotate() = %+v", got)
	}
}
