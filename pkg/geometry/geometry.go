// Package geometry holds the point/rectangle types and the circular layout
// helpers every gauge item is positioned with.
//
// Screen coordinates are used throughout: the origin is top-left and y grows
// downward. Scale degrees follow the gauge convention of PointOnEllipse, where
// 0° lies to the left of the centre and 90° straight above it.
package geometry

import "math"

const (
	degToRad = math.Pi / 180
	radToDeg = 180 / math.Pi
)

type Point struct {
	X, Y float64
}

func Pt(x, y float64) Point { return Point{X: x, Y: y} }

func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

func (p Point) Scale(f float64) Point { return Point{X: p.X * f, Y: p.Y * f} }

type Size struct {
	Width, Height float64
}

// Rect is an axis aligned rectangle given by its top-left corner and size.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

func NewRect(x, y, w, h float64) Rect { return Rect{X: x, Y: y, Width: w, Height: h} }

// RectFromCenter returns a w×h rectangle centred on c.
func RectFromCenter(c Point, w, h float64) Rect {
	return Rect{X: c.X - w/2, Y: c.Y - h/2, Width: w, Height: h}
}

func (r Rect) Center() Point { return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2} }

func (r Rect) TopLeft() Point { return Point{X: r.X, Y: r.Y} }

func (r Rect) BottomRight() Point { return Point{X: r.X + r.Width, Y: r.Y + r.Height} }

func (r Rect) Size() Size { return Size{Width: r.Width, Height: r.Height} }

func (r Rect) Empty() bool { return r.Width <= 0 || r.Height <= 0 }

// Adjusted moves the edges by the given deltas, like growing the top-left
// corner by (dx1,dy1) and the bottom-right corner by (dx2,dy2).
func (r Rect) Adjusted(dx1, dy1, dx2, dy2 float64) Rect {
	return Rect{
		X:      r.X + dx1,
		Y:      r.Y + dy1,
		Width:  r.Width - dx1 + dx2,
		Height: r.Height - dy1 + dy2,
	}
}

// MoveCenter keeps the size and places the centre at c.
func (r Rect) MoveCenter(c Point) Rect {
	return RectFromCenter(c, r.Width, r.Height)
}

// Radius returns half of the smaller side, the largest circle that fits r.
func Radius(r Rect) float64 {
	if r.Width < r.Height {
		return r.Width / 2
	}
	return r.Height / 2
}

// InscribedSquare crops the larger dimension of r so the result is a square
// of side 2·Radius(r) centred on r.
func InscribedSquare(r Rect) Rect {
	d := 2 * Radius(r)
	return RectFromCenter(r.Center(), d, d)
}

// PointOnEllipse converts a scale degree into a point on the circle
// inscribed in r. It is the single place scale degrees become pixels.
func PointOnEllipse(deg float64, r Rect) Point {
	rad := Radius(r)
	s, c := math.Sincos(deg * degToRad)
	ctr := r.Center()
	return Point{X: ctr.X - c*rad, Y: ctr.Y - s*rad}
}

// AngleFromPoint is the inverse of PointOnEllipse.
func AngleFromPoint(p Point, r Rect) float64 {
	ctr := r.Center()
	return math.Atan2(ctr.Y-p.Y, ctr.X-p.X) * radToDeg
}

// ShrinkToPercentage insets r so its radius becomes pct percent of the
// original. 100 returns r unchanged, 0 collapses it onto the centre.
func ShrinkToPercentage(r Rect, pct float64) Rect {
	rad := Radius(r)
	offset := rad - pct*rad/100
	return r.Adjusted(offset, offset, -offset, -offset)
}

// PointAtPercent returns the point t of the way from a to b.
func PointAtPercent(a, b Point, t float64) Point {
	return Point{X: a.X + (b.X-a.X)*t, Y: a.Y + (b.Y-a.Y)*t}
}

// Rotate rotates p around the origin by deg using screen orientation,
// positive angles turn clockwise.
func Rotate(p Point, deg float64) Point {
	s, c := math.Sincos(deg * degToRad)
	return Point{X: p.X*c - p.Y*s, Y: p.X*s + p.Y*c}
}

func Radians(deg float64) float64 { return deg * degToRad }

func Degrees(rad float64) float64 { return rad * radToDeg }
