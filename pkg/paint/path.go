package paint

import (
	"math"

	"github.com/roffe/txgauge/pkg/geometry"
)

type SegmentKind int

const (
	SegMoveTo SegmentKind = iota
	SegLineTo
	SegClose
)

type Segment struct {
	Kind SegmentKind
	P    geometry.Point
}

// Path is a polyline builder. Arcs are flattened when they are appended so
// every painter only has to deal with straight segments.
type Path struct {
	segs    []Segment
	current geometry.Point
	started bool
}

func NewPath() *Path { return &Path{} }

func (p *Path) Segments() []Segment { return p.segs }

func (p *Path) Current() geometry.Point { return p.current }

func (p *Path) MoveTo(pt geometry.Point) {
	p.segs = append(p.segs, Segment{Kind: SegMoveTo, P: pt})
	p.current = pt
	p.started = true
}

func (p *Path) LineTo(pt geometry.Point) {
	if !p.started {
		p.MoveTo(pt)
		return
	}
	p.segs = append(p.segs, Segment{Kind: SegLineTo, P: pt})
	p.current = pt
}

// ArcMoveTo moves to the point at angleDeg on the ellipse inscribed in r
// without drawing.
func (p *Path) ArcMoveTo(r geometry.Rect, angleDeg float64) {
	p.MoveTo(ArcPoint(r, angleDeg))
}

// ArcTo appends an elliptic arc on r, drawing a line from the current point
// to the arc start first.
func (p *Path) ArcTo(r geometry.Rect, startDeg, spanDeg float64) {
	for i, pt := range FlattenArc(r, startDeg, spanDeg) {
		if i == 0 && !p.started {
			p.MoveTo(pt)
			continue
		}
		p.LineTo(pt)
	}
}

func (p *Path) Close() {
	if !p.started {
		return
	}
	p.segs = append(p.segs, Segment{Kind: SegClose})
}

// ArcPoint returns the point at angleDeg, counter-clockwise from +x on
// screen, on the ellipse inscribed in r.
func ArcPoint(r geometry.Rect, angleDeg float64) geometry.Point {
	s, c := math.Sincos(geometry.Radians(angleDeg))
	ctr := r.Center()
	return geometry.Pt(ctr.X+c*r.Width/2, ctr.Y-s*r.Height/2)
}

// FlattenArc approximates an elliptic arc with points roughly every two
// degrees. Start and end points are always included.
func FlattenArc(r geometry.Rect, startDeg, spanDeg float64) []geometry.Point {
	n := int(math.Ceil(math.Abs(spanDeg) / 2))
	if n < 1 {
		n = 1
	}
	pts := make([]geometry.Point, 0, n+1)
	for i := 0; i <= n; i++ {
		pts = append(pts, ArcPoint(r, startDeg+spanDeg*float64(i)/float64(n)))
	}
	return pts
}
