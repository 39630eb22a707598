// Package paint describes the drawing capability gauge items render into.
//
// Arc style primitives take angles in degrees measured counter-clockwise on
// screen from the positive x axis, with negative spans running clockwise.
// Rotate turns the coordinate system clockwise for positive degrees.
package paint

import (
	"image/color"

	"github.com/roffe/txgauge/pkg/geometry"
)

// Canvas is implemented by every painter a gauge can be drawn with.
type Canvas interface {
	// Save pushes transform, pen, brush and font. Restore pops them.
	Save()
	Restore()

	Translate(dx, dy float64)
	Rotate(deg float64)

	SetPen(p Pen)
	SetBrush(b Brush)
	SetFont(f Font)
	SetHints(h RenderHints)

	DrawLine(p1, p2 geometry.Point)
	DrawRect(r geometry.Rect)
	DrawEllipse(r geometry.Rect)
	DrawArc(r geometry.Rect, startDeg, spanDeg float64)
	DrawChord(r geometry.Rect, startDeg, spanDeg float64)
	DrawPie(r geometry.Rect, startDeg, spanDeg float64)
	DrawPolygon(pts []geometry.Point)
	DrawPath(p *Path)

	// DrawText centres a single line of text inside r.
	DrawText(r geometry.Rect, text string)
	// DrawTextAt draws text with its baseline starting at p.
	DrawTextAt(p geometry.Point, text string)
	TextSize(f Font, text string) geometry.Size
}

type CapStyle int

const (
	SquareCap CapStyle = iota
	FlatCap
	RoundCap
)

// Pen strokes outlines. A nil Color disables stroking, a zero Width draws
// one pixel wide lines regardless of transform.
type Pen struct {
	Color color.Color
	Width float64
	Cap   CapStyle
}

var NoPen = Pen{}

func NewPen(c color.Color) Pen { return Pen{Color: c} }

func (p Pen) WithWidth(w float64) Pen {
	p.Width = w
	return p
}

func (p Pen) WithCap(c CapStyle) Pen {
	p.Cap = c
	return p
}

func (p Pen) Visible() bool { return p.Color != nil }

// Brush fills shapes. nil means no fill.
type Brush interface {
	isBrush()
}

type SolidBrush struct {
	Color color.Color
}

func (SolidBrush) isBrush() {}

func Solid(c color.Color) Brush { return SolidBrush{Color: c} }

type Stop struct {
	Offset float64
	Color  color.Color
}

// LinearGradient interpolates between colour stops along Start→End.
type LinearGradient struct {
	Start, End geometry.Point
	Stops      []Stop
}

func (*LinearGradient) isBrush() {}

func NewLinearGradient(start, end geometry.Point) *LinearGradient {
	return &LinearGradient{Start: start, End: end}
}

// SetColorAt adds a stop. Offsets outside [0,1] are ignored.
func (g *LinearGradient) SetColorAt(offset float64, c color.Color) *LinearGradient {
	if offset < 0 || offset > 1 {
		return g
	}
	g.Stops = append(g.Stops, Stop{Offset: offset, Color: c})
	return g
}

type Weight int

const (
	Normal Weight = iota
	Bold
)

// Font names a family and point size. Painters map unknown families onto
// their default face.
type Font struct {
	Family string
	Size   float64
	Weight Weight
}

type RenderHints int

const (
	Antialiasing RenderHints = 1 << iota
	TextAntialiasing
)

// WithAlpha returns c with its alpha replaced by a in [0,1].
func WithAlpha(c color.Color, a float64) color.Color {
	r, g, b, _ := c.RGBA()
	return color.NRGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a*255 + 0.5)}
}
