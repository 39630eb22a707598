package gauge

import (
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/roffe/txgauge/pkg/geometry"
	"github.com/roffe/txgauge/pkg/paint"
)

type NeedleShape int

const (
	Feather NeedleShape = iota
	Diamond
	Triangle
	AttitudeStyle
	Compass
)

func (s NeedleShape) String() string {
	switch s {
	case Feather:
		return "feather"
	case Diamond:
		return "diamond"
	case Triangle:
		return "triangle"
	case AttitudeStyle:
		return "attitude"
	case Compass:
		return "compass"
	default:
		return "NeedleShape(" + strconv.Itoa(int(s)) + ")"
	}
}

func ParseNeedleShape(s string) (NeedleShape, bool) {
	for sh := Feather; sh <= Compass; sh++ {
		if strings.EqualFold(s, sh.String()) {
			return sh, true
		}
	}
	return Feather, false
}

// Needle points at the current value.
type Needle struct {
	Scale
	current   float64
	color     color.Color
	shape     NeedleShape
	format    string
	precision int
	label     ItemID

	markerA, markerB color.Color
}

func NewNeedle() *Needle {
	return &Needle{
		Scale:     newScale(),
		color:     color.Black,
		shape:     Feather,
		format:    "%1",
		precision: -1,
		markerA:   color.RGBA{R: 0xff, A: 0xff},
		markerB:   color.RGBA{B: 0xff, A: 0xff},
	}
}

func (*Needle) Kind() Kind { return KindNeedle }

func (n *Needle) CurrentValue() float64 { return n.current }

// SetCurrentValue clamps v into the value range, refreshes the linked
// label text and requests a redraw. NaN reads as the minimum.
func (n *Needle) SetCurrentValue(v float64) {
	switch {
	case v < n.minValue, math.IsNaN(v):
		v = n.minValue
	case v > n.maxValue:
		v = n.maxValue
	}
	n.current = v
	if l := n.Label(); l != nil {
		l.SetText(n.FormattedValue(), false)
	}
	n.update()
}

// FormattedValue substitutes the current value for %1 in the format.
func (n *Needle) FormattedValue() string {
	return strings.ReplaceAll(n.format, "%1", strconv.FormatFloat(n.current, 'f', n.precision, 64))
}

func (n *Needle) ValueFormat() string { return n.format }

func (n *Needle) SetValueFormat(format string) {
	n.format = format
	n.update()
}

func (n *Needle) Precision() int { return n.precision }

// SetPrecision sets the decimals used for %1. Negative precision prints
// the shortest exact representation.
func (n *Needle) SetPrecision(p int) {
	n.precision = p
	n.update()
}

func (n *Needle) Color() color.Color { return n.color }

func (n *Needle) SetColor(c color.Color) {
	n.color = c
	n.update()
}

func (n *Needle) Shape() NeedleShape { return n.shape }

func (n *Needle) SetShape(s NeedleShape) {
	n.shape = s
	n.update()
}

// SetMarkerColors sets the two gradient colours of the compass needle.
func (n *Needle) SetMarkerColors(a, b color.Color) {
	n.markerA, n.markerB = a, b
	n.update()
}

// SetLabel links the label that shows the current value. The link is by
// id, a label removed from the gauge simply stops receiving updates.
func (n *Needle) SetLabel(l *Label) {
	if l == nil {
		n.label = 0
	} else {
		n.label = l.ID()
	}
	n.update()
}

// Label resolves the linked label through the owning gauge.
func (n *Needle) Label() *Label {
	if n.label == 0 || n.gauge == nil {
		return nil
	}
	it, ok := n.gauge.Item(n.label)
	if !ok {
		return nil
	}
	l, _ := it.(*Label)
	return l
}

// Polygon returns the needle outline for radius r, pointing towards +y.
func (n *Needle) Polygon(r float64) []geometry.Point {
	switch n.shape {
	case Diamond:
		return []geometry.Point{
			{X: 0, Y: 0}, {X: -r / 20, Y: r / 20}, {X: 0, Y: r}, {X: r / 20, Y: r / 20},
		}
	case Triangle:
		return []geometry.Point{
			{X: 0, Y: r}, {X: -r / 40, Y: 0}, {X: r / 40, Y: 0},
		}
	case AttitudeStyle:
		return []geometry.Point{
			{X: 0, Y: r}, {X: -r / 20, Y: 0.85 * r}, {X: r / 20, Y: 0.85 * r},
		}
	case Compass:
		return []geometry.Point{
			{X: 0, Y: r}, {X: -r / 15, Y: 0}, {X: 0, Y: -r}, {X: r / 15, Y: 0},
		}
	default:
		return []geometry.Point{
			{X: 0, Y: r}, {X: -r / 40, Y: 0}, {X: -r / 15, Y: -r / 5}, {X: r / 15, Y: -r / 5}, {X: r / 40, Y: 0},
		}
	}
}

func (n *Needle) Draw(c paint.Canvas) {
	n.ResetRect()
	r := n.WorkingRect()
	ctr := r.Center()

	c.Save()
	defer c.Restore()
	c.Translate(ctr.X, ctr.Y)
	c.Rotate(n.DegreeFromValue(n.current) + 90)

	poly := n.Polygon(geometry.Radius(r))
	c.SetPen(paint.NoPen)
	if n.shape == Compass {
		c.SetBrush(paint.NewLinearGradient(poly[0], poly[1]).
			SetColorAt(0.9, n.markerA).
			SetColorAt(1, n.markerB))
	} else {
		c.SetBrush(paint.Solid(n.color))
	}
	c.DrawPolygon(poly)
}
