// Package bar draws linear progress bars with optional rulers and circular
// progress rings.
package bar

import (
	"image/color"
	"math"
	"strconv"

	"github.com/roffe/txgauge/pkg/gauge"
	"github.com/roffe/txgauge/pkg/geometry"
	"github.com/roffe/txgauge/pkg/paint"
)

type Direction int

const (
	Horizontal Direction = iota
	Vertical
)

func (d Direction) String() string {
	if d == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// Side selects a ruler edge.
type Side int

const (
	Top Side = 1 << iota
	Bottom
	Left
	Right
)

// maxExactInt is the largest magnitude at which every integer is a float64.
const maxExactInt = 1 << 53

const (
	majorTickLen = 15
	halfTickLen  = 10
	minorTickLen = 6
)

// ProgressBar fills a rectangle proportionally to the current value.
type ProgressBar struct {
	host gauge.Host

	min, max, current float64
	direction         Direction
	rulers            Side
	longStep          int
	shortStep         int
	precision         int

	bg, line, progress color.Color
	font               paint.Font
}

func New(host gauge.Host) *ProgressBar {
	return &ProgressBar{
		host:      host,
		min:       0,
		max:       100,
		direction: Horizontal,
		rulers:    Bottom,
		longStep:  10,
		shortStep: 1,
		bg:        color.RGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xff},
		line:      color.RGBA{R: 0xc0, G: 0xc0, B: 0xc0, A: 0xff},
		progress:  color.RGBA{R: 0x2c, G: 0xfc, B: 0x03, A: 0xff},
		font:      paint.Font{Family: "Arial", Size: 10},
	}
}

func (b *ProgressBar) SetHost(h gauge.Host) {
	b.host = h
	b.update()
}

func (b *ProgressBar) MinValue() float64     { return b.min }
func (b *ProgressBar) MaxValue() float64     { return b.max }
func (b *ProgressBar) CurrentValue() float64 { return b.current }
func (b *ProgressBar) Direction() Direction  { return b.direction }
func (b *ProgressBar) Precision() int        { return b.precision }
func (b *ProgressBar) LongStep() int         { return b.longStep }
func (b *ProgressBar) ShortStep() int        { return b.shortStep }

// SetRange fails with gauge.ErrDegenerateRange when min equals max and with
// gauge.ErrInvalidValueRange when min is above max.
func (b *ProgressBar) SetRange(min, max float64) error {
	if err := checkRange(min, max); err != nil {
		gauge.Logger().Debug("rejected bar range", "min", min, "max", max, "err", err)
		return err
	}
	b.min, b.max = min, max
	b.current = clamp(b.current, min, max)
	b.update()
	return nil
}

func (b *ProgressBar) SetMinValue(v float64) error { return b.SetRange(v, b.max) }

func (b *ProgressBar) SetMaxValue(v float64) error { return b.SetRange(b.min, v) }

// SetCurrentValue clamps v into the range.
func (b *ProgressBar) SetCurrentValue(v float64) {
	b.current = clamp(v, b.min, b.max)
	b.update()
}

func (b *ProgressBar) SetDirection(d Direction) {
	b.direction = d
	b.update()
}

func (b *ProgressBar) SetPrecision(p int) {
	if p < 0 {
		p = 0
	}
	b.precision = p
	b.update()
}

func (b *ProgressBar) SetLongStep(step int) error {
	if step <= 0 {
		return gauge.ErrInvalidStep
	}
	b.longStep = step
	b.update()
	return nil
}

func (b *ProgressBar) SetShortStep(step int) error {
	if step <= 0 {
		return gauge.ErrInvalidStep
	}
	b.shortStep = step
	b.update()
	return nil
}

// SetRuler shows or hides the ruler on one side. Top and bottom rulers
// are drawn for horizontal bars, left and right ones for vertical bars.
func (b *ProgressBar) SetRuler(s Side, on bool) {
	if on {
		b.rulers |= s
	} else {
		b.rulers &^= s
	}
	b.update()
}

func (b *ProgressBar) Ruler(s Side) bool { return b.rulers&s != 0 }

func (b *ProgressBar) SetColors(bg, line, progress color.Color) {
	b.bg, b.line, b.progress = bg, line, progress
	b.update()
}

func (b *ProgressBar) Colors() (bg, line, progress color.Color) {
	return b.bg, b.line, b.progress
}

func (b *ProgressBar) SetFont(f paint.Font) {
	b.font = f
	b.update()
}

// Fraction is how much of the bar is filled, in [0,1].
func (b *ProgressBar) Fraction() float64 {
	return fraction(b.current, b.min, b.max)
}

// FillRect returns the filled part of a w×h bar in local coordinates.
func (b *ProgressBar) FillRect(w, h float64) geometry.Rect {
	f := b.Fraction()
	if b.direction == Vertical {
		return geometry.NewRect(0, h-f*h, w, f*h)
	}
	return geometry.NewRect(0, 0, f*w, h)
}

// Tick is one ruler graduation.
type Tick struct {
	Value  int
	Pos    float64 // fraction of the bar length from the minimum
	Length float64
	Major  bool
	Label  string // empty when suppressed
}

// Ticks lists the ruler graduations on the integers from min to max. Major
// ticks fall on multiples of the long step and carry a label, except the
// first and the last one. Ranges too long to graduate give no ticks.
func (b *ProgressBar) Ticks() []Tick {
	span := b.max - b.min
	start := math.Ceil(b.min)
	if !(span > 0) || start < -maxExactInt || b.max > maxExactInt {
		return nil
	}
	n := math.Floor((b.max - start) / float64(b.shortStep))
	if n < 0 || n >= gauge.MaxTicks {
		return nil
	}
	half := b.longStep / 2
	out := make([]Tick, 0, int(n)+1)
	first, last := -1, -1
	for k := 0; k <= int(n); k++ {
		v := start + float64(k)*float64(b.shortStep)
		i := int(v)
		t := Tick{Value: i, Pos: (v - b.min) / span}
		switch {
		case i%b.longStep == 0:
			t.Major = true
			t.Length = majorTickLen
			t.Label = strconv.FormatFloat(v, 'f', b.precision, 64)
			if first < 0 {
				first = len(out)
			}
			last = len(out)
		case half > 0 && i%half == 0:
			t.Length = halfTickLen
		default:
			t.Length = minorTickLen
		}
		out = append(out, t)
	}
	if first >= 0 {
		out[first].Label = ""
		out[last].Label = ""
	}
	return out
}

func (b *ProgressBar) Draw(c paint.Canvas) {
	if b.host == nil {
		return
	}
	r := b.host.Bounds()
	w, h := r.Width, r.Height

	c.Save()
	defer c.Restore()
	c.SetHints(paint.Antialiasing | paint.TextAntialiasing)
	c.Translate(r.X, r.Y)

	c.SetPen(paint.NewPen(b.line))
	c.SetBrush(paint.Solid(b.bg))
	c.DrawRect(geometry.NewRect(0, 0, w, h))

	c.SetPen(paint.NoPen)
	c.SetBrush(paint.Solid(b.progress))
	c.DrawRect(b.FillRect(w, h))

	c.SetBrush(nil)
	c.SetPen(paint.NewPen(b.line))
	c.SetFont(b.font)
	ticks := b.Ticks()
	if b.direction == Horizontal {
		if b.Ruler(Top) {
			b.drawRuler(c, Top, ticks, w, h)
		}
		if b.Ruler(Bottom) {
			b.drawRuler(c, Bottom, ticks, w, h)
		}
		return
	}
	if b.Ruler(Right) {
		b.drawRuler(c, Right, ticks, w, h)
	}
	if b.Ruler(Left) {
		b.drawRuler(c, Left, ticks, w, h)
	}
}

func (b *ProgressBar) drawRuler(c paint.Canvas, side Side, ticks []Tick, w, h float64) {
	switch side {
	case Top:
		c.DrawLine(geometry.Pt(0, 0), geometry.Pt(w, 0))
	case Bottom:
		c.DrawLine(geometry.Pt(0, h), geometry.Pt(w, h))
	case Left:
		c.DrawLine(geometry.Pt(0, h), geometry.Pt(0, 0))
	}
	for _, t := range ticks {
		var p1, p2 geometry.Point
		switch side {
		case Top:
			x := t.Pos * w
			p1, p2 = geometry.Pt(x, 0), geometry.Pt(x, t.Length)
		case Bottom:
			x := t.Pos * w
			p1, p2 = geometry.Pt(x, h), geometry.Pt(x, h-t.Length)
		case Left:
			y := h - t.Pos*h
			p1, p2 = geometry.Pt(0, y), geometry.Pt(t.Length, y)
		case Right:
			y := h - t.Pos*h
			p1, p2 = geometry.Pt(w, y), geometry.Pt(w-t.Length, y)
		}
		c.DrawLine(p1, p2)
		if t.Label == "" {
			continue
		}
		sz := c.TextSize(b.font, t.Label)
		c.DrawTextAt(labelAnchor(side, p1, sz, w, h), t.Label)
	}
}

// labelAnchor returns the text baseline origin for a major tick at p.
func labelAnchor(side Side, p geometry.Point, sz geometry.Size, w, h float64) geometry.Point {
	switch side {
	case Top:
		return geometry.Pt(p.X-sz.Width/2, sz.Height+majorTickLen)
	case Bottom:
		return geometry.Pt(p.X-sz.Width/2, h-sz.Height/2-majorTickLen)
	case Left:
		return geometry.Pt(sz.Width/3+majorTickLen, p.Y+sz.Height/4)
	default:
		return geometry.Pt(w-majorTickLen*2.5-sz.Width/2, p.Y+sz.Height/4)
	}
}

func (b *ProgressBar) update() {
	if b.host != nil {
		b.host.RequestRedraw()
	}
}

func checkRange(min, max float64) error {
	switch {
	case min == max:
		return gauge.ErrDegenerateRange
	case !(min < max):
		return gauge.ErrInvalidValueRange
	}
	return nil
}

// clamp maps v into [min,max]. NaN maps to min.
func clamp(v, min, max float64) float64 {
	switch {
	case v < min, math.IsNaN(v):
		return min
	case v > max:
		return max
	default:
		return v
	}
}

func fraction(v, min, max float64) float64 {
	if max <= min {
		return 0
	}
	return (clamp(v, min, max) - min) / (max - min)
}
