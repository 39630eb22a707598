package bar

import (
	"image/color"
	"strconv"

	"github.com/roffe/txgauge/pkg/gauge"
	"github.com/roffe/txgauge/pkg/geometry"
	"github.com/roffe/txgauge/pkg/paint"
)

// Ring is a circular progress indicator: a track circle with an arc that
// grows clockwise from the start angle.
type Ring struct {
	host gauge.Host

	min, max, current float64
	thickness         float64
	start             float64
	showText          bool

	track, fill, text color.Color
	family            string
}

func NewRing(host gauge.Host) *Ring {
	return &Ring{
		host:      host,
		max:       100,
		thickness: 0.15,
		start:     90,
		showText:  true,
		track:     color.RGBA{R: 0x40, G: 0x40, B: 0x40, A: 0xff},
		fill:      color.RGBA{R: 0xff, G: 0x67, A: 0xff},
		text:      color.RGBA{R: 0xf0, G: 0xf0, B: 0xf0, A: 0xff},
		family:    "Arial",
	}
}

func (r *Ring) SetHost(h gauge.Host) {
	r.host = h
	r.update()
}

func (r *Ring) MinValue() float64     { return r.min }
func (r *Ring) MaxValue() float64     { return r.max }
func (r *Ring) CurrentValue() float64 { return r.current }

func (r *Ring) SetRange(min, max float64) error {
	if err := checkRange(min, max); err != nil {
		return err
	}
	r.min, r.max = min, max
	r.current = clamp(r.current, min, max)
	r.update()
	return nil
}

func (r *Ring) SetCurrentValue(v float64) {
	r.current = clamp(v, r.min, r.max)
	r.update()
}

// SetThickness sets the ring width as a fraction of the radius, clamped
// into [0.01,1].
func (r *Ring) SetThickness(f float64) {
	switch {
	case f < 0.01:
		f = 0.01
	case f > 1:
		f = 1
	}
	r.thickness = f
	r.update()
}

// SetStartAngle sets where the arc begins, in degrees counter-clockwise
// from three o'clock.
func (r *Ring) SetStartAngle(deg float64) {
	r.start = deg
	r.update()
}

func (r *Ring) SetShowText(b bool) {
	r.showText = b
	r.update()
}

func (r *Ring) SetColors(track, fill, text color.Color) {
	r.track, r.fill, r.text = track, fill, text
	r.update()
}

func (r *Ring) Fraction() float64 {
	return fraction(r.current, r.min, r.max)
}

// Sweep is the arc extent in degrees, negative meaning clockwise.
func (r *Ring) Sweep() float64 {
	return -360 * r.Fraction()
}

func (r *Ring) Text() string {
	return strconv.Itoa(int(r.Fraction()*100+0.5)) + "%"
}

func (r *Ring) Draw(c paint.Canvas) {
	if r.host == nil {
		return
	}
	sq := geometry.InscribedSquare(r.host.Bounds())
	rad := geometry.Radius(sq)
	width := rad * r.thickness
	track := sq.Adjusted(width/2, width/2, -width/2, -width/2)

	c.Save()
	defer c.Restore()
	c.SetHints(paint.Antialiasing | paint.TextAntialiasing)

	c.SetBrush(nil)
	c.SetPen(paint.NewPen(r.track).WithWidth(width))
	c.DrawEllipse(track)
	if f := r.Fraction(); f > 0 {
		c.SetPen(paint.NewPen(r.fill).WithWidth(width).WithCap(paint.FlatCap))
		c.DrawArc(track, r.start, r.Sweep())
	}

	if !r.showText {
		return
	}
	font := paint.Font{Family: r.family, Size: rad * 0.3, Weight: paint.Bold}
	s := r.Text()
	sz := c.TextSize(font, s)
	c.SetFont(font)
	c.SetPen(paint.NewPen(r.text))
	c.DrawText(geometry.RectFromCenter(sq.Center(), sz.Width, sz.Height), s)
}

func (r *Ring) update() {
	if r.host != nil {
		r.host.RequestRedraw()
	}
}
