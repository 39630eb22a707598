package gauge

import (
	"image/color"
	"strconv"

	"github.com/roffe/txgauge/pkg/geometry"
	"github.com/roffe/txgauge/pkg/paint"
)

// Degrees draws a radial tick for every step of the scale.
type Degrees struct {
	Scale
	step      float64
	color     color.Color
	subDegree bool
}

func NewDegrees() *Degrees {
	d := &Degrees{Scale: newScale(), step: 10, color: color.Black}
	d.position = 90
	return d
}

func (*Degrees) Kind() Kind { return KindDegrees }

func (d *Degrees) Step() float64 { return d.step }

func (d *Degrees) SetStep(step float64) error {
	if !(step > 0) {
		return ErrInvalidStep
	}
	d.step = step
	d.update()
	return nil
}

func (d *Degrees) Color() color.Color { return d.color }

func (d *Degrees) SetColor(c color.Color) {
	d.color = c
	d.update()
}

func (d *Degrees) SubDegree() bool { return d.subDegree }

// SetSubDegree switches to hairline ticks, used for minor graduations.
func (d *Degrees) SetSubDegree(b bool) {
	d.subDegree = b
	d.update()
}

// Ticks returns the values a tick is drawn for.
func (d *Degrees) Ticks() []float64 {
	return tickValues(d.minValue, d.maxValue, d.step)
}

func (d *Degrees) Draw(c paint.Canvas) {
	d.ResetRect()
	c.Save()
	defer c.Restore()

	r := d.WorkingRect()
	ctr := r.Center()
	pen := paint.NewPen(d.color)
	if !d.subDegree {
		pen.Width = geometry.Radius(r) / 25
	}
	c.SetPen(pen)
	c.SetBrush(nil)
	for _, v := range d.Ticks() {
		pt := geometry.PointOnEllipse(d.DegreeFromValue(v), r)
		c.DrawLine(geometry.PointAtPercent(pt, ctr, 0.03), geometry.PointAtPercent(pt, ctr, 0.13))
	}
}

// Values writes the scale numbers around the dial.
type Values struct {
	Scale
	step      float64
	color     color.Color
	family    string
	precision int
}

func NewValues() *Values {
	v := &Values{Scale: newScale(), step: 10, color: color.Black, family: "Arial", precision: -1}
	v.position = 70
	return v
}

func (*Values) Kind() Kind { return KindValues }

func (v *Values) Step() float64 { return v.step }

func (v *Values) SetStep(step float64) error {
	if !(step > 0) {
		return ErrInvalidStep
	}
	v.step = step
	v.update()
	return nil
}

func (v *Values) Color() color.Color { return v.color }

func (v *Values) SetColor(c color.Color) {
	v.color = c
	v.update()
}

func (v *Values) Font() string { return v.family }

func (v *Values) SetFont(family string) {
	v.family = family
	v.update()
}

func (v *Values) Precision() int { return v.precision }

// SetPrecision sets the number of decimals. Negative precision prints the
// shortest exact representation.
func (v *Values) SetPrecision(p int) {
	v.precision = p
	v.update()
}

func (v *Values) Ticks() []float64 {
	return tickValues(v.minValue, v.maxValue, v.step)
}

func (v *Values) format(val float64) string {
	return strconv.FormatFloat(val, 'f', v.precision, 64)
}

func (v *Values) Draw(c paint.Canvas) {
	full := v.ResetRect()
	c.Save()
	defer c.Restore()

	font := paint.Font{Family: v.family, Size: 0.08 * geometry.Radius(v.AdjustRect(99)), Weight: paint.Bold}
	c.SetFont(font)
	c.SetPen(paint.NewPen(v.color))
	c.SetBrush(nil)

	ctr := full.Center()
	for _, val := range v.Ticks() {
		pt := geometry.PointOnEllipse(v.DegreeFromValue(val), full)
		s := v.format(val)
		sz := c.TextSize(font, s)
		at := geometry.PointAtPercent(pt, ctr, 1-v.position/100)
		c.DrawText(geometry.RectFromCenter(at, sz.Width, sz.Height), s)
	}
}
