package gauge

import (
	"image/color"
	"math"
	"strconv"

	"github.com/roffe/txgauge/pkg/geometry"
	"github.com/roffe/txgauge/pkg/paint"
)

// AttitudeMeter is an artificial horizon: sky and ground split by a line
// that moves with pitch and tilts with roll, plus a pitch ladder and a
// fixed aircraft symbol.
type AttitudeMeter struct {
	Base
	pitch float64 // stored with inverted sign
	roll  float64

	skyTop, skyBottom       color.Color
	groundTop, groundBottom color.Color
	markColor, handleColor  color.Color
	ladderFont              string
}

func NewAttitudeMeter() *AttitudeMeter {
	return &AttitudeMeter{
		skyTop:       color.NRGBA{B: 0xff, A: 0x80},
		skyBottom:    color.NRGBA{B: 0x80, A: 0x80},
		groundTop:    color.RGBA{R: 139, G: 119, B: 118, A: 0xff},
		groundBottom: color.RGBA{R: 139, G: 119, B: 101, A: 0xff},
		markColor:    color.White,
		handleColor:  color.Gray{Y: 0xa0},
		ladderFont:   "Arial",
	}
}

func (*AttitudeMeter) Kind() Kind { return KindAttitudeMeter }

// Pitch returns the pitch as it was set.
func (a *AttitudeMeter) Pitch() float64 { return -a.pitch }

// SetPitch ignores NaN and infinite angles, as does SetRoll.
func (a *AttitudeMeter) SetPitch(p float64) {
	if !finite(p) {
		return
	}
	a.pitch = -p
	a.update()
}

func (a *AttitudeMeter) Roll() float64 { return a.roll }

func (a *AttitudeMeter) SetRoll(r float64) {
	if !finite(r) {
		return
	}
	a.roll = r
	a.update()
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// SetSkyColors sets the sky gradient. Include the desired alpha in the
// colours, the defaults are half transparent.
func (a *AttitudeMeter) SetSkyColors(top, bottom color.Color) {
	a.skyTop, a.skyBottom = top, bottom
	a.update()
}

func (a *AttitudeMeter) SetGroundColors(top, bottom color.Color) {
	a.groundTop, a.groundBottom = top, bottom
	a.update()
}

// PitchOffset is the vertical displacement of the horizon for radius r.
// Nose down moves slightly less per degree than nose up.
func (a *AttitudeMeter) PitchOffset(r float64) float64 {
	if a.pitch < 0 {
		return 0.0135 * r * a.pitch
	}
	return 0.015 * r * a.pitch
}

// StartAngle returns the scale angle where the horizon meets the left
// edge of the dial inscribed in r.
func (a *AttitudeMeter) StartAngle(r geometry.Rect) float64 {
	off := a.PitchOffset(geometry.Radius(r))
	ctr := r.Center()
	pitchPt := geometry.Pt(ctr.X, ctr.Y-off)
	ref := geometry.PointOnEllipse(a.roll, r)
	ref.Y -= off
	p, ok := geometry.RayCircleIntersection(pitchPt, ref, r)
	if !ok {
		Logger().Debug("horizon outside dial", "pitch", -a.pitch, "roll", a.roll)
	}
	return geometry.AngleFromPoint(p, r)
}

// HorizonChords returns the start and span of the sky and ground chords
// in canvas arc angles.
func (a *AttitudeMeter) HorizonChords(r geometry.Rect) (skyStart, skySpan, groundStart, groundSpan float64) {
	sa := a.StartAngle(r)
	end := sa - 2*a.roll
	skyStart = 180 - sa
	skySpan = end - skyStart
	groundStart = -(180 + sa)
	groundSpan = end + (180 + sa)
	return
}

func (a *AttitudeMeter) Draw(c paint.Canvas) {
	a.ResetRect()
	r := a.WorkingRect()
	rad := geometry.Radius(r)

	c.Save()
	defer c.Restore()

	skyStart, skySpan, groundStart, groundSpan := a.HorizonChords(r)
	c.SetPen(paint.NoPen)
	c.SetBrush(paint.NewLinearGradient(r.TopLeft(), r.BottomRight()).
		SetColorAt(0, a.skyTop).
		SetColorAt(0.8, a.skyBottom))
	c.DrawChord(r, skyStart, skySpan)
	c.SetBrush(paint.NewLinearGradient(r.TopLeft(), r.BottomRight()).
		SetColorAt(0, a.groundTop).
		SetColorAt(0.8, a.groundBottom))
	c.DrawChord(r, groundStart, groundSpan)

	a.drawPitchLadder(c, r, rad)
	a.drawHandle(c, r)
	a.drawMarks(c, r, rad)
}

func (a *AttitudeMeter) drawPitchLadder(c paint.Canvas, r geometry.Rect, rad float64) {
	ctr := r.Center()
	c.Save()
	defer c.Restore()
	c.Translate(ctr.X, ctr.Y-a.PitchOffset(rad))
	c.Rotate(a.roll)

	font := paint.Font{Family: a.ladderFont, Size: 0.08 * rad, Weight: paint.Bold}
	c.SetPen(paint.NewPen(a.markColor).WithWidth(rad / 40))
	c.SetBrush(nil)
	c.SetFont(font)
	for i := -30; i <= 30; i += 10 {
		w := 0.01 * rad * math.Abs(float64(i))
		y := rad / 70 * float64(i)
		p1, p2 := geometry.Pt(-w, y), geometry.Pt(w, y)
		c.DrawLine(p1, p2)
		if i == 0 {
			continue
		}
		s := strconv.Itoa(abs(i))
		sz := c.TextSize(font, s)
		c.DrawText(geometry.RectFromCenter(p1.Sub(geometry.Pt(0.1*rad, 0)), sz.Width, sz.Height), s)
		c.DrawText(geometry.RectFromCenter(p2.Add(geometry.Pt(0.1*rad, 0)), sz.Width, sz.Height), s)
	}
}

func (a *AttitudeMeter) drawMarks(c paint.Canvas, r geometry.Rect, rad float64) {
	ctr := r.Center()
	mark := func(deg float64) {
		pt := geometry.PointOnEllipse(deg, r)
		c.DrawLine(pt, geometry.PointAtPercent(pt, ctr, 0.1))
	}
	c.SetBrush(nil)
	c.SetPen(paint.NewPen(a.markColor))
	for deg := 60; deg <= 120; deg += 10 {
		if deg == 90 {
			continue
		}
		mark(float64(deg))
	}
	c.SetPen(paint.NewPen(a.markColor).WithWidth(rad / 30))
	for _, deg := range []float64{0, 90, 180, 30, 150} {
		mark(deg)
	}
}

// drawHandle paints the fixed aircraft symbol.
func (a *AttitudeMeter) drawHandle(c paint.Canvas, r geometry.Rect) {
	hr := a.AdjustRect(15)
	rad := geometry.Radius(hr)
	ctr := hr.Center()

	pen := paint.NewPen(a.handleColor).WithWidth(0.25 * rad)
	c.SetPen(pen)
	c.SetBrush(nil)
	c.DrawArc(hr, 0, -180)
	c.DrawLine(geometry.Pt(ctr.X-2*rad, ctr.Y), geometry.Pt(ctr.X-rad, ctr.Y))
	c.DrawLine(geometry.Pt(ctr.X+2*rad, ctr.Y), geometry.Pt(ctr.X+rad, ctr.Y))
	c.SetBrush(paint.Solid(a.handleColor))
	c.DrawEllipse(a.AdjustRect(2))
	c.DrawLine(geometry.Pt(ctr.X, ctr.Y+rad), geometry.Pt(ctr.X, ctr.Y+4*rad))

	c.SetPen(paint.NewPen(a.handleColor))
	c.DrawPolygon([]geometry.Point{
		geometry.Pt(ctr.X-rad, ctr.Y+4*rad),
		geometry.PointOnEllipse(290, r),
		geometry.PointOnEllipse(250, r),
		geometry.Pt(ctr.X+rad, ctr.Y+4*rad),
	})
	c.DrawChord(r, -70, -40)
}

func abs(i int) int {
	if i < 0 {
		return -i
	}
	return i
}
