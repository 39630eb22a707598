package gauge

import (
	"image/color"

	"github.com/roffe/txgauge/pkg/geometry"
	"github.com/roffe/txgauge/pkg/paint"
)

// Label draws a line of text centred on a point of the dial.
type Label struct {
	Base
	text   string
	angle  float64
	color  color.Color
	family string
}

func NewLabel() *Label {
	return &Label{
		Base:   Base{position: 50},
		text:   "%",
		angle:  270,
		color:  color.Black,
		family: "Arial",
	}
}

func (*Label) Kind() Kind { return KindLabel }

func (l *Label) Text() string { return l.text }

// SetText replaces the text. Redraw is only requested when repaint is set,
// letting a needle update its readout without a second repaint.
func (l *Label) SetText(text string, repaint bool) {
	l.text = text
	if repaint {
		l.update()
	}
}

func (l *Label) Angle() float64 { return l.angle }

func (l *Label) SetAngle(a float64) {
	l.angle = a
	l.update()
}

func (l *Label) Color() color.Color { return l.color }

func (l *Label) SetColor(c color.Color) {
	l.color = c
	l.update()
}

func (l *Label) Font() string { return l.family }

func (l *Label) SetFont(family string) {
	l.family = family
	l.update()
}

func (l *Label) Draw(c paint.Canvas) {
	l.ResetRect()
	c.Save()
	defer c.Restore()

	font := paint.Font{Family: l.family, Size: geometry.Radius(l.rect) / 10, Weight: paint.Bold}
	c.SetFont(font)
	c.SetPen(paint.NewPen(l.color))
	c.SetBrush(nil)

	at := geometry.PointOnEllipse(l.angle, l.WorkingRect())
	sz := c.TextSize(font, l.text)
	c.DrawText(geometry.RectFromCenter(at, sz.Width, sz.Height), l.text)
}
