package gauge

import (
	"image/color"

	"github.com/roffe/txgauge/pkg/geometry"
	"github.com/roffe/txgauge/pkg/paint"
)

// Arc strokes the scale outline from the minimum to the maximum degree.
type Arc struct {
	Scale
	color color.Color
}

func NewArc() *Arc {
	a := &Arc{Scale: newScale(), color: color.Black}
	a.position = 80
	return a
}

func (*Arc) Kind() Kind { return KindArc }

func (a *Arc) Color() color.Color { return a.color }

func (a *Arc) SetColor(c color.Color) {
	a.color = c
	a.update()
}

func (a *Arc) Draw(c paint.Canvas) {
	a.ResetRect()
	c.Save()
	defer c.Restore()

	r := a.WorkingRect()
	start := a.minDegree + a.degreeOffset
	c.SetPen(paint.NewPen(a.color).WithWidth(geometry.Radius(r) / 40))
	c.SetBrush(nil)
	c.DrawArc(r, -(start + 180), -(a.maxDegree - a.minDegree))
}
