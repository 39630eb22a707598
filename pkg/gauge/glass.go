package gauge

import (
	"image/color"

	"github.com/roffe/txgauge/pkg/geometry"
	"github.com/roffe/txgauge/pkg/paint"
)

// Glass paints a translucent reflection over the upper half of the dial.
type Glass struct {
	Base
	lowAlpha  float64
	highAlpha float64
}

func NewGlass() *Glass {
	return &Glass{
		Base:      Base{position: 88},
		lowAlpha:  0.2,
		highAlpha: 0.4,
	}
}

func (*Glass) Kind() Kind { return KindGlass }

// SetAlpha sets the opacity of the gray and white gradient stops.
// Values are clamped into [0,1].
func (g *Glass) SetAlpha(low, high float64) {
	g.lowAlpha = clamp01(low)
	g.highAlpha = clamp01(high)
	g.update()
}

func (g *Glass) Alpha() (low, high float64) { return g.lowAlpha, g.highAlpha }

func (g *Glass) Draw(c paint.Canvas) {
	g.ResetRect()
	c.Save()
	defer c.Restore()

	r1 := g.WorkingRect()
	r2 := geometry.NewRect(r1.X, r1.Y, r1.Width, geometry.Radius(r1)/2).MoveCenter(g.rect.Center())

	grad := paint.NewLinearGradient(r1.TopLeft(), r1.BottomRight()).
		SetColorAt(0.1, paint.WithAlpha(color.Gray{Y: 0xa0}, g.lowAlpha)).
		SetColorAt(0.5, paint.WithAlpha(color.White, g.highAlpha))

	c.SetPen(paint.NoPen)
	c.SetBrush(grad)
	c.DrawPie(r1, 0, 180)
	c.DrawPie(r2, 0, -180)
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
