package gauge

import (
	"image/color"

	"github.com/roffe/txgauge/pkg/paint"
)

// Background fills a disc with a diagonal gradient.
type Background struct {
	Base
	stops []paint.Stop
	pen   paint.Pen
}

func NewBackground() *Background {
	return &Background{
		Base: Base{position: 88},
		stops: []paint.Stop{
			{Offset: 0.4, Color: color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}},
			{Offset: 0.8, Color: color.Black},
		},
		pen: paint.NoPen,
	}
}

func (*Background) Kind() Kind { return KindBackground }

// AddColor appends a gradient stop. Offsets outside [0,1] are ignored.
func (b *Background) AddColor(offset float64, c color.Color) {
	if offset < 0 || offset > 1 {
		return
	}
	b.stops = append(b.stops, paint.Stop{Offset: offset, Color: c})
	b.update()
}

func (b *Background) ClearColors() {
	b.stops = nil
	b.update()
}

func (b *Background) Colors() []paint.Stop { return b.stops }

// SetPen sets the outline. The default draws none.
func (b *Background) SetPen(p paint.Pen) {
	b.pen = p
	b.update()
}

func (b *Background) Draw(c paint.Canvas) {
	r := b.ResetRect()
	c.Save()
	defer c.Restore()

	grad := paint.NewLinearGradient(r.TopLeft(), r.BottomRight())
	for _, s := range b.stops {
		grad.SetColorAt(s.Offset, s.Color)
	}
	c.SetPen(b.pen)
	c.SetBrush(grad)
	c.DrawEllipse(b.WorkingRect())
}
