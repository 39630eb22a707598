package gauge

import (
	"image/color"

	"github.com/roffe/txgauge/pkg/geometry"
	"github.com/roffe/txgauge/pkg/paint"
)

// Band colours the scale up to Upper, starting where the previous band
// ended.
type Band struct {
	Color color.Color
	Upper float64
}

// ColorBand draws contiguous coloured arcs along the scale.
type ColorBand struct {
	Scale
	bands []Band
}

func NewColorBand() *ColorBand {
	b := &ColorBand{
		Scale: newScale(),
		bands: []Band{
			{Color: color.RGBA{G: 0xff, A: 0xff}, Upper: 10},
			{Color: color.RGBA{G: 0x80, A: 0xff}, Upper: 50},
			{Color: color.RGBA{R: 0xff, A: 0xff}, Upper: 100},
		},
	}
	b.position = 50
	return b
}

func (*ColorBand) Kind() Kind { return KindColorBand }

func (b *ColorBand) Bands() []Band { return b.bands }

func (b *ColorBand) SetBands(bands []Band) {
	b.bands = bands
	b.update()
}

// Sweeps returns the angular extent of every band.
func (b *ColorBand) Sweeps() []float64 {
	out := make([]float64, len(b.bands))
	prev := b.minValue
	for i, band := range b.bands {
		out[i] = b.DegreeFromValue(band.Upper) - b.DegreeFromValue(prev)
		prev = band.Upper
	}
	return out
}

func (b *ColorBand) Draw(c paint.Canvas) {
	b.ResetRect()
	c.Save()
	defer c.Restore()

	r := b.WorkingRect()
	pen := paint.NewPen(nil).WithWidth(geometry.Radius(b.rect) / 20).WithCap(paint.FlatCap)
	c.SetBrush(nil)

	offset := b.StartDegree()
	for i, sweep := range b.Sweeps() {
		start := 180 - offset
		path := paint.NewPath()
		path.ArcMoveTo(r, start)
		path.ArcTo(r, start, -sweep)
		offset += sweep

		pen.Color = b.bands[i].Color
		c.SetPen(pen)
		c.DrawPath(path)
	}
}
