// Package ggpaint renders paint.Canvas calls with the gogpu/gg software
// rasterizer.
package ggpaint

import (
	"image"
	"image/color"
	"io"

	"github.com/gogpu/gg"
	"github.com/roffe/txgauge/pkg/geometry"
	"github.com/roffe/txgauge/pkg/paint"
)

type state struct {
	pen   paint.Pen
	brush paint.Brush
	font  paint.Font
}

// Canvas draws into a gg.Context. gg always antialiases, so render hints
// are only remembered.
type Canvas struct {
	dc    *gg.Context
	cur   state
	stack []state
	hints paint.RenderHints
	err   error
}

var _ paint.Canvas = (*Canvas)(nil)

// New creates a w×h canvas backed by a fresh gg context.
func New(w, h int) *Canvas {
	return Wrap(gg.NewContext(w, h))
}

func Wrap(dc *gg.Context) *Canvas {
	return &Canvas{dc: dc, cur: state{pen: paint.NewPen(color.Black)}}
}

func (c *Canvas) Context() *gg.Context { return c.dc }

func (c *Canvas) Image() image.Image { return c.dc.Image() }

func (c *Canvas) EncodePNG(w io.Writer) error { return c.dc.EncodePNG(w) }

func (c *Canvas) Clear(col color.Color) { c.dc.ClearWithColor(gg.FromColor(col)) }

func (c *Canvas) Close() error { return c.dc.Close() }

// Err returns the first rasterizer or font error seen while drawing.
func (c *Canvas) Err() error { return c.err }

func (c *Canvas) setErr(err error) {
	if err != nil && c.err == nil {
		c.err = err
	}
}

func (c *Canvas) Save() {
	c.stack = append(c.stack, c.cur)
	c.dc.Push()
}

func (c *Canvas) Restore() {
	if len(c.stack) == 0 {
		return
	}
	c.cur = c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
	c.dc.Pop()
}

func (c *Canvas) Translate(dx, dy float64) { c.dc.Translate(dx, dy) }

func (c *Canvas) Rotate(deg float64) { c.dc.Rotate(geometry.Radians(deg)) }

func (c *Canvas) SetPen(p paint.Pen) { c.cur.pen = p }

func (c *Canvas) SetBrush(b paint.Brush) { c.cur.brush = b }

func (c *Canvas) SetFont(f paint.Font) { c.cur.font = f }

func (c *Canvas) SetHints(h paint.RenderHints) { c.hints = h }

func (c *Canvas) DrawLine(p1, p2 geometry.Point) {
	c.stroke(func() {
		c.dc.MoveTo(p1.X, p1.Y)
		c.dc.LineTo(p2.X, p2.Y)
	})
}

func (c *Canvas) DrawRect(r geometry.Rect) {
	c.DrawPolygon([]geometry.Point{
		r.TopLeft(),
		geometry.Pt(r.X+r.Width, r.Y),
		r.BottomRight(),
		geometry.Pt(r.X, r.Y+r.Height),
	})
}

func (c *Canvas) DrawEllipse(r geometry.Rect) {
	c.DrawPolygon(paint.FlattenArc(r, 0, 360))
}

func (c *Canvas) DrawArc(r geometry.Rect, start, span float64) {
	pts := paint.FlattenArc(r, start, span)
	c.stroke(func() { c.polyline(pts, false) })
}

func (c *Canvas) DrawChord(r geometry.Rect, start, span float64) {
	c.DrawPolygon(paint.FlattenArc(r, start, span))
}

func (c *Canvas) DrawPie(r geometry.Rect, start, span float64) {
	pts := append([]geometry.Point{r.Center()}, paint.FlattenArc(r, start, span)...)
	c.DrawPolygon(pts)
}

func (c *Canvas) DrawPolygon(pts []geometry.Point) {
	if len(pts) < 2 {
		return
	}
	c.fillAndStroke(func() { c.polyline(pts, true) })
}

func (c *Canvas) DrawPath(p *paint.Path) {
	if p == nil || len(p.Segments()) == 0 {
		return
	}
	c.fillAndStroke(func() {
		for _, s := range p.Segments() {
			switch s.Kind {
			case paint.SegMoveTo:
				c.dc.MoveTo(s.P.X, s.P.Y)
			case paint.SegLineTo:
				c.dc.LineTo(s.P.X, s.P.Y)
			case paint.SegClose:
				c.dc.ClosePath()
			}
		}
	})
}

// DrawText centres text inside r. Glyphs are always drawn upright at the
// transformed anchor.
func (c *Canvas) DrawText(r geometry.Rect, s string) {
	face, err := faceFor(c.cur.font)
	if err != nil {
		c.setErr(err)
		return
	}
	c.dc.SetFont(face)
	w, _ := c.dc.MeasureString(s)
	m := face.Metrics()
	ctr := r.Center()
	x, y := c.dc.TransformPoint(ctr.X, ctr.Y)
	c.drawString(s, x-w/2, y+(m.Ascent-m.Descent)/2)
}

func (c *Canvas) DrawTextAt(p geometry.Point, s string) {
	face, err := faceFor(c.cur.font)
	if err != nil {
		c.setErr(err)
		return
	}
	c.dc.SetFont(face)
	x, y := c.dc.TransformPoint(p.X, p.Y)
	c.drawString(s, x, y)
}

func (c *Canvas) TextSize(f paint.Font, s string) geometry.Size {
	face, err := faceFor(f)
	if err != nil {
		c.setErr(err)
		return geometry.Size{}
	}
	c.dc.SetFont(face)
	w, h := c.dc.MeasureString(s)
	return geometry.Size{Width: w, Height: h}
}

func (c *Canvas) drawString(s string, x, y float64) {
	if !c.cur.pen.Visible() {
		return
	}
	c.dc.SetColor(c.cur.pen.Color)
	c.dc.DrawString(s, x, y)
}

func (c *Canvas) polyline(pts []geometry.Point, closed bool) {
	c.dc.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		c.dc.LineTo(p.X, p.Y)
	}
	if closed {
		c.dc.ClosePath()
	}
}

func (c *Canvas) fillAndStroke(build func()) {
	if b := c.brush(); b != nil {
		build()
		c.dc.SetFillBrush(b)
		c.setErr(c.dc.Fill())
	}
	c.stroke(build)
}

func (c *Canvas) stroke(build func()) {
	p := c.cur.pen
	if !p.Visible() {
		return
	}
	build()
	w := p.Width
	if w <= 0 {
		w = 1
	}
	c.dc.SetLineWidth(w)
	c.dc.SetLineCap(lineCap(p.Cap))
	c.dc.SetStrokeBrush(gg.Solid(gg.FromColor(p.Color)))
	c.setErr(c.dc.Stroke())
}

// brush converts the current brush. Gradient end points are mapped to
// device space since gg evaluates gradients per pixel.
func (c *Canvas) brush() gg.Brush {
	switch b := c.cur.brush.(type) {
	case paint.SolidBrush:
		if b.Color == nil {
			return nil
		}
		return gg.Solid(gg.FromColor(b.Color))
	case *paint.LinearGradient:
		if b == nil || len(b.Stops) == 0 {
			return nil
		}
		x0, y0 := c.dc.TransformPoint(b.Start.X, b.Start.Y)
		x1, y1 := c.dc.TransformPoint(b.End.X, b.End.Y)
		g := gg.NewLinearGradientBrush(x0, y0, x1, y1)
		for _, s := range b.Stops {
			g.AddColorStop(s.Offset, gg.FromColor(s.Color))
		}
		return g
	default:
		return nil
	}
}

func lineCap(c paint.CapStyle) gg.LineCap {
	switch c {
	case paint.FlatCap:
		return gg.LineCapButt
	case paint.RoundCap:
		return gg.LineCapRound
	default:
		return gg.LineCapSquare
	}
}
