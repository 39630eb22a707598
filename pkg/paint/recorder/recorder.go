// Package recorder provides a paint.Canvas that records every call instead of
// rasterizing it.
package recorder

import (
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/roffe/txgauge/pkg/geometry"
	"github.com/roffe/txgauge/pkg/paint"
)

type OpKind int

const (
	OpLine OpKind = iota
	OpRect
	OpEllipse
	OpArc
	OpChord
	OpPie
	OpPolygon
	OpPath
	OpText
	OpTextAt
)

func (k OpKind) String() string {
	switch k {
	case OpLine:
		return "line"
	case OpRect:
		return "rect"
	case OpEllipse:
		return "ellipse"
	case OpArc:
		return "arc"
	case OpChord:
		return "chord"
	case OpPie:
		return "pie"
	case OpPolygon:
		return "polygon"
	case OpPath:
		return "path"
	case OpText:
		return "text"
	case OpTextAt:
		return "textAt"
	default:
		return "unknown"
	}
}

// Op is one recorded draw call together with the state it was issued with.
type Op struct {
	Kind        OpKind
	Points      []geometry.Point
	Rect        geometry.Rect
	Start, Span float64
	Text        string
	Path        *paint.Path

	Pen      paint.Pen
	Brush    paint.Brush
	Font     paint.Font
	Depth    int
	Rotation float64
	Offset   geometry.Point
}

type state struct {
	pen      paint.Pen
	brush    paint.Brush
	font     paint.Font
	offset   geometry.Point
	rotation float64
}

// Canvas records draw calls. The zero value is ready to use.
type Canvas struct {
	Ops []Op

	// Underflows counts Restore calls without a matching Save.
	Underflows int
	MaxDepth   int

	cur   state
	stack []state
	hints paint.RenderHints
}

func New() *Canvas { return &Canvas{} }

var _ paint.Canvas = (*Canvas)(nil)

// Depth is the number of unmatched Save calls.
func (c *Canvas) Depth() int { return len(c.stack) }

// Balanced reports whether every Save was matched by a Restore.
func (c *Canvas) Balanced() bool { return len(c.stack) == 0 && c.Underflows == 0 }

func (c *Canvas) Hints() paint.RenderHints { return c.hints }

func (c *Canvas) Pen() paint.Pen { return c.cur.pen }

func (c *Canvas) Brush() paint.Brush { return c.cur.brush }

// Count returns how many ops of kind k were recorded.
func (c *Canvas) Count(k OpKind) int {
	n := 0
	for _, op := range c.Ops {
		if op.Kind == k {
			n++
		}
	}
	return n
}

// Filter returns the ops of kind k in recording order.
func (c *Canvas) Filter(k OpKind) []Op {
	var out []Op
	for _, op := range c.Ops {
		if op.Kind == k {
			out = append(out, op)
		}
	}
	return out
}

func (c *Canvas) Reset() {
	*c = Canvas{}
}

func (c *Canvas) Save() {
	c.stack = append(c.stack, c.cur)
	if len(c.stack) > c.MaxDepth {
		c.MaxDepth = len(c.stack)
	}
}

func (c *Canvas) Restore() {
	if len(c.stack) == 0 {
		c.Underflows++
		return
	}
	c.cur = c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
}

func (c *Canvas) Translate(dx, dy float64) {
	c.cur.offset = c.cur.offset.Add(geometry.Rotate(geometry.Pt(dx, dy), c.cur.rotation))
}

func (c *Canvas) Rotate(deg float64) { c.cur.rotation += deg }

func (c *Canvas) SetPen(p paint.Pen)             { c.cur.pen = p }
func (c *Canvas) SetBrush(b paint.Brush)         { c.cur.brush = b }
func (c *Canvas) SetFont(f paint.Font)           { c.cur.font = f }
func (c *Canvas) SetHints(h paint.RenderHints)   { c.hints = h }
func (c *Canvas) DrawLine(p1, p2 geometry.Point) { c.record(Op{Kind: OpLine, Points: []geometry.Point{p1, p2}}) }
func (c *Canvas) DrawRect(r geometry.Rect)       { c.record(Op{Kind: OpRect, Rect: r}) }
func (c *Canvas) DrawEllipse(r geometry.Rect)    { c.record(Op{Kind: OpEllipse, Rect: r}) }

func (c *Canvas) DrawArc(r geometry.Rect, start, span float64) {
	c.record(Op{Kind: OpArc, Rect: r, Start: start, Span: span})
}

func (c *Canvas) DrawChord(r geometry.Rect, start, span float64) {
	c.record(Op{Kind: OpChord, Rect: r, Start: start, Span: span})
}

func (c *Canvas) DrawPie(r geometry.Rect, start, span float64) {
	c.record(Op{Kind: OpPie, Rect: r, Start: start, Span: span})
}

func (c *Canvas) DrawPolygon(pts []geometry.Point) {
	cp := make([]geometry.Point, len(pts))
	copy(cp, pts)
	c.record(Op{Kind: OpPolygon, Points: cp})
}

func (c *Canvas) DrawPath(p *paint.Path) { c.record(Op{Kind: OpPath, Path: p}) }

func (c *Canvas) DrawText(r geometry.Rect, text string) {
	c.record(Op{Kind: OpText, Rect: r, Text: text})
}

func (c *Canvas) DrawTextAt(p geometry.Point, text string) {
	c.record(Op{Kind: OpTextAt, Points: []geometry.Point{p}, Text: text})
}

// TextSize uses a fixed advance of 0.6em per rune so layouts stay
// deterministic without font files.
func (c *Canvas) TextSize(f paint.Font, text string) geometry.Size {
	return geometry.Size{
		Width:  0.6 * f.Size * float64(utf8.RuneCountInString(text)),
		Height: f.Size,
	}
}

func (c *Canvas) record(op Op) {
	op.Pen = c.cur.pen
	op.Brush = c.cur.brush
	op.Font = c.cur.font
	op.Depth = len(c.stack)
	op.Rotation = c.cur.rotation
	op.Offset = c.cur.offset
	c.Ops = append(c.Ops, op)
}

// Dump writes one line per recorded op.
func (c *Canvas) Dump(w io.Writer) error {
	for i, op := range c.Ops {
		var err error
		switch op.Kind {
		case OpLine, OpPolygon:
			_, err = fmt.Fprintf(w, "%03d %-8s depth=%d rot=%.2f pts=%v\n", i, op.Kind, op.Depth, op.Rotation, op.Points)
		case OpArc, OpChord, OpPie:
			_, err = fmt.Fprintf(w, "%03d %-8s depth=%d rect=%v start=%.2f span=%.2f\n", i, op.Kind, op.Depth, op.Rect, op.Start, op.Span)
		case OpText, OpTextAt:
			_, err = fmt.Fprintf(w, "%03d %-8s depth=%d %q\n", i, op.Kind, op.Depth, op.Text)
		case OpPath:
			_, err = fmt.Fprintf(w, "%03d %-8s depth=%d segments=%d\n", i, op.Kind, op.Depth, len(op.Path.Segments()))
		default:
			_, err = fmt.Fprintf(w, "%03d %-8s depth=%d rect=%v\n", i, op.Kind, op.Depth, op.Rect)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
