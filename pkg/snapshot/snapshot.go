// Package snapshot renders gauges and bars offscreen.
package snapshot

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"sync/atomic"

	"github.com/roffe/txgauge/pkg/colors"
	"github.com/roffe/txgauge/pkg/gauge"
	"github.com/roffe/txgauge/pkg/geometry"
	"github.com/roffe/txgauge/pkg/paint"
	"github.com/roffe/txgauge/pkg/paint/ggpaint"
	"github.com/roffe/txgauge/pkg/paint/recorder"
	"github.com/roffe/txgauge/pkg/presets"
	"golang.org/x/image/draw"
)

// Painter is anything that draws itself: a gauge, a progress bar or a ring.
type Painter interface {
	Draw(c paint.Canvas)
}

// Host is a fixed size offscreen surface. Redraw requests are only counted.
type Host struct {
	bounds  geometry.Rect
	redraws atomic.Int64
}

func NewHost(w, h int) *Host {
	return &Host{bounds: geometry.NewRect(0, 0, float64(w), float64(h))}
}

func (h *Host) RequestRedraw()        { h.redraws.Add(1) }
func (h *Host) Bounds() geometry.Rect { return h.bounds }
func (h *Host) Redraws() int64        { return h.redraws.Load() }

// Render draws p onto a w×h image. bg may be nil for a transparent
// background.
func Render(p Painter, w, h int, bg color.Color) (*image.RGBA, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("invalid size %dx%d", w, h)
	}
	c := ggpaint.New(w, h)
	defer c.Close()
	if bg != nil {
		c.Clear(bg)
	}
	p.Draw(c)
	if err := c.Err(); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	src := c.Image()
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Copy(dst, image.Point{}, src, src.Bounds(), draw.Src, nil)
	return dst, nil
}

// PNG renders p and encodes the result.
func PNG(p Painter, w, h int, bg color.Color) ([]byte, error) {
	img, err := Render(p, w, h, bg)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Dump writes the drawing operations of p in text form.
func Dump(w io.Writer, p Painter) error {
	rec := recorder.New()
	p.Draw(rec)
	return rec.Dump(w)
}

// Options controls RenderPreset.
type Options struct {
	Size       int
	Value      float64
	Pitch      float64
	Roll       float64
	Background color.Color
	Mode       *colors.ColorBlindMode
}

// Preset builds the named preset on a square offscreen gauge, drives every
// needle to opts.Value and renders it to PNG.
func Preset(name string, opts Options) ([]byte, error) {
	p, err := presets.Get(name)
	if err != nil {
		return nil, err
	}
	if opts.Size <= 0 {
		opts.Size = 256
	}
	g := gauge.New(NewHost(opts.Size, opts.Size))
	built, err := p.Build(g, opts.Mode)
	if err != nil {
		return nil, err
	}
	for _, n := range built.Needles {
		n.SetCurrentValue(opts.Value)
	}
	if built.Attitude != nil {
		built.Attitude.SetPitch(opts.Pitch)
		built.Attitude.SetRoll(opts.Roll)
	}
	return PNG(g, opts.Size, opts.Size, opts.Background)
}
