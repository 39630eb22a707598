// Package surface hosts gauges and bars inside a fyne window.
package surface

import (
	"image"
	"image/color"
	"sync"
	"sync/atomic"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
	"github.com/roffe/txgauge/pkg/geometry"
	"github.com/roffe/txgauge/pkg/paint"
	"github.com/roffe/txgauge/pkg/snapshot"
)

// Surface is a raster widget that implements gauge.Host. Painter state
// must only be changed inside Update, which serialises it with drawing.
type Surface struct {
	widget.BaseWidget

	raster  *canvas.Raster
	minSize fyne.Size
	bg      color.Color

	mu      sync.Mutex
	painter snapshot.Painter
	px      image.Point // pixel size of the last frame

	dirty  atomic.Bool
	frames atomic.Int64

	OnTapped func()
}

func New(minSize fyne.Size) *Surface {
	s := &Surface{minSize: minSize}
	s.raster = canvas.NewRaster(s.draw)
	s.ExtendBaseWidget(s)
	return s
}

// SetPainter replaces what the surface draws.
func (s *Surface) SetPainter(p snapshot.Painter) {
	s.Update(func() { s.painter = p })
	s.RequestRedraw()
}

func (s *Surface) SetBackground(c color.Color) {
	s.Update(func() { s.bg = c })
	s.RequestRedraw()
}

// Update runs fn while no frame is being drawn.
func (s *Surface) Update(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn()
}

// RequestRedraw schedules one repaint. Requests made before the next
// frame starts are coalesced.
func (s *Surface) RequestRedraw() {
	if s.dirty.CompareAndSwap(false, true) {
		go canvas.Refresh(s.raster)
	}
}

// Bounds is the drawing area in pixels.
func (s *Surface) Bounds() geometry.Rect {
	if s.px.X > 0 && s.px.Y > 0 {
		return geometry.NewRect(0, 0, float64(s.px.X), float64(s.px.Y))
	}
	sz := s.Size()
	return geometry.NewRect(0, 0, float64(sz.Width), float64(sz.Height))
}

// Frames counts the frames drawn so far.
func (s *Surface) Frames() int64 { return s.frames.Load() }

func (s *Surface) draw(w, h int) image.Image {
	s.dirty.Store(false)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.px = image.Pt(w, h)
	s.frames.Add(1)
	if s.painter == nil || w <= 0 || h <= 0 {
		return image.NewRGBA(image.Rect(0, 0, max(w, 1), max(h, 1)))
	}
	img, err := snapshot.Render(s.painter, w, h, s.bg)
	if err != nil {
		fyne.LogError("surface render", err)
		return image.NewRGBA(image.Rect(0, 0, w, h))
	}
	return img
}

// PNG renders the current state at the size of the last frame.
func (s *Surface) PNG() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, h := s.px.X, s.px.Y
	if w <= 0 || h <= 0 {
		sz := s.Size()
		w, h = int(sz.Width), int(sz.Height)
	}
	if s.painter == nil {
		return snapshot.PNG(blank{}, max(w, 1), max(h, 1), s.bg)
	}
	return snapshot.PNG(s.painter, w, h, s.bg)
}

type blank struct{}

func (blank) Draw(paint.Canvas) {}

func (s *Surface) Tapped(*fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped()
	}
}

func (s *Surface) CreateRenderer() fyne.WidgetRenderer {
	return &surfaceRenderer{s: s, objects: []fyne.CanvasObject{s.raster}}
}

type surfaceRenderer struct {
	s       *Surface
	objects []fyne.CanvasObject
}

func (r *surfaceRenderer) Layout(size fyne.Size) {
	r.s.raster.Resize(size)
}

func (r *surfaceRenderer) MinSize() fyne.Size { return r.s.minSize }

func (r *surfaceRenderer) Refresh() {
	canvas.Refresh(r.s.raster)
}

func (r *surfaceRenderer) Destroy() {}

func (r *surfaceRenderer) Objects() []fyne.CanvasObject { return r.objects }
