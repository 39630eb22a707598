// Package ledicon is a labelled status light.
package ledicon

import (
	"image/color"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
)

var (
	OffColor = color.RGBA{0x80, 0x80, 0x80, 0xFF}
	OnColor  = color.RGBA{0x00, 0xFF, 0x00, 0xFF}
)

type Widget struct {
	widget.BaseWidget

	mu      sync.Mutex
	text    string
	onColor color.Color
	state   bool

	led   *canvas.Circle
	label *widget.Label
}

func New(label string) *Widget {
	w := &Widget{
		text:    label,
		onColor: OnColor,
		led:     &canvas.Circle{FillColor: OffColor},
		label:   widget.NewLabel(label),
	}
	w.ExtendBaseWidget(w)
	return w
}

func (w *Widget) On() { w.setState(true) }

func (w *Widget) Off() { w.setState(false) }

func (w *Widget) IsOn() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// SetOnColor changes the lit colour, for example to red for alarms.
func (w *Widget) SetOnColor(c color.Color) {
	w.mu.Lock()
	w.onColor = c
	w.mu.Unlock()
	w.Refresh()
}

func (w *Widget) SetText(s string) {
	w.mu.Lock()
	w.text = s
	w.mu.Unlock()
	w.Refresh()
}

func (w *Widget) Text() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.text
}

func (w *Widget) setState(state bool) {
	w.mu.Lock()
	if state == w.state {
		w.mu.Unlock()
		return
	}
	w.state = state
	w.mu.Unlock()
	w.Refresh()
}

func (w *Widget) fill() color.Color {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state {
		return w.onColor
	}
	return OffColor
}

func (w *Widget) CreateRenderer() fyne.WidgetRenderer {
	return &iconRenderer{w: w}
}

var _ fyne.WidgetRenderer = (*iconRenderer)(nil)

type iconRenderer struct {
	w *Widget
}

func (r *iconRenderer) MinSize() fyne.Size {
	return fyne.NewSize(20+r.w.label.MinSize().Width, 34)
}

func (r *iconRenderer) Layout(size fyne.Size) {
	r.w.led.Resize(fyne.NewSize(16, 16))
	r.w.led.Move(fyne.NewPos(2, (size.Height-16)/2))
	r.w.label.Move(fyne.NewPos(20, 0))
	r.w.label.Resize(fyne.NewSize(size.Width-20, size.Height))
}

func (r *iconRenderer) Refresh() {
	r.w.led.FillColor = r.w.fill()
	r.w.led.Refresh()
	r.w.label.SetText(r.w.Text())
}

func (r *iconRenderer) Destroy() {}

func (r *iconRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.w.led, r.w.label}
}
