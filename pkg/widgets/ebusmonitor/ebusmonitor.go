// Package ebusmonitor lists every bus topic with its latest value.
package ebusmonitor

import (
	"slices"
	"strconv"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/roffe/txgauge/pkg/colors"
)

type Widget struct {
	widget.BaseWidget

	container *fyne.Container

	mu     sync.Mutex
	values map[string]*canvas.Text
	order  []string
}

func New() *Widget {
	t := &Widget{
		container: container.NewAdaptiveGrid(4),
		values:    make(map[string]*canvas.Text),
	}
	t.ExtendBaseWidget(t)
	return t
}

func format(topic string, v float64) string {
	return topic + ": " + strconv.FormatFloat(v, 'g', 4, 64)
}

// SetValue shows v for topic, adding the topic in sorted position on first
// sight.
func (t *Widget) SetValue(topic string, v float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if itm, ok := t.values[topic]; ok {
		itm.Text = format(topic, v)
		itm.Refresh()
		return
	}
	t.values[topic] = canvas.NewText(format(topic, v), colors.GetColor(topic))
	t.order = append(t.order, topic)
	slices.Sort(t.order)

	objs := make([]fyne.CanvasObject, 0, len(t.order))
	for _, k := range t.order {
		objs = append(objs, t.values[k])
	}
	t.container.Objects = objs
	t.container.Refresh()
}

// Topics returns the shown topics in display order.
func (t *Widget) Topics() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Clone(t.order)
}

func (t *Widget) Text(topic string) string {
	t.mu.Lock()
	defer t.mu.Unlock()
	if itm, ok := t.values[topic]; ok {
		return itm.Text
	}
	return ""
}

func (t *Widget) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(t.container)
}
