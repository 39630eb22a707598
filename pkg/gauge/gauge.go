// Package gauge lays out and paints circular instruments built from stacked
// items: background, scale arcs, ticks, value labels, needles and more.
//
// Scale degrees are measured from the left of the dial centre and grow
// clockwise on screen, so the default range [-45,225] runs from the lower
// left, over the top, to the lower right.
package gauge

import (
	"slices"

	"github.com/roffe/txgauge/pkg/geometry"
	"github.com/roffe/txgauge/pkg/paint"
)

// Host is the surface a gauge is shown on.
type Host interface {
	RequestRedraw()
	Bounds() geometry.Rect
}

// Gauge owns an ordered list of items. Items are painted in insertion
// order, the last one ends up on top.
type Gauge struct {
	host   Host
	items  []Item
	nextID ItemID
}

func New(host Host) *Gauge {
	return &Gauge{host: host}
}

func (g *Gauge) Host() Host { return g.host }

func (g *Gauge) SetHost(h Host) {
	g.host = h
	g.requestRedraw()
}

// Center returns the centre of the host bounds.
func (g *Gauge) Center() geometry.Point {
	if g.host == nil {
		return geometry.Point{}
	}
	return g.host.Bounds().Center()
}

// Draw paints every item in order.
func (g *Gauge) Draw(c paint.Canvas) {
	c.SetHints(paint.Antialiasing | paint.TextAntialiasing)
	for _, it := range g.items {
		it.Draw(c)
	}
}

// AddItem attaches item at the given position and appends it to the paint
// order. An item owned by another gauge is moved here.
func (g *Gauge) AddItem(item Item, position float64) Item {
	b := item.base()
	if b.gauge != nil && b.gauge != g {
		b.gauge.RemoveItem(item)
	}
	if b.id == 0 || b.gauge != g {
		g.nextID++
		b.id = g.nextID
	}
	b.gauge = g
	b.position = clampPosition(position)
	g.items = append(g.items, item)
	Logger().Debug("item added", "kind", item.Kind(), "id", b.id, "position", b.position)
	g.requestRedraw()
	return item
}

// RemoveItem removes every occurrence of item and returns how many were
// removed.
func (g *Gauge) RemoveItem(item Item) int {
	before := len(g.items)
	g.items = slices.DeleteFunc(g.items, func(it Item) bool { return it == item })
	n := before - len(g.items)
	if n > 0 {
		b := item.base()
		b.gauge = nil
		b.id = 0
		Logger().Debug("item removed", "kind", item.Kind(), "count", n)
		g.requestRedraw()
	}
	return n
}

// Items returns a snapshot of the paint order.
func (g *Gauge) Items() []Item {
	return slices.Clone(g.items)
}

func (g *Gauge) Len() int { return len(g.items) }

// Item looks up an attached item by id.
func (g *Gauge) Item(id ItemID) (Item, bool) {
	if id == 0 {
		return nil, false
	}
	for _, it := range g.items {
		if it.ID() == id {
			return it, true
		}
	}
	return nil, false
}

// Clear detaches and drops every item.
func (g *Gauge) Clear() {
	for _, it := range g.items {
		b := it.base()
		b.gauge = nil
		b.id = 0
	}
	g.items = nil
	g.requestRedraw()
}

func (g *Gauge) requestRedraw() {
	if g.host != nil {
		g.host.RequestRedraw()
	}
}

func (g *Gauge) AddBackground(position float64) *Background {
	return g.AddItem(NewBackground(), position).(*Background)
}

func (g *Gauge) AddGlass(position float64) *Glass {
	return g.AddItem(NewGlass(), position).(*Glass)
}

func (g *Gauge) AddLabel(position float64) *Label {
	return g.AddItem(NewLabel(), position).(*Label)
}

func (g *Gauge) AddArc(position float64) *Arc {
	return g.AddItem(NewArc(), position).(*Arc)
}

func (g *Gauge) AddColorBand(position float64) *ColorBand {
	return g.AddItem(NewColorBand(), position).(*ColorBand)
}

func (g *Gauge) AddDegrees(position float64) *Degrees {
	return g.AddItem(NewDegrees(), position).(*Degrees)
}

func (g *Gauge) AddValues(position float64) *Values {
	return g.AddItem(NewValues(), position).(*Values)
}

func (g *Gauge) AddNeedle(position float64) *Needle {
	return g.AddItem(NewNeedle(), position).(*Needle)
}

func (g *Gauge) AddAttitudeMeter(position float64) *AttitudeMeter {
	return g.AddItem(NewAttitudeMeter(), position).(*AttitudeMeter)
}
