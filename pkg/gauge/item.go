package gauge

import (
	"github.com/roffe/txgauge/pkg/geometry"
	"github.com/roffe/txgauge/pkg/paint"
)

// ItemID identifies an item within its gauge. Zero means unattached.
type ItemID uint64

// Item is anything a Gauge can paint. Items built outside this package
// embed Base and implement Kind and Draw.
type Item interface {
	Kind() Kind
	ID() ItemID
	Position() float64
	SetPosition(p float64)
	Draw(c paint.Canvas)

	base() *Base
}

// Base carries the state every item shares: the owning gauge, the size
// percentage and the rectangle derived from the host bounds.
type Base struct {
	gauge    *Gauge
	id       ItemID
	position float64
	rect     geometry.Rect
}

func (b *Base) base() *Base { return b }

func (b *Base) ID() ItemID { return b.id }

func (b *Base) Gauge() *Gauge { return b.gauge }

func (b *Base) Position() float64 { return b.position }

// SetPosition clamps p into [0,100].
func (b *Base) SetPosition(p float64) {
	b.position = clampPosition(p)
	b.update()
}

// Rect returns the rectangle computed by the last ResetRect.
func (b *Base) Rect() geometry.Rect { return b.rect }

// ResetRect derives the item rectangle from the current host bounds: the
// largest square centred in the host.
func (b *Base) ResetRect() geometry.Rect {
	if b.gauge == nil || b.gauge.host == nil {
		b.rect = geometry.Rect{}
		return b.rect
	}
	b.rect = geometry.InscribedSquare(b.gauge.host.Bounds())
	return b.rect
}

// AdjustRect shrinks the item rectangle to pct percent of its radius.
func (b *Base) AdjustRect(pct float64) geometry.Rect {
	return geometry.ShrinkToPercentage(b.rect, pct)
}

// WorkingRect is AdjustRect at the item position.
func (b *Base) WorkingRect() geometry.Rect {
	return b.AdjustRect(b.position)
}

func (b *Base) update() {
	if b.gauge != nil {
		b.gauge.requestRedraw()
	}
}

func clampPosition(p float64) float64 {
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 100
	default:
		return p
	}
}
