package gauge

import "github.com/roffe/txgauge/pkg/geometry"

type testHost struct {
	bounds  geometry.Rect
	redraws int
}

func (h *testHost) RequestRedraw()        { h.redraws++ }
func (h *testHost) Bounds() geometry.Rect { return h.bounds }

func newTestGauge(w, h float64) (*Gauge, *testHost) {
	host := &testHost{bounds: geometry.NewRect(0, 0, w, h)}
	return New(host), host
}
