package dashboard

import (
	"github.com/roffe/txgauge/pkg/gauge"
	"github.com/roffe/txgauge/pkg/widgets/surface"
)

type currentValuer interface {
	SetCurrentValue(float64)
}

func needleSetter(s *surface.Surface, needles []*gauge.Needle) func(float64) {
	return func(value float64) {
		s.Update(func() {
			for _, n := range needles {
				n.SetCurrentValue(value)
			}
		})
	}
}

func valueSetter(s *surface.Surface, w currentValuer) func(float64) {
	return func(value float64) {
		s.Update(func() { w.SetCurrentValue(value) })
	}
}

func pitchSetter(s *surface.Surface, am *gauge.AttitudeMeter) func(float64) {
	return func(value float64) {
		s.Update(func() { am.SetPitch(value) })
	}
}

func rollSetter(s *surface.Surface, am *gauge.AttitudeMeter) func(float64) {
	return func(value float64) {
		s.Update(func() { am.SetRoll(value) })
	}
}
