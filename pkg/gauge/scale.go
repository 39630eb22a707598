package gauge

import "math"

// Scale maps a value range onto a degree range. It is embedded by every item
// that is laid out along the dial.
type Scale struct {
	Base

	minValue, maxValue   float64
	minDegree, maxDegree float64
	degreeOffset         float64
}

func newScale() Scale {
	return Scale{
		minValue:  0,
		maxValue:  100,
		minDegree: -45,
		maxDegree: 225,
	}
}

func (s *Scale) MinValue() float64     { return s.minValue }
func (s *Scale) MaxValue() float64     { return s.maxValue }
func (s *Scale) MinDegree() float64    { return s.minDegree }
func (s *Scale) MaxDegree() float64    { return s.maxDegree }
func (s *Scale) DegreeOffset() float64 { return s.degreeOffset }

func (s *Scale) SetValueRange(min, max float64) error {
	if !(min < max) {
		Logger().Debug("rejected value range", "min", min, "max", max)
		return ErrInvalidValueRange
	}
	s.minValue, s.maxValue = min, max
	s.update()
	return nil
}

func (s *Scale) SetDegreeRange(min, max float64) error {
	if !(min < max) {
		Logger().Debug("rejected degree range", "min", min, "max", max)
		return ErrInvalidDegreeRange
	}
	s.minDegree, s.maxDegree = min, max
	s.update()
	return nil
}

func (s *Scale) SetMinValue(v float64) error { return s.SetValueRange(v, s.maxValue) }

func (s *Scale) SetMaxValue(v float64) error { return s.SetValueRange(s.minValue, v) }

func (s *Scale) SetMinDegree(d float64) error { return s.SetDegreeRange(d, s.maxDegree) }

func (s *Scale) SetMaxDegree(d float64) error { return s.SetDegreeRange(s.minDegree, d) }

func (s *Scale) SetDegreeOffset(o float64) {
	s.degreeOffset = o
	s.update()
}

// DegreeFromValue maps v onto the degree range. v is not clamped.
func (s *Scale) DegreeFromValue(v float64) float64 {
	a := (s.maxDegree - s.minDegree) / (s.maxValue - s.minValue)
	return s.degreeOffset + s.minDegree + (v-s.minValue)*a
}

// StartDegree is the degree of the minimum value.
func (s *Scale) StartDegree() float64 {
	return s.DegreeFromValue(s.minValue)
}

// MaxTicks caps the graduations a scale or ruler draws. Longer scales
// draw none.
const MaxTicks = 10000

// tickValues returns min, min+step, ... up to and including max. Values are
// computed from the index so long scales do not accumulate rounding errors.
func tickValues(min, max, step float64) []float64 {
	if !(step > 0) || !(max >= min) {
		return nil
	}
	f := (max-min)/step + 1e-9
	if math.IsNaN(f) || f > MaxTicks {
		return nil
	}
	n := int(f)
	out := make([]float64, 0, n+1)
	for i := 0; i <= n; i++ {
		out = append(out, min+float64(i)*step)
	}
	return out
}
