package colors

import (
	"image/color"
	"math"
	"strings"
)

// ColorBlindMode selects the three colour ramp used for value colouring.
type ColorBlindMode int

const (
	ModeNormal ColorBlindMode = iota
	ModeUniversal
	ModeProtanopia
	ModeTritanopia
	ModeDeuteranomaly
)

// Ramp is a low, mid and high colour. Values are blended between the
// neighbouring stops.
type Ramp [3]color.RGBA

var palettes = [...]struct {
	name string
	ramp Ramp
}{
	ModeNormal:        {"Normal", Ramp{rgb(0x00ff00), rgb(0xffff00), rgb(0xff0000)}},
	ModeUniversal:     {"Universal", Ramp{rgb(0x2166ac), rgb(0xf7f7f7), rgb(0xffa500)}},
	ModeProtanopia:    {"Protanopia", Ramp{rgb(0x0571b0), rgb(0xf7f7f7), rgb(0x964b00)}},
	ModeTritanopia:    {"Tritanopia", Ramp{rgb(0x008080), rgb(0xf7f7f7), rgb(0xd73027)}},
	ModeDeuteranomaly: {"Deuteranomaly", Ramp{rgb(0x4a90e2), rgb(0xf5e6b3), rgb(0x8b4513)}},
}

// SupportedColorBlindModes lists the mode names in mode order.
var SupportedColorBlindModes = func() []string {
	names := make([]string, len(palettes))
	for i, p := range palettes {
		names[i] = p.name
	}
	return names
}()

func rgb(v uint32) color.RGBA {
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}
}

func (m ColorBlindMode) valid() bool { return m >= 0 && int(m) < len(palettes) }

func (m ColorBlindMode) String() string {
	if !m.valid() {
		return "Unknown"
	}
	return palettes[m].name
}

// Ramp returns the colours of m. Unknown modes get the normal ramp.
func (m ColorBlindMode) Ramp() Ramp {
	if !m.valid() {
		m = ModeNormal
	}
	return palettes[m].ramp
}

// StringToColorBlindMode looks a mode up by name, ignoring case. Unknown
// names give ModeNormal.
func StringToColorBlindMode(s string) ColorBlindMode {
	for i, p := range palettes {
		if strings.EqualFold(s, p.name) {
			return ColorBlindMode(i)
		}
	}
	return ModeNormal
}

// At blends the ramp at t, clamped into [0,1]. NaN gives gray.
func (r Ramp) At(t float64) color.RGBA {
	if math.IsNaN(t) {
		return color.RGBA{128, 128, 128, 255}
	}
	t = min(max(t, 0), 1)
	if t < 0.5 {
		return lerpColor(r[0], r[1], t*2)
	}
	return lerpColor(r[1], r[2], (t-0.5)*2)
}

// GetColorInterpolation maps value in [min,max] onto the ramp of mode.
func GetColorInterpolation(min, max, value float64, mode ColorBlindMode) color.RGBA {
	return mode.Ramp().At((value - min) / (max - min))
}

func lerpColor(a, b color.RGBA, t float64) color.RGBA {
	mix := func(x, y uint8) uint8 {
		return uint8(float64(x) + t*(float64(y)-float64(x)))
	}
	return color.RGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: 255}
}
