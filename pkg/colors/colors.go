package colors

import (
	"hash/crc32"
	"image/color"

	"github.com/roffe/txgauge/pkg/gauge"
)

var topicColors = map[string]color.RGBA{
	"rpm":     {247, 10, 10, 255},
	"speed":   {6, 245, 34, 255},
	"boost":   {64, 216, 140, 255},
	"coolant": {26, 160, 253, 255},
	"lambda":  {247, 127, 10, 255},
	"cpu":     {244, 251, 18, 255},
	"mem":     {105, 20, 253, 255},
}

// GetColor returns a stable colour for a bus topic.
func GetColor(topic string) color.RGBA {
	if c, ok := topicColors[topic]; ok {
		return c
	}
	return hashToRGB(topic)
}

func hashToRGB(input string) color.RGBA {
	hash := crc32.ChecksumIEEE([]byte(input))
	return color.RGBA{byte(hash >> 8), byte(hash >> 16), byte(hash), 255}
}

// Bands splits [min,max] into n equal colour bands coloured along the ramp
// of mode, sampled at each band's midpoint. n below 1 yields one band.
func Bands(mode ColorBlindMode, min, max float64, n int) []gauge.Band {
	if n < 1 {
		n = 1
	}
	step := (max - min) / float64(n)
	out := make([]gauge.Band, n)
	for i := range out {
		mid := min + (float64(i)+0.5)*step
		out[i] = gauge.Band{
			Color: GetColorInterpolation(min, max, mid, mode),
			Upper: min + float64(i+1)*step,
		}
	}
	out[n-1].Upper = max
	return out
}

// WarningBands returns the classic safe, caution and danger scheme with the
// caution band starting at warn and the danger band at danger.
func WarningBands(mode ColorBlindMode, min, warn, danger, max float64) []gauge.Band {
	return []gauge.Band{
		{Color: GetColorInterpolation(0, 1, 0, mode), Upper: warn},
		{Color: GetColorInterpolation(0, 1, 0.5, mode), Upper: danger},
		{Color: GetColorInterpolation(0, 1, 1, mode), Upper: max},
	}
}
