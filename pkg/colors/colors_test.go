package colors

import (
	"image/color"
	"math"
	"testing"
)

func TestGetColorInterpolation(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		mode  ColorBlindMode
		want  color.RGBA
	}{
		{"normal low", 0, ModeNormal, color.RGBA{0, 255, 0, 255}},
		{"normal mid", 50, ModeNormal, color.RGBA{255, 255, 0, 255}},
		{"normal high", 100, ModeNormal, color.RGBA{255, 0, 0, 255}},
		{"clamped below", -10, ModeNormal, color.RGBA{0, 255, 0, 255}},
		{"clamped above", 1000, ModeNormal, color.RGBA{255, 0, 0, 255}},
		{"universal low", 0, ModeUniversal, color.RGBA{33, 102, 172, 255}},
		{"nan", math.NaN(), ModeNormal, color.RGBA{128, 128, 128, 255}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetColorInterpolation(0, 100, tt.value, tt.mode); got != tt.want {
				t.Errorf("GetColorInterpolation() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStringToColorBlindMode(t *testing.T) {
	for i, name := range SupportedColorBlindModes {
		if got := StringToColorBlindMode(name); got != ColorBlindMode(i) {
			t.Errorf("%s = %v", name, got)
		}
		if got := ColorBlindMode(i).String(); got != name {
			t.Errorf("String() = %s, want %s", got, name)
		}
	}
	if got := StringToColorBlindMode("protanopia"); got != ModeProtanopia {
		t.Errorf("case insensitive lookup = %v", got)
	}
	if got := StringToColorBlindMode("bogus"); got != ModeNormal {
		t.Errorf("unknown = %v", got)
	}
}

func TestBands(t *testing.T) {
	bands := Bands(ModeNormal, 0, 7000, 7)
	if len(bands) != 7 {
		t.Fatalf("len = %d", len(bands))
	}
	for i, b := range bands {
		if want := float64(i+1) * 1000; math.Abs(b.Upper-want) > 1e-9 {
			t.Errorf("band %d upper = %v, want %v", i, b.Upper, want)
		}
	}
	if bands[6].Upper != 7000 {
		t.Errorf("last band upper = %v", bands[6].Upper)
	}
	if got := Bands(ModeNormal, 0, 10, 0); len(got) != 1 || got[0].Upper != 10 {
		t.Errorf("Bands(n=0) = %+v", got)
	}
}

func TestWarningBands(t *testing.T) {
	b := WarningBands(ModeNormal, 0, 90, 105, 130)
	if b[0].Upper != 90 || b[1].Upper != 105 || b[2].Upper != 130 {
		t.Errorf("uppers = %v %v %v", b[0].Upper, b[1].Upper, b[2].Upper)
	}
	if b[2].Color != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("danger colour = %v", b[2].Color)
	}
}

func TestGetColorStable(t *testing.T) {
	if GetColor("oil") != GetColor("oil") {
		t.Error("hash colour not stable")
	}
	if GetColor("rpm") != (color.RGBA{247, 10, 10, 255}) {
		t.Error("known topic colour")
	}
}
