package presets

import (
	"encoding/hex"
	"errors"
	"fmt"
	"image/color"
	"strings"

	"github.com/roffe/txgauge/pkg/colors"
	"github.com/roffe/txgauge/pkg/gauge"
)

var ErrBadColor = errors.New("invalid colour")

var ErrUnknownShape = errors.New("unknown needle shape")

// Preset describes a gauge as an ordered list of items, bottom first.
type Preset struct {
	Name  string     `json:"name"`
	Items []ItemSpec `json:"items"`
}

// ItemSpec configures one item. Fields that do not apply to Kind are
// ignored and unset fields keep the item defaults.
type ItemSpec struct {
	Kind     gauge.Kind `json:"kind"`
	Position *float64   `json:"position,omitempty"`

	Range   *[2]float64 `json:"range,omitempty"`
	Degrees *[2]float64 `json:"degrees,omitempty"`
	Offset  float64     `json:"offset,omitempty"`

	Color     string  `json:"color,omitempty"`
	Font      string  `json:"font,omitempty"`
	Step      float64 `json:"step,omitempty"`
	SubDegree bool    `json:"subDegree,omitempty"`
	Precision *int    `json:"precision,omitempty"`

	Text  string   `json:"text,omitempty"`
	Angle *float64 `json:"angle,omitempty"`

	Stops []StopSpec  `json:"stops,omitempty"`
	Alpha *[2]float64 `json:"alpha,omitempty"`
	Bands []BandSpec  `json:"bands,omitempty"`

	// Scheme colours a colour band from a colour blind friendly ramp,
	// either Count equal bands or three bands split at Warn and Danger.
	Scheme string  `json:"scheme,omitempty"`
	Count  int     `json:"count,omitempty"`
	Warn   float64 `json:"warn,omitempty"`
	Danger float64 `json:"danger,omitempty"`

	Shape   string     `json:"shape,omitempty"`
	Format  string     `json:"format,omitempty"`
	Label   bool       `json:"label,omitempty"`
	Markers *[2]string `json:"markers,omitempty"`

	Sky    *[2]string `json:"sky,omitempty"`
	Ground *[2]string `json:"ground,omitempty"`
}

type StopSpec struct {
	Offset float64 `json:"offset"`
	Color  string  `json:"color"`
}

type BandSpec struct {
	Color string  `json:"color"`
	Upper float64 `json:"upper"`
}

// Built gives access to the items of a built preset that take live values.
type Built struct {
	Needles  []*gauge.Needle
	Attitude *gauge.AttitudeMeter
	Labels   []*gauge.Label
}

// Needle returns the topmost needle, or nil.
func (b *Built) Needle() *gauge.Needle {
	if len(b.Needles) == 0 {
		return nil
	}
	return b.Needles[len(b.Needles)-1]
}

// Build appends the preset items to g. A colour scheme overrides the
// preset's own when mode is not nil. On error g may hold a partial preset.
func (p *Preset) Build(g *gauge.Gauge, mode *colors.ColorBlindMode) (*Built, error) {
	out := &Built{}
	var lastLabel *gauge.Label
	for i, spec := range p.Items {
		item, err := spec.build(mode)
		if err != nil {
			return out, fmt.Errorf("%s item %d (%s): %w", p.Name, i, spec.Kind, err)
		}
		pos := item.Position()
		if spec.Position != nil {
			pos = *spec.Position
		}
		g.AddItem(item, pos)

		switch it := item.(type) {
		case *gauge.Label:
			lastLabel = it
			out.Labels = append(out.Labels, it)
		case *gauge.Needle:
			if spec.Label && lastLabel != nil {
				it.SetLabel(lastLabel)
			}
			out.Needles = append(out.Needles, it)
		case *gauge.AttitudeMeter:
			out.Attitude = it
		}
	}
	return out, nil
}

type scaled interface {
	SetValueRange(min, max float64) error
	SetDegreeRange(min, max float64) error
	SetDegreeOffset(o float64)
}

func (s *ItemSpec) applyScale(sc scaled) error {
	if s.Range != nil {
		if err := sc.SetValueRange(s.Range[0], s.Range[1]); err != nil {
			return err
		}
	}
	if s.Degrees != nil {
		if err := sc.SetDegreeRange(s.Degrees[0], s.Degrees[1]); err != nil {
			return err
		}
	}
	if s.Offset != 0 {
		sc.SetDegreeOffset(s.Offset)
	}
	return nil
}

func (s *ItemSpec) build(mode *colors.ColorBlindMode) (gauge.Item, error) {
	switch s.Kind {
	case gauge.KindBackground:
		bg := gauge.NewBackground()
		if len(s.Stops) > 0 {
			bg.ClearColors()
			for _, st := range s.Stops {
				c, err := ParseColor(st.Color)
				if err != nil {
					return nil, err
				}
				bg.AddColor(st.Offset, c)
			}
		}
		return bg, nil

	case gauge.KindGlass:
		gl := gauge.NewGlass()
		if s.Alpha != nil {
			gl.SetAlpha(s.Alpha[0], s.Alpha[1])
		}
		return gl, nil

	case gauge.KindLabel:
		l := gauge.NewLabel()
		if s.Text != "" {
			l.SetText(s.Text, false)
		}
		if s.Angle != nil {
			l.SetAngle(*s.Angle)
		}
		if s.Font != "" {
			l.SetFont(s.Font)
		}
		return l, s.withColor(l.SetColor)

	case gauge.KindArc:
		a := gauge.NewArc()
		if err := s.applyScale(a); err != nil {
			return nil, err
		}
		return a, s.withColor(a.SetColor)

	case gauge.KindColorBand:
		cb := gauge.NewColorBand()
		if err := s.applyScale(cb); err != nil {
			return nil, err
		}
		bands, err := s.bands(cb.MinValue(), cb.MaxValue(), mode)
		if err != nil {
			return nil, err
		}
		if bands != nil {
			cb.SetBands(bands)
		}
		return cb, nil

	case gauge.KindDegrees:
		d := gauge.NewDegrees()
		if err := s.applyScale(d); err != nil {
			return nil, err
		}
		if s.Step != 0 {
			if err := d.SetStep(s.Step); err != nil {
				return nil, err
			}
		}
		d.SetSubDegree(s.SubDegree)
		return d, s.withColor(d.SetColor)

	case gauge.KindValues:
		v := gauge.NewValues()
		if err := s.applyScale(v); err != nil {
			return nil, err
		}
		if s.Step != 0 {
			if err := v.SetStep(s.Step); err != nil {
				return nil, err
			}
		}
		if s.Font != "" {
			v.SetFont(s.Font)
		}
		if s.Precision != nil {
			v.SetPrecision(*s.Precision)
		}
		return v, s.withColor(v.SetColor)

	case gauge.KindNeedle:
		n := gauge.NewNeedle()
		if err := s.applyScale(n); err != nil {
			return nil, err
		}
		if s.Shape != "" {
			sh, ok := gauge.ParseNeedleShape(s.Shape)
			if !ok {
				return nil, fmt.Errorf("%q: %w", s.Shape, ErrUnknownShape)
			}
			n.SetShape(sh)
		}
		if s.Format != "" {
			n.SetValueFormat(s.Format)
		}
		if s.Precision != nil {
			n.SetPrecision(*s.Precision)
		}
		if s.Markers != nil {
			a, err := ParseColor(s.Markers[0])
			if err != nil {
				return nil, err
			}
			b, err := ParseColor(s.Markers[1])
			if err != nil {
				return nil, err
			}
			n.SetMarkerColors(a, b)
		}
		return n, s.withColor(n.SetColor)

	case gauge.KindAttitudeMeter:
		am := gauge.NewAttitudeMeter()
		if s.Sky != nil {
			top, bottom, err := parsePair(*s.Sky)
			if err != nil {
				return nil, err
			}
			am.SetSkyColors(top, bottom)
		}
		if s.Ground != nil {
			top, bottom, err := parsePair(*s.Ground)
			if err != nil {
				return nil, err
			}
			am.SetGroundColors(top, bottom)
		}
		return am, nil
	}
	return nil, fmt.Errorf("kind %s cannot be built from a preset", s.Kind)
}

func (s *ItemSpec) withColor(set func(color.Color)) error {
	if s.Color == "" {
		return nil
	}
	c, err := ParseColor(s.Color)
	if err != nil {
		return err
	}
	set(c)
	return nil
}

func (s *ItemSpec) bands(min, max float64, override *colors.ColorBlindMode) ([]gauge.Band, error) {
	if s.Scheme != "" || (override != nil && len(s.Bands) == 0) {
		mode := colors.StringToColorBlindMode(s.Scheme)
		if override != nil {
			mode = *override
		}
		if s.Warn != 0 || s.Danger != 0 {
			return colors.WarningBands(mode, min, s.Warn, s.Danger, max), nil
		}
		n := s.Count
		if n == 0 {
			n = 3
		}
		return colors.Bands(mode, min, max, n), nil
	}
	if len(s.Bands) == 0 {
		return nil, nil
	}
	out := make([]gauge.Band, 0, len(s.Bands))
	for _, b := range s.Bands {
		c, err := ParseColor(b.Color)
		if err != nil {
			return nil, err
		}
		out = append(out, gauge.Band{Color: c, Upper: b.Upper})
	}
	return out, nil
}

func parsePair(p [2]string) (color.Color, color.Color, error) {
	a, err := ParseColor(p[0])
	if err != nil {
		return nil, nil, err
	}
	b, err := ParseColor(p[1])
	if err != nil {
		return nil, nil, err
	}
	return a, b, nil
}

// ParseColor reads #rgb, #rrggbb or #rrggbbaa. Alpha is not premultiplied.
func ParseColor(s string) (color.Color, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) == 6 {
		h += "ff"
	}
	if len(h) != 8 {
		return nil, fmt.Errorf("%q: %w", s, ErrBadColor)
	}
	b, err := hex.DecodeString(h)
	if err != nil {
		return nil, fmt.Errorf("%q: %w", s, ErrBadColor)
	}
	return color.NRGBA{R: b[0], G: b[1], B: b[2], A: b[3]}, nil
}

// FormatColor is the inverse of ParseColor.
func FormatColor(c color.Color) string {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	if n.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", n.R, n.G, n.B, n.A)
}
