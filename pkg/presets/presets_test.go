package presets

import (
	"encoding/json"
	"errors"
	"image/color"
	"slices"
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/roffe/txgauge/pkg/colors"
	"github.com/roffe/txgauge/pkg/gauge"
	"github.com/roffe/txgauge/pkg/geometry"
	"github.com/roffe/txgauge/pkg/paint/recorder"
)

type host struct{}

func (host) RequestRedraw()        {}
func (host) Bounds() geometry.Rect { return geometry.NewRect(0, 0, 200, 200) }

func kinds(g *gauge.Gauge) []gauge.Kind {
	var out []gauge.Kind
	for _, it := range g.Items() {
		out = append(out, it.Kind())
	}
	return out
}

func TestBuiltinPresetsBuild(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			p, err := Get(name)
			if err != nil {
				t.Fatal(err)
			}
			g := gauge.New(host{})
			built, err := p.Build(g, nil)
			if err != nil {
				t.Fatal(err)
			}
			if g.Len() != len(p.Items) {
				t.Errorf("items = %d, want %d", g.Len(), len(p.Items))
			}
			if built.Needle() == nil && built.Attitude == nil {
				t.Error("preset has nothing to drive")
			}
			rec := recorder.New()
			g.Draw(rec)
			if !rec.Balanced() {
				t.Error("unbalanced draw")
			}
		})
	}
}

func TestPresetRoundTrip(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			p, err := Get(name)
			if err != nil {
				t.Fatal(err)
			}
			data, err := json.Marshal(p)
			if err != nil {
				t.Fatal(err)
			}
			q, err := Parse(data)
			if err != nil {
				t.Fatal(err)
			}
			g1, g2 := gauge.New(host{}), gauge.New(host{})
			if _, err := p.Build(g1, nil); err != nil {
				t.Fatal(err)
			}
			if _, err := q.Build(g2, nil); err != nil {
				t.Fatal(err)
			}
			if !slices.Equal(kinds(g1), kinds(g2)) {
				t.Errorf("kinds %v != %v", kinds(g1), kinds(g2))
			}
		})
	}
}

func TestSpeedometerNeedleDrivesLabel(t *testing.T) {
	p, err := Get("speedometer")
	if err != nil {
		t.Fatal(err)
	}
	g := gauge.New(host{})
	built, err := p.Build(g, nil)
	if err != nil {
		t.Fatal(err)
	}
	n := built.Needle()
	if n.MaxValue() != 240 || n.Shape() != gauge.Triangle {
		t.Fatalf("needle max=%v shape=%v", n.MaxValue(), n.Shape())
	}
	n.SetCurrentValue(88.4)
	if got := n.Label().Text(); got != "88" {
		t.Errorf("label = %q, want 88", got)
	}
}

func TestSchemeOverride(t *testing.T) {
	p, err := Get("boost")
	if err != nil {
		t.Fatal(err)
	}
	mode := colors.ModeProtanopia
	g := gauge.New(host{})
	if _, err := p.Build(g, &mode); err != nil {
		t.Fatal(err)
	}
	var cb *gauge.ColorBand
	for _, it := range g.Items() {
		if c, ok := it.(*gauge.ColorBand); ok {
			cb = c
		}
	}
	if cb == nil {
		t.Fatal("no colour band")
	}
	bands := cb.Bands()
	if len(bands) != 6 || bands[5].Upper != 2 {
		t.Fatalf("bands = %+v", bands)
	}
	want := colors.Bands(mode, -1, 2, 6)[0].Color
	if bands[0].Color != want {
		t.Errorf("first band = %v, want %v", bands[0].Color, want)
	}
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name string
		json string
		want error
	}{
		{"bad range", `{"items":[{"kind":"needle","range":[10,0]}]}`, gauge.ErrInvalidValueRange},
		{"bad degrees", `{"items":[{"kind":"arc","degrees":[90,90]}]}`, gauge.ErrInvalidDegreeRange},
		{"bad step", `{"items":[{"kind":"degrees","step":-1}]}`, gauge.ErrInvalidStep},
		{"bad colour", `{"items":[{"kind":"label","color":"#12"}]}`, ErrBadColor},
		{"bad shape", `{"items":[{"kind":"needle","shape":"arrow"}]}`, ErrUnknownShape},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Parse([]byte(tt.json))
			if err != nil {
				t.Fatal(err)
			}
			if _, err := p.Build(gauge.New(host{}), nil); !errors.Is(err, tt.want) {
				t.Errorf("Build() = %v, want %v", err, tt.want)
			}
		})
	}
	if _, err := Parse([]byte(`{"items":[{"kind":"dial"}]}`)); err == nil {
		t.Error("unknown kind parsed")
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.NRGBA
	}{
		{"#fff", color.NRGBA{0xff, 0xff, 0xff, 0xff}},
		{"#ff6700", color.NRGBA{0xff, 0x67, 0x00, 0xff}},
		{"00000080", color.NRGBA{0, 0, 0, 0x80}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			c, err := ParseColor(tt.in)
			if err != nil {
				t.Fatal(err)
			}
			if c != tt.want {
				t.Errorf("ParseColor() = %v, want %v", c, tt.want)
			}
			if back, _ := ParseColor(FormatColor(c)); back != c {
				t.Errorf("FormatColor round trip = %v", back)
			}
		})
	}
	if _, err := ParseColor("#zzzzzz"); !errors.Is(err, ErrBadColor) {
		t.Errorf("invalid hex = %v", err)
	}
}

func TestSetDeleteAndPreferences(t *testing.T) {
	if err := Set("Speedometer", &Preset{}); !errors.Is(err, ErrReadOnly) {
		t.Errorf("Set(system) = %v", err)
	}
	if err := Delete("compass"); err == nil {
		t.Error("deleted a system preset")
	}
	custom := &Preset{Name: "mine", Items: []ItemSpec{{Kind: gauge.KindNeedle}}}
	if err := Set("mine", custom); err != nil {
		t.Fatal(err)
	}
	app := test.NewApp()
	defer app.Quit()
	if err := Save(app); err != nil {
		t.Fatal(err)
	}
	if err := Delete("mine"); err != nil {
		t.Fatal(err)
	}
	if _, err := Get("mine"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get(deleted) = %v", err)
	}
	if err := Load(app); err != nil {
		t.Fatal(err)
	}
	got, err := Get("mine")
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Items) != 1 || got.Items[0].Kind != gauge.KindNeedle {
		t.Errorf("restored = %+v", got)
	}
	Delete("mine")
}
