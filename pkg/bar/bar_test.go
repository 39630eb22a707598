package bar

import (
	"errors"
	"math"
	"testing"

	"github.com/roffe/txgauge/pkg/gauge"
	"github.com/roffe/txgauge/pkg/geometry"
	"github.com/roffe/txgauge/pkg/paint/recorder"
)

type testHost struct {
	bounds  geometry.Rect
	redraws int
}

func (h *testHost) RequestRedraw()        { h.redraws++ }
func (h *testHost) Bounds() geometry.Rect { return h.bounds }

func TestFillRect(t *testing.T) {
	tests := []struct {
		name     string
		dir      Direction
		min, max float64
		value    float64
		w, h     float64
		want     geometry.Rect
	}{
		{"horizontal quarter", Horizontal, 0, 100, 25, 200, 40, geometry.NewRect(0, 0, 50, 40)},
		{"horizontal offset range", Horizontal, 50, 150, 100, 200, 40, geometry.NewRect(0, 0, 100, 40)},
		{"vertical quarter", Vertical, 0, 100, 25, 40, 200, geometry.NewRect(0, 150, 40, 50)},
		{"vertical full", Vertical, 0, 10, 10, 40, 200, geometry.NewRect(0, 0, 40, 200)},
		{"clamped", Horizontal, 0, 100, 500, 200, 40, geometry.NewRect(0, 0, 200, 40)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New(nil)
			if err := b.SetRange(tt.min, tt.max); err != nil {
				t.Fatal(err)
			}
			b.SetDirection(tt.dir)
			b.SetCurrentValue(tt.value)
			if got := b.FillRect(tt.w, tt.h); got != tt.want {
				t.Errorf("FillRect() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestSetRangeErrors(t *testing.T) {
	host := &testHost{bounds: geometry.NewRect(0, 0, 200, 40)}
	b := New(host)
	before := host.redraws

	if err := b.SetRange(5, 5); !errors.Is(err, gauge.ErrDegenerateRange) {
		t.Errorf("SetRange(5,5) = %v", err)
	}
	if err := b.SetRange(10, 0); !errors.Is(err, gauge.ErrInvalidValueRange) {
		t.Errorf("SetRange(10,0) = %v", err)
	}
	if err := b.SetMaxValue(0); !errors.Is(err, gauge.ErrDegenerateRange) {
		t.Errorf("SetMaxValue(0) = %v", err)
	}
	if b.MinValue() != 0 || b.MaxValue() != 100 {
		t.Errorf("range changed to %v..%v", b.MinValue(), b.MaxValue())
	}
	if host.redraws != before {
		t.Error("redraw requested on failure")
	}
	for _, step := range []int{0, -1} {
		if err := b.SetLongStep(step); !errors.Is(err, gauge.ErrInvalidStep) {
			t.Errorf("SetLongStep(%d) = %v", step, err)
		}
		if err := b.SetShortStep(step); !errors.Is(err, gauge.ErrInvalidStep) {
			t.Errorf("SetShortStep(%d) = %v", step, err)
		}
	}
}

func TestSetRangeClampsCurrent(t *testing.T) {
	b := New(nil)
	b.SetCurrentValue(80)
	if err := b.SetRange(0, 50); err != nil {
		t.Fatal(err)
	}
	if b.CurrentValue() != 50 {
		t.Errorf("CurrentValue() = %v, want 50", b.CurrentValue())
	}
}

func TestTicks(t *testing.T) {
	b := New(nil)
	if err := b.SetLongStep(10); err != nil {
		t.Fatal(err)
	}
	if err := b.SetShortStep(1); err != nil {
		t.Fatal(err)
	}
	ticks := b.Ticks()
	if len(ticks) != 101 {
		t.Fatalf("ticks = %d, want 101", len(ticks))
	}
	tests := []struct {
		idx    int
		major  bool
		length float64
		label  string
	}{
		{0, true, 15, ""},
		{1, false, 6, ""},
		{5, false, 10, ""},
		{10, true, 15, "10"},
		{50, true, 15, "50"},
		{100, true, 15, ""},
	}
	for _, tt := range tests {
		tk := ticks[tt.idx]
		if tk.Major != tt.major || tk.Length != tt.length || tk.Label != tt.label {
			t.Errorf("tick %d = %+v", tt.idx, tk)
		}
	}
	if ticks[25].Pos != 0.25 {
		t.Errorf("tick 25 pos = %v", ticks[25].Pos)
	}

	b.SetPrecision(2)
	if got := b.Ticks()[20].Label; got != "20.00" {
		t.Errorf("precision label = %q", got)
	}
}

func TestTicksRange(t *testing.T) {
	tests := []struct {
		name       string
		min, max   float64
		short      int
		n          int
		first      int
		firstLabel string
		lastLabel  string
	}{
		{"fractional min", 0.5, 30, 1, 30, 1, "20", "20"},
		{"last major below max", 0, 95, 1, 96, 0, "10", "80"},
		{"negative", -20, 20, 5, 9, -20, "-10", "10"},
		{"too many ticks", 0, 1e6, 1, 0, 0, "", ""},
		{"beyond exact integers", 0, 1e19, math.MaxInt, 0, 0, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New(nil)
			if err := b.SetRange(tt.min, tt.max); err != nil {
				t.Fatal(err)
			}
			if err := b.SetShortStep(tt.short); err != nil {
				t.Fatal(err)
			}
			ticks := b.Ticks()
			if len(ticks) != tt.n {
				t.Fatalf("ticks = %d, want %d", len(ticks), tt.n)
			}
			if tt.n == 0 {
				return
			}
			if ticks[0].Value != tt.first {
				t.Errorf("first tick = %d, want %d", ticks[0].Value, tt.first)
			}
			var labels []string
			for _, tk := range ticks {
				if tk.Pos < 0 || tk.Pos > 1 {
					t.Errorf("tick %d pos = %v outside the bar", tk.Value, tk.Pos)
				}
				if tk.Label != "" {
					labels = append(labels, tk.Label)
				}
			}
			if len(labels) == 0 || labels[0] != tt.firstLabel || labels[len(labels)-1] != tt.lastLabel {
				t.Errorf("labels = %v", labels)
			}
		})
	}
}

func TestCurrentValueNaN(t *testing.T) {
	b := New(nil)
	if err := b.SetRange(10, 20); err != nil {
		t.Fatal(err)
	}
	b.SetCurrentValue(math.NaN())
	if b.CurrentValue() != 10 || b.Fraction() != 0 {
		t.Errorf("bar after NaN = %v (fraction %v)", b.CurrentValue(), b.Fraction())
	}
	r := NewRing(nil)
	r.SetCurrentValue(math.NaN())
	if r.CurrentValue() != r.MinValue() {
		t.Errorf("ring after NaN = %v", r.CurrentValue())
	}
}

func TestTicksLongStepOne(t *testing.T) {
	b := New(nil)
	if err := b.SetRange(0, 4); err != nil {
		t.Fatal(err)
	}
	if err := b.SetLongStep(1); err != nil {
		t.Fatal(err)
	}
	for _, tk := range b.Ticks() {
		if !tk.Major {
			t.Errorf("tick %d not major", tk.Value)
		}
	}
}

func TestDrawRulers(t *testing.T) {
	tests := []struct {
		name   string
		dir    Direction
		sides  []Side
		bounds geometry.Rect
		labels int
	}{
		{"bottom", Horizontal, []Side{Bottom}, geometry.NewRect(0, 0, 400, 60), 9},
		{"top and bottom", Horizontal, []Side{Top, Bottom}, geometry.NewRect(0, 0, 400, 60), 18},
		{"vertical ignores top", Vertical, []Side{Top}, geometry.NewRect(0, 0, 60, 400), 0},
		{"left", Vertical, []Side{Left}, geometry.NewRect(0, 0, 60, 400), 9},
		{"right", Vertical, []Side{Right}, geometry.NewRect(0, 0, 60, 400), 9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New(&testHost{bounds: tt.bounds})
			b.SetRuler(Bottom, false)
			for _, s := range tt.sides {
				b.SetRuler(s, true)
			}
			b.SetDirection(tt.dir)
			b.SetCurrentValue(40)

			rec := recorder.New()
			b.Draw(rec)
			if !rec.Balanced() {
				t.Fatal("unbalanced save/restore")
			}
			if got := rec.Count(recorder.OpTextAt); got != tt.labels {
				t.Errorf("labels = %d, want %d", got, tt.labels)
			}
			rects := rec.Filter(recorder.OpRect)
			if len(rects) != 2 {
				t.Fatalf("rects = %d", len(rects))
			}
			fill := rects[1].Rect
			if tt.dir == Horizontal && fill.Width != 0.4*tt.bounds.Width {
				t.Errorf("fill = %+v", fill)
			}
			if tt.dir == Vertical && math.Abs(fill.Height-0.4*tt.bounds.Height) > 1e-9 {
				t.Errorf("fill = %+v", fill)
			}
		})
	}
}

func TestLeftRulerBaseline(t *testing.T) {
	b := New(&testHost{bounds: geometry.NewRect(0, 0, 60, 400)})
	b.SetDirection(Vertical)
	b.SetRuler(Left, true)
	rec := recorder.New()
	b.Draw(rec)
	base := rec.Filter(recorder.OpLine)[0].Points
	if base[0] != geometry.Pt(0, 400) || base[1] != geometry.Pt(0, 0) {
		t.Errorf("baseline = %+v", base)
	}
}

func TestRing(t *testing.T) {
	host := &testHost{bounds: geometry.NewRect(0, 0, 200, 100)}
	r := NewRing(host)
	r.SetCurrentValue(25)
	if r.Fraction() != 0.25 || r.Sweep() != -90 || r.Text() != "25%" {
		t.Errorf("fraction=%v sweep=%v text=%q", r.Fraction(), r.Sweep(), r.Text())
	}
	r.SetCurrentValue(-5)
	if r.CurrentValue() != 0 {
		t.Errorf("CurrentValue() = %v", r.CurrentValue())
	}
	if err := r.SetRange(1, 1); !errors.Is(err, gauge.ErrDegenerateRange) {
		t.Errorf("SetRange(1,1) = %v", err)
	}

	r.SetCurrentValue(50)
	rec := recorder.New()
	r.Draw(rec)
	if !rec.Balanced() {
		t.Fatal("unbalanced")
	}
	arc := rec.Filter(recorder.OpArc)[0]
	if arc.Start != 90 || arc.Span != -180 {
		t.Errorf("arc start=%v span=%v", arc.Start, arc.Span)
	}
	// inscribed square is 100x100 at x=50, ring width 7.5
	if want := geometry.NewRect(53.75, 3.75, 92.5, 92.5); arc.Rect != want {
		t.Errorf("track = %+v, want %+v", arc.Rect, want)
	}
	if txt := rec.Filter(recorder.OpText)[0].Text; txt != "50%" {
		t.Errorf("text = %q", txt)
	}

	r.SetCurrentValue(0)
	rec.Reset()
	r.Draw(rec)
	if rec.Count(recorder.OpArc) != 0 {
		t.Error("empty ring drew an arc")
	}
}
