// Package dashboard builds a grid of gauges and bars from the configuration
// and routes bus readings to them.
package dashboard

import (
	"fmt"
	"image/color"
	"slices"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"github.com/roffe/txgauge/pkg/alarm"
	"github.com/roffe/txgauge/pkg/bar"
	"github.com/roffe/txgauge/pkg/colors"
	"github.com/roffe/txgauge/pkg/config"
	"github.com/roffe/txgauge/pkg/ebus"
	"github.com/roffe/txgauge/pkg/gauge"
	"github.com/roffe/txgauge/pkg/layout"
	"github.com/roffe/txgauge/pkg/logfile"
	"github.com/roffe/txgauge/pkg/presets"
	"github.com/roffe/txgauge/pkg/sound"
	"github.com/roffe/txgauge/pkg/source"
	"github.com/roffe/txgauge/pkg/source/serialline"
	"github.com/roffe/txgauge/pkg/source/sysstat"
	"github.com/roffe/txgauge/pkg/theme"
	"github.com/roffe/txgauge/pkg/widgets/surface"
)

var minCell = fyne.NewSize(120, 120)

// Widget is one cell of the dashboard.
type Widget struct {
	Title   string
	Topics  []string
	Surface *surface.Surface

	Gauge *gauge.Gauge
	Built *presets.Built
	Bar   *bar.ProgressBar
	Ring  *bar.Ring
}

type Dashboard struct {
	cfg  *config.Config
	bus  *ebus.Bus
	mode colors.ColorBlindMode

	widgets []*Widget
	router  map[string][]func(float64)
	unsub   func()
	content *fyne.Container

	// OnTapped is called when a widget is clicked.
	OnTapped func(*Widget)
}

// New builds every configured widget. Routing starts with Start.
func New(cfg *config.Config, bus *ebus.Bus) (*Dashboard, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	db := &Dashboard{
		cfg:    cfg,
		bus:    bus,
		mode:   colors.StringToColorBlindMode(cfg.ColorBlind),
		router: make(map[string][]func(float64)),
	}
	for i, gc := range cfg.Gauges {
		w, err := db.newGauge(gc)
		if err != nil {
			return nil, fmt.Errorf("gauges[%d]: %w", i, err)
		}
		db.add(w)
	}
	for i, bc := range cfg.Bars {
		w, err := db.newBar(bc)
		if err != nil {
			return nil, fmt.Errorf("bars[%d]: %w", i, err)
		}
		db.add(w)
	}
	bus.RegisterAggregator(Aggregators(cfg)...)

	objs := make([]fyne.CanvasObject, len(db.widgets))
	for i, w := range db.widgets {
		objs[i] = w.Surface
	}
	db.content = container.New(layout.NewGrid(cfg.Grid.Cols, cfg.Grid.Rows, cfg.Grid.Padding), objs...)
	return db, nil
}

func (db *Dashboard) add(w *Widget) {
	w.Surface.SetBackground(theme.Background)
	w.Surface.OnTapped = func() {
		if db.OnTapped != nil {
			db.OnTapped(w)
		}
	}
	db.widgets = append(db.widgets, w)
}

func (db *Dashboard) route(topic string, set func(float64)) {
	if topic == "" {
		return
	}
	db.router[topic] = append(db.router[topic], set)
}

func (db *Dashboard) newGauge(gc config.GaugeConfig) (*Widget, error) {
	p, err := presets.Get(gc.Preset)
	if err != nil {
		return nil, err
	}
	s := surface.New(minCell)
	g := gauge.New(s)
	built, err := p.Build(g, &db.mode)
	if err != nil {
		return nil, err
	}
	s.SetPainter(g)
	w := &Widget{Title: gc.Preset, Surface: s, Gauge: g, Built: built}

	if len(built.Needles) > 0 && gc.Topic != "" {
		db.route(gc.Topic, needleSetter(s, built.Needles))
		w.Topics = append(w.Topics, gc.Topic)
	}
	if am := built.Attitude; am != nil {
		db.route(gc.Pitch, pitchSetter(s, am))
		db.route(gc.Roll, rollSetter(s, am))
		for _, t := range []string{gc.Pitch, gc.Roll} {
			if t != "" {
				w.Topics = append(w.Topics, t)
			}
		}
	}
	if len(w.Topics) == 0 {
		return nil, fmt.Errorf("preset %q has nothing bound to a topic", gc.Preset)
	}
	return w, nil
}

func (db *Dashboard) newBar(bc config.BarConfig) (*Widget, error) {
	s := surface.New(minCell)
	w := &Widget{Title: bc.Topic, Topics: []string{bc.Topic}, Surface: s}
	fill := colors.GetColor(bc.Topic)

	switch bc.Type {
	case "ring":
		r := bar.NewRing(s)
		if err := r.SetRange(bc.Min, bc.Max); err != nil {
			return nil, err
		}
		r.SetColors(color.RGBA{R: 0x40, G: 0x40, B: 0x40, A: 0xff}, fill, color.RGBA{R: 0xf0, G: 0xf0, B: 0xf0, A: 0xff})
		s.SetPainter(r)
		w.Ring = r
		db.route(bc.Topic, valueSetter(s, r))
	default:
		b := bar.New(s)
		if err := b.SetRange(bc.Min, bc.Max); err != nil {
			return nil, err
		}
		if bc.Vertical {
			b.SetDirection(bar.Vertical)
		}
		if err := applySteps(b, bc); err != nil {
			return nil, err
		}
		b.SetPrecision(bc.Precision)
		if len(bc.Rulers) > 0 {
			b.SetRuler(bar.Bottom, false)
			for _, r := range bc.Rulers {
				b.SetRuler(parseSide(r), true)
			}
		}
		bg, line, _ := b.Colors()
		b.SetColors(bg, line, fill)
		s.SetPainter(b)
		w.Bar = b
		db.route(bc.Topic, valueSetter(s, b))
	}
	return w, nil
}

func applySteps(b *bar.ProgressBar, bc config.BarConfig) error {
	if bc.LongStep != 0 {
		if err := b.SetLongStep(bc.LongStep); err != nil {
			return err
		}
	}
	if bc.ShortStep != 0 {
		if err := b.SetShortStep(bc.ShortStep); err != nil {
			return err
		}
	}
	return nil
}

func parseSide(s string) bar.Side {
	switch strings.ToLower(s) {
	case "top":
		return bar.Top
	case "left":
		return bar.Left
	case "right":
		return bar.Right
	default:
		return bar.Bottom
	}
}

// Start subscribes to the bus. Cached readings are applied immediately.
func (db *Dashboard) Start() {
	if db.unsub != nil {
		return
	}
	db.unsub = db.bus.SubscribeAllFunc(db.SetValue)
}

// SetValue routes one reading to every widget bound to topic.
func (db *Dashboard) SetValue(topic string, value float64) {
	for _, set := range db.router[topic] {
		set(value)
	}
}

func (db *Dashboard) Close() {
	if db.unsub != nil {
		db.unsub()
		db.unsub = nil
	}
}

func (db *Dashboard) Content() fyne.CanvasObject { return db.content }

func (db *Dashboard) Widgets() []*Widget { return db.widgets }

// Topics lists the routed topics in sorted order.
func (db *Dashboard) Topics() []string {
	out := make([]string, 0, len(db.router))
	for t := range db.router {
		out = append(out, t)
	}
	slices.Sort(out)
	return out
}

// SetNeedleColor recolours the needles of a gauge widget.
func (w *Widget) SetNeedleColor(c color.Color) {
	if w.Built == nil {
		return
	}
	w.Surface.Update(func() {
		for _, n := range w.Built.Needles {
			n.SetColor(c)
		}
	})
}

// NeedleColor returns the colour of the topmost needle, or nil.
func (w *Widget) NeedleColor() color.Color {
	if w.Built == nil || w.Built.Needle() == nil {
		return nil
	}
	var c color.Color
	w.Surface.Update(func() { c = w.Built.Needle().Color() })
	return c
}

// Aggregators builds the derived topics of cfg.
func Aggregators(cfg *config.Config) []*ebus.Aggregator {
	var out []*ebus.Aggregator
	for _, d := range cfg.Derived {
		switch d.Type {
		case "diff":
			out = append(out, ebus.DiffAggregator(d.Inputs[0], d.Inputs[1], d.Output))
		case "scale":
			out = append(out, ebus.ScaleAggregator(d.Inputs[0], d.Output, d.Factor, d.Offset))
		case "smooth":
			out = append(out, ebus.SmoothAggregator(d.Inputs[0], d.Output, d.Alpha))
		}
	}
	return out
}

// Sources builds the value producers of cfg.
func Sources(cfg *config.Config) []source.Source {
	var out []source.Source
	if ss := cfg.Sources.Sysstat; ss.Enabled {
		out = append(out, sysstat.New(ss.Interval, ss.Prefix, nil))
	}
	if rp := cfg.Sources.Replay; rp.File != "" {
		out = append(out, &logfile.Replay{Path: rp.File, Speed: rp.Speed, Loop: rp.Loop})
	}
	for _, sc := range cfg.Sources.Serial {
		out = append(out, serialline.New(sc.Port, sc.Baud, sc.Prefix, sc.Retries, sc.Backoff, nil))
	}
	return out
}

// Recorder samples every routed topic into the configured log file, or
// returns nil when recording is off.
func (db *Dashboard) Recorder() *logfile.Recorder {
	if db.cfg.Record.File == "" {
		return nil
	}
	return &logfile.Recorder{
		Path:     db.cfg.Record.File,
		Topics:   db.Topics(),
		Interval: db.cfg.Record.Interval,
		Values:   db.bus,
	}
}

// DemoSources sweeps every routed topic across its widget range so a
// dashboard can be checked without hardware.
func (db *Dashboard) DemoSources(period time.Duration) []source.Source {
	var out []source.Source
	seen := map[string]bool{}
	for _, w := range db.widgets {
		lo, hi := w.valueRange()
		for _, t := range w.Topics {
			if seen[t] {
				continue
			}
			seen[t] = true
			out = append(out, &source.Ticker{Topic: t, Interval: 50 * time.Millisecond, Fn: source.Sweep(lo, hi, period)})
		}
	}
	return out
}

func (w *Widget) valueRange() (float64, float64) {
	switch {
	case w.Bar != nil:
		return w.Bar.MinValue(), w.Bar.MaxValue()
	case w.Ring != nil:
		return w.Ring.MinValue(), w.Ring.MaxValue()
	case w.Built != nil && w.Built.Needle() != nil:
		n := w.Built.Needle()
		return n.MinValue(), n.MaxValue()
	}
	return -30, 30
}

// AlarmRules builds the alarm rules of cfg, loading their sounds.
func AlarmRules(cfg *config.Config) ([]*alarm.Rule, error) {
	var out []*alarm.Rule
	for i, a := range cfg.Alarms {
		r := &alarm.Rule{Topic: a.Topic, Above: a.Above, Below: a.Below, Hysteresis: a.Hysteresis}
		switch a.Sound {
		case "none":
		case "", "beep":
			r.Sound = sound.Beeps(880, 120*time.Millisecond, 3)
		default:
			pcm, err := sound.LoadMP3(a.Sound)
			if err != nil {
				return nil, fmt.Errorf("alarms[%d]: %w", i, err)
			}
			r.Sound = pcm
		}
		out = append(out, r)
	}
	return out, nil
}
