package gauge

import (
	"testing"

	"github.com/roffe/txgauge/pkg/paint/recorder"
)

func TestDrawRestoresCanvas(t *testing.T) {
	build := map[string]func(g *Gauge) Item{
		"background": func(g *Gauge) Item { return g.AddBackground(88) },
		"glass":      func(g *Gauge) Item { return g.AddGlass(88) },
		"label":      func(g *Gauge) Item { return g.AddLabel(50) },
		"arc":        func(g *Gauge) Item { return g.AddArc(80) },
		"colorband":  func(g *Gauge) Item { return g.AddColorBand(50) },
		"degrees":    func(g *Gauge) Item { return g.AddDegrees(90) },
		"values":     func(g *Gauge) Item { return g.AddValues(70) },
		"needle":     func(g *Gauge) Item { return g.AddNeedle(60) },
		"attitude": func(g *Gauge) Item {
			a := g.AddAttitudeMeter(90)
			a.SetPitch(12)
			a.SetRoll(-25)
			return a
		},
	}
	for name, fn := range build {
		t.Run(name, func(t *testing.T) {
			g, _ := newTestGauge(320, 240)
			it := fn(g)
			rec := recorder.New()
			it.Draw(rec)
			if !rec.Balanced() {
				t.Errorf("depth=%d underflows=%d after Draw", rec.Depth(), rec.Underflows)
			}
			if len(rec.Ops) == 0 {
				t.Error("nothing drawn")
			}
		})
	}
}

func TestDrawFullGauge(t *testing.T) {
	g, _ := newTestGauge(300, 300)
	g.AddBackground(99)
	g.AddBackground(95)
	g.AddArc(88)
	g.AddDegrees(87)
	g.AddColorBand(35)
	g.AddValues(74)
	lab := g.AddLabel(70)
	n := g.AddNeedle(60)
	n.SetLabel(lab)
	n.SetCurrentValue(72.5)
	g.AddGlass(88)

	rec := recorder.New()
	g.Draw(rec)
	if !rec.Balanced() {
		t.Fatal("unbalanced save/restore")
	}
	if got := rec.Count(recorder.OpPolygon); got != 1 {
		t.Errorf("polygons = %d, want 1 needle", got)
	}
	if got := rec.Count(recorder.OpPie); got != 2 {
		t.Errorf("pies = %d, want 2 glass halves", got)
	}
	last := rec.Ops[len(rec.Ops)-1]
	if last.Kind != recorder.OpPie {
		t.Errorf("glass not painted last: %v", last.Kind)
	}
	if lab.Text() != "72.5" {
		t.Errorf("label = %q", lab.Text())
	}
}

func TestAttitudeDrawOrder(t *testing.T) {
	g, _ := newTestGauge(200, 200)
	a := g.AddAttitudeMeter(90)
	rec := recorder.New()
	a.Draw(rec)

	chords := rec.Filter(recorder.OpChord)
	if len(chords) != 3 {
		t.Fatalf("chords = %d, want sky, ground and handle base", len(chords))
	}
	// six ladder labels on each side
	if got := rec.Count(recorder.OpText); got != 12 {
		t.Errorf("ladder labels = %d, want 12", got)
	}
	ladder := rec.Filter(recorder.OpText)[0]
	if ladder.Depth != 2 {
		t.Errorf("ladder depth = %d, want 2", ladder.Depth)
	}
}
