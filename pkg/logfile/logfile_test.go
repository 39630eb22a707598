package logfile

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestWriteParse(t *testing.T) {
	var buf bytes.Buffer
	w := NewCSVWriter(&buf, []string{"rpm", "boost"})
	t0 := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	rows := []map[string]float64{
		{"rpm": 900},
		{"rpm": 3000, "boost": 0.8},
		{"rpm": 3200.5, "boost": 1.25},
	}
	for i, row := range rows {
		err := w.Write(t0.Add(time.Duration(i)*250*time.Millisecond), func(k string) (float64, bool) {
			v, ok := row[k]
			return v, ok
		})
		if err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}
	want := "Time,rpm,boost\n2024-05-01T12:00:00.000,900,\n"
	if !strings.HasPrefix(buf.String(), want) {
		t.Fatalf("csv = %q", buf.String())
	}

	l, err := Parse(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if l.Len() != 3 || !l.Start().Equal(t0) || l.End().Sub(l.Start()) != 500*time.Millisecond {
		t.Fatalf("len=%d start=%v end=%v", l.Len(), l.Start(), l.End())
	}
	first := l.Next()
	if _, ok := first.Value("boost"); ok {
		t.Error("empty cell parsed as a value")
	}
	if first.DelayTillNext != 250*time.Millisecond {
		t.Errorf("delay = %v", first.DelayTillNext)
	}
	last := l.Seek(2)
	if v, _ := last.Value("rpm"); v != 3200.5 || last.DelayTillNext != 0 {
		t.Errorf("last = %+v", last)
	}
	if l.Next() != nil {
		t.Error("Next() past the end")
	}
	if p := l.Prev(); p == nil || l.Pos() != 1 {
		t.Errorf("Prev() pos = %d", l.Pos())
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"bad time", "Time,rpm\nyesterday,1\n"},
		{"bad value", "Time,rpm\n2024-05-01T12:00:00.000,fast\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(strings.NewReader(tt.in)); err == nil {
				t.Error("Parse() succeeded")
			}
		})
	}
	if _, err := Parse(strings.NewReader("")); !errors.Is(err, ErrNoHeader) {
		t.Errorf("empty input = %v", err)
	}
}

type pubRecorder struct {
	mu  sync.Mutex
	got []RecordValue
}

func (p *pubRecorder) Publish(topic string, v float64) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.got = append(p.got, RecordValue{topic, v})
	return nil
}

const sample = `Time,rpm,boost
2024-05-01T12:00:00.000,900,0
2024-05-01T12:00:00.010,1000,
2024-05-01T12:00:00.020,1100,0.5
`

func TestReplay(t *testing.T) {
	l, err := Parse(strings.NewReader(sample))
	if err != nil {
		t.Fatal(err)
	}
	pub := &pubRecorder{}
	r := &Replay{Log: l, Speed: 10}
	if err := r.Run(context.Background(), pub); err != nil {
		t.Fatal(err)
	}
	want := []RecordValue{{"rpm", 900}, {"boost", 0}, {"rpm", 1000}, {"rpm", 1100}, {"boost", 0.5}}
	if len(pub.got) != len(want) {
		t.Fatalf("got %v", pub.got)
	}
	for i := range want {
		if pub.got[i] != want[i] {
			t.Errorf("got[%d] = %v, want %v", i, pub.got[i], want[i])
		}
	}
}

func TestReplayLoop(t *testing.T) {
	l, err := Parse(strings.NewReader(sample))
	if err != nil {
		t.Fatal(err)
	}
	pub := &pubRecorder{}
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	r := &Replay{Log: l, Loop: true}
	if err := r.Run(ctx, pub); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Run() = %v", err)
	}
	pub.mu.Lock()
	defer pub.mu.Unlock()
	if len(pub.got) <= 5 {
		t.Errorf("loop published %d values", len(pub.got))
	}
}

type lastValues map[string]float64

func (l lastValues) Last(topic string) (float64, bool) {
	v, ok := l[topic]
	return v, ok
}

func TestRecorder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rec.csv")
	r := &Recorder{Path: path, Topics: []string{"a", "b"}, Interval: 10 * time.Millisecond, Values: lastValues{"a": 1.5}}
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	if err := r.Run(ctx, nil); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Run() = %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	l, err := Parse(bytes.NewReader(b))
	if err != nil {
		t.Fatal(err)
	}
	if l.Len() == 0 {
		t.Fatal("no rows recorded")
	}
	if v, ok := l.Next().Value("a"); !ok || v != 1.5 {
		t.Errorf("a = %v, %v", v, ok)
	}
}
