package logfile

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/roffe/txgauge/pkg/source"
)

// Values is the read side of the event bus.
type Values interface {
	Last(topic string) (float64, bool)
}

// Recorder samples Topics every Interval into a CSV file. It publishes
// nothing and runs next to the other sources.
type Recorder struct {
	Path     string
	Topics   []string
	Interval time.Duration
	Values   Values
}

func (r *Recorder) Name() string { return "recorder " + r.Path }

func (r *Recorder) Run(ctx context.Context, _ source.Publisher) error {
	f, err := os.Create(r.Path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := NewCSVWriter(f, r.Topics)

	t := time.NewTicker(r.Interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			if err := w.Flush(); err != nil {
				return err
			}
			return ctx.Err()
		case now := <-t.C:
			if err := w.Write(now, r.Values.Last); err != nil {
				return fmt.Errorf("write %s: %w", r.Path, err)
			}
		}
	}
}

// Replay publishes the records of a log with their original spacing
// divided by Speed.
type Replay struct {
	Path  string
	Log   Logfile
	Speed float64
	Loop  bool
}

func (r *Replay) Name() string { return "replay " + r.Path }

func (r *Replay) Run(ctx context.Context, pub source.Publisher) error {
	if r.Log == nil {
		l, err := Open(r.Path)
		if err != nil {
			return err
		}
		r.Log = l
	}
	speed := r.Speed
	if speed <= 0 {
		speed = 1
	}
	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()
	for {
		rec := r.Log.Next()
		if rec == nil {
			if !r.Loop || r.Log.Len() == 0 {
				return nil
			}
			rec = r.Log.Seek(0)
		}
		for _, v := range rec.Values {
			if err := pub.Publish(v.Key, v.Value); err != nil {
				return err
			}
		}
		delay := time.Duration(float64(rec.DelayTillNext) / speed)
		timer.Reset(delay)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}
}
