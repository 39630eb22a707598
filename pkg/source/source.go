// Package source runs the producers of live readings.
package source

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
)

// Publisher receives readings, usually an *ebus.Bus.
type Publisher interface {
	Publish(topic string, value float64) error
}

// Source produces readings until its context is canceled.
type Source interface {
	Name() string
	Run(ctx context.Context, pub Publisher) error
}

// Run starts every source and waits for all of them. The first failing
// source cancels the others. Errors returned after the group context is
// done are not reported.
func Run(ctx context.Context, pub Publisher, sources ...Source) error {
	errg, gctx := errgroup.WithContext(ctx)
	for _, s := range sources {
		errg.Go(func() error {
			if err := s.Run(gctx, pub); err != nil && gctx.Err() == nil {
				return &Error{Source: s.Name(), Err: err}
			}
			return nil
		})
	}
	return errg.Wait()
}

type Error struct {
	Source string
	Err    error
}

func (e *Error) Error() string { return e.Source + ": " + e.Err.Error() }

func (e *Error) Unwrap() error { return e.Err }

// Ticker publishes Fn(t) on Topic every Interval.
type Ticker struct {
	Topic    string
	Interval time.Duration
	Fn       func(t time.Time) float64
}

func (t *Ticker) Name() string { return "ticker " + t.Topic }

func (t *Ticker) Run(ctx context.Context, pub Publisher) error {
	tick := time.NewTicker(t.Interval)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-tick.C:
			if err := pub.Publish(t.Topic, t.Fn(now)); err != nil {
				return err
			}
		}
	}
}

// Sweep returns a triangle wave between min and max with the given period,
// handy for demo dashboards.
func Sweep(min, max float64, period time.Duration) func(time.Time) float64 {
	start := time.Now()
	return func(t time.Time) float64 {
		phase := float64(t.Sub(start)%period) / float64(period)
		if phase > 0.5 {
			phase = 1 - phase
		}
		return min + 2*phase*(max-min)
	}
}
