// Package alarm watches bus topics and raises an alarm when a reading
// leaves its allowed window.
package alarm

import (
	"fmt"
	"log"
	"strconv"
	"sync"
	"time"
)

type State int

const (
	Normal State = iota
	High
	Low
)

func (s State) String() string {
	switch s {
	case High:
		return "high"
	case Low:
		return "low"
	default:
		return "normal"
	}
}

// Rule raises an alarm when Topic goes above Above or below Below. A nil
// limit is not checked. Hysteresis is how far a value has to come back
// before the alarm clears.
type Rule struct {
	Topic      string
	Above      *float64
	Below      *float64
	Hysteresis float64
	Sound      []byte
}

func (r *Rule) check(prev State, v float64) State {
	switch {
	case r.Above != nil && v > *r.Above:
		return High
	case r.Below != nil && v < *r.Below:
		return Low
	}
	switch {
	case prev == High && v > *r.Above-r.Hysteresis:
		return High
	case prev == Low && v < *r.Below+r.Hysteresis:
		return Low
	}
	return Normal
}

// Event is sent on every state change.
type Event struct {
	Topic string
	Value float64
	State State
	Time  time.Time
}

func (e Event) String() string {
	v := strconv.FormatFloat(e.Value, 'f', -1, 64)
	if e.State == Normal {
		return fmt.Sprintf("%s back to normal (%s)", e.Topic, v)
	}
	return fmt.Sprintf("%s %s: %s", e.Topic, e.State, v)
}

// Subscriber is the part of the bus the watcher needs.
type Subscriber interface {
	SubscribeFunc(topic string, f func(float64)) func()
}

type Watcher struct {
	rules []*Rule
	play  func([]byte) error

	mu     sync.Mutex
	state  map[*Rule]State
	unsubs []func()

	// OnChange is called for every state change.
	OnChange func(Event)
}

// New returns a watcher playing rule sounds with play. A nil play keeps the
// watcher silent.
func New(play func([]byte) error, rules ...*Rule) *Watcher {
	return &Watcher{
		rules: rules,
		play:  play,
		state: make(map[*Rule]State),
	}
}

func (w *Watcher) Start(bus Subscriber) {
	for _, r := range w.rules {
		w.unsubs = append(w.unsubs, bus.SubscribeFunc(r.Topic, func(v float64) {
			w.Check(r, v)
		}))
	}
}

func (w *Watcher) Stop() {
	for _, u := range w.unsubs {
		u()
	}
	w.unsubs = nil
}

// Check evaluates one reading against r.
func (w *Watcher) Check(r *Rule, v float64) {
	w.mu.Lock()
	prev := w.state[r]
	next := r.check(prev, v)
	w.state[r] = next
	w.mu.Unlock()
	if next == prev {
		return
	}
	if next != Normal && w.play != nil && len(r.Sound) > 0 {
		if err := w.play(r.Sound); err != nil {
			log.Printf("alarm sound for %s: %v", r.Topic, err)
		}
	}
	if w.OnChange != nil {
		w.OnChange(Event{Topic: r.Topic, Value: v, State: next, Time: time.Now()})
	}
}

// Active lists the rules currently in alarm.
func (w *Watcher) Active() []Event {
	w.mu.Lock()
	defer w.mu.Unlock()
	var out []Event
	for _, r := range w.rules {
		if s := w.state[r]; s != Normal {
			out = append(out, Event{Topic: r.Topic, State: s})
		}
	}
	return out
}
