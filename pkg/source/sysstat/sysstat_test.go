package sysstat

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type sink struct {
	mu     sync.Mutex
	topics map[string]float64
}

func (s *sink) Publish(topic string, v float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.topics[topic] = v
	return nil
}

func TestCollectPartial(t *testing.T) {
	bad := errors.New("no sensor")
	s := New(time.Second, "sys.", func(string) {})
	s.collectors = []collector{
		func(_ context.Context, out map[string]float64) error { out[TopicCPU] = 12.5; return nil },
		func(context.Context, map[string]float64) error { return bad },
	}
	vals, err := s.Collect(context.Background())
	if !errors.Is(err, bad) {
		t.Errorf("Collect() error = %v", err)
	}
	if vals[TopicCPU] != 12.5 {
		t.Errorf("cpu = %v", vals[TopicCPU])
	}
}

func TestRunPublishesWithPrefix(t *testing.T) {
	var logged []string
	s := New(5*time.Millisecond, "sys.", func(m string) { logged = append(logged, m) })
	s.collectors = []collector{
		func(_ context.Context, out map[string]float64) error { out[TopicMem] = 40; return nil },
		func(context.Context, map[string]float64) error { return errors.New("flaky") },
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	sk := &sink{topics: map[string]float64{}}
	if err := s.Run(ctx, sk); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Run() = %v", err)
	}
	if sk.topics["sys.mem"] != 40 {
		t.Errorf("published = %v", sk.topics)
	}
	if len(logged) != 1 {
		t.Errorf("repeated error logged %d times", len(logged))
	}
}

func TestRealCollectors(t *testing.T) {
	if testing.Short() {
		t.Skip("reads host sensors")
	}
	vals, _ := New(time.Second, "", nil).Collect(context.Background())
	if v, ok := vals[TopicMem]; ok && (v < 0 || v > 100) {
		t.Errorf("mem percent out of range: %v", v)
	}
}
