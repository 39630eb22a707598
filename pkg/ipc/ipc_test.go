//go:build !windows

package ipc

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

type recorder struct {
	mu   sync.Mutex
	vals map[string]float64
}

func (r *recorder) Publish(topic string, v float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.vals[topic] = v
	return nil
}

func startServer(t *testing.T) (*Server, *recorder, string) {
	t.Helper()
	addr := filepath.Join(t.TempDir(), "t.sock")
	srv := NewServer(addr)
	rec := &recorder{vals: map[string]float64{}}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx, rec) }()
	t.Cleanup(func() {
		cancel()
		if err := <-done; !errors.Is(err, context.Canceled) {
			t.Errorf("Run() = %v", err)
		}
	})
	deadline := time.Now().Add(2 * time.Second)
	for !IsRunning(addr) {
		if time.Now().After(deadline) {
			t.Fatal("server did not start")
		}
		time.Sleep(10 * time.Millisecond)
	}
	return srv, rec, addr
}

func TestSendReadings(t *testing.T) {
	srv, rec, addr := startServer(t)
	shown := make(chan struct{}, 1)
	srv.OnShow = func() { shown <- struct{}{} }

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := Send(ctx, addr, "rpm=3000,boost=1.2", "coolant 90", "show"); err != nil {
		t.Fatal(err)
	}
	rec.mu.Lock()
	if rec.vals["rpm"] != 3000 || rec.vals["boost"] != 1.2 || rec.vals["coolant"] != 90 {
		t.Errorf("vals = %v", rec.vals)
	}
	rec.mu.Unlock()
	select {
	case <-shown:
	default:
		t.Error("show not handled")
	}
}

func TestSendErrors(t *testing.T) {
	_, rec, addr := startServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	for _, line := range []string{"rpm=fast", "42"} {
		if err := Send(ctx, addr, line); !errors.Is(err, ErrRemote) {
			t.Errorf("Send(%q) = %v, want ErrRemote", line, err)
		}
	}
	if len(rec.vals) != 0 {
		t.Errorf("published %v", rec.vals)
	}
}

func TestStaleSocket(t *testing.T) {
	addr := filepath.Join(t.TempDir(), "stale.sock")
	if err := os.WriteFile(addr, nil, 0o600); err != nil {
		t.Fatal(err)
	}
	if IsRunning(addr) {
		t.Fatal("stale file reported as running")
	}
	l, err := listen(addr)
	if err != nil {
		t.Fatalf("listen() = %v", err)
	}
	l.Close()
}
