// Package ipc lets other processes talk to a running dashboard over a local
// socket. Each line is a command: "ping", "show", or readings in the form
// accepted by serialline.ParseLine.
package ipc

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/roffe/txgauge/pkg/source"
	"github.com/roffe/txgauge/pkg/source/serialline"
)

type Server struct {
	Addr string
	// OnShow is called for the show command.
	OnShow func()
}

func NewServer(addr string) *Server {
	if addr == "" {
		addr = DefaultAddress
	}
	return &Server{Addr: addr}
}

func (s *Server) Name() string { return "ipc " + s.Addr }

// Run accepts connections until ctx is done.
func (s *Server) Run(ctx context.Context, pub source.Publisher) error {
	l, err := listen(s.Addr)
	if err != nil {
		return err
	}
	stop := context.AfterFunc(ctx, func() { l.Close() })
	defer stop()

	var wg sync.WaitGroup
	defer wg.Wait()
	for {
		c, err := l.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.handle(ctx, c, pub)
		}()
	}
}

func (s *Server) handle(ctx context.Context, c net.Conn, pub source.Publisher) {
	defer c.Close()
	stop := context.AfterFunc(ctx, func() { c.Close() })
	defer stop()

	sc := bufio.NewScanner(c)
	w := bufio.NewWriter(c)
	for sc.Scan() {
		reply := s.command(strings.TrimSpace(sc.Text()), pub)
		w.WriteString(reply + "\n")
		if err := w.Flush(); err != nil {
			return
		}
	}
}

func (s *Server) command(line string, pub source.Publisher) string {
	switch line {
	case "":
		return "ok"
	case "ping":
		return "pong"
	case "show":
		if s.OnShow != nil {
			s.OnShow()
		}
		return "ok"
	}
	readings, err := serialline.ParseLine("", line)
	if err != nil {
		return "err " + err.Error()
	}
	for _, r := range readings {
		if r.Topic == "" {
			return "err reading without topic"
		}
	}
	for _, r := range readings {
		if err := pub.Publish(r.Topic, r.Value); err != nil {
			log.Printf("ipc: %s: %v", r.Topic, err)
			return "err " + err.Error()
		}
	}
	return "ok"
}

var ErrRemote = errors.New("remote error")

// Send delivers lines to the dashboard at addr and waits for every reply.
func Send(ctx context.Context, addr string, lines ...string) error {
	if addr == "" {
		addr = DefaultAddress
	}
	c, err := dial(ctx, addr)
	if err != nil {
		return err
	}
	defer c.Close()
	if d, ok := ctx.Deadline(); ok {
		c.SetDeadline(d)
	}
	r := bufio.NewScanner(c)
	for _, line := range lines {
		if _, err := fmt.Fprintln(c, line); err != nil {
			return err
		}
		if !r.Scan() {
			if err := r.Err(); err != nil {
				return err
			}
			return errors.New("connection closed")
		}
		if reply := r.Text(); strings.HasPrefix(reply, "err ") {
			return fmt.Errorf("%w: %s", ErrRemote, strings.TrimPrefix(reply, "err "))
		}
	}
	return nil
}

// IsRunning reports whether a dashboard answers at addr.
func IsRunning(addr string) bool {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	return Send(ctx, addr, "ping") == nil
}
