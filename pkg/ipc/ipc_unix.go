//go:build !windows

package ipc

import (
	"context"
	"errors"
	"net"
	"os"
	"path/filepath"
	"syscall"
)

var DefaultAddress = filepath.Join(os.TempDir(), "txgauge.sock")

func dial(ctx context.Context, addr string) (net.Conn, error) {
	var d net.Dialer
	return d.DialContext(ctx, "unix", addr)
}

// listen removes a socket file left behind by a crashed instance.
func listen(addr string) (net.Listener, error) {
	l, err := net.Listen("unix", addr)
	if err == nil || !errors.Is(err, syscall.EADDRINUSE) {
		return l, err
	}
	if IsRunning(addr) {
		return nil, err
	}
	if rmErr := os.Remove(addr); rmErr != nil {
		return nil, err
	}
	return net.Listen("unix", addr)
}
