package ipc

import (
	"context"
	"net"

	"github.com/Microsoft/go-winio"
)

const DefaultAddress = `\\.\pipe\txgauge`

func dial(ctx context.Context, addr string) (net.Conn, error) {
	return winio.DialPipeContext(ctx, addr)
}

func listen(addr string) (net.Listener, error) {
	return winio.ListenPipe(addr, &winio.PipeConfig{
		InputBufferSize:  64 << 10,
		OutputBufferSize: 64 << 10,
	})
}
