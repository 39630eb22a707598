// Package mdns answers multicast DNS queries so the gauge server can be
// reached as <name>.local.
package mdns

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/netip"
	"strings"

	"github.com/pion/mdns/v2"
	"golang.org/x/net/ipv4"
)

// LocalName appends the .local suffix when missing.
func LocalName(name string) string {
	name = strings.TrimSuffix(name, ".")
	if strings.HasSuffix(name, ".local") {
		return name
	}
	return name + ".local"
}

func listen(names []string) (*mdns.Conn, error) {
	addr4, err := net.ResolveUDPAddr("udp4", mdns.DefaultAddressIPv4)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve mDNS address: %w", err)
	}
	l4, err := net.ListenUDP("udp4", addr4)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on mDNS address: %w", err)
	}
	conn, err := mdns.Server(ipv4.NewPacketConn(l4), nil, &mdns.Config{LocalNames: names})
	if err != nil {
		l4.Close()
		return nil, fmt.Errorf("failed to create mDNS server: %w", err)
	}
	return conn, nil
}

type Responder struct {
	conn *mdns.Conn
	name string
}

// Advertise answers queries for name until Close.
func Advertise(name string) (*Responder, error) {
	name = LocalName(name)
	conn, err := listen([]string{name})
	if err != nil {
		return nil, err
	}
	log.Printf("answering mDNS queries for %s", name)
	return &Responder{conn: conn, name: name}, nil
}

func (r *Responder) Name() string { return r.name }

func (r *Responder) Close() error { return r.conn.Close() }

// Query resolves name on the local network.
func Query(ctx context.Context, name string) (netip.Addr, error) {
	name = LocalName(name)
	conn, err := listen(nil)
	if err != nil {
		return netip.Addr{}, err
	}
	defer conn.Close()
	_, src, err := conn.QueryAddr(ctx, name)
	if err != nil {
		return netip.Addr{}, fmt.Errorf("failed to query mDNS: %w", err)
	}
	if !src.IsValid() {
		return netip.Addr{}, fmt.Errorf("no valid mDNS response for %s", name)
	}
	return src, nil
}
