// Package serialline reads "topic=value" text lines from a serial port.
//
// A line may carry several readings separated by commas or semicolons. A
// bare number is published on the prefix itself, so a wideband controller
// printing one lambda value per line needs no protocol at all.
package serialline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/roffe/txgauge/pkg/source"
	"go.bug.st/serial"
)

const maxLine = 256

var ErrLineTooLong = errors.New("line too long")

type Reading struct {
	Topic string
	Value float64
}

// ParseLine splits one line into readings. Topics are joined to prefix.
func ParseLine(prefix, line string) ([]Reading, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil, nil
	}
	if v, err := strconv.ParseFloat(line, 64); err == nil {
		return []Reading{{Topic: prefix, Value: v}}, nil
	}
	fields := strings.FieldsFunc(line, func(r rune) bool { return r == ',' || r == ';' })
	out := make([]Reading, 0, len(fields))
	for _, f := range fields {
		k, v, ok := strings.Cut(f, "=")
		if !ok {
			k, v, ok = strings.Cut(strings.TrimSpace(f), " ")
		}
		if !ok {
			return nil, fmt.Errorf("malformed field %q", f)
		}
		k = strings.TrimSpace(k)
		val, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil || k == "" {
			return nil, fmt.Errorf("malformed field %q", f)
		}
		out = append(out, Reading{Topic: prefix + k, Value: val})
	}
	return out, nil
}

type Client struct {
	port    string
	mode    *serial.Mode
	prefix  string
	retries uint
	backoff time.Duration
	log     func(string)

	open func(port string, mode *serial.Mode) (io.ReadCloser, error)
}

// New returns a client for port. retries of zero keeps reconnecting until
// the context ends.
func New(port string, baud int, prefix string, retries uint, backoff time.Duration, logFunc func(string)) *Client {
	if baud <= 0 {
		baud = 9600
	}
	if backoff <= 0 {
		backoff = 1500 * time.Millisecond
	}
	if logFunc == nil {
		logFunc = func(s string) { log.Println(s) }
	}
	return &Client{
		port:    port,
		mode:    &serial.Mode{BaudRate: baud},
		prefix:  prefix,
		retries: retries,
		backoff: backoff,
		log:     logFunc,
		open:    openPort,
	}
}

func openPort(name string, mode *serial.Mode) (io.ReadCloser, error) {
	sp, err := serial.Open(name, mode)
	if err != nil {
		return nil, err
	}
	if err := sp.SetReadTimeout(50 * time.Millisecond); err != nil {
		sp.Close()
		return nil, err
	}
	return sp, nil
}

// Ports lists the serial ports present on the system.
func Ports() ([]string, error) {
	return serial.GetPortsList()
}

func (c *Client) Name() string { return "serial " + c.port }

// Run reads the port until ctx ends, reopening it after read errors.
func (c *Client) Run(ctx context.Context, pub source.Publisher) error {
	return retry.Do(func() error {
		rc, err := c.open(c.port, c.mode)
		if err != nil {
			return fmt.Errorf("open %s: %w", c.port, err)
		}
		stop := context.AfterFunc(ctx, func() { rc.Close() })
		defer stop()
		defer rc.Close()
		err = c.pump(ctx, rc, pub)
		if ctx.Err() != nil {
			return retry.Unrecoverable(ctx.Err())
		}
		return err
	},
		retry.Context(ctx),
		retry.DelayType(retry.FixedDelay),
		retry.Delay(c.backoff),
		retry.Attempts(c.retries),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			c.log(fmt.Sprintf("%s: retry %d: %v", c.port, n+1, err))
		}),
	)
}

// pump reads bytes until EOF or error and publishes each complete line.
func (c *Client) pump(ctx context.Context, r io.Reader, pub source.Publisher) error {
	buf := make([]byte, 64)
	line := make([]byte, 0, maxLine)
	for {
		n, err := r.Read(buf)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		for _, b := range buf[:n] {
			switch b {
			case '\r':
				continue
			case '\n':
				c.publishLine(string(line), pub)
				line = line[:0]
				continue
			}
			if len(line) == maxLine {
				c.log(fmt.Sprintf("%s: %v", c.port, ErrLineTooLong))
				line = line[:0]
			}
			line = append(line, b)
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return fmt.Errorf("%s closed: %w", c.port, err)
			}
			return err
		}
	}
}

func (c *Client) publishLine(line string, pub source.Publisher) {
	readings, err := ParseLine(c.prefix, line)
	if err != nil {
		c.log(fmt.Sprintf("%s: %v", c.port, err))
		return
	}
	for _, r := range readings {
		if err := pub.Publish(r.Topic, r.Value); err != nil {
			c.log(fmt.Sprintf("%s: publish %s: %v", c.port, r.Topic, err))
		}
	}
}
