// Package server serves rendered gauges and the latest bus readings over
// HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/jellydator/ttlcache/v3"
	"github.com/roffe/txgauge/pkg/colors"
	"github.com/roffe/txgauge/pkg/presets"
	"github.com/roffe/txgauge/pkg/snapshot"
	"github.com/roffe/txgauge/pkg/theme"
)

const (
	defaultSize = 256
	maxSize     = 2048
)

// Values is the read side of the event bus.
type Values interface {
	Last(topic string) (float64, bool)
	Topics() []string
}

type Server struct {
	app    *fiber.App
	values Values
	cache  *ttlcache.Cache[string, []byte]
}

// New sets up the routes. Rendered images are kept for cacheTTL so a
// polling client does not re-render an unchanged gauge.
func New(values Values, cacheTTL time.Duration) *Server {
	s := &Server{
		values: values,
		cache: ttlcache.New[string, []byte](
			ttlcache.WithTTL[string, []byte](cacheTTL),
			ttlcache.WithCapacity[string, []byte](256),
		),
	}
	s.app = fiber.New(fiber.Config{
		AppName:      "txgauge",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	})
	s.app.Use(recover.New())
	s.app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))

	s.app.Get("/health/live", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "alive"})
	})
	s.app.Get("/presets", s.handlePresets)
	s.app.Get("/topics", s.handleTopics)
	s.app.Get("/gauge/:preset.png", s.handleGauge)
	return s
}

func (s *Server) App() *fiber.App { return s.app }

// Run serves on addr until ctx is done.
func (s *Server) Run(ctx context.Context, addr string) error {
	go s.cache.Start()
	defer s.cache.Stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.app.Listen(addr, fiber.ListenConfig{DisableStartupMessage: true})
	}()
	log.Printf("serving gauges on %s", addr)
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.app.ShutdownWithContext(sctx)
}

func (s *Server) handlePresets(c fiber.Ctx) error {
	return c.JSON(presets.Names())
}

func (s *Server) handleTopics(c fiber.Ctx) error {
	out := make(map[string]float64)
	for _, t := range s.values.Topics() {
		if v, ok := s.values.Last(t); ok {
			out[t] = v
		}
	}
	return c.JSON(out)
}

type badRequest struct {
	param string
	err   error
}

func (e *badRequest) Error() string { return fmt.Sprintf("invalid %s: %v", e.param, e.err) }

func (e *badRequest) Unwrap() error { return e.err }

var (
	errUnknownTopic = errors.New("no value for topic")
	errNotFinite    = errors.New("not a finite number")
)

// renderOptions reads size, value, topic, pitch, roll and colorblind from
// the query. A topic takes precedence over a literal value.
func (s *Server) renderOptions(c fiber.Ctx) (snapshot.Options, error) {
	opts := snapshot.Options{Size: defaultSize, Background: theme.Background}
	var err error
	if q := c.Query("size"); q != "" {
		if opts.Size, err = strconv.Atoi(q); err != nil {
			return opts, &badRequest{"size", err}
		}
		if opts.Size <= 0 || opts.Size > maxSize {
			return opts, &badRequest{"size", fmt.Errorf("%d not in 1..%d", opts.Size, maxSize)}
		}
	}
	for _, f := range []struct {
		name string
		dst  *float64
	}{{"value", &opts.Value}, {"pitch", &opts.Pitch}, {"roll", &opts.Roll}} {
		q := c.Query(f.name)
		if q == "" {
			continue
		}
		if *f.dst, err = strconv.ParseFloat(q, 64); err != nil {
			return opts, &badRequest{f.name, err}
		}
		if math.IsNaN(*f.dst) || math.IsInf(*f.dst, 0) {
			return opts, &badRequest{f.name, errNotFinite}
		}
	}
	if t := c.Query("topic"); t != "" {
		v, ok := s.values.Last(t)
		if !ok {
			return opts, fmt.Errorf("%w %q", errUnknownTopic, t)
		}
		opts.Value = v
	}
	if m := c.Query("colorblind"); m != "" {
		mode := colors.StringToColorBlindMode(m)
		opts.Mode = &mode
	}
	return opts, nil
}

func (s *Server) handleGauge(c fiber.Ctx) error {
	name := c.Params("preset")
	opts, err := s.renderOptions(c)
	if err != nil {
		return errorResponse(c, err)
	}
	key := fmt.Sprintf("%s|%d|%g|%g|%g|%s", name, opts.Size, opts.Value, opts.Pitch, opts.Roll, c.Query("colorblind"))
	if itm := s.cache.Get(key); itm != nil {
		c.Set("Content-Type", "image/png")
		return c.Send(itm.Value())
	}
	b, err := snapshot.Preset(name, opts)
	if err != nil {
		return errorResponse(c, err)
	}
	s.cache.Set(key, b, ttlcache.DefaultTTL)
	c.Set("Content-Type", "image/png")
	return c.Send(b)
}

func errorResponse(c fiber.Ctx, err error) error {
	var br *badRequest
	status := fiber.StatusInternalServerError
	switch {
	case errors.As(err, &br):
		status = fiber.StatusBadRequest
	case errors.Is(err, presets.ErrNotFound), errors.Is(err, errUnknownTopic):
		status = fiber.StatusNotFound
	default:
		log.Printf("render failed: %v", err)
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}
