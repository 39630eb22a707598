package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/roffe/txgauge/pkg/config"
	"github.com/roffe/txgauge/pkg/dashboard"
	"github.com/roffe/txgauge/pkg/ebus"
	"github.com/roffe/txgauge/pkg/mdns"
	"github.com/roffe/txgauge/pkg/server"
	"github.com/roffe/txgauge/pkg/source"
	"golang.org/x/sync/errgroup"
)

func init() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
}

func main() {
	cfgPath := flag.String("config", "", "config file")
	listen := flag.String("listen", "", "listen address, overrides the config")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatal(err)
	}
	if *listen != "" {
		cfg.Server.Listen = *listen
	}

	bus := ebus.New(cfg.CacheTTL)
	defer bus.Close()
	bus.RegisterAggregator(dashboard.Aggregators(cfg)...)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if cfg.Server.MDNS != "" {
		r, err := mdns.Advertise(cfg.Server.MDNS)
		if err != nil {
			log.Println(err)
		} else {
			defer r.Close()
		}
	}

	srv := server.New(bus, cfg.Server.ImageCache)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return source.Run(gctx, bus, dashboard.Sources(cfg)...)
	})
	g.Go(func() error {
		return srv.Run(gctx, cfg.Server.Listen)
	})
	if err := g.Wait(); err != nil && ctx.Err() == nil {
		log.Fatal(err)
	}
	log.Println("bye")
}
