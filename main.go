package main

import (
	"context"
	"flag"
	"io"
	"log"
	"log/slog"
	"os"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/roffe/txgauge/pkg/alarm"
	"github.com/roffe/txgauge/pkg/config"
	"github.com/roffe/txgauge/pkg/dashboard"
	"github.com/roffe/txgauge/pkg/debug"
	"github.com/roffe/txgauge/pkg/ebus"
	"github.com/roffe/txgauge/pkg/gauge"
	"github.com/roffe/txgauge/pkg/ipc"
	"github.com/roffe/txgauge/pkg/mdns"
	"github.com/roffe/txgauge/pkg/presets"
	"github.com/roffe/txgauge/pkg/server"
	"github.com/roffe/txgauge/pkg/sound"
	"github.com/roffe/txgauge/pkg/source"
	"github.com/roffe/txgauge/pkg/theme"
)

func init() {
	log.SetFlags(log.LstdFlags | log.Lshortfile | log.Lmicroseconds)
}

func main() {
	cfgPath := flag.String("config", "", "config file")
	demo := flag.Bool("demo", false, "sweep every widget instead of reading the configured sources")
	serve := flag.Bool("serve", false, "serve rendered gauges over HTTP as well")
	send := flag.String("send", "", "publish readings to the running dashboard and exit, e.g. rpm=3000,boost=1.1")
	flag.Parse()

	if *send != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := ipc.Send(ctx, "", *send); err != nil {
			log.Fatal(err)
		}
		return
	}
	if ipc.IsRunning("") {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if err := ipc.Send(ctx, "", "show"); err != nil {
			log.Println(err)
		}
		log.Println("txgauge is already running")
		return
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatal(err)
	}
	setupLogging(cfg.Log)
	defer debug.Close()

	a := app.NewWithID("com.roffe.txgauge")
	a.Settings().SetTheme(theme.DashTheme{})
	if err := presets.Load(a); err != nil {
		log.Println("failed to load user presets:", err)
	}

	bus := ebus.New(cfg.CacheTTL)
	defer bus.Close()

	db, err := dashboard.New(cfg, bus)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	mw := newMainWindow(a, cfg, db, bus)
	db.Start()

	rules, err := dashboard.AlarmRules(cfg)
	if err != nil {
		log.Fatal(err)
	}
	alarms := alarm.New(sound.Play, rules...)
	alarms.OnChange = func(e alarm.Event) {
		log.Println(e)
		mw.alarmChanged(e, alarms.Active())
	}
	alarms.Start(bus)
	defer alarms.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sources := dashboard.Sources(cfg)
	if *demo {
		sources = db.DemoSources(4 * time.Second)
	}
	go func() {
		if err := source.Run(ctx, bus, sources...); err != nil {
			log.Println(err)
			mw.setStatus(err.Error())
		}
	}()
	if rec := db.Recorder(); rec != nil {
		go func() {
			if err := rec.Run(ctx, bus); err != nil && ctx.Err() == nil {
				log.Println(err)
				mw.setStatus(err.Error())
			}
		}()
	}
	local := ipc.NewServer("")
	local.OnShow = mw.RequestFocus
	go func() {
		if err := local.Run(ctx, bus); err != nil && ctx.Err() == nil {
			log.Println(err)
		}
	}()
	if *serve {
		if cfg.Server.MDNS != "" {
			if r, err := mdns.Advertise(cfg.Server.MDNS); err != nil {
				log.Println(err)
			} else {
				defer r.Close()
			}
		}
		srv := server.New(bus, cfg.Server.ImageCache)
		go func() {
			if err := srv.Run(ctx, cfg.Server.Listen); err != nil {
				log.Println(err)
				mw.setStatus(err.Error())
			}
		}()
	}

	mw.SetCloseIntercept(func() {
		cancel()
		if err := presets.Save(a); err != nil {
			log.Println("failed to save user presets:", err)
		}
		mw.Close()
	})
	mw.Resize(fyne.NewSize(cfg.Window.Width, cfg.Window.Height))
	mw.SetFullScreen(cfg.Window.Fullscreen)
	mw.ShowAndRun()
}

func setupLogging(cfg config.LogConfig) {
	level, _ := cfg.SlogLevel()
	var h slog.Handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	if cfg.Debug {
		if err := debug.Start("txgauge_debug.log"); err != nil {
			log.Println(err)
		} else {
			h = debug.Handler(level)
			log.SetOutput(io.MultiWriter(os.Stderr, debug.Writer()))
		}
	}
	gauge.SetLogger(slog.New(h))
}
