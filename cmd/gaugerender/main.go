// Command gaugerender draws a gauge preset to a PNG file without a window.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/roffe/txgauge/pkg/colors"
	"github.com/roffe/txgauge/pkg/gauge"
	"github.com/roffe/txgauge/pkg/presets"
	"github.com/roffe/txgauge/pkg/snapshot"
	"github.com/roffe/txgauge/pkg/theme"
	"github.com/skratchdot/open-golang/open"
)

func init() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
}

func main() {
	var (
		name  = flag.String("preset", "speedometer", "preset to render")
		size  = flag.Int("size", 256, "image width and height in pixels")
		value = flag.Float64("value", 0, "needle value")
		pitch = flag.Float64("pitch", 0, "attitude pitch in degrees")
		roll  = flag.Float64("roll", 0, "attitude roll in degrees")
		mode  = flag.String("colorblind", "", "colour scheme override for colour bands")
		out   = flag.String("out", "", "output file, defaults to <preset>.png")
		show  = flag.Bool("open", false, "open the image when done")
		dump  = flag.Bool("dump", false, "print the drawing operations instead of rendering")
		list  = flag.Bool("list", false, "list presets and exit")
	)
	flag.Parse()

	if *list {
		for _, n := range presets.Names() {
			fmt.Println(n)
		}
		return
	}
	if *dump {
		if err := dumpPreset(*name, *size); err != nil {
			log.Fatal(err)
		}
		return
	}

	opts := snapshot.Options{
		Size:       *size,
		Value:      *value,
		Pitch:      *pitch,
		Roll:       *roll,
		Background: theme.Background,
	}
	if *mode != "" {
		m := colors.StringToColorBlindMode(*mode)
		opts.Mode = &m
	}
	b, err := snapshot.Preset(*name, opts)
	if err != nil {
		log.Fatal(err)
	}
	if *out == "" {
		*out = *name + ".png"
	}
	if err := os.WriteFile(*out, b, 0o644); err != nil {
		log.Fatal(err)
	}
	log.Printf("wrote %s (%d bytes)", *out, len(b))
	if *show {
		if err := open.Run(*out); err != nil {
			log.Fatal(err)
		}
	}
}

func dumpPreset(name string, size int) error {
	p, err := presets.Get(name)
	if err != nil {
		return err
	}
	g := gauge.New(snapshot.NewHost(size, size))
	if _, err := p.Build(g, nil); err != nil {
		return err
	}
	return snapshot.Dump(os.Stdout, g)
}
