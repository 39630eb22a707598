package ggpaint

import (
	"fmt"
	"strings"
	"sync"

	"github.com/gogpu/gg/text"
	"github.com/roffe/txgauge/pkg/paint"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/goregular"
)

type faceKey struct {
	ttf  string
	size float64
}

var (
	fontMu  sync.Mutex
	sources = map[string]*text.FontSource{}
	faces   = map[faceKey]text.Face{}
)

var ttfs = map[string][]byte{
	"regular":   goregular.TTF,
	"bold":      gobold.TTF,
	"mono":      gomono.TTF,
	"mono-bold": gomonobold.TTF,
}

// ttfName maps a font request onto one of the embedded Go fonts. Families
// containing "mono" or "courier" use Go Mono, everything else Go Regular.
func ttfName(f paint.Font) string {
	fam := strings.ToLower(f.Family)
	mono := strings.Contains(fam, "mono") || strings.Contains(fam, "courier")
	switch {
	case mono && f.Weight == paint.Bold:
		return "mono-bold"
	case mono:
		return "mono"
	case f.Weight == paint.Bold:
		return "bold"
	default:
		return "regular"
	}
}

func faceFor(f paint.Font) (text.Face, error) {
	size := f.Size
	if size <= 0 {
		size = 12
	}
	name := ttfName(f)
	key := faceKey{ttf: name, size: size}

	fontMu.Lock()
	defer fontMu.Unlock()
	if face, ok := faces[key]; ok {
		return face, nil
	}
	src, ok := sources[name]
	if !ok {
		var err error
		src, err = text.NewFontSource(ttfs[name])
		if err != nil {
			return nil, fmt.Errorf("load font %s: %w", name, err)
		}
		sources[name] = src
	}
	face := src.Face(size)
	faces[key] = face
	return face, nil
}
