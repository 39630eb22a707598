// Package capture grabs the contents of a window as PNG.
package capture

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"fyne.io/fyne/v2"
)

// Filename returns a time stamped name such as capture-2024-01-02-15-04-05.png.
func Filename(prefix string, t time.Time) string {
	return fmt.Sprintf("%s-%s.png", prefix, t.Format("2006-01-02-15-04-05"))
}

func Encode(img image.Image) ([]byte, error) {
	buff := bytes.NewBuffer(nil)
	if err := png.Encode(buff, img); err != nil {
		return nil, err
	}
	return buff.Bytes(), nil
}

func PNG(c fyne.Canvas) ([]byte, error) {
	return Encode(c.Capture())
}

// Screenshot writes c into dir and returns the file name.
func Screenshot(c fyne.Canvas, dir string) (string, error) {
	b, err := PNG(c)
	if err != nil {
		return "", err
	}
	filename := filepath.Join(dir, Filename("capture", time.Now()))
	if err := os.WriteFile(filename, b, 0o644); err != nil {
		return "", err
	}
	return filename, nil
}
