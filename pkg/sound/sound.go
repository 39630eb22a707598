// Package sound plays alarm tones and mp3 clips on the default audio device.
package sound

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/hajimehoshi/go-mp3"
)

const (
	SampleRate   = 44100
	channelCount = 2
)

var ErrSampleRate = errors.New("unsupported sample rate")

var (
	initOnce sync.Once
	octx     *oto.Context
	initErr  error
)

// Init opens the audio device. Only one context may exist per process, so
// later calls return the result of the first.
func Init() error {
	initOnce.Do(func() {
		op := &oto.NewContextOptions{
			SampleRate:   SampleRate,
			ChannelCount: channelCount,
			Format:       oto.FormatSignedInt16LE,
		}
		ctx, ready, err := oto.NewContext(op)
		if err != nil {
			initErr = fmt.Errorf("sound.Init failed: %w", err)
			return
		}
		select {
		case <-ready:
			octx = ctx
		case <-time.After(10 * time.Second):
			initErr = errors.New("sound.Init timed out")
		}
	})
	return initErr
}

// Tone returns a sine wave in the device format. The start and end are
// faded to avoid clicks.
func Tone(freq float64, d time.Duration, volume float64) []byte {
	n := int(d.Seconds() * SampleRate)
	fade := min(n/2, SampleRate/200)
	buf := make([]byte, 0, n*channelCount*2)
	for i := 0; i < n; i++ {
		amp := volume
		switch {
		case i < fade:
			amp *= float64(i) / float64(fade)
		case i > n-fade:
			amp *= float64(n-i) / float64(fade)
		}
		s := int16(amp * math.MaxInt16 * math.Sin(2*math.Pi*freq*float64(i)/SampleRate))
		for c := 0; c < channelCount; c++ {
			buf = binary.LittleEndian.AppendUint16(buf, uint16(s))
		}
	}
	return buf
}

// Beeps joins count tones separated by gaps of silence.
func Beeps(freq float64, d time.Duration, count int) []byte {
	tone := Tone(freq, d, 0.6)
	gap := make([]byte, len(tone))
	var out []byte
	for i := 0; i < count; i++ {
		out = append(out, tone...)
		if i < count-1 {
			out = append(out, gap...)
		}
	}
	return out
}

// DecodeMP3 reads a whole clip. The clip must match the device sample rate.
func DecodeMP3(r io.Reader) ([]byte, error) {
	d, err := mp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("mp3.NewDecoder failed: %w", err)
	}
	if d.SampleRate() != SampleRate {
		return nil, fmt.Errorf("%w: %d Hz", ErrSampleRate, d.SampleRate())
	}
	return io.ReadAll(d)
}

func LoadMP3(path string) ([]byte, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return DecodeMP3(bytes.NewReader(b))
}

// Play starts pcm and returns without waiting for it to finish.
func Play(pcm []byte) error {
	if err := Init(); err != nil {
		return err
	}
	player := octx.NewPlayer(bytes.NewReader(pcm))
	player.Play()
	go func() {
		for player.IsPlaying() {
			time.Sleep(5 * time.Millisecond)
		}
		if err := player.Close(); err != nil {
			log.Printf("player.Close failed: %v", err)
		}
	}()
	return nil
}
