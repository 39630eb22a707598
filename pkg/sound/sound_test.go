package sound

import (
	"bytes"
	"encoding/binary"
	"testing"
	"time"
)

func TestTone(t *testing.T) {
	pcm := Tone(441, 100*time.Millisecond, 1)
	if got, want := len(pcm), 4410*channelCount*2; got != want {
		t.Fatalf("len = %d, want %d", got, want)
	}
	sample := func(i int) int16 {
		return int16(binary.LittleEndian.Uint16(pcm[i*4:]))
	}
	if sample(0) != 0 {
		t.Errorf("first sample = %d, want faded to 0", sample(0))
	}
	var peak int16
	for i := 0; i < len(pcm)/4; i++ {
		if s := sample(i); s > peak {
			peak = s
		}
		if l, r := pcm[i*4:i*4+2], pcm[i*4+2:i*4+4]; !bytes.Equal(l, r) {
			t.Fatalf("channels differ at %d", i)
		}
	}
	if peak < 32000 {
		t.Errorf("peak = %d", peak)
	}
}

func TestBeeps(t *testing.T) {
	one := len(Tone(880, 50*time.Millisecond, 0.6))
	if got := len(Beeps(880, 50*time.Millisecond, 3)); got != one*5 {
		t.Errorf("len = %d, want %d", got, one*5)
	}
	if len(Beeps(880, 50*time.Millisecond, 0)) != 0 {
		t.Error("zero beeps produced audio")
	}
}

func TestDecodeMP3Garbage(t *testing.T) {
	if _, err := DecodeMP3(bytes.NewReader([]byte("not an mp3"))); err == nil {
		t.Error("DecodeMP3 accepted garbage")
	}
}
