package mdns

import "testing"

func TestLocalName(t *testing.T) {
	tests := []struct{ in, want string }{
		{"txgauge", "txgauge.local"},
		{"txgauge.local", "txgauge.local"},
		{"txgauge.local.", "txgauge.local"},
		{"car.txgauge", "car.txgauge.local"},
	}
	for _, tt := range tests {
		if got := LocalName(tt.in); got != tt.want {
			t.Errorf("LocalName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
