package layerseg

import (
	"testing"

	"github.com/lucasb-eyer/go-colorful"
)

func TestOklabDistance(t *testing.T) {
	blackC := colorful.Color{}
	whiteC := colorful.Color{R: 1, G: 1, B: 1}
	redC := colorful.Color{R: 1}
	orangeC := colorful.Color{R: 1, G: 0.5}
	blueC := colorful.Color{B: 1}

	if d := OklabDistance(redC, redC); d != 0 {
		t.Errorf("distance to self = %v, want 0", d)
	}
	if d1, d2 := OklabDistance(redC, blueC), OklabDistance(blueC, redC); d1 != d2 {
		t.Errorf("distance not symmetric: %v vs %v", d1, d2)
	}
	// Black to white spans the full lightness axis.
	if d := OklabDistance(blackC, whiteC); absf(d-1.0) > 0.01 {
		t.Errorf("black-white distance = %v, want ~1.0", d)
	}
	// Perceptually closer pairs measure shorter.
	if OklabDistance(redC, orangeC) >= OklabDistance(redC, blueC) {
		t.Error("red-orange should be closer than red-blue")
	}
}
