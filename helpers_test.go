package layerseg

import (
	"image"
	"image/color"
	"testing"
)

func solidImage(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func splitImage(w, h int, left, right color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if x < w/2 {
				img.SetRGBA(x, y, left)
			} else {
				img.SetRGBA(x, y, right)
			}
		}
	}
	return img
}

// boxImage paints bg everywhere and fg inside box.
func boxImage(w, h int, bg, fg color.RGBA, box image.Rectangle) *image.RGBA {
	img := solidImage(w, h, bg)
	for y := box.Min.Y; y < box.Max.Y; y++ {
		for x := box.Min.X; x < box.Max.X; x++ {
			img.SetRGBA(x, y, fg)
		}
	}
	return img
}

var (
	white = color.RGBA{255, 255, 255, 255}
	black = color.RGBA{0, 0, 0, 255}
	red   = color.RGBA{255, 0, 0, 255}
	blue  = color.RGBA{0, 0, 255, 255}
)

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// checkSegmentationInvariants verifies the label/segment contract:
// every label is -1 or a valid segment index, and areas plus orphans
// cover the image exactly.
func checkSegmentationInvariants(t *testing.T, m *SegmentationMap) {
	t.Helper()
	if len(m.Labels) != m.W*m.H {
		t.Errorf("labels length = %d, want %d", len(m.Labels), m.W*m.H)
	}
	orphans := 0
	for i, l := range m.Labels {
		if l == -1 {
			orphans++
			continue
		}
		if l < 0 || int(l) >= len(m.Segments) {
			t.Errorf("label %d at %d out of range (have %d segments)", l, i, len(m.Segments))
		}
	}
	areaSum := 0
	for _, s := range m.Segments {
		areaSum += s.Area
	}
	if areaSum+orphans != m.W*m.H {
		t.Errorf("area sum %d + orphans %d != %d pixels", areaSum, orphans, m.W*m.H)
	}
}
