package layerseg

import (
	"image"
	"image/color"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
)

func TestRenderSegmentationMap(t *testing.T) {
	m := &SegmentationMap{
		W: 2, H: 1,
		Labels: []int32{0, -1},
		Segments: []Segment{
			{ID: 0, Rect: image.Rect(0, 0, 1, 1), Color: colorful.Color{R: 1}, Area: 1},
		},
	}
	out := m.Render()
	if got := out.RGBAAt(0, 0); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("labeled pixel = %v, want red", got)
	}
	// Unresolved pixels render in the black sentinel.
	if got := out.RGBAAt(1, 0); got != (color.RGBA{0, 0, 0, 255}) {
		t.Errorf("orphan pixel = %v, want black", got)
	}
}

func TestRenderLayeredMap(t *testing.T) {
	img := boxImage(9, 9, white, black, image.Rect(3, 3, 6, 6))
	layered := MergeSegmentsByColor(SegmentImage(img, 40), 0.1, 1)
	out := layered.Render()
	if got := out.RGBAAt(0, 0); got != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("background renders as %v, want white", got)
	}
	if got := out.RGBAAt(4, 4); got != (color.RGBA{0, 0, 0, 255}) {
		t.Errorf("box center renders as %v, want black", got)
	}
}

func TestRenderEdgeMap(t *testing.T) {
	e := &EdgeMap{W: 3, H: 1, Pix: []uint8{0, 128, 255}}
	out := e.Render()
	for x, want := range []uint8{0, 128, 255} {
		if got := out.GrayAt(x, 0).Y; got != want {
			t.Errorf("gray at %d = %d, want %d", x, got, want)
		}
	}
}

func TestOverlayEdges(t *testing.T) {
	img := solidImage(2, 1, blue)
	e := &EdgeMap{W: 2, H: 1, Pix: []uint8{255, 0}}
	out := OverlayEdges(img, e, color.RGBA{})
	if got := out.RGBAAt(0, 0); got != DefaultEdgeHighlight {
		t.Errorf("edge pixel = %v, want highlight %v", got, DefaultEdgeHighlight)
	}
	if got := out.RGBAAt(1, 0); got != blue {
		t.Errorf("non-edge pixel = %v, want original %v", got, blue)
	}
}
