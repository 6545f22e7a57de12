package layerseg

import (
	"image"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Unresolved (-1) pixels render in the sentinel color.
var sentinelColor = color.RGBA{0, 0, 0, 255}

// DefaultEdgeHighlight is the overlay color used by OverlayEdges when
// the zero value is passed.
var DefaultEdgeHighlight = color.RGBA{255, 0, 64, 255}

func renderLabels(labels []int32, colors []colorful.Color, w, h int) *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			l := labels[labelOffset(w, x, y)]
			if l < 0 {
				out.SetRGBA(x, y, sentinelColor)
				continue
			}
			c := colors[l]
			out.SetRGBA(x, y, color.RGBA{
				uint8(max(0, min(255, c.R*255))),
				uint8(max(0, min(255, c.G*255))),
				uint8(max(0, min(255, c.B*255))),
				255,
			})
		}
	}
	return out
}

// Render paints every pixel with its segment's representative color;
// unresolved pixels come out black.
func (m *SegmentationMap) Render() *image.RGBA {
	colors := make([]colorful.Color, len(m.Segments))
	for i, s := range m.Segments {
		colors[i] = s.Color
	}
	return renderLabels(m.Labels, colors, m.W, m.H)
}

// Render paints every pixel with its layer's area-weighted color;
// unresolved pixels come out black.
func (m *LayeredSegmentationMap) Render() *image.RGBA {
	colors := make([]colorful.Color, len(m.Layers))
	for i, l := range m.Layers {
		colors[i] = l.Color
	}
	return renderLabels(m.LayerLabels, colors, m.Base.W, m.Base.H)
}

// Render paints every pixel with its cluster's color.
func (m *ColorLayerMap) Render() *image.RGBA {
	colors := make([]colorful.Color, len(m.Layers))
	for i, l := range m.Layers {
		colors[i] = l.Color
	}
	return renderLabels(m.Labels, colors, m.W, m.H)
}

// Render converts the edge map to a grayscale image, one intensity
// byte per pixel.
func (e *EdgeMap) Render() *image.Gray {
	out := image.NewGray(image.Rect(0, 0, e.W, e.H))
	copy(out.Pix, e.Pix)
	return out
}

// OverlayEdges draws the nonzero pixels of edges in the highlight
// color on top of img. A zero-value highlight falls back to
// DefaultEdgeHighlight.
func OverlayEdges(img image.Image, edges *EdgeMap, highlight color.RGBA) *image.RGBA {
	if highlight == (color.RGBA{}) {
		highlight = DefaultEdgeHighlight
	}
	bounds := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, edges.W, edges.H))
	for y := 0; y < edges.H; y++ {
		for x := 0; x < edges.W; x++ {
			if edges.Pix[labelOffset(edges.W, x, y)] != 0 {
				out.SetRGBA(x, y, highlight)
				continue
			}
			r, g, b, a := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			out.SetRGBA(x, y, color.RGBA{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), uint8(a >> 8)})
		}
	}
	return out
}
