package layerseg

import "image"

// pixelBuffer is the flat working representation of the input photo:
// interleaved RGB in [0,255], len = W*H*3. Alpha is dropped on
// conversion; the pipeline never reads it.
type pixelBuffer struct {
	W, H int
	Pix  []float32
}

func pixOffset(w, x, y int) int {
	return (y*w + x) * 3
}

func labelOffset(w, x, y int) int {
	return y*w + x
}

func newPixelBuffer(img image.Image) pixelBuffer {
	bounds := img.Bounds()
	h := bounds.Dy()
	w := bounds.Dx()
	px := pixelBuffer{
		W:   w,
		H:   h,
		Pix: make([]float32, h*w*3),
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			off := pixOffset(w, x, y)
			px.Pix[off] = float32(r >> 8)
			px.Pix[off+1] = float32(g >> 8)
			px.Pix[off+2] = float32(b >> 8)
		}
	}
	return px
}

// colorAt returns the pixel color normalized to [0,1] per channel.
func (px pixelBuffer) colorAt(idx int) (r, g, b float64) {
	off := idx * 3
	return float64(px.Pix[off]) / 255.0,
		float64(px.Pix[off+1]) / 255.0,
		float64(px.Pix[off+2]) / 255.0
}
