package layerseg

import (
	"image"
	"math"
)

// EdgeMap holds one byte per pixel: either a continuous gradient
// magnitude in [0,255] or, after ThresholdEdges, a binary 0/255 mask.
type EdgeMap struct {
	W, H int
	Pix  []uint8 // len = W*H
}

var (
	sobelX = [3][3]float64{{-1, 0, 1}, {-2, 0, 2}, {-1, 0, 1}}
	sobelY = [3][3]float64{{-1, -2, -1}, {0, 0, 0}, {1, 2, 1}}
)

// DetectEdges computes the Sobel gradient magnitude of the image's
// luminance field, clamped to [0,255]. The 1-pixel border is left at
// zero; the kernels are never evaluated there.
func DetectEdges(img image.Image) *EdgeMap {
	return detectEdges(newPixelBuffer(img))
}

func detectEdges(px pixelBuffer) *EdgeMap {
	w, h := px.W, px.H
	lum := make([]float64, w*h)
	for i := range lum {
		off := i * 3
		lum[i] = 0.299*float64(px.Pix[off]) + 0.587*float64(px.Pix[off+1]) + 0.114*float64(px.Pix[off+2])
	}

	out := &EdgeMap{W: w, H: h, Pix: make([]uint8, w*h)}
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			gx := 0.0
			gy := 0.0
			for ky := -1; ky <= 1; ky++ {
				row := (y + ky) * w
				for kx := -1; kx <= 1; kx++ {
					v := lum[row+x+kx]
					gx += v * sobelX[ky+1][kx+1]
					gy += v * sobelY[ky+1][kx+1]
				}
			}
			m := math.Sqrt(gx*gx + gy*gy)
			if m > 255 {
				m = 255
			}
			out.Pix[labelOffset(w, x, y)] = uint8(m)
		}
	}
	return out
}

// ThresholdEdges binarizes an intensity edge map: magnitude >=
// threshold becomes 255, everything else 0. The input is not modified.
func ThresholdEdges(edges *EdgeMap, threshold uint8) *EdgeMap {
	out := &EdgeMap{W: edges.W, H: edges.H, Pix: make([]uint8, len(edges.Pix))}
	for i, v := range edges.Pix {
		if v >= threshold {
			out.Pix[i] = 255
		}
	}
	return out
}
