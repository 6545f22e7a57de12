// Package utils holds image I/O and palette helpers around layerseg:
// reading photos, saving rendered maps, and turning segmentation
// output or raw images into small display palettes.
package utils

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"slices"

	"github.com/cenkalti/dominantcolor"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"

	"github.com/setanarut/layerseg"
)

type PaletteMethod int

const (
	PaletteMethodDominantColor PaletteMethod = iota
	PaletteMethodKMeans
)

func (m PaletteMethod) String() string {
	switch m {
	case PaletteMethodKMeans:
		return "kmeans"
	default:
		return "dominantcolor"
	}
}

// SortPaletteByBrightness orders colors from darkest to brightest, so
// the first entry works as a background color.
func SortPaletteByBrightness(palette []colorful.Color) {
	slices.SortFunc(palette, func(a, b colorful.Color) int {
		ri, gi, bi := a.LinearRgb()
		rj, gj, bj := b.LinearRgb()
		yi := 0.2126*ri + 0.7152*gi + 0.0722*bi
		yj := 0.2126*rj + 0.7152*gj + 0.0722*bj
		if yi < yj {
			return -1
		}
		if yi > yj {
			return 1
		}
		return 0
	})
}

// PaletteFromLayers derives a k-color display palette from merged
// layer colors, weighting each candidate by its layer area.
func PaletteFromLayers(layered *layerseg.LayeredSegmentationMap, k int) []colorful.Color {
	if layered == nil || len(layered.Layers) == 0 {
		return nil
	}
	cols := make([]colorful.Color, len(layered.Layers))
	weights := make([]float64, len(layered.Layers))
	for i, l := range layered.Layers {
		cols[i] = l.Color.Clamped()
		weights[i] = float64(l.TotalArea)
	}
	return SelectDiverseColors(cols, weights, k)
}

// SelectDiverseColors picks k colors from the weighted candidates,
// seeding with the heaviest and then greedily maximizing Lab distance
// to the picks so far, scaled by candidate weight.
func SelectDiverseColors(cands []colorful.Color, weights []float64, k int) []colorful.Color {
	if k <= 0 || len(cands) == 0 || len(cands) != len(weights) {
		return nil
	}
	type item struct {
		col colorful.Color
		lab [3]float64
		w   float64
	}
	items := make([]item, len(cands))
	maxW := 0.0
	for i, c := range cands {
		l, a, b := c.Lab()
		w := weights[i]
		if w <= 0 {
			w = 1e-6
		}
		if w > maxW {
			maxW = w
		}
		items[i] = item{col: c, lab: [3]float64{l, a, b}, w: w}
	}
	if k > len(items) {
		k = len(items)
	}

	selectedIdx := make([]int, 0, k)
	selected := make([]bool, len(items))

	seed := 0
	for i := 1; i < len(items); i++ {
		if items[i].w > items[seed].w {
			seed = i
		}
	}
	selectedIdx = append(selectedIdx, seed)
	selected[seed] = true

	for len(selectedIdx) < k {
		bestIdx := -1
		bestScore := -1.0
		for i := range items {
			if selected[i] {
				continue
			}
			minD2 := math.MaxFloat64
			for _, s := range selectedIdx {
				d0 := items[i].lab[0] - items[s].lab[0]
				d1 := items[i].lab[1] - items[s].lab[1]
				d2 := items[i].lab[2] - items[s].lab[2]
				d := d0*d0 + d1*d1 + d2*d2
				if d < minD2 {
					minD2 = d
				}
			}
			score := math.Sqrt(minD2) * (0.55 + 0.45*math.Sqrt(items[i].w/maxW))
			if score > bestScore {
				bestScore = score
				bestIdx = i
			}
		}
		if bestIdx < 0 {
			break
		}
		selected[bestIdx] = true
		selectedIdx = append(selectedIdx, bestIdx)
	}

	out := make([]colorful.Color, 0, len(selectedIdx))
	for _, idx := range selectedIdx {
		out = append(out, items[idx].col)
	}
	return out
}

// ExtractPalette extracts a k-color palette straight from an image,
// before any segmentation has run.
func ExtractPalette(img image.Image, k int, method PaletteMethod) []colorful.Color {
	switch method {
	case PaletteMethodKMeans:
		if p := extractKMeansPalette(img, k); len(p) != 0 {
			return p
		}
		return extractDominantPalette(img, k)
	default:
		return extractDominantPalette(img, k)
	}
}

func extractDominantPalette(img image.Image, k int) []colorful.Color {
	if k <= 0 {
		return nil
	}
	candidates := dominantcolor.FindWeight(img, max(24, k*8))
	if len(candidates) == 0 {
		candidates = append(candidates, dominantcolor.Color{
			RGBA:   color.RGBA{R: 128, G: 128, B: 128, A: 255},
			Weight: 1.0,
		})
	}
	cols := make([]colorful.Color, len(candidates))
	weights := make([]float64, len(candidates))
	for i, c := range candidates {
		col, _ := colorful.MakeColor(c.RGBA)
		cols[i] = col.Clamped()
		weights[i] = c.Weight
	}
	return SelectDiverseColors(cols, weights, k)
}

func extractKMeansPalette(img image.Image, k int) []colorful.Color {
	if k <= 0 {
		return nil
	}
	b := img.Bounds()
	width, height := b.Dx(), b.Dy()
	if width == 0 || height == 0 {
		return nil
	}

	// Subsample to keep kmeans tractable on large images.
	maxSamples := 12000
	step := 1
	if width*height > maxSamples {
		step = int(math.Sqrt(float64(width*height)/float64(maxSamples))) + 1
	}
	dataset := make(clusters.Observations, 0, min(width*height, maxSamples))
	for y := b.Min.Y; y < b.Max.Y; y += step {
		for x := b.Min.X; x < b.Max.X; x += step {
			r16, g16, b16, a16 := img.At(x, y).RGBA()
			if a16 == 0 {
				continue
			}
			dataset = append(dataset, clusters.Coordinates{
				float64(r16) / 65535.0,
				float64(g16) / 65535.0,
				float64(b16) / 65535.0,
			})
		}
	}
	if len(dataset) == 0 {
		return nil
	}

	workK := min(max(k*4, k+2), len(dataset))
	km := kmeans.New()
	cc, err := km.Partition(dataset, workK)
	if err != nil || len(cc) == 0 {
		return nil
	}

	cols := make([]colorful.Color, 0, len(cc))
	weights := make([]float64, 0, len(cc))
	for _, c := range cc {
		if len(c.Center) < 3 {
			continue
		}
		cols = append(cols, colorful.Color{R: c.Center[0], G: c.Center[1], B: c.Center[2]}.Clamped())
		weights = append(weights, float64(max(len(c.Observations), 1)))
	}
	return SelectDiverseColors(cols, weights, k)
}

func ReadImage(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	img, _, err := image.Decode(file)
	return img, err
}

func SaveImage(img image.Image, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}

// SavePalette writes the palette as a strip of solid tiles.
func SavePalette(palette []colorful.Color, tileSize int, filename string) error {
	if len(palette) == 0 {
		return fmt.Errorf("empty palette")
	}
	if tileSize <= 0 {
		tileSize = 64
	}
	w := tileSize * len(palette)
	h := tileSize
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i, c := range palette {
		r := uint8(max(0, min(255, c.R*255)))
		g := uint8(max(0, min(255, c.G*255)))
		b := uint8(max(0, min(255, c.B*255)))
		x0 := i * tileSize
		for y := 0; y < h; y++ {
			for x := x0; x < x0+tileSize; x++ {
				img.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: 255})
			}
		}
	}
	return SaveImage(img, filename)
}
