package layerseg

import (
	"image"
	"math"
	"math/rand"
	"slices"

	"github.com/lucasb-eyer/go-colorful"
)

const (
	// Centroid initialization picks from an evenly spaced sample of at
	// most this many pixels.
	clusterInitSamples = 1000
	// Each refinement iteration assigns a strided sample of at most
	// this many pixels. Subsampling is a deliberate speed/accuracy
	// trade-off; only the final assignment scans every pixel.
	clusterIterSamples = 20000
	clusterIterations  = 15
)

// ExtractColorLayers clusters the raw pixels of img into k color
// layers with a sampled k-means. It is independent of the edge-based
// path and uses an unseeded random source; use ExtractColorLayersRand
// for reproducible output. k < 1 is clamped to 1; a k exceeding the
// number of distinct sampled colors yields fewer than k layers
// (duplicate centroids collapse into empty clusters, which are
// dropped).
func ExtractColorLayers(img image.Image, k int) *ColorLayerMap {
	return extractColorLayers(newPixelBuffer(img), k, rand.New(rand.NewSource(rand.Int63())))
}

// ExtractColorLayersRand is ExtractColorLayers driven by rng.
func ExtractColorLayersRand(img image.Image, k int, rng *rand.Rand) *ColorLayerMap {
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	return extractColorLayers(newPixelBuffer(img), k, rng)
}

func extractColorLayers(px pixelBuffer, k int, rng *rand.Rand) *ColorLayerMap {
	w, h := px.W, px.H
	total := w * h
	if total == 0 {
		return &ColorLayerMap{W: w, H: h, Labels: []int32{}, Layers: []ColorLayer{}}
	}
	if k < 1 {
		k = 1
	}
	if k > total {
		k = total
	}

	centroids := initCentroids(px, k, rng)
	refineCentroids(px, centroids, rng)

	// Final assignment is a full scan, no subsampling.
	labels := make([]int32, total)
	counts := make([]int, len(centroids))
	sums := make([][3]float64, len(centroids))
	for i := 0; i < total; i++ {
		off := i * 3
		ci := nearestCentroid(centroids, float64(px.Pix[off]), float64(px.Pix[off+1]), float64(px.Pix[off+2]))
		labels[i] = int32(ci)
		counts[ci]++
		sums[ci][0] += float64(px.Pix[off])
		sums[ci][1] += float64(px.Pix[off+1])
		sums[ci][2] += float64(px.Pix[off+2])
	}

	// Drop empty clusters, then sort by population descending and remap
	// the label buffer to the dense post-sort ids.
	layers := make([]ColorLayer, 0, len(centroids))
	for ci, count := range counts {
		if count == 0 {
			continue
		}
		n := float64(count) * 255.0
		layers = append(layers, ColorLayer{
			ID: ci,
			Color: colorful.Color{
				R: sums[ci][0] / n,
				G: sums[ci][1] / n,
				B: sums[ci][2] / n,
			},
			PixelCount: count,
			Ratio:      float64(count) / float64(total),
		})
	}
	slices.SortStableFunc(layers, func(a, b ColorLayer) int {
		return b.PixelCount - a.PixelCount
	})
	remap := make([]int32, len(centroids))
	for newID := range layers {
		remap[layers[newID].ID] = int32(newID)
		layers[newID].ID = newID
	}
	for i, l := range labels {
		labels[i] = remap[l]
	}

	logger().Debug("color clustering complete", "k", k, "layers", len(layers))
	return &ColorLayerMap{W: w, H: h, Labels: labels, Layers: layers}
}

// initCentroids seeds k centroids with a farthest-point heuristic: the
// first is a uniformly random pixel, each subsequent one the sampled
// pixel with the greatest minimum squared distance to the centroids
// chosen so far. Coordinates are RGB in [0,255].
func initCentroids(px pixelBuffer, k int, rng *rand.Rand) [][3]float64 {
	total := px.W * px.H
	stride := max(total/clusterInitSamples, 1)

	centroids := make([][3]float64, 0, k)
	first := rng.Intn(total) * 3
	centroids = append(centroids, [3]float64{
		float64(px.Pix[first]), float64(px.Pix[first+1]), float64(px.Pix[first+2]),
	})

	for len(centroids) < k {
		bestIdx := -1
		bestDist := -1.0
		for i := 0; i < total; i += stride {
			off := i * 3
			r := float64(px.Pix[off])
			g := float64(px.Pix[off+1])
			b := float64(px.Pix[off+2])
			minDist := math.MaxFloat64
			for _, c := range centroids {
				dr := r - c[0]
				dg := g - c[1]
				db := b - c[2]
				d := dr*dr + dg*dg + db*db
				if d < minDist {
					minDist = d
				}
			}
			if minDist > bestDist {
				bestDist = minDist
				bestIdx = i
			}
		}
		off := bestIdx * 3
		centroids = append(centroids, [3]float64{
			float64(px.Pix[off]), float64(px.Pix[off+1]), float64(px.Pix[off+2]),
		})
	}
	return centroids
}

// refineCentroids runs the fixed iteration count over a strided pixel
// sample, recomputing each centroid as the mean of its assigned
// samples. Centroids with no assigned sample keep their position.
func refineCentroids(px pixelBuffer, centroids [][3]float64, rng *rand.Rand) {
	total := px.W * px.H
	stride := max(total/clusterIterSamples, 1)

	sums := make([][3]float64, len(centroids))
	counts := make([]int, len(centroids))
	for iter := 0; iter < clusterIterations; iter++ {
		for i := range sums {
			sums[i] = [3]float64{}
			counts[i] = 0
		}
		offset := 0
		if stride > 1 {
			offset = rng.Intn(stride)
		}
		for i := offset; i < total; i += stride {
			off := i * 3
			r := float64(px.Pix[off])
			g := float64(px.Pix[off+1])
			b := float64(px.Pix[off+2])
			ci := nearestCentroid(centroids, r, g, b)
			sums[ci][0] += r
			sums[ci][1] += g
			sums[ci][2] += b
			counts[ci]++
		}
		for i := range centroids {
			if counts[i] == 0 {
				continue
			}
			n := float64(counts[i])
			centroids[i] = [3]float64{sums[i][0] / n, sums[i][1] / n, sums[i][2] / n}
		}
	}
}

func nearestCentroid(centroids [][3]float64, r, g, b float64) int {
	best := 0
	bestDist := math.MaxFloat64
	for i, c := range centroids {
		dr := r - c[0]
		dg := g - c[1]
		db := b - c[2]
		d := dr*dr + dg*dg + db*db
		if d < bestDist {
			bestDist = d
			best = i
		}
	}
	return best
}
