package layerseg

import (
	"image"
	"math/rand"
)

type Options struct {
	// Minimum Sobel gradient magnitude treated as an edge, in [1,255].
	// Ideal start: 30-60. Too low fragments flat areas into many tiny
	// segments and inflates the O(n^2) merge; too high lets distinct
	// regions bleed together.
	EdgeThreshold uint8
	// Maximum Oklab distance at which two segments merge into one
	// layer. Black to white is ~1.0. Ideal start: 0.05-0.12.
	// Higher values collapse more of the image into fewer layers.
	ColorThreshold float64
	// Segments smaller than this pixel count are absorbed into the
	// large segment with the closest color before pairwise merging.
	// Image-size dependent; ideal start: ~area/2000.
	MinArea int
	// Number of color clusters for the clustering path. Ideal start:
	// 4-8 for hero-image style layering.
	Clusters int
	// Rand drives centroid initialization and iteration sampling in
	// the clustering path. Nil means an unseeded source; inject a
	// seeded one for reproducible output.
	Rand *rand.Rand
}

func DefaultOptions() Options {
	return Options{
		EdgeThreshold:  40,
		ColorThreshold: 0.08,
		MinArea:        64,
		Clusters:       6,
	}
}

func OptionsFromSize(size image.Point) Options {
	opt := DefaultOptions()
	if size.X <= 0 || size.Y <= 0 {
		return opt
	}
	pixels := size.X * size.Y
	opt.MinArea = max(16, min(4096, pixels/2000))
	return opt
}

// BuildLayers runs the full edge-based path: segmentation followed by
// perceptual color merging.
func BuildLayers(img image.Image, opt Options) *LayeredSegmentationMap {
	m := SegmentImage(img, opt.EdgeThreshold)
	return MergeSegmentsByColor(m, opt.ColorThreshold, opt.MinArea)
}

// ClusterLayers runs the independent clustering path with the
// configured cluster count and random source.
func ClusterLayers(img image.Image, opt Options) *ColorLayerMap {
	return ExtractColorLayersRand(img, opt.Clusters, opt.Rand)
}
