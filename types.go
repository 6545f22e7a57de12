// Package layerseg decomposes a raster photo into discrete
// color-homogeneous regions usable as stacked layers.
//
// Two independent paths are provided. The edge-based path runs Sobel
// edge detection, flood-fill region labeling, edge-pixel reassignment
// and perceptual color merging:
//
//	m := layerseg.SegmentImage(img, 40)
//	layered := layerseg.MergeSegmentsByColor(m, 0.08, 64)
//
// The clustering path groups raw pixels into K color layers directly:
//
//	clustered := layerseg.ExtractColorLayers(img, 6)
//
// Every call allocates fresh buffers and returns a fully materialized
// result; nothing is shared between invocations.
package layerseg

import (
	"image"

	"github.com/lucasb-eyer/go-colorful"
)

// Segment is a maximal 4-connected region of non-edge pixels produced
// by flood fill. Color is the arithmetic mean RGB of the pixels that
// were flooded; edge pixels assigned afterwards do not shift it.
type Segment struct {
	ID    int
	Rect  image.Rectangle
	Color colorful.Color
	Area  int
}

// SegmentationMap maps every pixel to a segment id. A label of -1
// marks a pixel that is an edge with no resolvable neighbor. Segment
// ids are dense and index directly into Segments.
type SegmentationMap struct {
	W, H     int
	Labels   []int32 // len = W*H, row-major
	Segments []Segment
}

// LayerGroup is a set of segments consolidated into one color layer.
// Color is the area-weighted mean RGB over the member segments'
// original colors and TotalArea the sum of their areas.
type LayerGroup struct {
	ID             int
	Color          colorful.Color
	TotalArea      int
	SourceSegments []int
}

// LayeredSegmentationMap is the output of MergeSegmentsByColor. Layers
// are sorted by TotalArea descending with dense ids; LayerLabels maps
// every pixel to a layer id (-1 stays -1). Base is the pre-merge map,
// unchanged.
type LayeredSegmentationMap struct {
	Base        *SegmentationMap
	Layers      []LayerGroup
	LayerLabels []int32
}

// ColorLayer is one k-means color cluster over the raw pixels.
type ColorLayer struct {
	ID         int
	Color      colorful.Color
	PixelCount int
	Ratio      float64 // PixelCount / total pixels
}

// ColorLayerMap is the output of ExtractColorLayers. Layers are sorted
// by PixelCount descending with dense ids.
type ColorLayerMap struct {
	W, H   int
	Labels []int32
	Layers []ColorLayer
}
