package layerseg

import (
	"math"
	"slices"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/theodesp/unionfind"
	"gonum.org/v1/gonum/stat"
)

// MergeSegmentsByColor consolidates the segments of m into coarser
// color layers. Segments smaller than minArea are first absorbed into
// the large segment with the closest Oklab color; then every segment
// pair closer than colorThreshold is unioned. The pairwise pass is
// O(n^2) in segment count — tune edgeThreshold/minArea to keep the
// segment count bounded. Layers come out sorted by TotalArea
// descending with dense ids; m itself is not modified.
func MergeSegmentsByColor(m *SegmentationMap, colorThreshold float64, minArea int) *LayeredSegmentationMap {
	n := len(m.Segments)
	if n == 0 {
		labels := make([]int32, m.W*m.H)
		for i := range labels {
			labels[i] = -1
		}
		return &LayeredSegmentationMap{Base: m, Layers: []LayerGroup{}, LayerLabels: labels}
	}

	uf := unionfind.NewThreadSafeUnionFind(n)

	// Absorb small segments into the perceptually nearest large one.
	// With no large segment at all they stay un-unioned here.
	for i := range m.Segments {
		if m.Segments[i].Area >= minArea {
			continue
		}
		best := -1
		bestDist := math.MaxFloat64
		for j := range m.Segments {
			if m.Segments[j].Area < minArea {
				continue
			}
			d := OklabDistance(m.Segments[i].Color, m.Segments[j].Color)
			if d < bestDist {
				bestDist = d
				best = j
			}
		}
		if best >= 0 {
			uf.Union(i, best)
		}
	}

	// Pairwise perceptual merge.
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if OklabDistance(m.Segments[i].Color, m.Segments[j].Color) < colorThreshold {
				uf.Union(i, j)
			}
		}
	}

	// One group per union-find root.
	groupOf := make(map[int]int)
	var layers []LayerGroup
	for i := range m.Segments {
		root := uf.Root(i)
		g, ok := groupOf[root]
		if !ok {
			g = len(layers)
			groupOf[root] = g
			layers = append(layers, LayerGroup{ID: g})
		}
		layers[g].SourceSegments = append(layers[g].SourceSegments, i)
		layers[g].TotalArea += m.Segments[i].Area
	}

	for g := range layers {
		layers[g].Color = weightedMeanColor(m.Segments, layers[g].SourceSegments)
	}

	slices.SortStableFunc(layers, func(a, b LayerGroup) int {
		return b.TotalArea - a.TotalArea
	})

	remap := make([]int32, n)
	for newID := range layers {
		layers[newID].ID = newID
		for _, sid := range layers[newID].SourceSegments {
			remap[sid] = int32(newID)
		}
	}
	layerLabels := make([]int32, len(m.Labels))
	for i, l := range m.Labels {
		if l < 0 {
			layerLabels[i] = -1
		} else {
			layerLabels[i] = remap[l]
		}
	}

	logger().Debug("merge complete", "segments", n, "layers", len(layers))
	return &LayeredSegmentationMap{Base: m, Layers: layers, LayerLabels: layerLabels}
}

// weightedMeanColor averages the member segments' original colors
// weighted by their areas.
func weightedMeanColor(segments []Segment, members []int) colorful.Color {
	rs := make([]float64, len(members))
	gs := make([]float64, len(members))
	bs := make([]float64, len(members))
	ws := make([]float64, len(members))
	for i, sid := range members {
		rs[i] = segments[sid].Color.R
		gs[i] = segments[sid].Color.G
		bs[i] = segments[sid].Color.B
		ws[i] = float64(segments[sid].Area)
	}
	return colorful.Color{
		R: stat.Mean(rs, ws),
		G: stat.Mean(gs, ws),
		B: stat.Mean(bs, ws),
	}
}
