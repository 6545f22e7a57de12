package layerseg

import (
	"image"

	"github.com/lucasb-eyer/go-colorful"
)

var (
	dx4 = [4]int{1, -1, 0, 0}
	dy4 = [4]int{0, 0, 1, -1}
)

// SegmentImage runs the edge-based path up to the cleaned segmentation
// map: Sobel edge detection, thresholding at edgeThreshold, 4-connected
// flood fill over non-edge pixels and nearest-color reassignment of the
// edge pixels themselves. Edge pixels with no labeled neighbor at scan
// time stay -1.
func SegmentImage(img image.Image, edgeThreshold uint8) *SegmentationMap {
	px := newPixelBuffer(img)
	edges := ThresholdEdges(detectEdges(px), edgeThreshold)
	m := labelRegions(px, edges)
	assignEdgePixels(px, m)
	logger().Debug("segmentation complete",
		"width", m.W, "height", m.H,
		"segments", len(m.Segments),
		"orphans", m.countUnassigned())
	return m
}

// labelRegions flood-fills every unlabeled non-edge pixel with the next
// sequential id. The work-list is an explicit stack; regions can span
// the whole image so recursion is out of the question. Bounding box and
// mean color accumulate over exactly the flooded pixels.
func labelRegions(px pixelBuffer, edges *EdgeMap) *SegmentationMap {
	w, h := px.W, px.H
	labels := make([]int32, w*h)
	for i := range labels {
		labels[i] = -1
	}

	var segments []Segment
	stack := make([]int32, 0, 256)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			start := labelOffset(w, x, y)
			if labels[start] != -1 || edges.Pix[start] != 0 {
				continue
			}
			id := int32(len(segments))
			labels[start] = id
			stack = append(stack[:0], int32(start))

			minX, minY, maxX, maxY := x, y, x, y
			var sumR, sumG, sumB float64
			area := 0
			for len(stack) > 0 {
				cur := int(stack[len(stack)-1])
				stack = stack[:len(stack)-1]
				cx := cur % w
				cy := cur / w

				off := cur * 3
				sumR += float64(px.Pix[off])
				sumG += float64(px.Pix[off+1])
				sumB += float64(px.Pix[off+2])
				area++
				if cx < minX {
					minX = cx
				}
				if cx > maxX {
					maxX = cx
				}
				if cy < minY {
					minY = cy
				}
				if cy > maxY {
					maxY = cy
				}

				for k := 0; k < 4; k++ {
					nx, ny := cx+dx4[k], cy+dy4[k]
					if nx < 0 || nx >= w || ny < 0 || ny >= h {
						continue
					}
					nIdx := labelOffset(w, nx, ny)
					if labels[nIdx] == -1 && edges.Pix[nIdx] == 0 {
						labels[nIdx] = id
						stack = append(stack, int32(nIdx))
					}
				}
			}

			// area > 0 always: a fill only starts from an unlabeled
			// non-edge pixel.
			n := float64(area) * 255.0
			segments = append(segments, Segment{
				ID:    int(id),
				Rect:  image.Rect(minX, minY, maxX+1, maxY+1),
				Color: colorful.Color{R: sumR / n, G: sumG / n, B: sumB / n},
				Area:  area,
			})
		}
	}
	return &SegmentationMap{W: w, H: h, Labels: labels, Segments: segments}
}

func (m *SegmentationMap) countUnassigned() int {
	n := 0
	for _, l := range m.Labels {
		if l < 0 {
			n++
		}
	}
	return n
}
