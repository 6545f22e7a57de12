package layerseg

import "math"

// Fixed 8-direction scan order. Ties on color distance are broken by
// the first neighbor encountered in this order.
var neighbors8 = [8][2]int{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// assignEdgePixels resolves the -1 pixels left behind by the edge
// barrier. Each is handed to the 8-neighbor segment whose
// representative color is closest in squared RGB distance. The
// representative colors are captured once before the scan; pixels
// appended here do not shift them. Pixels with no labeled neighbor stay
// -1 permanently.
func assignEdgePixels(px pixelBuffer, m *SegmentationMap) {
	w, h := m.W, m.H
	colors := make([][3]float64, len(m.Segments))
	for i, s := range m.Segments {
		colors[i] = [3]float64{s.Color.R, s.Color.G, s.Color.B}
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx := labelOffset(w, x, y)
			if m.Labels[idx] != -1 {
				continue
			}
			pr, pg, pb := px.colorAt(idx)

			best := int32(-1)
			bestDist := math.MaxFloat64
			for _, d := range neighbors8 {
				nx, ny := x+d[0], y+d[1]
				if nx < 0 || nx >= w || ny < 0 || ny >= h {
					continue
				}
				nl := m.Labels[labelOffset(w, nx, ny)]
				if nl < 0 {
					continue
				}
				c := colors[nl]
				dr := pr - c[0]
				dg := pg - c[1]
				db := pb - c[2]
				dist := dr*dr + dg*dg + db*db
				if dist < bestDist {
					bestDist = dist
					best = nl
				}
			}
			if best < 0 {
				continue // orphan edge cluster, legitimate terminal state
			}
			m.Labels[idx] = best
			seg := &m.Segments[best]
			seg.Area++
			if x < seg.Rect.Min.X {
				seg.Rect.Min.X = x
			}
			if x+1 > seg.Rect.Max.X {
				seg.Rect.Max.X = x + 1
			}
			if y < seg.Rect.Min.Y {
				seg.Rect.Min.Y = y
			}
			if y+1 > seg.Rect.Max.Y {
				seg.Rect.Max.Y = y + 1
			}
		}
	}
}
