package layerseg

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// OklabDistance returns the Euclidean distance between two colors in
// the Oklab color space. Oklab is close to perceptually uniform, so
// the distance approximates human-perceived color difference; black to
// white measures ~1.0. This is the merge criterion consumed by
// MergeSegmentsByColor.
func OklabDistance(a, b colorful.Color) float64 {
	l1, a1, b1 := oklab(a)
	l2, a2, b2 := oklab(b)
	dl := l1 - l2
	da := a1 - a2
	db := b1 - b2
	return math.Sqrt(dl*dl + da*da + db*db)
}

// oklab converts an sRGB color to Oklab (Ottosson's matrices applied
// to linear RGB).
func oklab(c colorful.Color) (L, A, B float64) {
	r, g, b := c.LinearRgb()

	l := 0.4122214708*r + 0.5363325363*g + 0.0514459929*b
	m := 0.2119034982*r + 0.6806995451*g + 0.1073969566*b
	s := 0.0883024619*r + 0.2817188376*g + 0.6299787005*b

	lc := math.Cbrt(l)
	mc := math.Cbrt(m)
	sc := math.Cbrt(s)

	L = 0.2104542553*lc + 0.7936177850*mc - 0.0040720468*sc
	A = 1.9779984951*lc - 2.4285922050*mc + 0.4505937099*sc
	B = 0.0259040371*lc + 0.7827717662*mc - 0.8086757660*sc
	return
}
