package skeleton

import (
	"github.com/Faultbox/midgard-flora/pkg/curve"
)

// ComputeLocations spreads count attachment points over [lo, hi] so that
// their spacing follows the density profile. The density is sampled at
// i/count, integrated, and each location is the midpoint of its cell in the
// normalized cumulative sum. An unset or non-positive density yields uniform
// spacing.
func ComputeLocations(count int, density curve.Source, lo, hi float32) []float32 {
	if count <= 0 {
		return nil
	}

	cum := make([]float32, count+1)
	for i := 0; i < count; i++ {
		d := density.SampleOr(float32(i)/float32(count), 1)
		cum[i+1] = cum[i] + max(d, 0)
	}
	total := cum[count]

	locs := make([]float32, count)
	for i := range locs {
		var mid float32
		if total > 0 {
			mid = (cum[i] + cum[i+1]) / (2 * total)
		} else {
			mid = (float32(i) + 0.5) / float32(count)
		}
		locs[i] = lo + mid*(hi-lo)
	}
	return locs
}
