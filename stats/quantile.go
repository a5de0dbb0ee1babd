package stats

import (
	"math"
)

// Quantile returns the p-quantile of an ascending sample using linear
// interpolation between the closest ranks.
func Quantile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}

	pos := p * float64(len(sorted)-1)
	floor := math.Floor(pos)
	ceil := math.Ceil(pos)

	if floor == ceil {
		return sorted[int(pos)]
	}

	lower := sorted[int(floor)]
	upper := sorted[int(ceil)]
	fraction := pos - floor

	return lower + fraction*(upper-lower)
}

// IQR is the interquartile range of an ascending sample.
func IQR(sorted []float64) float64 {
	return Quantile(sorted, 0.75) - Quantile(sorted, 0.25)
}

func findMinMax(sorted []float64) (float64, float64) {
	return sorted[0], sorted[len(sorted)-1]
}
