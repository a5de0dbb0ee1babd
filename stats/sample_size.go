package stats

import (
	"math"
	"strconv"

	moremath "github.com/aclements/go-moremath/stats"
)

const (
	DefaultConfidence  = 0.975
	DefaultMarginError = 0.02
	DefaultProportion  = 0.5
)

// SampleSize is the representative sample size for a population of n rows
// (normal approximation with finite population correction), rounded up by
// SmartCeil.
func SampleSize(n int, ci, e, p float64) int {
	if n <= 0 {
		return 0
	}
	z := moremath.StdNormal.InvCDF(1 - (1-ci)/2)
	u := z * z * p * (1 - p) / (e * e)

	return SmartCeil(u / (1 + u/float64(n)))
}

// SmartCeil rounds x up to the nearest 10, 100 or 1000 depending on its
// number of digits.
func SmartCeil(x float64) int {
	order := len(strconv.Itoa(int(math.Ceil(x))))
	if order > 3 {
		order = 3
	}
	mod := math.Pow(10, float64(order))
	return int(math.Ceil(x/mod) * mod)
}
