package stats

import (
	"math"
	"sort"
)

type NumberStats struct {
	Average  float64
	Median   float64
	Min      float64
	Max      float64
	Count    int
	IQR      float64
	Outliers []float64
}

// findOutliers returns the values outside 1.5 IQR of the quartiles
func findOutliers(numbers []float64, q1 float64, q3 float64, iqr float64) []float64 {
	outliers := make([]float64, 0)
	lowerBound := q1 - 1.5*iqr
	upperBound := q3 + 1.5*iqr

	for _, num := range numbers {
		if num < lowerBound || num > upperBound {
			outliers = append(outliers, num)
		}
	}
	return outliers
}

// Summarize computes the describe metrics of a numeric column.
func Summarize(numbers []float64) *NumberStats {
	if len(numbers) == 0 {
		return nil
	}

	sorted := make([]float64, len(numbers))
	copy(sorted, numbers)
	sort.Float64s(sorted)

	sum := 0.0
	for _, num := range numbers {
		sum += num
	}
	avg := sum / float64(len(numbers))

	q1 := Quantile(sorted, 0.25)
	q3 := Quantile(sorted, 0.75)
	iqr := q3 - q1

	return &NumberStats{
		Average:  roundToTwo(avg),
		Median:   roundToTwo(Quantile(sorted, 0.5)),
		Min:      roundToTwo(sorted[0]),
		Max:      roundToTwo(sorted[len(sorted)-1]),
		Count:    len(numbers),
		IQR:      roundToTwo(iqr),
		Outliers: findOutliers(numbers, q1, q3, iqr),
	}
}

func roundToTwo(num float64) float64 {
	return math.Round(num*100) / 100
}
