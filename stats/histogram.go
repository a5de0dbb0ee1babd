package stats

import (
	"errors"
	"math"
	"sort"

	"github.com/pivolan/frame_preview/domain/models"
)

var (
	ErrEmptySample = errors.New("empty sample")
	ErrNotNumeric  = errors.New("sample is not numeric")
)

// the partition never grows past this many bins, whatever the estimate says
const maxPartitionBins = 256

// Bins is the histogram layout of one numeric sample.
// Count is the estimated number of bins, Edges the nice equal-width
// partition realized for it (len(Edges)-1 bins).
type Bins struct {
	Count int
	Width float64
	Edges []float64
}

// FreedmanDiaconisWidth is 2*IQR*n^(-1/3).
func FreedmanDiaconisWidth(sorted []float64) float64 {
	return 2 * IQR(sorted) * math.Pow(float64(len(sorted)), -1.0/3.0)
}

// SturgesWidth is (max-min)/(log2(n)+1).
func SturgesWidth(sorted []float64) float64 {
	min, max := findMinMax(sorted)
	return (max - min) / (math.Log2(float64(len(sorted))) + 1)
}

// AutoWidth prefers the Freedman-Diaconis width and falls back to Sturges
// when the IQR is zero.
func AutoWidth(sorted []float64) float64 {
	if fd := FreedmanDiaconisWidth(sorted); fd > 0 {
		return fd
	}
	return SturgesWidth(sorted)
}

// ComputeBins estimates the bin count of a sample and lays out the edges.
// The count is capped at maxPartitionBins. A constant sample yields one bin
// of zero width.
func ComputeBins(sample []float64) (Bins, error) {
	if len(sample) == 0 {
		return Bins{}, ErrEmptySample
	}
	sorted := make([]float64, len(sample))
	copy(sorted, sample)
	for _, v := range sorted {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Bins{}, ErrNotNumeric
		}
	}
	sort.Float64s(sorted)

	min, max := findMinMax(sorted)
	if min == max {
		return Bins{Count: 1, Width: 0, Edges: []float64{min, max}}, nil
	}

	width := AutoWidth(sorted)
	count := int(math.Min(math.Ceil((max-min)/width), maxPartitionBins))
	return Bins{Count: count, Width: width, Edges: niceEdges(min, max, count)}, nil
}

// Partition counts the sample into the bins described by edges.
// Values outside the edges are ignored; the last bin is closed.
func Partition(sample []float64, edges []float64) []models.HistogramData {
	if len(edges) < 2 {
		return nil
	}
	bins := make([]models.HistogramData, len(edges)-1)
	for i := range bins {
		bins[i].RangeStart = edges[i]
		bins[i].RangeEnd = edges[i+1]
	}
	for _, v := range sample {
		if i := BinIndex(edges, v); i >= 0 {
			bins[i].Count++
		}
	}
	return bins
}

// BinIndex returns the bin holding v, or -1 when v is outside the edges.
func BinIndex(edges []float64, v float64) int {
	if len(edges) < 2 || math.IsNaN(v) || v < edges[0] || v > edges[len(edges)-1] {
		return -1
	}
	i := sort.Search(len(edges), func(i int) bool { return edges[i] > v }) - 1
	if i > len(edges)-2 {
		i = len(edges) - 2
	}
	return i
}

var (
	e10 = math.Sqrt(50)
	e5  = math.Sqrt(10)
	e2  = math.Sqrt(2)
)

// tickIncrement returns a 1, 2 or 5 times power of ten step for roughly
// count ticks over [start, stop]. Steps below one come back negated and
// inverted so that edges can be computed without accumulating error.
func tickIncrement(start, stop float64, count int) float64 {
	step := (stop - start) / math.Max(1, float64(count))
	power := math.Floor(math.Log10(step))
	e := step / math.Pow(10, power)

	factor := 1.0
	switch {
	case e >= e10:
		factor = 10
	case e >= e5:
		factor = 5
	case e >= e2:
		factor = 2
	}

	if power >= 0 {
		return factor * math.Pow(10, power)
	}
	return -math.Pow(10, -power) / factor
}

func niceEdges(min, max float64, count int) []float64 {
	if count > maxPartitionBins {
		count = maxPartitionBins
	}
	inc := tickIncrement(min, max, count)

	var edges []float64
	if inc > 0 {
		lo, hi := math.Floor(min/inc), math.Ceil(max/inc)
		for i := lo; i <= hi; i++ {
			edges = append(edges, i*inc)
		}
	} else {
		inv := -inc
		lo, hi := math.Floor(min*inv), math.Ceil(max*inv)
		for i := lo; i <= hi; i++ {
			edges = append(edges, i/inv)
		}
	}
	if len(edges) < 2 {
		edges = []float64{min, max}
	}
	return edges
}
