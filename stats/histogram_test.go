package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuantile(t *testing.T) {
	sorted := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	assert.InDelta(t, 3.25, Quantile(sorted, 0.25), 1e-9)
	assert.InDelta(t, 7.75, Quantile(sorted, 0.75), 1e-9)
	assert.InDelta(t, 5.5, Quantile(sorted, 0.5), 1e-9)
	assert.Equal(t, 0.0, Quantile(nil, 0.5))
}

func TestComputeBins(t *testing.T) {
	tests := []struct {
		name      string
		sample    []float64
		wantCount int
		wantWidth float64
		wantEdges []float64
	}{
		{
			name:      "Freedman-Diaconis",
			sample:    []float64{10, 9, 8, 7, 6, 5, 4, 3, 2, 1},
			wantCount: 3,
			wantWidth: 2 * 4.5 * math.Pow(10, -1.0/3.0),
			wantEdges: []float64{0, 2, 4, 6, 8, 10},
		},
		{
			name:      "Sturges when IQR is zero",
			sample:    []float64{1, 1, 1, 1, 1, 1, 1, 1, 5},
			wantCount: 5,
			wantWidth: 4 / (math.Log2(9) + 1),
			wantEdges: []float64{1, 2, 3, 4, 5},
		},
		{
			name:      "Constant sample",
			sample:    []float64{3, 3, 3},
			wantCount: 1,
			wantWidth: 0,
			wantEdges: []float64{3, 3},
		},
		{
			name:      "Single value",
			sample:    []float64{-2},
			wantCount: 1,
			wantWidth: 0,
			wantEdges: []float64{-2, -2},
		},
		{
			name:      "Fractional range",
			sample:    []float64{0.1, 0.2, 0.3, 0.4},
			wantCount: 2,
			wantWidth: 2 * 0.15 * math.Pow(4, -1.0/3.0),
			wantEdges: []float64{0, 0.2, 0.4},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bins, err := ComputeBins(tt.sample)
			require.NoError(t, err)
			assert.Equal(t, tt.wantCount, bins.Count)
			assert.InDelta(t, tt.wantWidth, bins.Width, 1e-9)
			require.Len(t, bins.Edges, len(tt.wantEdges))
			for i := range tt.wantEdges {
				assert.InDelta(t, tt.wantEdges[i], bins.Edges[i], 1e-9)
			}
			assert.False(t, math.IsInf(float64(bins.Count), 0))
		})
	}
}

func TestComputeBinsDoesNotSortInput(t *testing.T) {
	sample := []float64{3, 1, 2}
	_, err := ComputeBins(sample)
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 1, 2}, sample)
}

func TestComputeBinsErrors(t *testing.T) {
	_, err := ComputeBins(nil)
	assert.ErrorIs(t, err, ErrEmptySample)

	_, err = ComputeBins([]float64{1, math.NaN()})
	assert.ErrorIs(t, err, ErrNotNumeric)

	_, err = ComputeBins([]float64{1, math.Inf(1)})
	assert.ErrorIs(t, err, ErrNotNumeric)
}

func TestPartition(t *testing.T) {
	sample := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	bins, err := ComputeBins(sample)
	require.NoError(t, err)

	hist := Partition(sample, bins.Edges)
	require.Len(t, hist, 5)

	counts := make([]int, len(hist))
	total := 0
	for i, h := range hist {
		counts[i] = h.Count
		total += h.Count
	}
	assert.Equal(t, []int{1, 2, 2, 2, 3}, counts)
	assert.Equal(t, len(sample), total)
	assert.Equal(t, 8.0, hist[4].RangeStart)
	assert.Equal(t, 10.0, hist[4].RangeEnd)
}

func TestPartitionConstant(t *testing.T) {
	hist := Partition([]float64{7, 7}, []float64{7, 7})
	require.Len(t, hist, 1)
	assert.Equal(t, 2, hist[0].Count)
	assert.Nil(t, Partition([]float64{1}, []float64{1}))
}

func TestBinIndexRoundTrip(t *testing.T) {
	sample := []float64{0.5, 1.7, 2.2, 2.9, 3.3, 4.8, 5.1, 7.4, 9.9, 12.0, 12.5}
	bins, err := ComputeBins(sample)
	require.NoError(t, err)
	hist := Partition(sample, bins.Edges)

	for _, v := range sample {
		i := BinIndex(bins.Edges, v)
		require.GreaterOrEqual(t, i, 0)
		assert.LessOrEqual(t, hist[i].RangeStart, v)
		assert.GreaterOrEqual(t, hist[i].RangeEnd, v)
	}
}

func TestBinIndex(t *testing.T) {
	edges := []float64{0, 2, 4, 6}
	tests := []struct {
		value float64
		want  int
	}{
		{-1, -1},
		{0, 0},
		{1.99, 0},
		{2, 1},
		{5, 2},
		{6, 2},
		{6.01, -1},
		{math.NaN(), -1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, BinIndex(edges, tt.value), "value %v", tt.value)
	}
	assert.Equal(t, -1, BinIndex(nil, 1))
}

func TestPartitionIsCapped(t *testing.T) {
	sample := make([]float64, 0, 2002)
	for i := 0; i < 1000; i++ {
		sample = append(sample, 0, 1)
	}
	sample = append(sample, 0.5, 1e6)

	bins, err := ComputeBins(sample)
	require.NoError(t, err)
	assert.Equal(t, maxPartitionBins, bins.Count)
	assert.LessOrEqual(t, len(bins.Edges)-1, 2*maxPartitionBins)
}

func TestComputeBinsHugeOutlier(t *testing.T) {
	sample := []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 1e22}

	bins, err := ComputeBins(sample)
	require.NoError(t, err)
	assert.Equal(t, maxPartitionBins, bins.Count)
	assert.Greater(t, len(bins.Edges), 2)

	hist := Partition(sample, bins.Edges)
	assert.Equal(t, 10, hist[0].Count)
	assert.Equal(t, 1, hist[len(hist)-1].Count)
}
