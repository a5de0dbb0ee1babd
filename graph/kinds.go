package graph

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/pivolan/frame_preview/domain/models"
	"github.com/pivolan/frame_preview/dtype"
	"github.com/pivolan/frame_preview/stats"
)

var nan = math.NaN()

// Options carries what chart constructors need from the caller.
type Options struct {
	// FormatDate renders date-typed axis labels. Nil leaves them verbatim.
	FormatDate func(string) string
}

// Factory constructs one chart kind.
type Factory func(values []string, index []models.IndexDescriptor, d models.SemanticDType, opts Options) (*Chart, error)

// Registry is the constructor table of available chart kinds.
type Registry map[Kind]Factory

func DefaultRegistry() Registry {
	return Registry{
		KindBar:            Bar,
		KindLine:           Line,
		KindScatter:        Scatter,
		KindCategoricalBar: CategoricalBar,
		KindHistogram:      Histogram,
	}
}

// primaryIndex returns level 0 of index, or a positional index when the
// caller has none.
func primaryIndex(index []models.IndexDescriptor, n int) models.IndexDescriptor {
	if len(index) == 0 {
		data := make([]string, n)
		for i := range data {
			data[i] = strconv.Itoa(i)
		}
		return models.IndexDescriptor{Data: data, DType: models.DTypeNum, Level: 0}
	}
	return index[0]
}

func axisLabels(index []models.IndexDescriptor, n int, opts Options) ([]string, models.SemanticDType, error) {
	idx := primaryIndex(index, n)
	if len(idx.Data) != n {
		return nil, "", fmt.Errorf("index has %d labels for %d values", len(idx.Data), n)
	}
	labels := make([]string, n)
	copy(labels, idx.Data)
	if idx.DType == models.DTypeDate && opts.FormatDate != nil {
		for i, l := range labels {
			labels[i] = opts.FormatDate(l)
		}
	}
	return labels, idx.DType, nil
}

func Bar(values []string, index []models.IndexDescriptor, d models.SemanticDType, opts Options) (*Chart, error) {
	return series(KindBar, values, index, opts)
}

func Line(values []string, index []models.IndexDescriptor, d models.SemanticDType, opts Options) (*Chart, error) {
	return series(KindLine, values, index, opts)
}

func series(kind Kind, values []string, index []models.IndexDescriptor, opts Options) (*Chart, error) {
	nums, err := parseValues(values)
	if err != nil {
		return nil, err
	}
	labels, indexDType, err := axisLabels(index, len(values), opts)
	if err != nil {
		return nil, err
	}
	c := newChart(kind, labels, nums, indexDType)
	c.keys = primaryIndex(index, len(values)).Data
	return c, nil
}

func Scatter(values []string, index []models.IndexDescriptor, d models.SemanticDType, opts Options) (*Chart, error) {
	nums, err := parseValues(values)
	if err != nil {
		return nil, err
	}
	idx := primaryIndex(index, len(values))
	labels, indexDType, err := axisLabels(index, len(values), opts)
	if err != nil {
		return nil, err
	}

	xs := make([]float64, len(values))
	for i, raw := range idx.Data {
		x, err := parseNumber(raw, idx.DType)
		if err != nil {
			x = float64(i)
		}
		xs[i] = x
	}

	c := newChart(KindScatter, labels, nums, indexDType)
	c.XValues = xs
	c.keys = idx.Data
	return c, nil
}

// CategoricalBar counts the distinct values of a column, in first-seen order.
func CategoricalBar(values []string, index []models.IndexDescriptor, d models.SemanticDType, opts Options) (*Chart, error) {
	counts := Frequencies(values)

	labels := make([]string, len(counts))
	freq := make([]string, len(counts))
	for i, vc := range counts {
		labels[i] = vc.Value
		freq[i] = strconv.FormatInt(vc.Count, 10)
	}

	c, err := Bar(freq, []models.IndexDescriptor{{Data: labels, DType: d, Level: 0}}, models.DTypeNum, opts)
	if err != nil {
		return nil, err
	}
	c.Kind = KindCategoricalBar
	c.mapper = func(p DataPoint) int {
		return indexOf(labels, p.Value)
	}
	return c, nil
}

// Frequencies groups values by identity keeping first-seen order.
func Frequencies(values []string) []models.ValueCount {
	positions := map[string]int{}
	var counts []models.ValueCount
	for _, v := range values {
		i, ok := positions[v]
		if !ok {
			i = len(counts)
			positions[v] = i
			counts = append(counts, models.ValueCount{Value: v})
		}
		counts[i].Count++
	}
	for i := range counts {
		counts[i].Percent = float64(counts[i].Count) / float64(len(values)) * 100
	}
	return counts
}

// Histogram bins a numeric (or date) column and charts the bin counts with
// the left bin edges as labels.
func Histogram(values []string, index []models.IndexDescriptor, d models.SemanticDType, opts Options) (*Chart, error) {
	sample, err := parseSample(values, d)
	if err != nil {
		return nil, err
	}
	bins, err := stats.ComputeBins(sample)
	if err != nil {
		return nil, err
	}
	hist := stats.Partition(sample, bins.Edges)

	labels := make([]string, len(hist))
	counts := make([]string, len(hist))
	for i, h := range hist {
		labels[i] = edgeLabel(h.RangeStart, d)
		counts[i] = strconv.Itoa(h.Count)
	}

	c, err := Bar(counts, []models.IndexDescriptor{{Data: labels, DType: d, Level: 0}}, models.DTypeNum, opts)
	if err != nil {
		return nil, err
	}
	c.Kind = KindHistogram
	c.Edges = bins.Edges
	c.mapper = func(p DataPoint) int {
		if dtype.IsMissing(p.Value) {
			return -1
		}
		v, err := parseNumber(p.Value, d)
		if err != nil {
			return -1
		}
		return stats.BinIndex(bins.Edges, v)
	}
	return c, nil
}

func edgeLabel(edge float64, d models.SemanticDType) string {
	if d == models.DTypeDate {
		return time.Unix(int64(edge), 0).UTC().Format("2006-01-02 15:04:05")
	}
	return strconv.FormatFloat(edge, 'f', -1, 64)
}
