package graph

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/pivolan/frame_preview/domain/models"
	"github.com/pivolan/frame_preview/dtype"
	"github.com/pivolan/frame_preview/stats"
)

var ErrDestroyed = errors.New("chart has been destroyed")

// DataPoint is a hovered table cell: the row's index label and the cell value.
type DataPoint struct {
	Index string
	Value string
}

// Chart is one constructed preview.
type Chart struct {
	Kind       Kind
	Labels     []string
	Values     []float64
	XValues    []float64 // scatter only
	IndexDType models.SemanticDType
	Edges      []float64 // histogram only
	Tooltips   *Tooltips

	// keys are the raw index labels behind Labels, which may be
	// reformatted for display.
	keys      []string
	mapper    func(DataPoint) int
	destroyed bool
}

func newChart(kind Kind, labels []string, values []float64, indexDType models.SemanticDType) *Chart {
	return &Chart{
		Kind:       kind,
		Labels:     labels,
		Values:     values,
		keys:       labels,
		IndexDType: indexDType,
		Tooltips:   NewTooltips(len(values)),
	}
}

// Name matches the kind the chart was built from.
func (c *Chart) Name() string {
	return c.Kind.String()
}

func (c *Chart) HasMapper() bool {
	return c.mapper != nil
}

// MapDataPoint translates a hovered cell into the index of the rendered point
// describing it, or -1.
func (c *Chart) MapDataPoint(p DataPoint) int {
	if c.mapper != nil {
		return c.mapper(p)
	}
	return indexOf(c.keys, p.Index)
}

func (c *Chart) Destroy() {
	c.Tooltips.HideAll()
	c.destroyed = true
}

func (c *Chart) Destroyed() bool {
	return c.destroyed
}

func indexOf(labels []string, s string) int {
	for i, l := range labels {
		if l == s {
			return i
		}
	}
	return -1
}

// parseValues turns cells into numbers keeping positions; missing cells
// become NaN.
func parseValues(values []string) ([]float64, error) {
	nums := make([]float64, len(values))
	for i, v := range values {
		if dtype.IsMissing(v) {
			nums[i] = nan
			continue
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", stats.ErrNotNumeric, v)
		}
		nums[i] = f
	}
	return nums, nil
}

// parseSample converts cells to numbers for binning, dropping missing ones.
// Dates become Unix seconds.
func parseSample(values []string, d models.SemanticDType) ([]float64, error) {
	sample := make([]float64, 0, len(values))
	for _, v := range values {
		if dtype.IsMissing(v) {
			continue
		}
		f, err := parseNumber(v, d)
		if err != nil {
			return nil, err
		}
		sample = append(sample, f)
	}
	return sample, nil
}

func parseNumber(v string, d models.SemanticDType) (float64, error) {
	if d == models.DTypeDate {
		t, err := dtype.ParseDate(v)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", stats.ErrNotNumeric, v)
		}
		return float64(t.Unix()), nil
	}
	if d == models.DTypeBoolean {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true":
			return 1, nil
		case "false":
			return 0, nil
		}
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", stats.ErrNotNumeric, v)
	}
	return f, nil
}
