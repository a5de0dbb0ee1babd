package plot

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pivolan/frame_preview/domain/models"
	"github.com/pivolan/frame_preview/graph"
)

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

func TestRenderPNG(t *testing.T) {
	values := []string{"1", "2", "2", "3", "5", "8", "13"}

	for kind, factory := range graph.DefaultRegistry() {
		t.Run(kind.String(), func(t *testing.T) {
			c, err := factory(values, nil, models.DTypeNum, graph.Options{})
			require.NoError(t, err)

			b, err := RenderPNG(c, Size{})
			require.NoError(t, err)
			assert.True(t, bytes.HasPrefix(b, pngSignature))
		})
	}
}

func TestRenderPNGHighlightsActivePoints(t *testing.T) {
	c, err := graph.Bar([]string{"1", "2", "3"}, nil, models.DTypeNum, graph.Options{})
	require.NoError(t, err)

	plain, err := RenderPNG(c, DefaultSize)
	require.NoError(t, err)

	c.Tooltips.Show(1)
	active, err := RenderPNG(c, DefaultSize)
	require.NoError(t, err)

	assert.NotEqual(t, plain, active)
}

func TestRenderPNGEmptyAndMissing(t *testing.T) {
	c, err := graph.Bar([]string{}, nil, models.DTypeNum, graph.Options{})
	require.NoError(t, err)
	b, err := RenderPNG(c, Size{Width: 20, Height: 10})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, pngSignature))

	c, err = graph.Line([]string{"", "NaN", ""}, nil, models.DTypeNum, graph.Options{})
	require.NoError(t, err)
	b, err = RenderPNG(c, DefaultSize)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, pngSignature))
}

func TestRenderPNGConstantHistogram(t *testing.T) {
	c, err := graph.Histogram([]string{"4", "4", "4"}, nil, models.DTypeNum, graph.Options{})
	require.NoError(t, err)

	b, err := RenderPNG(c, DefaultSize)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, pngSignature))
}

func TestRenderDestroyedChart(t *testing.T) {
	c, err := graph.Bar([]string{"1"}, nil, models.DTypeNum, graph.Options{})
	require.NoError(t, err)
	c.Destroy()

	_, err = RenderPNG(c, DefaultSize)
	assert.ErrorIs(t, err, graph.ErrDestroyed)

	_, err = RenderECharts(c, "chart", DefaultSize)
	assert.ErrorIs(t, err, graph.ErrDestroyed)
}

func TestRenderECharts(t *testing.T) {
	c, err := graph.CategoricalBar([]string{"apple", "pear", "apple"}, nil, models.DTypeString, graph.Options{})
	require.NoError(t, err)
	c.Tooltips.Show(0)

	b, err := RenderECharts(c, "preview-chart-0", Size{Width: 200, Height: 80})
	require.NoError(t, err)

	page := string(b)
	assert.Contains(t, page, "preview-chart-0")
	assert.Contains(t, page, "apple")
	assert.Contains(t, page, activeColorHex)
	assert.True(t, strings.Contains(page, "200px"))
}

func TestEchartsValue(t *testing.T) {
	assert.Equal(t, "-", echartsValue(math.NaN()))
	assert.Equal(t, 2.5, echartsValue(2.5))
}

func TestDataURL(t *testing.T) {
	assert.Equal(t, "data:image/png;base64,iVBORw0KGgo=", DataURL(pngSignature))
}

func TestBarValuesLabels(t *testing.T) {
	d := NewDataRangeXValuesForGraph([]float64{0, 2, 4}, []float64{3, 1}, []int{1}, "histogram")
	bars := d.generateBarValues()

	require.Len(t, bars, 2)
	assert.Equal(t, "0-2", bars[0].Label)
	assert.Equal(t, "2-4", bars[1].Label)
	assert.Equal(t, barColor, bars[0].Style.FillColor)
	assert.Equal(t, activeColor, bars[1].Style.FillColor)
}

func TestSeriesRanges(t *testing.T) {
	d := NewDataSeriesForGraph([]float64{1, 2, 3}, []float64{5, math.NaN(), 5}, []int{2}, "scatter")

	assert.Equal(t, 2, d.lenXValues())
	assert.Equal(t, []float64{3}, d.activeX)

	xMin, xMax, yMin, yMax := d.ranges()
	assert.Equal(t, 1.0, xMin)
	assert.Equal(t, 3.0, xMax)
	assert.Equal(t, 0.0, yMin)
	assert.Equal(t, 5.0, yMax)
}
