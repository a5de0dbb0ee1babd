package plot

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/pivolan/frame_preview/graph"
)

var previewPadding = chart.Box{Top: 5, Left: 2, Right: 2, Bottom: 5}

// RenderPNG draws the preview canvas of c. Tooltip points active on the chart
// are highlighted.
func RenderPNG(c *graph.Chart, size Size) ([]byte, error) {
	if c.Destroyed() {
		return nil, graph.ErrDestroyed
	}
	size = size.orDefault()
	active := c.Tooltips.Active()

	switch c.Kind {
	case graph.KindLine, graph.KindScatter:
		data := NewDataSeriesForGraph(c.XValues, c.Values, active, c.Name())
		if data.lenXValues() == 0 {
			return blankPNG(size)
		}
		return DrawPlotSeries(data, c.Kind == graph.KindScatter, size)
	case graph.KindHistogram:
		if len(c.Values) == 0 {
			return blankPNG(size)
		}
		return DrawPlotBar(NewDataRangeXValuesForGraph(c.Edges, c.Values, active, c.Name()), size)
	default:
		if len(c.Values) == 0 {
			return blankPNG(size)
		}
		return DrawPlotBar(NewDataXStringsForGraph(c.Labels, c.Values, active, c.Name()), size)
	}
}

func DrawPlotBar(data dataForGraph, size Size) ([]byte, error) {
	barValues := data.generateBarValues()

	yMin := math.Min(0, findMinValue(data.getYValues()))
	yMax := findMaxValue(data.getYValues())
	if yMax <= yMin {
		yMax = yMin + 1
	}

	barWidth := (size.Width - previewPadding.Left - previewPadding.Right) / len(barValues)
	if barWidth > 2 {
		barWidth = barWidth * 4 / 5
	}
	if barWidth < 1 {
		barWidth = 1
	}

	bar := chart.BarChart{
		Title:      data.GetNameGraph(),
		TitleStyle: chart.Hidden(),
		Width:      size.Width,
		Height:     size.Height,
		Background: chart.Style{Padding: previewPadding},
		BarWidth:   barWidth,
		BarSpacing: 1,
		Bars:       barValues,
		XAxis:      chart.Hidden(),
		YAxis: chart.YAxis{
			Style: chart.Hidden(),
			Range: &chart.ContinuousRange{
				Min: yMin,
				Max: yMax,
			},
		},
	}

	buffer := bytes.NewBuffer([]byte{})
	err := bar.Render(chart.PNG, buffer)
	if err != nil {
		return nil, fmt.Errorf("error rendering chart: %w", err)
	}

	return buffer.Bytes(), nil
}

func DrawPlotSeries(data dataSeriesForGraph, scatter bool, size Size) ([]byte, error) {
	xMin, xMax, yMin, yMax := data.ranges()

	style := chart.Style{
		StrokeColor: barColor,
		StrokeWidth: 1,
		FillColor:   barColor.WithAlpha(150),
	}
	if scatter {
		style = chart.Style{
			StrokeWidth: chart.Disabled,
			DotWidth:    2,
			DotColor:    barColor.WithAlpha(150),
		}
	}

	series := []chart.Series{
		chart.ContinuousSeries{
			Name:    data.GetNameGraph(),
			XValues: data.xValues,
			YValues: data.yValues,
			Style:   style,
		},
	}
	if len(data.activeX) > 0 {
		series = append(series, chart.ContinuousSeries{
			XValues: data.activeX,
			YValues: data.activeY,
			Style: chart.Style{
				StrokeWidth: chart.Disabled,
				DotWidth:    4,
				DotColor:    activeColor,
			},
		})
	}

	lineChart := chart.Chart{
		Title:      data.GetNameGraph(),
		TitleStyle: chart.Hidden(),
		Width:      size.Width,
		Height:     size.Height,
		Background: chart.Style{Padding: previewPadding},
		XAxis: chart.XAxis{
			Style: chart.Hidden(),
			Range: &chart.ContinuousRange{Min: xMin, Max: xMax},
		},
		YAxis: chart.YAxis{
			Style: chart.Hidden(),
			Range: &chart.ContinuousRange{Min: yMin, Max: yMax},
		},
		Series: series,
	}

	buffer := bytes.NewBuffer([]byte{})
	err := lineChart.Render(chart.PNG, buffer)
	if err != nil {
		return nil, fmt.Errorf("error rendering chart: %w", err)
	}

	return buffer.Bytes(), nil
}

// blankPNG stands in for charts with nothing to draw; go-chart refuses
// empty series.
func blankPNG(size Size) ([]byte, error) {
	img := image.NewRGBA(image.Rect(0, 0, size.Width, size.Height))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)

	buffer := bytes.NewBuffer([]byte{})
	if err := png.Encode(buffer, img); err != nil {
		return nil, fmt.Errorf("error rendering empty chart: %w", err)
	}
	return buffer.Bytes(), nil
}

// DataURL embeds a PNG canvas into an img src.
func DataURL(pngBytes []byte) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngBytes)
}

func findMaxValue(y []float64) float64 {
	max := math.Inf(-1)
	for _, v := range y {
		if !math.IsNaN(v) && v > max {
			max = v
		}
	}
	if math.IsInf(max, -1) {
		return 0
	}
	return max
}

func findMinValue(y []float64) float64 {
	min := math.Inf(1)
	for _, v := range y {
		if !math.IsNaN(v) && v < min {
			min = v
		}
	}
	if math.IsInf(min, 1) {
		return 0
	}
	return min
}
