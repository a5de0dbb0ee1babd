package plot

import (
	"bytes"
	"fmt"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/render"

	"github.com/pivolan/frame_preview/graph"
)

const (
	barColorHex    = "rgb(255, 99, 132)"
	activeColorHex = "rgb(54, 162, 235)"
)

// RenderECharts renders c as a standalone interactive echarts page. chartID
// becomes the id of the chart container element.
func RenderECharts(c *graph.Chart, chartID string, size Size) ([]byte, error) {
	if c.Destroyed() {
		return nil, graph.ErrDestroyed
	}
	size = size.orDefault()
	global := globalOptions(c.Name(), chartID, size)
	active := activeSet(c.Tooltips.Active())

	var renderer render.Renderer
	switch c.Kind {
	case graph.KindLine:
		line := charts.NewLine()
		line.SetGlobalOptions(global...)
		line.SetXAxis(c.Labels).AddSeries(c.Name(), lineData(c.Values, active),
			charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: barColorHex}),
		)
		renderer = line
	case graph.KindScatter:
		scatter := charts.NewScatter()
		scatter.SetGlobalOptions(append(global,
			charts.WithXAxisOpts(opts.XAxis{Type: "value", Show: opts.Bool(false)}),
		)...)
		scatter.AddSeries(c.Name(), scatterData(c.XValues, c.Values, active),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: barColorHex}),
		)
		renderer = scatter
	default:
		bar := charts.NewBar()
		bar.SetGlobalOptions(global...)
		bar.SetXAxis(c.Labels).AddSeries(c.Name(), barData(c.Values, active),
			charts.WithBarChartOpts(opts.BarChart{BarGap: "10%"}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: barColorHex}),
		)
		renderer = bar
	}

	var buf bytes.Buffer
	if err := renderer.Render(&buf); err != nil {
		return nil, fmt.Errorf("failed to render chart %s: %w", c.Name(), err)
	}
	return buf.Bytes(), nil
}

func globalOptions(name, chartID string, size Size) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: name,
			ChartID:   chartID,
			Width:     fmt.Sprintf("%dpx", size.Width),
			Height:    fmt.Sprintf("%dpx", size.Height),
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(false)}),
		charts.WithXAxisOpts(opts.XAxis{Show: opts.Bool(false)}),
		charts.WithYAxisOpts(opts.YAxis{Show: opts.Bool(false)}),
		charts.WithGridOpts(opts.Grid{Left: "2", Right: "2", Top: "5", Bottom: "5"}),
	}
}

// echartsValue maps missing values to the echarts gap marker; NaN is not
// valid JSON.
func echartsValue(v float64) interface{} {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "-"
	}
	return v
}

func barData(values []float64, active map[int]bool) []opts.BarData {
	data := make([]opts.BarData, 0, len(values))
	for i, v := range values {
		d := opts.BarData{Value: echartsValue(v)}
		if active[i] {
			d.ItemStyle = &opts.ItemStyle{Color: activeColorHex}
		}
		data = append(data, d)
	}
	return data
}

func lineData(values []float64, active map[int]bool) []opts.LineData {
	data := make([]opts.LineData, 0, len(values))
	for i, v := range values {
		d := opts.LineData{Value: echartsValue(v)}
		if active[i] {
			d.Symbol = "circle"
			d.SymbolSize = 6
		}
		data = append(data, d)
	}
	return data
}

func scatterData(x, y []float64, active map[int]bool) []opts.ScatterData {
	data := make([]opts.ScatterData, 0, len(y))
	for i, v := range y {
		xv := float64(i)
		if i < len(x) {
			xv = x[i]
		}
		if math.IsNaN(v) || math.IsNaN(xv) {
			continue
		}
		d := opts.ScatterData{Value: []interface{}{xv, v}, SymbolSize: 3}
		if active[i] {
			d.SymbolSize = 6
		}
		data = append(data, d)
	}
	return data
}
