package plot

import (
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var (
	barColor    = drawing.Color{R: 255, G: 99, B: 132, A: 255}
	activeColor = drawing.Color{R: 54, G: 162, B: 235, A: 255}
)

type dataXStringsForGraph struct {
	xValues   []string
	yValues   []float64
	active    map[int]bool
	nameGraph string
}

func NewDataXStringsForGraph(xValues []string, y []float64, active []int, nameGraph string) dataXStringsForGraph {
	return dataXStringsForGraph{
		xValues:   xValues,
		yValues:   y,
		active:    activeSet(active),
		nameGraph: nameGraph,
	}
}

func (d dataXStringsForGraph) GetNameGraph() string {
	return d.nameGraph
}
func (d dataXStringsForGraph) getYValues() []float64 {
	return d.yValues
}

func (d dataXStringsForGraph) generateBarValues() []chart.Value {
	bars := make([]chart.Value, 0, len(d.yValues))
	for i, y := range d.yValues {
		label := ""
		if i < len(d.xValues) {
			label = d.xValues[i]
		}
		bars = append(bars, barValue(y, label, d.active[i]))
	}
	return bars
}

func barValue(y float64, label string, active bool) chart.Value {
	if math.IsNaN(y) {
		y = 0
	}
	color := barColor
	if active {
		color = activeColor
	}
	return chart.Value{
		Value: y,
		Label: label,
		Style: chart.Style{
			FillColor:   color,
			StrokeColor: color,
			StrokeWidth: 1,
		},
	}
}

func activeSet(active []int) map[int]bool {
	set := make(map[int]bool, len(active))
	for _, i := range active {
		set[i] = true
	}
	return set
}
