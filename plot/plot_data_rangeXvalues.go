package plot

import (
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
)

type dataRangeXValuesForGraph struct {
	xStart, xEnd []float64
	yValues      []float64
	active       map[int]bool
	nameGraph    string
}

// NewDataRangeXValuesForGraph describes histogram bars by their bin edges.
func NewDataRangeXValuesForGraph(edges, y []float64, active []int, nameGraph string) dataRangeXValuesForGraph {
	d := dataRangeXValuesForGraph{
		yValues:   y,
		active:    activeSet(active),
		nameGraph: nameGraph,
	}
	for i := 0; i+1 < len(edges); i++ {
		d.xStart = append(d.xStart, edges[i])
		d.xEnd = append(d.xEnd, edges[i+1])
	}
	return d
}

func (d dataRangeXValuesForGraph) GetNameGraph() string {
	return d.nameGraph
}
func (d dataRangeXValuesForGraph) getYValues() []float64 {
	return d.yValues
}

func (d dataRangeXValuesForGraph) generateBarValues() []chart.Value {
	bars := make([]chart.Value, 0, len(d.yValues))
	for i, y := range d.yValues {
		label := ""
		if i < len(d.xStart) {
			label = fmt.Sprintf("%g-%g", d.xStart[i], d.xEnd[i])
		}
		bars = append(bars, barValue(y, label, d.active[i]))
	}
	return bars
}
