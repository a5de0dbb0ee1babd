package plot

import (
	"math"
)

// dataSeriesForGraph holds the points of a line or scatter preview with the
// missing ones dropped.
type dataSeriesForGraph struct {
	xValues   []float64
	yValues   []float64
	activeX   []float64
	activeY   []float64
	nameGraph string
}

func NewDataSeriesForGraph(x, y []float64, active []int, nameGraph string) dataSeriesForGraph {
	d := dataSeriesForGraph{nameGraph: nameGraph}
	set := activeSet(active)
	for i, v := range y {
		xv := float64(i)
		if i < len(x) {
			xv = x[i]
		}
		if math.IsNaN(v) || math.IsNaN(xv) {
			continue
		}
		d.xValues = append(d.xValues, xv)
		d.yValues = append(d.yValues, v)
		if set[i] {
			d.activeX = append(d.activeX, xv)
			d.activeY = append(d.activeY, v)
		}
	}
	return d
}

func (d dataSeriesForGraph) GetNameGraph() string {
	return d.nameGraph
}

func (d dataSeriesForGraph) lenXValues() int {
	return len(d.xValues)
}

// ranges pads degenerate extents so that a single point still renders.
func (d dataSeriesForGraph) ranges() (xMin, xMax, yMin, yMax float64) {
	xMin, xMax = findMinValue(d.xValues), findMaxValue(d.xValues)
	yMin, yMax = math.Min(0, findMinValue(d.yValues)), findMaxValue(d.yValues)
	if xMax <= xMin {
		xMax = xMin + 1
	}
	if yMax <= yMin {
		yMax = yMin + 1
	}
	return
}
