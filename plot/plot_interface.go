package plot

import "github.com/wcharczuk/go-chart/v2"

type dataForGraph interface {
	GetNameGraph() string
	getYValues() []float64
	generateBarValues() []chart.Value
}

// Size is the pixel size of one preview canvas.
type Size struct {
	Width  int
	Height int
}

// DefaultSize fits a preview into a table header cell.
var DefaultSize = Size{Width: 168, Height: 100}

func (s Size) orDefault() Size {
	if s.Width <= 0 || s.Height <= 0 {
		return DefaultSize
	}
	return s
}
