package models

// SemanticDType is the closed classification that drives chart-kind selection.
type SemanticDType string

const (
	DTypeNum       SemanticDType = "num"
	DTypeDate      SemanticDType = "date"
	DTypeString    SemanticDType = "string"
	DTypeBoolean   SemanticDType = "boolean"
	DTypeUndefined SemanticDType = "undefined"
)

func (d SemanticDType) String() string {
	return string(d)
}

// ColumnSample is the snapshot of one table column taken at render time.
type ColumnSample struct {
	Name    string
	RawType string // int64 float64 datetime64[ns] object bool
	Values  []string
}

// IndexDescriptor describes the axis labels backing a chart.
// Only level 0 is ever used.
type IndexDescriptor struct {
	Data  []string
	DType SemanticDType
	Level int
}

type HistogramData struct {
	RangeStart float64
	RangeEnd   float64
	Count      int
}

type ValueCount struct {
	Value   string
	Count   int64
	Percent float64
}

// ColumnSummary is one line of the describe report.
type ColumnSummary struct {
	Index    int
	Name     string
	RawType  string
	DType    SemanticDType
	Kind     string
	Distinct int
	Rows     int
}
