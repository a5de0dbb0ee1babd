package datatable

import (
	log "github.com/sirupsen/logrus"

	"github.com/pivolan/frame_preview/dtype"
	"github.com/pivolan/frame_preview/graph"
	"github.com/pivolan/frame_preview/plot"
)

const (
	DefaultLimit = 1000

	ButtonCSV   = "csv"
	ButtonPrint = "print"
	ButtonPDF   = "pdf"
)

var (
	DefaultButtons = []string{ButtonCSV, ButtonPrint, ButtonPDF}
	DefaultClasses = []string{"table", "cell-border", "nowrap"}
)

// DefaultColumnDefs centers every data column.
func DefaultColumnDefs() []ColumnDef {
	return []ColumnDef{{ClassName: "dt-body-center dt-head-center"}}
}

// DefaultIndexColumnDef keeps the index columns narrow and out of search.
func DefaultIndexColumnDef() *ColumnDef {
	searchable := false
	return &ColumnDef{Searchable: &searchable, Width: "5%"}
}

// ColumnDef configures the columns matched by Targets. Empty Targets match
// every column, negative targets count from the last column.
type ColumnDef struct {
	Targets    []int
	Type       string
	ClassName  string
	Searchable *bool
	Width      string
}

// Options is everything Enhance needs; the zero value is usable.
type Options struct {
	// ColumnDefs default to DefaultColumnDefs when nil.
	ColumnDefs []ColumnDef
	// IndexColumnDef applies to the index header cells; Targets and Type
	// are ignored.
	IndexColumnDef *ColumnDef
	// Classes are added to the table element.
	Classes     []string
	DTypeMap    dtype.Map
	Preferences graph.Preferences
	Registry    graph.Registry
	// DateFormat is a moment.js style format for date axis labels.
	DateFormat string
	Strict     bool
	// Limit is the row count above which the table gets sampled.
	Limit int
	// SampleSize overrides the computed sample size when positive.
	SampleSize int
	Size       plot.Size
	Buttons    []string
	Finalize   bool
	Logger     log.FieldLogger
}

func (o Options) withDefaults() Options {
	if o.ColumnDefs == nil {
		o.ColumnDefs = DefaultColumnDefs()
	}
	if o.IndexColumnDef == nil {
		o.IndexColumnDef = DefaultIndexColumnDef()
	}
	if o.Classes == nil {
		o.Classes = DefaultClasses
	}
	if o.DTypeMap == nil {
		o.DTypeMap = dtype.DefaultMap()
	}
	if o.Preferences == nil {
		o.Preferences = graph.DefaultPreferences()
	}
	if o.Registry == nil {
		o.Registry = graph.DefaultRegistry()
	}
	if o.Limit <= 0 {
		o.Limit = DefaultLimit
	}
	if o.Size.Width <= 0 || o.Size.Height <= 0 {
		o.Size = plot.DefaultSize
	}
	if o.Buttons == nil {
		o.Buttons = DefaultButtons
	}
	if o.Logger == nil {
		o.Logger = log.StandardLogger()
	}
	return o
}

// columnDef is the merged definition of one column.
type columnDef struct {
	Type       string
	ClassName  string
	Searchable bool
	Width      string
}

// resolveColumnDefs merges defs per column. Later definitions override
// earlier ones field by field, class names accumulate.
func resolveColumnDefs(defs []ColumnDef, n int) []columnDef {
	out := make([]columnDef, n)
	for i := range out {
		out[i].Searchable = true
	}
	for _, def := range defs {
		for _, i := range targets(def.Targets, n) {
			c := &out[i]
			if def.Type != "" {
				c.Type = def.Type
			}
			if def.ClassName != "" {
				if c.ClassName != "" {
					c.ClassName += " "
				}
				c.ClassName += def.ClassName
			}
			if def.Searchable != nil {
				c.Searchable = *def.Searchable
			}
			if def.Width != "" {
				c.Width = def.Width
			}
		}
	}
	return out
}

func targets(t []int, n int) []int {
	if len(t) == 0 {
		all := make([]int, n)
		for i := range all {
			all[i] = i
		}
		return all
	}
	var out []int
	for _, i := range t {
		if i < 0 {
			i += n
		}
		if i >= 0 && i < n {
			out = append(out, i)
		}
	}
	return out
}
