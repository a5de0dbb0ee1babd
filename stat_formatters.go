package main

import (
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/pivolan/frame_preview/datatable"
	"github.com/pivolan/frame_preview/domain/models"
	"github.com/pivolan/frame_preview/dtype"
	"github.com/pivolan/frame_preview/graph"
	"github.com/pivolan/frame_preview/stats"
)

// numericSummary pairs a column with its describe metrics.
type numericSummary struct {
	Name  string
	Stats *stats.NumberStats
}

// describePreview collects the describe report of every column.
func describePreview(p *datatable.Preview) ([]models.ColumnSummary, []numericSummary, error) {
	var summaries []models.ColumnSummary
	var numeric []numericSummary
	for i := 0; i < p.NumColumns(); i++ {
		sample, err := p.Column(i)
		if err != nil {
			return nil, nil, err
		}
		d, err := p.DType(i)
		if err != nil {
			return nil, nil, err
		}
		c, err := p.Chart(i)
		if err != nil {
			return nil, nil, err
		}
		summaries = append(summaries, models.ColumnSummary{
			Index:    i,
			Name:     sample.Name,
			RawType:  sample.RawType,
			DType:    d,
			Kind:     c.Name(),
			Distinct: len(graph.Frequencies(sample.Values)),
			Rows:     len(sample.Values),
		})

		if d != models.DTypeNum {
			continue
		}
		if s := stats.Summarize(numbers(sample.Values)); s != nil {
			numeric = append(numeric, numericSummary{Name: sample.Name, Stats: s})
		}
	}
	return summaries, numeric, nil
}

func numbers(values []string) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if dtype.IsMissing(v) {
			continue
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			continue
		}
		out = append(out, f)
	}
	return out
}

func GenerateTable(summaries []models.ColumnSummary) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"#", "Column", "Type", "DType", "Chart", "Distinct", "Rows"})
	for _, s := range summaries {
		t.AppendRow(table.Row{s.Index, s.Name, s.RawType, s.DType, s.Kind, s.Distinct, s.Rows})
	}
	t.SetStyle(table.StyleDefault)
	return t.Render()
}

func GenerateNumericTable(numeric []numericSummary) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Column", "Count", "Avg", "Median", "Min", "Max", "IQR", "Outliers"})
	for _, n := range numeric {
		s := n.Stats
		t.AppendRow(table.Row{n.Name, s.Count, s.Average, s.Median, s.Min, s.Max, s.IQR, len(s.Outliers)})
	}
	t.SetStyle(table.StyleDefault)
	return t.Render()
}

// GenerateTableMarkdown renders the column report for markdown output.
func GenerateTableMarkdown(summaries []models.ColumnSummary) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"#", "Column", "Type", "DType", "Chart", "Distinct", "Rows"})
	for _, s := range summaries {
		t.AppendRow(table.Row{s.Index, s.Name, s.RawType, s.DType, s.Kind, s.Distinct, s.Rows})
	}
	return t.RenderMarkdown()
}
