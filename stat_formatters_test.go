package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pivolan/frame_preview/domain/models"
	"github.com/pivolan/frame_preview/stats"
)

func TestDescribePreview(t *testing.T) {
	p, err := enhance(strings.NewReader(peopleTable), testServer().opts, nil)
	require.NoError(t, err)

	summaries, numeric, err := describePreview(p)
	require.NoError(t, err)

	assert.Equal(t, []models.ColumnSummary{
		{Index: 0, Name: "name", RawType: "object", DType: models.DTypeString, Kind: "CategoricalBar", Distinct: 3, Rows: 3},
		{Index: 1, Name: "age", RawType: "int64", DType: models.DTypeNum, Kind: "Histogram", Distinct: 3, Rows: 3},
	}, summaries)

	require.Len(t, numeric, 1)
	assert.Equal(t, "age", numeric[0].Name)
	assert.Equal(t, 3, numeric[0].Stats.Count)
	assert.Equal(t, 31.0, numeric[0].Stats.Median)

	out := GenerateTable(summaries)
	assert.Contains(t, out, "CategoricalBar")
	assert.Contains(t, out, "DTYPE")

	md := GenerateTableMarkdown(summaries)
	assert.Contains(t, md, "| 1 | age | int64 | num | Histogram | 3 | 3 |")

	assert.Contains(t, GenerateNumericTable(numeric), "age")
}

func TestGenerateNumericTable(t *testing.T) {
	out := GenerateNumericTable([]numericSummary{
		{Name: "age", Stats: stats.Summarize([]float64{1, 2, 3, 4, 100})},
	})

	assert.Contains(t, out, "OUTLIERS")
	assert.Contains(t, out, "| age    |")
}

func TestNumbers(t *testing.T) {
	assert.Equal(t, []float64{1, 2.5}, numbers([]string{"1", "", "NaN", " 2.5 ", "x"}))
}
