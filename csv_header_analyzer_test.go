package main

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pivolan/frame_preview/datatable"
)

func TestAnalyzeHeaders(t *testing.T) {
	tests := []struct {
		name        string
		input       []string
		wantHeaders []string
		wantIsData  bool
	}{
		{
			name:        "Valid headers",
			input:       []string{"Name", "Age", "Email", "Phone"},
			wantHeaders: []string{"Name", "Age", "Email", "Phone"},
		},
		{
			name:        "Numeric data",
			input:       []string{"123", "456", "789", "101"},
			wantHeaders: []string{"column_1", "column_2", "column_3", "column_4"},
			wantIsData:  true,
		},
		{
			name:        "Date data",
			input:       []string{"2024-01-01", "2024-01-02", "2024-01-03"},
			wantHeaders: []string{"column_1", "column_2", "column_3"},
			wantIsData:  true,
		},
		{
			name:        "Headers with special characters",
			input:       []string{" User Name! ", "Age#", "Email@", "Phone$"},
			wantHeaders: []string{"User Name!", "Age#", "Email@", "Phone$"},
		},
		{
			name:        "Duplicate headers",
			input:       []string{"Name", "Name", "Name", "Age"},
			wantHeaders: []string{"Name", "Name_1", "Name_2", "Age"},
		},
		{
			name:        "Empty headers",
			input:       []string{"", "", "", ""},
			wantHeaders: []string{"column_1", "column_2", "column_3", "column_4"},
			wantIsData:  true,
		},
		{
			name:        "Partly named",
			input:       []string{"price", "", "qty"},
			wantHeaders: []string{"price", "column_2", "qty"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AnalyzeHeaders(tt.input)
			require.NotNil(t, got)
			assert.Equal(t, tt.wantHeaders, got.Headers)
			assert.Equal(t, tt.wantIsData, got.FirstRowIsData)
		})
	}

	assert.Nil(t, AnalyzeHeaders(nil))
}

func TestDetectDelimiter(t *testing.T) {
	assert.Equal(t, ',', detectDelimiter("a,b,c"))
	assert.Equal(t, ';', detectDelimiter("a;b;c,d"))
	assert.Equal(t, '\t', detectDelimiter("a\tb"))
	assert.Equal(t, ',', detectDelimiter("single"))
}

func TestIsCSV(t *testing.T) {
	assert.True(t, isCSV("sales.csv"))
	assert.True(t, isCSV("sales.CSV.gz"))
	assert.True(t, isCSV("sales.tsv.lz4"))
	assert.False(t, isCSV("sales.html.gz"))
	assert.False(t, isCSV("-"))
}

func TestCSVToTable(t *testing.T) {
	r, err := csvToTable(strings.NewReader("product;qty;price\nTea <green>;3;1.5\nCoffee;1\n"))
	require.NoError(t, err)

	b, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Contains(t, string(b), "Tea &lt;green&gt;")

	table, err := datatable.Parse(strings.NewReader(string(b)))
	require.NoError(t, err)
	assert.Equal(t, []string{"product", "qty", "price"}, table.Columns)
	assert.Equal(t, [][]string{{"Tea <green>", "3", "1.5"}, {"Coffee", "1", ""}}, table.Rows)
	assert.Equal(t, []string{"0", "1"}, table.Index[0])
}

func TestCSVToTableWithoutHeader(t *testing.T) {
	r, err := csvToTable(strings.NewReader("1,2\n3,4\n"))
	require.NoError(t, err)

	table, err := datatable.Parse(r)
	require.NoError(t, err)
	assert.Equal(t, []string{"column_1", "column_2"}, table.Columns)
	assert.Equal(t, 2, table.NumRows())
}
