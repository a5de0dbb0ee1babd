package main

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"html/template"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"

	"github.com/pivolan/frame_preview/dtype"
)

type HeaderAnalysis struct {
	Headers        []string
	FirstRowIsData bool
}

// AnalyzeHeaders decides whether the first CSV row names the columns.
func AnalyzeHeaders(firstRow []string) *HeaderAnalysis {
	if len(firstRow) == 0 {
		return nil
	}

	result := &HeaderAnalysis{Headers: make([]string, len(firstRow))}

	headerLikeCount := 0
	for _, field := range firstRow {
		if isLikelyHeader(field) {
			headerLikeCount++
		}
	}

	if float64(headerLikeCount)/float64(len(firstRow)) >= 0.5 {
		for i, header := range firstRow {
			result.Headers[i] = cleanHeaderName(header, i)
		}
	} else {
		result.FirstRowIsData = true
		for i := range firstRow {
			result.Headers[i] = generateColumnName(i)
		}
	}

	result.Headers = ValidateHeaders(result.Headers)
	return result
}

// isLikelyHeader reports whether text reads as a column name rather than a
// value.
func isLikelyHeader(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}
	if _, err := strconv.ParseFloat(text, 64); err == nil {
		return false
	}
	if _, err := dtype.ParseDate(text); err == nil {
		return false
	}

	letters := 0
	others := 0
	for _, r := range text {
		switch {
		case unicode.IsLetter(r):
			letters++
		case unicode.IsSpace(r):
		default:
			others++
		}
	}
	// at least 30% letters
	return letters > 0 && float64(letters)/float64(letters+others) >= 0.3
}

func generateColumnName(index int) string {
	return fmt.Sprintf("column_%d", index+1)
}

// ValidateHeaders suffixes duplicated names with a counter.
func ValidateHeaders(headers []string) []string {
	seen := make(map[string]bool)
	result := make([]string, len(headers))

	for i, header := range headers {
		name := header
		for counter := 1; seen[name]; counter++ {
			name = fmt.Sprintf("%s_%d", header, counter)
		}
		seen[name] = true
		result[i] = name
	}
	return result
}

func cleanHeaderName(header string, index int) string {
	header = strings.TrimSpace(header)
	if header == "" || !isLikelyHeader(header) {
		return generateColumnName(index)
	}
	return header
}

// detectDelimiter picks the separator occurring most often in the first
// line.
func detectDelimiter(line string) rune {
	best, bestCount := ',', 0
	for _, d := range []rune{',', ';', '\t', '|'} {
		if n := strings.Count(line, string(d)); n > bestCount {
			best, bestCount = d, n
		}
	}
	return best
}

// isCSV tells CSV inputs from HTML ones by name, looking through
// compression extensions.
func isCSV(name string) bool {
	name = strings.ToLower(name)
	for {
		ext := filepath.Ext(name)
		switch ext {
		case ".gz", ".lz4", ".zip":
			name = strings.TrimSuffix(name, ext)
			continue
		}
		return ext == ".csv" || ext == ".tsv"
	}
}

var dataFrameTemplate = template.Must(template.New("frame").Parse(
	`<table border="1" class="dataframe">
<thead><tr style="text-align: right;"><th></th>{{range .Headers}}<th>{{.}}</th>{{end}}</tr></thead>
<tbody>
{{range $i, $row := .Rows}}<tr><th>{{$i}}</th>{{range $row}}<td>{{.}}</td>{{end}}</tr>
{{end}}</tbody>
</table>
`))

// csvToTable renders CSV as the table a DataFrame serializer would emit,
// with a positional index.
func csvToTable(r io.Reader) (io.Reader, error) {
	br := bufio.NewReader(r)
	peek, _ := br.Peek(4096)
	firstLine, _, _ := strings.Cut(string(peek), "\n")

	cr := csv.NewReader(br)
	cr.Comma = detectDelimiter(firstLine)
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("error reading csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("error reading csv: no rows")
	}

	analysis := AnalyzeHeaders(records[0])
	rows := records
	if !analysis.FirstRowIsData {
		rows = records[1:]
	}
	for i, row := range rows {
		for len(row) < len(analysis.Headers) {
			row = append(row, "")
		}
		rows[i] = row[:len(analysis.Headers)]
	}

	var buf bytes.Buffer
	err = dataFrameTemplate.Execute(&buf, struct {
		Headers []string
		Rows    [][]string
	}{analysis.Headers, rows})
	if err != nil {
		return nil, err
	}
	return &buf, nil
}
