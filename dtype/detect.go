package dtype

import (
	"strconv"
	"strings"
	"time"
)

// share of non-missing values that must agree before a column gets a type
const detectRatio = 0.8

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05.999999999",
	"01/02/2006",
	"02.01.2006",
}

// IsMissing reports whether a rendered cell stands for a missing value.
func IsMissing(s string) bool {
	switch strings.TrimSpace(s) {
	case "", "NaN", "nan", "None", "NaT", "<NA>", "null":
		return true
	}
	return false
}

// ParseDate parses the date renderings a DataFrame serializer produces.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	var err error
	for _, layout := range dateLayouts {
		var t time.Time
		if t, err = time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}

// Detect derives a raw type tag from the values of a column.
func Detect(values []string) string {
	var present, ints, floats, dates, bools int
	for _, v := range values {
		if IsMissing(v) {
			continue
		}
		present++
		v = strings.TrimSpace(v)

		if strings.EqualFold(v, "true") || strings.EqualFold(v, "false") {
			bools++
			continue
		}
		if _, err := strconv.ParseInt(v, 10, 64); err == nil {
			ints++
			continue
		}
		if _, err := strconv.ParseFloat(v, 64); err == nil {
			floats++
			continue
		}
		if _, err := ParseDate(v); err == nil {
			dates++
		}
	}

	if present == 0 {
		return "object"
	}
	share := func(n int) float64 { return float64(n) / float64(present) }
	switch {
	case bools == present:
		return "bool"
	case share(ints) >= detectRatio:
		return "int64"
	case share(ints+floats) >= detectRatio:
		return "float64"
	case share(dates) >= detectRatio:
		return "datetime64[ns]"
	}
	return "object"
}

var momentTokens = strings.NewReplacer(
	"YYYY", "2006",
	"YY", "06",
	"MM", "01",
	"DD", "02",
	"HH", "15",
	"mm", "04",
	"ss", "05",
)

// Layout converts a moment style date format (YYYYMMDD) into a Go layout.
func Layout(format string) string {
	return momentTokens.Replace(format)
}

// Formatter returns a label formatter rendering parseable dates with layout
// and passing anything else through unchanged.
func Formatter(layout string) func(string) string {
	return func(s string) string {
		t, err := ParseDate(s)
		if err != nil {
			return s
		}
		return t.Format(layout)
	}
}
