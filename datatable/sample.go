package datatable

import (
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/pivolan/frame_preview/stats"
)

var footerPrinter = message.NewPrinter(language.English)

// sampleSize is the number of rows kept from a table of n rows.
func sampleSize(n int, opts Options) int {
	if n <= opts.Limit {
		return n
	}
	s := opts.SampleSize
	if s <= 0 {
		s = stats.SampleSize(n, stats.DefaultConfidence, stats.DefaultMarginError, stats.DefaultProportion)
	}
	if s > n {
		s = n
	}
	return s
}

func sampleFooterText(s, n int) string {
	return footerPrinter.Sprintf("Sample size: %d out of %d", s, n)
}

func sampleFooter(s, n int) *html.Node {
	p := element(atom.P, "class", "dt-sample-size")
	p.AppendChild(text(sampleFooterText(s, n)))
	return p
}
