package datatable

import (
	"bytes"
	"encoding/csv"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/mozillazg/go-unidecode"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/pivolan/frame_preview/graph"
)

var slugInvalid = regexp.MustCompile(`[^a-z0-9]+`)

// slug transliterates s into an ASCII token usable as a class or file name.
func slug(s string) string {
	s = strings.ToLower(unidecode.Unidecode(s))
	return strings.Trim(slugInvalid.ReplaceAllString(s, "-"), "-")
}

func element(a atom.Atom, attrs ...string) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
	for i := 0; i+1 < len(attrs); i += 2 {
		n.Attr = append(n.Attr, html.Attribute{Key: attrs[i], Val: attrs[i+1]})
	}
	return n
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func removeChildren(n *html.Node) {
	for c := n.FirstChild; c != nil; c = n.FirstChild {
		n.RemoveChild(c)
	}
}

// settingsMenu lists every registered chart kind. The shown kind is
// is-active, kinds the column's dtype does not prefer are is-disabled.
func settingsMenu(column int, current graph.Kind, allowed func(graph.Kind) bool, registry graph.Registry) *html.Node {
	menu := element(atom.Div, "class", "dt-chart-settings")
	toggle := element(atom.Button,
		"type", "button",
		"class", "dt-chart-settings-toggle",
		"aria-label", "chart settings for column "+strconv.Itoa(column),
	)
	toggle.AppendChild(text("⚙"))
	menu.AppendChild(toggle)

	list := element(atom.Ul, "class", "dt-chart-menu")
	for _, k := range graph.Kinds {
		if _, ok := registry[k]; !ok {
			continue
		}
		class := "dt-chart-kind"
		if k == current {
			class += " is-active"
		}
		if !allowed(k) {
			class += " is-disabled"
		}
		item := element(atom.Li, "class", class, "data-kind", k.String())
		item.AppendChild(text(k.String()))
		list.AppendChild(item)
	}
	menu.AppendChild(list)
	return menu
}

// buttonBar builds the export buttons. The csv button links the sampled
// table as a data URL.
func buttonBar(t *Table, buttons []string) *html.Node {
	bar := element(atom.Div, "class", "dt-buttons")
	for _, b := range buttons {
		switch b {
		case ButtonCSV:
			name := slug(t.ID)
			if name == "" {
				name = "table"
			}
			a := element(atom.A,
				"class", "dt-button buttons-csv",
				"download", name+".csv",
				"href", "data:text/csv;charset=utf-8,"+url.PathEscape(tableCSV(t)),
			)
			a.AppendChild(text("CSV"))
			bar.AppendChild(a)
		case ButtonPrint, ButtonPDF:
			btn := element(atom.Button, "type", "button", "class", "dt-button buttons-"+b)
			btn.AppendChild(text(strings.ToUpper(b[:1]) + b[1:]))
			bar.AppendChild(btn)
		}
	}
	return bar
}

// tableCSV exports the index levels followed by the data columns.
func tableCSV(t *Table) string {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := make([]string, 0, t.IndexLevels+len(t.Columns))
	for i := 0; i < t.IndexLevels; i++ {
		header = append(header, "")
	}
	header = append(header, t.Columns...)
	w.Write(header)

	for r, row := range t.Rows {
		record := make([]string, 0, len(header))
		for level := 0; level < t.IndexLevels; level++ {
			record = append(record, t.Index[level][r])
		}
		record = append(record, row...)
		w.Write(record)
	}
	w.Flush()
	return buf.String()
}

// disable freezes a control of the finalized preview.
func disable(n *html.Node) {
	if n.DataAtom == atom.A {
		setAttr(n, "aria-disabled", "true")
		addClass(n, "disabled")
		return
	}
	setAttr(n, "disabled", "")
}

func walkElements(n *html.Node, fn func(*html.Node)) {
	if n.Type == html.ElementNode {
		fn(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walkElements(c, fn)
	}
}
