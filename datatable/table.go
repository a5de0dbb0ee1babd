package datatable

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/pivolan/frame_preview/domain/models"
)

var (
	ErrNoTable          = errors.New("no table element found")
	ErrColumnOutOfRange = errors.New("column out of range")
)

// Table is a parsed DataFrame rendering. Leading <th> cells of body rows
// are index levels, the <td> cells are data columns.
type Table struct {
	ID          string
	Columns     []string
	IndexLevels int
	Index       [][]string // [level][row]
	Rows        [][]string // [row][column]

	doc      *html.Node
	elem     *html.Node
	thead    *html.Node
	tbody    *html.Node
	rowNodes []*html.Node
	total    int
}

// Parse reads the first <table> of an HTML document or fragment.
func Parse(r io.Reader) (*Table, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("error parsing html: %w", err)
	}
	elem := findFirst(doc, atom.Table)
	if elem == nil {
		return nil, ErrNoTable
	}

	t := &Table{doc: doc, elem: elem}
	t.thead = findFirst(elem, atom.Thead)
	t.tbody = findFirst(elem, atom.Tbody)
	if t.tbody == nil {
		t.tbody = elem
	}

	var spans []span
	for _, tr := range children(t.tbody, atom.Tr) {
		if t.thead != nil && isInside(tr, t.thead) {
			continue
		}
		var heads []*html.Node
		var cells []string
		for _, cell := range cellNodes(tr) {
			if cell.DataAtom == atom.Th {
				heads = append(heads, cell)
			} else {
				cells = append(cells, textContent(cell))
			}
		}
		if len(t.rowNodes) == 0 {
			t.IndexLevels = len(heads)
			t.Index = make([][]string, len(heads))
			spans = make([]span, len(heads))
		}
		for level, label := range indexLabels(heads, spans) {
			t.Index[level] = append(t.Index[level], label)
		}
		t.Rows = append(t.Rows, cells)
		t.rowNodes = append(t.rowNodes, tr)
	}
	t.total = len(t.Rows)
	t.Columns = t.headerNames()

	t.ID = attr(elem, "id")
	return t, nil
}

// span is an index label still covering the rows below its <th>.
type span struct {
	label string
	rows  int
}

// indexLabels resolves one row of index labels. Levels still covered by a
// rowspan from an earlier row take the spanned label, the <th> cells of the
// row fill the remaining levels from the right.
func indexLabels(heads []*html.Node, spans []span) []string {
	labels := make([]string, len(spans))
	var free []int
	for level := range spans {
		if spans[level].rows > 0 {
			labels[level] = spans[level].label
			spans[level].rows--
		} else {
			free = append(free, level)
		}
	}

	offset := len(free) - len(heads)
	for k, th := range heads {
		if offset+k < 0 || offset+k >= len(free) {
			continue
		}
		level := free[offset+k]
		labels[level] = textContent(th)
		if n, err := strconv.Atoi(attr(th, "rowspan")); err == nil && n > 1 {
			spans[level] = span{label: labels[level], rows: n - 1}
		}
	}
	return labels
}

// sampledID is the id of the table once cut to its first n rows: the
// declared id, or a hash of the remaining content.
func (t *Table) sampledID(n int) string {
	if t.ID != "" {
		return t.ID
	}
	return t.contentHash(n)
}

func (t *Table) setID(id string) {
	t.ID = id
	setAttr(t.elem, "id", id)
}

// ParseString is Parse over an in-memory document.
func ParseString(s string) (*Table, error) {
	return Parse(strings.NewReader(s))
}

func (t *Table) NumRows() int {
	return len(t.Rows)
}

// TotalRows counts the rows before sampling.
func (t *Table) TotalRows() int {
	return t.total
}

func (t *Table) NumColumns() int {
	return len(t.Columns)
}

// Column snapshots the values of data column i.
func (t *Table) Column(i int) (models.ColumnSample, error) {
	return t.column(i, len(t.Rows))
}

// column snapshots data column i over the first n rows.
func (t *Table) column(i, n int) (models.ColumnSample, error) {
	if i < 0 || i >= len(t.Columns) {
		return models.ColumnSample{}, fmt.Errorf("%w: %d of %d", ErrColumnOutOfRange, i, len(t.Columns))
	}
	values := make([]string, n)
	for r, row := range t.Rows[:n] {
		if i < len(row) {
			values[r] = row[i]
		}
	}
	return models.ColumnSample{Name: t.Columns[i], Values: values}, nil
}

// Truncate keeps the first n body rows and removes the rest from the
// document.
func (t *Table) Truncate(n int) {
	if n < 0 || n >= len(t.Rows) {
		return
	}
	for _, tr := range t.rowNodes[n:] {
		if tr.Parent != nil {
			tr.Parent.RemoveChild(tr)
		}
	}
	t.rowNodes = t.rowNodes[:n]
	t.Rows = t.Rows[:n]
	for level := range t.Index {
		t.Index[level] = t.Index[level][:n]
	}
}

// headerNames takes the first header row, dropping the cells above the
// index columns.
func (t *Table) headerNames() []string {
	width := 0
	for _, row := range t.Rows {
		if len(row) > width {
			width = len(row)
		}
	}

	var header []string
	if t.thead != nil {
		if rows := children(t.thead, atom.Tr); len(rows) > 0 {
			for _, cell := range cellNodes(rows[0]) {
				header = append(header, textContent(cell))
			}
		}
	}
	if len(header) > width && width > 0 {
		header = header[len(header)-width:]
	}
	for len(header) < width {
		header = append(header, fmt.Sprintf("%d", len(header)))
	}
	return header
}

func (t *Table) contentHash(n int) string {
	h := sha256.New()
	for _, name := range t.Columns {
		io.WriteString(h, name)
		h.Write([]byte{0})
	}
	for _, row := range t.Rows[:n] {
		for _, cell := range row {
			io.WriteString(h, cell)
			h.Write([]byte{0})
		}
		h.Write([]byte{'\n'})
	}
	return "table-" + hex.EncodeToString(h.Sum(nil))[:16]
}

func findFirst(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, a); found != nil {
			return found
		}
	}
	return nil
}

// children returns the direct child elements of n with the given atom.
func children(n *html.Node, a atom.Atom) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == a {
			out = append(out, c)
		}
	}
	return out
}

func cellNodes(tr *html.Node) []*html.Node {
	var out []*html.Node
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && (c.DataAtom == atom.Th || c.DataAtom == atom.Td) {
			out = append(out, c)
		}
	}
	return out
}

func isInside(n, ancestor *html.Node) bool {
	for p := n.Parent; p != nil; p = p.Parent {
		if p == ancestor {
			return true
		}
	}
	return false
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(sb.String())
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func setAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func addClass(n *html.Node, class string) {
	if class == "" {
		return
	}
	existing := attr(n, "class")
	for _, c := range strings.Fields(existing) {
		if c == class {
			return
		}
	}
	setAttr(n, "class", strings.TrimSpace(existing+" "+class))
}
