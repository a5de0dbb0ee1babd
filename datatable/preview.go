package datatable

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	uuid "github.com/satori/go.uuid"
	log "github.com/sirupsen/logrus"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/pivolan/frame_preview/domain/models"
	"github.com/pivolan/frame_preview/dtype"
	"github.com/pivolan/frame_preview/graph"
	"github.com/pivolan/frame_preview/plot"
)

var (
	ErrFinalized     = errors.New("preview is finalized")
	ErrRowOutOfRange = errors.New("row out of range")
)

type column struct {
	sample models.ColumnSample
	def    columnDef
	dtype  models.SemanticDType
	chart  *graph.Chart
	cell   *html.Node
}

// Preview is a table enhanced with dtype and data preview rows. It is not
// safe for concurrent use.
type Preview struct {
	Table *Table

	opts       Options
	logger     log.FieldLogger
	classifier *dtype.Classifier
	builder    *graph.Builder
	sync       *graph.Sync
	index      []models.IndexDescriptor
	columns    []*column
	buttons    *html.Node
	id         string
	finalized  bool
}

// Enhance samples t, classifies every column and inserts the preview rows
// into its header. A column that cannot be previewed fails the whole table
// and leaves t untouched.
func Enhance(t *Table, opts Options) (*Preview, error) {
	opts = opts.withDefaults()

	total := t.NumRows()
	rows := sampleSize(total, opts)
	id := t.sampledID(rows)
	logger := opts.Logger.WithField("table", id)

	var formatDate func(string) string
	if opts.DateFormat != "" {
		formatDate = dtype.Formatter(dtype.Layout(opts.DateFormat))
	}

	p := &Preview{
		Table:      t,
		opts:       opts,
		logger:     logger,
		classifier: dtype.NewClassifier(opts.DTypeMap, opts.Strict, logger),
		builder:    graph.NewBuilder(opts.Preferences, opts.Registry, graph.Options{FormatDate: formatDate}, logger),
		sync:       graph.NewSync(),
		id:         id,
		finalized:  opts.Finalize,
	}

	for level, labels := range t.Index {
		data := labels[:rows]
		d, err := p.classifier.Classify(dtype.Detect(data))
		if err != nil {
			return nil, fmt.Errorf("index level %d: %w", level, err)
		}
		p.index = append(p.index, models.IndexDescriptor{Data: data, DType: d, Level: level})
	}

	defs := resolveColumnDefs(opts.ColumnDefs, t.NumColumns())
	for i := range t.Columns {
		col, err := p.buildColumn(i, rows, defs[i])
		if err != nil {
			p.release()
			return nil, fmt.Errorf("column %d: %w", i, err)
		}
		p.columns = append(p.columns, col)
		p.sync.Attach(i, col.chart)
	}

	dtypeRow, dataRow, err := p.previewRows()
	if err != nil {
		p.release()
		return nil, err
	}

	if rows < total {
		t.Truncate(rows)
		insertAfter(t.elem, sampleFooter(rows, total))
	}
	t.setID(id)
	for _, class := range opts.Classes {
		addClass(t.elem, class)
	}
	p.insertRows(dtypeRow, dataRow)
	if len(opts.Buttons) > 0 {
		p.buttons = buttonBar(t, opts.Buttons)
		insertBefore(t.elem, p.buttons)
	}
	if p.finalized {
		p.disableControls()
	}

	logger.WithFields(log.Fields{"columns": len(p.columns), "rows": t.NumRows()}).Debug("table enhanced")
	return p, nil
}

func (p *Preview) buildColumn(i, rows int, def columnDef) (*column, error) {
	sample, err := p.Table.column(i, rows)
	if err != nil {
		return nil, err
	}
	sample.RawType = def.Type
	if sample.RawType == "" {
		sample.RawType = dtype.Detect(sample.Values)
	}

	d, err := p.classifier.Classify(sample.RawType)
	if err != nil {
		return nil, err
	}
	chart, err := p.builder.Build(sample.Values, p.index, d)
	if err != nil {
		return nil, err
	}
	p.logger.WithFields(log.Fields{"column": i, "dtype": d, "kind": chart.Kind}).Debug("column classified")
	return &column{sample: sample, def: def, dtype: d, chart: chart}, nil
}

// previewRows builds the dtype preview and data preview rows without
// touching the document.
func (p *Preview) previewRows() (*html.Node, *html.Node, error) {
	dtypeRow := element(atom.Tr, "class", "dtype-preview")
	dataRow := element(atom.Tr, "class", "column-data-preview")
	for level := 0; level < p.Table.IndexLevels; level++ {
		dtypeRow.AppendChild(p.indexCell())
		dataRow.AppendChild(p.indexCell())
	}

	for i, col := range p.columns {
		dtypeRow.AppendChild(p.dtypeCell(i, col))

		col.cell = element(atom.Td,
			"class", joinClass("column-data-preview", col.def.ClassName, columnClass(col.sample.Name)),
			"role", "figure",
			"aria-label", "data preview for column "+strconv.Itoa(i),
		)
		if col.def.Width != "" {
			setAttr(col.cell, "style", "width: "+col.def.Width)
		}
		if err := p.renderCell(i, col); err != nil {
			return nil, nil, fmt.Errorf("column %d: %w", i, err)
		}
		dataRow.AppendChild(col.cell)
	}
	return dtypeRow, dataRow, nil
}

// insertRows adds the preview rows below the column names and applies the
// column classes to the header and body cells.
func (p *Preview) insertRows(dtypeRow, dataRow *html.Node) {
	t := p.Table
	if t.thead == nil {
		t.thead = element(atom.Thead)
		t.elem.InsertBefore(t.thead, t.elem.FirstChild)
	}
	if rows := children(t.thead, atom.Tr); len(rows) > 0 {
		p.decorate(rows[0], true)
	}
	for _, tr := range t.rowNodes {
		p.decorate(tr, false)
	}
	t.thead.AppendChild(dtypeRow)
	t.thead.AppendChild(dataRow)
}

// decorate applies the index and column definitions to the cells of tr.
func (p *Preview) decorate(tr *html.Node, header bool) {
	cells := cellNodes(tr)
	levels := 0
	if header {
		levels = max(len(cells)-len(p.columns), 0)
	} else {
		for _, cell := range cells {
			if cell.DataAtom == atom.Th {
				levels++
			}
		}
	}
	for k, cell := range cells {
		if k < levels {
			if header {
				p.applyIndexDef(cell)
			}
			continue
		}
		if i := k - levels; i < len(p.columns) {
			for _, class := range strings.Fields(p.columns[i].def.ClassName) {
				addClass(cell, class)
			}
		}
	}
}

func (p *Preview) indexCell() *html.Node {
	th := element(atom.Th)
	p.applyIndexDef(th)
	return th
}

func (p *Preview) applyIndexDef(th *html.Node) {
	def := p.opts.IndexColumnDef
	for _, class := range strings.Fields(def.ClassName) {
		addClass(th, class)
	}
	if def.Searchable != nil && !*def.Searchable {
		setAttr(th, "data-searchable", "false")
	}
	if def.Width != "" {
		setAttr(th, "style", "width: "+def.Width)
	}
}

func (p *Preview) dtypeCell(i int, col *column) *html.Node {
	td := element(atom.Td,
		"class", joinClass("column-dtype-preview dt-head-center", col.def.ClassName, columnClass(col.sample.Name)),
		"aria-label", "dtype preview for column "+strconv.Itoa(i),
	)
	if !col.def.Searchable {
		setAttr(td, "data-searchable", "false")
	}
	container := element(atom.Div, "class", "dtype-container")
	sel := element(atom.Select, "class", "dtype", "role", "option", "data-dtype", col.dtype.String())
	for _, tag := range p.tags(col.sample.RawType) {
		opt := element(atom.Option, "value", tag)
		if tag == col.sample.RawType {
			setAttr(opt, "selected", "")
		}
		opt.AppendChild(text(tag))
		sel.AppendChild(opt)
	}
	container.AppendChild(sel)
	td.AppendChild(container)
	return td
}

// tags lists the known raw tags with current first.
func (p *Preview) tags(current string) []string {
	var tags []string
	for tag := range p.opts.DTypeMap {
		if tag != dtype.DefaultTag && tag != current {
			tags = append(tags, tag)
		}
	}
	sort.Strings(tags)
	return append([]string{current}, tags...)
}

// renderCell redraws the chart container of a data preview cell.
func (p *Preview) renderCell(i int, col *column) error {
	chartID := p.chartID(i, col.chart.Kind)
	container := element(atom.Div, "class", "dt-chart-container", "id", chartID)
	if !p.finalized {
		allowed := func(k graph.Kind) bool { return p.opts.Preferences.Allows(col.dtype, k) }
		container.AppendChild(settingsMenu(i, col.chart.Kind, allowed, p.opts.Registry))
	}

	canvas, err := p.canvas(col.chart, chartID)
	if err != nil {
		return err
	}
	container.AppendChild(canvas)

	removeChildren(col.cell)
	col.cell.AppendChild(container)
	return nil
}

func (p *Preview) canvas(c *graph.Chart, chartID string) (*html.Node, error) {
	size := p.opts.Size
	if p.finalized {
		png, err := plot.RenderPNG(c, size)
		if err != nil {
			return nil, err
		}
		return element(atom.Img,
			"class", "dt-chart-image",
			"alt", c.Name(),
			"width", strconv.Itoa(size.Width),
			"height", strconv.Itoa(size.Height),
			"src", plot.DataURL(png),
		), nil
	}

	page, err := plot.RenderECharts(c, chartID+"-canvas", size)
	if err != nil {
		return nil, err
	}
	return element(atom.Iframe,
		"class", "dt-chart-canvas",
		"title", c.Name(),
		"width", strconv.Itoa(size.Width),
		"height", strconv.Itoa(size.Height),
		"frameborder", "0",
		"scrolling", "no",
		"srcdoc", string(page),
	), nil
}

// chartID is stable for a table, column and kind.
func (p *Preview) chartID(i int, k graph.Kind) string {
	name := fmt.Sprintf("%s/%d/%s", p.id, i, k)
	return "dt-chart-" + uuid.NewV5(uuid.NamespaceURL, name).String()
}

func (p *Preview) col(i int) (*column, error) {
	if i < 0 || i >= len(p.columns) {
		return nil, fmt.Errorf("%w: %d of %d", ErrColumnOutOfRange, i, len(p.columns))
	}
	return p.columns[i], nil
}

// Chart returns the chart shown for column i.
func (p *Preview) Chart(i int) (*graph.Chart, error) {
	col, err := p.col(i)
	if err != nil {
		return nil, err
	}
	return col.chart, nil
}

// Column returns the sampled values and raw type of column i.
func (p *Preview) Column(i int) (models.ColumnSample, error) {
	col, err := p.col(i)
	if err != nil {
		return models.ColumnSample{}, err
	}
	return col.sample, nil
}

func (p *Preview) NumColumns() int {
	return len(p.columns)
}

// DType returns the semantic dtype column i was classified as.
func (p *Preview) DType(i int) (models.SemanticDType, error) {
	col, err := p.col(i)
	if err != nil {
		return "", err
	}
	return col.dtype, nil
}

// Switch shows column i as kind. Switching to the kind already shown does
// nothing. The previous chart is destroyed once the new one is built.
func (p *Preview) Switch(i int, kind graph.Kind) error {
	if p.finalized {
		return ErrFinalized
	}
	col, err := p.col(i)
	if err != nil {
		return err
	}
	if col.chart.Kind == kind {
		return nil
	}

	chart, err := p.builder.BuildKind(kind, col.sample.Values, p.index, col.dtype)
	if err != nil {
		return fmt.Errorf("column %d: %w", i, err)
	}
	if !p.opts.Preferences.Allows(col.dtype, kind) {
		p.logger.WithFields(log.Fields{"column": i, "dtype": col.dtype, "kind": kind}).
			Info("chart kind outside the dtype preferences")
	}

	p.sync.Detach(i)
	col.chart.Destroy()
	col.chart = chart
	p.sync.Attach(i, chart)
	return p.renderCell(i, col)
}

// Hover mirrors hovering the cell at row, column onto the column's chart and
// returns the highlighted point, or -1.
func (p *Preview) Hover(row, i int) (int, error) {
	if p.finalized {
		return -1, ErrFinalized
	}
	col, err := p.col(i)
	if err != nil {
		return -1, err
	}
	if row < 0 || row >= len(col.sample.Values) {
		return -1, fmt.Errorf("%w: %d of %d", ErrRowOutOfRange, row, len(col.sample.Values))
	}

	index := strconv.Itoa(row)
	if len(p.index) > 0 {
		index = p.index[0].Data[row]
	}
	point := p.sync.Hover(i, graph.DataPoint{Index: index, Value: col.sample.Values[row]})
	return point, p.renderCell(i, col)
}

// Leave hides every tooltip of the table.
func (p *Preview) Leave() error {
	if p.finalized {
		return ErrFinalized
	}
	p.sync.Leave()
	for i, col := range p.columns {
		if err := p.renderCell(i, col); err != nil {
			return err
		}
	}
	return nil
}

// Finalize replaces every canvas with a static image and disables the
// controls. Finalizing twice is a no-op.
func (p *Preview) Finalize() error {
	if p.finalized {
		return nil
	}
	p.sync.Leave()
	p.finalized = true

	for i, col := range p.columns {
		if err := p.renderCell(i, col); err != nil {
			return fmt.Errorf("column %d: %w", i, err)
		}
	}
	p.disableControls()
	p.logger.Debug("preview finalized")
	return nil
}

// disableControls turns off the dtype selects, chart menus and buttons.
func (p *Preview) disableControls() {
	walkElements(p.Table.elem, func(n *html.Node) {
		if n.DataAtom == atom.Select || n.DataAtom == atom.Button {
			disable(n)
		}
	})
	if p.buttons != nil {
		walkElements(p.buttons, func(n *html.Node) {
			if n.DataAtom == atom.A || n.DataAtom == atom.Button {
				disable(n)
			}
		})
	}
}

func (p *Preview) Finalized() bool {
	return p.finalized
}

// Render writes the enhanced document body.
func (p *Preview) Render(w io.Writer) error {
	body := findFirst(p.Table.doc, atom.Body)
	if body == nil {
		return html.Render(w, p.Table.doc)
	}
	for c := body.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(w, c); err != nil {
			return fmt.Errorf("error rendering preview: %w", err)
		}
	}
	return nil
}

// release destroys the charts built so far.
func (p *Preview) release() {
	for i, col := range p.columns {
		p.sync.Detach(i)
		col.chart.Destroy()
	}
}

func insertBefore(ref, n *html.Node) {
	if ref.Parent != nil {
		ref.Parent.InsertBefore(n, ref)
	}
}

func insertAfter(ref, n *html.Node) {
	if ref.Parent != nil {
		ref.Parent.InsertBefore(n, ref.NextSibling)
	}
}

func columnClass(name string) string {
	if s := slug(name); s != "" {
		return "dt-column-" + s
	}
	return ""
}

func joinClass(classes ...string) string {
	var out []string
	seen := map[string]bool{}
	for _, c := range classes {
		for _, f := range strings.Fields(c) {
			if !seen[f] {
				seen[f] = true
				out = append(out, f)
			}
		}
	}
	return strings.Join(out, " ")
}
