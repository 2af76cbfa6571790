// Package report turns loosely typed upstream records into PDF reports.
//
// Builders map upstream JSON onto a Document (a title plus a flow of
// headings, paragraphs, spacers and tables) and a Renderer lays the
// Document out on A4 pages. Builders never fail: missing fields become
// Placeholder and non-object entries are skipped.
package report

// Block is one element of a Document's top-to-bottom flow.
type Block interface {
	block()
}

// Heading is a section title.
type Heading struct {
	Text string
}

// Paragraph is a line of normal text.
type Paragraph struct {
	Text string
}

// Spacer is vertical space, in points.
type Spacer struct {
	Height float64
}

// Table is a header row plus data rows. Every row has len(Header) cells;
// cells are strings or ints.
type Table struct {
	Header []string
	Rows   [][]any

	// Widths optionally fixes column widths in points. When nil the usable
	// page width is split evenly.
	Widths []float64
}

func (Heading) block()   {}
func (Paragraph) block() {}
func (Spacer) block()    {}
func (*Table) block()    {}

// NewTable creates a table with the given header.
func NewTable(header ...string) *Table {
	return &Table{Header: header, Rows: [][]any{}}
}

// Append adds a row, padding with Placeholder or dropping extra cells so the
// row matches the header length.
func (t *Table) Append(cells ...any) {
	row := make([]any, len(t.Header))
	for i := range row {
		if i < len(cells) {
			row[i] = cells[i]
		} else {
			row[i] = Placeholder
		}
	}
	t.Rows = append(t.Rows, row)
}

// Len is the number of data rows.
func (t *Table) Len() int { return len(t.Rows) }

// Document is a titled flow of blocks.
type Document struct {
	Title  string
	Blocks []Block
}

// NewDocument starts a document with the given title.
func NewDocument(title string) *Document {
	return &Document{Title: title}
}

// Add appends blocks to the flow.
func (d *Document) Add(blocks ...Block) *Document {
	d.Blocks = append(d.Blocks, blocks...)
	return d
}

// Tables returns the document's tables in flow order.
func (d *Document) Tables() []*Table {
	var out []*Table
	for _, b := range d.Blocks {
		if t, ok := b.(*Table); ok {
			out = append(out, t)
		}
	}
	return out
}

// Texts returns the text of headings and paragraphs in flow order.
func (d *Document) Texts() []string {
	var out []string
	for _, b := range d.Blocks {
		switch x := b.(type) {
		case Heading:
			out = append(out, x.Text)
		case Paragraph:
			out = append(out, x.Text)
		}
	}
	return out
}
