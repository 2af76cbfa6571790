package report

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
)

// Page geometry, in points.
const (
	margin = 18 * 72 / 25.4 // 18mm

	titleSize    = 18
	titleLeading = 22
	titleAfter   = 10

	headingSize    = 14
	headingLeading = 17
	headingSpacing = 6

	textSize    = 10
	textLeading = 13

	headerSize   = 10
	bodySize     = 9
	headerHeight = 18
	rowHeight    = 16
	cellPadding  = 4
	gridWidth    = 0.25
)

const fontFamily = "Helvetica"

type rgb struct{ r, g, b int }

var (
	headerFill = rgb{0xF2, 0xF2, 0xF2}
	headerText = rgb{0x33, 0x33, 0x33}
	gridColor  = rgb{0xCC, 0xCC, 0xCC}
	rowFills   = []rgb{{0xFF, 0xFF, 0xFF}, {0xFA, 0xFA, 0xFA}}
	black      = rgb{0, 0, 0}
)

// Core fonts are cp1252; runes outside it are spelled out first.
var asciiFallback = strings.NewReplacer("→", "->", "…", "...")

// Renderer lays out Documents on A4 portrait pages.
type Renderer struct {
	now func() time.Time
}

// RenderOption configures a Renderer.
type RenderOption func(*Renderer)

// WithClock sets the clock used for the PDF creation date.
func WithClock(now func() time.Time) RenderOption {
	return func(r *Renderer) {
		if now != nil {
			r.now = now
		}
	}
}

// NewRenderer creates a Renderer.
func NewRenderer(opts ...RenderOption) *Renderer {
	r := &Renderer{now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render produces the PDF bytes for doc.
func (r *Renderer) Render(doc *Document) ([]byte, error) {
	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(true, margin)
	pdf.SetCellMargin(cellPadding)
	pdf.SetTitle("Reportes", true)
	pdf.SetAuthor("report-service", true)
	now := r.now()
	pdf.SetCreationDate(now)
	pdf.SetModificationDate(now)
	pdf.SetCatalogSort(true)

	p := &page{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
	pdf.AddPage()

	p.title(doc.Title)
	for _, b := range doc.Blocks {
		switch x := b.(type) {
		case Heading:
			p.heading(x.Text)
		case Paragraph:
			p.paragraph(x.Text)
		case Spacer:
			pdf.Ln(x.Height)
		case *Table:
			p.table(x)
		}
	}

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("render %q: %w", doc.Title, err)
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render %q: %w", doc.Title, err)
	}
	return buf.Bytes(), nil
}

type page struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

func (p *page) text(s string) string {
	return p.tr(asciiFallback.Replace(s))
}

func (p *page) color(c rgb, set func(r, g, b int)) {
	set(c.r, c.g, c.b)
}

func (p *page) title(s string) {
	p.pdf.SetFont(fontFamily, "B", titleSize)
	p.color(black, p.pdf.SetTextColor)
	p.pdf.MultiCell(0, titleLeading, p.text(s), "", "C", false)
	p.pdf.Ln(titleAfter)
}

func (p *page) heading(s string) {
	p.pdf.Ln(headingSpacing)
	p.pdf.SetFont(fontFamily, "B", headingSize)
	p.color(black, p.pdf.SetTextColor)
	p.pdf.MultiCell(0, headingLeading, p.text(s), "", "L", false)
	p.pdf.Ln(headingSpacing)
}

func (p *page) paragraph(s string) {
	p.pdf.SetFont(fontFamily, "", textSize)
	p.color(black, p.pdf.SetTextColor)
	p.pdf.MultiCell(0, textLeading, p.text(s), "", "L", false)
}

func (p *page) table(t *Table) {
	if len(t.Header) == 0 {
		return
	}
	widths := p.columnWidths(t)

	p.color(gridColor, p.pdf.SetDrawColor)
	p.pdf.SetLineWidth(gridWidth)

	p.pdf.SetFont(fontFamily, "B", headerSize)
	p.color(headerFill, p.pdf.SetFillColor)
	p.color(headerText, p.pdf.SetTextColor)
	for i, h := range t.Header {
		p.pdf.CellFormat(widths[i], headerHeight, p.fit(p.text(h), widths[i]), "1", lnAfter(i, len(widths)), "C", true, 0, "")
	}

	p.pdf.SetFont(fontFamily, "", bodySize)
	p.color(black, p.pdf.SetTextColor)
	for n, row := range t.Rows {
		p.color(rowFills[n%len(rowFills)], p.pdf.SetFillColor)
		for i := range widths {
			var cell any = ""
			if i < len(row) {
				cell = row[i]
			}
			p.pdf.CellFormat(widths[i], rowHeight, p.fit(p.text(Format(cell)), widths[i]), "1", lnAfter(i, len(widths)), "L", true, 0, "")
		}
	}
}

// columnWidths honours explicit widths, scaled down to the usable width when
// they overflow it, and otherwise splits the usable width evenly.
func (p *page) columnWidths(t *Table) []float64 {
	pageW, _ := p.pdf.GetPageSize()
	usable := pageW - 2*margin
	n := len(t.Header)

	if len(t.Widths) == n {
		sum := 0.0
		for _, w := range t.Widths {
			sum += w
		}
		scale := 1.0
		if sum > usable {
			scale = usable / sum
		}
		out := make([]float64, n)
		for i, w := range t.Widths {
			out[i] = w * scale
		}
		return out
	}

	out := make([]float64, n)
	for i := range out {
		out[i] = usable / float64(n)
	}
	return out
}

// fit truncates already-translated text so it fits in a column of width w.
func (p *page) fit(s string, w float64) string {
	avail := w - 2*cellPadding
	if p.pdf.GetStringWidth(s) <= avail {
		return s
	}
	const ellipsis = "..."
	// Prefix width grows with length, so the cut point is found by bisection.
	lo, hi := 0, len(s)
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if p.pdf.GetStringWidth(s[:mid]+ellipsis) <= avail {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return s[:lo] + ellipsis
}

func lnAfter(i, n int) int {
	if i == n-1 {
		return 1
	}
	return 0
}
