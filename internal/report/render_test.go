package report

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/go-pdf/fpdf"
	. "github.com/smartystreets/goconvey/convey"
)

var pageCount = regexp.MustCompile(`/Count (\d+)`)

func pages(pdf []byte) int {
	m := pageCount.FindSubmatch(pdf)
	if m == nil {
		return 0
	}
	n, _ := strconv.Atoi(string(m[1]))
	return n
}

func newTestPage() *page {
	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.AddPage()
	pdf.SetFont(fontFamily, "", bodySize)
	return &page{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
}

func fixedClock() time.Time {
	return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
}

func TestRender(t *testing.T) {
	Convey("Given a renderer with a fixed clock", t, func() {
		r := NewRenderer(WithClock(fixedClock))

		Convey("When rendering every report type", func() {
			docs := []*Document{
				Teams(decoded(`[{"id":"1","Name":"Lions","color":"red"}]`)),
				Players("3", decoded(`[{"name":"Ana","position":"GK","number":1}]`)),
				History(decoded(`[]`), "2024-01-01", "2024-02-01"),
				Roster("9", decoded(`{"homeTeam":{"name":"Lions","players":[{"name":"A"}]}}`)),
				Standings(decoded(`[{"name":"Eagles","wins":5},{"name":"Hawks"}]`)),
				PlayerStats("4", decoded(`{"goals":3}`)),
			}

			Convey("Then each produces a one page PDF", func() {
				for _, d := range docs {
					out, err := r.Render(d)
					So(err, ShouldBeNil)
					So(bytes.HasPrefix(out, []byte("%PDF-")), ShouldBeTrue)
					So(pages(out), ShouldEqual, 1)
				}
			})
		})

		Convey("When rendering the same document twice", func() {
			doc := Standings(decoded(`[{"name":"Eagles","wins":5}]`))
			a, errA := r.Render(doc)
			b, errB := r.Render(doc)

			Convey("Then the bytes are identical", func() {
				So(errA, ShouldBeNil)
				So(errB, ShouldBeNil)
				So(bytes.Equal(a, b), ShouldBeTrue)
			})
		})

		Convey("When a table does not fit on one page", func() {
			var sb strings.Builder
			sb.WriteString("[")
			for i := 0; i < 200; i++ {
				if i > 0 {
					sb.WriteString(",")
				}
				fmt.Fprintf(&sb, `{"id":%d,"name":"Team %d","color":"c","created":"2024-01-01"}`, i, i)
			}
			sb.WriteString("]")
			out, err := r.Render(Teams(decoded(sb.String())))

			Convey("Then the flow continues on further pages", func() {
				So(err, ShouldBeNil)
				So(pages(out), ShouldBeGreaterThan, 1)
			})
		})

		Convey("When cells are too wide or use non-Latin text", func() {
			doc := NewDocument("Über → ünïcödé ✓").Add(Paragraph{Text: "señal"})
			tb := NewTable("#", "Team", "Wins")
			tb.Widths = []float64{28, 5000, 90}
			tb.Append(1, strings.Repeat("very long team name ", 40), 3)
			tb.Append(2)
			doc.Add(tb, NewTable())

			out, err := r.Render(doc)

			Convey("Then rendering still succeeds", func() {
				So(err, ShouldBeNil)
				So(bytes.HasPrefix(out, []byte("%PDF-")), ShouldBeTrue)
			})
		})
	})
}

func TestRenderOversizedCell(t *testing.T) {
	Convey("Given a teams listing with a 100 KB name", t, func() {
		name := strings.Repeat("Lions ", 100_000/6)
		doc := Teams([]any{map[string]any{"id": "1", "name": name}})

		Convey("Then it renders in bounded time", func() {
			start := time.Now()
			out, err := NewRenderer(WithClock(fixedClock)).Render(doc)
			So(time.Since(start), ShouldBeLessThan, 5*time.Second)
			So(err, ShouldBeNil)
			So(pages(out), ShouldEqual, 1)
		})
	})
}

func TestFit(t *testing.T) {
	Convey("Given a page with the body font", t, func() {
		p := newTestPage()

		Convey("Short text is kept", func() {
			So(p.fit("Lions", 100), ShouldEqual, "Lions")
		})

		Convey("Long text is cut and marked", func() {
			got := p.fit(strings.Repeat("x", 500), 60)
			So(strings.HasSuffix(got, "..."), ShouldBeTrue)
			So(p.pdf.GetStringWidth(got), ShouldBeLessThanOrEqualTo, float64(60-2*cellPadding))
		})

		Convey("The cut is the longest prefix that fits", func() {
			got := p.fit(strings.Repeat("x", 500), 60)
			kept := strings.TrimSuffix(got, "...")
			So(p.pdf.GetStringWidth(kept+"x..."), ShouldBeGreaterThan, float64(60-2*cellPadding))
		})

		Convey("Very long text is cut in bounded time", func() {
			start := time.Now()
			got := p.fit(strings.Repeat("abcdefghij", 10_000), 120)
			So(time.Since(start), ShouldBeLessThan, 2*time.Second)
			So(strings.HasSuffix(got, "..."), ShouldBeTrue)
			So(len(got), ShouldBeLessThan, 100)
		})
	})
}
