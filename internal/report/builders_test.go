package report

import (
	"encoding/json"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

// decoded mimics what the upstream client hands to the builders.
func decoded(raw string) any {
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		panic(err)
	}
	return v
}

func row(cells ...any) []any { return cells }

func shouldBeRectangular(doc *Document) {
	for _, t := range doc.Tables() {
		for _, r := range t.Rows {
			So(len(r), ShouldEqual, len(t.Header))
		}
	}
}

func TestTeamsReport(t *testing.T) {
	Convey("Given the upstream teams payload", t, func() {
		doc := Teams(decoded(`[{"id":"1","Name":"Lions","color":"red"}]`))

		Convey("Then one row is built with a placeholder for the missing date", func() {
			So(doc.Title, ShouldEqual, "Listado de Equipos")
			So(doc.Texts(), ShouldResemble, []string{"Total: 1"})
			tables := doc.Tables()
			So(tables, ShouldHaveLength, 1)
			So(tables[0].Header, ShouldResemble, []string{"ID", "Name", "Color", "Created"})
			So(tables[0].Rows, ShouldResemble, [][]any{row("1", "Lions", "red", "-")})
		})
	})

	Convey("Given numeric ids and PascalCase keys", t, func() {
		doc := Teams(decoded(`[{"Id":12,"name":"Hawks","Color":"blue","CreatedAt":"2024-03-01"}]`))

		Convey("Then aliases and number formatting apply", func() {
			So(doc.Tables()[0].Rows[0], ShouldResemble, row("12", "Hawks", "blue", "2024-03-01"))
		})
	})

	Convey("Given an empty collection", t, func() {
		doc := Teams(decoded(`[]`))

		Convey("Then a header-only table and a zero total are produced", func() {
			So(doc.Texts(), ShouldResemble, []string{"Total: 0"})
			So(doc.Tables()[0].Len(), ShouldEqual, 0)
			So(doc.Tables()[0].Header, ShouldHaveLength, 4)
		})
	})

	Convey("Given a payload that is not a list", t, func() {
		doc := Teams(decoded(`{"error":"nope"}`))

		Convey("Then the report is still produced, empty", func() {
			So(doc.Texts(), ShouldResemble, []string{"Total: 0"})
		})
	})
}

func TestNonObjectEntriesAreSkipped(t *testing.T) {
	Convey("Given collections containing nulls, strings and numbers", t, func() {
		payload := `[null, "junk", {"name":"A","Position":"GK","jersey":1}, 5, {"Name":"B"}]`

		Convey("Players counts only the objects and numbers them sequentially", func() {
			doc := Players("3", decoded(payload))
			So(doc.Title, ShouldEqual, "Jugadores del Equipo #3")
			So(doc.Texts(), ShouldResemble, []string{"Total: 2"})
			So(doc.Tables()[0].Rows, ShouldResemble, [][]any{
				row(1, "A", "GK", "1"),
				row(2, "B", "-", "-"),
			})
			shouldBeRectangular(doc)
		})

		Convey("Teams counts only the objects", func() {
			doc := Teams(decoded(payload))
			So(doc.Texts(), ShouldResemble, []string{"Total: 2"})
			shouldBeRectangular(doc)
		})

		Convey("History counts only the objects", func() {
			doc := History(decoded(payload), "", "")
			So(doc.Texts(), ShouldResemble, []string{"Total partidos: 2"})
			shouldBeRectangular(doc)
		})

		Convey("Standings counts only the objects", func() {
			doc := Standings(decoded(payload))
			So(doc.Texts(), ShouldResemble, []string{"Total: 2"})
			So(doc.Tables()[0].Rows, ShouldResemble, [][]any{row(1, "A", 0), row(2, "-", 0)})
		})
	})
}

func TestHistoryReport(t *testing.T) {
	Convey("Given a date range and no matches", t, func() {
		doc := History(decoded(`[]`), "2024-01-01", "2024-02-01")

		Convey("Then the title carries the range and the total is zero", func() {
			So(doc.Title, ShouldEqual, "Historial de Partidos (rango: 2024-01-01 → 2024-02-01)")
			So(doc.Texts(), ShouldResemble, []string{"Total partidos: 0"})
			So(doc.Tables()[0].Header, ShouldResemble, []string{"Date", "Home", "Away", "Score", "Status"})
		})
	})

	Convey("Given only one bound", t, func() {
		Convey("Then the other shows an ellipsis", func() {
			So(History(nil, "", "2024-02-01").Title, ShouldEqual, "Historial de Partidos (rango: ... → 2024-02-01)")
			So(History(nil, "2024-01-01", "").Title, ShouldEqual, "Historial de Partidos (rango: 2024-01-01 → ...)")
			So(History(nil, "", "").Title, ShouldEqual, "Historial de Partidos")
		})
	})

	Convey("Given matches with mixed key styles", t, func() {
		doc := History(decoded(`[
			{"dateMatchUtc":"2024-01-05","homeTeamName":"Lions","awayTeam":"Hawks","homeScore":2,"awayScore":1,"status":"Finished"},
			{"DateMatch":"2024-01-06","HomeTeamName":"Eagles","AwayTeamName":"Bears","HomeScore":0,"Status":"Scheduled"}
		]`), "", "")

		Convey("Then scores are joined and gaps use the placeholder", func() {
			So(doc.Tables()[0].Rows, ShouldResemble, [][]any{
				row("2024-01-05", "Lions", "Hawks", "2 - 1", "Finished"),
				row("2024-01-06", "Eagles", "Bears", "0 - -", "Scheduled"),
			})
		})
	})
}

func TestRosterReport(t *testing.T) {
	Convey("Given a roster with a home line-up and no away players", t, func() {
		doc := Roster("9", decoded(`{
			"homeTeam": {"name":"Lions","players":[{"name":"A","position":"GK","number":1}, "junk"]},
			"AwayTeam": {"Name":"Hawks","Players":[]}
		}`))

		Convey("Then the home side gets a table and the away side a notice", func() {
			So(doc.Title, ShouldEqual, "Roster del Partido #9")
			So(doc.Texts(), ShouldResemble, []string{"Lions", "Hawks", "Sin detalles de jugadores."})
			tables := doc.Tables()
			So(tables, ShouldHaveLength, 1)
			So(tables[0].Rows, ShouldResemble, [][]any{row(1, "A", "GK", "1")})
		})
	})

	Convey("Given a roster payload without team objects", t, func() {
		doc := Roster("1", decoded(`[1,2,3]`))

		Convey("Then default names and notices are rendered", func() {
			So(doc.Texts(), ShouldResemble, []string{
				"Local", "Sin detalles de jugadores.",
				"Visitante", "Sin detalles de jugadores.",
			})
			So(doc.Tables(), ShouldBeEmpty)
		})
	})
}

func TestStandingsReport(t *testing.T) {
	Convey("Given standings with a missing wins value", t, func() {
		doc := Standings(decoded(`[{"name":"Eagles","wins":5},{"name":"Hawks"}]`))

		Convey("Then wins default to zero and rows are indexed", func() {
			So(doc.Title, ShouldEqual, "Tabla de Posiciones")
			So(doc.Texts(), ShouldResemble, []string{"Total: 2"})
			tb := doc.Tables()[0]
			So(tb.Header, ShouldResemble, []string{"#", "Team", "Wins"})
			So(tb.Rows, ShouldResemble, [][]any{row(1, "Eagles", 5), row(2, "Hawks", 0)})
			So(tb.Widths, ShouldHaveLength, 3)
		})
	})

	Convey("Given a name only under a differently cased key", t, func() {
		doc := Standings(decoded(`[{"Name":"Eagles","wins":"7"}]`))

		Convey("Then no alias fallback happens", func() {
			So(doc.Tables()[0].Rows[0], ShouldResemble, row(1, "-", 7))
		})
	})
}

func TestPlayerStatsReport(t *testing.T) {
	Convey("Given a stats object", t, func() {
		doc := PlayerStats("4", decoded(`{"goals":3,"assists":1,"cards":{"yellow":2},"team":null}`))

		Convey("Then one sorted row per key is rendered", func() {
			So(doc.Title, ShouldEqual, "Estadísticas del Jugador #4")
			So(doc.Tables()[0].Rows, ShouldResemble, [][]any{
				row("assists", "1"),
				row("cards", `{"yellow":2}`),
				row("goals", "3"),
				row("team", "-"),
			})
		})
	})

	Convey("Given a payload that is not an object", t, func() {
		doc := PlayerStats("4", decoded(`[1]`))

		Convey("Then a single placeholder row is rendered", func() {
			So(doc.Tables()[0].Rows, ShouldResemble, [][]any{row("-", "-")})
		})
	})
}

func TestTableAppendKeepsShape(t *testing.T) {
	Convey("Given a three column table", t, func() {
		tb := NewTable("a", "b", "c")

		Convey("Short rows are padded and long rows are cut", func() {
			tb.Append("1")
			tb.Append("1", "2", "3", "4")
			So(tb.Rows, ShouldResemble, [][]any{row("1", "-", "-"), row("1", "2", "3")})
		})
	})
}
