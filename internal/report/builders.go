package report

import (
	"fmt"
	"sort"
)

// Report names, used in metrics labels and audit logs.
const (
	NameTeams       = "teams"
	NamePlayers     = "players"
	NameHistory     = "history"
	NameRoster      = "roster"
	NameStandings   = "standings"
	NamePlayerStats = "player_stats"
)

const noPlayerDetails = "Sin detalles de jugadores."

// standingsWidths keeps the index and wins columns narrow.
var standingsWidths = []float64{28, 340, 90}

// Teams lists every team.
func Teams(data any) *Document {
	t := NewTable("ID", "Name", "Color", "Created")
	for _, r := range Records(data) {
		t.Append(
			Text(r, Placeholder, "id", "Id"),
			Text(r, Placeholder, "name", "Name"),
			Text(r, Placeholder, "color", "Color"),
			Text(r, Placeholder, "created", "Created", "createdAt", "CreatedAt"),
		)
	}
	return listing("Listado de Equipos", fmt.Sprintf("Total: %d", t.Len()), t)
}

// Players lists the players of one team.
func Players(teamID string, data any) *Document {
	t := playersTable(Records(data))
	return listing(fmt.Sprintf("Jugadores del Equipo #%s", teamID), fmt.Sprintf("Total: %d", t.Len()), t)
}

// History lists matches, optionally restricted to a from/to range.
func History(data any, from, to string) *Document {
	title := "Historial de Partidos"
	if from != "" || to != "" {
		title += fmt.Sprintf(" (rango: %s → %s)", orEllipsis(from), orEllipsis(to))
	}

	t := NewTable("Date", "Home", "Away", "Score", "Status")
	for _, m := range Records(data) {
		home := Text(m, Placeholder, "homeTeamName", "homeTeam", "HomeTeamName")
		away := Text(m, Placeholder, "awayTeamName", "awayTeam", "AwayTeamName")
		hs := Text(m, Placeholder, "homeScore", "HomeScore")
		as := Text(m, Placeholder, "awayScore", "AwayScore")
		date := Text(m, Placeholder, "dateMatchUtc", "date", "DateMatch", "DateMatchUtc")
		status := Text(m, Placeholder, "status", "Status")
		t.Append(date, home, away, hs+" - "+as, status)
	}
	return listing(title, fmt.Sprintf("Total partidos: %d", t.Len()), t)
}

// Roster renders the home and away line-ups of a match.
func Roster(matchID string, data any) *Document {
	rec, _ := AsRecord(data)
	doc := NewDocument(fmt.Sprintf("Roster del Partido #%s", matchID)).Add(Spacer{Height: 8})
	rosterSide(doc, rec, "Local", "homeTeam", "HomeTeam")
	rosterSide(doc, rec, "Visitante", "awayTeam", "AwayTeam")
	return doc
}

func rosterSide(doc *Document, roster Record, defName string, aliases ...string) {
	team, _ := Nested(roster, aliases...)
	doc.Add(Heading{Text: Text(team, defName, "name", "Name")})

	players := List(team, "players", "Players")
	if len(players) == 0 {
		doc.Add(Paragraph{Text: noPlayerDetails}, Spacer{Height: 6})
		return
	}
	doc.Add(playersTable(Records(players)), Spacer{Height: 6})
}

// Standings ranks teams by the order the upstream returns them.
func Standings(data any) *Document {
	t := NewTable("#", "Team", "Wins")
	t.Widths = standingsWidths
	for i, r := range Records(data) {
		t.Append(i+1, Text(r, Placeholder, "name"), Int(r["wins"]))
	}
	return listing("Tabla de Posiciones", fmt.Sprintf("Total: %d", t.Len()), t)
}

// PlayerStats renders one row per statistic of a player.
func PlayerStats(playerID string, data any) *Document {
	t := NewTable("Campo", "Valor")
	if rec, ok := AsRecord(data); ok {
		keys := make([]string, 0, len(rec))
		for k := range rec {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			t.Append(k, Text(rec, Placeholder, k))
		}
	} else {
		t.Append(Placeholder, Placeholder)
	}
	return NewDocument(fmt.Sprintf("Estadísticas del Jugador #%s", playerID)).Add(Spacer{Height: 8}, t)
}

func playersTable(players []Record) *Table {
	t := NewTable("#", "Player", "Position", "Number")
	for i, p := range players {
		t.Append(
			i+1,
			Text(p, Placeholder, "name", "Name"),
			Text(p, Placeholder, "position", "Position"),
			Text(p, Placeholder, "number", "Number", "jersey", "Jersey"),
		)
	}
	return t
}

func listing(title, summary string, t *Table) *Document {
	return NewDocument(title).Add(
		Spacer{Height: 6},
		Paragraph{Text: summary},
		Spacer{Height: 8},
		t,
	)
}

func orEllipsis(s string) string {
	if s == "" {
		return "..."
	}
	return s
}
