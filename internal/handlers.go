package internal

import (
	"context"
	"net/http"
	"net/url"

	"report-service/internal/logging"
	"report-service/internal/metrics"
	"report-service/internal/report"

	"github.com/gin-gonic/gin"
)

// Fetcher is the upstream API as seen by the report handlers.
type Fetcher interface {
	Fetch(ctx context.Context, path string, query url.Values, credential string) (any, error)
}

// Renderer turns a report document into PDF bytes.
type Renderer interface {
	Render(doc *report.Document) ([]byte, error)
}

func Health(port string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, HealthStatus{Status: "ok", Service: "report-service", Port: port})
	}
}

// ------------------- Reports -------------------

// GET /reports/teams.pdf
func TeamsReport(api Fetcher, pdf Renderer) gin.HandlerFunc {
	return func(c *gin.Context) {
		data, ok := fetch(c, api, report.NameTeams, "/api/teams", nil)
		if !ok {
			return
		}
		sendPDF(c, pdf, report.NameTeams, report.Teams(data), "equipos.pdf")
	}
}

// GET /reports/teams/:teamId/players.pdf
func PlayersReport(api Fetcher, pdf Renderer) gin.HandlerFunc {
	return func(c *gin.Context) {
		teamID := c.Param("teamId")
		data, ok := fetch(c, api, report.NamePlayers, "/api/teams/"+url.PathEscape(teamID)+"/players", nil)
		if !ok {
			return
		}
		sendPDF(c, pdf, report.NamePlayers, report.Players(teamID, data), "players_"+teamID+".pdf")
	}
}

// GET /reports/matches/history.pdf?from=&to=
func HistoryReport(api Fetcher, pdf Renderer) gin.HandlerFunc {
	return func(c *gin.Context) {
		from, to := c.Query("from"), c.Query("to")
		q := url.Values{}
		if from != "" {
			q.Set("from", from)
		}
		if to != "" {
			q.Set("to", to)
		}
		data, ok := fetch(c, api, report.NameHistory, "/api/matches/history", q)
		if !ok {
			return
		}
		sendPDF(c, pdf, report.NameHistory, report.History(data, from, to), "history.pdf")
	}
}

// GET /reports/matches/:matchId/roster.pdf
func RosterReport(api Fetcher, pdf Renderer) gin.HandlerFunc {
	return func(c *gin.Context) {
		matchID := c.Param("matchId")
		data, ok := fetch(c, api, report.NameRoster, "/api/matches/"+url.PathEscape(matchID)+"/roster", nil)
		if !ok {
			return
		}
		sendPDF(c, pdf, report.NameRoster, report.Roster(matchID, data), "roster_"+matchID+".pdf")
	}
}

// GET /reports/standings.pdf
func StandingsReport(api Fetcher, pdf Renderer) gin.HandlerFunc {
	return func(c *gin.Context) {
		data, ok := fetch(c, api, report.NameStandings, "/api/standings", nil)
		if !ok {
			return
		}
		sendPDF(c, pdf, report.NameStandings, report.Standings(data), "standings.pdf")
	}
}

// GET /reports/players/:playerId/stats.pdf
func PlayerStatsReport(api Fetcher, pdf Renderer) gin.HandlerFunc {
	return func(c *gin.Context) {
		playerID := c.Param("playerId")
		data, ok := fetch(c, api, report.NamePlayerStats, "/api/players/"+url.PathEscape(playerID)+"/stats", nil)
		if !ok {
			return
		}
		sendPDF(c, pdf, report.NamePlayerStats, report.PlayerStats(playerID, data), "player_stats_"+playerID+".pdf")
	}
}

// fetch calls the upstream with the caller's forwarded credential. On failure
// it writes the 502 response and returns false.
func fetch(c *gin.Context, api Fetcher, name, path string, q url.Values) (any, bool) {
	data, err := api.Fetch(c.Request.Context(), path, q, c.GetHeader(apiAuthHeader))
	if err == nil {
		return data, true
	}
	metrics.RecordReport(name, metrics.OutcomeUpstreamError)
	logging.Ctx(c.Request.Context()).Warn().
		Err(err).
		Str("report", name).
		Msg("upstream fetch failed")
	status, body := upstreamError(err)
	c.AbortWithStatusJSON(status, body)
	return nil, false
}

func sendPDF(c *gin.Context, pdf Renderer, name string, doc *report.Document, filename string) {
	out, err := pdf.Render(doc)
	if err != nil {
		metrics.RecordReport(name, metrics.OutcomeRenderError)
		logging.Ctx(c.Request.Context()).Error().
			Err(err).
			Str("report", name).
			Msg("render failed")
		c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{Detail: MessageDetail{Message: err.Error()}})
		return
	}

	metrics.RecordReport(name, metrics.OutcomeOK)
	metrics.ObserveReportSize(name, len(out))
	logAction(c, "report_"+name, "filename="+filename)

	c.Header("Content-Disposition", attachment(filename))
	c.Data(http.StatusOK, "application/pdf", out)
}
