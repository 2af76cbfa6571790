package internal

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Deps are the collaborators the routes are wired to.
type Deps struct {
	Port     string
	API      Fetcher
	PDF      Renderer
	Verifier *Verifier
}

// NewRouter registers every route of the service.
func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(RequestContext(), Recovery())

	r.GET("/health", Health(d.Port))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	reports := r.Group("/reports", AdminOnly(d.Verifier))
	{
		reports.GET("/teams.pdf", TeamsReport(d.API, d.PDF))
		reports.GET("/teams/:teamId/players.pdf", PlayersReport(d.API, d.PDF))
		reports.GET("/matches/history.pdf", HistoryReport(d.API, d.PDF))
		reports.GET("/matches/:matchId/roster.pdf", RosterReport(d.API, d.PDF))
		reports.GET("/standings.pdf", StandingsReport(d.API, d.PDF))
		reports.GET("/players/:playerId/stats.pdf", PlayerStatsReport(d.API, d.PDF))
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, ErrorResponse{Detail: "Not Found"})
	})
	return r
}
