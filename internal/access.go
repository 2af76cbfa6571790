package internal

import (
	"net/http"
	"time"

	"report-service/internal/logging"
	"report-service/internal/metrics"

	"github.com/gin-gonic/gin"
)

const requestIDHeader = "X-Request-ID"

// RequestContext assigns a request ID, attaches a request-scoped logger and
// writes the access log and HTTP metrics once the handler chain returns.
func RequestContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = logging.GenerateRequestID()
		}
		ctx := logging.WithRequestID(c.Request.Context(), id)
		c.Request = c.Request.WithContext(ctx)
		c.Header(requestIDHeader, id)

		c.Next()

		status := c.Writer.Status()
		route := c.FullPath()
		elapsed := time.Since(start)
		metrics.RecordHTTPRequest(c.Request.Method, route, status, elapsed)
		logging.Ctx(ctx).Info().
			Str("method", c.Request.Method).
			Str("route", route).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Int("bytes", c.Writer.Size()).
			Dur("latency", elapsed).
			Msg("request")
	}
}

// Recovery turns handler panics into a 500 JSON error.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, err any) {
		logging.Ctx(c.Request.Context()).Error().
			Interface("panic", err).
			Msg("handler panicked")
		c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{Detail: "internal server error"})
	})
}
