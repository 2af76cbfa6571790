package internal

import (
	"errors"
	"net/http"
	"strings"

	"report-service/internal/logging"
	"report-service/internal/upstream"

	"github.com/gin-gonic/gin"
)

// logAction writes an audit line for an admin action.
func logAction(c *gin.Context, action, details string) {
	l := logging.Fields(c.Request.Context(), "action", action, "details", details)
	l.Info().Msg("audit")
}

// upstreamError translates a failed upstream fetch into a 502 response body.
func upstreamError(err error) (int, ErrorResponse) {
	var f *upstream.Failure
	if errors.As(err, &f) {
		if f.HasStatus() {
			return http.StatusBadGateway, ErrorResponse{Detail: UpstreamErrorDetail{
				UpstreamURL: f.URL,
				StatusCode:  f.StatusCode,
				Body:        f.Body,
			}}
		}
		return http.StatusBadGateway, ErrorResponse{Detail: MessageDetail{Message: f.Message()}}
	}
	return http.StatusBadGateway, ErrorResponse{Detail: MessageDetail{Message: err.Error()}}
}

// attachment builds a Content-Disposition value, dropping characters that
// would break the quoted filename.
func attachment(filename string) string {
	clean := strings.Map(func(r rune) rune {
		if r == '"' || r == '\\' || r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, filename)
	return `attachment; filename="` + clean + `"`
}
