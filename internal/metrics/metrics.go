// Package metrics exposes Prometheus collectors for the report service.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "report_service"

// Report outcomes.
const (
	OutcomeOK            = "ok"
	OutcomeUpstreamError = "upstream_error"
	OutcomeRenderError   = "render_error"
)

var (
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by route and status",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	Reports = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reports_total",
			Help:      "Report requests that passed authorization, by outcome",
		},
		[]string{"report", "outcome"},
	)

	ReportBytes = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "report_bytes",
			Help:      "Size of rendered PDF documents",
			Buckets:   prometheus.ExponentialBuckets(1024, 2, 12), // 1KiB .. 2MiB
		},
		[]string{"report"},
	)

	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_request_duration_seconds",
			Help:      "Latency of upstream API calls",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"outcome"},
	)

	AuthDenials = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "auth_denials_total",
			Help:      "Requests rejected by the admin credential gate",
		},
		[]string{"status"},
	)
)

// RecordHTTPRequest records one served request.
func RecordHTTPRequest(method, route string, status int, d time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// RecordReport counts a report attempt with its outcome.
func RecordReport(report, outcome string) {
	Reports.WithLabelValues(report, outcome).Inc()
}

// ObserveReportSize records the size of a rendered PDF.
func ObserveReportSize(report string, n int) {
	ReportBytes.WithLabelValues(report).Observe(float64(n))
}

// ObserveUpstream records an upstream call. outcome is a status class such as
// "2xx", "4xx", or "transport".
func ObserveUpstream(outcome string, d time.Duration) {
	UpstreamRequestDuration.WithLabelValues(outcome).Observe(d.Seconds())
}

// RecordAuthDenial counts a rejected credential.
func RecordAuthDenial(status int) {
	AuthDenials.WithLabelValues(strconv.Itoa(status)).Inc()
}

// StatusClass maps an HTTP status to "2xx", "4xx", ...
func StatusClass(status int) string {
	if status < 100 || status > 599 {
		return "unknown"
	}
	return strconv.Itoa(status/100) + "xx"
}
