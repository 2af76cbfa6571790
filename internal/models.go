package internal

type HealthStatus struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Port    string `json:"port"`
}

// UpstreamErrorDetail is the 502 detail when the upstream answered non-2xx.
type UpstreamErrorDetail struct {
	UpstreamURL string `json:"upstream_url"`
	StatusCode  int    `json:"status_code"`
	Body        string `json:"body"`
}

type MessageDetail struct {
	Message string `json:"message"`
}

// ErrorResponse wraps every error body: {"detail": ...}.
type ErrorResponse struct {
	Detail any `json:"detail"`
}
