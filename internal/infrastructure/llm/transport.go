package llm

import (
	"net/http"
	"time"

	"article-crew/internal/application/port/output"
)

// LoggingTransport records outbound LLM calls. Headers are never logged so
// the user's credential stays out of the logs.
type LoggingTransport struct {
	Base   http.RoundTripper
	Logger output.LoggerPort
}

func NewLoggingClient(logger output.LoggerPort) *http.Client {
	return &http.Client{
		Transport: &LoggingTransport{
			Base:   http.DefaultTransport,
			Logger: logger,
		},
	}
}

func (t *LoggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}

	start := time.Now()
	t.Logger.Debug("HTTP Request",
		"method", req.Method,
		"url", req.URL.String(),
		"contentLength", req.ContentLength,
	)

	resp, err := base.RoundTrip(req)
	if err != nil {
		t.Logger.Warn("HTTP Request failed", "url", req.URL.String(), "error", err, "durationMs", time.Since(start).Milliseconds())
		return nil, err
	}

	t.Logger.Debug("HTTP Response",
		"status", resp.Status,
		"statusCode", resp.StatusCode,
		"durationMs", time.Since(start).Milliseconds(),
	)

	return resp, nil
}
