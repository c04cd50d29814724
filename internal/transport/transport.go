// Package transport builds the HTTP client used to reach the remote data service
package transport

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// DefaultTimeout is applied when no timeout configured
const DefaultTimeout = 30 * time.Second

type loggingRoundTripper struct {
	next   http.RoundTripper
	logger logrus.FieldLogger
}

// NewLoggingRoundTripper wraps next round tripper and logs every exchange.
// Request headers are never logged.
func NewLoggingRoundTripper(next http.RoundTripper, logger logrus.FieldLogger) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	return &loggingRoundTripper{next: next, logger: logger}
}

func (t *loggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := t.next.RoundTrip(req)

	entry := t.logger.WithFields(logrus.Fields{
		"method":   req.Method,
		"path":     req.URL.Path,
		"duration": time.Since(start),
	})
	if err != nil {
		entry.Warnf("request failed - %v", err)
		return nil, err
	}

	entry.WithField("status", resp.StatusCode).Info("request completed")
	return resp, nil
}

// NewClient builds HTTP client with timeout and logging transport
func NewClient(timeout time.Duration, logger logrus.FieldLogger) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: NewLoggingRoundTripper(http.DefaultTransport, logger),
	}
}
