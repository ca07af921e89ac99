package openstack

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/imamik/trestle/internal/session"
	"github.com/imamik/trestle/internal/util/retry"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "trestle",
			Subsystem: "gateway",
			Name:      "requests_total",
			Help:      "Total number of gateway requests by service and result",
		},
		[]string{"service", "method", "result"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "trestle",
			Subsystem: "gateway",
			Name:      "request_duration_seconds",
			Help:      "Duration of gateway requests in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 10), // 10ms to ~10s
		},
		[]string{"service"},
	)
)

// do performs one instrumented request through the session. Connection
// failures and 5xx answers are retried with exponential backoff; a definite
// 4xx answer is final.
func (c *RealClient) do(ctx context.Context, service, method, path string, body, out any) error {
	start := time.Now()

	var lastErr error
	err := retry.WithExponentialBackoff(ctx, func() error {
		lastErr = c.sess.Do(ctx, service, method, path, body, out)
		if lastErr != nil && !transient(lastErr) {
			return retry.Fatal(lastErr)
		}
		return lastErr
	},
		retry.WithMaxRetries(c.timeouts.RetryMaxAttempts),
		retry.WithInitialDelay(c.timeouts.RetryInitialDelay),
	)
	if err != nil {
		// Surface the raw service error, not the retry wrapping, so
		// callers keep matching on APIError.
		err = lastErr
	}

	requestDuration.WithLabelValues(service).Observe(time.Since(start).Seconds())

	result := "ok"
	if err != nil {
		result = "error"
	}
	requestsTotal.WithLabelValues(service, method, result).Inc()
	return err
}

// transient reports whether a request error is worth retrying. Anything the
// remote answered below 500 is a definite response.
func transient(err error) bool {
	var apiErr *session.APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode >= 500
	}
	return true
}
