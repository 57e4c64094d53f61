package client

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	fetches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "slaskdash_fetch_total",
		Help: "The total number of data service requests",
	}, []string{"endpoint", "outcome"})
	fetchTime = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "slaskdash_fetch_seconds",
		Help:    "Data service request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"endpoint"})
	parseFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "slaskdash_parse_failures_total",
		Help: "Responses that could not be decoded",
	}, []string{"endpoint"})
)

// observeFetch is deferred with the caller's named error result.
func observeFetch(endpoint string, start time.Time, err *error) {
	fetchTime.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	fetches.WithLabelValues(endpoint, fetchOutcome(*err)).Inc()
}

func fetchOutcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrTransport):
		return "transport_error"
	case errors.Is(err, ErrParse):
		return "parse_error"
	}
	return "error"
}
