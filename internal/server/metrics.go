package server

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/rcliao/git-release-name/internal/sha"
)

type metrics struct {
	lookups  *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "release_name_lookups_total",
			Help: "Release name lookups by result (ok, invalid, error).",
		}, []string{"result"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "release_name_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status code.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "code"}),
	}
	reg.MustRegister(m.lookups, m.duration)
	return m
}

func (m *metrics) observeLookup(err error) {
	result := "ok"
	switch {
	case errors.Is(err, sha.ErrInvalidHex):
		result = "invalid"
	case err != nil:
		result = "error"
	}
	m.lookups.WithLabelValues(result).Inc()
}

func (m *metrics) observeRequest(route, code string, d time.Duration) {
	m.duration.WithLabelValues(route, code).Observe(d.Seconds())
}
