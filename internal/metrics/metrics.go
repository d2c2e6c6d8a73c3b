// SPDX-License-Identifier: MIT

// Package metrics holds the Prometheus collectors of the planb binary.
package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Query result labels.
const (
	ResultOK      = "ok"
	ResultNoRoute = "no_route"
	ResultError   = "error"
)

var (
	queryTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "planb_query_total",
		Help: "Route queries by kind and result",
	}, []string{"kind", "result"})

	queryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "planb_query_duration_seconds",
		Help:    "Route query latency in seconds",
		Buckets: prometheus.ExponentialBuckets(0.00005, 4, 10), // 50µs to ~13s
	}, []string{"kind"})

	tableBuildTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "planb_table_build_total",
		Help: "All-pairs table builds by result",
	}, []string{"result"})

	tableBuildDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "planb_table_build_duration_seconds",
		Help:    "All-pairs table build time in seconds",
		Buckets: prometheus.ExponentialBuckets(0.01, 2, 14), // 10ms to ~80s
	})

	mapSystems = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "planb_map_systems",
		Help: "Systems in the loaded map",
	})

	mapGates = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "planb_map_gates",
		Help: "Directed stargates in the loaded map",
	})

	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "planb_http_requests_total",
		Help: "HTTP requests by route pattern and status code",
	}, []string{"route", "code"})

	fetchRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "planb_fetch_requests_total",
		Help: "Upstream universe API requests by result",
	}, []string{"result"})
)

// Result maps a query outcome to its label.
func Result(found bool, err error) string {
	switch {
	case err != nil:
		return ResultError
	case !found:
		return ResultNoRoute
	default:
		return ResultOK
	}
}

// ObserveQuery records one query of kind started at began.
func ObserveQuery(kind string, began time.Time, found bool, err error) {
	queryTotal.WithLabelValues(kind, Result(found, err)).Inc()
	queryDuration.WithLabelValues(kind).Observe(time.Since(began).Seconds())
}

// ObserveBuild records one table build.
func ObserveBuild(took time.Duration, err error) {
	tableBuildTotal.WithLabelValues(Result(true, err)).Inc()
	if err == nil {
		tableBuildDuration.Observe(took.Seconds())
	}
}

// SetMap publishes the size of the loaded map.
func SetMap(systems, gates int) {
	mapSystems.Set(float64(systems))
	mapGates.Set(float64(gates))
}

// ObserveHTTP records one served request.
func ObserveHTTP(route, code string) {
	httpRequests.WithLabelValues(route, code).Inc()
}

// ObserveFetch records one upstream request; retried attempts count once each.
func ObserveFetch(err error) {
	result := ResultOK
	if err != nil {
		result = ResultError
		var te interface{ Timeout() bool }
		if errors.As(err, &te) && te.Timeout() {
			result = "timeout"
		}
	}
	fetchRequests.WithLabelValues(result).Inc()
}
