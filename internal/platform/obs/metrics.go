package obs

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RecommendationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scheduler_recommendations_total",
		Help: "Slot recommendations by outcome (feasible, none).",
	}, []string{"outcome"})

	RouteSearchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scheduler_route_searches_total",
		Help: "Optimal route searches by outcome (valid, invalid, error).",
	}, []string{"outcome"})

	RouteSearchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "scheduler_route_search_duration_seconds",
		Help:    "Wall time of optimal route searches.",
		Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
	})

	RouteSearchStops = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "scheduler_route_search_stops",
		Help:    "Stops per optimal route search, base included.",
		Buckets: prometheus.LinearBuckets(1, 1, 8),
	})

	RoadRoutesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scheduler_road_routes_total",
		Help: "Road route refinements by outcome (fetched, cached, failed).",
	}, []string{"outcome"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scheduler_http_requests_total",
		Help: "HTTP requests by method, route pattern and status.",
	}, []string{"method", "route", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "scheduler_http_request_duration_seconds",
		Help:    "HTTP request latency by route pattern.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})
)

// ObserveRecommendation counts one recommender run.
func ObserveRecommendation(found bool) {
	if found {
		RecommendationsTotal.WithLabelValues("feasible").Inc()
		return
	}
	RecommendationsTotal.WithLabelValues("none").Inc()
}

// ObserveRouteSearch records one optimal route search.
func ObserveRouteSearch(stops int, valid bool, err error, dur time.Duration) {
	RouteSearchDuration.Observe(dur.Seconds())
	RouteSearchStops.Observe(float64(stops))

	switch {
	case err != nil:
		RouteSearchesTotal.WithLabelValues("error").Inc()
	case valid:
		RouteSearchesTotal.WithLabelValues("valid").Inc()
	default:
		RouteSearchesTotal.WithLabelValues("invalid").Inc()
	}
}

// Handler exposes the default Prometheus registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
