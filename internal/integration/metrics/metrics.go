// Package metrics exposes Prometheus metrics for HTTP traffic and goal activity.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lifescope/backend/internal/application/adapter"
	"github.com/lifescope/backend/internal/domain/entity"
)

const namespace = "lifescope"

// Metrics owns a private registry so tests and multiple servers never collide
// on the global one.
type Metrics struct {
	registry *prometheus.Registry

	// Labels: method, path (route template), status
	httpRequests *prometheus.CounterVec
	// Labels: method, path
	httpDuration *prometheus.HistogramVec
	// Labels: result (completed, cleared, failed)
	activityToggles *prometheus.CounterVec
	// Labels: status (goal status after recompute)
	goalRecomputes  *prometheus.CounterVec
	staleAggregates prometheus.Counter
	// Labels: template, outcome (sent, retry, failed)
	emailDeliveries *prometheus.CounterVec
}

var _ adapter.MetricsRecorder = (*Metrics)(nil)

// New creates the metric set with Go runtime and process collectors.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total HTTP requests by method, route and status",
		}, []string{"method", "path", "status"}),
		httpDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path"}),
		activityToggles: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "activity_toggles_total",
			Help:      "Activity toggles by outcome",
		}, []string{"result"}),
		goalRecomputes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "goal_recomputes_total",
			Help:      "Persisted goal progress recomputes by resulting status",
		}, []string{"status"}),
		staleAggregates: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "goal_aggregate_stale_total",
			Help:      "Goal aggregates that could not be saved after an activity change",
		}),
		emailDeliveries: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "email_deliveries_total",
			Help:      "Outbound email attempts by template and outcome",
		}, []string{"template", "outcome"}),
	}
}

// ActivityToggled records a toggle outcome.
func (m *Metrics) ActivityToggled(result string) {
	m.activityToggles.WithLabelValues(result).Inc()
}

// GoalRecomputed records a persisted recompute.
func (m *Metrics) GoalRecomputed(status entity.GoalStatus) {
	m.goalRecomputes.WithLabelValues(string(status)).Inc()
}

// GoalAggregateStale records an aggregate that failed to persist.
func (m *Metrics) GoalAggregateStale() {
	m.staleAggregates.Inc()
}

// EmailProcessed records one delivery attempt of the email worker.
func (m *Metrics) EmailProcessed(template, outcome string) {
	m.emailDeliveries.WithLabelValues(template, outcome).Inc()
}

// Middleware counts and times every request. Unmatched routes share one
// label value to keep cardinality bounded.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()

		path := ctx.FullPath()
		if path == "" {
			path = "unmatched"
		}
		method := ctx.Request.Method

		m.httpRequests.WithLabelValues(method, path, strconv.Itoa(ctx.Writer.Status())).Inc()
		m.httpDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
