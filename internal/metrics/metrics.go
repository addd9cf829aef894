package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "partnerhub",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "partnerhub",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
		[]string{"method", "route"},
	)

	ledgerOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "partnerhub",
			Subsystem: "ledger",
			Name:      "operations_total",
			Help:      "Balance operations by entry type and result.",
		},
		[]string{"type", "result"},
	)

	bidsSubmitted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "partnerhub",
			Subsystem: "auction",
			Name:      "bids_submitted_total",
			Help:      "Bid intake attempts by outcome.",
		},
		[]string{"outcome"},
	)

	settledBids = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "partnerhub",
			Subsystem: "auction",
			Name:      "settled_bids_total",
			Help:      "Bids transitioned by weekly settlement.",
		},
		[]string{"status"},
	)

	settlementDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "partnerhub",
			Subsystem: "auction",
			Name:      "settlement_duration_seconds",
			Help:      "Duration of weekly settlement runs.",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 12), // 50ms to ~100s
		},
		[]string{"status"},
	)
)

func init() {
	Registry.MustRegister(
		httpRequests,
		httpDuration,
		ledgerOperations,
		bidsSubmitted,
		settledBids,
		settlementDuration,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler returns an HTTP handler exposing the registered Prometheus metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// InstrumentHandler wraps the provided handler with HTTP metrics collection.
// Routes are labelled by their chi pattern so path parameters don't explode cardinality.
func InstrumentHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		next.ServeHTTP(rec, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		method := strings.ToUpper(r.Method)

		httpRequests.WithLabelValues(method, route, strconv.Itoa(rec.status)).Inc()
		httpDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	})
}

func RecordLedgerOperation(entryType, result string) {
	ledgerOperations.WithLabelValues(entryType, result).Inc()
}

func RecordBidSubmission(outcome string) {
	bidsSubmitted.WithLabelValues(outcome).Inc()
}

func RecordSettledBids(status string, n int) {
	if n <= 0 {
		return
	}
	settledBids.WithLabelValues(status).Add(float64(n))
}

func RecordSettlement(status string, duration time.Duration) {
	settlementDuration.WithLabelValues(status).Observe(duration.Seconds())
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
