// Package prometheus instruments docview services with Prometheus metrics.
package prometheus

import (
	"github.com/fwojciec/docview"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Namespace prefixes every docview metric.
const Namespace = "docview"

// Metrics holds the collectors shared by the instrumented services.
type Metrics struct {
	// OperationsTotal counts operations by name and outcome code.
	OperationsTotal *prometheus.CounterVec
	// OperationDuration observes operation latency in seconds.
	OperationDuration *prometheus.HistogramVec
	// Matches observes the size of search results.
	Matches *prometheus.HistogramVec
	// RenderWarnings counts warnings attached to rendered documents.
	RenderWarnings prometheus.Counter
}

// NewMetrics registers the docview collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		OperationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "operations_total",
				Help:      "Total number of search and render operations",
			},
			[]string{"operation", "status"},
		),
		OperationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Name:      "operation_duration_seconds",
				Help:      "Duration of search and render operations in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		Matches: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Name:      "search_matches",
				Help:      "Distribution of search result sizes",
				Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 250, 1000},
			},
			[]string{"operation"},
		),
		RenderWarnings: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "render_warnings_total",
				Help:      "Total number of warnings reported while rendering",
			},
		),
	}
}

func (m *Metrics) record(operation string, seconds float64, err error) {
	m.OperationsTotal.WithLabelValues(operation, status(err)).Inc()
	m.OperationDuration.WithLabelValues(operation).Observe(seconds)
}

// status maps an error to a low-cardinality label value.
func status(err error) string {
	if err == nil {
		return "ok"
	}
	return docview.ErrorCode(err)
}
