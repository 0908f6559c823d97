package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Fetch outcome label values.
const (
	OutcomeSuccess    = "success"
	OutcomeTransport  = "transport_error"
	OutcomeRequest    = "request_error"
	OutcomeUnresolved = "unresolved"
	OutcomeDecode     = "decode_error"
	OutcomeMapping    = "mapping_error"
)

// Metrics holds the Prometheus collectors for Beachwatch fetches and exports.
type Metrics struct {
	FetchRequests *prometheus.CounterVec // labels: filtered={true,false}, outcome
	FetchDuration prometheus.Histogram
	SitesReturned prometheus.Histogram

	SitesPublished prometheus.Counter
	PublishErrors  prometheus.Counter
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	return NewMetricsWith(prometheus.DefaultRegisterer)
}

// NewMetricsWith creates all metrics and registers them with reg.
func NewMetricsWith(reg prometheus.Registerer) *Metrics {
	m := newMetrics()
	reg.MustRegister(
		m.FetchRequests,
		m.FetchDuration,
		m.SitesReturned,
		m.SitesPublished,
		m.PublishErrors,
	)
	return m
}

// NewMetricsForTesting creates unregistered Metrics to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		FetchRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "beachwatch",
			Name:      "fetch_requests_total",
			Help:      "Beachwatch API fetches by filter mode and outcome.",
		}, []string{"filtered", "outcome"}),
		FetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "beachwatch",
			Name:      "fetch_duration_seconds",
			Help:      "Beachwatch API round-trip duration including decode.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 15},
		}),
		SitesReturned: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "beachwatch",
			Name:      "sites_returned",
			Help:      "Number of features in a Beachwatch API response.",
			Buckets:   []float64{0, 1, 2, 5, 10, 25, 50, 100, 250, 500},
		}),
		SitesPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "beachwatch",
			Name:      "sites_published_total",
			Help:      "Site records written to the Kafka topic.",
		}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "beachwatch",
			Name:      "publish_errors_total",
			Help:      "Failed Kafka snapshot publishes.",
		}),
	}
}
