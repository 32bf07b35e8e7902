package program

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/vango-dev/vtree/pkg/vdom"
)

// MetricsNamespace is the namespace of all runtime metrics.
const MetricsNamespace = "vtree"

// metrics holds the Prometheus collectors of one runtime.
type metrics struct {
	cycles        prometheus.Counter
	patches       *prometheus.CounterVec
	diffDuration  prometheus.Histogram
	applyDuration prometheus.Histogram
	coalesced     prometheus.Counter
	dropped       *prometheus.CounterVec
}

// newMetrics registers the runtime collectors with reg. labels are added
// to every collector so several runtimes can share a registry.
func newMetrics(reg prometheus.Registerer, labels prometheus.Labels) *metrics {
	factory := promauto.With(reg)

	return &metrics{
		cycles: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   MetricsNamespace,
			Name:        "cycles_total",
			Help:        "Total number of view/diff/patch cycles",
			ConstLabels: labels,
		}),

		patches: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   MetricsNamespace,
			Name:        "patches_total",
			Help:        "Total number of patches applied, by kind",
			ConstLabels: labels,
		}, []string{"kind"}),

		diffDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   MetricsNamespace,
			Name:        "diff_duration_seconds",
			Help:        "Time spent building and diffing the view",
			ConstLabels: labels,
			Buckets:     prometheus.ExponentialBuckets(0.00001, 4, 10),
		}),

		applyDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   MetricsNamespace,
			Name:        "apply_duration_seconds",
			Help:        "Time spent locating and applying patches",
			ConstLabels: labels,
			Buckets:     prometheus.ExponentialBuckets(0.00001, 4, 10),
		}),

		coalesced: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   MetricsNamespace,
			Name:        "coalesced_notifications_total",
			Help:        "Model changes merged into a later frame",
			ConstLabels: labels,
		}),

		dropped: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   MetricsNamespace,
			Name:        "dropped_events_total",
			Help:        "Events dropped because their decoder failed",
			ConstLabels: labels,
		}, []string{"event"}),
	}
}

func (m *metrics) observePatches(patches []*vdom.Patch) {
	for kind, n := range vdom.Count(patches) {
		m.patches.WithLabelValues(kind.String()).Add(float64(n))
	}
}
