package metrics

import (
	"inventory/internal/cart"
	"inventory/pkg/metadata"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// CommitMetrics exports cart commit statistics to Prometheus.
type CommitMetrics struct {
	items   *prometheus.CounterVec
	commits *prometheus.CounterVec
	size    prometheus.Histogram
}

func NewCommitMetrics(registerer prometheus.Registerer) *CommitMetrics {
	m := &CommitMetrics{
		items: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cart_commit_items_total",
			Help: "Cart items submitted to the backend, by direction and result.",
		}, []string{"direction", "result"}),
		commits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cart_commits_total",
			Help: "Cart commits, by outcome.",
		}, []string{"outcome"}),
		size: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "cart_commit_size",
			Help:    "Number of items per cart commit.",
			Buckets: []float64{1, 2, 5, 10, 20, 50, 100},
		}),
	}
	registerer.MustRegister(m.items, m.commits, m.size)

	return m
}

func (m *CommitMetrics) ItemCommitted(direction metadata.Direction) {
	m.items.WithLabelValues(label(direction), "committed").Inc()
}

func (m *CommitMetrics) ItemFailed(direction metadata.Direction, stale bool) {
	result := "failed"
	if stale {
		result = "stale"
	}
	m.items.WithLabelValues(label(direction), result).Inc()
}

func (m *CommitMetrics) BatchFinished(outcome cart.Outcome, size int) {
	m.commits.WithLabelValues(string(outcome)).Inc()
	m.size.Observe(float64(size))
}

func label(direction metadata.Direction) string {
	return strings.ToLower(direction.String())
}

// Handler serves the registry in the Prometheus text format.
func Handler(gatherer prometheus.Gatherer) gin.HandlerFunc {
	return gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
}
