// Package metrics exposes recommendation counters for prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Analyses       prometheus.Counter
	Fallbacks      prometheus.Counter
	InvalidInputs  *prometheus.CounterVec
	TopSuitability prometheus.Histogram
	CacheReplays   *prometheus.CounterVec
}

// New registers the collectors on reg. Pass prometheus.NewRegistry() in tests.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Analyses: f.NewCounter(prometheus.CounterOpts{
			Namespace: "cropadvisor",
			Name:      "analyses_total",
			Help:      "Recommendation requests that produced a result.",
		}),
		Fallbacks: f.NewCounter(prometheus.CounterOpts{
			Namespace: "cropadvisor",
			Name:      "fallbacks_total",
			Help:      "Results where no crop cleared the suitability threshold.",
		}),
		InvalidInputs: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cropadvisor",
			Name:      "invalid_inputs_total",
			Help:      "Rejected parameters, by field.",
		}, []string{"field"}),
		TopSuitability: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "cropadvisor",
			Name:      "top_suitability",
			Help:      "Suitability of the best-ranked crop.",
			Buckets:   prometheus.LinearBuckets(40, 10, 7),
		}),
		CacheReplays: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cropadvisor",
			Name:      "cache_replays_total",
			Help:      "Last-result lookups, by outcome (hit, stale, miss).",
		}, []string{"outcome"}),
	}
}
