package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "facetgrid"

type metrics struct {
	rendersTotal   *prometheus.CounterVec
	renderDuration prometheus.Histogram
	renderedGroups prometheus.Histogram
	pngBytes       prometheus.Histogram
}

func newMetrics(reg prometheus.Registerer) *metrics {
	return &metrics{
		rendersTotal: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "renders_total",
			Help:      "Total number of render requests by outcome.",
		}, []string{"outcome"}),
		renderDuration: promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "render_duration_seconds",
			Help:      "Time spent loading, rendering and encoding one composite.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 12),
		}),
		renderedGroups: promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rendered_groups",
			Help:      "Number of groups drawn per composite.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		}),
		pngBytes: promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "png_bytes",
			Help:      "Size of encoded composites.",
			Buckets:   prometheus.ExponentialBuckets(4096, 4, 8),
		}),
	}
}
