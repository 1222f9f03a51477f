package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the counters the request pipeline reports into.
type Metrics struct {
	Requests        *prometheus.CounterVec
	CacheHits       prometheus.Counter
	CacheMisses     prometheus.Counter
	RateLimited     prometheus.Counter
	ModelFallbacks  prometheus.Counter
	RequestDuration prometheus.Histogram
}

// NewMetrics registers the pipeline metrics on reg. Tests should pass a
// fresh prometheus.NewRegistry to avoid duplicate registration.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Requests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "reflect_requests_total",
			Help: "Reflection requests by outcome (success or error code).",
		}, []string{"outcome"}),
		CacheHits: f.NewCounter(prometheus.CounterOpts{
			Name: "reflect_cache_hits_total",
			Help: "Requests answered from the content cache.",
		}),
		CacheMisses: f.NewCounter(prometheus.CounterOpts{
			Name: "reflect_cache_misses_total",
			Help: "Requests that had to call the model provider.",
		}),
		RateLimited: f.NewCounter(prometheus.CounterOpts{
			Name: "reflect_rate_limited_total",
			Help: "Requests denied by the sliding-window rate limiter.",
		}),
		ModelFallbacks: f.NewCounter(prometheus.CounterOpts{
			Name: "reflect_model_fallbacks_total",
			Help: "Times the primary model failed and the fallback was tried.",
		}),
		RequestDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "reflect_request_duration_seconds",
			Help:    "End-to-end reflection request latency.",
			Buckets: prometheus.DefBuckets,
		}),
	}
}
