package metrics

import "github.com/prometheus/client_golang/prometheus"

// Pipeline Prometheus metrics.
var (
	ModelRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "scout",
			Name:      "model_requests_total",
			Help:      "Total number of model generation requests",
		},
		[]string{"provider", "model", "status"},
	)

	ModelRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "scout",
			Name:      "model_request_duration_seconds",
			Help:      "Model generation request duration in seconds",
			Buckets:   []float64{0.25, 0.5, 1, 2.5, 5, 10, 20, 30},
		},
		[]string{"provider", "model"},
	)

	ModelTokensTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "scout",
			Name:      "model_tokens_total",
			Help:      "Total model tokens consumed",
		},
		[]string{"provider", "model", "type"},
	)

	ReplyRejectedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "scout",
			Name:      "reply_rejected_total",
			Help:      "Model replies rejected by the validation gate",
		},
		[]string{"reason"}, // "malformed" / "schema"
	)

	SafetyFilterDroppedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "scout",
			Name:      "safety_filter_dropped_total",
			Help:      "Validated candidates dropped for referencing an id outside the catalog",
		},
	)

	RateLimitDeniedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "scout",
			Name:      "rate_limit_denied_total",
			Help:      "Requests denied by the rate limiter",
		},
	)
)

var pipelineMetricsRegistered bool

// RegisterPipelineMetrics registers Prometheus pipeline metrics. Must be called once from main.
func RegisterPipelineMetrics() {
	if pipelineMetricsRegistered {
		return
	}
	prometheus.MustRegister(ModelRequestsTotal)
	prometheus.MustRegister(ModelRequestDuration)
	prometheus.MustRegister(ModelTokensTotal)
	prometheus.MustRegister(ReplyRejectedTotal)
	prometheus.MustRegister(SafetyFilterDroppedTotal)
	prometheus.MustRegister(RateLimitDeniedTotal)
	pipelineMetricsRegistered = true
}
