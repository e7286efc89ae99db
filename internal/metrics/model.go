package metrics

import "github.com/prometheus/client_golang/prometheus"

// Model and scoring Prometheus metrics.
var (
	ModelBuildsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tagrec",
			Name:      "model_builds_total",
			Help:      "Total number of model builds",
		},
		[]string{"status"},
	)

	ModelBuildDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "tagrec",
			Name:      "model_build_duration_seconds",
			Help:      "Model build duration in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 15, 60, 300},
		},
	)

	ModelVersion = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "tagrec",
			Name:      "model_version",
			Help:      "Version of the model currently served",
		},
	)

	ModelItems = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "tagrec",
			Name:      "model_items",
			Help:      "Number of items in the served model",
		},
	)

	ModelTags = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "tagrec",
			Name:      "model_tags",
			Help:      "Number of distinct tags in the served model",
		},
	)

	ScoringRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tagrec",
			Name:      "scoring_requests_total",
			Help:      "Total number of scoring requests",
		},
		[]string{"strategy", "status"},
	)

	ScoringDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "tagrec",
			Name:      "scoring_duration_seconds",
			Help:      "Scoring request duration in seconds",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"strategy"},
	)

	ProfileBuildDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "tagrec",
			Name:      "profile_build_duration_seconds",
			Help:      "User profile build duration in seconds",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		},
		[]string{"strategy"},
	)

	ScoredItemsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tagrec",
			Name:      "scored_items_total",
			Help:      "Candidate items scored or omitted",
		},
		[]string{"result"}, // "scored" / "omitted"
	)

	SnapshotCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tagrec",
			Name:      "snapshot_cache_total",
			Help:      "Model snapshot loads that hit or missed storage",
		},
		[]string{"result"}, // "hit" / "miss"
	)
)

var modelMetricsRegistered bool

// RegisterModelMetrics registers Prometheus model and scoring metrics. Must be called once from main.
func RegisterModelMetrics() {
	if modelMetricsRegistered {
		return
	}
	prometheus.MustRegister(ModelBuildsTotal)
	prometheus.MustRegister(ModelBuildDuration)
	prometheus.MustRegister(ModelVersion)
	prometheus.MustRegister(ModelItems)
	prometheus.MustRegister(ModelTags)
	prometheus.MustRegister(ScoringRequestsTotal)
	prometheus.MustRegister(ScoringDuration)
	prometheus.MustRegister(ProfileBuildDuration)
	prometheus.MustRegister(ScoredItemsTotal)
	prometheus.MustRegister(SnapshotCacheTotal)
	modelMetricsRegistered = true
}
