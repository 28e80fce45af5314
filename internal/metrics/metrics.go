package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	namespace = "unicorn"
)

var (
	analysisDurationBuckets = []float64{1, 2, 5, 10, 30, 60, 120, 300, 600, 1200}

	// Analysis metrics
	AnalysisDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "analysis_duration_seconds",
		Help:      "Time taken for a single analysis endpoint call to complete.",
		Buckets:   analysisDurationBuckets,
	}, []string{"kind"})

	AnalysisRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "analysis_runs_total",
		Help:      "Count of analysis endpoint calls.",
	}, []string{"kind", "status"})

	StaleResultsDiscardedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "stale_results_discarded_total",
		Help:      "Analysis results discarded because the repository changed mid-flight.",
	}, []string{"kind"})

	// Cache metrics
	CacheInvalidationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_invalidations_total",
		Help:      "Count of full scan-cache invalidations triggered by repository changes.",
	})

	DialogOpensTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "dialog_opens_total",
		Help:      "Count of dialog opens by card label.",
	}, []string{"dialog"})
)
