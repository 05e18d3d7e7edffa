package search

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	candidatesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "superopt_candidates_total",
		Help: "Candidate programs tested, by program length.",
	}, []string{"length"})

	searchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "superopt_searches_total",
		Help: "Searches completed, by outcome.",
	}, []string{"outcome"})

	searchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "superopt_search_duration_seconds",
		Help:    "Wall-clock duration of searches.",
		Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
	})

	workersActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "superopt_workers_active",
		Help: "Search workers currently running.",
	})
)

// OUTCOME_FAILED_LABEL is the outcome label for searches that returned an error.
const OUTCOME_FAILED_LABEL = "failed"
