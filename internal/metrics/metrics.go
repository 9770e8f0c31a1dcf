// Package metrics exposes the engine's Prometheus instrumentation via
// promauto, following the naming convention podmortem_engine_<component>_<metric>.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// AnalysesTotal counts completed analysis invocations by outcome.
	AnalysesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "podmortem_engine_analyses_total",
			Help: "Total number of analysis invocations",
		},
		[]string{"outcome"}, // outcome: success/invalid_input
	)

	// AnalysisDuration tracks wall-clock scan duration.
	AnalysisDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "podmortem_engine_analysis_duration_seconds",
			Help:    "Analysis duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 14), // 1ms to ~8s
		},
		[]string{"outcome"},
	)

	// EventsMatchedTotal counts matched events by severity.
	EventsMatchedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "podmortem_engine_events_matched_total",
			Help: "Total number of matched pattern events",
		},
		[]string{"severity"},
	)

	// FrequencyPenaltyApplied observes the penalty applied to a scored
	// event, bucketed so operators can see how often recurring patterns
	// are being discounted.
	FrequencyPenaltyApplied = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "podmortem_engine_frequency_penalty",
			Help:    "Frequency penalty applied to scored events",
			Buckets: prometheus.LinearBuckets(0, 0.1, 10),
		},
	)

	// PatternsLoaded reports the current count of loaded patterns.
	PatternsLoaded = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "podmortem_engine_patterns_loaded",
			Help: "Number of patterns currently loaded in the registry",
		},
	)

	// PatternLoadErrorsTotal counts pattern load errors: unparseable files
	// and invalid regexes, one per occurrence.
	PatternLoadErrorsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "podmortem_engine_pattern_load_errors_total",
			Help: "Total number of pattern load errors (unparseable files and invalid regexes)",
		},
	)

	// KeywordsLoaded reports the current count of loaded keyword weights.
	KeywordsLoaded = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "podmortem_engine_keywords_loaded",
			Help: "Number of keyword weights currently loaded",
		},
	)

	// WebSocketConnections tracks active streaming subscribers.
	WebSocketConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "podmortem_engine_websocket_connections",
			Help: "Current number of active WebSocket stream subscribers",
		},
	)
)
