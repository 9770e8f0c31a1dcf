// Package analysis holds the cross-cutting result types produced by an
// analysis run: the request payload, the events a scan discovers, and the
// assembled result returned to the caller.
package analysis

import (
	"errors"
	"time"
)

// ErrInvalidInput is returned when a PodFailureData payload is missing logs
// or has a nil pod reference. It surfaces as a 4xx at the HTTP boundary and
// never produces a partial AnalysisResult.
var ErrInvalidInput = errors.New("analysis: invalid input: logs and pod are required")

// PodReference identifies the workload the captured logs came from. The core
// only checks that it is present; the rest of the Kubernetes object model is
// the HTTP collaborator's concern.
type PodReference struct {
	Metadata PodMetadata `json:"metadata"`
}

// PodMetadata carries the subset of pod identity decoded from the request.
// It is not copied into the AnalysisResult.
type PodMetadata struct {
	Name      string `json:"name"`
	Namespace string `json:"namespace,omitempty"`
}

// PodFailureData is the input contract: raw log text plus the pod it came
// from. Logs is a *string so "absent" (nil) is distinguishable from
// "present but empty" (""), which produces a valid, empty-match analysis.
type PodFailureData struct {
	Pod  *PodReference `json:"pod"`
	Logs *string       `json:"logs"`
}

// Validate reports ErrInvalidInput if logs or pod is missing.
func (d *PodFailureData) Validate() error {
	if d == nil || d.Pod == nil || d.Logs == nil {
		return ErrInvalidInput
	}
	return nil
}

// EventContext is the window of log lines surrounding a matched line.
type EventContext struct {
	LinesBefore []string `json:"lines_before"`
	MatchedLine string   `json:"matched_line"`
	LinesAfter  []string `json:"lines_after"`
}

// MatchedPatternRef is the by-reference view of a Pattern attached to a
// MatchedEvent: enough to report on the match without re-exposing the
// registry's internal compiled-regex representation.
type MatchedPatternRef struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Severity string `json:"severity"`
}

// MatchedEvent is a single primary-pattern hit, enriched with context and a
// final composed score.
type MatchedEvent struct {
	LineNumber     int               `json:"line_number"`
	MatchedPattern MatchedPatternRef `json:"matched_pattern"`
	Context        EventContext      `json:"context"`
	Score          float64           `json:"score"`
}

// AnalysisMetadata records bookkeeping about how a scan was carried out.
type AnalysisMetadata struct {
	ProcessingTimeMs int64     `json:"processing_time_ms"`
	TotalLines       int       `json:"total_lines"`
	AnalyzedAt       time.Time `json:"analyzed_at"`
	PatternsUsed     []string  `json:"patterns_used"`
}

// AnalysisSummary aggregates the events of a run by severity.
type AnalysisSummary struct {
	SignificantEvents    int            `json:"significant_events"`
	HighestSeverity      string         `json:"highest_severity"`
	SeverityDistribution map[string]int `json:"severity_distribution"`
}

// AnalysisResult is the top-level output of a single analysis invocation.
type AnalysisResult struct {
	AnalysisID string           `json:"analysis_id"`
	Events     []MatchedEvent   `json:"events"`
	Metadata   AnalysisMetadata `json:"metadata"`
	Summary    AnalysisSummary  `json:"summary"`
}

// severityOrder ranks severities from least to most significant, matching
// the reference implementation's ordinal comparison for "highest severity".
var severityOrder = []string{"INFO", "LOW", "MEDIUM", "HIGH", "CRITICAL"}

func severityRank(s string) int {
	for i, v := range severityOrder {
		if v == s {
			return i
		}
	}
	return -1
}

// BuildSummary derives an AnalysisSummary from a set of matched events.
func BuildSummary(events []MatchedEvent) AnalysisSummary {
	dist := make(map[string]int)
	highest := "NONE"
	highestRank := -1
	for _, e := range events {
		sev := e.MatchedPattern.Severity
		dist[sev]++
		if r := severityRank(sev); r > highestRank {
			highestRank = r
			highest = sev
		}
	}
	return AnalysisSummary{
		SignificantEvents:    len(events),
		HighestSeverity:      highest,
		SeverityDistribution: dist,
	}
}
