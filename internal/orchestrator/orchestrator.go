// Package orchestrator implements the Analysis Orchestrator: the top-level
// scan/score/assemble loop that turns a PodFailureData payload into an
// AnalysisResult.
package orchestrator

import (
	"regexp"

	"github.com/redhat-et/podmortem-engine/internal/analysis"
	"github.com/redhat-et/podmortem-engine/internal/evidence"
	"github.com/redhat-et/podmortem-engine/internal/frequency"
	"github.com/redhat-et/podmortem-engine/internal/patterns"
	"github.com/redhat-et/podmortem-engine/internal/scoring"
)

var lineSplitRegex = regexp.MustCompile(`\r?\n`)

// EventSinkFunc is invoked once per discovered MatchedEvent, in scan order,
// immediately after it is scored — before the orchestrator moves on to the
// next candidate. It backs the streaming HTTP boundary (internal/api's
// websocket handler): a caller with a large log can watch matches arrive
// instead of waiting for the whole scan. The sink runs synchronously on the
// scanning goroutine, so the scan resumes only after it returns; a nil sink
// is a no-op.
type EventSinkFunc func(analysis.MatchedEvent)

// Option configures an Orchestrator at construction time.
type Option func(*options)

type options struct {
	eventSink EventSinkFunc
}

// WithEventSink registers a callback invoked for every matched event as
// soon as it is scored, in scan order.
func WithEventSink(sink EventSinkFunc) Option {
	return func(o *options) { o.eventSink = sink }
}

// Orchestrator runs the full scan/score/assemble pipeline for one
// PodFailureData payload.
type Orchestrator interface {
	// Analyze rejects analysis.ErrInvalidInput if data is missing logs or
	// pod. On success it returns a fully assembled AnalysisResult; no
	// partial result is ever produced on the error path.
	Analyze(data *analysis.PodFailureData, opts ...Option) (*analysis.AnalysisResult, error)
}

// Deps bundles every collaborator the orchestrator needs.
type Deps struct {
	Registry  patterns.Registry
	Extractor evidence.Extractor
	Pipeline  scoring.Pipeline
	Frequency frequency.Tracker
}

// New constructs the default Orchestrator.
func New(deps Deps) Orchestrator {
	return &scanOrchestrator{deps: deps}
}

// splitLines splits logs on \r?\n. Per the documented edge-case choice, an
// empty string yields a single empty line ([]string{""}) rather than zero
// lines, matching the reference split behavior. Trailing empty elements
// produced by final line terminators are dropped (at least one element is
// always kept), matching Java's String.split("\\r?\\n"), which discards
// trailing empty strings.
func splitLines(logs string) []string {
	if logs == "" {
		return []string{""}
	}
	lines := lineSplitRegex.Split(logs, -1)
	for len(lines) > 1 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func libraryIDs(sets []patterns.PatternSet) []string {
	ids := make([]string, 0, len(sets))
	for _, s := range sets {
		ids = append(ids, s.LibraryID)
	}
	return ids
}

