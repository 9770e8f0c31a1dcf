// Package evidence implements the Context Extractor: the pure function that
// slices the window of log lines around a primary match.
package evidence

import "github.com/redhat-et/podmortem-engine/internal/analysis"
import "github.com/redhat-et/podmortem-engine/internal/patterns"

// Extractor produces the EventContext surrounding a matched line according
// to a pattern's context-extraction rules.
type Extractor interface {
	// Extract returns the window around lines[matchIndex]. A nil rules
	// value yields an EventContext with no before/after lines, matched
	// line only.
	Extract(lines []string, matchIndex int, rules *patterns.ContextExtraction) analysis.EventContext
}

// New returns the default Extractor.
func New() Extractor {
	return windowExtractor{}
}
