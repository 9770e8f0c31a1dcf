package evidence

import (
	"github.com/redhat-et/podmortem-engine/internal/analysis"
	"github.com/redhat-et/podmortem-engine/internal/patterns"
)

type windowExtractor struct{}

func (windowExtractor) Extract(lines []string, matchIndex int, rules *patterns.ContextExtraction) analysis.EventContext {
	if rules == nil {
		return analysis.EventContext{
			LinesBefore: []string{},
			MatchedLine: lines[matchIndex],
			LinesAfter:  []string{},
		}
	}

	beforeStart := matchIndex - rules.LinesBefore
	if beforeStart < 0 {
		beforeStart = 0
	}
	afterEnd := matchIndex + 1 + rules.LinesAfter
	if afterEnd > len(lines) {
		afterEnd = len(lines)
	}

	before := append([]string{}, lines[beforeStart:matchIndex]...)
	after := append([]string{}, lines[matchIndex+1:afterEnd]...)

	return analysis.EventContext{
		LinesBefore: before,
		MatchedLine: lines[matchIndex],
		LinesAfter:  after,
	}
}
