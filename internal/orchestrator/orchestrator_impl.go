package orchestrator

import (
	"time"

	"github.com/google/uuid"

	"github.com/redhat-et/podmortem-engine/internal/analysis"
	"github.com/redhat-et/podmortem-engine/internal/metrics"
	"github.com/redhat-et/podmortem-engine/internal/scoring"
)

type scanOrchestrator struct {
	deps Deps
}

func (o *scanOrchestrator) Analyze(data *analysis.PodFailureData, opts ...Option) (*analysis.AnalysisResult, error) {
	if err := data.Validate(); err != nil {
		return nil, err
	}

	cfg := options{}
	for _, opt := range opts {
		opt(&cfg)
	}

	start := time.Now()
	lines := splitLines(*data.Logs)
	totalLines := len(lines)

	sets := o.deps.Registry.PatternSets()

	var events []analysis.MatchedEvent
	for i, line := range lines {
		for _, set := range sets {
			for _, pattern := range set.Patterns {
				if !pattern.Primary.Compiled.MatchString(line) {
					continue
				}

				ctx := o.deps.Extractor.Extract(lines, i, pattern.ContextExtraction)

				freqPenalty := 0.0
				if o.deps.Frequency != nil {
					freqPenalty = o.deps.Frequency.Penalty(pattern.ID)
				}
				metrics.FrequencyPenaltyApplied.Observe(freqPenalty)

				score := o.deps.Pipeline.Score(scoring.Input{
					Lines:            lines,
					PrimaryIndex:     i,
					LineNumber:       i + 1,
					TotalLines:       totalLines,
					Pattern:          pattern,
					Context:          ctx,
					FrequencyPenalty: freqPenalty,
				})

				event := analysis.MatchedEvent{
					LineNumber: i + 1,
					MatchedPattern: analysis.MatchedPatternRef{
						ID:       pattern.ID,
						Name:     pattern.Name,
						Severity: pattern.Severity,
					},
					Context: ctx,
					Score:   score,
				}
				events = append(events, event)

				if o.deps.Frequency != nil {
					// Recorded after scoring so the current match never
					// penalizes itself.
					o.deps.Frequency.Record(pattern.ID)
				}

				if cfg.eventSink != nil {
					cfg.eventSink(event)
				}
			}
		}
	}

	if events == nil {
		events = []analysis.MatchedEvent{}
	}

	result := &analysis.AnalysisResult{
		AnalysisID: uuid.NewString(),
		Events:     events,
		Metadata: analysis.AnalysisMetadata{
			ProcessingTimeMs: time.Since(start).Milliseconds(),
			TotalLines:       totalLines,
			AnalyzedAt:       time.Now().UTC(),
			PatternsUsed:     libraryIDs(sets),
		},
		Summary: analysis.BuildSummary(events),
	}
	return result, nil
}
