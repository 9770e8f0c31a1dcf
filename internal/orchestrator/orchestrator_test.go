package orchestrator

import (
	"context"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redhat-et/podmortem-engine/internal/analysis"
	"github.com/redhat-et/podmortem-engine/internal/evidence"
	"github.com/redhat-et/podmortem-engine/internal/frequency"
	"github.com/redhat-et/podmortem-engine/internal/patterns"
	"github.com/redhat-et/podmortem-engine/internal/scoring"
)

// stubRegistry returns a fixed snapshot, bypassing the filesystem loader.
type stubRegistry struct {
	sets []patterns.PatternSet
}

func (s *stubRegistry) Load(string) ([]error, error)        { return nil, nil }
func (s *stubRegistry) PatternSets() []patterns.PatternSet   { return s.sets }
func (s *stubRegistry) Watch(context.Context) error          { return nil }

func newTestOrchestrator(sets []patterns.PatternSet) Orchestrator {
	return New(Deps{
		Registry:  &stubRegistry{sets: sets},
		Extractor: evidence.New(),
		Pipeline:  scoring.NewPipeline(scoring.DefaultConfig()),
		Frequency: frequency.NewTracker(frequency.DefaultConfig(), frequency.RealClock()),
	})
}

func strptr(s string) *string { return &s }

func TestAnalyze_InvalidInput(t *testing.T) {
	orc := newTestOrchestrator(nil)

	_, err := orc.Analyze(nil)
	assert.ErrorIs(t, err, analysis.ErrInvalidInput)

	_, err = orc.Analyze(&analysis.PodFailureData{Logs: strptr("x")})
	assert.ErrorIs(t, err, analysis.ErrInvalidInput)

	_, err = orc.Analyze(&analysis.PodFailureData{Pod: &analysis.PodReference{}})
	assert.ErrorIs(t, err, analysis.ErrInvalidInput)
}

func TestAnalyze_S1BaseCase(t *testing.T) {
	sets := []patterns.PatternSet{{
		LibraryID: "jvm",
		Patterns: []patterns.Pattern{{
			ID:       "oom",
			Name:     "Out Of Memory",
			Severity: "HIGH",
			Primary: patterns.PrimaryPattern{
				Compiled:   regexp.MustCompile("OutOfMemoryError"),
				Confidence: 0.9,
			},
		}},
	}}
	orc := newTestOrchestrator(sets)

	result, err := orc.Analyze(&analysis.PodFailureData{
		Pod:  &analysis.PodReference{Metadata: analysis.PodMetadata{Name: "p1"}},
		Logs: strptr("INFO ok\nERROR OutOfMemoryError\n"),
	})
	require.NoError(t, err)
	require.Len(t, result.Events, 1)
	assert.Equal(t, 2, result.Events[0].LineNumber)
	assert.InDelta(t, 1.35, result.Events[0].Score, 1e-9)
	assert.Equal(t, []string{"jvm"}, result.Metadata.PatternsUsed)
	assert.Equal(t, 1, result.Summary.SignificantEvents)
	assert.Equal(t, "HIGH", result.Summary.HighestSeverity)
}

func TestAnalyze_S6EmptyLogs(t *testing.T) {
	orc := newTestOrchestrator(nil)

	result, err := orc.Analyze(&analysis.PodFailureData{
		Pod:  &analysis.PodReference{Metadata: analysis.PodMetadata{Name: "p1"}},
		Logs: strptr(""),
	})
	require.NoError(t, err)
	assert.Empty(t, result.Events)
	assert.Equal(t, "NONE", result.Summary.HighestSeverity)
	assert.Empty(t, result.Summary.SeverityDistribution)
	assert.Equal(t, 1, result.Metadata.TotalLines)
}

func TestAnalyze_EventSinkReceivesEachMatch(t *testing.T) {
	sets := []patterns.PatternSet{{
		LibraryID: "jvm",
		Patterns: []patterns.Pattern{{
			ID:       "oom",
			Severity: "HIGH",
			Primary:  patterns.PrimaryPattern{Compiled: regexp.MustCompile("OOM"), Confidence: 0.5},
		}},
	}}
	orc := newTestOrchestrator(sets)

	var streamed []analysis.MatchedEvent
	_, err := orc.Analyze(&analysis.PodFailureData{
		Pod:  &analysis.PodReference{Metadata: analysis.PodMetadata{Name: "p1"}},
		Logs: strptr("OOM\nOOM\n"),
	}, WithEventSink(func(e analysis.MatchedEvent) {
		streamed = append(streamed, e)
	}))
	require.NoError(t, err)
	assert.Len(t, streamed, 2)
}

func TestAnalyze_ReorderingPatternSetsOnlyAffectsOrderNotScores(t *testing.T) {
	a := patterns.Pattern{ID: "a", Severity: "LOW", Primary: patterns.PrimaryPattern{Compiled: regexp.MustCompile("A"), Confidence: 0.5}}
	b := patterns.Pattern{ID: "b", Severity: "LOW", Primary: patterns.PrimaryPattern{Compiled: regexp.MustCompile("B"), Confidence: 0.5}}

	order1 := newTestOrchestrator([]patterns.PatternSet{{LibraryID: "s1", Patterns: []patterns.Pattern{a, b}}})
	order2 := newTestOrchestrator([]patterns.PatternSet{{LibraryID: "s1", Patterns: []patterns.Pattern{b, a}}})

	logs := strptr("A\nB\n")
	data := func() *analysis.PodFailureData {
		return &analysis.PodFailureData{Pod: &analysis.PodReference{Metadata: analysis.PodMetadata{Name: "p"}}, Logs: logs}
	}

	r1, err := order1.Analyze(data())
	require.NoError(t, err)
	r2, err := order2.Analyze(data())
	require.NoError(t, err)

	scores1 := map[string]float64{}
	for _, e := range r1.Events {
		scores1[e.MatchedPattern.ID] = e.Score
	}
	scores2 := map[string]float64{}
	for _, e := range r2.Events {
		scores2[e.MatchedPattern.ID] = e.Score
	}
	assert.Equal(t, scores1, scores2)
}
