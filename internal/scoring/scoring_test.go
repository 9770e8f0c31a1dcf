package scoring

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/redhat-et/podmortem-engine/internal/analysis"
	"github.com/redhat-et/podmortem-engine/internal/patterns"
)

func TestSeverityMultiplier_Table(t *testing.T) {
	assert.Equal(t, 5.0, SeverityMultiplier("CRITICAL"))
	assert.Equal(t, 3.0, SeverityMultiplier("high"))
	assert.Equal(t, 2.0, SeverityMultiplier("Medium"))
	assert.Equal(t, 1.5, SeverityMultiplier("LOW"))
	assert.Equal(t, 1.0, SeverityMultiplier("INFO"))
	assert.Equal(t, 1.0, SeverityMultiplier("unknown"))
}

func TestChronologicalFactor_S1(t *testing.T) {
	// Line 2 of 2 => position = 1.0 => factor = 0.5.
	f := ChronologicalFactor(2, 2, DefaultChronologicalConfig())
	assert.InDelta(t, 0.5, f, 1e-9)
}

func TestChronologicalFactor_S2(t *testing.T) {
	// total_lines = 20, position = 0.5 (>= T=0.5) => 0.5 + 0.5 = 1.0.
	f := ChronologicalFactor(10, 20, DefaultChronologicalConfig())
	assert.InDelta(t, 1.0, f, 1e-9)
}

func TestChronologicalFactor_NonPositiveTotalLinesIsNeutral(t *testing.T) {
	assert.Equal(t, 1.0, ChronologicalFactor(1, 0, DefaultChronologicalConfig()))
}

func TestProximityFactor_NoSecondaries(t *testing.T) {
	f := ProximityFactor([]string{"a", "b"}, 0, nil, DefaultProximityConfig())
	assert.Equal(t, 1.0, f)
}

func TestProximityFactor_S2(t *testing.T) {
	lines := make([]string, 20)
	for i := range lines {
		lines[i] = "filler"
	}
	lines[9] = "primary hit"  // zero-based index 9 == line 10
	lines[14] = "S1 secondary hit" // zero-based index 14 == line 15

	secondary := patterns.SecondaryPattern{
		Compiled:        regexp.MustCompile("S1 secondary"),
		Weight:          0.8,
		ProximityWindow: 20,
	}
	cfg := ProximityConfig{DecayConstant: 10.0, MaxWindow: 100}
	f := ProximityFactor(lines, 9, []patterns.SecondaryPattern{secondary}, cfg)
	assert.InDelta(t, 1.48522, f, 1e-4)
}

func TestProximityFactor_MonotonicInDistance(t *testing.T) {
	lines := make([]string, 200)
	for i := range lines {
		lines[i] = "x"
	}
	lines[105] = "hit"
	secondary := patterns.SecondaryPattern{Compiled: regexp.MustCompile("hit"), Weight: 1.0, ProximityWindow: 100}
	cfg := DefaultProximityConfig()
	near := ProximityFactor(lines, 100, []patterns.SecondaryPattern{secondary}, cfg) // d=5

	lines2 := make([]string, 200)
	for i := range lines2 {
		lines2[i] = "x"
	}
	lines2[110] = "hit"
	far := ProximityFactor(lines2, 100, []patterns.SecondaryPattern{secondary}, cfg) // d=10

	assert.GreaterOrEqual(t, near, far)
}

func TestTemporalFactor_NoSequences(t *testing.T) {
	f := TemporalFactor([]string{"a"}, 0, nil)
	assert.Equal(t, 1.0, f)
}

func TestTemporalFactor_MatchedSequenceAnchorsAtPrimary(t *testing.T) {
	lines := []string{"step1", "filler", "filler", "step2-a-bit-early", "filler"}
	// last event matches at index 3, within [p-5,p+5] of p=4.
	seq := patterns.SequencePattern{
		Events: []patterns.SequenceEvent{
			{Compiled: regexp.MustCompile("step1")},
			{Compiled: regexp.MustCompile("step2")},
		},
		BonusMultiplier: 0.5,
	}
	f := TemporalFactor(lines, 4, []patterns.SequencePattern{seq})
	assert.InDelta(t, 1.5, f, 1e-9)
}

func TestTemporalFactor_FailsWhenEarlierEventMissing(t *testing.T) {
	lines := []string{"nothing-here", "filler", "filler", "step2", "filler"}
	seq := patterns.SequencePattern{
		Events: []patterns.SequenceEvent{
			{Compiled: regexp.MustCompile("step1")},
			{Compiled: regexp.MustCompile("step2")},
		},
		BonusMultiplier: 0.5,
	}
	f := TemporalFactor(lines, 4, []patterns.SequencePattern{seq})
	assert.Equal(t, 1.0, f)
}

func TestContextFactor_NilContextIsNeutral(t *testing.T) {
	f := ContextFactor(analysis.EventContext{}, DefaultContextConfig(), nil)
	assert.Equal(t, 1.0, f)
}

func TestContextFactor_VariantA_DensityPenalty_S3(t *testing.T) {
	before := make([]string, 5)
	for i := range before {
		before[i] = "ERROR something failed"
	}
	after := make([]string, 5)
	for i := range after {
		after[i] = "ERROR something failed"
	}
	ctx := analysis.EventContext{LinesBefore: before, MatchedLine: "normal line", LinesAfter: after}
	f := ContextFactor(ctx, ContextConfig{Variant: ContextVariantRegexClasses, MaxContextFactor: 2.5}, nil)
	assert.LessOrEqual(t, f, DefaultContextConfig().MaxContextFactor)
}

func TestContextFactor_VariantB_KeywordWeights(t *testing.T) {
	ctx := analysis.EventContext{
		LinesBefore: []string{"connection refused"},
		MatchedLine: "connection refused again",
		LinesAfter:  []string{"retrying"},
	}
	weights := map[string]float64{"connection refused": 0.3}
	cfg := ContextConfig{Variant: ContextVariantKeywords}
	f := ContextFactor(ctx, cfg, weights)
	// "connection refused" appears in 2 of 3 lines (once per line).
	assert.InDelta(t, 1.0+2*0.3, f, 1e-9)
}

func TestPipeline_S1(t *testing.T) {
	lines := []string{"INFO ok", "ERROR OutOfMemoryError"}
	pattern := patterns.Pattern{
		Severity: "HIGH",
		Primary:  patterns.PrimaryPattern{Confidence: 0.9},
	}
	pipeline := NewPipeline(DefaultConfig())
	score := pipeline.Score(Input{
		Lines:        lines,
		PrimaryIndex: 1,
		LineNumber:   2,
		TotalLines:   2,
		Pattern:      pattern,
		Context:      analysis.EventContext{MatchedLine: lines[1]},
	})
	assert.InDelta(t, 1.35, score, 1e-9)
}

func TestPipeline_NeverProducesNaN(t *testing.T) {
	pattern := patterns.Pattern{Severity: "INFO", Primary: patterns.PrimaryPattern{Confidence: 0.5}}
	pipeline := NewPipeline(Config{})
	score := pipeline.Score(Input{
		Lines:        []string{"x"},
		PrimaryIndex: 0,
		LineNumber:   1,
		TotalLines:   0, // forces the chronological NumericEdge path
		Pattern:      pattern,
	})
	assert.False(t, score != score) // NaN check without importing math
}
