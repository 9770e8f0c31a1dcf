package scoring

import (
	"math"

	"github.com/redhat-et/podmortem-engine/internal/analysis"
	"github.com/redhat-et/podmortem-engine/internal/patterns"
)

// Config bundles every factor's tunables plus the keyword weights Variant B
// needs. It has no per-factor on/off switch: a non-positive
// Proximity.DecayConstant makes the proximity factor 1.0, and Variant B with
// no keywords makes the context factor 1.0, but the chronological and
// temporal factors cannot be neutralized through Config. The frequency
// penalty comes from Input, not Config.
type Config struct {
	Proximity     ProximityConfig
	Chronological ChronologicalConfig
	Context       ContextConfig
	Keywords      map[string]float64 // only consulted by Variant B
}

// DefaultConfig composes every factor's documented defaults.
func DefaultConfig() Config {
	return Config{
		Proximity:     DefaultProximityConfig(),
		Chronological: DefaultChronologicalConfig(),
		Context:       DefaultContextConfig(),
	}
}

// Input is everything the pipeline needs to score one matched event.
type Input struct {
	Lines           []string
	PrimaryIndex    int // zero-based
	LineNumber      int // one-based
	TotalLines      int
	Pattern         patterns.Pattern
	Context         analysis.EventContext
	FrequencyPenalty float64
}

// Pipeline composes every scoring factor into the final event score:
//
//	score = base_confidence x severity_multiplier x chronological_factor
//	      x proximity_factor x temporal_factor x context_factor
//	      x (1 - frequency_penalty)
//
// The pipeline never caps the result and never produces NaN: any factor
// that would evaluate to NaN is replaced by its documented neutral value.
type Pipeline interface {
	Score(in Input) float64
}

// NewPipeline constructs the default Pipeline.
func NewPipeline(cfg Config) Pipeline {
	return &multiplicativePipeline{cfg: cfg}
}

func neutralIfNaN(v, neutral float64) float64 {
	if math.IsNaN(v) {
		return neutral
	}
	return v
}
