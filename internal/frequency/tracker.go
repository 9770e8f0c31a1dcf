// Package frequency implements the Frequency Tracker: a process-wide,
// concurrency-safe sliding-window counter per pattern_id, yielding a penalty
// that discounts scores for patterns firing unusually often.
package frequency

import "time"

// Config tunes the penalty curve. Zero values are replaced with the
// documented defaults by NewTracker.
type Config struct {
	// Threshold is the hourly match rate below which no penalty applies.
	Threshold float64
	// MaxPenalty bounds the penalty returned by Penalty.
	MaxPenalty float64
	// TimeWindow is the sliding window length entries are pruned against.
	TimeWindow time.Duration
}

// DefaultConfig returns the spec-documented defaults: threshold 10/hr,
// max penalty 0.8, one hour window.
func DefaultConfig() Config {
	return Config{Threshold: 10.0, MaxPenalty: 0.8, TimeWindow: time.Hour}
}

// Stats is a point-in-time snapshot of one pattern's tracked frequency,
// exposed for introspection (e.g. a /metrics or debug endpoint) — ported
// from the reference implementation's getFrequencyStatistics.
type Stats struct {
	PatternID    string
	CountInWindow int
	RateHz        float64
	Penalty       float64
}

// Tracker records pattern matches and computes the frequency penalty for
// the scoring pipeline's (1 - frequency_penalty) factor. A nil or empty
// pattern_id is a no-op for Record and returns 0 from Penalty.
type Tracker interface {
	// Record appends a match timestamp for patternID. Entries older than
	// the configured window are pruned lazily, when the count is read.
	Record(patternID string)

	// Penalty returns the current frequency penalty in [0, MaxPenalty].
	Penalty(patternID string) float64

	// Reset clears the tracked history for a single pattern.
	Reset(patternID string)

	// ResetAll clears tracked history for every pattern.
	ResetAll()

	// Stats returns a snapshot for every pattern with tracked history.
	Stats() []Stats
}

// NewTracker constructs a Tracker using clock for timestamps. Zero-valued
// Config fields fall back to DefaultConfig's values.
func NewTracker(cfg Config, clock Clock) Tracker {
	if cfg.Threshold <= 0 {
		cfg.Threshold = DefaultConfig().Threshold
	}
	if cfg.MaxPenalty <= 0 {
		cfg.MaxPenalty = DefaultConfig().MaxPenalty
	}
	if cfg.TimeWindow <= 0 {
		cfg.TimeWindow = DefaultConfig().TimeWindow
	}
	if clock == nil {
		clock = RealClock()
	}
	return &mapTracker{
		cfg:     cfg,
		clock:   clock,
		entries: make(map[string]*patternFrequency),
	}
}
