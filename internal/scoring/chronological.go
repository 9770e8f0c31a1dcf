package scoring

// ChronologicalConfig tunes the position-in-log factor.
type ChronologicalConfig struct {
	EarlyThreshold  float64 // E
	MaxEarlyBonus   float64 // M
	PenaltyThreshold float64 // T
}

// DefaultChronologicalConfig matches the documented defaults.
func DefaultChronologicalConfig() ChronologicalConfig {
	return ChronologicalConfig{EarlyThreshold: 0.2, MaxEarlyBonus: 2.5, PenaltyThreshold: 0.5}
}

// ChronologicalFactor weights a match by its relative position in the log,
// favoring earlier lines. lineNumber is 1-based; totalLines <= 0 is treated
// as a NumericEdge and returns the neutral 1.0.
func ChronologicalFactor(lineNumber, totalLines int, cfg ChronologicalConfig) float64 {
	if totalLines <= 0 {
		return 1.0
	}

	position := float64(lineNumber) / float64(totalLines)
	e, m, t := cfg.EarlyThreshold, cfg.MaxEarlyBonus, cfg.PenaltyThreshold

	switch {
	case position < e:
		if e == 0 {
			return 1.0
		}
		return 1.5 + (e-position)*(m-1.5)/e
	case position < t:
		if t == e {
			return 1.0
		}
		return 1.0 + (t-position)*0.5/(t-e)
	default:
		return 0.5 + (1.0 - position)
	}
}
