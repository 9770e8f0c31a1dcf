package scoring

import (
	"math"

	"github.com/redhat-et/podmortem-engine/internal/patterns"
)

// ProximityConfig tunes the exponential-decay proximity bonus.
type ProximityConfig struct {
	DecayConstant float64 // denominator in exp(-d/c); must be > 0
	MaxWindow     int     // hard cap for per-secondary search window
}

// DefaultProximityConfig matches the documented defaults.
func DefaultProximityConfig() ProximityConfig {
	return ProximityConfig{DecayConstant: 10.0, MaxWindow: 100}
}

// ProximityFactor computes the secondary-pattern proximity bonus for a
// primary match at zero-based index p within lines. Each secondary
// contributes weight * exp(-d/decayConstant) where d is the distance to its
// nearest match within min(maxWindow, secondary.ProximityWindow) lines of p
// (p itself excluded). A secondary with no nearby match contributes 0.
// With no secondaries, returns 1.0.
func ProximityFactor(lines []string, p int, secondaries []patterns.SecondaryPattern, cfg ProximityConfig) float64 {
	if len(secondaries) == 0 {
		return 1.0
	}
	if cfg.DecayConstant <= 0 || math.IsNaN(cfg.DecayConstant) {
		return 1.0
	}

	total := 0.0
	for _, s := range secondaries {
		window := s.ProximityWindow
		if cfg.MaxWindow < window {
			window = cfg.MaxWindow
		}
		if window < 0 {
			continue
		}

		start := p - window
		if start < 0 {
			start = 0
		}
		end := p + window + 1
		if end > len(lines) {
			end = len(lines)
		}

		bestDist := -1
		for i := start; i < end; i++ {
			if i == p {
				continue
			}
			if s.Compiled.MatchString(lines[i]) {
				d := i - p
				if d < 0 {
					d = -d
				}
				if bestDist == -1 || d < bestDist {
					bestDist = d
				}
			}
		}
		if bestDist == -1 {
			continue
		}
		total += s.Weight * math.Exp(-float64(bestDist)/cfg.DecayConstant)
	}

	factor := 1.0 + total
	if math.IsNaN(factor) {
		return 1.0
	}
	return factor
}
