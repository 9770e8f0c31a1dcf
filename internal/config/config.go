// Package config implements the engine's layered configuration: YAML file
// plus environment overrides plus defaults, loaded and hot-reloaded via
// viper the way the teacher's own config manager does for its service.
package config

// Config is the fully-resolved configuration for one engine process.
type Config struct {
	Server   ServerConfig
	Patterns PatternsConfig
	Scoring  ScoringConfig
	Logging  LoggingConfig
}

// ServerConfig controls the thin HTTP boundary.
type ServerConfig struct {
	Port int
}

// PatternsConfig points at the pattern-file directory the registry loads.
type PatternsConfig struct {
	Directory string
}

// ScoringConfig groups every scorer's tunables.
type ScoringConfig struct {
	Context       ContextScoringConfig
	Proximity     ProximityScoringConfig
	Chronological ChronologicalScoringConfig
	Frequency     FrequencyScoringConfig
}

// ContextScoringConfig configures the Context Scorer, including which of
// the two variants is active.
type ContextScoringConfig struct {
	Variant          string // "A" (regex classes) or "B" (keyword weights)
	KeywordsDirectory string
	MaxContextFactor float64
}

// ProximityScoringConfig configures the Proximity Scorer.
type ProximityScoringConfig struct {
	DecayConstant float64
	MaxWindow     int
}

// ChronologicalScoringConfig configures the Chronological Scorer.
type ChronologicalScoringConfig struct {
	EarlyBonusThreshold float64
	MaxEarlyBonus       float64
	PenaltyThreshold    float64
}

// FrequencyScoringConfig configures the Frequency Tracker's penalty curve.
type FrequencyScoringConfig struct {
	Threshold      float64
	MaxPenalty     float64
	TimeWindowHours int
}

// LoggingConfig controls the ambient structured logger.
type LoggingConfig struct {
	Level      string
	Format     string // "json" or "console"
	OutputPath string
}

// DefaultConfig returns a configuration with every documented default
// value applied; pattern.directory defaults to empty, in which case no
// pattern files are loaded.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{Port: 8080},
		Patterns: PatternsConfig{
			Directory: "",
		},
		Scoring: ScoringConfig{
			Context: ContextScoringConfig{
				Variant:           "B",
				KeywordsDirectory: "keywords",
				MaxContextFactor:  2.5,
			},
			Proximity: ProximityScoringConfig{
				DecayConstant: 10.0,
				MaxWindow:     100,
			},
			Chronological: ChronologicalScoringConfig{
				EarlyBonusThreshold: 0.2,
				MaxEarlyBonus:       2.5,
				PenaltyThreshold:    0.5,
			},
			Frequency: FrequencyScoringConfig{
				Threshold:       10.0,
				MaxPenalty:      0.8,
				TimeWindowHours: 1,
			},
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "json",
			OutputPath: "logs/podmortem-engine.log",
		},
	}
}
