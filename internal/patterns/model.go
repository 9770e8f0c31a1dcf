package patterns

// The on-disk shapes below mirror the YAML pattern-file format the registry
// loader consumes (one PatternSet per file, keyed by a library_id). They are
// never used in the scoring hot path directly — Load translates each one
// into its compiled counterpart in loaded.go.

// RawPatternSet is the on-disk shape of a single pattern file.
type RawPatternSet struct {
	Metadata RawMetadata  `yaml:"metadata"`
	Patterns []RawPattern `yaml:"patterns"`
}

// RawMetadata carries the library_id a pattern file is grouped under.
type RawMetadata struct {
	LibraryID string `yaml:"library_id"`
}

// RawPattern is the on-disk shape of a single failure pattern.
type RawPattern struct {
	ID                string              `yaml:"id"`
	Name              string              `yaml:"name"`
	Severity          string              `yaml:"severity"`
	PrimaryPattern    RawPrimaryPattern    `yaml:"primary_pattern"`
	SecondaryPatterns []RawSecondary       `yaml:"secondary_patterns"`
	SequencePatterns  []RawSequencePattern `yaml:"sequence_patterns"`
	ContextExtraction *RawContextExtract   `yaml:"context_extraction"`
}

// RawPrimaryPattern is the on-disk shape of a primary pattern.
type RawPrimaryPattern struct {
	Regex      string  `yaml:"regex"`
	Confidence float64 `yaml:"confidence"`
}

// RawSecondary is the on-disk shape of a secondary pattern.
type RawSecondary struct {
	Regex           string  `yaml:"regex"`
	Weight          float64 `yaml:"weight"`
	ProximityWindow int     `yaml:"proximity_window"`
}

// RawSequencePattern is the on-disk shape of a sequence pattern.
type RawSequencePattern struct {
	Description     string          `yaml:"description"`
	Events          []RawSeqEvent   `yaml:"events"`
	BonusMultiplier float64         `yaml:"bonus_multiplier"`
}

// RawSeqEvent is the on-disk shape of a single step in a sequence pattern.
type RawSeqEvent struct {
	Regex string `yaml:"regex"`
}

// RawContextExtract is the on-disk shape of a pattern's context-extraction
// rules. IncludeStackTrace is accepted but unused — see ContextExtraction.
type RawContextExtract struct {
	LinesBefore       int  `yaml:"lines_before"`
	LinesAfter        int  `yaml:"lines_after"`
	IncludeStackTrace bool `yaml:"include_stack_trace"`
}
