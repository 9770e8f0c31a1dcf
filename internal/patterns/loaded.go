package patterns

import "regexp"

// The loaded types below are the registry's internal representation: a
// distinct type from the on-disk RawPattern family, carrying only the
// compiled regex (never the source string) in the hot path. The source
// string, when needed for display, is recovered via (*regexp.Regexp).String.

// PatternSet is a validated, regex-precompiled group of patterns loaded
// from a single file, identified by its LibraryID.
type PatternSet struct {
	LibraryID string
	Patterns  []Pattern
}

// Pattern is a single failure pattern with its sub-rules precompiled.
type Pattern struct {
	ID                string
	Name              string
	Severity          string
	Primary           PrimaryPattern
	Secondaries       []SecondaryPattern
	Sequences         []SequencePattern
	ContextExtraction *ContextExtraction
}

// PrimaryPattern is the compiled regex whose match declares an event.
type PrimaryPattern struct {
	Compiled   *regexp.Regexp
	Confidence float64
}

// SecondaryPattern is a compiled supporting regex whose nearby presence
// increases a match's score via exponential decay.
type SecondaryPattern struct {
	Compiled        *regexp.Regexp
	Weight          float64
	ProximityWindow int
}

// SequencePattern is an ordered chain of SequenceEvents whose appearance in
// order, culminating at/near the primary match, adds a bonus.
type SequencePattern struct {
	Description     string
	Events          []SequenceEvent
	BonusMultiplier float64
}

// SequenceEvent is one compiled step of a SequencePattern.
type SequenceEvent struct {
	Compiled *regexp.Regexp
}

// ContextExtraction configures the Context Extractor's window around a
// match. IncludeStackTrace is carried but has no behavior yet.
type ContextExtraction struct {
	LinesBefore       int
	LinesAfter        int
	IncludeStackTrace bool
}
