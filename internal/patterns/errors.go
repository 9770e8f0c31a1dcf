package patterns

import (
	"errors"
	"fmt"
)

// ErrNoPatternsLoaded is returned by Load when every file in the pattern
// directory failed to parse or contained nothing but invalid regexes,
// leaving the registry with zero patterns. A single bad file never reaches
// this path on its own — only a directory-wide failure does.
var ErrNoPatternsLoaded = errors.New("patterns: no pattern sets could be loaded")

// LoadError wraps the path and cause of a single pattern file that failed
// to load. The registry collects these, logs one warning per occurrence,
// and keeps going — loading continues with the remaining files.
type LoadError struct {
	Path  string
	Cause error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("patterns: failed to load %s: %v", e.Path, e.Cause)
}

func (e *LoadError) Unwrap() error { return e.Cause }
