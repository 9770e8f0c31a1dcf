// Package keywords loads the nested keyword-weight files Context Scorer
// Variant B uses: {category: {keyword: weight}}, flattened and merged
// across files in directory order with first-wins conflict resolution.
package keywords

import "context"

// Loader owns the process-wide, immutable-after-load KeywordWeights map.
type Loader interface {
	// Load reads every .json file in dir, flattens each category map, and
	// merges them in directory order. On a keyword seen in more than one
	// file, the first-loaded value wins and a warning is logged. Load
	// never fails outright: a missing directory or unparseable file is
	// collected as a LoadError and loading continues with an
	// empty-or-partial weight map.
	Load(dir string) []error

	// Weights returns the current immutable snapshot. Safe for
	// concurrent use.
	Weights() map[string]float64

	// Watch starts an fsnotify watch on the loaded directory, reloading
	// and swapping the snapshot on every create/write/remove event. It
	// runs until ctx is canceled.
	Watch(ctx context.Context) error
}

// Logger is the minimal logging capability the loader needs.
type Logger interface {
	Warnw(msg string, keysAndValues ...interface{})
	Infow(msg string, keysAndValues ...interface{})
}

// New constructs a Loader with no weights loaded; call Load before use.
func New(logger Logger) Loader {
	return &fileLoader{logger: logger}
}
