package patterns

import "context"

// Registry owns the validated, regex-precompiled pattern sets loaded from a
// directory of pattern files. It exposes a stable, read-only snapshot to
// every scorer; the snapshot is swapped, never mutated in place, so readers
// never observe a partially-reloaded state.
//
// Load walks the configured directory once at startup. Individual
// unparseable files are skipped with a warning (collected as LoadErrors) and
// loading continues with the rest; Load only fails outright when the
// directory cannot be read, or (ErrNoPatternsLoaded) when the resulting
// snapshot would be empty.
//
// Watch, when started, keeps the snapshot current as files in the directory
// change: a reload failure on one file only affects that file's sets in the
// next snapshot, never an in-flight analysis already holding the previous
// one.
type Registry interface {
	// Load reads every pattern file in dir, compiles all regexes, and
	// installs the result as the current snapshot. Errs collects one
	// LoadError per file that failed to parse and one per invalid regex;
	// the returned error is ErrNoPatternsLoaded only if no pattern survived
	// across all files.
	Load(dir string) (errs []error, err error)

	// PatternSets returns the current immutable snapshot. Safe for
	// concurrent use; callers must not mutate the returned slice's
	// contents.
	PatternSets() []PatternSet

	// Watch starts an fsnotify watch on the loaded directory, reloading
	// and swapping the snapshot on every create/write/remove event. It
	// runs until ctx is canceled.
	Watch(ctx context.Context) error
}

// New constructs a Registry with no patterns loaded; call Load before use.
func New(logger Logger) Registry {
	return &fileRegistry{logger: logger}
}

// Logger is the minimal logging capability the registry needs, satisfied by
// *zap.SugaredLogger in production and a no-op/test double in tests.
type Logger interface {
	Warnw(msg string, keysAndValues ...interface{})
	Infow(msg string, keysAndValues ...interface{})
}
