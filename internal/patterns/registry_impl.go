package patterns

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"
)

// fileRegistry is a Registry backed by a directory of YAML pattern files,
// watched with fsnotify for hot reload.
type fileRegistry struct {
	logger Logger

	mu       sync.Mutex // guards dir during Load/reload; snapshot itself is atomic
	dir      string
	snapshot atomic.Pointer[[]PatternSet]
}

func (r *fileRegistry) PatternSets() []PatternSet {
	if p := r.snapshot.Load(); p != nil {
		return *p
	}
	return nil
}

func (r *fileRegistry) Load(dir string) ([]error, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dir = dir

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("patterns: cannot read directory %s: %w", dir, err)
	}

	var errs []error
	var sets []PatternSet
	total := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".yml") && !strings.HasSuffix(name, ".yaml") {
			continue
		}
		path := filepath.Join(dir, name)
		set, loadErrs, err := loadFile(path)
		for _, le := range loadErrs {
			errs = append(errs, le)
			if r.logger != nil {
				r.logger.Warnw("pattern load warning", "path", path, "error", le.Error())
			}
		}
		if err != nil {
			errs = append(errs, &LoadError{Path: path, Cause: err})
			if r.logger != nil {
				r.logger.Warnw("failed to load pattern file", "path", path, "error", err.Error())
			}
			continue
		}
		sets = append(sets, set)
		total += len(set.Patterns)
	}

	if total == 0 {
		return errs, ErrNoPatternsLoaded
	}

	r.snapshot.Store(&sets)
	if r.logger != nil {
		r.logger.Infow("pattern registry loaded", "sets", len(sets), "patterns", total, "dir", dir)
	}
	return errs, nil
}

func (r *fileRegistry) Watch(ctx context.Context) error {
	r.mu.Lock()
	dir := r.dir
	r.mu.Unlock()
	if dir == "" {
		return fmt.Errorf("patterns: Watch called before Load")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("patterns: cannot start watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return fmt.Errorf("patterns: cannot watch %s: %w", dir, err)
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
					continue
				}
				if _, err := r.Load(dir); err != nil && r.logger != nil {
					r.logger.Warnw("pattern reload failed", "error", err.Error())
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				if r.logger != nil {
					r.logger.Warnw("pattern watcher error", "error", err.Error())
				}
			}
		}
	}()
	return nil
}

// loadFile parses and compiles a single pattern file. An invalid primary
// regex drops its containing pattern entirely (collected as a LoadError);
// an invalid secondary regex drops only that secondary, and an invalid
// sequence-event regex drops the sequence it belongs to, keeping the rest
// of the pattern intact.
func loadFile(path string) (PatternSet, []*LoadError, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return PatternSet{}, nil, err
	}

	var raw RawPatternSet
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return PatternSet{}, nil, err
	}

	var loadErrs []*LoadError
	set := PatternSet{LibraryID: raw.Metadata.LibraryID}

	for _, rp := range raw.Patterns {
		primary, err := regexp.Compile(rp.PrimaryPattern.Regex)
		if err != nil {
			loadErrs = append(loadErrs, &LoadError{
				Path:  path,
				Cause: fmt.Errorf("pattern %s: invalid primary regex: %w", rp.ID, err),
			})
			continue
		}

		pattern := Pattern{
			ID:       rp.ID,
			Name:     rp.Name,
			Severity: strings.ToUpper(rp.Severity),
			Primary: PrimaryPattern{
				Compiled:   primary,
				Confidence: rp.PrimaryPattern.Confidence,
			},
		}

		for _, rs := range rp.SecondaryPatterns {
			compiled, err := regexp.Compile(rs.Regex)
			if err != nil {
				loadErrs = append(loadErrs, &LoadError{
					Path:  path,
					Cause: fmt.Errorf("pattern %s: invalid secondary regex %q: %w", rp.ID, rs.Regex, err),
				})
				continue
			}
			pattern.Secondaries = append(pattern.Secondaries, SecondaryPattern{
				Compiled:        compiled,
				Weight:          rs.Weight,
				ProximityWindow: rs.ProximityWindow,
			})
		}

		for _, rseq := range rp.SequencePatterns {
			seq := SequencePattern{
				Description:     rseq.Description,
				BonusMultiplier: rseq.BonusMultiplier,
			}
			ok := true
			for _, re := range rseq.Events {
				compiled, err := regexp.Compile(re.Regex)
				if err != nil {
					loadErrs = append(loadErrs, &LoadError{
						Path:  path,
						Cause: fmt.Errorf("pattern %s: invalid sequence-event regex %q: %w", rp.ID, re.Regex, err),
					})
					ok = false
					break
				}
				seq.Events = append(seq.Events, SequenceEvent{Compiled: compiled})
			}
			if ok {
				pattern.Sequences = append(pattern.Sequences, seq)
			}
		}

		if rp.ContextExtraction != nil {
			pattern.ContextExtraction = &ContextExtraction{
				LinesBefore:       rp.ContextExtraction.LinesBefore,
				LinesAfter:        rp.ContextExtraction.LinesAfter,
				IncludeStackTrace: rp.ContextExtraction.IncludeStackTrace,
			}
		}

		set.Patterns = append(set.Patterns, pattern)
	}

	return set, loadErrs, nil
}
