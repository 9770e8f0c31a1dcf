package keywords

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
)

type fileLoader struct {
	logger Logger
	dir    string
	weights atomic.Pointer[map[string]float64]
}

func (l *fileLoader) Weights() map[string]float64 {
	if p := l.weights.Load(); p != nil {
		return *p
	}
	return map[string]float64{}
}

func (l *fileLoader) Load(dir string) []error {
	l.dir = dir

	entries, err := os.ReadDir(dir)
	if err != nil {
		empty := map[string]float64{}
		l.weights.Store(&empty)
		return []error{&LoadError{Path: dir, Cause: err}}
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".json") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	merged := make(map[string]float64)
	var errs []error
	for _, name := range names {
		path := filepath.Join(dir, name)
		flat, err := loadFile(path)
		if err != nil {
			errs = append(errs, &LoadError{Path: path, Cause: err})
			if l.logger != nil {
				l.logger.Warnw("failed to load keyword file", "path", path, "error", err.Error())
			}
			continue
		}
		for keyword, weight := range flat {
			if _, exists := merged[keyword]; exists {
				if l.logger != nil {
					l.logger.Warnw("duplicate keyword across files, keeping first-loaded value",
						"keyword", keyword, "path", path)
				}
				continue
			}
			merged[keyword] = weight
		}
	}

	l.weights.Store(&merged)
	if l.logger != nil {
		l.logger.Infow("keyword weights loaded", "count", len(merged), "dir", dir)
	}
	return errs
}

func (l *fileLoader) Watch(ctx context.Context) error {
	if l.dir == "" {
		return fmt.Errorf("keywords: Watch called before Load")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("keywords: cannot start watcher: %w", err)
	}
	if err := watcher.Add(l.dir); err != nil {
		watcher.Close()
		return fmt.Errorf("keywords: cannot watch %s: %w", l.dir, err)
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
				l.Load(l.dir)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				if l.logger != nil {
					l.logger.Warnw("keyword watcher error", "error", err.Error())
				}
			}
		}
	}()
	return nil
}

// loadFile decodes a nested {category: {keyword: weight}} JSON file and
// flattens it to {keyword: weight}, mirroring the reference loader's
// TypeReference<Map<String,Map<String,Double>>> decode.
func loadFile(path string) (map[string]float64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var nested map[string]map[string]float64
	if err := json.Unmarshal(data, &nested); err != nil {
		return nil, err
	}

	flat := make(map[string]float64)
	for _, keywordWeights := range nested {
		for keyword, weight := range keywordWeights {
			flat[keyword] = weight
		}
	}
	return flat, nil
}
