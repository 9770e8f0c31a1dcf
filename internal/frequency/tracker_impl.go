package frequency

import (
	"sync"
	"time"
)

// patternFrequency holds the sliding window of match timestamps for one
// pattern_id, each independently locked so the map's own critical sections
// (lookup/insert) stay short.
type patternFrequency struct {
	mu     sync.Mutex
	window time.Duration
	events []time.Time // append-only, ascending, pruned lazily on read
}

func (p *patternFrequency) record(now time.Time) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, now)
}

// pruneLocked drops entries older than the window, measured from now. Caller
// must hold p.mu.
func (p *patternFrequency) pruneLocked(now time.Time) {
	cutoff := now.Add(-p.window)
	i := 0
	for i < len(p.events) && p.events[i].Before(cutoff) {
		i++
	}
	if i > 0 {
		p.events = p.events[i:]
	}
}

func (p *patternFrequency) countInWindow(now time.Time) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pruneLocked(now)
	return len(p.events)
}

func (p *patternFrequency) reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = nil
}

// mapTracker is a Tracker backed by a mutex-guarded map of per-pattern
// entries with compute-if-absent semantics on first sight of a pattern_id.
type mapTracker struct {
	cfg   Config
	clock Clock

	mu      sync.Mutex
	entries map[string]*patternFrequency
}

func (t *mapTracker) entryFor(patternID string) *patternFrequency {
	t.mu.Lock()
	defer t.mu.Unlock()
	p, ok := t.entries[patternID]
	if !ok {
		p = &patternFrequency{window: t.cfg.TimeWindow}
		t.entries[patternID] = p
	}
	return p
}

func (t *mapTracker) Record(patternID string) {
	if patternID == "" {
		return
	}
	t.entryFor(patternID).record(t.clock.Now())
}

func (t *mapTracker) Penalty(patternID string) float64 {
	if patternID == "" {
		return 0
	}
	t.mu.Lock()
	p, ok := t.entries[patternID]
	t.mu.Unlock()
	if !ok {
		return 0
	}

	count := p.countInWindow(t.clock.Now())
	hours := t.cfg.TimeWindow.Hours()
	if hours <= 0 {
		return 0
	}
	rate := float64(count) / hours
	if rate <= t.cfg.Threshold {
		return 0
	}
	penalty := (rate - t.cfg.Threshold) / t.cfg.Threshold
	if penalty > t.cfg.MaxPenalty {
		penalty = t.cfg.MaxPenalty
	}
	return penalty
}

func (t *mapTracker) Reset(patternID string) {
	t.mu.Lock()
	p, ok := t.entries[patternID]
	t.mu.Unlock()
	if ok {
		p.reset()
	}
}

func (t *mapTracker) ResetAll() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, p := range t.entries {
		p.reset()
	}
}

func (t *mapTracker) Stats() []Stats {
	t.mu.Lock()
	ids := make([]string, 0, len(t.entries))
	ps := make([]*patternFrequency, 0, len(t.entries))
	for id, p := range t.entries {
		ids = append(ids, id)
		ps = append(ps, p)
	}
	t.mu.Unlock()

	now := t.clock.Now()
	stats := make([]Stats, 0, len(ids))
	for i, id := range ids {
		count := ps[i].countInWindow(now)
		hours := t.cfg.TimeWindow.Hours()
		rate := 0.0
		if hours > 0 {
			rate = float64(count) / hours
		}
		stats = append(stats, Stats{
			PatternID:     id,
			CountInWindow: count,
			RateHz:        rate,
			Penalty:       t.Penalty(id),
		})
	}
	return stats
}
