package frequency

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// fakeClock lets tests drive the tracker's notion of "now" without sleeping.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(start time.Time) *fakeClock { return &fakeClock{now: start} }

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestPenalty_BelowThresholdIsZero(t *testing.T) {
	clock := newFakeClock(time.Now())
	tr := NewTracker(DefaultConfig(), clock)
	for i := 0; i < 5; i++ {
		tr.Record("P1")
	}
	assert.Equal(t, 0.0, tr.Penalty("P1"))
}

func TestPenalty_S4Scenario(t *testing.T) {
	// 15 matches within the window for P1 at threshold 10/hr, max 0.8:
	// rate = 15 => penalty = min(0.8, 5/10) = 0.5.
	clock := newFakeClock(time.Now())
	tr := NewTracker(DefaultConfig(), clock)
	for i := 0; i < 15; i++ {
		tr.Record("P1")
	}
	assert.InDelta(t, 0.5, tr.Penalty("P1"), 1e-9)
}

func TestPenalty_UnknownPatternIsZero(t *testing.T) {
	tr := NewTracker(DefaultConfig(), newFakeClock(time.Now()))
	assert.Equal(t, 0.0, tr.Penalty("never-seen"))
}

func TestPenalty_EmptyPatternIDIsNoOp(t *testing.T) {
	tr := NewTracker(DefaultConfig(), newFakeClock(time.Now()))
	tr.Record("")
	assert.Equal(t, 0.0, tr.Penalty(""))
}

func TestRecord_PrunesEntriesOutsideWindow(t *testing.T) {
	clock := newFakeClock(time.Now())
	tr := NewTracker(Config{Threshold: 1, MaxPenalty: 0.8, TimeWindow: time.Hour}, clock)
	for i := 0; i < 5; i++ {
		tr.Record("P1")
	}
	clock.Advance(2 * time.Hour)
	assert.Equal(t, 0.0, tr.Penalty("P1")) // all 5 pruned, count = 0
}

func TestResetAndResetAll(t *testing.T) {
	clock := newFakeClock(time.Now())
	tr := NewTracker(DefaultConfig(), clock)
	for i := 0; i < 20; i++ {
		tr.Record("P1")
		tr.Record("P2")
	}
	tr.Reset("P1")
	assert.Equal(t, 0.0, tr.Penalty("P1"))
	assert.Greater(t, tr.Penalty("P2"), 0.0)

	tr.ResetAll()
	assert.Equal(t, 0.0, tr.Penalty("P2"))
}

func TestStats_ReportsTrackedPatterns(t *testing.T) {
	clock := newFakeClock(time.Now())
	tr := NewTracker(DefaultConfig(), clock)
	for i := 0; i < 3; i++ {
		tr.Record("P1")
	}
	stats := tr.Stats()
	assert.Len(t, stats, 1)
	assert.Equal(t, "P1", stats[0].PatternID)
	assert.Equal(t, 3, stats[0].CountInWindow)
}
