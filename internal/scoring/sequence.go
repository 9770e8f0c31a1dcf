package scoring

import "github.com/redhat-et/podmortem-engine/internal/patterns"

// sequenceNearPrimaryWindow is the fixed +/-5 line window the last sequence
// event is searched within around the primary match.
const sequenceNearPrimaryWindow = 5

// TemporalFactor detects ordered sequence-event chains ending at/near a
// primary match at zero-based index p, and returns 1.0 + the sum of bonus
// multipliers of every sequence that matched (1.0 with none).
//
// The reference implementation anchors the backward scan cursor at the
// primary index after the last-event-near-primary check succeeds, rather
// than at the index where that last event actually matched. That behavior
// is preserved here rather than "fixed": a sequence whose final event fires
// a few lines before the primary is scored identically to one whose final
// event fires exactly on the primary line.
func TemporalFactor(lines []string, p int, sequences []patterns.SequencePattern) float64 {
	total := 0.0
	for _, seq := range sequences {
		if isSequenceMatched(lines, p, seq.Events) {
			total += seq.BonusMultiplier
		}
	}
	return 1.0 + total
}

func isSequenceMatched(lines []string, p int, events []patterns.SequenceEvent) bool {
	if len(events) == 0 {
		return false
	}

	last := events[len(events)-1]
	if !eventFoundNearPrimary(lines, p, last) {
		return false
	}

	cursor := p // anchored at the primary index regardless of actual match location
	for i := len(events) - 2; i >= 0; i-- {
		idx, found := findEventBefore(lines, cursor, events[i])
		if !found {
			return false
		}
		cursor = idx
	}
	return true
}

func eventFoundNearPrimary(lines []string, p int, ev patterns.SequenceEvent) bool {
	start := p - sequenceNearPrimaryWindow
	if start < 0 {
		start = 0
	}
	end := p + sequenceNearPrimaryWindow
	if end > len(lines)-1 {
		end = len(lines) - 1
	}
	for i := start; i <= end; i++ {
		if ev.Compiled.MatchString(lines[i]) {
			return true
		}
	}
	return false
}

// findEventBefore scans backward from cursor-1 down to 0 and returns the
// nearest line index matching ev.
func findEventBefore(lines []string, cursor int, ev patterns.SequenceEvent) (int, bool) {
	for i := cursor - 1; i >= 0; i-- {
		if ev.Compiled.MatchString(lines[i]) {
			return i, true
		}
	}
	return 0, false
}
