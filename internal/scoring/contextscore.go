package scoring

import (
	"regexp"
	"strings"

	"github.com/redhat-et/podmortem-engine/internal/analysis"
)

// Context Scorer variants, selected at config time; only one is active per
// pipeline instance (spec treats the choice as configuration, not runtime
// polymorphism).
const (
	ContextVariantRegexClasses = "A"
	ContextVariantKeywords     = "B"
)

// ContextConfig tunes both context-scorer variants.
type ContextConfig struct {
	Variant          string // ContextVariantRegexClasses or ContextVariantKeywords
	MaxContextFactor float64
}

// DefaultContextConfig matches the documented defaults. The reference
// implementation only has a keyword-weight context scorer (Variant B), so
// that is the default variant here too; Variant A is an available
// configuration choice, not the shipped default.
func DefaultContextConfig() ContextConfig {
	return ContextConfig{Variant: ContextVariantKeywords, MaxContextFactor: 2.5}
}

var (
	errorClassRegex       = regexp.MustCompile(`(?i)\b(ERROR|FATAL|CRITICAL|SEVERE)\b`)
	warnClassRegex        = regexp.MustCompile(`(?i)\b(WARN|WARNING)\b`)
	stackTraceClassRegex  = regexp.MustCompile(`^\s*at\s+[\w.$]+\(.*\)\s*$`)
	exceptionClassRegex   = regexp.MustCompile(`\b\w*Exception\b|\b\w*Error\b`)
)

func allContextLines(ctx analysis.EventContext) []string {
	lines := make([]string, 0, len(ctx.LinesBefore)+1+len(ctx.LinesAfter))
	lines = append(lines, ctx.LinesBefore...)
	lines = append(lines, ctx.MatchedLine)
	lines = append(lines, ctx.LinesAfter...)
	return lines
}

// contextFactorVariantA implements Variant A: regex-class counting with a
// stack-trace bonus, a density penalty for context dominated by error
// lines, and a hard cap.
func contextFactorVariantA(ctx analysis.EventContext, cfg ContextConfig) float64 {
	lines := allContextLines(ctx)
	if len(lines) == 0 {
		return 1.0
	}

	score := 0.0
	errorLines := 0
	stackTraceLines := 0
	for _, line := range lines {
		switch {
		case errorClassRegex.MatchString(line):
			score += 0.4
			errorLines++
		case warnClassRegex.MatchString(line):
			score += 0.2
		}
		if stackTraceClassRegex.MatchString(line) {
			score += 0.1
			stackTraceLines++
		}
		if exceptionClassRegex.MatchString(line) {
			score += 0.3
		}
	}

	bonus := float64(stackTraceLines) * 0.1
	if bonus > 0.5 {
		bonus = 0.5
	}
	score += bonus

	total := len(lines)
	if total > 10 && float64(errorLines+stackTraceLines) > 0.7*float64(total) {
		score *= 0.8
	}

	factor := 1.0 + score
	maxFactor := cfg.MaxContextFactor
	if maxFactor <= 0 {
		maxFactor = DefaultContextConfig().MaxContextFactor
	}
	if factor > maxFactor {
		factor = maxFactor
	}
	return factor
}

// contextFactorVariantB implements Variant B: keyword-weight summing over
// substring (not regex), case-sensitive containment. A keyword is counted
// once per line that contains it, matching the reference implementation's
// per-line accounting rather than a raw substring-occurrence count. No cap.
func contextFactorVariantB(ctx analysis.EventContext, weights map[string]float64) float64 {
	lines := allContextLines(ctx)
	if len(lines) == 0 || len(weights) == 0 {
		return 1.0
	}

	total := 0.0
	for _, line := range lines {
		for keyword, weight := range weights {
			if strings.Contains(line, keyword) {
				total += weight
			}
		}
	}
	return 1.0 + total
}

// ContextFactor dispatches to the configured variant. weights is only
// consulted for Variant B and may be nil/empty (degrades to 1.0).
func ContextFactor(ctx analysis.EventContext, cfg ContextConfig, weights map[string]float64) float64 {
	if cfg.Variant == ContextVariantKeywords {
		return contextFactorVariantB(ctx, weights)
	}
	return contextFactorVariantA(ctx, cfg)
}
