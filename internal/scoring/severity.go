package scoring

import "strings"

// severityMultipliers is the fixed table from the scoring pipeline's
// severity factor. Lookup is case-insensitive; an unknown severity
// multiplies by 1.0.
var severityMultipliers = map[string]float64{
	"CRITICAL": 5.0,
	"HIGH":     3.0,
	"MEDIUM":   2.0,
	"LOW":      1.5,
	"INFO":     1.0,
}

// SeverityMultiplier returns the fixed amplification factor for a severity
// string, 1.0 for anything not in the table.
func SeverityMultiplier(severity string) float64 {
	if m, ok := severityMultipliers[strings.ToUpper(severity)]; ok {
		return m
	}
	return 1.0
}
