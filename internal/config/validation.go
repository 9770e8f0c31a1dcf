package config

import (
	"fmt"
	"strings"
)

// ValidationError reports one invalid configuration field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed for %s: %s", e.Field, e.Message)
}

// Validate checks the resolved Config for internally-inconsistent values.
// pattern.directory is deliberately not required here — when it is empty
// the server skips pattern loading and runs with an empty registry, a valid
// (if useless) state; a directory that cannot be read fails at
// registry-load time, not here.
func (c *Config) Validate() []error {
	var errs []error

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, &ValidationError{
			Field:   "server.port",
			Message: fmt.Sprintf("port must be between 1 and 65535, got %d", c.Server.Port),
		})
	}

	validVariants := map[string]bool{"A": true, "B": true}
	if !validVariants[strings.ToUpper(c.Scoring.Context.Variant)] {
		errs = append(errs, &ValidationError{
			Field:   "scoring.context.variant",
			Message: fmt.Sprintf("invalid variant %q, must be A or B", c.Scoring.Context.Variant),
		})
	}
	if c.Scoring.Context.MaxContextFactor <= 0 {
		errs = append(errs, &ValidationError{
			Field:   "scoring.context.max-context-factor",
			Message: "must be positive",
		})
	}

	if c.Scoring.Proximity.DecayConstant <= 0 {
		errs = append(errs, &ValidationError{
			Field:   "scoring.proximity.decay-constant",
			Message: "must be positive",
		})
	}
	if c.Scoring.Proximity.MaxWindow < 0 {
		errs = append(errs, &ValidationError{
			Field:   "scoring.proximity.max-window",
			Message: "cannot be negative",
		})
	}

	ch := c.Scoring.Chronological
	if ch.EarlyBonusThreshold <= 0 || ch.EarlyBonusThreshold >= ch.PenaltyThreshold {
		errs = append(errs, &ValidationError{
			Field:   "scoring.chronological.early-bonus-threshold",
			Message: "must be positive and less than penalty-threshold",
		})
	}
	if ch.MaxEarlyBonus <= 1.0 {
		errs = append(errs, &ValidationError{
			Field:   "scoring.chronological.max-early-bonus",
			Message: "must be greater than 1.0",
		})
	}
	if ch.PenaltyThreshold <= 0 || ch.PenaltyThreshold >= 1.0 {
		errs = append(errs, &ValidationError{
			Field:   "scoring.chronological.penalty-threshold",
			Message: "must be in (0, 1)",
		})
	}

	fr := c.Scoring.Frequency
	if fr.Threshold <= 0 {
		errs = append(errs, &ValidationError{
			Field:   "scoring.frequency.threshold",
			Message: "must be positive",
		})
	}
	if fr.MaxPenalty <= 0 || fr.MaxPenalty > 1.0 {
		errs = append(errs, &ValidationError{
			Field:   "scoring.frequency.max-penalty",
			Message: "must be in (0, 1]",
		})
	}
	if fr.TimeWindowHours <= 0 {
		errs = append(errs, &ValidationError{
			Field:   "scoring.frequency.time-window-hours",
			Message: "must be positive",
		})
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, &ValidationError{
			Field:   "logging.level",
			Message: fmt.Sprintf("invalid log level %q, must be one of: debug, info, warn, error", c.Logging.Level),
		})
	}

	return errs
}
