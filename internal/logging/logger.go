// Package logging provides the structured, rotating application logger
// used throughout the engine: one zap core writing JSON to a rotated file
// via lumberjack, teed with a human-readable console core for local runs.
package logging

// Config controls log level, destination, and rotation policy.
type Config struct {
	// Level is the minimum log level (debug, info, warn, error).
	Level string

	// OutputPath is the path to the application log file. Empty disables
	// file output (console only).
	OutputPath string

	// MaxSizeMB is the maximum size in megabytes before rotation.
	MaxSizeMB int

	// MaxBackups is the maximum number of old log files to retain.
	MaxBackups int

	// MaxAgeDays is the maximum number of days to retain old log files.
	MaxAgeDays int

	// Compress determines if rotated files should be compressed.
	Compress bool

	// Console additionally logs human-readable output to stderr. Useful
	// in local/dev runs alongside the rotated JSON file.
	Console bool
}

// DefaultConfig returns sane defaults for a long-running service process.
func DefaultConfig() Config {
	return Config{
		Level:      "info",
		OutputPath: "logs/podmortem-engine.log",
		MaxSizeMB:  100,
		MaxBackups: 10,
		MaxAgeDays: 30,
		Compress:   true,
		Console:    true,
	}
}
