package config

import "context"

// Manager loads, validates, and hot-reloads the engine's Config.
type Manager interface {
	// Load reads configPath (if non-empty), applies defaults and
	// PODMORTEM_-prefixed environment overrides, and returns the
	// resolved Config. Priority, highest first: environment, config
	// file, defaults.
	Load(configPath string) (*Config, error)

	// Get returns the most recently loaded Config. Panics if called
	// before Load.
	Get() *Config

	// Watch starts watching the loaded config file for changes,
	// re-resolving and swapping the current Config on every write. It
	// runs until ctx is canceled. A no-op if Load was called with an
	// empty configPath.
	Watch(ctx context.Context, onChange func(*Config)) error
}

// NewManager constructs the default viper-backed Manager.
func NewManager() Manager {
	return &viperManager{}
}
