package config

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

const envPrefix = "PODMORTEM"

type viperManager struct {
	v       *viper.Viper
	current atomic.Pointer[Config]
}

func (m *viperManager) Load(configPath string) (*Config, error) {
	m.v = viper.New()
	m.v.SetEnvPrefix(envPrefix)
	m.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	m.v.AutomaticEnv()

	setDefaults(m.v)

	if configPath != "" {
		m.v.SetConfigFile(configPath)
		if err := m.v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: cannot read %s: %w", configPath, err)
		}
	}

	cfg, err := unmarshal(m.v)
	if err != nil {
		return nil, err
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("config: validation failed: %v", errs)
	}

	m.current.Store(cfg)
	return cfg, nil
}

func (m *viperManager) Get() *Config {
	cfg := m.current.Load()
	if cfg == nil {
		panic("config: Get called before Load")
	}
	return cfg
}

func (m *viperManager) Watch(ctx context.Context, onChange func(*Config)) error {
	if m.v == nil || m.v.ConfigFileUsed() == "" {
		return nil
	}

	m.v.OnConfigChange(func(_ fsnotify.Event) {
		cfg, err := unmarshal(m.v)
		if err != nil {
			return
		}
		if errs := cfg.Validate(); len(errs) > 0 {
			return
		}
		m.current.Store(cfg)
		if onChange != nil {
			onChange(cfg)
		}
	})
	m.v.WatchConfig()

	<-ctx.Done()
	return ctx.Err()
}

func setDefaults(v *viper.Viper) {
	d := DefaultConfig()

	v.SetDefault("server.port", d.Server.Port)

	v.SetDefault("pattern.directory", d.Patterns.Directory)

	v.SetDefault("scoring.context.variant", d.Scoring.Context.Variant)
	v.SetDefault("scoring.context.keywords-directory", d.Scoring.Context.KeywordsDirectory)
	v.SetDefault("scoring.context.max-context-factor", d.Scoring.Context.MaxContextFactor)

	v.SetDefault("scoring.proximity.decay-constant", d.Scoring.Proximity.DecayConstant)
	v.SetDefault("scoring.proximity.max-window", d.Scoring.Proximity.MaxWindow)

	v.SetDefault("scoring.chronological.early-bonus-threshold", d.Scoring.Chronological.EarlyBonusThreshold)
	v.SetDefault("scoring.chronological.max-early-bonus", d.Scoring.Chronological.MaxEarlyBonus)
	v.SetDefault("scoring.chronological.penalty-threshold", d.Scoring.Chronological.PenaltyThreshold)

	v.SetDefault("scoring.frequency.threshold", d.Scoring.Frequency.Threshold)
	v.SetDefault("scoring.frequency.max-penalty", d.Scoring.Frequency.MaxPenalty)
	v.SetDefault("scoring.frequency.time-window-hours", d.Scoring.Frequency.TimeWindowHours)

	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("logging.output_path", d.Logging.OutputPath)
}

func unmarshal(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{Port: v.GetInt("server.port")},
		Patterns: PatternsConfig{
			Directory: v.GetString("pattern.directory"),
		},
		Scoring: ScoringConfig{
			Context: ContextScoringConfig{
				Variant:           strings.ToUpper(v.GetString("scoring.context.variant")),
				KeywordsDirectory: v.GetString("scoring.context.keywords-directory"),
				MaxContextFactor:  v.GetFloat64("scoring.context.max-context-factor"),
			},
			Proximity: ProximityScoringConfig{
				DecayConstant: v.GetFloat64("scoring.proximity.decay-constant"),
				MaxWindow:     v.GetInt("scoring.proximity.max-window"),
			},
			Chronological: ChronologicalScoringConfig{
				EarlyBonusThreshold: v.GetFloat64("scoring.chronological.early-bonus-threshold"),
				MaxEarlyBonus:       v.GetFloat64("scoring.chronological.max-early-bonus"),
				PenaltyThreshold:    v.GetFloat64("scoring.chronological.penalty-threshold"),
			},
			Frequency: FrequencyScoringConfig{
				Threshold:       v.GetFloat64("scoring.frequency.threshold"),
				MaxPenalty:      v.GetFloat64("scoring.frequency.max-penalty"),
				TimeWindowHours: v.GetInt("scoring.frequency.time-window-hours"),
			},
		},
		Logging: LoggingConfig{
			Level:      v.GetString("logging.level"),
			Format:     v.GetString("logging.format"),
			OutputPath: v.GetString("logging.output_path"),
		},
	}
	return cfg, nil
}
