package main

// Package main is the entry point for the podmortem-engine server.
//
// Responsibilities:
//   - Load and validate configuration from YAML, environment variables
//   - Load pattern sets and (Variant B) keyword weights, with hot reload
//   - Wire the scoring pipeline, frequency tracker, and orchestrator
//   - Start the HTTP server: POST /v1/analyze, GET /v1/analyze/stream,
//     GET /metrics, GET /healthz
//   - Implement graceful shutdown with context cancellation
import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redhat-et/podmortem-engine/internal/api"
	"github.com/redhat-et/podmortem-engine/internal/config"
	"github.com/redhat-et/podmortem-engine/internal/evidence"
	"github.com/redhat-et/podmortem-engine/internal/frequency"
	"github.com/redhat-et/podmortem-engine/internal/keywords"
	"github.com/redhat-et/podmortem-engine/internal/logging"
	"github.com/redhat-et/podmortem-engine/internal/metrics"
	"github.com/redhat-et/podmortem-engine/internal/orchestrator"
	"github.com/redhat-et/podmortem-engine/internal/patterns"
	"github.com/redhat-et/podmortem-engine/internal/scoring"
)

func main() {
	configPath := flag.String("config", "", "path to config YAML file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "podmortem-engine: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	mgr := config.NewManager()
	cfg, err := mgr.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(&logging.Config{
		Level:      cfg.Logging.Level,
		OutputPath: cfg.Logging.OutputPath,
		Console:    true,
		MaxSizeMB:  100,
		MaxBackups: 10,
		MaxAgeDays: 30,
		Compress:   true,
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()

	registry := patterns.New(logger)
	if cfg.Patterns.Directory != "" {
		loadErrs, err := registry.Load(cfg.Patterns.Directory)
		if err != nil {
			return fmt.Errorf("load patterns: %w", err)
		}
		for _, e := range loadErrs {
			logger.Warnw("pattern load warning", "error", e.Error())
		}
		metrics.PatternLoadErrorsTotal.Add(float64(len(loadErrs)))
		count := 0
		for _, s := range registry.PatternSets() {
			count += len(s.Patterns)
		}
		metrics.PatternsLoaded.Set(float64(count))
	}

	keywordLoader := keywords.New(logger)
	if cfg.Scoring.Context.Variant == "B" && cfg.Scoring.Context.KeywordsDirectory != "" {
		keywordLoader.Load(cfg.Scoring.Context.KeywordsDirectory)
		metrics.KeywordsLoaded.Set(float64(len(keywordLoader.Weights())))
	}

	pipeline := scoring.NewPipeline(scoring.Config{
		Proximity: scoring.ProximityConfig{
			DecayConstant: cfg.Scoring.Proximity.DecayConstant,
			MaxWindow:     cfg.Scoring.Proximity.MaxWindow,
		},
		Chronological: scoring.ChronologicalConfig{
			EarlyThreshold:   cfg.Scoring.Chronological.EarlyBonusThreshold,
			MaxEarlyBonus:    cfg.Scoring.Chronological.MaxEarlyBonus,
			PenaltyThreshold: cfg.Scoring.Chronological.PenaltyThreshold,
		},
		Context: scoring.ContextConfig{
			Variant:          cfg.Scoring.Context.Variant,
			MaxContextFactor: cfg.Scoring.Context.MaxContextFactor,
		},
		Keywords: keywordLoader.Weights(),
	})

	freqTracker := frequency.NewTracker(frequency.Config{
		Threshold:  cfg.Scoring.Frequency.Threshold,
		MaxPenalty: cfg.Scoring.Frequency.MaxPenalty,
		TimeWindow: time.Duration(cfg.Scoring.Frequency.TimeWindowHours) * time.Hour,
	}, frequency.RealClock())

	orc := orchestrator.New(orchestrator.Deps{
		Registry:  registry,
		Extractor: evidence.New(),
		Pipeline:  pipeline,
		Frequency: freqTracker,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Patterns.Directory != "" {
		if err := registry.Watch(ctx); err != nil {
			logger.Warnw("pattern hot reload disabled", "error", err)
		}
	}
	if cfg.Scoring.Context.Variant == "B" && cfg.Scoring.Context.KeywordsDirectory != "" {
		if err := keywordLoader.Watch(ctx); err != nil {
			logger.Warnw("keyword hot reload disabled", "error", err)
		}
	}

	handler := api.NewHandler(orc, logger)
	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: handler,
	}

	go func() {
		logger.Infow("starting podmortem-engine", "port", cfg.Server.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Errorw("http server stopped unexpectedly", "error", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Infow("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	return httpServer.Shutdown(shutdownCtx)
}
