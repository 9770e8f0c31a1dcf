// Package api implements the thin HTTP boundary: decode, validate, call
// the orchestrator, encode. Kept intentionally small — the pattern-matching
// and scoring engine is the part worth reading; this package exists only so
// the engine runs as an actual service.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/redhat-et/podmortem-engine/internal/analysis"
	"github.com/redhat-et/podmortem-engine/internal/metrics"
	"github.com/redhat-et/podmortem-engine/internal/orchestrator"
)

// Handler wires the engine's HTTP surface: POST /v1/analyze, GET
// /v1/analyze/stream (websocket), GET /metrics, GET /healthz.
type Handler struct {
	orchestrator orchestrator.Orchestrator
	logger       *zap.SugaredLogger
	upgrader     websocket.Upgrader
}

// NewHandler constructs the HTTP handler. logger may be nil, in which case
// request-level logging is skipped.
func NewHandler(orc orchestrator.Orchestrator, logger *zap.SugaredLogger) http.Handler {
	h := &Handler{
		orchestrator: orc,
		logger:       logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/analyze", h.handleAnalyze)
	mux.HandleFunc("/v1/analyze/stream", h.handleAnalyzeStream)
	mux.HandleFunc("/healthz", h.handleHealthz)
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

func (h *Handler) log() *zap.SugaredLogger {
	if h.logger != nil {
		return h.logger
	}
	return zap.NewNop().Sugar()
}

func (h *Handler) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var data analysis.PodFailureData
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		h.writeInvalidInput(w)
		return
	}

	start := time.Now()
	result, err := h.orchestrator.Analyze(&data)
	if err != nil {
		metrics.AnalysesTotal.WithLabelValues("invalid_input").Inc()
		h.writeInvalidInput(w)
		return
	}

	metrics.AnalysesTotal.WithLabelValues("success").Inc()
	metrics.AnalysisDuration.WithLabelValues("success").Observe(time.Since(start).Seconds())
	for _, e := range result.Events {
		metrics.EventsMatchedTotal.WithLabelValues(e.MatchedPattern.Severity).Inc()
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		h.log().Warnw("failed to encode analysis result", "error", err)
	}
}

func (h *Handler) writeInvalidInput(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": analysis.ErrInvalidInput.Error()})
}

func (h *Handler) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
