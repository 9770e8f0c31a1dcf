package api

import (
	"net/http"

	"github.com/redhat-et/podmortem-engine/internal/analysis"
	"github.com/redhat-et/podmortem-engine/internal/metrics"
	"github.com/redhat-et/podmortem-engine/internal/orchestrator"
)

// streamMessage is one frame sent over the websocket: either a matched
// event discovered mid-scan, or the final assembled result.
type streamMessage struct {
	Type   string                   `json:"type"` // "event" or "result"
	Event  *analysis.MatchedEvent   `json:"event,omitempty"`
	Result *analysis.AnalysisResult `json:"result,omitempty"`
}

// handleAnalyzeStream upgrades to a websocket, reads one PodFailureData
// payload as the first client message, then streams each MatchedEvent as
// it's discovered during the scan, followed by the final AnalysisResult.
// Grounded on the teacher's InvestigationEvent/Subscriber streaming
// pattern, adapted from "stream reasoning steps" to "stream matches as
// they're found" — useful for large logs where a caller wants partial
// results before the scan completes.
func (h *Handler) handleAnalyzeStream(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log().Warnw("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	metrics.WebSocketConnections.Inc()
	defer metrics.WebSocketConnections.Dec()

	var data analysis.PodFailureData
	if err := conn.ReadJSON(&data); err != nil {
		h.log().Warnw("failed to read analyze-stream request", "error", err)
		return
	}

	sink := func(e analysis.MatchedEvent) {
		_ = conn.WriteJSON(streamMessage{Type: "event", Event: &e})
	}

	result, err := h.orchestrator.Analyze(&data, orchestrator.WithEventSink(sink))
	if err != nil {
		_ = conn.WriteJSON(map[string]string{"type": "error", "error": err.Error()})
		return
	}

	_ = conn.WriteJSON(streamMessage{Type: "result", Result: result})
}
