package memory

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
)

// Handler exposes history administration over HTTP.
type Handler struct {
	store  Store
	logger *slog.Logger
}

// NewHandler creates a new memory handler.
func NewHandler(store Store, logger *slog.Logger) *Handler {
	return &Handler{
		store:  store,
		logger: logger,
	}
}

// HistoryResponse represents a history retrieval response.
type HistoryResponse struct {
	AgentID string `json:"agent_id"`
	History string `json:"history"`
	Count   int    `json:"count"`
}

// ClearResponse represents a history clear response.
type ClearResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// StatsResponse represents a history statistics response.
type StatsResponse struct {
	AgentID string `json:"agent_id"`
	Stats   Stats  `json:"stats"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// HistoryHandler handles GET /api/memory/{agent}/history
func (h *Handler) HistoryHandler(w http.ResponseWriter, r *http.Request) {
	agentID := r.PathValue("agent")
	if agentID == "" {
		writeError(w, http.StatusBadRequest, "Missing agent id")
		return
	}

	// Optional limit parameter
	limit := DefaultHistoryLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	response := HistoryResponse{
		AgentID: agentID,
		History: h.store.History(agentID, limit),
		Count:   h.store.Count(agentID),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)

	h.logger.Info("History retrieved", "agent", agentID, "count", response.Count)
}

// ClearHandler handles POST /api/memory/{agent}/clear
func (h *Handler) ClearHandler(w http.ResponseWriter, r *http.Request) {
	agentID := r.PathValue("agent")
	if agentID == "" {
		writeError(w, http.StatusBadRequest, "Missing agent id")
		return
	}

	if err := h.store.Clear(agentID); err != nil {
		h.logger.Error("Failed to clear history", "agent", agentID, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to clear history")
		return
	}

	response := ClearResponse{
		Status:  "success",
		Message: "History cleared",
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)

	h.logger.Info("History cleared", "agent", agentID)
}

// StatsHandler handles GET /api/memory/{agent}/stats
func (h *Handler) StatsHandler(w http.ResponseWriter, r *http.Request) {
	agentID := r.PathValue("agent")
	if agentID == "" {
		writeError(w, http.StatusBadRequest, "Missing agent id")
		return
	}

	response := StatsResponse{
		AgentID: agentID,
		Stats:   h.store.Stats(agentID),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)

	h.logger.Info("History stats retrieved",
		"agent", agentID,
		"messages", response.Stats.MessageCount,
	)
}
