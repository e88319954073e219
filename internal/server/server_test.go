package server

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shivamsuchak/q-revised/internal/agent"
	"github.com/shivamsuchak/q-revised/internal/config"
	"github.com/shivamsuchak/q-revised/internal/education"
	"github.com/shivamsuchak/q-revised/internal/memory"
	"github.com/shivamsuchak/q-revised/internal/university"
)

// testServer builds a fully offline server: no completion client, so
// every capability answers from its templates.
func testServer(t *testing.T) *Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	store := memory.NewFileStore(t.TempDir(), logger)

	cal := agent.NewCalendarCapability(nil, store, nil, logger)
	registry := agent.NewRegistry(
		agent.NewGeneralCapability(nil, logger),
		agent.NewSearchCapability(nil, logger),
		agent.NewChatCapability(nil, logger),
		agent.NewResearchCapability(nil, logger),
		agent.NewStudyPlanCapability(nil, logger),
		agent.NewDocumentAnalysisCapability(nil, logger),
		cal,
	)
	router := agent.NewRouter(nil, registry, store, logger)
	team := education.NewTeam(nil, logger)
	rec := university.NewRecommender(nil, logger)

	cfg := &config.Config{Server: config.ServerConfig{Port: 18800, Host: "localhost"}}
	return New(cfg, router, cal, team, rec, store, logger)
}

func postJSON(t *testing.T, h http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	buf, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(buf))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var out map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&out))
	return out
}

func TestHealth(t *testing.T) {
	srv := testServer(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var hr HealthResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&hr))
	assert.Equal(t, "healthy", hr.Status)
}

func TestQueryEndpoint(t *testing.T) {
	srv := testServer(t)
	w := postJSON(t, srv.Handler(), "/api/query", map[string]string{
		"query": "Create a study plan for learning Go",
	})

	require.Equal(t, http.StatusOK, w.Code)
	out := decode(t, w)
	assert.Contains(t, out["response"], "# Response")
}

func TestQueryMissingField(t *testing.T) {
	srv := testServer(t)
	w := postJSON(t, srv.Handler(), "/api/query", map[string]string{})

	require.Equal(t, http.StatusBadRequest, w.Code)
	out := decode(t, w)
	assert.NotEmpty(t, out["error"])
}

func TestSearchEndpoint(t *testing.T) {
	srv := testServer(t)
	w := postJSON(t, srv.Handler(), "/api/search", map[string]string{
		"query": "Best restaurants near the city center",
	})

	require.Equal(t, http.StatusOK, w.Code)
	out := decode(t, w)
	assert.NotEmpty(t, out["response"])
}

func TestCalendarActionSchedule(t *testing.T) {
	srv := testServer(t)
	w := postJSON(t, srv.Handler(), "/api/calendar", map[string]string{
		"action":  "schedule",
		"details": "a meeting titled Team Sync on April 30, 2025 at 2:00 PM",
	})

	require.Equal(t, http.StatusOK, w.Code)
	out := decode(t, w)
	assert.Contains(t, out["result"], "Team Sync")
}

func TestCalendarInvalidAction(t *testing.T) {
	srv := testServer(t)
	w := postJSON(t, srv.Handler(), "/api/calendar", map[string]string{
		"action": "explode",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	out := decode(t, w)
	assert.Equal(t, "Invalid action specified", out["error"])
}

func TestCalendarDedicatedEndpoints(t *testing.T) {
	srv := testServer(t)

	w := postJSON(t, srv.Handler(), "/api/calendar/schedule", map[string]string{
		"details": "lunch with Sam on Friday at 12:30 PM",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, decode(t, w)["result"])

	w = postJSON(t, srv.Handler(), "/api/calendar/update", map[string]string{
		"original_event": "lunch with Sam",
		"new_details":    "move to 1:00 PM",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, decode(t, w)["result"])

	w = postJSON(t, srv.Handler(), "/api/calendar/delete", map[string]string{
		"event": "lunch with Sam",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, decode(t, w)["result"])

	w = postJSON(t, srv.Handler(), "/api/calendar/list", map[string]string{})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, decode(t, w)["result"], "today")
}

func TestCalendarUpdateMissingFields(t *testing.T) {
	srv := testServer(t)
	w := postJSON(t, srv.Handler(), "/api/calendar/update", map[string]string{
		"original_event": "lunch",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEducationEndpoint(t *testing.T) {
	srv := testServer(t)
	w := postJSON(t, srv.Handler(), "/api/education", map[string]string{
		"query": "I want to become a data scientist",
	})

	require.Equal(t, http.StatusOK, w.Code)
	out := decode(t, w)
	assert.Contains(t, out["response"], "Data Scientist")
}

func TestUniversityCourseSearch(t *testing.T) {
	srv := testServer(t)
	w := postJSON(t, srv.Handler(), "/api/university-courses/search", map[string]string{
		"university": "University of Mannheim",
		"subject":    "machine learning",
	})

	require.Equal(t, http.StatusOK, w.Code)
	out := decode(t, w)
	assert.Contains(t, out["result"], "Mannheim")
}

func TestUniversityRecommendRequiresInterests(t *testing.T) {
	srv := testServer(t)
	w := postJSON(t, srv.Handler(), "/api/university-courses/recommend", map[string]string{
		"academic_level": "graduate",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMemoryAdminEndpoints(t *testing.T) {
	srv := testServer(t)

	// Seed history through the router.
	w := postJSON(t, srv.Handler(), "/api/query", map[string]string{
		"query": "Create a study plan for calculus",
	})
	require.Equal(t, http.StatusOK, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/memory/study_plan/history", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var hist memory.HistoryResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&hist))
	assert.Equal(t, "study_plan", hist.AgentID)
	assert.Equal(t, 2, hist.Count)

	clearRec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(clearRec,
		httptest.NewRequest(http.MethodPost, "/api/memory/study_plan/clear", nil))
	require.Equal(t, http.StatusOK, clearRec.Code)

	statsRec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(statsRec,
		httptest.NewRequest(http.MethodGet, "/api/memory/study_plan/stats", nil))
	require.Equal(t, http.StatusOK, statsRec.Code)

	var stats memory.StatsResponse
	require.NoError(t, json.NewDecoder(statsRec.Body).Decode(&stats))
	assert.Equal(t, 0, stats.Stats.MessageCount)
}

func TestUnknownPathReturnsJSONError(t *testing.T) {
	srv := testServer(t)
	req := httptest.NewRequest(http.MethodGet, "/api/nope", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
	out := decode(t, w)
	assert.Equal(t, "not found", out["error"])
}

func TestInvalidJSONBody(t *testing.T) {
	srv := testServer(t)
	req := httptest.NewRequest(http.MethodPost, "/api/query", bytes.NewReader([]byte("{not json")))
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
}
