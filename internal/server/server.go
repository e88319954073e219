// Package server exposes the query router, calendar operations, and the
// advisory services over HTTP.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shivamsuchak/q-revised/internal/agent"
	"github.com/shivamsuchak/q-revised/internal/config"
	"github.com/shivamsuchak/q-revised/internal/education"
	"github.com/shivamsuchak/q-revised/internal/memory"
	"github.com/shivamsuchak/q-revised/internal/metrics"
	"github.com/shivamsuchak/q-revised/internal/university"
)

// Server is the HTTP front for the agent gateway.
type Server struct {
	cfg           *config.Config
	router        *agent.Router
	calendar      *agent.CalendarCapability
	education     *education.Team
	university    *university.Recommender
	memoryHandler *memory.Handler

	httpServer *http.Server
	startTime  time.Time
	logger     *slog.Logger
}

// HealthResponse is the health check payload.
type HealthResponse struct {
	Status    string          `json:"status"`
	Version   string          `json:"version"`
	Uptime    string          `json:"uptime"`
	Services  map[string]bool `json:"services"`
	Timestamp string          `json:"timestamp"`
}

// New creates the HTTP server and registers every API route.
func New(cfg *config.Config, router *agent.Router, cal *agent.CalendarCapability, team *education.Team, rec *university.Recommender, store memory.Store, logger *slog.Logger) *Server {
	s := &Server{
		cfg:           cfg,
		router:        router,
		calendar:      cal,
		education:     team,
		university:    rec,
		memoryHandler: memory.NewHandler(store, logger),
		startTime:     time.Now(),
		logger:        logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.healthHandler)
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("POST /api/query", s.queryHandler)
	mux.HandleFunc("POST /api/search", s.searchHandler)

	mux.HandleFunc("POST /api/calendar", s.calendarHandler)
	mux.HandleFunc("POST /api/calendar/schedule", s.calendarScheduleHandler)
	mux.HandleFunc("POST /api/calendar/update", s.calendarUpdateHandler)
	mux.HandleFunc("POST /api/calendar/delete", s.calendarDeleteHandler)
	mux.HandleFunc("POST /api/calendar/list", s.calendarListHandler)

	mux.HandleFunc("POST /api/education", s.educationHandler)

	mux.HandleFunc("POST /api/university-courses/search", s.courseSearchHandler)
	mux.HandleFunc("POST /api/university-courses/info", s.universityInfoHandler)
	mux.HandleFunc("POST /api/university-courses/recommend", s.recommendHandler)

	mux.HandleFunc("GET /api/memory/{agent}/history", s.memoryHandler.HistoryHandler)
	mux.HandleFunc("POST /api/memory/{agent}/clear", s.memoryHandler.ClearHandler)
	mux.HandleFunc("GET /api/memory/{agent}/stats", s.memoryHandler.StatsHandler)

	mux.HandleFunc("/", s.notFoundHandler)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      s.withMiddleware(mux),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Start starts the HTTP server and blocks until it exits.
func (s *Server) Start() error {
	s.logger.Info("HTTP server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Handler returns the full middleware-wrapped handler.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// statusRecorder captures the response status for metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) withMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		defer func() {
			if p := recover(); p != nil {
				s.logger.Error("Handler panicked",
					"path", r.URL.Path, "panic", p)
				writeError(rec, http.StatusInternalServerError, "internal server error")
			}
			metrics.RequestCount.WithLabelValues(
				r.Method, r.URL.Path, fmt.Sprintf("%d", rec.status)).Inc()
			metrics.RequestDuration.WithLabelValues(
				r.Method, r.URL.Path).Observe(time.Since(start).Seconds())
		}()

		next.ServeHTTP(rec, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// decodeBody decodes a JSON request body into dst, reporting a 400 on
// malformed JSON.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

func (s *Server) notFoundHandler(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "not found")
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "healthy",
		Version: "1.0.0",
		Uptime:  time.Since(s.startTime).String(),
		Services: map[string]bool{
			"http": true,
		},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// queryHandler routes a free-form query through the capability router.
func (s *Server) queryHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Query string `json:"query"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Query == "" {
		writeError(w, http.StatusBadRequest, "No query provided")
		return
	}

	text := s.router.Process(r.Context(), req.Query)
	writeJSON(w, http.StatusOK, map[string]string{"response": text})
}

// searchHandler answers a search-style query. It shares the router so
// history and fallbacks behave the same as /api/query.
func (s *Server) searchHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Query string `json:"query"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Query == "" {
		writeError(w, http.StatusBadRequest, "No query provided")
		return
	}

	text := s.router.Process(r.Context(), req.Query)
	writeJSON(w, http.StatusOK, map[string]string{"response": text})
}

// calendarHandler accepts either a free-form query or a structured
// action request.
func (s *Server) calendarHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Query         string `json:"query,omitempty"`
		Action        string `json:"action,omitempty"`
		Details       string `json:"details,omitempty"`
		OriginalEvent string `json:"original_event,omitempty"`
		TimePeriod    string `json:"time_period,omitempty"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	if req.Query != "" {
		result := s.calendar.Respond(r.Context(), req.Query)
		writeJSON(w, http.StatusOK, map[string]string{"result": result})
		return
	}

	var result string
	switch req.Action {
	case "schedule":
		if req.Details == "" {
			writeError(w, http.StatusBadRequest, "No event details provided")
			return
		}
		result = s.calendar.ScheduleEvent(r.Context(), req.Details)
	case "update":
		if req.OriginalEvent == "" || req.Details == "" {
			writeError(w, http.StatusBadRequest, "Missing event information")
			return
		}
		result = s.calendar.UpdateEvent(r.Context(), req.OriginalEvent, req.Details)
	case "delete":
		if req.Details == "" {
			writeError(w, http.StatusBadRequest, "No event specified")
			return
		}
		result = s.calendar.DeleteEvent(r.Context(), req.Details)
	case "list":
		period := req.TimePeriod
		if period == "" {
			period = "today"
		}
		result = s.calendar.ListEvents(r.Context(), period)
	default:
		writeError(w, http.StatusBadRequest, "Invalid action specified")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"result": result})
}

func (s *Server) calendarScheduleHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Details string `json:"details"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Details == "" {
		writeError(w, http.StatusBadRequest, "No event details provided")
		return
	}

	result := s.calendar.ScheduleEvent(r.Context(), req.Details)
	writeJSON(w, http.StatusOK, map[string]string{"result": result})
}

func (s *Server) calendarUpdateHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OriginalEvent string `json:"original_event"`
		NewDetails    string `json:"new_details"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.OriginalEvent == "" || req.NewDetails == "" {
		writeError(w, http.StatusBadRequest, "Missing event information")
		return
	}

	result := s.calendar.UpdateEvent(r.Context(), req.OriginalEvent, req.NewDetails)
	writeJSON(w, http.StatusOK, map[string]string{"result": result})
}

func (s *Server) calendarDeleteHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Event string `json:"event"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Event == "" {
		writeError(w, http.StatusBadRequest, "No event specified")
		return
	}

	result := s.calendar.DeleteEvent(r.Context(), req.Event)
	writeJSON(w, http.StatusOK, map[string]string{"result": result})
}

func (s *Server) calendarListHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TimePeriod string `json:"time_period"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.TimePeriod == "" {
		req.TimePeriod = "today"
	}

	result := s.calendar.ListEvents(r.Context(), req.TimePeriod)
	writeJSON(w, http.StatusOK, map[string]string{"result": result})
}

// educationHandler runs a query through the education advisory team.
func (s *Server) educationHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Query string `json:"query"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Query == "" {
		writeError(w, http.StatusBadRequest, "No query provided")
		return
	}

	text := s.education.Guidance(r.Context(), req.Query)
	writeJSON(w, http.StatusOK, map[string]string{"response": text})
}

func (s *Server) courseSearchHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		University string `json:"university"`
		Subject    string `json:"subject"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.University == "" {
		writeError(w, http.StatusBadRequest, "No university specified")
		return
	}

	result := s.university.SearchCourses(r.Context(), req.University, req.Subject)
	writeJSON(w, http.StatusOK, map[string]string{"result": result})
}

func (s *Server) universityInfoHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		University string `json:"university"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.University == "" {
		writeError(w, http.StatusBadRequest, "No university specified")
		return
	}

	result := s.university.Info(r.Context(), req.University)
	writeJSON(w, http.StatusOK, map[string]string{"result": result})
}

func (s *Server) recommendHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Interests          string `json:"interests"`
		AcademicLevel      string `json:"academic_level"`
		CareerGoal         string `json:"career_goal"`
		SpecificUniversity string `json:"specific_university"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Interests == "" {
		writeError(w, http.StatusBadRequest, "No interests specified")
		return
	}

	result := s.university.Recommend(r.Context(),
		req.SpecificUniversity, req.Interests, req.AcademicLevel, req.CareerGoal)
	writeJSON(w, http.StatusOK, map[string]string{"result": result})
}
