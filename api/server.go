package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/wojons/ptp-core/internal/loop"
	"github.com/wojons/ptp-core/internal/memory"
	"github.com/wojons/ptp-core/transport/websocket"
)

// Server is the debug/introspection HTTP server (spec.md §4.7's
// AI-integration surface has its own transport/mcp server; this one is
// for humans and dashboards watching a single running Controller).
type Server struct {
	controller *loop.Controller
	hub        *websocket.Hub
	router     *mux.Router
}

// NewServer wires a debug/introspection server around a running
// Controller and its tick-event WebSocket hub.
func NewServer(controller *loop.Controller, hub *websocket.Hub) *Server {
	s := &Server{
		controller: controller,
		hub:        hub,
		router:     mux.NewRouter(),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/state", s.handleGetState).Methods("GET")
	api.HandleFunc("/plan", s.handleGetPlan).Methods("GET")
	api.HandleFunc("/events", s.handleGetEvents).Methods("GET")
	api.HandleFunc("/memory/context", s.handleGetContext).Methods("GET")
	api.HandleFunc("/memory/objectives", s.handleGetObjectives).Methods("GET")
	api.HandleFunc("/snapshots", s.handleListSnapshots).Methods("GET")
	api.HandleFunc("/snapshots/{id}/validate", s.handleValidateSnapshot).Methods("GET")
	api.HandleFunc("/snapshots/{id}/rollback", s.handleRollback).Methods("POST")
	api.HandleFunc("/health", s.handleHealth).Methods("GET")

	s.router.HandleFunc("/ws", s.handleWebSocket)
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func (s *Server) handleGetState(w http.ResponseWriter, r *http.Request) {
	state := s.controller.State()
	if state == nil {
		respondError(w, http.StatusNotFound, "no game state yet")
		return
	}
	respondJSON(w, http.StatusOK, state)
}

func (s *Server) handleGetPlan(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.controller.Planner.GetStatus())
}

func (s *Server) handleGetEvents(w http.ResponseWriter, r *http.Request) {
	events := s.controller.EventLog().Events()

	limit := len(events)
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l < limit {
			limit = l
		}
	}
	start := len(events) - limit

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":  limit,
		"events": events[start:],
	})
}

func (s *Server) handleGetContext(w http.ResponseWriter, r *http.Request) {
	ctx := memory.GetContextForPlanning(s.controller.Observer, s.controller.Strategist, s.controller.Tactician)
	respondJSON(w, http.StatusOK, ctx)
}

func (s *Server) handleGetObjectives(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, memory.QueryStrategistObjectives(s.controller.Strategist))
}

func (s *Server) handleListSnapshots(w http.ResponseWriter, r *http.Request) {
	if s.controller.Snapshots == nil {
		respondJSON(w, http.StatusOK, []interface{}{})
		return
	}
	respondJSON(w, http.StatusOK, s.controller.Snapshots.List())
}

func (s *Server) handleValidateSnapshot(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	ok, err := s.controller.Snapshots.Validate(id)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"valid": ok})
}

func (s *Server) handleRollback(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := s.controller.RollbackTo(id); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if s.hub != nil {
		s.hub.BroadcastTick("default", s.controller.State(), loop.Event{Kind: loop.EventRollback, Detail: fmt.Sprintf("rolled back to %s", id)})
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": fmt.Sprintf("rolled back to snapshot %s", id)})
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	runID := r.URL.Query().Get("run")
	if runID == "" {
		runID = "default"
	}
	s.hub.ServeWS(w, r, runID)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}
