package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/wricardo/retro-tactics/game/config"
	"github.com/wricardo/retro-tactics/game/engine"
	"github.com/wricardo/retro-tactics/game/service"
	"github.com/wricardo/retro-tactics/pkg/logger"
	"github.com/wricardo/retro-tactics/transport/websocket"
)

// Server represents the REST API server
type Server struct {
	service service.GameService
	hub     *websocket.Hub
	router  *mux.Router
	log     *logrus.Entry
}

// NewServer creates a new API server. hub may be nil.
func NewServer(gameService service.GameService, hub *websocket.Hub) *Server {
	s := &Server{
		service: gameService,
		hub:     hub,
		router:  mux.NewRouter(),
		log:     logger.Log.WithField("component", "api"),
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api").Subrouter()

	// Session management
	api.HandleFunc("/sessions", s.handleCreateSession).Methods("POST")
	api.HandleFunc("/sessions", s.handleListSessions).Methods("GET")
	api.HandleFunc("/sessions/{id}", s.handleGetSession).Methods("GET")
	api.HandleFunc("/sessions/{id}", s.handleDeleteSession).Methods("DELETE")

	// Game operations
	api.HandleFunc("/sessions/{id}/state", s.handleGetGameState).Methods("GET")
	api.HandleFunc("/sessions/{id}/click", s.handleClick).Methods("POST")
	api.HandleFunc("/sessions/{id}/hover", s.handleHover).Methods("POST")
	api.HandleFunc("/sessions/{id}/leave", s.handleLeave).Methods("POST")
	api.HandleFunc("/sessions/{id}/ack", s.handleAcknowledge).Methods("POST")
	api.HandleFunc("/sessions/{id}/cancel", s.handleCancel).Methods("POST")
	api.HandleFunc("/sessions/{id}/new-game", s.handleNewGame).Methods("POST")
	api.HandleFunc("/sessions/{id}/save", s.handleSave).Methods("POST")
	api.HandleFunc("/sessions/{id}/load", s.handleLoad).Methods("POST")

	// Configuration
	api.HandleFunc("/configs", s.handleListConfigs).Methods("GET")
	api.HandleFunc("/configs/{name}", s.handleGetConfig).Methods("GET")

	s.router.HandleFunc("/health", s.handleHealth).Methods("GET")
	s.router.HandleFunc("/ws", s.handleWebSocket)
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Response helpers
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// statusFor maps service and engine errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrSessionNotFound), errors.Is(err, config.ErrConfigNotFound):
		return http.StatusNotFound
	case errors.Is(err, engine.ErrInvalidIndex), errors.Is(err, engine.ErrInvalidArgument),
		errors.Is(err, engine.ErrInvalidUnit), errors.Is(err, engine.ErrInvalidConfig):
		return http.StatusBadRequest
	case errors.Is(err, engine.ErrAwaitingAck), errors.Is(err, engine.ErrNoPendingAck),
		errors.Is(err, engine.ErrCancelRejected):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func respondServiceError(w http.ResponseWriter, err error) {
	respondError(w, statusFor(err), err.Error())
}

// decodeBody decodes an optional JSON body; an empty body leaves req untouched
func decodeBody(r *http.Request, req interface{}) error {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		return err
	}
	return nil
}

// broadcast pushes the state and render events of an interaction
func (s *Server) broadcast(sessionID string, result *service.ActionResult) {
	if s.hub == nil || result == nil {
		return
	}
	s.hub.BroadcastToSession(sessionID, result.GameState, result.Events)
}

// Session Handlers

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ConfigID   string `json:"config_id,omitempty"`
		ConfigName string `json:"config_name,omitempty"`
	}
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	configID := req.ConfigID
	if configID == "" {
		configID = req.ConfigName
	}

	session, err := s.service.CreateSession(r.Context(), configID)
	if err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError && configID != "" {
			status = http.StatusBadRequest
		}
		respondError(w, status, err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, session)
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.service.ListSessions(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	query := r.URL.Query()
	sortBy := query.Get("sort")    // "created", "accessed" (default)
	order := query.Get("order")    // "asc", "desc" (default)
	limitStr := query.Get("limit") // number of sessions to return

	if sortBy == "" {
		sortBy = "accessed"
	}
	if order == "" {
		order = "desc"
	}

	sort.Slice(sessions, func(i, j int) bool {
		var ti, tj time.Time
		if sortBy == "created" {
			ti, tj = sessions[i].CreatedAt, sessions[j].CreatedAt
		} else {
			ti, tj = sessions[i].LastAccessedAt, sessions[j].LastAccessedAt
		}

		if order == "asc" {
			return ti.Before(tj)
		}
		return ti.After(tj)
	})

	total := len(sessions)
	limit := total
	if limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l < total {
			limit = l
		}
	}
	sessions = sessions[:limit]

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":    len(sessions),
		"total":    total,
		"sessions": sessions,
		"sort":     sortBy,
		"order":    order,
	})
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	session, err := s.service.GetSession(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, session)
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	if err := s.service.DeleteSession(r.Context(), sessionID); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Session %s deleted", sessionID),
	})
}

// Game Operation Handlers

func (s *Server) handleGetGameState(w http.ResponseWriter, r *http.Request) {
	state, err := s.service.GetGameState(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, state)
}

type indexRequest struct {
	Index *int `json:"index"`
}

// readIndex decodes the required cell index of click, hover and leave
func readIndex(w http.ResponseWriter, r *http.Request) (int, bool) {
	var req indexRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return 0, false
	}
	if req.Index == nil {
		respondError(w, http.StatusBadRequest, "index is required")
		return 0, false
	}
	return *req.Index, true
}

// runAction executes one interaction, logs it and broadcasts the result
func (s *Server) runAction(w http.ResponseWriter, r *http.Request, action string,
	fn func(ctx context.Context, sessionID string) (*service.ActionResult, error)) {
	sessionID := mux.Vars(r)["id"]

	result, err := fn(r.Context(), sessionID)
	if err != nil {
		s.log.WithFields(logrus.Fields{"session": sessionID, "action": action}).WithError(err).Debug("Action failed")
		respondServiceError(w, err)
		return
	}

	s.broadcast(sessionID, result)

	entry := s.log.WithFields(logrus.Fields{
		"session": sessionID,
		"action":  action,
		"success": result.Success,
	})
	if result.GameState != nil {
		entry = entry.WithFields(logrus.Fields{
			"phase":      result.GameState.Phase,
			"game_level": result.GameState.Level,
			"score":      result.GameState.Score,
		})
	}
	entry.Info("Action")

	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleClick(w http.ResponseWriter, r *http.Request) {
	index, ok := readIndex(w, r)
	if !ok {
		return
	}
	s.runAction(w, r, "click", func(ctx context.Context, id string) (*service.ActionResult, error) {
		return s.service.Click(ctx, id, index)
	})
}

func (s *Server) handleHover(w http.ResponseWriter, r *http.Request) {
	index, ok := readIndex(w, r)
	if !ok {
		return
	}
	sessionID := mux.Vars(r)["id"]

	result, err := s.service.Hover(r.Context(), sessionID, index)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	if s.hub != nil && len(result.Events) > 0 {
		state, err := s.service.GetGameState(r.Context(), sessionID)
		if err == nil {
			s.hub.BroadcastToSession(sessionID, state, result.Events)
		}
	}

	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleLeave(w http.ResponseWriter, r *http.Request) {
	index, ok := readIndex(w, r)
	if !ok {
		return
	}
	s.runAction(w, r, "leave", func(ctx context.Context, id string) (*service.ActionResult, error) {
		return s.service.Leave(ctx, id, index)
	})
}

func (s *Server) handleAcknowledge(w http.ResponseWriter, r *http.Request) {
	s.runAction(w, r, "ack", s.service.Acknowledge)
}

func (s *Server) handleCancel(w http.ResponseWriter, r *http.Request) {
	s.runAction(w, r, "cancel", s.service.Cancel)
}

func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Level int `json:"level"`
	}
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	s.runAction(w, r, "new_game", func(ctx context.Context, id string) (*service.ActionResult, error) {
		return s.service.NewGame(ctx, id, req.Level)
	})
}

type slotRequest struct {
	Slot string `json:"slot"`
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	var req slotRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	s.runAction(w, r, "save", func(ctx context.Context, id string) (*service.ActionResult, error) {
		return s.service.SaveGame(ctx, id, req.Slot)
	})
}

func (s *Server) handleLoad(w http.ResponseWriter, r *http.Request) {
	var req slotRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	s.runAction(w, r, "load", func(ctx context.Context, id string) (*service.ActionResult, error) {
		return s.service.LoadGame(ctx, id, req.Slot)
	})
}

// Configuration Handlers

func (s *Server) handleListConfigs(w http.ResponseWriter, r *http.Request) {
	configs, err := s.service.ListConfigs(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, configs)
}

func (s *Server) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	configName := strings.TrimSpace(mux.Vars(r)["name"])

	cfg, err := s.service.LoadConfig(r.Context(), configName)
	if err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			status = http.StatusNotFound
		}
		respondError(w, status, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, cfg)
}

// WebSocket Handler

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session")
	if sessionID == "" {
		http.Error(w, "session parameter required", http.StatusBadRequest)
		return
	}
	if s.hub == nil {
		http.Error(w, "websocket not available", http.StatusServiceUnavailable)
		return
	}

	if _, err := s.service.GetSession(r.Context(), sessionID); err != nil {
		http.Error(w, "Invalid session", http.StatusNotFound)
		return
	}

	s.hub.ServeWS(w, r, sessionID)
}

// Health check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}
