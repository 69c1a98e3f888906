// Package server exposes the battle engine over JSON HTTP and WebSocket for
// the browser client.
package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/HuntleyOG/eldvar-engine/internal/battle"
	"github.com/HuntleyOG/eldvar-engine/internal/config"
	"github.com/HuntleyOG/eldvar-engine/internal/database"
	"github.com/HuntleyOG/eldvar-engine/internal/logger"
)

// Server wires the battle service to HTTP handlers.
type Server struct {
	svc *battle.Service
	cfg *config.ServerConfig
}

// NewServer creates a Server.
func NewServer(svc *battle.Service, cfg *config.ServerConfig) *Server {
	return &Server{svc: svc, cfg: cfg}
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/battle/start", s.handleStart)
	mux.HandleFunc("POST /api/battle/turn", s.handleTurn)
	mux.HandleFunc("POST /api/battle/flee", s.handleFlee)
	mux.HandleFunc("GET /api/battle/current", s.handleCurrent)
	mux.HandleFunc("GET /api/battle/{id}", s.handleGet)
	mux.HandleFunc("GET /api/battle/{id}/turns", s.handleTurns)
	mux.HandleFunc("GET /api/tower/descend-check", s.handleDescendCheck)
	mux.HandleFunc("/ws", s.handleWebSocket)
	return mux
}

// Start runs the HTTP server on the given address.
func (s *Server) Start(address string) error {
	srv := &http.Server{
		Addr:         address,
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}
	logger.Info("API server listening", "address", address)
	return srv.ListenAndServe()
}

type startRequest struct {
	CharacterID int64  `json:"character_id"`
	MonsterID   int64  `json:"monster_id"`
	Floor       int    `json:"floor"`
	Style       string `json:"style"`
}

type turnRequest struct {
	CharacterID int64  `json:"character_id"`
	BattleID    int64  `json:"battle_id"`
	Style       string `json:"style"`
}

type fleeRequest struct {
	CharacterID int64 `json:"character_id"`
	BattleID    int64 `json:"battle_id"`
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	var req startRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(w, "invalid request body")
		return
	}

	b, err := s.svc.Start(req.CharacterID, req.MonsterID, req.Floor, req.Style)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, battleView(b))
}

func (s *Server) handleTurn(w http.ResponseWriter, r *http.Request) {
	var req turnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(w, "invalid request body")
		return
	}

	result, err := s.svc.Turn(req.CharacterID, req.BattleID, req.Style)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, turnResultView(result))
}

func (s *Server) handleFlee(w http.ResponseWriter, r *http.Request) {
	var req fleeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(w, "invalid request body")
		return
	}

	b, err := s.svc.Flee(req.CharacterID, req.BattleID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, battleView(b))
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeValidationError(w, "invalid battle id")
		return
	}

	b, err := s.svc.Get(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, battleView(b))
}

func (s *Server) handleTurns(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeValidationError(w, "invalid battle id")
		return
	}

	turns, err := s.svc.Turns(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, turnViews(turns))
}

func (s *Server) handleCurrent(w http.ResponseWriter, r *http.Request) {
	characterID, err := strconv.ParseInt(r.URL.Query().Get("character_id"), 10, 64)
	if err != nil {
		writeValidationError(w, "invalid character id")
		return
	}

	b, err := s.svc.CurrentFor(characterID)
	if err != nil {
		writeError(w, err)
		return
	}
	if b == nil {
		writeError(w, database.ErrBattleNotFound)
		return
	}
	writeJSON(w, http.StatusOK, battleView(b))
}

func (s *Server) handleDescendCheck(w http.ResponseWriter, r *http.Request) {
	characterID, err := strconv.ParseInt(r.URL.Query().Get("character_id"), 10, 64)
	if err != nil {
		writeValidationError(w, "invalid character id")
		return
	}
	floor, err := strconv.Atoi(r.URL.Query().Get("floor"))
	if err != nil {
		writeValidationError(w, "invalid floor")
		return
	}

	allowed, wins, required, err := s.svc.CanDescend(characterID, floor)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"allowed":  allowed,
		"wins":     wins,
		"required": required,
	})
}
