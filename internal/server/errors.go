package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/HuntleyOG/eldvar-engine/internal/battle"
	"github.com/HuntleyOG/eldvar-engine/internal/combat"
	"github.com/HuntleyOG/eldvar-engine/internal/database"
	"github.com/HuntleyOG/eldvar-engine/internal/logger"
)

// errorResponse is the wire shape for all error results.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

func writeValidationError(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: msg, Code: "validation"})
}

// writeError maps engine errors onto HTTP statuses. Deterministic state and
// validation errors pass through unmodified so the client can drive its
// messaging off them; everything else is a 500.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, database.ErrOngoingBattle):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error(), Code: "conflict"})
	case errors.Is(err, battle.ErrBattleOver):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error(), Code: "invalid_state"})
	case errors.Is(err, battle.ErrNotYourBattle):
		writeJSON(w, http.StatusForbidden, errorResponse{Error: err.Error(), Code: "forbidden"})
	case errors.Is(err, database.ErrBattleNotFound),
		errors.Is(err, database.ErrMonsterNotFound),
		errors.Is(err, database.ErrCharacterNotFound),
		errors.Is(err, database.ErrSkillNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error(), Code: "not_found"})
	case errors.Is(err, battle.ErrInvalidFloor),
		errors.Is(err, battle.ErrMonsterNotOnFloor),
		errors.Is(err, combat.ErrUnknownStyle):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error(), Code: "validation"})
	default:
		logger.Error("Request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error", Code: "persistence"})
	}
}
