package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/HuntleyOG/eldvar-engine/internal/battle"
	"github.com/HuntleyOG/eldvar-engine/internal/combat"
	"github.com/HuntleyOG/eldvar-engine/internal/database"
	"github.com/HuntleyOG/eldvar-engine/internal/logger"
)

// wsFrame is one client request over the WebSocket. Action selects the
// operation; the remaining fields mirror the HTTP request bodies.
type wsFrame struct {
	Action      string `json:"action"`
	CharacterID int64  `json:"character_id"`
	MonsterID   int64  `json:"monster_id"`
	BattleID    int64  `json:"battle_id"`
	Floor       int    `json:"floor"`
	Style       string `json:"style"`
}

// wsReply is one server response frame.
type wsReply struct {
	OK     bool   `json:"ok"`
	Error  string `json:"error,omitempty"`
	Code   string `json:"code,omitempty"`
	Result any    `json:"result,omitempty"`
}

// handleWebSocket upgrades the connection and serves battle operations as
// JSON frames until the client disconnects.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			allowed := s.cfg.WebSocket.IsOriginAllowed(origin, r.Host)
			if !allowed {
				logger.Warning("WebSocket connection rejected - origin not allowed",
					"origin", origin, "host", r.Host, "remote_addr", r.RemoteAddr)
			}
			return allowed
		},
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error("WebSocket upgrade failed", "error", err)
		return
	}

	go s.serveWebSocket(conn)
}

func (s *Server) serveWebSocket(conn *websocket.Conn) {
	defer conn.Close()

	if s.cfg.WebSocket.MaxMessageSize > 0 {
		conn.SetReadLimit(s.cfg.WebSocket.MaxMessageSize)
	}

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Debug("WebSocket read failed", "error", err)
			}
			return
		}

		var frame wsFrame
		if err := json.Unmarshal(message, &frame); err != nil {
			s.writeFrame(conn, wsReply{Error: "invalid frame", Code: "validation"})
			continue
		}

		s.writeFrame(conn, s.dispatch(frame))
	}
}

func (s *Server) writeFrame(conn *websocket.Conn, reply wsReply) {
	if err := conn.WriteJSON(reply); err != nil {
		logger.Debug("WebSocket write failed", "error", err)
	}
}

func (s *Server) dispatch(frame wsFrame) wsReply {
	switch frame.Action {
	case "start":
		b, err := s.svc.Start(frame.CharacterID, frame.MonsterID, frame.Floor, frame.Style)
		if err != nil {
			return errorReply(err)
		}
		return wsReply{OK: true, Result: battleView(b)}

	case "turn":
		result, err := s.svc.Turn(frame.CharacterID, frame.BattleID, frame.Style)
		if err != nil {
			return errorReply(err)
		}
		return wsReply{OK: true, Result: turnResultView(result)}

	case "flee":
		b, err := s.svc.Flee(frame.CharacterID, frame.BattleID)
		if err != nil {
			return errorReply(err)
		}
		return wsReply{OK: true, Result: battleView(b)}

	case "current":
		b, err := s.svc.CurrentFor(frame.CharacterID)
		if err != nil {
			return errorReply(err)
		}
		if b == nil {
			return errorReply(database.ErrBattleNotFound)
		}
		return wsReply{OK: true, Result: battleView(b)}

	default:
		return wsReply{Error: "unknown action", Code: "validation"}
	}
}

// errorReply classifies an engine error for the WebSocket client using the
// same taxonomy as the HTTP surface.
func errorReply(err error) wsReply {
	code := "persistence"
	switch {
	case errors.Is(err, database.ErrOngoingBattle):
		code = "conflict"
	case errors.Is(err, battle.ErrBattleOver):
		code = "invalid_state"
	case errors.Is(err, battle.ErrNotYourBattle):
		code = "forbidden"
	case errors.Is(err, database.ErrBattleNotFound),
		errors.Is(err, database.ErrMonsterNotFound),
		errors.Is(err, database.ErrCharacterNotFound),
		errors.Is(err, database.ErrSkillNotFound):
		code = "not_found"
	case errors.Is(err, battle.ErrInvalidFloor),
		errors.Is(err, battle.ErrMonsterNotOnFloor),
		errors.Is(err, combat.ErrUnknownStyle):
		code = "validation"
	default:
		logger.Error("WebSocket request failed", "error", err)
		return wsReply{Error: "internal error", Code: code}
	}
	return wsReply{Error: err.Error(), Code: code}
}
