// internal/handlers/game.go
package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rodrigovaamonde/uno-server/internal/auth"
	"github.com/rodrigovaamonde/uno-server/internal/game"
	"github.com/rodrigovaamonde/uno-server/internal/models"
)

// createGameRequest is the body for POST /game/create.
type createGameRequest struct {
	PlayerName string `json:"playerName"`
}

// joinGameRequest is the body for POST /game/join.
type joinGameRequest struct {
	Code       string `json:"code"`
	PlayerName string `json:"playerName"`
}

// seatResponse is returned by create and join: the redacted state plus the
// caller's identity and the token they present on the WebSocket connect.
type seatResponse struct {
	State    game.Snapshot `json:"state"`
	PlayerID string        `json:"playerId"`
	Token    string        `json:"token"`
}

// CreateGameHandler handles POST /game/create.
func CreateGameHandler(gs *GameServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req createGameRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid JSON body", http.StatusBadRequest)
			return
		}

		g, creator, err := gs.CreateSession(req.PlayerName)
		if err != nil {
			writeGameError(w, gs, err)
			return
		}
		respondWithSeat(w, gs, g, creator)
	}
}

// JoinGameHandler handles POST /game/join.
func JoinGameHandler(gs *GameServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req joinGameRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid JSON body", http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(req.Code) == "" {
			http.Error(w, "missing game code", http.StatusBadRequest)
			return
		}

		g, player, err := gs.JoinSession(req.Code, req.PlayerName)
		if err != nil {
			writeGameError(w, gs, err)
			return
		}
		respondWithSeat(w, gs, g, player)
	}
}

// GameStateHandler handles GET /game/state/{code}, returning the redacted
// snapshot without requiring authentication.
func GameStateHandler(gs *GameServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		code := strings.TrimPrefix(r.URL.Path, "/game/state/")
		if code == "" || strings.Contains(code, "/") {
			http.Error(w, "missing game code in path (/game/state/{code})", http.StatusBadRequest)
			return
		}

		snap, err := gs.SessionSnapshot(code)
		if err != nil {
			writeGameError(w, gs, err)
			return
		}
		writeJSON(w, http.StatusOK, snap)
	}
}

func respondWithSeat(w http.ResponseWriter, gs *GameServer, g *game.UnoGame, player *models.Player) {
	token, err := auth.CreatePlayerToken(player.ID.String(), g.Code)
	if err != nil {
		gs.Logger.Errorf("failed to sign player token for session %s: %v", g.Code, err)
		http.Error(w, "failed to issue token", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, seatResponse{
		State:    g.Snapshot(),
		PlayerID: player.ID.String(),
		Token:    token,
	})
}
