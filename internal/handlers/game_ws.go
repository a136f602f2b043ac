// internal/handlers/game_ws.go
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/rodrigovaamonde/uno-server/internal/auth"
	"github.com/rodrigovaamonde/uno-server/internal/game"
	"github.com/rodrigovaamonde/uno-server/internal/models"
)

const wsWriteTimeout = 5 * time.Second

// GameMessage represents the structure for incoming WebSocket messages during
// the game phase.
type GameMessage struct {
	Type string `json:"type"`

	// Card is the card being played for play_card messages.
	Card *models.Card `json:"card,omitempty"`

	// Color is the chosen color when Card is a wild.
	Color models.Color `json:"color,omitempty"`

	// TargetID identifies the challenged player for challenge_uno messages.
	TargetID string `json:"targetId,omitempty"`
}

// GameWSHandler upgrades the HTTP connection to WebSocket for a specific game
// session. It authenticates the player token, verifies the token is bound to
// this session, subscribes the connection to the broadcast hub and runs the
// read loop that routes incoming actions into the engine.
func GameWSHandler(logger *logrus.Logger, gs *GameServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Extract session code from URL path: /game/ws/{code}
		code := strings.TrimPrefix(r.URL.Path, "/game/ws/")
		if code == "" || strings.Contains(code, "/") {
			http.Error(w, "missing game code in path (/game/ws/{code})", http.StatusBadRequest)
			return
		}
		code = strings.ToUpper(code)

		g, ok := gs.Store.GetGame(code)
		if !ok {
			http.Error(w, "game not found", http.StatusNotFound)
			return
		}

		token := r.URL.Query().Get("token")
		if token == "" {
			token = extractCookieToken(r.Header.Get("Cookie"), "game_token")
		}
		playerIDStr, tokenCode, err := auth.AuthenticatePlayerToken(token)
		if err != nil {
			logger.Warnf("token rejected for session %s: %v", code, err)
			http.Error(w, "invalid token", http.StatusForbidden)
			return
		}
		if !strings.EqualFold(tokenCode, code) {
			logger.Warnf("token for session %s presented on session %s", tokenCode, code)
			http.Error(w, "token is for a different game", http.StatusForbidden)
			return
		}
		playerID, err := uuid.Parse(playerIDStr)
		if err != nil {
			http.Error(w, "invalid player id in token", http.StatusForbidden)
			return
		}
		if !g.HasPlayer(playerID) {
			http.Error(w, "you are not a player in this game", http.StatusForbidden)
			return
		}

		c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			Subprotocols:   []string{"game"},
			OriginPatterns: []string{"*"}, // Adjust for production security.
		})
		if err != nil {
			logger.Warnf("WebSocket accept error for session %s: %v", code, err)
			return
		}
		defer c.Close(websocket.StatusInternalError, "internal server error during handler exit")

		if c.Subprotocol() != "game" {
			logger.Warnf("client for session %s connected with invalid subprotocol: %s", code, c.Subprotocol())
			c.Close(websocket.StatusCode(BadSubprotocolError), "client must use the 'game' subprotocol")
			return
		}
		logger.Infof("player %s connected to session %s from %s", playerID, code, r.RemoteAddr)

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()

		sub := gs.Hub.Subscribe(code, playerID)
		defer gs.Hub.Unsubscribe(code, sub)

		// Write pump: drains the hub queue for this connection. Runs until the
		// queue closes or a write fails.
		go func() {
			for data := range sub.Out {
				writeCtx, cancelWrite := context.WithTimeout(context.Background(), wsWriteTimeout)
				err := c.Write(writeCtx, websocket.MessageText, data)
				cancelWrite()
				if err != nil {
					logger.Warnf("write to player %s in session %s failed: %v", playerID, code, err)
					cancel()
					return
				}
			}
			cancel()
		}()

		// Initial state so a reconnecting client catches up immediately. It
		// goes through the hub queue, not directly to the conn, so the write
		// pump stays the sole writer of game state and a commit that raced
		// the connect cannot land behind this older snapshot.
		snap := g.Snapshot()
		gs.Hub.Deliver(code, sub, snap.Seq, snapshotEvent{Type: "game_state", State: snap})

		readGameMessages(ctx, c, gs, code, playerID, logger)
		logger.Infof("player %s disconnected from session %s", playerID, code)
	}
}

// readGameMessages continuously reads messages from a client's WebSocket
// connection and routes them through the GameServer. Engine rejections are
// reported back to the sender only; accepted actions reach everyone through
// the broadcast hub.
func readGameMessages(ctx context.Context, c *websocket.Conn, gs *GameServer, code string, playerID uuid.UUID, logger *logrus.Logger) {
	for {
		msgType, data, err := c.Read(ctx)
		if err != nil {
			status := websocket.CloseStatus(err)
			if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway {
				logger.Infof("WebSocket closed normally for player %s in session %s", playerID, code)
			} else if ctx.Err() != nil {
				logger.Infof("WebSocket context canceled for player %s in session %s", playerID, code)
			} else {
				logger.Warnf("error reading from WebSocket for player %s in session %s: %v", playerID, code, err)
			}
			return
		}

		if msgType != websocket.MessageText {
			logger.Warnf("received non-text message type %d from player %s in session %s, ignoring", msgType, playerID, code)
			continue
		}

		var msg GameMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			logger.Warnf("invalid JSON from player %s in session %s: %v", playerID, code, err)
			sendWsError(c, "invalid JSON format", "")
			continue
		}

		logger.Debugf("received action '%s' from player %s in session %s", msg.Type, playerID, code)

		switch msg.Type {
		case "start_game":
			if _, err := gs.StartSession(code, playerID); err != nil {
				sendWsGameError(c, err)
			}

		case "play_card":
			if msg.Card == nil {
				sendWsError(c, "play_card requires a card", "")
				continue
			}
			if _, err := gs.PlayCard(code, playerID, *msg.Card, msg.Color); err != nil {
				sendWsGameError(c, err)
			}

		case "draw_card":
			res, err := gs.DrawCard(code, playerID)
			if err != nil {
				sendWsGameError(c, err)
				continue
			}
			// The drawn card is private to the drawer.
			sendWsMessage(c, map[string]interface{}{
				"type":    "card_drawn",
				"card":    res.Card,
				"canPlay": res.CanPlay,
			})

		case "pass_turn":
			if _, err := gs.PassTurn(code, playerID); err != nil {
				sendWsGameError(c, err)
			}

		case "declare_uno":
			if _, err := gs.DeclareUno(code, playerID); err != nil {
				sendWsGameError(c, err)
			}

		case "challenge_uno":
			targetID, err := uuid.Parse(msg.TargetID)
			if err != nil {
				sendWsError(c, "challenge_uno requires a valid targetId", "")
				continue
			}
			if _, err := gs.ChallengeUno(code, playerID, targetID); err != nil {
				sendWsGameError(c, err)
			}

		case "ping":
			sendWsMessage(c, map[string]string{"type": "pong"})

		default:
			logger.Warnf("unknown action type '%s' from player %s in session %s", msg.Type, playerID, code)
			sendWsError(c, fmt.Sprintf("unknown action type: %s", msg.Type), "")
		}

		select {
		case <-ctx.Done():
			return
		default:
		}
	}
}

// sendWsMessage marshals a message and sends it to the WebSocket client with a
// write timeout.
func sendWsMessage(c *websocket.Conn, message interface{}) {
	data, err := json.Marshal(message)
	if err != nil {
		logrus.Errorf("error marshaling WebSocket message: %v", err)
		return
	}
	writeCtx, cancel := context.WithTimeout(context.Background(), wsWriteTimeout)
	defer cancel()
	if err := c.Write(writeCtx, websocket.MessageText, data); err != nil {
		status := websocket.CloseStatus(err)
		if status != websocket.StatusNormalClosure && status != websocket.StatusGoingAway {
			logrus.Warnf("error writing WebSocket message: %v", err)
		}
	}
}

// sendWsGameError reports an engine rejection back to the sender with its
// stable machine-readable code.
func sendWsGameError(c *websocket.Conn, err error) {
	var code string
	var ge *game.Error
	if errors.As(err, &ge) {
		code = ge.Code
	}
	sendWsError(c, err.Error(), code)
}

// sendWsError sends a structured error message to the client.
func sendWsError(c *websocket.Conn, errorMsg, code string) {
	body := map[string]interface{}{
		"type":    "error",
		"message": errorMsg,
	}
	if code != "" {
		body["code"] = code
	}
	sendWsMessage(c, body)
}
