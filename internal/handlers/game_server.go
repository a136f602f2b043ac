// internal/handlers/game_server.go
package handlers

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/rodrigovaamonde/uno-server/internal/cache"
	"github.com/rodrigovaamonde/uno-server/internal/database"
	"github.com/rodrigovaamonde/uno-server/internal/game"
	"github.com/rodrigovaamonde/uno-server/internal/models"
)

// GameServer ties the session registry to the broadcast hub. Every game it
// creates is constructed with its broadcast wired to the hub, so snapshots
// reach subscribers in commit order from the moment the session exists.
type GameServer struct {
	Store  *game.GameStore
	Hub    *Hub
	Logger *logrus.Logger
}

func NewGameServer(logger *logrus.Logger) *GameServer {
	return &GameServer{
		Store:  game.NewGameStore(),
		Hub:    NewHub(logger),
		Logger: logger,
	}
}

// snapshotEvent is the envelope broadcast to all subscribers of a session.
type snapshotEvent struct {
	Type  string        `json:"type"`
	State game.Snapshot `json:"state"`
}

// CreateSession builds a new game, wires its broadcasts into the hub and
// returns the creator's seat.
func (gs *GameServer) CreateSession(creatorName string) (*game.UnoGame, *models.Player, error) {
	g, creator, err := gs.Store.CreateGame(creatorName, func(snap game.Snapshot) {
		gs.Hub.Publish(snap.Code, snap.Seq, snapshotEvent{Type: "game_state", State: snap})
	})
	if err != nil {
		return nil, nil, err
	}
	gs.Logger.Infof("created session %s for %s", g.Code, creator.Name)
	gs.recordAction(g.Code, creator.ID, "create_game", nil)
	return g, creator, nil
}

// JoinSession seats a player in an existing game.
func (gs *GameServer) JoinSession(code, playerName string) (*game.UnoGame, *models.Player, error) {
	g, ok := gs.Store.GetGame(code)
	if !ok {
		return nil, nil, game.ErrNotFound
	}
	player, _, err := g.Join(playerName)
	if err != nil {
		return nil, nil, err
	}
	gs.Logger.Infof("player %s joined session %s", player.Name, g.Code)
	gs.recordAction(g.Code, player.ID, "join_game", nil)
	return g, player, nil
}

// StartSession starts the game on behalf of the requesting player.
func (gs *GameServer) StartSession(code string, requesterID uuid.UUID) (game.Snapshot, error) {
	g, ok := gs.Store.GetGame(code)
	if !ok {
		return game.Snapshot{}, game.ErrNotFound
	}
	snap, err := g.Start(requesterID)
	if err != nil {
		return game.Snapshot{}, err
	}
	gs.recordAction(g.Code, requesterID, "start_game", nil)
	return snap, nil
}

// PlayCard plays a card for the given player.
func (gs *GameServer) PlayCard(code string, playerID uuid.UUID, card models.Card, chosenColor models.Color) (game.Snapshot, error) {
	g, ok := gs.Store.GetGame(code)
	if !ok {
		return game.Snapshot{}, game.ErrNotFound
	}
	snap, err := g.PlayCard(playerID, card, chosenColor)
	if err != nil {
		return game.Snapshot{}, err
	}
	gs.recordAction(g.Code, playerID, "play_card", map[string]interface{}{
		"color": card.Color,
		"value": card.Value,
	})
	gs.maybeRecordFinished(g, snap)
	return snap, nil
}

// DrawCard draws a card for the given player.
func (gs *GameServer) DrawCard(code string, playerID uuid.UUID) (game.DrawResult, error) {
	g, ok := gs.Store.GetGame(code)
	if !ok {
		return game.DrawResult{}, game.ErrNotFound
	}
	res, err := g.DrawCard(playerID)
	if err != nil {
		return game.DrawResult{}, err
	}
	gs.recordAction(g.Code, playerID, "draw_card", nil)
	return res, nil
}

// PassTurn forfeits the rest of the player's turn.
func (gs *GameServer) PassTurn(code string, playerID uuid.UUID) (game.Snapshot, error) {
	g, ok := gs.Store.GetGame(code)
	if !ok {
		return game.Snapshot{}, game.ErrNotFound
	}
	snap, err := g.PassTurn(playerID)
	if err != nil {
		return game.Snapshot{}, err
	}
	gs.recordAction(g.Code, playerID, "pass_turn", nil)
	return snap, nil
}

// DeclareUno records a one-card declaration.
func (gs *GameServer) DeclareUno(code string, playerID uuid.UUID) (game.Snapshot, error) {
	g, ok := gs.Store.GetGame(code)
	if !ok {
		return game.Snapshot{}, game.ErrNotFound
	}
	snap, err := g.DeclareUno(playerID)
	if err != nil {
		return game.Snapshot{}, err
	}
	gs.recordAction(g.Code, playerID, "declare_uno", nil)
	return snap, nil
}

// ChallengeUno resolves an UNO challenge against another player.
func (gs *GameServer) ChallengeUno(code string, challengerID, challengedID uuid.UUID) (game.Snapshot, error) {
	g, ok := gs.Store.GetGame(code)
	if !ok {
		return game.Snapshot{}, game.ErrNotFound
	}
	snap, err := g.ChallengeUno(challengerID, challengedID)
	if err != nil {
		return game.Snapshot{}, err
	}
	gs.recordAction(g.Code, challengerID, "challenge_uno", map[string]interface{}{
		"target": challengedID,
	})
	return snap, nil
}

// SessionSnapshot returns the current redacted view of a session.
func (gs *GameServer) SessionSnapshot(code string) (game.Snapshot, error) {
	g, ok := gs.Store.GetGame(code)
	if !ok {
		return game.Snapshot{}, game.ErrNotFound
	}
	return g.Snapshot(), nil
}

// recordAction pushes an audit record to the Redis queue without blocking the
// request path. No-op when Redis is disabled.
func (gs *GameServer) recordAction(code string, actorID uuid.UUID, actionType string, payload map[string]interface{}) {
	if !cache.Enabled() {
		return
	}
	record := cache.GameActionRecord{
		GameCode:      code,
		ActorID:       actorID,
		ActionType:    actionType,
		ActionPayload: payload,
		Timestamp:     time.Now().UnixMilli(),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := cache.PublishGameAction(ctx, record); err != nil {
			gs.Logger.Warnf("failed to record action %s for session %s: %v", actionType, code, err)
		}
	}()
}

// maybeRecordFinished persists the result of a game that just ended. No-op
// when the database is disabled.
func (gs *GameServer) maybeRecordFinished(g *game.UnoGame, snap game.Snapshot) {
	if snap.Status != game.StatusFinished || !database.Enabled() {
		return
	}
	winnerName := g.PlayerName(snap.WinnerID)
	playerCount := len(snap.Players)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := database.RecordFinishedGame(ctx, snap.Code, snap.WinnerID, winnerName, playerCount); err != nil {
			gs.Logger.Warnf("failed to persist finished game %s: %v", snap.Code, err)
		}
	}()
}
