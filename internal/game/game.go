// internal/game/game.go
package game

import (
	"log"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rodrigovaamonde/uno-server/internal/models"
)

// Status is the lifecycle state of a game session.
type Status string

const (
	StatusWaitingForPlayers Status = "WAITING_FOR_PLAYERS"
	StatusInProgress        Status = "IN_PROGRESS"
	StatusFinished          Status = "FINISHED"
)

const (
	// MaxPlayers caps the number of seats per game.
	MaxPlayers = 4
	// initialHandSize is the number of cards dealt to each player at start.
	initialHandSize = 7
	// deckSize is the invariant card total across piles and hands.
	deckSize = 108
)

// UnoGame is the authoritative state for a single session. Every public
// operation acquires the game mutex, validates fully before mutating, and on
// success queues exactly one snapshot for broadcast in commit order. Errors
// never leave partial state behind.
type UnoGame struct {
	Code        string
	Status      Status
	Players     []*models.Player
	Rules       Rules
	CreatorID   uuid.UUID
	WinnerID    uuid.UUID
	ActiveColor models.Color

	piles piles
	turns turnOrder
	seq   uint64
	mu    sync.Mutex

	// broadcastFn is fixed at construction and invoked from a dedicated
	// goroutine, outside the game lock, one snapshot at a time.
	broadcastFn func(Snapshot)

	events    chan Snapshot
	closeOnce sync.Once
}

// NewUnoGame builds a game in WAITING_FOR_PLAYERS with a freshly shuffled
// deck and the creator seated first. broadcastFn receives one snapshot per
// commit, in commit order; it may be nil.
func NewUnoGame(code, creatorName string, broadcastFn func(Snapshot)) (*UnoGame, *models.Player) {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	creator := &models.Player{ID: uuid.New(), Name: strings.TrimSpace(creatorName)}
	g := &UnoGame{
		Code:        code,
		Status:      StatusWaitingForPlayers,
		Players:     []*models.Player{creator},
		CreatorID:   creator.ID,
		piles:       newPiles(rng, NewStandardDeck()),
		turns:       newTurnOrder(),
		broadcastFn: broadcastFn,
		events:      make(chan Snapshot, 128),
	}
	go g.pumpEvents()
	return g, creator
}

// pumpEvents delivers queued snapshots to broadcastFn in commit order.
func (g *UnoGame) pumpEvents() {
	for snap := range g.events {
		if g.broadcastFn != nil {
			g.broadcastFn(snap)
		}
	}
}

// Close stops snapshot delivery. Called when the registry evicts the game.
func (g *UnoGame) Close() {
	g.closeOnce.Do(func() { close(g.events) })
}

// commitLocked bumps the commit counter, takes the post-mutation snapshot and
// queues it for broadcast. The send is a buffered channel write, never I/O;
// if the buffer is full the snapshot is dropped and logged as a defect rather
// than blocking the critical section.
func (g *UnoGame) commitLocked() Snapshot {
	g.seq++
	snap := g.snapshotLocked()
	select {
	case g.events <- snap:
	default:
		log.Printf("defect: game %s dropped snapshot broadcast, event buffer full", g.Code)
	}
	return snap
}

// Join seats a new player. Only valid while waiting for players and below the
// seat cap; duplicate display names are rejected.
func (g *UnoGame) Join(name string) (*models.Player, Snapshot, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, Snapshot{}, ErrNameRequired
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.Status != StatusWaitingForPlayers {
		return nil, Snapshot{}, ErrInvalidState
	}
	if len(g.Players) >= MaxPlayers {
		return nil, Snapshot{}, ErrSessionFull
	}
	for _, p := range g.Players {
		if strings.EqualFold(p.Name, name) {
			return nil, Snapshot{}, ErrNameTaken
		}
	}
	player := &models.Player{ID: uuid.New(), Name: name}
	g.Players = append(g.Players, player)

	return player, g.commitLocked(), nil
}

// Start deals seven cards to every player, flips the first discard and moves
// the session to IN_PROGRESS. Only the creator may start, with at least two
// players seated. A wild first flip is shuffled back until a non-wild shows;
// a SKIP/REVERSE/DRAW_TWO first flip stays but applies no effect.
func (g *UnoGame) Start(requesterID uuid.UUID) (Snapshot, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.Status != StatusWaitingForPlayers {
		return Snapshot{}, ErrInvalidState
	}
	if g.playerIndexLocked(requesterID) < 0 {
		return Snapshot{}, ErrPlayerNotFound
	}
	if requesterID != g.CreatorID {
		return Snapshot{}, ErrNotCreator
	}
	if len(g.Players) < 2 {
		return Snapshot{}, ErrNotEnoughPlayers
	}

	for _, p := range g.Players {
		for i := 0; i < initialHandSize; i++ {
			card, err := g.piles.drawOne()
			if err != nil {
				log.Printf("defect: game %s ran out of cards during initial deal", g.Code)
				break
			}
			p.Hand.Add(card)
		}
	}

	for {
		card, err := g.piles.drawOne()
		if err != nil {
			log.Printf("defect: game %s could not flip a first discard", g.Code)
			break
		}
		if card.Value.IsWild() {
			g.piles.returnToDraw(card)
			continue
		}
		g.piles.placeOnDiscard(card)
		g.ActiveColor = card.Color
		break
	}

	g.Status = StatusInProgress
	g.turns = newTurnOrder()
	g.checkIntegrityLocked()
	return g.commitLocked(), nil
}

// PlayCard validates and applies a play by the current turn holder: the card
// must be held and legal against the discard top, wild cards require a chosen
// base color. Special card effects are applied before the turn advances. An
// emptied hand finishes the game and records the winner.
func (g *UnoGame) PlayCard(playerID uuid.UUID, card models.Card, chosenColor models.Color) (Snapshot, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.Status != StatusInProgress {
		return Snapshot{}, ErrInvalidState
	}
	idx := g.playerIndexLocked(playerID)
	if idx < 0 {
		return Snapshot{}, ErrPlayerNotFound
	}
	if idx != g.turns.current() {
		return Snapshot{}, ErrNotYourTurn
	}
	player := g.Players[idx]
	if !player.Hand.Contains(card) {
		return Snapshot{}, ErrCardNotHeld
	}
	top, _ := g.piles.activeCard()
	if card.Value.IsWild() {
		if chosenColor == "" {
			return Snapshot{}, ErrColorRequired
		}
		if !chosenColor.IsBase() {
			return Snapshot{}, ErrInvalidColor
		}
		if card.Value == models.ValueWildDrawFour && g.Rules.StrictWildDrawFour &&
			player.Hand.HasColor(effectiveColor(top, g.ActiveColor)) {
			return Snapshot{}, ErrIllegalPlay
		}
	} else if !isLegalPlay(top, g.ActiveColor, card) {
		return Snapshot{}, ErrIllegalPlay
	}

	// Validation passed; commit.
	player.Hand.Remove(card)
	g.piles.placeOnDiscard(card)
	if card.Value.IsWild() {
		g.ActiveColor = chosenColor
	} else {
		g.ActiveColor = card.Color
	}
	if player.Hand.Size() != 1 {
		player.HasDeclaredUno = false
	}

	if player.Hand.IsEmpty() {
		g.Status = StatusFinished
		g.WinnerID = player.ID
		g.checkIntegrityLocked()
		return g.commitLocked(), nil
	}

	n := len(g.Players)
	switch card.Value {
	case models.ValueSkip:
		g.turns.advance(n, 2)
	case models.ValueReverse:
		g.turns.reverse()
		if n == 2 {
			// Two-player REVERSE acts as SKIP: the player goes again.
			g.turns.advance(n, 2)
		} else {
			g.turns.advance(n, 1)
		}
	case models.ValueDrawTwo:
		g.dealToSeatLocked(g.turns.peek(n, 1), 2)
		g.turns.advance(n, 2)
	case models.ValueWildDrawFour:
		g.dealToSeatLocked(g.turns.peek(n, 1), 4)
		g.turns.advance(n, 2)
	default:
		g.turns.advance(n, 1)
	}

	g.checkIntegrityLocked()
	return g.commitLocked(), nil
}

// DrawCard draws one card for the current turn holder and reports whether it
// is immediately playable. Unless AllowPlayAfterDraw keeps the turn with the
// drawer, drawing ends the turn; a playable drawn card is never auto-played.
func (g *UnoGame) DrawCard(playerID uuid.UUID) (DrawResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.Status != StatusInProgress {
		return DrawResult{}, ErrInvalidState
	}
	idx := g.playerIndexLocked(playerID)
	if idx < 0 {
		return DrawResult{}, ErrPlayerNotFound
	}
	if idx != g.turns.current() {
		return DrawResult{}, ErrNotYourTurn
	}
	player := g.Players[idx]
	top, _ := g.piles.activeCard()
	if g.Rules.DrawRequiresNoPlayable && handHasPlayable(&player.Hand, top, g.ActiveColor) {
		return DrawResult{}, ErrMustPlay
	}

	card, err := g.piles.drawOne()
	if err != nil {
		log.Printf("defect: game %s draw failed with both piles empty", g.Code)
		return DrawResult{}, err
	}
	player.Hand.Add(card)
	if player.Hand.Size() != 1 {
		player.HasDeclaredUno = false
	}

	canPlay := isLegalPlay(top, g.ActiveColor, card)
	if !(g.Rules.AllowPlayAfterDraw && canPlay) {
		g.turns.advance(len(g.Players), 1)
	}

	g.checkIntegrityLocked()
	return DrawResult{Card: card, CanPlay: canPlay, Snapshot: g.commitLocked()}, nil
}

// PassTurn forfeits the rest of the current player's turn. Under
// AllowPlayAfterDraw this is the explicit decline after drawing a playable
// card.
func (g *UnoGame) PassTurn(playerID uuid.UUID) (Snapshot, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.Status != StatusInProgress {
		return Snapshot{}, ErrInvalidState
	}
	idx := g.playerIndexLocked(playerID)
	if idx < 0 {
		return Snapshot{}, ErrPlayerNotFound
	}
	if idx != g.turns.current() {
		return Snapshot{}, ErrNotYourTurn
	}

	g.turns.advance(len(g.Players), 1)
	return g.commitLocked(), nil
}

// DeclareUno records a one-card declaration. Legal only with exactly one card
// in hand; declaring out of turn is allowed.
func (g *UnoGame) DeclareUno(playerID uuid.UUID) (Snapshot, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.Status != StatusInProgress {
		return Snapshot{}, ErrInvalidState
	}
	idx := g.playerIndexLocked(playerID)
	if idx < 0 {
		return Snapshot{}, ErrPlayerNotFound
	}
	player := g.Players[idx]
	if player.Hand.Size() != 1 {
		return Snapshot{}, ErrUnoNotApplicable
	}
	if player.HasDeclaredUno {
		return g.snapshotLocked(), nil
	}
	player.HasDeclaredUno = true

	return g.commitLocked(), nil
}

// ChallengeUno resolves a challenge against a player suspected of reaching
// one card without declaring. A successful challenge makes the challenged
// player draw two penalty cards; a failed one penalizes the challenger.
func (g *UnoGame) ChallengeUno(challengerID, challengedID uuid.UUID) (Snapshot, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.Status != StatusInProgress {
		return Snapshot{}, ErrInvalidState
	}
	challengerIdx := g.playerIndexLocked(challengerID)
	if challengerIdx < 0 {
		return Snapshot{}, ErrPlayerNotFound
	}
	challengedIdx := g.playerIndexLocked(challengedID)
	if challengedIdx < 0 {
		return Snapshot{}, ErrPlayerNotFound
	}

	challenged := g.Players[challengedIdx]
	if challenged.Hand.Size() == 1 && !challenged.HasDeclaredUno {
		g.dealToSeatLocked(challengedIdx, 2)
	} else {
		g.dealToSeatLocked(challengerIdx, 2)
	}

	g.checkIntegrityLocked()
	return g.commitLocked(), nil
}

// Snapshot returns the current redacted view without mutating anything.
func (g *UnoGame) Snapshot() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.snapshotLocked()
}

// HasPlayer reports whether playerID is seated in this game.
func (g *UnoGame) HasPlayer(playerID uuid.UUID) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.playerIndexLocked(playerID) >= 0
}

// PlayerName returns the display name for a seated player, or "".
func (g *UnoGame) PlayerName(playerID uuid.UUID) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	if idx := g.playerIndexLocked(playerID); idx >= 0 {
		return g.Players[idx].Name
	}
	return ""
}

// playerIndexLocked returns the seat index of playerID, or -1.
func (g *UnoGame) playerIndexLocked(playerID uuid.UUID) int {
	for i, p := range g.Players {
		if p.ID == playerID {
			return i
		}
	}
	return -1
}

// dealToSeatLocked draws count cards into the hand at seat. Exhaustion of
// both piles is logged as a defect and stops the deal short.
func (g *UnoGame) dealToSeatLocked(seat, count int) {
	player := g.Players[seat]
	for i := 0; i < count; i++ {
		card, err := g.piles.drawOne()
		if err != nil {
			log.Printf("defect: game %s could not deal penalty card to %s", g.Code, player.ID)
			return
		}
		player.Hand.Add(card)
	}
	if player.Hand.Size() != 1 {
		player.HasDeclaredUno = false
	}
}

// checkIntegrityLocked verifies the 108-card conservation invariant. A
// mismatch is an internal defect, never a player-facing error.
func (g *UnoGame) checkIntegrityLocked() {
	total := g.piles.drawSize() + g.piles.discardSize()
	for _, p := range g.Players {
		total += p.Hand.Size()
	}
	if total != deckSize {
		log.Printf("defect: game %s card count is %d, want %d", g.Code, total, deckSize)
	}
}
