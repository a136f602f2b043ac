// internal/game/snapshot.go
package game

import (
	"github.com/google/uuid"

	"github.com/rodrigovaamonde/uno-server/internal/models"
)

// PlayerSnapshot is the externally visible view of one player. Hand contents
// never leave the engine; only the count does.
type PlayerSnapshot struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	HandSize       int       `json:"handSize"`
	IsCurrentTurn  bool      `json:"isCurrentTurn"`
	HasDeclaredUno bool      `json:"hasDeclaredUno"`
}

// Snapshot is the immutable, redacted view of a game produced after every
// successful mutation. The surrounding layer delivers it to all subscribers
// of the game code, in commit order. Seq is the commit counter the snapshot
// was taken at; a delivery layer must never hand a client a lower Seq after
// a higher one.
type Snapshot struct {
	Seq             uint64           `json:"seq"`
	Code            string           `json:"code"`
	Status          Status           `json:"status"`
	Players         []PlayerSnapshot `json:"players"`
	TopCard         *models.Card     `json:"topCard,omitempty"`
	ActiveColor     models.Color     `json:"activeColor,omitempty"`
	CurrentPlayerID uuid.UUID        `json:"currentPlayerId,omitempty"`
	CreatorID       uuid.UUID        `json:"creatorId"`
	WinnerID        uuid.UUID        `json:"winnerId,omitempty"`
}

// DrawResult reports a draw back to the acting player: the card itself (seen
// only by them) and whether it could be played immediately.
type DrawResult struct {
	Card     models.Card `json:"card"`
	CanPlay  bool        `json:"canPlay"`
	Snapshot Snapshot    `json:"snapshot"`
}

// snapshotLocked builds the current snapshot. The "is current turn" flag is
// derived from the turn controller here, never stored on players. Assumes the
// game lock is held.
func (g *UnoGame) snapshotLocked() Snapshot {
	snap := Snapshot{
		Seq:       g.seq,
		Code:      g.Code,
		Status:    g.Status,
		CreatorID: g.CreatorID,
		WinnerID:  g.WinnerID,
		Players:   make([]PlayerSnapshot, len(g.Players)),
	}
	currentIdx := -1
	if g.Status == StatusInProgress {
		currentIdx = g.turns.current()
		snap.CurrentPlayerID = g.Players[currentIdx].ID
		snap.ActiveColor = g.ActiveColor
	}
	if top, ok := g.piles.activeCard(); ok {
		card := top
		snap.TopCard = &card
	}
	for i, p := range g.Players {
		snap.Players[i] = PlayerSnapshot{
			ID:             p.ID,
			Name:           p.Name,
			HandSize:       p.Hand.Size(),
			IsCurrentTurn:  i == currentIdx,
			HasDeclaredUno: p.HasDeclaredUno,
		}
	}
	return snap
}
