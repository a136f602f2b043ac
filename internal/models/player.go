// internal/models/player.go
package models

import "github.com/google/uuid"

// Player is one seated participant in a game. Seating order is join order;
// whose turn it is lives in the game's turn controller, not here. The hand is
// owned exclusively by the game engine.
type Player struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Hand Hand      `json:"-"`

	// HasDeclaredUno tracks a standing one-card declaration; the engine
	// clears it whenever the hand size moves away from one.
	HasDeclaredUno bool `json:"hasDeclaredUno"`
}
