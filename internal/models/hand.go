// internal/models/hand.go
package models

// Hand is an unordered multiset of cards owned by a single player. It is
// mutated only by the game engine while the game lock is held.
type Hand struct {
	cards []Card
}

// Add appends a card to the hand.
func (h *Hand) Add(c Card) {
	h.cards = append(h.cards, c)
}

// AddAll appends every card in cs to the hand.
func (h *Hand) AddAll(cs []Card) {
	h.cards = append(h.cards, cs...)
}

// Remove deletes one card matching c exactly (color and value). It returns
// false and leaves the hand untouched if no such card is held.
func (h *Hand) Remove(c Card) bool {
	for i, held := range h.cards {
		if held == c {
			h.cards = append(h.cards[:i], h.cards[i+1:]...)
			return true
		}
	}
	return false
}

// Contains reports whether the hand holds a card equal to c.
func (h *Hand) Contains(c Card) bool {
	for _, held := range h.cards {
		if held == c {
			return true
		}
	}
	return false
}

// HasColor reports whether any held card has the given color.
func (h *Hand) HasColor(color Color) bool {
	for _, held := range h.cards {
		if held.Color == color {
			return true
		}
	}
	return false
}

// Size returns the number of cards held.
func (h *Hand) Size() int {
	return len(h.cards)
}

// IsEmpty reports whether the hand holds no cards. An empty hand after a play
// is the win condition.
func (h *Hand) IsEmpty() bool {
	return len(h.cards) == 0
}

// Cards returns a copy of the held cards.
func (h *Hand) Cards() []Card {
	out := make([]Card, len(h.cards))
	copy(out, h.cards)
	return out
}
