// internal/game/piles.go
package game

import (
	"math/rand"

	"github.com/rodrigovaamonde/uno-server/internal/models"
)

// piles holds the draw pile and the discard pile. The last element of each
// slice is the top. When the draw pile empties, everything under the discard
// top is shuffled back in automatically; callers never reshuffle directly.
// All methods assume the owning game's lock is held.
type piles struct {
	draw    []models.Card
	discard []models.Card
	rng     *rand.Rand
}

func newPiles(rng *rand.Rand, deck []models.Card) piles {
	p := piles{draw: deck, rng: rng}
	shuffleCards(rng, p.draw)
	return p
}

// drawOne pops the top of the draw pile, reshuffling the discard pile (minus
// its top card) into a fresh draw pile first if needed. It returns
// errDeckExhausted only when both piles together hold no drawable card.
func (p *piles) drawOne() (models.Card, error) {
	if len(p.draw) == 0 {
		if len(p.discard) <= 1 {
			return models.Card{}, errDeckExhausted
		}
		p.reshuffleFromDiscard()
	}
	card := p.draw[len(p.draw)-1]
	p.draw = p.draw[:len(p.draw)-1]
	return card, nil
}

// reshuffleFromDiscard moves every discard card except the active top into
// the draw pile and shuffles. The top stays in place as the active card.
func (p *piles) reshuffleFromDiscard() {
	top := p.discard[len(p.discard)-1]
	p.draw = append(p.draw, p.discard[:len(p.discard)-1]...)
	p.discard = p.discard[:0]
	p.discard = append(p.discard, top)
	shuffleCards(p.rng, p.draw)
}

// placeOnDiscard pushes card as the new active top of the discard pile.
func (p *piles) placeOnDiscard(card models.Card) {
	p.discard = append(p.discard, card)
}

// activeCard peeks at the top of the discard pile.
func (p *piles) activeCard() (models.Card, bool) {
	if len(p.discard) == 0 {
		return models.Card{}, false
	}
	return p.discard[len(p.discard)-1], true
}

// returnToDraw puts card back into the draw pile and reshuffles it. Used when
// the first flipped discard is a wild card.
func (p *piles) returnToDraw(card models.Card) {
	p.draw = append(p.draw, card)
	shuffleCards(p.rng, p.draw)
}

func (p *piles) drawSize() int    { return len(p.draw) }
func (p *piles) discardSize() int { return len(p.discard) }
