// internal/game/deck.go
package game

import (
	"math/rand"

	"github.com/rodrigovaamonde/uno-server/internal/models"
)

// NewStandardDeck builds the 108-card deck: per color one ZERO, two of each
// 1-9, two of each SKIP/REVERSE/DRAW_TWO, plus four WILD and four
// WILD_DRAW_FOUR.
func NewStandardDeck() []models.Card {
	deck := make([]models.Card, 0, 108)
	for _, color := range models.BaseColors {
		deck = append(deck, models.Card{Color: color, Value: models.ValueZero})
		for _, v := range models.Numerals[1:] {
			deck = append(deck,
				models.Card{Color: color, Value: v},
				models.Card{Color: color, Value: v},
			)
		}
		for _, v := range models.ActionValues {
			deck = append(deck,
				models.Card{Color: color, Value: v},
				models.Card{Color: color, Value: v},
			)
		}
	}
	for i := 0; i < 4; i++ {
		deck = append(deck,
			models.Card{Color: models.ColorWild, Value: models.ValueWild},
			models.Card{Color: models.ColorWild, Value: models.ValueWildDrawFour},
		)
	}
	return deck
}

// shuffleCards permutes cards in place using r.
func shuffleCards(r *rand.Rand, cards []models.Card) {
	r.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
}
