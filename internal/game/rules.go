// internal/game/rules.go
package game

import "github.com/rodrigovaamonde/uno-server/internal/models"

// Rules captures the configurable UNO rule variants for one game. The zero
// value is the default rule set.
type Rules struct {
	// StrictWildDrawFour makes WILD_DRAW_FOUR illegal while the player holds
	// a card matching the effective color (official tournament rule). Off by
	// default.
	StrictWildDrawFour bool `json:"strictWildDrawFour"`

	// AllowPlayAfterDraw keeps the turn with a player whose drawn card is
	// playable; they then play it with an ordinary play action or decline
	// with a pass. When off, drawing always ends the turn.
	AllowPlayAfterDraw bool `json:"allowPlayAfterDraw"`

	// DrawRequiresNoPlayable rejects a draw while the hand holds a playable
	// card, forcing the player to play instead.
	DrawRequiresNoPlayable bool `json:"drawRequiresNoPlayable"`
}

// effectiveColor resolves the color plays are validated against: the chosen
// wild color when the top card is wild, else the top card's own color.
func effectiveColor(top models.Card, activeWildColor models.Color) models.Color {
	if top.Color == models.ColorWild {
		return activeWildColor
	}
	return top.Color
}

// isLegalPlay decides whether candidate may be played on top of the current
// discard. Wild cards are always legal; anything else must match the
// effective color or the top card's value.
func isLegalPlay(top models.Card, activeWildColor models.Color, candidate models.Card) bool {
	if candidate.Value.IsWild() {
		return true
	}
	return candidate.Color == effectiveColor(top, activeWildColor) ||
		candidate.Value == top.Value
}

// handHasPlayable reports whether any card in hand is legal against top.
func handHasPlayable(hand *models.Hand, top models.Card, activeWildColor models.Color) bool {
	for _, c := range hand.Cards() {
		if isLegalPlay(top, activeWildColor, c) {
			return true
		}
	}
	return false
}
