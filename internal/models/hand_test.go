// internal/models/hand_test.go
package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHandRemoveExactMatch(t *testing.T) {
	var h Hand
	redFive := Card{Color: ColorRed, Value: ValueFive}
	blueFive := Card{Color: ColorBlue, Value: ValueFive}
	h.AddAll([]Card{redFive, blueFive, redFive})

	assert.False(t, h.Remove(Card{Color: ColorGreen, Value: ValueFive}))
	assert.Equal(t, 3, h.Size())

	assert.True(t, h.Remove(redFive), "removes one copy only")
	assert.Equal(t, 2, h.Size())
	assert.True(t, h.Contains(redFive))
	assert.True(t, h.Contains(blueFive))
}

func TestHandHasColor(t *testing.T) {
	var h Hand
	h.Add(Card{Color: ColorRed, Value: ValueFive})

	assert.True(t, h.HasColor(ColorRed))
	assert.False(t, h.HasColor(ColorBlue))
}

func TestHandCardsReturnsCopy(t *testing.T) {
	var h Hand
	h.Add(Card{Color: ColorRed, Value: ValueFive})

	cards := h.Cards()
	cards[0] = Card{Color: ColorBlue, Value: ValueNine}
	assert.True(t, h.Contains(Card{Color: ColorRed, Value: ValueFive}))
}

func TestValuePoints(t *testing.T) {
	assert.Equal(t, 7, ValueSeven.Points())
	assert.Equal(t, 20, ValueSkip.Points())
	assert.Equal(t, 20, ValueDrawTwo.Points())
	assert.Equal(t, 50, ValueWildDrawFour.Points())
}
