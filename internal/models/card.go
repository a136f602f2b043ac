// internal/models/card.go
package models

// Color is a card color. Wild cards carry ColorWild until a color is chosen
// for them at play time.
type Color string

const (
	ColorRed    Color = "RED"
	ColorYellow Color = "YELLOW"
	ColorGreen  Color = "GREEN"
	ColorBlue   Color = "BLUE"
	ColorWild   Color = "WILD"
)

// BaseColors are the four playable colors, in deck-building order.
var BaseColors = []Color{ColorRed, ColorYellow, ColorGreen, ColorBlue}

// IsBase reports whether c is one of the four base colors.
func (c Color) IsBase() bool {
	switch c {
	case ColorRed, ColorYellow, ColorGreen, ColorBlue:
		return true
	}
	return false
}

// Value is a card face value.
type Value string

const (
	ValueZero  Value = "ZERO"
	ValueOne   Value = "ONE"
	ValueTwo   Value = "TWO"
	ValueThree Value = "THREE"
	ValueFour  Value = "FOUR"
	ValueFive  Value = "FIVE"
	ValueSix   Value = "SIX"
	ValueSeven Value = "SEVEN"
	ValueEight Value = "EIGHT"
	ValueNine  Value = "NINE"

	ValueSkip    Value = "SKIP"
	ValueReverse Value = "REVERSE"
	ValueDrawTwo Value = "DRAW_TWO"

	ValueWild         Value = "WILD"
	ValueWildDrawFour Value = "WILD_DRAW_FOUR"
)

// Numerals lists the ten number values in order.
var Numerals = []Value{
	ValueZero, ValueOne, ValueTwo, ValueThree, ValueFour,
	ValueFive, ValueSix, ValueSeven, ValueEight, ValueNine,
}

// ActionValues lists the colored action values.
var ActionValues = []Value{ValueSkip, ValueReverse, ValueDrawTwo}

// IsWild reports whether v is one of the two wild values.
func (v Value) IsWild() bool {
	return v == ValueWild || v == ValueWildDrawFour
}

// Points returns the scoring value of a face: number cards score their face,
// colored action cards score 20, wild cards score 50.
func (v Value) Points() int {
	switch v {
	case ValueZero:
		return 0
	case ValueOne:
		return 1
	case ValueTwo:
		return 2
	case ValueThree:
		return 3
	case ValueFour:
		return 4
	case ValueFive:
		return 5
	case ValueSix:
		return 6
	case ValueSeven:
		return 7
	case ValueEight:
		return 8
	case ValueNine:
		return 9
	case ValueSkip, ValueReverse, ValueDrawTwo:
		return 20
	case ValueWild, ValueWildDrawFour:
		return 50
	}
	return 0
}

// Card is an immutable (color, value) pair. Two cards are equal when both
// fields match; the engine relies on that for hand removal.
type Card struct {
	Color Color `json:"color"`
	Value Value `json:"value"`
}

func (c Card) String() string {
	return string(c.Color) + " " + string(c.Value)
}
