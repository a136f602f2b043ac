// internal/game/errors.go
package game

import "errors"

// ErrorKind classifies rejected actions for the transport layer. Every kind
// is synchronous and caller-facing; the game state is unchanged whenever one
// of these is returned.
type ErrorKind string

const (
	KindState         ErrorKind = "state"          // action invalid for the session status
	KindAuthorization ErrorKind = "authorization"  // wrong player, turn, or creator
	KindRuleViolation ErrorKind = "rule_violation" // illegal card, missing color, card not held
	KindCapacity      ErrorKind = "capacity"       // session full, not enough players
	KindNotFound      ErrorKind = "not_found"      // unknown session code or player
)

// Error is a rejected game action with a stable machine-readable code.
type Error struct {
	Kind ErrorKind
	Code string
	msg  string
}

func (e *Error) Error() string { return e.msg }

var (
	ErrNotFound         = &Error{KindNotFound, "NOT_FOUND", "game not found"}
	ErrPlayerNotFound   = &Error{KindNotFound, "PLAYER_NOT_FOUND", "player is not part of this game"}
	ErrInvalidState     = &Error{KindState, "INVALID_STATE", "action is not valid in the game's current state"}
	ErrSessionFull      = &Error{KindCapacity, "SESSION_FULL", "game already has the maximum number of players"}
	ErrNotEnoughPlayers = &Error{KindCapacity, "NOT_ENOUGH_PLAYERS", "at least two players are required to start"}
	ErrNotCreator       = &Error{KindAuthorization, "NOT_CREATOR", "only the game creator can start the game"}
	ErrNotYourTurn      = &Error{KindAuthorization, "NOT_YOUR_TURN", "it is not your turn"}
	ErrCardNotHeld      = &Error{KindRuleViolation, "CARD_NOT_HELD", "card is not in your hand"}
	ErrIllegalPlay      = &Error{KindRuleViolation, "ILLEGAL_PLAY", "card cannot be played on the current discard"}
	ErrColorRequired    = &Error{KindRuleViolation, "COLOR_REQUIRED", "a color must be chosen when playing a wild card"}
	ErrInvalidColor     = &Error{KindRuleViolation, "INVALID_COLOR", "chosen color must be RED, YELLOW, GREEN or BLUE"}
	ErrMustPlay         = &Error{KindRuleViolation, "MUST_PLAY", "you hold a playable card and must play instead of drawing"}
	ErrUnoNotApplicable = &Error{KindRuleViolation, "UNO_NOT_APPLICABLE", "UNO can only be declared with exactly one card in hand"}
	ErrNameRequired     = &Error{KindRuleViolation, "NAME_REQUIRED", "player name cannot be empty"}
	ErrNameTaken        = &Error{KindRuleViolation, "NAME_TAKEN", "a player with that name is already in the game"}
)

// errDeckExhausted signals that both piles together cannot satisfy a draw.
// Given the fixed 108-card total this should be unreachable; it is treated as
// an integrity defect, not a player-facing rejection.
var errDeckExhausted = errors.New("draw and discard piles are exhausted")

// KindOf extracts the ErrorKind from err, or "" for non-game errors.
func KindOf(err error) ErrorKind {
	var ge *Error
	if errors.As(err, &ge) {
		return ge.Kind
	}
	return ""
}
