// internal/game/turns.go
package game

// turnOrder tracks the current seat index and the direction of play over a
// player list owned by the game. All operations are total for a non-empty
// player count. In a two-player game REVERSE acts as SKIP; that variant lives
// in the state machine, not here.
type turnOrder struct {
	index     int
	direction int // +1 clockwise, -1 counter-clockwise
}

func newTurnOrder() turnOrder {
	return turnOrder{direction: 1}
}

// current returns the seat index whose turn it is.
func (t *turnOrder) current() int {
	return t.index
}

// advance moves the pointer by direction*steps modulo n.
func (t *turnOrder) advance(n, steps int) {
	t.index = ((t.index+t.direction*steps)%n + n) % n
}

// reverse flips the direction of play.
func (t *turnOrder) reverse() {
	t.direction = -t.direction
}

// peek returns the seat index that advance(n, steps) would land on, without
// moving the pointer.
func (t *turnOrder) peek(n, steps int) int {
	return ((t.index+t.direction*steps)%n + n) % n
}
