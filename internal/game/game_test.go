// internal/game/game_test.go
package game

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rodrigovaamonde/uno-server/internal/models"
)

// snapshotCollector records broadcast snapshots in delivery order.
type snapshotCollector struct {
	mu    sync.Mutex
	snaps []Snapshot
}

func (sc *snapshotCollector) collect(snap Snapshot) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.snaps = append(sc.snaps, snap)
}

func (sc *snapshotCollector) len() int {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return len(sc.snaps)
}

func (sc *snapshotCollector) all() []Snapshot {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	out := make([]Snapshot, len(sc.snaps))
	copy(out, sc.snaps)
	return out
}

// newStartedGame builds a game with the given players already seated and the
// game started by the creator.
func newStartedGame(t *testing.T, names ...string) (*UnoGame, []*models.Player) {
	t.Helper()
	require.GreaterOrEqual(t, len(names), 2)

	g, creator := NewUnoGame("TEST01", names[0], nil)
	t.Cleanup(g.Close)

	players := []*models.Player{creator}
	for _, name := range names[1:] {
		p, _, err := g.Join(name)
		require.NoError(t, err)
		players = append(players, p)
	}
	_, err := g.Start(creator.ID)
	require.NoError(t, err)
	return g, players
}

// takeFromDraw removes one exact copy of c from the draw pile.
func takeFromDraw(t *testing.T, g *UnoGame, c models.Card) models.Card {
	t.Helper()
	for i, card := range g.piles.draw {
		if card == c {
			g.piles.draw = append(g.piles.draw[:i], g.piles.draw[i+1:]...)
			return card
		}
	}
	t.Fatalf("card %v not available in draw pile", c)
	return models.Card{}
}

// rig forces a known table state while preserving the 108-card total: every
// hand is returned to the draw pile, then the requested top card and hands
// are pulled back out of it.
func rig(t *testing.T, g *UnoGame, top models.Card, hands map[uuid.UUID][]models.Card) {
	t.Helper()
	require.False(t, top.Value.IsWild(), "rig needs a non-wild top card")

	for _, p := range g.Players {
		g.piles.draw = append(g.piles.draw, p.Hand.Cards()...)
		p.Hand = models.Hand{}
	}
	g.piles.draw = append(g.piles.draw, g.piles.discard...)
	g.piles.discard = g.piles.discard[:0]

	g.piles.discard = append(g.piles.discard, takeFromDraw(t, g, top))
	g.ActiveColor = top.Color

	for _, p := range g.Players {
		for _, c := range hands[p.ID] {
			p.Hand.Add(takeFromDraw(t, g, c))
		}
	}
	g.checkIntegrityLocked()
}

func cardTotal(g *UnoGame) int {
	total := g.piles.drawSize() + g.piles.discardSize()
	for _, p := range g.Players {
		total += p.Hand.Size()
	}
	return total
}

func TestNewGameIsWaitingForPlayers(t *testing.T) {
	g, creator := NewUnoGame("ABCDEF", "alice", nil)
	defer g.Close()

	assert.Equal(t, StatusWaitingForPlayers, g.Status)
	assert.Equal(t, creator.ID, g.CreatorID)
	require.Len(t, g.Players, 1)
	assert.Equal(t, "alice", g.Players[0].Name)

	snap := g.Snapshot()
	assert.Equal(t, StatusWaitingForPlayers, snap.Status)
	assert.Nil(t, snap.TopCard)
	assert.Equal(t, uuid.Nil, snap.CurrentPlayerID)
}

func TestJoinValidation(t *testing.T) {
	g, _ := NewUnoGame("ABCDEF", "alice", nil)
	defer g.Close()

	_, _, err := g.Join("   ")
	assert.ErrorIs(t, err, ErrNameRequired)

	_, _, err = g.Join("ALICE")
	assert.ErrorIs(t, err, ErrNameTaken)

	for _, name := range []string{"bob", "carol", "dave"} {
		_, _, err := g.Join(name)
		require.NoError(t, err)
	}
	_, _, err = g.Join("erin")
	assert.ErrorIs(t, err, ErrSessionFull)
}

func TestJoinAfterStartRejected(t *testing.T) {
	g, _ := newStartedGame(t, "alice", "bob")

	_, _, err := g.Join("carol")
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestStartValidation(t *testing.T) {
	g, creator := NewUnoGame("ABCDEF", "alice", nil)
	defer g.Close()

	_, err := g.Start(creator.ID)
	assert.ErrorIs(t, err, ErrNotEnoughPlayers)

	bob, _, err := g.Join("bob")
	require.NoError(t, err)

	_, err = g.Start(bob.ID)
	assert.ErrorIs(t, err, ErrNotCreator)

	_, err = g.Start(uuid.New())
	assert.ErrorIs(t, err, ErrPlayerNotFound)

	_, err = g.Start(creator.ID)
	require.NoError(t, err)

	_, err = g.Start(creator.ID)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestStartDealsAndFlips(t *testing.T) {
	g, players := newStartedGame(t, "alice", "bob", "carol")

	assert.Equal(t, StatusInProgress, g.Status)
	for _, p := range players {
		assert.Equal(t, 7, p.Hand.Size())
	}

	top, ok := g.piles.activeCard()
	require.True(t, ok)
	assert.False(t, top.Value.IsWild(), "first flip must not be wild")
	assert.Equal(t, top.Color, g.ActiveColor)
	assert.Equal(t, 108, cardTotal(g))

	snap := g.Snapshot()
	assert.Equal(t, players[0].ID, snap.CurrentPlayerID)
	assert.True(t, snap.Players[0].IsCurrentTurn)
	assert.False(t, snap.Players[1].IsCurrentTurn)
	for _, ps := range snap.Players {
		assert.Equal(t, 7, ps.HandSize)
	}
}

func TestPlayCardRejectionsLeaveStateUntouched(t *testing.T) {
	g, players := newStartedGame(t, "alice", "bob")
	alice, bob := players[0], players[1]

	rig(t, g, models.Card{Color: models.ColorRed, Value: models.ValueFive}, map[uuid.UUID][]models.Card{
		alice.ID: {
			{Color: models.ColorGreen, Value: models.ValueSeven},
			{Color: models.ColorBlue, Value: models.ValueFive},
		},
		bob.ID: {
			{Color: models.ColorRed, Value: models.ValueOne},
		},
	})
	before := g.Snapshot()

	// Not bob's turn.
	_, err := g.PlayCard(bob.ID, models.Card{Color: models.ColorRed, Value: models.ValueOne}, "")
	assert.ErrorIs(t, err, ErrNotYourTurn)

	// Card alice does not hold.
	_, err = g.PlayCard(alice.ID, models.Card{Color: models.ColorRed, Value: models.ValueNine}, "")
	assert.ErrorIs(t, err, ErrCardNotHeld)

	// Held but illegal: green seven on red five.
	_, err = g.PlayCard(alice.ID, models.Card{Color: models.ColorGreen, Value: models.ValueSeven}, "")
	assert.ErrorIs(t, err, ErrIllegalPlay)

	// Unknown player.
	_, err = g.PlayCard(uuid.New(), models.Card{Color: models.ColorBlue, Value: models.ValueFive}, "")
	assert.ErrorIs(t, err, ErrPlayerNotFound)

	assert.Equal(t, before, g.Snapshot(), "rejected actions must not mutate state")
	assert.Equal(t, 108, cardTotal(g))
}

func TestPlayCardValueMatch(t *testing.T) {
	g, players := newStartedGame(t, "alice", "bob")
	alice, bob := players[0], players[1]

	rig(t, g, models.Card{Color: models.ColorRed, Value: models.ValueFive}, map[uuid.UUID][]models.Card{
		alice.ID: {
			{Color: models.ColorBlue, Value: models.ValueFive},
			{Color: models.ColorGreen, Value: models.ValueOne},
		},
		bob.ID: {
			{Color: models.ColorRed, Value: models.ValueOne},
		},
	})

	snap, err := g.PlayCard(alice.ID, models.Card{Color: models.ColorBlue, Value: models.ValueFive}, "")
	require.NoError(t, err)

	require.NotNil(t, snap.TopCard)
	assert.Equal(t, models.Card{Color: models.ColorBlue, Value: models.ValueFive}, *snap.TopCard)
	assert.Equal(t, models.ColorBlue, snap.ActiveColor)
	assert.Equal(t, bob.ID, snap.CurrentPlayerID)
	assert.Equal(t, 1, snap.Players[0].HandSize)
	assert.Equal(t, 108, cardTotal(g))
}

func TestPlayWildRequiresChosenColor(t *testing.T) {
	g, players := newStartedGame(t, "alice", "bob")
	alice, bob := players[0], players[1]

	wild := models.Card{Color: models.ColorWild, Value: models.ValueWild}
	rig(t, g, models.Card{Color: models.ColorRed, Value: models.ValueFive}, map[uuid.UUID][]models.Card{
		alice.ID: {wild, {Color: models.ColorGreen, Value: models.ValueOne}},
		bob.ID:   {{Color: models.ColorRed, Value: models.ValueOne}},
	})

	_, err := g.PlayCard(alice.ID, wild, "")
	assert.ErrorIs(t, err, ErrColorRequired)

	_, err = g.PlayCard(alice.ID, wild, models.ColorWild)
	assert.ErrorIs(t, err, ErrInvalidColor)

	snap, err := g.PlayCard(alice.ID, wild, models.ColorGreen)
	require.NoError(t, err)
	assert.Equal(t, models.ColorGreen, snap.ActiveColor)

	// Bob must now match the chosen color, not the wild's printed color.
	_, err = g.PlayCard(bob.ID, models.Card{Color: models.ColorRed, Value: models.ValueOne}, "")
	assert.ErrorIs(t, err, ErrIllegalPlay)
}

func TestSkipAdvancesPastNextPlayer(t *testing.T) {
	g, players := newStartedGame(t, "alice", "bob", "carol")
	alice, carol := players[0], players[2]

	skip := models.Card{Color: models.ColorRed, Value: models.ValueSkip}
	rig(t, g, models.Card{Color: models.ColorRed, Value: models.ValueFive}, map[uuid.UUID][]models.Card{
		alice.ID: {skip, {Color: models.ColorGreen, Value: models.ValueOne}},
	})

	snap, err := g.PlayCard(alice.ID, skip, "")
	require.NoError(t, err)
	assert.Equal(t, carol.ID, snap.CurrentPlayerID, "bob is skipped")
}

func TestReverseFlipsDirection(t *testing.T) {
	g, players := newStartedGame(t, "alice", "bob", "carol")
	alice, carol := players[0], players[2]

	rev := models.Card{Color: models.ColorRed, Value: models.ValueReverse}
	rig(t, g, models.Card{Color: models.ColorRed, Value: models.ValueFive}, map[uuid.UUID][]models.Card{
		alice.ID: {rev, {Color: models.ColorGreen, Value: models.ValueOne}},
		carol.ID: {{Color: models.ColorRed, Value: models.ValueOne}, {Color: models.ColorRed, Value: models.ValueTwo}},
	})

	snap, err := g.PlayCard(alice.ID, rev, "")
	require.NoError(t, err)
	assert.Equal(t, carol.ID, snap.CurrentPlayerID, "direction reversed, carol precedes alice")

	snap, err = g.PlayCard(carol.ID, models.Card{Color: models.ColorRed, Value: models.ValueOne}, "")
	require.NoError(t, err)
	assert.Equal(t, players[1].ID, snap.CurrentPlayerID, "play continues counter-clockwise to bob")
}

func TestReverseWithTwoPlayersActsAsSkip(t *testing.T) {
	g, players := newStartedGame(t, "alice", "bob")
	alice := players[0]

	rev := models.Card{Color: models.ColorRed, Value: models.ValueReverse}
	rig(t, g, models.Card{Color: models.ColorRed, Value: models.ValueFive}, map[uuid.UUID][]models.Card{
		alice.ID: {rev, {Color: models.ColorGreen, Value: models.ValueOne}},
	})

	snap, err := g.PlayCard(alice.ID, rev, "")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, snap.CurrentPlayerID, "alice goes again")
}

func TestDrawTwoPenalizesAndSkips(t *testing.T) {
	g, players := newStartedGame(t, "alice", "bob", "carol")
	alice, bob, carol := players[0], players[1], players[2]

	d2 := models.Card{Color: models.ColorRed, Value: models.ValueDrawTwo}
	rig(t, g, models.Card{Color: models.ColorRed, Value: models.ValueFive}, map[uuid.UUID][]models.Card{
		alice.ID: {d2, {Color: models.ColorGreen, Value: models.ValueOne}},
		bob.ID:   {{Color: models.ColorRed, Value: models.ValueOne}},
	})

	snap, err := g.PlayCard(alice.ID, d2, "")
	require.NoError(t, err)
	assert.Equal(t, 3, bob.Hand.Size(), "bob drew two penalty cards")
	assert.Equal(t, carol.ID, snap.CurrentPlayerID, "bob loses his turn")
	assert.Equal(t, 108, cardTotal(g))
}

func TestWildDrawFourPenalizesAndSkips(t *testing.T) {
	g, players := newStartedGame(t, "alice", "bob", "carol")
	alice, bob, carol := players[0], players[1], players[2]

	wd4 := models.Card{Color: models.ColorWild, Value: models.ValueWildDrawFour}
	rig(t, g, models.Card{Color: models.ColorRed, Value: models.ValueFive}, map[uuid.UUID][]models.Card{
		alice.ID: {wd4, {Color: models.ColorGreen, Value: models.ValueOne}},
		bob.ID:   {{Color: models.ColorRed, Value: models.ValueOne}},
	})

	snap, err := g.PlayCard(alice.ID, wd4, models.ColorBlue)
	require.NoError(t, err)
	assert.Equal(t, 5, bob.Hand.Size(), "bob drew four penalty cards")
	assert.Equal(t, carol.ID, snap.CurrentPlayerID)
	assert.Equal(t, models.ColorBlue, snap.ActiveColor)
	assert.Equal(t, 108, cardTotal(g))
}

func TestStrictWildDrawFourRejectsWithMatchingColor(t *testing.T) {
	g, players := newStartedGame(t, "alice", "bob")
	alice := players[0]
	g.Rules.StrictWildDrawFour = true

	wd4 := models.Card{Color: models.ColorWild, Value: models.ValueWildDrawFour}
	rig(t, g, models.Card{Color: models.ColorRed, Value: models.ValueFive}, map[uuid.UUID][]models.Card{
		alice.ID: {wd4, {Color: models.ColorRed, Value: models.ValueOne}},
	})

	_, err := g.PlayCard(alice.ID, wd4, models.ColorBlue)
	assert.ErrorIs(t, err, ErrIllegalPlay, "holding a red card forbids the wild draw four")

	rig(t, g, models.Card{Color: models.ColorRed, Value: models.ValueFive}, map[uuid.UUID][]models.Card{
		alice.ID: {wd4, {Color: models.ColorGreen, Value: models.ValueOne}},
	})
	_, err = g.PlayCard(alice.ID, wd4, models.ColorBlue)
	require.NoError(t, err)
}

func TestEmptyHandWinsAndFreezesGame(t *testing.T) {
	g, players := newStartedGame(t, "alice", "bob")
	alice, bob := players[0], players[1]

	last := models.Card{Color: models.ColorRed, Value: models.ValueNine}
	rig(t, g, models.Card{Color: models.ColorRed, Value: models.ValueFive}, map[uuid.UUID][]models.Card{
		alice.ID: {last},
		bob.ID:   {{Color: models.ColorGreen, Value: models.ValueOne}},
	})

	snap, err := g.PlayCard(alice.ID, last, "")
	require.NoError(t, err)
	assert.Equal(t, StatusFinished, snap.Status)
	assert.Equal(t, alice.ID, snap.WinnerID)
	assert.Equal(t, 0, snap.Players[0].HandSize)
	assert.Equal(t, uuid.Nil, snap.CurrentPlayerID, "no current turn after the game ends")

	_, err = g.PlayCard(bob.ID, models.Card{Color: models.ColorGreen, Value: models.ValueOne}, "")
	assert.ErrorIs(t, err, ErrInvalidState)
	_, err = g.DrawCard(bob.ID)
	assert.ErrorIs(t, err, ErrInvalidState)
	_, err = g.PassTurn(bob.ID)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestDrawCardEndsTurnByDefault(t *testing.T) {
	g, players := newStartedGame(t, "alice", "bob")
	alice, bob := players[0], players[1]

	res, err := g.DrawCard(alice.ID)
	require.NoError(t, err)
	assert.Equal(t, 8, alice.Hand.Size())
	assert.Equal(t, bob.ID, res.Snapshot.CurrentPlayerID, "drawing ends the turn")
	assert.True(t, alice.Hand.Contains(res.Card))
	assert.Equal(t, 108, cardTotal(g))

	_, err = g.DrawCard(alice.ID)
	assert.ErrorIs(t, err, ErrNotYourTurn)
}

func TestDrawCardReportsPlayability(t *testing.T) {
	g, players := newStartedGame(t, "alice", "bob")
	alice := players[0]
	g.Rules.AllowPlayAfterDraw = true

	rig(t, g, models.Card{Color: models.ColorRed, Value: models.ValueFive}, map[uuid.UUID][]models.Card{
		alice.ID: {{Color: models.ColorGreen, Value: models.ValueOne}},
	})
	// Force the next draw to be playable.
	playable := takeFromDraw(t, g, models.Card{Color: models.ColorRed, Value: models.ValueTwo})
	g.piles.draw = append(g.piles.draw, playable)

	res, err := g.DrawCard(alice.ID)
	require.NoError(t, err)
	assert.Equal(t, playable, res.Card)
	assert.True(t, res.CanPlay)
	assert.Equal(t, alice.ID, res.Snapshot.CurrentPlayerID, "playable draw keeps the turn")

	// Alice declines by passing.
	snap, err := g.PassTurn(alice.ID)
	require.NoError(t, err)
	assert.Equal(t, players[1].ID, snap.CurrentPlayerID)
}

func TestDrawRequiresNoPlayableVariant(t *testing.T) {
	g, players := newStartedGame(t, "alice", "bob")
	alice := players[0]
	g.Rules.DrawRequiresNoPlayable = true

	rig(t, g, models.Card{Color: models.ColorRed, Value: models.ValueFive}, map[uuid.UUID][]models.Card{
		alice.ID: {{Color: models.ColorRed, Value: models.ValueOne}},
	})

	_, err := g.DrawCard(alice.ID)
	assert.ErrorIs(t, err, ErrMustPlay)

	rig(t, g, models.Card{Color: models.ColorRed, Value: models.ValueFive}, map[uuid.UUID][]models.Card{
		alice.ID: {{Color: models.ColorGreen, Value: models.ValueOne}},
	})
	_, err = g.DrawCard(alice.ID)
	require.NoError(t, err)
}

func TestPassTurnOnlyForCurrentPlayer(t *testing.T) {
	g, players := newStartedGame(t, "alice", "bob")
	alice, bob := players[0], players[1]

	_, err := g.PassTurn(bob.ID)
	assert.ErrorIs(t, err, ErrNotYourTurn)

	snap, err := g.PassTurn(alice.ID)
	require.NoError(t, err)
	assert.Equal(t, bob.ID, snap.CurrentPlayerID)
}

func TestDeclareUno(t *testing.T) {
	g, players := newStartedGame(t, "alice", "bob")
	alice := players[0]

	_, err := g.DeclareUno(alice.ID)
	assert.ErrorIs(t, err, ErrUnoNotApplicable, "seven cards in hand")

	rig(t, g, models.Card{Color: models.ColorRed, Value: models.ValueFive}, map[uuid.UUID][]models.Card{
		alice.ID: {{Color: models.ColorGreen, Value: models.ValueOne}},
	})

	snap, err := g.DeclareUno(alice.ID)
	require.NoError(t, err)
	assert.True(t, snap.Players[0].HasDeclaredUno)

	// Declaring again is a no-op, not an error.
	snap, err = g.DeclareUno(alice.ID)
	require.NoError(t, err)
	assert.True(t, snap.Players[0].HasDeclaredUno)
}

func TestDeclarationClearsWhenHandGrows(t *testing.T) {
	g, players := newStartedGame(t, "alice", "bob")
	alice := players[0]

	rig(t, g, models.Card{Color: models.ColorRed, Value: models.ValueFive}, map[uuid.UUID][]models.Card{
		alice.ID: {{Color: models.ColorGreen, Value: models.ValueOne}},
	})
	_, err := g.DeclareUno(alice.ID)
	require.NoError(t, err)

	res, err := g.DrawCard(alice.ID)
	require.NoError(t, err)
	assert.False(t, res.Snapshot.Players[0].HasDeclaredUno, "declaration resets at two cards")
}

func TestChallengeUno(t *testing.T) {
	g, players := newStartedGame(t, "alice", "bob")
	alice, bob := players[0], players[1]

	rig(t, g, models.Card{Color: models.ColorRed, Value: models.ValueFive}, map[uuid.UUID][]models.Card{
		alice.ID: {{Color: models.ColorGreen, Value: models.ValueOne}},
		bob.ID:   {{Color: models.ColorRed, Value: models.ValueOne}, {Color: models.ColorRed, Value: models.ValueTwo}},
	})

	// Alice has one card and no declaration: challenge succeeds.
	snap, err := g.ChallengeUno(bob.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, snap.Players[0].HandSize, "alice drew two penalty cards")
	assert.Equal(t, 2, snap.Players[1].HandSize)

	rig(t, g, models.Card{Color: models.ColorRed, Value: models.ValueFive}, map[uuid.UUID][]models.Card{
		alice.ID: {{Color: models.ColorGreen, Value: models.ValueOne}},
		bob.ID:   {{Color: models.ColorRed, Value: models.ValueOne}},
	})
	_, err = g.DeclareUno(alice.ID)
	require.NoError(t, err)

	// Declared in time: the challenger pays instead.
	snap, err = g.ChallengeUno(bob.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, snap.Players[0].HandSize)
	assert.Equal(t, 3, snap.Players[1].HandSize, "bob drew two penalty cards")
	assert.Equal(t, 108, cardTotal(g))
}

func TestSnapshotsBroadcastInCommitOrder(t *testing.T) {
	sc := &snapshotCollector{}
	g, creator := NewUnoGame("ORDER1", "alice", sc.collect)
	defer g.Close()

	_, _, err := g.Join("bob")
	require.NoError(t, err)
	_, _, err = g.Join("carol")
	require.NoError(t, err)
	_, err = g.Start(creator.ID)
	require.NoError(t, err)

	require.Eventually(t, func() bool { return sc.len() == 3 }, time.Second, 5*time.Millisecond)

	snaps := sc.all()
	assert.Equal(t, 2, len(snaps[0].Players))
	assert.Equal(t, 3, len(snaps[1].Players))
	assert.Equal(t, StatusWaitingForPlayers, snaps[1].Status)
	assert.Equal(t, StatusInProgress, snaps[2].Status)
	for i, snap := range snaps {
		assert.Equal(t, uint64(i+1), snap.Seq, "one sequence number per commit")
	}
}

func TestDrawCardReshufflesWhenDrawPileEmpties(t *testing.T) {
	g, players := newStartedGame(t, "alice", "bob")
	alice := players[0]

	rig(t, g, models.Card{Color: models.ColorRed, Value: models.ValueFive}, map[uuid.UUID][]models.Card{
		alice.ID:      {{Color: models.ColorGreen, Value: models.ValueOne}},
		players[1].ID: {{Color: models.ColorRed, Value: models.ValueOne}},
	})

	// Bury the entire draw pile under the active discard so the next draw
	// can only be satisfied by recycling the spent discards.
	top := g.piles.discard[len(g.piles.discard)-1]
	g.piles.discard = append(g.piles.draw, g.piles.discard...)
	g.piles.draw = nil

	res, err := g.DrawCard(alice.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, alice.Hand.Size())
	assert.True(t, alice.Hand.Contains(res.Card))

	gotTop, ok := g.piles.activeCard()
	require.True(t, ok)
	assert.Equal(t, top, gotTop, "active top card survives the reshuffle")
	require.NotNil(t, res.Snapshot.TopCard)
	assert.Equal(t, top, *res.Snapshot.TopCard)
	assert.Equal(t, 108, cardTotal(g))
}

func TestSnapshotNeverExposesHandContents(t *testing.T) {
	g, _ := newStartedGame(t, "alice", "bob")

	snap := g.Snapshot()
	for _, ps := range snap.Players {
		assert.Equal(t, 7, ps.HandSize)
	}

	data, err := json.Marshal(snap)
	require.NoError(t, err)
	assert.NotContains(t, string(data), `"hand"`)
	assert.NotContains(t, string(data), `"cards"`)

	// The player model itself hides its hand from serialization.
	raw, err := json.Marshal(g.Players[0])
	require.NoError(t, err)
	assert.NotContains(t, string(raw), `"Hand"`)
}
