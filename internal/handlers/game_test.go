// internal/handlers/game_test.go
package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rodrigovaamonde/uno-server/internal/auth"
	"github.com/rodrigovaamonde/uno-server/internal/game"
)

func postJSON(t *testing.T, handler http.HandlerFunc, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func decodeSeat(t *testing.T, rec *httptest.ResponseRecorder) seatResponse {
	t.Helper()
	var seat seatResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&seat))
	return seat
}

func TestCreateAndJoinGame(t *testing.T) {
	auth.Init()
	gs := NewGameServer(quietLogger())

	rec := postJSON(t, CreateGameHandler(gs), "/game/create", createGameRequest{PlayerName: "alice"})
	require.Equal(t, http.StatusOK, rec.Code)
	seat := decodeSeat(t, rec)

	assert.Equal(t, game.StatusWaitingForPlayers, seat.State.Status)
	assert.Len(t, seat.State.Code, 6)
	assert.NotEmpty(t, seat.Token)
	_, err := uuid.Parse(seat.PlayerID)
	require.NoError(t, err)

	// The token is bound to the created session.
	playerID, code, err := auth.AuthenticatePlayerToken(seat.Token)
	require.NoError(t, err)
	assert.Equal(t, seat.PlayerID, playerID)
	assert.Equal(t, seat.State.Code, code)

	rec = postJSON(t, JoinGameHandler(gs), "/game/join", joinGameRequest{Code: seat.State.Code, PlayerName: "bob"})
	require.Equal(t, http.StatusOK, rec.Code)
	joined := decodeSeat(t, rec)
	assert.Len(t, joined.State.Players, 2)
}

func TestCreateGameRejectsBlankName(t *testing.T) {
	auth.Init()
	gs := NewGameServer(quietLogger())

	rec := postJSON(t, CreateGameHandler(gs), "/game/create", createGameRequest{PlayerName: "  "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body errorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "NAME_REQUIRED", body.Code)
}

func TestJoinGameErrorMapping(t *testing.T) {
	auth.Init()
	gs := NewGameServer(quietLogger())

	// Unknown code.
	rec := postJSON(t, JoinGameHandler(gs), "/game/join", joinGameRequest{Code: "NOSUCH", PlayerName: "bob"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	g, _, err := gs.CreateSession("alice")
	require.NoError(t, err)

	// Duplicate name.
	rec = postJSON(t, JoinGameHandler(gs), "/game/join", joinGameRequest{Code: g.Code, PlayerName: "Alice"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	for _, name := range []string{"bob", "carol", "dave"} {
		rec = postJSON(t, JoinGameHandler(gs), "/game/join", joinGameRequest{Code: g.Code, PlayerName: name})
		require.Equal(t, http.StatusOK, rec.Code)
	}

	// Seat cap.
	rec = postJSON(t, JoinGameHandler(gs), "/game/join", joinGameRequest{Code: g.Code, PlayerName: "erin"})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestGameStateHandler(t *testing.T) {
	auth.Init()
	gs := NewGameServer(quietLogger())

	g, _, err := gs.CreateSession("alice")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/game/state/"+g.Code, nil)
	rec := httptest.NewRecorder()
	GameStateHandler(gs)(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var snap game.Snapshot
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&snap))
	assert.Equal(t, g.Code, snap.Code)

	req = httptest.NewRequest(http.MethodGet, "/game/state/NOSUCH", nil)
	rec = httptest.NewRecorder()
	GameStateHandler(gs)(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHTTPStatusForErrorKinds(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, httpStatusForError(game.ErrNotFound))
	assert.Equal(t, http.StatusConflict, httpStatusForError(game.ErrInvalidState))
	assert.Equal(t, http.StatusConflict, httpStatusForError(game.ErrSessionFull))
	assert.Equal(t, http.StatusForbidden, httpStatusForError(game.ErrNotYourTurn))
	assert.Equal(t, http.StatusBadRequest, httpStatusForError(game.ErrIllegalPlay))
	assert.Equal(t, http.StatusInternalServerError, httpStatusForError(assert.AnError))
}
