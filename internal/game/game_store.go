// internal/game/game_store.go
package game

import (
	"crypto/rand"
	"math/big"
	"strings"
	"sync"

	"github.com/rodrigovaamonde/uno-server/internal/models"
)

const (
	codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	codeLength   = 6
)

// GameStore is the session registry: it maps shareable codes to live games
// and owns their lifetime. Its lock is independent of the per-game locks so
// unrelated games never serialize each other.
type GameStore struct {
	mu    sync.Mutex
	games map[string]*UnoGame
}

func NewGameStore() *GameStore {
	return &GameStore{
		games: make(map[string]*UnoGame),
	}
}

// CreateGame generates a unique code, builds the game and seats the creator.
// broadcastFn is handed to the new game unchanged; it may be nil.
func (s *GameStore) CreateGame(creatorName string, broadcastFn func(Snapshot)) (*UnoGame, *models.Player, error) {
	creatorName = strings.TrimSpace(creatorName)
	if creatorName == "" {
		return nil, nil, ErrNameRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	code := s.newCodeLocked()
	g, creator := NewUnoGame(code, creatorName, broadcastFn)
	s.games[code] = g
	return g, creator, nil
}

// GetGame looks up a live game by code.
func (s *GameStore) GetGame(code string) (*UnoGame, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.games[strings.ToUpper(code)]
	return g, ok
}

// DeleteGame evicts a game from the registry and stops its broadcast pump.
// Eviction policy (e.g. a retention window for finished games) belongs to the
// caller.
func (s *GameStore) DeleteGame(code string) {
	s.mu.Lock()
	g, ok := s.games[code]
	if ok {
		delete(s.games, code)
	}
	s.mu.Unlock()
	if ok {
		g.Close()
	}
}

// Games returns a copy of the live game map for listing or debugging.
func (s *GameStore) Games() map[string]*UnoGame {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]*UnoGame, len(s.games))
	for k, v := range s.games {
		out[k] = v
	}
	return out
}

// newCodeLocked generates a fresh 6-character alphanumeric code, retrying on
// collision with any live session. Assumes the store lock is held.
func (s *GameStore) newCodeLocked() string {
	for {
		var b strings.Builder
		for i := 0; i < codeLength; i++ {
			n, err := rand.Int(rand.Reader, big.NewInt(int64(len(codeAlphabet))))
			if err != nil {
				panic("crypto/rand unavailable: " + err.Error())
			}
			b.WriteByte(codeAlphabet[n.Int64()])
		}
		code := b.String()
		if _, exists := s.games[code]; !exists {
			return code
		}
	}
}
