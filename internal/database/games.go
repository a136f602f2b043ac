// internal/database/games.go
package database

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// EnsureSchema creates the games_history table if it does not exist yet.
func EnsureSchema(ctx context.Context) error {
	q := `
		CREATE TABLE IF NOT EXISTS games_history (
			id BIGSERIAL PRIMARY KEY,
			game_code TEXT NOT NULL,
			winner_id UUID NOT NULL,
			winner_name TEXT NOT NULL,
			player_count INT NOT NULL,
			finished_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`
	if _, err := DB.Exec(ctx, q); err != nil {
		return fmt.Errorf("failed to create games_history table: %w", err)
	}
	return nil
}

// RecordFinishedGame appends one row per finished game. Session codes are
// reused over time, so the table keys on its own serial id.
func RecordFinishedGame(ctx context.Context, code string, winnerID uuid.UUID, winnerName string, playerCount int) error {
	q := `
		INSERT INTO games_history (game_code, winner_id, winner_name, player_count)
		VALUES ($1, $2, $3, $4)
	`
	if _, err := DB.Exec(ctx, q, code, winnerID, winnerName, playerCount); err != nil {
		return fmt.Errorf("failed to insert game history row: %w", err)
	}
	return nil
}
