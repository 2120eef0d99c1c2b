package ports

import (
	"context"
	"time"
)

// Wallet counters kept for every player.
const (
	StatGamesPlayed = "games_played"
	StatGamesWon    = "games_won"
)

// StatsUpdate is a change to one player's lifetime counters.
type StatsUpdate struct {
	UserID   string
	Changes  map[string]int64
	Metadata map[string]interface{}
}

// MatchRecord summarizes one finished game.
type MatchRecord struct {
	// ID is unique per game; a match can host several games in a row.
	ID        string
	MatchID   string
	GameKey   string
	WinnerID  string
	PlayerIDs []string
	EndedAt   time.Time
}

// StatsPort records finished games and per-player counters.
type StatsPort interface {
	// RecordMatch stores record and applies updates together.
	// Returns recorded=false when a record with the same ID already exists.
	RecordMatch(ctx context.Context, record MatchRecord, updates []StatsUpdate) (bool, error)

	// GetStats returns the counters of a user.
	GetStats(ctx context.Context, userID string) (map[string]int64, error)
}
