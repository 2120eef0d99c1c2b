package app

import "catan/internal/ports"

// StatsUpdates returns the counter changes for a finished game: one game
// played for every seat and one win for the winner.
func StatsUpdates(ended GameEndedPayload) []ports.StatsUpdate {
	updates := make([]ports.StatsUpdate, 0, len(ended.PlayerIDs))
	for _, id := range ended.PlayerIDs {
		changes := map[string]int64{ports.StatGamesPlayed: 1}
		if id == ended.WinnerID {
			changes[ports.StatGamesWon] = 1
		}
		updates = append(updates, ports.StatsUpdate{
			UserID:   id,
			Changes:  changes,
			Metadata: map[string]interface{}{"reason": "game_result"},
		})
	}
	return updates
}
