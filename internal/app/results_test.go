package app

import (
	"testing"

	"catan/internal/ports"

	"github.com/google/go-cmp/cmp"
)

func TestStatsUpdates(t *testing.T) {
	got := StatsUpdates(GameEndedPayload{Winner: 1, WinnerID: "u1", PlayerIDs: []string{"u0", "u1", "u2"}})
	meta := map[string]interface{}{"reason": "game_result"}
	want := []ports.StatsUpdate{
		{UserID: "u0", Changes: map[string]int64{ports.StatGamesPlayed: 1}, Metadata: meta},
		{UserID: "u1", Changes: map[string]int64{ports.StatGamesPlayed: 1, ports.StatGamesWon: 1}, Metadata: meta},
		{UserID: "u2", Changes: map[string]int64{ports.StatGamesPlayed: 1}, Metadata: meta},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("updates mismatch (-want +got):\n%s", diff)
	}
}
