package nakama

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"catan/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

const matchResultCollection = "match_results"

// NakamaStatsAdapter implements ports.StatsPort with Nakama storage and wallets.
type NakamaStatsAdapter struct {
	nk runtime.NakamaModule
}

// NewNakamaStatsAdapter creates a new stats adapter.
func NewNakamaStatsAdapter(nk runtime.NakamaModule) *NakamaStatsAdapter {
	return &NakamaStatsAdapter{nk: nk}
}

type matchResult struct {
	MatchID   string   `json:"match_id"`
	GameKey   string   `json:"game_key"`
	WinnerID  string   `json:"winner_id"`
	PlayerIDs []string `json:"player_ids"`
	EndedAt   string   `json:"ended_at"`
}

// RecordMatch writes the result record and wallet counters in one
// transaction. The record is created with version "*", so a replayed
// result is rejected and reported as recorded=false.
func (a *NakamaStatsAdapter) RecordMatch(ctx context.Context, record ports.MatchRecord, updates []ports.StatsUpdate) (bool, error) {
	if record.ID == "" {
		return false, fmt.Errorf("record ID is required")
	}

	endedAt := record.EndedAt
	if endedAt.IsZero() {
		endedAt = time.Now()
	}
	value, err := json.Marshal(matchResult{
		MatchID:   record.MatchID,
		GameKey:   record.GameKey,
		WinnerID:  record.WinnerID,
		PlayerIDs: record.PlayerIDs,
		EndedAt:   endedAt.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return false, fmt.Errorf("failed to marshal match result: %w", err)
	}

	storageWrites := []*runtime.StorageWrite{
		{
			Collection:      matchResultCollection,
			Key:             record.ID,
			Value:           string(value),
			Version:         "*",
			PermissionRead:  runtime.STORAGE_PERMISSION_NO_READ,
			PermissionWrite: runtime.STORAGE_PERMISSION_NO_WRITE,
		},
	}

	walletUpdates := make([]*runtime.WalletUpdate, 0, len(updates))
	for _, update := range updates {
		if update.UserID == "" || len(update.Changes) == 0 {
			continue
		}
		walletUpdates = append(walletUpdates, &runtime.WalletUpdate{
			UserID:    update.UserID,
			Changeset: update.Changes,
			Metadata:  update.Metadata,
		})
	}

	_, _, err = a.nk.MultiUpdate(ctx, nil, storageWrites, nil, walletUpdates, true)
	if err != nil {
		if errors.Is(err, runtime.ErrStorageRejectedVersion) {
			return false, nil
		}
		return false, fmt.Errorf("failed to record match %s: %w", record.ID, err)
	}
	return true, nil
}

// GetStats retrieves the wallet counters for a user.
func (a *NakamaStatsAdapter) GetStats(ctx context.Context, userID string) (map[string]int64, error) {
	account, err := a.nk.AccountGetId(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	wallet := map[string]int64{}
	if account.Wallet != "" {
		if err := json.Unmarshal([]byte(account.Wallet), &wallet); err != nil {
			return nil, fmt.Errorf("failed to unmarshal wallet: %w", err)
		}
	}

	return map[string]int64{
		ports.StatGamesPlayed: wallet[ports.StatGamesPlayed],
		ports.StatGamesWon:    wallet[ports.StatGamesWon],
	}, nil
}

var _ ports.StatsPort = (*NakamaStatsAdapter)(nil)
