package nakama

import (
	"context"
	"encoding/json"

	"github.com/heroiclabs/nakama-common/api"
	"github.com/heroiclabs/nakama-common/runtime"
)

// fakeNakama overrides the runtime.NakamaModule calls the adapters use.
type fakeNakama struct {
	runtime.NakamaModule

	createErr     error
	created       []map[string]interface{}
	displayNames  map[string]string
	wallets       map[string]map[string]int64
	storage       map[string]string
	multiUpdates  int
	lastWalletSet []*runtime.WalletUpdate
}

func newFakeNakama() *fakeNakama {
	return &fakeNakama{
		displayNames: map[string]string{},
		wallets:      map[string]map[string]int64{},
		storage:      map[string]string{},
	}
}

func (f *fakeNakama) MatchCreate(ctx context.Context, module string, params map[string]interface{}) (string, error) {
	if f.createErr != nil {
		return "", f.createErr
	}
	f.created = append(f.created, params)
	return "match-" + params[matchParamKey].(string), nil
}

func (f *fakeNakama) AccountUpdateId(ctx context.Context, userID, username string, metadata map[string]interface{}, displayName, timezone, location, langTag, avatarUrl string) error {
	f.displayNames[userID] = displayName
	return nil
}

func (f *fakeNakama) AccountGetId(ctx context.Context, userID string) (*api.Account, error) {
	wallet, err := json.Marshal(f.wallets[userID])
	if err != nil {
		return nil, err
	}
	return &api.Account{
		User:   &api.User{Id: userID, DisplayName: f.displayNames[userID]},
		Wallet: string(wallet),
	}, nil
}

func (f *fakeNakama) MultiUpdate(ctx context.Context, accountUpdates []*runtime.AccountUpdate, storageWrites []*runtime.StorageWrite, storageDeletes []*runtime.StorageDelete, walletUpdates []*runtime.WalletUpdate, updateLedger bool) ([]*api.StorageObjectAck, []*runtime.WalletUpdateResult, error) {
	f.multiUpdates++
	for _, w := range storageWrites {
		id := w.Collection + "/" + w.Key
		if _, exists := f.storage[id]; exists && w.Version == "*" {
			return nil, nil, runtime.ErrStorageRejectedVersion
		}
	}
	for _, w := range storageWrites {
		f.storage[w.Collection+"/"+w.Key] = w.Value
	}
	f.lastWalletSet = walletUpdates
	for _, u := range walletUpdates {
		if f.wallets[u.UserID] == nil {
			f.wallets[u.UserID] = map[string]int64{}
		}
		for k, v := range u.Changeset {
			f.wallets[u.UserID][k] += v
		}
	}
	return nil, nil, nil
}
