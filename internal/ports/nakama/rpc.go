package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"catan/internal/app"
	"catan/internal/app/onboarding"
	"catan/internal/protocol"

	"github.com/heroiclabs/nakama-common/runtime"
)

// gRPC status codes Nakama maps RPC errors onto.
const (
	codeInvalidArgument    = 3
	codeFailedPrecondition = 9
	codeInternal           = 13
	codeUnauthenticated    = 16
)

var errNoUser = runtime.NewError("No user in context", codeUnauthenticated)

// CreateResponse is returned by RpcCreate.
type CreateResponse struct {
	Result  string `json:"result"`
	GameKey string `json:"gamekey"`
	MatchID string `json:"match_id"`
}

// JoinResponse is returned by RpcJoin; the client then joins MatchID.
type JoinResponse struct {
	Result  string `json:"result"`
	MatchID string `json:"match_id"`
}

// NameResponse is returned by RpcName.
type NameResponse struct {
	Client string `json:"client"`
	Key    string `json:"key"`
	Value  string `json:"value"`
	Result string `json:"result"`
}

type rpcHandlers struct {
	registry   *app.Registry
	maxPlayers int
}

// RegisterRPCs registers Nakama RPC endpoints.
func RegisterRPCs(initializer runtime.Initializer, registry *app.Registry, maxPlayers int) error {
	h := &rpcHandlers{registry: registry, maxPlayers: maxPlayers}
	for id, fn := range map[string]func(context.Context, runtime.Logger, *sql.DB, runtime.NakamaModule, string) (string, error){
		RpcName:   h.rpcName,
		RpcCreate: h.rpcCreate,
		RpcJoin:   h.rpcJoin,
		RpcStats:  h.rpcStats,
	} {
		if err := initializer.RegisterRpc(id, fn); err != nil {
			return err
		}
	}
	return nil
}

func (h *rpcHandlers) rpcName(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, ok := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)
	if !ok || userID == "" {
		return "", errNoUser
	}

	name, err := protocol.DecodeName([]byte(payload))
	if err != nil {
		return "", rpcError(err)
	}
	name, err = onboarding.NewService(NewNakamaAccountAdapter(nk), nil).Rename(ctx, userID, name)
	if err != nil {
		logger.Error("rpcName [User:%s]: %v", userID, err)
		return "", rpcError(err)
	}
	return marshalResponse(NameResponse{Client: "updated", Key: "name", Value: name, Result: "success"})
}

func (h *rpcHandlers) rpcCreate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, ok := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)
	if !ok || userID == "" {
		return "", errNoUser
	}

	key, err := h.registry.Reserve(userID)
	if err != nil {
		return "", rpcError(err)
	}

	matchID, err := nk.MatchCreate(ctx, MatchNameCatan, map[string]interface{}{
		matchParamKey:   key,
		matchParamOwner: userID,
	})
	if err != nil {
		h.registry.Close(key)
		logger.Error("rpcCreate [User:%s]: Failed to create match: %v", userID, err)
		return "", rpcError(err)
	}
	h.registry.Bind(key, matchID)

	logger.Info("rpcCreate [User:%s]: Created match %s with key %s", userID, matchID, key)
	return marshalResponse(CreateResponse{Result: "success", GameKey: key, MatchID: matchID})
}

func (h *rpcHandlers) rpcJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, ok := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)
	if !ok || userID == "" {
		return "", errNoUser
	}

	key, err := protocol.DecodeGameKey([]byte(payload))
	if err != nil {
		return "", rpcError(err)
	}
	if _, ok := h.registry.MatchOf(userID); ok {
		return "", rpcError(app.ErrAlreadyInGame)
	}
	entry, err := h.registry.Lookup(key)
	if err != nil {
		return "", rpcError(err)
	}
	switch {
	case entry.Started:
		return "", rpcError(app.ErrGameStarted)
	case entry.Players >= h.maxPlayers:
		return "", rpcError(app.ErrMatchFull)
	}
	if err := h.registry.Admit(key, userID); err != nil {
		return "", rpcError(err)
	}

	logger.Debug("rpcJoin [User:%s]: Admitted to match %s", userID, entry.MatchID)
	return marshalResponse(JoinResponse{Result: "success", MatchID: entry.MatchID})
}

func (h *rpcHandlers) rpcStats(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, ok := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)
	if !ok || userID == "" {
		return "", errNoUser
	}

	stats, err := NewNakamaStatsAdapter(nk).GetStats(ctx, userID)
	if err != nil {
		logger.Error("rpcStats [User:%s]: %v", userID, err)
		return "", rpcError(err)
	}
	return marshalResponse(stats)
}

// rpcError maps an error onto a Nakama runtime error carrying the
// client-facing message.
func rpcError(err error) error {
	if errors.Is(err, onboarding.ErrNoName) {
		return runtime.NewError(err.Error(), codeInvalidArgument)
	}
	switch app.KindOf(err) {
	case app.KindProtocol:
		return runtime.NewError(err.Error(), codeInvalidArgument)
	case app.KindUnknown:
		return runtime.NewError(err.Error(), codeInternal)
	default:
		return runtime.NewError(err.Error(), codeFailedPrecondition)
	}
}

func marshalResponse(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", runtime.NewError("failed to marshal response", codeInternal)
	}
	return string(b), nil
}
